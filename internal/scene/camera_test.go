package scene

import (
	"math"
	"testing"
)

func TestCameraController_Smoothing(t *testing.T) {
	c := NewCameraController(16.0 / 9)
	start := c.State().Position

	c.Update(Vec2{1, 1}, true)
	p := c.State().Position
	wantX := start.X + (5-start.X)*0.02
	wantY := start.Y + (5-start.Y)*0.02
	if math.Abs(p.X-wantX) > 1e-12 || math.Abs(p.Y-wantY) > 1e-12 {
		t.Errorf("expected (%v, %v), got (%v, %v)", wantX, wantY, p.X, p.Y)
	}
	if p.Z != start.Z {
		t.Errorf("z should not move, got %v", p.Z)
	}
	if c.State().Target != (Vec3{}) {
		t.Errorf("camera should aim at origin, got %+v", c.State().Target)
	}

	for i := 0; i < 2000; i++ {
		c.Update(Vec2{-1, 0.5}, true)
	}
	p = c.State().Position
	if math.Abs(p.X+5) > 1e-6 || math.Abs(p.Y-2.5) > 1e-6 {
		t.Errorf("camera did not converge to target: %+v", p)
	}
}

func TestCameraController_FrozenWithoutOrbit(t *testing.T) {
	c := NewCameraController(1)
	c.Update(Vec2{1, 0}, true)
	before := c.State().Position
	for i := 0; i < 50; i++ {
		c.Update(Vec2{-1, -1}, false)
	}
	if c.State().Position != before {
		t.Errorf("camera moved with orbit off: %+v -> %+v", before, c.State().Position)
	}
}

func TestCameraController_Reset(t *testing.T) {
	c := NewCameraController(1)
	for i := 0; i < 100; i++ {
		c.Update(Vec2{1, 1}, true)
	}
	c.Reset()
	if c.State().Position != HomePosition {
		t.Errorf("expected home position, got %+v", c.State().Position)
	}
}

func TestCameraController_Aspect(t *testing.T) {
	c := NewCameraController(0)
	if c.State().Aspect != 1 {
		t.Errorf("expected fallback aspect 1, got %v", c.State().Aspect)
	}
	c.SetAspect(2)
	c.SetAspect(-1)
	if c.State().Aspect != 2 {
		t.Errorf("expected aspect 2, got %v", c.State().Aspect)
	}
}
