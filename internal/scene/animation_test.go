package scene

import (
	"math"
	"testing"
)

func TestFloatY_Idempotent(t *testing.T) {
	for _, tt := range []float64{0, 0.5, 3.25, 100} {
		a := FloatY(0.3, tt, 4)
		b := FloatY(0.3, tt, 4)
		if a != b {
			t.Errorf("FloatY(t=%v) not idempotent: %v != %v", tt, a, b)
		}
	}
}

func TestAnimate_FloatFormula(t *testing.T) {
	e := &Entity{Index: 3, BasePosition: Vec3{Y: 0.25}}
	Animate(e, 1.5, 0, 5, DefaultConfig(), RotationPerTick)
	want := 0.25 + math.Sin(1.5*2+3)*0.5
	if math.Abs(e.Position.Y-want) > 1e-12 {
		t.Errorf("expected y %f, got %f", want, e.Position.Y)
	}
}

func TestAnimate_OrbitRadius(t *testing.T) {
	cfg := DefaultConfig()
	for _, n := range []int{1, 3, 8, 20} {
		for _, tt := range []float64{0, 0.7, 12.3, 999.9} {
			for i := 0; i < n; i++ {
				e := &Entity{Index: i}
				Animate(e, tt, 0.016, n, cfg, RotationPerTick)
				r2 := e.Position.X*e.Position.X + e.Position.Z*e.Position.Z
				if math.Abs(r2-64) > 1e-9 {
					t.Fatalf("n=%d t=%v i=%d: x²+z² = %v, want 64", n, tt, i, r2)
				}
			}
		}
	}
}

func TestAnimate_FrozenWhenOrbitOff(t *testing.T) {
	cfg := DefaultConfig()
	e := &Entity{Index: 2, BasePosition: Vec3{X: 1, Y: 0, Z: 2}}
	Animate(e, 1.0, 0.016, 4, cfg, RotationPerTick)
	x, z := e.Position.X, e.Position.Z

	cfg.AutoRotate = false
	for tt := 1.0; tt < 10; tt += 0.37 {
		Animate(e, tt, 0.016, 4, cfg, RotationPerTick)
		if e.Position.X != x || e.Position.Z != z {
			t.Fatalf("t=%v: position moved while frozen: (%v, %v) -> (%v, %v)", tt, x, z, e.Position.X, e.Position.Z)
		}
	}
}

func TestAnimate_ColorCyclesWhenFrozen(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AutoRotate = false
	e := &Entity{Index: 1}
	Animate(e, 1, 0, 2, cfg, RotationPerTick)
	h1 := e.Material.Color.H
	Animate(e, 2, 0, 2, cfg, RotationPerTick)
	if e.Material.Color.H == h1 {
		t.Error("hue should advance with orbit stopped")
	}
	if e.Material.Color.S != EntitySaturation || e.Material.Color.L != EntityLightness {
		t.Errorf("unexpected saturation/lightness: %+v", e.Material.Color)
	}
}

func TestHueAt_Wraparound(t *testing.T) {
	tests := []struct {
		t     float64
		index int
	}{
		{10, 0},
		{0, 10},
		{5, 5},
		{20, 0},
		{0, 20},
	}
	for _, tt := range tests {
		if h := HueAt(tt.t, tt.index); h != 0 {
			t.Errorf("HueAt(%v, %d) = %v, want 0", tt.t, tt.index, h)
		}
	}

	if h := HueAt(2.5, 1); math.Abs(h-0.35) > 1e-12 {
		t.Errorf("HueAt(2.5, 1) = %v, want 0.35", h)
	}
	for tt := 0.0; tt < 50; tt += 0.13 {
		if h := HueAt(tt, 7); h < 0 || h >= 1 {
			t.Fatalf("HueAt(%v) = %v outside [0, 1)", tt, h)
		}
	}
}

func TestAnimate_RotationAccumulates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RotationSpeed = 2
	cfg.AnimationSpeed = 1.5
	e := &Entity{RotationVelocity: Vec3{0.01, -0.02, 0.005}}

	for i := 0; i < 10; i++ {
		Animate(e, float64(i), 0.1, 1, cfg, RotationPerTick)
	}
	want := Vec3{0.01, -0.02, 0.005}.Scale(2 * 1.5 * 10)
	if e.Rotation.Sub(want).Length() > 1e-12 {
		t.Errorf("expected rotation %+v, got %+v", want, e.Rotation)
	}
}

func TestAnimate_RotationPerSecond(t *testing.T) {
	cfg := DefaultConfig()
	vel := Vec3{0.01, 0, 0}

	// 60 ticks of 1/60s should match 60 per-tick increments.
	a := &Entity{RotationVelocity: vel}
	b := &Entity{RotationVelocity: vel}
	for i := 0; i < 60; i++ {
		Animate(a, 0, 1.0/60, 1, cfg, RotationPerSecond)
		Animate(b, 0, 1.0/60, 1, cfg, RotationPerTick)
	}
	if math.Abs(a.Rotation.X-b.Rotation.X) > 1e-12 {
		t.Errorf("per-second at 60Hz = %v, per-tick = %v", a.Rotation.X, b.Rotation.X)
	}

	// 30 ticks of 1/30s cover the same wall time.
	c := &Entity{RotationVelocity: vel}
	for i := 0; i < 30; i++ {
		Animate(c, 0, 1.0/30, 1, cfg, RotationPerSecond)
	}
	if math.Abs(c.Rotation.X-a.Rotation.X) > 1e-12 {
		t.Errorf("per-second rotation depends on frame rate: %v vs %v", c.Rotation.X, a.Rotation.X)
	}
}

func TestAnimateAll_StartPositions(t *testing.T) {
	reg := newTestRegistry(false)
	reg.Rebuild(8, false)
	AnimateAll(reg.Entities(), 0, 0, DefaultConfig(), RotationPerTick)

	for _, e := range reg.Entities() {
		wantY := e.BasePosition.Y + math.Sin(float64(e.Index))*FloatAmplitude
		if math.Abs(e.Position.Y-wantY) > 1e-12 {
			t.Errorf("entity %d: y = %v, want %v", e.Index, e.Position.Y, wantY)
		}
		angle := float64(e.Index) * math.Pi / 4
		if math.Abs(e.Position.X-math.Cos(angle)*8) > 1e-9 || math.Abs(e.Position.Z-math.Sin(angle)*8) > 1e-9 {
			t.Errorf("entity %d at (%v, %v), want angle %v", e.Index, e.Position.X, e.Position.Z, angle)
		}
	}
}
