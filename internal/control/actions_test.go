package control

import (
	"testing"

	"github.com/san-kum/orbitscene/internal/scene"
)

type recorder struct {
	cfg    scene.Config
	resets int
}

func (r *recorder) UpdateConfig(fn func(scene.Config) scene.Config) scene.Config {
	r.cfg = fn(r.cfg)
	return r.cfg
}

func (r *recorder) ResetCamera() { r.resets++ }

func TestLookup(t *testing.T) {
	tests := []struct {
		key  string
		want Action
		ok   bool
	}{
		{"+", RotationUp, true},
		{"=", RotationUp, true},
		{"[", FewerObjects, true},
		{"w", ToggleWireframe, true},
		{"ctrl+c", Quit, true},
		{"x", None, false},
	}
	for _, tt := range tests {
		got, ok := Lookup(tt.key)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Lookup(%q) = %v, %v; expected %v, %v", tt.key, got, ok, tt.want, tt.ok)
		}
	}
}

func TestReduce(t *testing.T) {
	base := scene.DefaultConfig()
	tests := []struct {
		action Action
		check  func(scene.Config) bool
	}{
		{RotationUp, func(c scene.Config) bool { return c.RotationSpeed == base.RotationSpeed+RotationStep }},
		{RotationDown, func(c scene.Config) bool { return c.RotationSpeed == base.RotationSpeed-RotationStep }},
		{MoreObjects, func(c scene.Config) bool { return c.ObjectCount == base.ObjectCount+1 }},
		{FewerObjects, func(c scene.Config) bool { return c.ObjectCount == base.ObjectCount-1 }},
		{ToggleWireframe, func(c scene.Config) bool { return c.Wireframe != base.Wireframe }},
		{ToggleOrbit, func(c scene.Config) bool { return c.AutoRotate != base.AutoRotate }},
		{CycleTheme, func(c scene.Config) bool { return c == base }},
	}
	for _, tt := range tests {
		if got := Reduce(tt.action, base); !tt.check(got) {
			t.Errorf("Reduce(%v): unexpected config %+v", tt.action, got)
		}
	}
}

func TestReduce_CountStaysInRange(t *testing.T) {
	cfg := scene.DefaultConfig()
	cfg.ObjectCount = scene.MaxObjects
	if got := Reduce(MoreObjects, cfg).ObjectCount; got != scene.MaxObjects {
		t.Errorf("expected %d objects at the top, got %d", scene.MaxObjects, got)
	}
	cfg.ObjectCount = scene.MinObjects
	if got := Reduce(FewerObjects, cfg).ObjectCount; got != scene.MinObjects {
		t.Errorf("expected %d objects at the bottom, got %d", scene.MinObjects, got)
	}
}

func TestApply(t *testing.T) {
	r := &recorder{cfg: scene.DefaultConfig()}

	if !Apply(r, ToggleWireframe) || !r.cfg.Wireframe {
		t.Error("expected wireframe toggled")
	}
	if !Apply(r, ResetCamera) || r.resets != 1 {
		t.Error("expected camera reset")
	}
	if Apply(r, Quit) {
		t.Error("expected quit to be left to the host")
	}
}

func TestActionString(t *testing.T) {
	if ToggleOrbit.String() != "orbit" {
		t.Errorf("expected 'orbit', got %q", ToggleOrbit.String())
	}
	if Action(99).String() != "unknown" {
		t.Error("expected unknown for out-of-range action")
	}
}
