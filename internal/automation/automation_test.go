package automation

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/orbitscene/internal/logx"
	"github.com/san-kum/orbitscene/internal/loop"
	"github.com/san-kum/orbitscene/internal/scene"
)

type nopRenderer struct{ resizes int }

func (r *nopRenderer) Init(w, h int) error      { return nil }
func (r *nopRenderer) Resize(w, h int)          { r.resizes++ }
func (r *nopRenderer) Draw(f scene.Frame) error { return nil }
func (r *nopRenderer) Close() error             { return nil }

const scenarioYAML = `
name: demo
description: grow, wire, freeze
steps:
  - name: warmup
    frames: 30
  - name: grow
    frames: 30
    objects: 12
    wireframe: true
    resize: [640, 360]
  - name: freeze
    frames: 30
    auto_rotate: false
    pointer: [640, 0]
  - frames: 10
    preset: busy
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if sc.Name != "demo" || len(sc.Steps) != 4 {
		t.Fatalf("unexpected scenario %+v", sc)
	}
	if sc.Steps[1].Objects == nil || *sc.Steps[1].Objects != 12 {
		t.Error("expected objects override on step 2")
	}
	if sc.Steps[0].Objects != nil {
		t.Error("expected no override on step 1")
	}
}

func TestLoadScenarioInvalid(t *testing.T) {
	tests := []string{
		"name: empty\n",
		"steps:\n  - frames: 0\n",
		"steps:\n  - frames: 5\n    preset: nope\n",
		"steps: [",
		"steps:\n  - frames: 5\n    resize: [1]\n",
	}
	for _, body := range tests {
		if _, err := LoadScenario(writeScenario(t, body)); err == nil {
			t.Errorf("expected error for %q", body)
		}
	}
}

func TestStepApply(t *testing.T) {
	n, wire := 3, true
	got := Step{Objects: &n, Wireframe: &wire}.Apply(scene.DefaultConfig())
	if got.ObjectCount != 3 || !got.Wireframe {
		t.Errorf("unexpected config %+v", got)
	}
	if got.RotationSpeed != scene.DefaultConfig().RotationSpeed {
		t.Error("expected untouched fields to keep their value")
	}

	busy := Step{Preset: "busy"}.Apply(scene.DefaultConfig())
	if busy.ObjectCount != 20 {
		t.Errorf("expected busy preset object count 20, got %d", busy.ObjectCount)
	}
}

func TestRunScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	clock := loop.NewVirtualClock(time.Unix(0, 0))
	r := &nopRenderer{}
	rt := scene.NewRuntime(r, scene.DefaultConfig(), scene.WithSeed(5), scene.WithClock(clock.Now))
	if err := rt.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer rt.Stop()

	newRunner := func(frames int) *loop.Runner {
		return loop.New(loop.Config{FPS: 60, Frames: frames}).WithVirtualClock(clock)
	}
	results, err := RunScenario(context.Background(), sc, rt, newRunner, logx.Discard())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 step results, got %d", len(results))
	}

	if got := results[0].Result.Final.Objects; got != 8 {
		t.Errorf("warmup: expected 8 objects, got %d", got)
	}
	if got := results[1].Result.Final.Objects; got != 12 {
		t.Errorf("grow: expected 12 objects, got %d", got)
	}
	if !results[2].Config.Wireframe || results[2].Config.AutoRotate {
		t.Errorf("freeze: unexpected config %+v", results[2].Config)
	}
	if results[3].Name != "step-4" {
		t.Errorf("expected default step name, got %q", results[3].Name)
	}
	if got := results[3].Result.Final.Objects; got != 20 {
		t.Errorf("busy: expected 20 objects, got %d", got)
	}
	if r.resizes != 1 {
		t.Errorf("expected 1 renderer resize, got %d", r.resizes)
	}
	if vp := rt.Viewport(); vp.Width != 640 || vp.Height != 360 {
		t.Errorf("expected 640x360 viewport, got %dx%d", vp.Width, vp.Height)
	}

	if n := len(Frames(results)); n != 100 {
		t.Errorf("expected 100 frames total, got %d", n)
	}
}
