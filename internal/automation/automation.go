// Package automation runs scripted scenes: a sequence of steps, each of
// which changes the live configuration or input and then renders a number
// of frames.
package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/orbitscene/internal/config"
	"github.com/san-kum/orbitscene/internal/loop"
	"github.com/san-kum/orbitscene/internal/scene"
)

// Scenario defines a scripted run.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is a single step in a scenario. Unset fields leave the current
// value alone; Preset, when set, replaces the scene block first.
type Step struct {
	Name           string    `yaml:"name"`
	Frames         int       `yaml:"frames"`
	Preset         string    `yaml:"preset"`
	Objects        *int      `yaml:"objects"`
	RotationSpeed  *float64  `yaml:"rotation_speed"`
	AnimationSpeed *float64  `yaml:"animation_speed"`
	Wireframe      *bool     `yaml:"wireframe"`
	AutoRotate     *bool     `yaml:"auto_rotate"`
	Pointer        []float64 `yaml:"pointer"`
	Resize         []int     `yaml:"resize"`
	ResetCamera    bool      `yaml:"reset_camera"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	return &scenario, nil
}

func (s *Scenario) Validate() error {
	if len(s.Steps) == 0 {
		return fmt.Errorf("scenario %q has no steps", s.Name)
	}
	for i, st := range s.Steps {
		if st.Frames <= 0 {
			return fmt.Errorf("step %d: frames must be positive, got %d", i+1, st.Frames)
		}
		if st.Pointer != nil && len(st.Pointer) != 2 {
			return fmt.Errorf("step %d: pointer needs [x, y]", i+1)
		}
		if st.Resize != nil && len(st.Resize) != 2 {
			return fmt.Errorf("step %d: resize needs [width, height]", i+1)
		}
		if st.Preset != "" && config.GetPreset(st.Preset) == nil {
			return fmt.Errorf("step %d: unknown preset %q", i+1, st.Preset)
		}
	}
	return nil
}

// Apply returns cfg with the step's overrides. The result is not clamped.
func (st Step) Apply(cfg scene.Config) scene.Config {
	if st.Preset != "" {
		if p := config.GetPreset(st.Preset); p != nil {
			cfg = p.SceneConfig()
		}
	}
	if st.Objects != nil {
		cfg.ObjectCount = *st.Objects
	}
	if st.RotationSpeed != nil {
		cfg.RotationSpeed = *st.RotationSpeed
	}
	if st.AnimationSpeed != nil {
		cfg.AnimationSpeed = *st.AnimationSpeed
	}
	if st.Wireframe != nil {
		cfg.Wireframe = *st.Wireframe
	}
	if st.AutoRotate != nil {
		cfg.AutoRotate = *st.AutoRotate
	}
	return cfg
}

// StepResult is what one step rendered.
type StepResult struct {
	Name   string
	Config scene.Config
	Result *loop.Result
}

// RunnerFactory returns a loop runner for the given number of frames. All
// runners of one scenario should share a clock.
type RunnerFactory func(frames int) *loop.Runner

// RunScenario executes all steps against a started runtime.
func RunScenario(ctx context.Context, scenario *Scenario, rt *scene.Runtime, newRunner RunnerFactory, logger *slog.Logger) ([]StepResult, error) {
	if logger == nil {
		logger = slog.Default()
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step-%d", i+1)
		}

		cfg := rt.UpdateConfig(step.Apply)
		if step.Resize != nil {
			if err := rt.OnResize(step.Resize[0], step.Resize[1]); err != nil {
				return results, fmt.Errorf("step %d: %w", i+1, err)
			}
		}
		if step.Pointer != nil {
			rt.OnPointerMove(step.Pointer[0], step.Pointer[1])
		}
		if step.ResetCamera {
			rt.ResetCamera()
		}
		logger.Info("scenario step", "step", i+1, "name", name, "frames", step.Frames,
			"objects", cfg.ObjectCount, "wireframe", cfg.Wireframe, "orbit", cfg.AutoRotate)

		res, err := newRunner(step.Frames).Run(ctx, rt)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, StepResult{Name: name, Config: cfg, Result: res})
	}

	return results, nil
}

// Frames concatenates the per-frame stats of every step.
func Frames(results []StepResult) []scene.FrameStats {
	n := 0
	for _, r := range results {
		n += len(r.Result.Stats)
	}
	out := make([]scene.FrameStats, 0, n)
	for _, r := range results {
		out = append(out, r.Result.Stats...)
	}
	return out
}
