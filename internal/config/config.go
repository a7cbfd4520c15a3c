package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/orbitscene/internal/scene"
)

const (
	DefaultRotationSpeed  = 1.0
	DefaultObjectCount    = 8
	DefaultAnimationSpeed = 1.0
	DefaultFPS            = 60
	DefaultTheme          = "nebula"
	DefaultRotationMode   = "per_tick"
	DefaultLogLevel       = "info"
)

type Config struct {
	Scene        SceneConfig `yaml:"scene"`
	Seed         int64       `yaml:"seed"`
	FPS          int         `yaml:"fps"`
	Theme        string      `yaml:"theme"`
	RotationMode string      `yaml:"rotation_mode"`
	Strict       bool        `yaml:"strict"`
	LogLevel     string      `yaml:"log_level"`
}

type SceneConfig struct {
	RotationSpeed  float64 `yaml:"rotation_speed"`
	ObjectCount    int     `yaml:"object_count"`
	AnimationSpeed float64 `yaml:"animation_speed"`
	Wireframe      bool    `yaml:"wireframe"`
	AutoRotate     bool    `yaml:"auto_rotate"`
}

func DefaultConfig() *Config {
	return &Config{
		Scene: SceneConfig{
			RotationSpeed:  DefaultRotationSpeed,
			ObjectCount:    DefaultObjectCount,
			AnimationSpeed: DefaultAnimationSpeed,
			AutoRotate:     true,
		},
		FPS:          DefaultFPS,
		Theme:        DefaultTheme,
		RotationMode: DefaultRotationMode,
		LogLevel:     DefaultLogLevel,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports values the scene would have to clamp. Loading never
// fails on them; the CLI uses this to warn.
func (c *Config) Validate() error {
	s := c.Scene
	if s.ObjectCount < scene.MinObjects || s.ObjectCount > scene.MaxObjects {
		return fmt.Errorf("object_count must be in [%d, %d], got %d", scene.MinObjects, scene.MaxObjects, s.ObjectCount)
	}
	if s.RotationSpeed < 0 || s.RotationSpeed > scene.MaxRotationSpeed {
		return fmt.Errorf("rotation_speed must be in [0, %g], got %g", scene.MaxRotationSpeed, s.RotationSpeed)
	}
	if s.AnimationSpeed < scene.MinAnimationSpeed || s.AnimationSpeed > scene.MaxAnimationSpeed {
		return fmt.Errorf("animation_speed must be in [%g, %g], got %g", scene.MinAnimationSpeed, scene.MaxAnimationSpeed, s.AnimationSpeed)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.RotationMode != "per_tick" && c.RotationMode != "per_second" {
		return fmt.Errorf("rotation_mode must be per_tick or per_second, got %q", c.RotationMode)
	}
	return nil
}

// SceneConfig converts the file form into the record the runtime reads
// each frame, clamped into range. Strict configs keep the object count as
// written.
func (c *Config) SceneConfig() scene.Config {
	sc := scene.Config{
		RotationSpeed:  c.Scene.RotationSpeed,
		ObjectCount:    c.Scene.ObjectCount,
		AnimationSpeed: c.Scene.AnimationSpeed,
		Wireframe:      c.Scene.Wireframe,
		AutoRotate:     c.Scene.AutoRotate,
	}
	if c.Strict {
		return sc.ClampSpeeds()
	}
	return sc.Clamp()
}

func (c *Config) Mode() scene.RotationMode {
	return scene.ParseRotationMode(c.RotationMode)
}
