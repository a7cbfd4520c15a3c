package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/orbitscene/internal/scene"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Scene.ObjectCount != 8 {
		t.Errorf("expected 8 objects, got %d", cfg.Scene.ObjectCount)
	}
	if !cfg.Scene.AutoRotate {
		t.Error("auto rotate should default on")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	cfg := DefaultConfig()
	cfg.Scene.ObjectCount = 12
	cfg.Scene.Wireframe = true
	cfg.Seed = 42

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch: %+v vs %+v", loaded, cfg)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := "scene:\n  object_count: 3\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Scene.ObjectCount != 3 {
		t.Errorf("expected 3 objects, got %d", cfg.Scene.ObjectCount)
	}
	if cfg.FPS != DefaultFPS || cfg.Theme != DefaultTheme {
		t.Errorf("defaults lost: fps=%d theme=%s", cfg.FPS, cfg.Theme)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("scene: [unterminated"), 0644)
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero objects", func(c *Config) { c.Scene.ObjectCount = 0 }},
		{"too many objects", func(c *Config) { c.Scene.ObjectCount = 21 }},
		{"negative rotation", func(c *Config) { c.Scene.RotationSpeed = -1 }},
		{"slow animation", func(c *Config) { c.Scene.AnimationSpeed = 0.01 }},
		{"zero fps", func(c *Config) { c.FPS = 0 }},
		{"bad mode", func(c *Config) { c.RotationMode = "sometimes" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSceneConfig_Clamps(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scene.ObjectCount = 50
	sc := cfg.SceneConfig()
	if sc.ObjectCount != 20 {
		t.Errorf("expected clamped count 20, got %d", sc.ObjectCount)
	}

	cfg.Strict = true
	cfg.Scene.AnimationSpeed = 10
	sc = cfg.SceneConfig()
	if sc.ObjectCount != 50 {
		t.Errorf("strict config should keep count 50, got %d", sc.ObjectCount)
	}
	if sc.AnimationSpeed != scene.MaxAnimationSpeed {
		t.Errorf("expected animation speed %v, got %v", scene.MaxAnimationSpeed, sc.AnimationSpeed)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("blueprint")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if !cfg.Scene.Wireframe {
		t.Error("blueprint preset should be wireframe")
	}

	cfg.Scene.ObjectCount = 1
	if Presets["blueprint"].Scene.ObjectCount == 1 {
		t.Error("GetPreset should return a copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Errorf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for _, name := range presets {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}
