package config

import "sort"

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"calm": {
		Scene: SceneConfig{RotationSpeed: 0.3, ObjectCount: 6, AnimationSpeed: 0.5, AutoRotate: true},
		FPS: DefaultFPS, Theme: "deepsea", RotationMode: DefaultRotationMode, LogLevel: DefaultLogLevel,
	},
	"busy": {
		Scene: SceneConfig{RotationSpeed: 3.0, ObjectCount: 20, AnimationSpeed: 2.0, AutoRotate: true},
		FPS: DefaultFPS, Theme: DefaultTheme, RotationMode: DefaultRotationMode, LogLevel: DefaultLogLevel,
	},
	"blueprint": {
		Scene: SceneConfig{RotationSpeed: 1.0, ObjectCount: 12, AnimationSpeed: 1.0, Wireframe: true, AutoRotate: true},
		FPS: DefaultFPS, Theme: "blueprint", RotationMode: DefaultRotationMode, LogLevel: DefaultLogLevel,
	},
	"frozen": {
		Scene: SceneConfig{RotationSpeed: 1.0, ObjectCount: 8, AnimationSpeed: 1.0, AutoRotate: false},
		FPS: DefaultFPS, Theme: "phosphor", RotationMode: DefaultRotationMode, LogLevel: DefaultLogLevel,
	},
	"steady": {
		Scene: SceneConfig{RotationSpeed: 1.0, ObjectCount: 8, AnimationSpeed: 1.0, AutoRotate: true},
		FPS: 30, Theme: "dusk", RotationMode: "per_second", LogLevel: DefaultLogLevel,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	return &cfg
}

// ListPresets returns preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
