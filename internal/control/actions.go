package control

import "github.com/san-kum/orbitscene/internal/scene"

const (
	RotationStep  = 0.5
	AnimationStep = 0.1
)

// Action is one user-level command.
type Action int

const (
	None Action = iota
	RotationUp
	RotationDown
	MoreObjects
	FewerObjects
	Faster
	Slower
	ToggleWireframe
	ToggleOrbit
	ResetCamera
	CycleTheme
	ToggleHelp
	Quit
)

var actionNames = map[Action]string{
	None:            "none",
	RotationUp:      "rotation+",
	RotationDown:    "rotation-",
	MoreObjects:     "objects+",
	FewerObjects:    "objects-",
	Faster:          "speed+",
	Slower:          "speed-",
	ToggleWireframe: "wireframe",
	ToggleOrbit:     "orbit",
	ResetCamera:     "reset camera",
	CycleTheme:      "theme",
	ToggleHelp:      "help",
	Quit:            "quit",
}

func (a Action) String() string {
	if n, ok := actionNames[a]; ok {
		return n
	}
	return "unknown"
}

// keys is the binding table shared by every host. Hosts with their own
// key codes map them to these names first.
var keys = map[string]Action{
	"+":      RotationUp,
	"=":      RotationUp,
	"-":      RotationDown,
	"_":      RotationDown,
	"]":      MoreObjects,
	"[":      FewerObjects,
	">":      Faster,
	".":      Faster,
	"<":      Slower,
	",":      Slower,
	"w":      ToggleWireframe,
	"o":      ToggleOrbit,
	"c":      ResetCamera,
	"t":      CycleTheme,
	"?":      ToggleHelp,
	"q":      Quit,
	"esc":    Quit,
	"ctrl+c": Quit,
}

func Lookup(key string) (Action, bool) {
	a, ok := keys[key]
	return a, ok
}

// Bindings lists the help-text rows in display order.
func Bindings() [][2]string {
	return [][2]string{
		{"+ / -", "rotation speed"},
		{"[ / ]", "object count"},
		{"< / >", "animation speed"},
		{"w", "toggle wireframe"},
		{"o", "toggle orbit"},
		{"c", "reset camera"},
		{"t", "cycle theme"},
		{"?", "help"},
		{"q", "quit"},
	}
}

// Reduce returns cfg with a applied. Actions that do not change the
// configuration return it unchanged. Count steps stay within
// [scene.MinObjects, scene.MaxObjects]; speeds are left for the runtime to
// clamp.
func Reduce(a Action, cfg scene.Config) scene.Config {
	switch a {
	case RotationUp:
		cfg.RotationSpeed += RotationStep
	case RotationDown:
		cfg.RotationSpeed -= RotationStep
	case MoreObjects:
		cfg.ObjectCount = scene.ClampCount(cfg.ObjectCount + 1)
	case FewerObjects:
		cfg.ObjectCount = scene.ClampCount(cfg.ObjectCount - 1)
	case Faster:
		cfg.AnimationSpeed += AnimationStep
	case Slower:
		cfg.AnimationSpeed -= AnimationStep
	case ToggleWireframe:
		cfg.Wireframe = !cfg.Wireframe
	case ToggleOrbit:
		cfg.AutoRotate = !cfg.AutoRotate
	}
	return cfg
}

// Target is the part of scene.Runtime actions are applied to.
type Target interface {
	UpdateConfig(fn func(scene.Config) scene.Config) scene.Config
	ResetCamera()
}

// Apply performs the scene-side effect of a. It reports whether a was
// handled; host-only actions (theme, help, quit) return false.
func Apply(t Target, a Action) bool {
	switch a {
	case ResetCamera:
		t.ResetCamera()
	case RotationUp, RotationDown, MoreObjects, FewerObjects,
		Faster, Slower, ToggleWireframe, ToggleOrbit:
		t.UpdateConfig(func(c scene.Config) scene.Config { return Reduce(a, c) })
	default:
		return false
	}
	return true
}
