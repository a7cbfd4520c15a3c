// Package gui hosts a scene in a native raylib window.
package gui

import (
	"errors"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/orbitscene/internal/control"
	"github.com/san-kum/orbitscene/internal/scene"
)

// App drives one runtime from the raylib event loop.
type App struct {
	rt     *scene.Runtime
	logger *slog.Logger
	quit   bool
}

func NewApp(rt *scene.Runtime, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{rt: rt, logger: logger}
}

// Run starts the runtime, which opens the window, and blocks until the
// window is closed or the user quits.
func (a *App) Run() error {
	if err := a.rt.Start(); err != nil {
		return err
	}
	defer a.rt.Stop()
	a.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !a.quit && !rl.WindowShouldClose() {
		a.Update()
		if _, err := a.rt.Tick(); err != nil {
			if errors.Is(err, scene.ErrNotReady) {
				return
			}
			a.logger.Warn("frame failed", "err", err)
		}
	}
}

// Update forwards window and input events to the runtime.
func (a *App) Update() {
	if rl.IsWindowResized() {
		if err := a.rt.OnResize(rl.GetScreenWidth(), rl.GetScreenHeight()); err != nil {
			a.logger.Debug("resize", "err", err)
		}
	}

	mouse := rl.GetMousePosition()
	a.rt.OnPointerMove(float64(mouse.X), float64(mouse.Y))

	if rl.IsKeyPressed(rl.KeyEscape) {
		a.handle(control.Quit)
	}
	for ch := rl.GetCharPressed(); ch != 0; ch = rl.GetCharPressed() {
		if act, ok := control.Lookup(string(rune(ch))); ok {
			a.handle(act)
		}
	}
}

func (a *App) handle(act control.Action) {
	switch act {
	case control.Quit:
		a.quit = true
	case control.CycleTheme, control.ToggleHelp:
		// the window has a single fixed palette and always shows its key line
	default:
		control.Apply(a.rt, act)
		a.logger.Debug("control", "action", act)
	}
}
