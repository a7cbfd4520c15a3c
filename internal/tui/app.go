package tui

import (
	"errors"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/orbitscene/internal/control"
	"github.com/san-kum/orbitscene/internal/scene"
	"github.com/san-kum/orbitscene/internal/viz"
)

// columns reserved for the stats panel and its border
const panelReserve = viz.PanelWidth + 4

type tickMsg time.Time

// model is the bubbletea host for one scene runtime. It is the UI layer:
// it writes configuration records and displays the stats the runtime
// produces.
type model struct {
	rt            *scene.Runtime
	renderer      *viz.CanvasRenderer
	logger        *slog.Logger
	theme         viz.Theme
	interval      time.Duration
	stats         scene.FrameStats
	showHelp      bool
	width, height int
	lastErr       error
}

func newModel(rt *scene.Runtime, r *viz.CanvasRenderer, theme viz.Theme, fps int, logger *slog.Logger) model {
	if fps <= 0 {
		fps = 60
	}
	return model{
		rt:       rt,
		renderer: r,
		logger:   logger,
		theme:    theme,
		interval: time.Second / time.Duration(fps),
		width:    80,
		height:   24,
	}
}

func (m model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Init() tea.Cmd { return m.tick() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		w, h := canvasPixels(msg.Width, msg.Height)
		if err := m.rt.OnResize(w, h); err != nil {
			m.logger.Debug("terminal too small", "cols", msg.Width, "rows", msg.Height)
		}
		return m, nil
	case tea.MouseMsg:
		// cell centers in sub-pixels; the canvas starts at the top-left cell
		m.rt.OnPointerMove(float64(msg.X*2+1), float64(msg.Y*4+2))
		return m, nil
	case tickMsg:
		stats, err := m.rt.Tick()
		m.stats, m.lastErr = stats, err
		if err != nil && !errors.Is(err, scene.ErrNotReady) {
			m.logger.Warn("frame failed", "err", err)
		}
		return m, m.tick()
	}
	return m, nil
}

func canvasPixels(cols, rows int) (int, int) {
	return (cols - panelReserve) * 2, (rows - 1) * 4
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	a, ok := control.Lookup(msg.String())
	if !ok {
		return m, nil
	}
	switch a {
	case control.Quit:
		return m, tea.Quit
	case control.ToggleHelp:
		m.showHelp = !m.showHelp
	case control.CycleTheme:
		m.theme = viz.NextTheme(m.theme.Name)
		m.renderer.SetTheme(m.theme)
	default:
		control.Apply(m.rt, a)
		cfg := m.rt.Config()
		m.logger.Debug("control", "action", a,
			"rotation", cfg.RotationSpeed, "count", cfg.ObjectCount,
			"speed", cfg.AnimationSpeed, "wireframe", cfg.Wireframe, "orbit", cfg.AutoRotate)
	}
	return m, nil
}

func (m model) View() string {
	if m.showHelp {
		return viz.HelpText()
	}
	canvas := m.renderer.Output()
	if canvas == "" {
		canvas = viz.Subtle.Render("waiting for first frame…")
		if m.lastErr != nil {
			canvas = viz.Subtle.Render(m.lastErr.Error())
		}
	}
	panel := viz.StatsPanel(m.stats, m.rt.Config(), m.rt.FPSHistory(), m.theme)
	return lipgloss.JoinHorizontal(lipgloss.Top, canvas, panel)
}

// Options configures Run.
type Options struct {
	FPS    int
	Theme  string
	Logger *slog.Logger
}

// Run starts rt on r and blocks until the user quits. rt must have been
// built with r as its renderer.
func Run(rt *scene.Runtime, r *viz.CanvasRenderer, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if err := rt.Start(); err != nil {
		return err
	}
	defer rt.Stop()

	m := newModel(rt, r, viz.GetTheme(opts.Theme), opts.FPS, logger)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}

// DefaultViewport is the canvas size in sub-pixels for an 80x24 terminal,
// used until the first window-size message arrives.
func DefaultViewport() (int, int) { return canvasPixels(80, 24) }
