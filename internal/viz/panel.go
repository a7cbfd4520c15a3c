package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/orbitscene/internal/control"
	"github.com/san-kum/orbitscene/internal/scene"
)

// PanelWidth is the column width the stats panel occupies.
const PanelWidth = 34

// FPSPlot draws the FPS history of closed sampling windows. It returns an
// empty string until at least two windows have closed.
func FPSPlot(history []float64, width, height int) string {
	if len(history) < 2 {
		return ""
	}
	if len(history) > width {
		history = history[len(history)-width:]
	}
	return asciigraph.Plot(history,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(0),
		asciigraph.Caption("fps / window"),
	)
}

func metric(label, value string) string {
	return MetricLabel.Render(label) + MetricValue.Render(value)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// StatsPanel renders the readout and the live configuration.
func StatsPanel(stats scene.FrameStats, cfg scene.Config, history []float64, theme Theme) string {
	var s strings.Builder
	s.WriteString(GradientText("ORBITSCENE", theme.TitleFrom, theme.TitleTo) + "\n")

	status := StatusRunning.Render("● ORBITING")
	if !cfg.AutoRotate {
		status = StatusFrozen.Render("■ FROZEN")
	}
	s.WriteString(status + "\n")
	s.WriteString(Separator(PanelWidth-4) + "\n")

	s.WriteString(metric("fps", fmt.Sprintf("%d", stats.FPS)) + "\n")
	s.WriteString(metric("objects", fmt.Sprintf("%d", stats.Objects)) + "\n")
	s.WriteString(metric("triangles", fmt.Sprintf("%d", stats.Triangles)) + "\n")
	s.WriteString(Separator(PanelWidth-4) + "\n")

	s.WriteString(metric("rotation", fmt.Sprintf("%.1f", cfg.RotationSpeed)) + "\n")
	s.WriteString(metric("count", fmt.Sprintf("%d", cfg.ObjectCount)) + "\n")
	s.WriteString(metric("speed", fmt.Sprintf("%.1f", cfg.AnimationSpeed)) + "\n")
	s.WriteString(metric("wireframe", onOff(cfg.Wireframe)) + "\n")
	s.WriteString(metric("orbit", onOff(cfg.AutoRotate)) + "\n")

	if plot := FPSPlot(history, PanelWidth-12, 4); plot != "" {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Plot).Render(plot) + "\n")
	}

	s.WriteString("\n" + KeyHint.Render("? help  q quit"))
	return GlassPanel.Width(PanelWidth).Render(s.String())
}

// HelpText lists the key bindings.
func HelpText() string {
	rows := control.Bindings()
	lines := make([]string, len(rows))
	for i, b := range rows {
		lines[i] = fmt.Sprintf("%-6s %s", b[0], b[1])
	}
	return GlassPanel.Render(KeyHint.Render(strings.Join(lines, "\n")))
}
