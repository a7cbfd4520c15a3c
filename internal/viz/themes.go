package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the parts of a frame that are not entities. Entity colors
// come from the scene's hue cycle and are never themed.
type Theme struct {
	Name string

	// title gradient in the stats panel
	TitleFrom lipgloss.Color
	TitleTo   lipgloss.Color

	// orbit ring drawn under the entities
	Ring lipgloss.Color

	// fps history in the panel and in exported series
	Plot lipgloss.Color
}

var (
	ThemeNebula = Theme{
		Name:      "nebula",
		TitleFrom: lipgloss.Color("#b967ff"),
		TitleTo:   lipgloss.Color("#05ffa1"),
		Ring:      lipgloss.Color("#3d2b5c"),
		Plot:      lipgloss.Color("#fffb96"),
	}

	ThemePhosphor = Theme{
		Name:      "phosphor",
		TitleFrom: lipgloss.Color("#33ff66"),
		TitleTo:   lipgloss.Color("#00aa44"),
		Ring:      lipgloss.Color("#0d3d1a"),
		Plot:      lipgloss.Color("#88ff88"),
	}

	ThemeBlueprint = Theme{
		Name:      "blueprint",
		TitleFrom: lipgloss.Color("#ffffff"),
		TitleTo:   lipgloss.Color("#7fb3ff"),
		Ring:      lipgloss.Color("#2a4a7a"),
		Plot:      lipgloss.Color("#7fb3ff"),
	}

	ThemeDeepSea = Theme{
		Name:      "deepsea",
		TitleFrom: lipgloss.Color("#00c2ff"),
		TitleTo:   lipgloss.Color("#00ffd5"),
		Ring:      lipgloss.Color("#0f3a52"),
		Plot:      lipgloss.Color("#ffd166"),
	}

	ThemeDusk = Theme{
		Name:      "dusk",
		TitleFrom: lipgloss.Color("#ff7e5f"),
		TitleTo:   lipgloss.Color("#feb47b"),
		Ring:      lipgloss.Color("#4a2f3f"),
		Plot:      lipgloss.Color("#ff9ff3"),
	}

	// Themes is the cycle order of the theme key.
	Themes = []Theme{
		ThemeNebula,
		ThemePhosphor,
		ThemeBlueprint,
		ThemeDeepSea,
		ThemeDusk,
	}
)

// GetTheme returns a theme by name, or nebula for an unknown name.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeNebula
}

// NextTheme returns the theme after name, wrapping around
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
