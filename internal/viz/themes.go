package viz

import (
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme pairs a heatmap colormap with the UI accent colors drawn around it.
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Muted   lipgloss.Color
	Warning lipgloss.Color
	// Stops of the colormap from low to high concentration.
	Stops []string
}

var (
	ThemeViridis = Theme{
		Name:    "viridis",
		Primary: lipgloss.Color("#35b779"),
		Accent:  lipgloss.Color("#fde725"),
		Muted:   lipgloss.Color("#666688"),
		Warning: lipgloss.Color("#ff8800"),
		Stops:   []string{"#440154", "#3b528b", "#21918c", "#5ec962", "#fde725"},
	}

	ThemeMagma = Theme{
		Name:    "magma",
		Primary: lipgloss.Color("#fc8961"),
		Accent:  lipgloss.Color("#fcfdbf"),
		Muted:   lipgloss.Color("#8b6b8c"),
		Warning: lipgloss.Color("#ffc048"),
		Stops:   []string{"#000004", "#51127c", "#b73779", "#fc8961", "#fcfdbf"},
	}

	ThemeOcean = Theme{
		Name:    "ocean",
		Primary: lipgloss.Color("#00a8cc"),
		Accent:  lipgloss.Color("#ffd700"),
		Muted:   lipgloss.Color("#4488aa"),
		Warning: lipgloss.Color("#ffcc00"),
		Stops:   []string{"#001a33", "#0077be", "#00a8cc", "#e0f0ff"},
	}

	ThemeRetro = Theme{
		Name:    "retro",
		Primary: lipgloss.Color("#00ff00"),
		Accent:  lipgloss.Color("#88ff88"),
		Muted:   lipgloss.Color("#005500"),
		Warning: lipgloss.Color("#ffff00"),
		Stops:   []string{"#001100", "#00ff00"},
	}

	ThemeGray = Theme{
		Name:    "gray",
		Primary: lipgloss.Color("#ffffff"),
		Accent:  lipgloss.Color("#0088ff"),
		Muted:   lipgloss.Color("#888888"),
		Warning: lipgloss.Color("#ffaa00"),
		Stops:   []string{"#000000", "#ffffff"},
	}

	CurrentTheme = ThemeViridis

	Themes = []Theme{
		ThemeViridis,
		ThemeMagma,
		ThemeOcean,
		ThemeRetro,
		ThemeGray,
	}
)

// GetTheme returns a theme by name, falling back to viridis.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeViridis
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// NextTheme returns the theme after t in Themes, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// At maps a normalized value in [0, 1] onto the colormap. Values outside
// the range are clamped.
func (t Theme) At(v float64) colorful.Color {
	stops := t.Stops
	if len(stops) == 0 {
		stops = ThemeGray.Stops
	}
	if len(stops) == 1 {
		c, _ := colorful.Hex(stops[0])
		return c
	}

	v = clamp01(v)
	pos := v * float64(len(stops)-1)
	i := int(pos)
	if i >= len(stops)-1 {
		i = len(stops) - 2
	}
	lo, _ := colorful.Hex(stops[i])
	hi, _ := colorful.Hex(stops[i+1])
	return lo.BlendLab(hi, pos-float64(i)).Clamped()
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
