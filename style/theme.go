package style

import (
	"sort"
	"strings"
)

// Theme is a named set of chart colors. Colors are "#rrggbb" strings.
type Theme struct {
	Name       string
	Background string
	Canvas     string
	Text       string
	Axis       string
	Grid       string
	GridAlpha  float64
	GridDash   []float64 // dash pattern in points, nil for solid
	Palette    []string
}

// DefaultThemeName names the theme used when no preference resolves.
const DefaultThemeName = "default"

var themes = map[string]Theme{
	DefaultThemeName: {
		Name:       DefaultThemeName,
		Background: "#ffffff",
		Canvas:     "#ffffff",
		Text:       "#333333",
		Axis:       "#333333",
		Grid:       "#b0b0b0",
		GridAlpha:  0.7,
		GridDash:   []float64{3.7, 1.6},
		Palette:    []string{"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd"},
	},
	"pastel": {
		Name:       "pastel",
		Background: "#ffffff",
		Canvas:     "#ffffff",
		Text:       "#262626",
		Axis:       "#cccccc",
		Grid:       "#cccccc",
		GridAlpha:  0.7,
		GridDash:   []float64{3.7, 1.6},
		Palette:    []string{"#a1c9f4", "#ffb482", "#8de5a1", "#ff9f9b", "#d0bbff"},
	},
	"pastel-classic": {
		Name:       "pastel-classic",
		Background: "#ffffff",
		Canvas:     "#eaeaf2",
		Text:       "#262626",
		Axis:       "#ffffff",
		Grid:       "#ffffff",
		GridAlpha:  1,
		Palette:    []string{"#92c6ff", "#97f0aa", "#ff9f9a", "#d0bbff", "#fffea3"},
	},
}

// LookupTheme finds a registered theme by case-insensitive name.
func LookupTheme(name string) (Theme, bool) {
	t, ok := themes[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// ThemeNames lists the registered themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for n := range themes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
