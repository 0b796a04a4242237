package dataset

import "strings"

// LabelPrefix is stripped from species labels on load.
const LabelPrefix = "Iris-"

// Species is the closed set of Iris species.
type Species int

const (
	Setosa Species = iota
	Versicolor
	Virginica
)

var speciesNames = [...]string{
	Setosa:     "setosa",
	Versicolor: "versicolor",
	Virginica:  "virginica",
}

var speciesColors = [...]string{
	Setosa:     "#8884d8",
	Versicolor: "#82ca9d",
	Virginica:  "#ffc658",
}

// AllSpecies lists every species in canonical order.
func AllSpecies() []Species {
	return []Species{Setosa, Versicolor, Virginica}
}

func (s Species) String() string {
	if s < Setosa || s > Virginica {
		return "unknown"
	}
	return speciesNames[s]
}

// Color returns the fixed chart color of a species.
func (s Species) Color() string {
	if s < Setosa || s > Virginica {
		return ""
	}
	return speciesColors[s]
}

// ParseSpecies maps a label to its species. The label is normalized first,
// so both "Iris-setosa" and "setosa" resolve to Setosa.
func ParseSpecies(label string) (Species, error) {
	name := NormalizeSpecies(label)
	for _, s := range AllSpecies() {
		if speciesNames[s] == name {
			return s, nil
		}
	}
	return 0, &LookupError{Label: label}
}

// ColorOf resolves the chart color of a label.
func ColorOf(label string) (string, error) {
	s, err := ParseSpecies(label)
	if err != nil {
		return "", err
	}
	return s.Color(), nil
}

// Palette returns the three species colors in canonical order.
func Palette() []string {
	return append([]string(nil), speciesColors[:]...)
}

// NormalizeSpecies strips the "Iris-" prefix. Repeated prefixes are all
// removed, so normalizing twice equals normalizing once.
func NormalizeSpecies(label string) string {
	for strings.HasPrefix(label, LabelPrefix) {
		label = label[len(LabelPrefix):]
	}
	return label
}
