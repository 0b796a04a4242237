package engine

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var testPalette = []string{"#111111", "#222222", "#333333"}

func TestBuildBarChartAnnotatesEveryBar(t *testing.T) {
	groups := CountBy(fixture(), "species")
	config := BuildBarChart(Labels{Title: "Counts"}, groups, testPalette)
	if config == nil {
		t.Fatal("BuildBarChart returned nil")
	}
	if config.ChartType != ChartBar || config.Title != "Counts" {
		t.Errorf("header = %q/%q", config.ChartType, config.Title)
	}
	if len(config.Bars) != 3 || len(config.Annotations) != 3 {
		t.Fatalf("bars=%d annotations=%d, want 3/3", len(config.Bars), len(config.Annotations))
	}
	if diff := cmp.Diff(testPalette, config.Colors); diff != "" {
		t.Errorf("colors mismatch (-want +got):\n%s", diff)
	}

	want := []Annotation{
		{Text: "3", X: 0, Y: 4},
		{Text: "2", X: 1, Y: 3},
		{Text: "2", X: 2, Y: 3},
	}
	if diff := cmp.Diff(want, config.Annotations); diff != "" {
		t.Errorf("annotations mismatch (-want +got):\n%s", diff)
	}

	if BuildBarChart(Labels{}, nil, testPalette) != nil {
		t.Error("no groups should produce no chart")
	}
}

func TestBuildScatterChartFailsOnUnknownSeries(t *testing.T) {
	series := GroupPoints(fixture(), "species", "petal_length", "petal_width")
	known := map[string]string{"setosa": "#a", "versicolor": "#b"}
	errUnknown := errors.New("unknown")

	_, err := BuildScatterChart(Labels{}, series, func(name string) (string, error) {
		c, ok := known[name]
		if !ok {
			return "", errUnknown
		}
		return c, nil
	})
	if err != errUnknown {
		t.Fatalf("err = %v, want the color lookup error", err)
	}

	known["virginica"] = "#c"
	config, err := BuildScatterChart(Labels{}, series, func(name string) (string, error) { return known[name], nil })
	if err != nil {
		t.Fatalf("BuildScatterChart failed: %v", err)
	}
	if diff := cmp.Diff([]string{"#a", "#b", "#c"}, config.Colors); diff != "" {
		t.Errorf("colors mismatch (-want +got):\n%s", diff)
	}
	if !config.ShowLegend {
		t.Error("scatter chart should show a legend")
	}
}

func TestBuildBoxChartMedianLabels(t *testing.T) {
	boxes := []BoxSummary{{Label: "a", Median: 5}, {Label: "b", Median: 5.9}}
	config := BuildBoxChart(Labels{}, boxes, testPalette)
	if len(config.Annotations) != 2 {
		t.Fatalf("annotations = %d", len(config.Annotations))
	}
	if config.Annotations[0].Text != "Median: 5.0" || config.Annotations[1].Text != "Median: 5.9" {
		t.Errorf("labels = %q, %q", config.Annotations[0].Text, config.Annotations[1].Text)
	}
	if config.Annotations[1].X != 1 || config.Annotations[1].Y != 5.9+medianLabelOffset {
		t.Errorf("label position = %+v", config.Annotations[1])
	}
}

func TestVisibleCellsIsStrictLowerTriangle(t *testing.T) {
	m := &CorrelationMatrix{Keys: []string{"a", "b", "c", "d"}}
	cells := VisibleCells(m)
	want := [][2]int{{1, 0}, {2, 0}, {2, 1}, {3, 0}, {3, 1}, {3, 2}}
	if diff := cmp.Diff(want, cells); diff != "" {
		t.Errorf("cells mismatch (-want +got):\n%s", diff)
	}
	if BuildHeatmap(Labels{}, nil) != nil {
		t.Error("nil matrix should produce no chart")
	}
}

func TestFormatFloat(t *testing.T) {
	cases := map[float64]string{
		5:       "5.0",
		5.9:     "5.9",
		6.5:     "6.5",
		6.05:    "6.05",
		-2:      "-2.0",
		0:       "0.0",
		1e16:    "1e+16",
		0.00001: "1e-05",
	}
	for in, want := range cases {
		if got := FormatFloat(in); got != want {
			t.Errorf("FormatFloat(%v) = %q, want %q", in, got, want)
		}
	}
	if FormatFixed2(0.87175) != "0.87" {
		t.Errorf("FormatFixed2 = %q", FormatFixed2(0.87175))
	}
}
