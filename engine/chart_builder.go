package engine

import (
	"math"
	"strconv"

	"github.com/pkg/errors"
)

// ============================================================================
// CHART BUILDER: Produces ChartConfig from aggregates
// ============================================================================
// Categorical charts place category i at x = i. Annotation offsets are in
// data units of the value axis.
// ============================================================================

const (
	barLabelOffset    = 1.0
	medianLabelOffset = 0.1
	medianLabelSize   = 9.0
)

// Labels carries the textual frame and size of a chart.
type Labels struct {
	Title    string
	XAxis    string
	YAxis    string
	WidthIn  float64
	HeightIn float64
}

func newChart(chartType string, l Labels) *ChartConfig {
	return &ChartConfig{
		ChartType: chartType,
		Title:     l.Title,
		XAxis:     l.XAxis,
		YAxis:     l.YAxis,
		WidthIn:   l.WidthIn,
		HeightIn:  l.HeightIn,
	}
}

// BuildBarChart produces one bar per group, colored from palette in group
// order, each annotated above its top with its value.
func BuildBarChart(l Labels, groups []Group, palette []string) *ChartConfig {
	if len(groups) == 0 {
		return nil
	}

	config := newChart(ChartBar, l)
	config.ShowGrid = true
	config.GridAxis = "y"

	for i, g := range groups {
		config.Bars = append(config.Bars, ChartPoint{Label: g.Label, Value: g.Value})
		config.Annotations = append(config.Annotations, Annotation{
			Text: formatCount(g.Value),
			X:    float64(i),
			Y:    g.Value + barLabelOffset,
		})
	}
	config.Colors = assignColors(palette, len(groups))
	return config
}

// BuildScatterChart colors each series through colorOf. An unknown series
// name fails the whole chart.
func BuildScatterChart(l Labels, series []PointSeries, colorOf func(name string) (string, error)) (*ChartConfig, error) {
	if len(series) == 0 {
		return nil, errors.New("no point series to plot")
	}

	config := newChart(ChartScatter, l)
	config.ShowGrid = true
	config.GridAxis = "both"
	config.ShowLegend = true

	for _, s := range series {
		color, err := colorOf(s.Name)
		if err != nil {
			return nil, err
		}
		s.Color = color
		config.Series = append(config.Series, s)
		config.Colors = append(config.Colors, color)
	}
	return config, nil
}

// BuildBoxChart produces one box per summary with a "Median: v" label above
// each median.
func BuildBoxChart(l Labels, boxes []BoxSummary, palette []string) *ChartConfig {
	if len(boxes) == 0 {
		return nil
	}

	config := newChart(ChartBox, l)
	config.ShowGrid = true
	config.GridAxis = "y"
	config.Boxes = boxes
	config.Colors = assignColors(palette, len(boxes))

	for i, b := range boxes {
		config.Annotations = append(config.Annotations, Annotation{
			Text:     "Median: " + FormatFloat(b.Median),
			X:        float64(i),
			Y:        b.Median + medianLabelOffset,
			FontSize: medianLabelSize,
		})
	}
	return config
}

// BuildHeatmap produces a masked correlation heatmap description.
func BuildHeatmap(l Labels, matrix *CorrelationMatrix) *ChartConfig {
	if matrix == nil || matrix.Size() == 0 {
		return nil
	}
	config := newChart(ChartHeatmap, l)
	config.Matrix = matrix
	return config
}

// VisibleCells returns the coordinates of the cells a heatmap draws:
// the strictly lower triangle.
func VisibleCells(m *CorrelationMatrix) [][2]int {
	var cells [][2]int
	for i := 0; i < m.Size(); i++ {
		for j := 0; j < m.Size(); j++ {
			if !m.Masked(i, j) {
				cells = append(cells, [2]int{i, j})
			}
		}
	}
	return cells
}

func assignColors(palette []string, count int) []string {
	if len(palette) == 0 {
		return nil
	}
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = palette[i%len(palette)]
	}
	return colors
}

func formatCount(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatInt(int64(v), 10)
	}
	return FormatFixed2(v)
}
