package engine

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
)

// ============================================================================
// AGGREGATORS: Grouping, counting and distribution summaries via RecordView
// ============================================================================
// Grouping produces SubViews (index lists into parent view).
// Group order is the order of first appearance unless a sort is applied.
// ============================================================================

// Sort modes for SortGroups.
const (
	SortNone      = ""
	SortValueDesc = "value_desc"
	SortLabelAsc  = "label_asc"
)

// whiskerReach is the box-plot whisker length in IQRs.
const whiskerReach = 1.5

// ============================================================================
// GROUPING
// ============================================================================

// GroupBy partitions a view by a dimension, in order of first appearance.
func GroupBy(view RecordView, dimension string) []Group {
	grouped := make(map[string][]int)
	order := make([]string, 0)

	for i := 0; i < view.Len(); i++ {
		key := view.Dimension(i, dimension)
		if _, exists := grouped[key]; !exists {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], i)
	}

	groups := make([]Group, 0, len(order))
	for _, key := range order {
		groups = append(groups, Group{
			Key:   key,
			Label: key,
			Count: len(grouped[key]),
			View:  newSubView(view, grouped[key]),
		})
	}
	return groups
}

// CountBy counts records per dimension value, most frequent first.
// Ties keep the order in which the values were first encountered.
func CountBy(view RecordView, dimension string) []Group {
	groups := GroupBy(view, dimension)
	for i := range groups {
		groups[i].Value = float64(groups[i].Count)
	}
	SortGroups(groups, SortValueDesc)
	return groups
}

// SortGroups sorts groups in place. The sort is stable.
func SortGroups(groups []Group, sortBy string) {
	switch sortBy {
	case SortValueDesc:
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Value > groups[j].Value })
	case SortLabelAsc:
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })
	default:
		// preserve grouping order
	}
}

// UniqueValues returns distinct values for a dimension, in order of first appearance.
func UniqueValues(view RecordView, dimension string) []string {
	seen := make(map[string]bool)
	var result []string
	for i := 0; i < view.Len(); i++ {
		val := view.Dimension(i, dimension)
		if !seen[val] {
			seen[val] = true
			result = append(result, val)
		}
	}
	return result
}

// ============================================================================
// POINT SETS
// ============================================================================

// GroupPoints returns one PointSeries per dimension value, sorted by label.
// Each point is the record's (xMeasure, yMeasure) pair without transformation.
func GroupPoints(view RecordView, dimension, xMeasure, yMeasure string) []PointSeries {
	groups := GroupBy(view, dimension)
	SortGroups(groups, SortLabelAsc)

	out := make([]PointSeries, 0, len(groups))
	for _, g := range groups {
		points := make([]XYPoint, g.View.Len())
		for i := range points {
			points[i] = XYPoint{X: g.View.Measure(i, xMeasure), Y: g.View.Measure(i, yMeasure)}
		}
		out = append(out, PointSeries{Name: g.Label, Points: points})
	}
	return out
}

// ============================================================================
// DISTRIBUTIONS
// ============================================================================

// Summarize computes the box-and-whisker summary of a set of values.
// Quartiles interpolate linearly between closest ranks. Whiskers reach the
// furthest values within 1.5 IQR of the quartiles; everything beyond is an
// outlier.
func Summarize(label string, values []float64) (BoxSummary, error) {
	if len(values) == 0 {
		return BoxSummary{}, errors.Errorf("no values for %q", label)
	}

	median, err := stats.Median(values)
	if err != nil {
		return BoxSummary{}, errors.Wrapf(err, "median of %q", label)
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	box := BoxSummary{
		Label:        label,
		Q1:           quantile(sorted, 0.25),
		Median:       median,
		Q3:           quantile(sorted, 0.75),
		LowerWhisker: math.Inf(1),
		UpperWhisker: math.Inf(-1),
		Values:       append([]float64(nil), values...),
	}

	low := box.Q1 - whiskerReach*box.IQR()
	high := box.Q3 + whiskerReach*box.IQR()
	for _, v := range values {
		if v < low || v > high {
			box.Outliers = append(box.Outliers, v)
			continue
		}
		box.LowerWhisker = math.Min(box.LowerWhisker, v)
		box.UpperWhisker = math.Max(box.UpperWhisker, v)
	}
	sort.Float64s(box.Outliers)

	return box, nil
}

// quantile returns the p-quantile of sorted values, interpolating linearly
// between the two closest ranks.
func quantile(sorted []float64, p float64) float64 {
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	if lo+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[lo] + (pos-float64(lo))*(sorted[lo+1]-sorted[lo])
}

// BoxSummaries summarizes a measure per dimension value, in order of first appearance.
func BoxSummaries(view RecordView, dimension, measure string) ([]BoxSummary, error) {
	groups := GroupBy(view, dimension)
	out := make([]BoxSummary, 0, len(groups))
	for _, g := range groups {
		box, err := Summarize(g.Label, Values(g.View, measure))
		if err != nil {
			return nil, err
		}
		out = append(out, box)
	}
	return out, nil
}

// Description holds the descriptive statistics of one measure.
type Description struct {
	Count int
	Mean  float64
	Std   float64 // sample standard deviation
	Min   float64
	Q1    float64
	Q2    float64
	Q3    float64
	Max   float64
}

// Describe computes count, mean, sample std, min, quartiles and max.
func Describe(view RecordView, measure string) (Description, error) {
	values := Values(view, measure)
	if len(values) == 0 {
		return Description{}, errors.Errorf("no values for %s", measure)
	}

	d := Description{Count: len(values), Std: math.NaN()}
	var err error
	if d.Mean, err = stats.Mean(values); err != nil {
		return d, errors.Wrapf(err, "mean of %s", measure)
	}
	if len(values) > 1 {
		if d.Std, err = stats.StandardDeviationSample(values); err != nil {
			return d, errors.Wrapf(err, "std of %s", measure)
		}
	}
	if d.Min, err = stats.Min(values); err != nil {
		return d, errors.Wrapf(err, "min of %s", measure)
	}
	if d.Max, err = stats.Max(values); err != nil {
		return d, errors.Wrapf(err, "max of %s", measure)
	}
	box, err := Summarize(measure, values)
	if err != nil {
		return d, err
	}
	d.Q1, d.Q2, d.Q3 = box.Q1, box.Median, box.Q3
	return d, nil
}
