package engine

import (
	"math"

	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
)

// ============================================================================
// CORRELATION: Pairwise Pearson matrix over numeric measures
// ============================================================================
// Each pair is computed once and mirrored, so the matrix is exactly
// symmetric. The diagonal is exactly 1. Pairs involving a constant column
// have no defined coefficient and are NaN.
// ============================================================================

// Correlate computes the Pearson correlation matrix over the given measures.
func Correlate(view RecordView, measures []string) (*CorrelationMatrix, error) {
	if len(measures) == 0 {
		return nil, errors.New("no numeric columns to correlate")
	}
	if view.Len() < 2 {
		return nil, errors.Errorf("need at least 2 records to correlate, have %d", view.Len())
	}

	columns := make([][]float64, len(measures))
	for i, m := range measures {
		columns[i] = Values(view, m)
	}

	n := len(measures)
	values := make([][]float64, n)
	for i := range values {
		values[i] = make([]float64, n)
		values[i][i] = 1
	}

	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			r := pearson(columns[i], columns[j])
			values[i][j] = r
			values[j][i] = r
		}
	}

	return &CorrelationMatrix{
		Keys:   append([]string(nil), measures...),
		Values: values,
	}, nil
}

func pearson(a, b []float64) float64 {
	if constant(a) || constant(b) {
		return math.NaN()
	}
	r, err := stats.Pearson(a, b)
	if err != nil || math.IsInf(r, 0) {
		return math.NaN()
	}
	return r
}

func constant(values []float64) bool {
	sd, err := stats.StandardDeviationPopulation(values)
	return err != nil || sd == 0
}
