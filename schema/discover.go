package schema

import (
	"sort"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"
)

// ============================================================================
// DISCOVERY: Column classification from a parsed frame
// ============================================================================
// Pipeline per column:
//   1. gota type → role (string → dimension, int/float → measure, bool → skip)
//   2. integer measures unique per row are flagged as identifiers
//   3. dimensions get sample values and a cardinality hint
// ============================================================================

const maxSamples = 10

// DiscoverFromFrame classifies every column of a parsed frame.
func DiscoverFromFrame(df dataframe.DataFrame, name string) (*Config, error) {
	if df.Err != nil {
		return nil, errors.Wrap(df.Err, "frame carries an error")
	}
	names := df.Names()
	if len(names) == 0 {
		return nil, errors.New("frame has no columns")
	}
	if name == "" {
		name = "Auto-discovered Dataset"
	}

	config := &Config{Name: name}
	types := df.Types()
	rows := df.Nrow()

	for i, col := range names {
		s := df.Col(col)
		switch types[i] {
		case series.String:
			config.Dimensions = append(config.Dimensions, analyzeDimension(col, s.Records()))
		case series.Int:
			config.Measures = append(config.Measures, MeasureMeta{
				Key:          col,
				DisplayName:  toDisplayName(col),
				Integer:      true,
				IsIdentifier: rows > 10 && uniqueCount(s.Records()) == rows,
			})
		case series.Float:
			config.Measures = append(config.Measures, MeasureMeta{
				Key:         col,
				DisplayName: toDisplayName(col),
			})
		default:
			config.SkippedColumns = append(config.SkippedColumns, SkippedColumn{
				Column: col,
				Reason: "Unsupported column type " + string(types[i]),
			})
		}
	}

	return config, nil
}

// Require checks that every contracted column is present with the right role.
func (c Config) Require(dimensions, measures []string) error {
	var missing []string
	for _, key := range dimensions {
		if !c.HasDimension(key) {
			missing = append(missing, key)
		}
	}
	for _, key := range measures {
		if !c.HasMeasure(key) {
			missing = append(missing, key+" (numeric)")
		}
	}
	if len(missing) > 0 {
		return errors.Errorf("missing contracted columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

func analyzeDimension(key string, values []string) DimensionMeta {
	unique := make(map[string]bool)
	for _, v := range values {
		unique[v] = true
	}

	samples := make([]string, 0, len(unique))
	for v := range unique {
		samples = append(samples, v)
	}
	sort.Strings(samples)
	if len(samples) > maxSamples {
		samples = samples[:maxSamples]
	}

	hint := "high"
	switch {
	case len(unique) <= 10:
		hint = "low"
	case len(unique) <= 100:
		hint = "medium"
	}

	return DimensionMeta{
		Key:             key,
		DisplayName:     toDisplayName(key),
		SampleValues:    samples,
		CardinalityHint: hint,
	}
}

func uniqueCount(values []string) int {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	return len(seen)
}

// toDisplayName converts "PetalLengthCm" → "Petal Length (cm)".
func toDisplayName(s string) string {
	unit := ""
	if strings.HasSuffix(s, "Cm") && len(s) > 2 {
		s = strings.TrimSuffix(s, "Cm")
		unit = " (cm)"
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String() + unit
}
