package dataset

import (
	"github.com/spektr-org/irisviz/schema"
)

// Record is one row of the Iris table.
type Record struct {
	SepalLength float64 `json:"sepalLengthCm"`
	SepalWidth  float64 `json:"sepalWidthCm"`
	PetalLength float64 `json:"petalLengthCm"`
	PetalWidth  float64 `json:"petalWidthCm"`
	Species     string  `json:"species"`
}

// Table is the loaded dataset, stored by column. It is immutable after
// Load and implements engine.RecordView.
type Table struct {
	rows     int
	dims     map[string][]string
	measures map[string][]float64
	dimKeys  []string
	mesKeys  []string
	schema   schema.Config
}

// Len returns the number of records.
func (t *Table) Len() int { return t.rows }

// Dimension returns the string value of column key at row i.
func (t *Table) Dimension(i int, key string) string {
	col, ok := t.dims[key]
	if !ok || i < 0 || i >= t.rows {
		return ""
	}
	return col[i]
}

// Measure returns the numeric value of column key at row i.
func (t *Table) Measure(i int, key string) float64 {
	col, ok := t.measures[key]
	if !ok || i < 0 || i >= t.rows {
		return 0
	}
	return col[i]
}

// DimensionKeys returns the string columns in header order.
func (t *Table) DimensionKeys() []string { return t.dimKeys }

// MeasureKeys returns the numeric columns in header order.
func (t *Table) MeasureKeys() []string { return t.mesKeys }

// Schema returns the discovered column classification.
func (t *Table) Schema() schema.Config { return t.schema }

// Record returns row i as a typed record.
func (t *Table) Record(i int) Record {
	return Record{
		SepalLength: t.Measure(i, schema.ColumnSepalLength),
		SepalWidth:  t.Measure(i, schema.ColumnSepalWidth),
		PetalLength: t.Measure(i, schema.ColumnPetalLength),
		PetalWidth:  t.Measure(i, schema.ColumnPetalWidth),
		Species:     t.Dimension(i, schema.ColumnSpecies),
	}
}

// Records returns every row as typed records.
func (t *Table) Records() []Record {
	out := make([]Record, t.rows)
	for i := range out {
		out[i] = t.Record(i)
	}
	return out
}
