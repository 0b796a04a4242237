package dataset

import (
	"io"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/spektr-org/irisviz/schema"
)

// ============================================================================
// LOADER: Iris CSV → Table
// ============================================================================
// Parsing and type detection are done by gota. Species is forced to string;
// every other column keeps its detected type. The only transformation is
// species label normalization.
// ============================================================================

// Load reads the CSV file at path into a Table.
// A missing or unreadable file yields *FileAccessError; malformed content
// yields *ParseError.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}
	defer f.Close()

	table, err := Read(f)
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			pe.Path = path
		}
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"path":     path,
		"rows":     table.Len(),
		"measures": len(table.MeasureKeys()),
	}).Debug("Dataset loaded")
	return table, nil
}

// Read parses CSV content into a Table.
func Read(r io.Reader) (*Table, error) {
	df := dataframe.ReadCSV(r, dataframe.WithTypes(map[string]series.Type{
		schema.ColumnSpecies: series.String,
	}))
	if df.Err != nil {
		return nil, &ParseError{Err: errors.Wrap(df.Err, "reading csv")}
	}

	sch, err := schema.DiscoverFromFrame(df, "Iris")
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	if err := sch.Require(schema.ContractDimensions(), schema.ContractMeasures()); err != nil {
		return nil, &ParseError{Err: err}
	}

	t := &Table{
		rows:     df.Nrow(),
		dims:     make(map[string][]string, len(sch.Dimensions)),
		measures: make(map[string][]float64, len(sch.Measures)),
		dimKeys:  sch.DimensionKeys(),
		mesKeys:  sch.MeasureKeys(),
		schema:   *sch,
	}

	for _, key := range t.dimKeys {
		values := df.Col(key).Records()
		if key == schema.ColumnSpecies {
			for i, v := range values {
				values[i] = NormalizeSpecies(v)
			}
		}
		t.dims[key] = values
	}
	for _, key := range t.mesKeys {
		t.measures[key] = df.Col(key).Float()
	}

	t.normalizeSchemaSamples()
	return t, nil
}

// normalizeSchemaSamples keeps the discovered species samples in line with
// the normalized column.
func (t *Table) normalizeSchemaSamples() {
	dims := append([]schema.DimensionMeta(nil), t.schema.Dimensions...)
	for i, d := range dims {
		if d.Key != schema.ColumnSpecies {
			continue
		}
		seen := make(map[string]bool, len(d.SampleValues))
		samples := make([]string, 0, len(d.SampleValues))
		for _, v := range d.SampleValues {
			v = NormalizeSpecies(v)
			if !seen[v] {
				seen[v] = true
				samples = append(samples, v)
			}
		}
		dims[i].SampleValues = samples
	}
	t.schema.Dimensions = dims
}
