package schema

// ============================================================================
// SCHEMA: Column contract for the Iris measurements file
// ============================================================================
// The loader discovers a Config from the parsed frame and then checks it
// against the contracted columns below. Column names are external contract:
// they must match the CSV header byte for byte.
// ============================================================================

// Contracted column names.
const (
	ColumnSpecies     = "Species"
	ColumnSepalLength = "SepalLengthCm"
	ColumnSepalWidth  = "SepalWidthCm"
	ColumnPetalLength = "PetalLengthCm"
	ColumnPetalWidth  = "PetalWidthCm"
)

// ContractDimensions lists the categorical columns every input must carry.
func ContractDimensions() []string {
	return []string{ColumnSpecies}
}

// ContractMeasures lists the numeric columns every input must carry.
func ContractMeasures() []string {
	return []string{ColumnSepalLength, ColumnSepalWidth, ColumnPetalLength, ColumnPetalWidth}
}

// Config describes the shape of a loaded dataset.
type Config struct {
	Name string `json:"name"`

	Dimensions []DimensionMeta `json:"dimensions"`
	Measures   []MeasureMeta   `json:"measures"`

	// Columns skipped during discovery
	SkippedColumns []SkippedColumn `json:"skippedColumns,omitempty"`
}

// DimensionMeta describes a string column used for grouping.
type DimensionMeta struct {
	Key             string   `json:"key"`
	DisplayName     string   `json:"displayName"`
	SampleValues    []string `json:"sampleValues"`
	CardinalityHint string   `json:"cardinalityHint,omitempty"` // "low", "medium", "high"
}

// MeasureMeta describes a numeric column.
type MeasureMeta struct {
	Key         string `json:"key"`
	DisplayName string `json:"displayName"`
	Integer     bool   `json:"integer,omitempty"`
	// IsIdentifier marks integer columns that are unique per row (row ids).
	// They stay measures so that numeric-only consumers see every column.
	IsIdentifier bool `json:"isIdentifier,omitempty"`
}

// SkippedColumn records why a column was excluded during discovery.
type SkippedColumn struct {
	Column string `json:"column"`
	Reason string `json:"reason"`
}

// DimensionKeys returns all dimension keys in header order.
func (c Config) DimensionKeys() []string {
	keys := make([]string, len(c.Dimensions))
	for i, d := range c.Dimensions {
		keys[i] = d.Key
	}
	return keys
}

// MeasureKeys returns all measure keys in header order.
func (c Config) MeasureKeys() []string {
	keys := make([]string, len(c.Measures))
	for i, m := range c.Measures {
		keys[i] = m.Key
	}
	return keys
}

// HasDimension reports whether key was classified as a dimension.
func (c Config) HasDimension(key string) bool {
	for _, d := range c.Dimensions {
		if d.Key == key {
			return true
		}
	}
	return false
}

// HasMeasure reports whether key was classified as a measure.
func (c Config) HasMeasure(key string) bool {
	for _, m := range c.Measures {
		if m.Key == key {
			return true
		}
	}
	return false
}
