package engine

// ============================================================================
// ENGINE TYPES: Dataset-agnostic aggregates and chart descriptions
// ============================================================================
// The engine reads data through RecordView, computes aggregates, and returns
// render-ready descriptions. It never touches the filesystem.
// ============================================================================

// ============================================================================
// RECORD: Generic data row
// ============================================================================

// Record is a single data row with string dimensions and numeric measures.
type Record struct {
	Dimensions map[string]string  `json:"dimensions"`
	Measures   map[string]float64 `json:"measures"`
}

// ============================================================================
// GROUP: Intermediate computation result
// ============================================================================

// Group represents a grouped/aggregated result.
type Group struct {
	Key   string     `json:"key"`
	Label string     `json:"label"`
	Value float64    `json:"value"`
	Count int        `json:"count"`
	View  RecordView `json:"-"` // Sub-view for records in this group (zero-copy)
}

// ============================================================================
// AGGREGATE TYPES
// ============================================================================

// XYPoint is one plotted coordinate.
type XYPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PointSeries holds the coordinates of one group.
type PointSeries struct {
	Name   string    `json:"name"`
	Points []XYPoint `json:"points"`
	Color  string    `json:"color,omitempty"`
}

// BoxSummary is the box-and-whisker description of one group.
type BoxSummary struct {
	Label        string    `json:"label"`
	Q1           float64   `json:"q1"`
	Median       float64   `json:"median"`
	Q3           float64   `json:"q3"`
	LowerWhisker float64   `json:"lowerWhisker"`
	UpperWhisker float64   `json:"upperWhisker"`
	Outliers     []float64 `json:"outliers,omitempty"`
	Values       []float64 `json:"values"`
}

// IQR returns the inter-quartile range.
func (b BoxSummary) IQR() float64 { return b.Q3 - b.Q1 }

// CorrelationMatrix is a square Pearson matrix over Keys.
type CorrelationMatrix struct {
	Keys   []string    `json:"keys"`
	Values [][]float64 `json:"values"`
}

// At returns the coefficient for row i and column j.
func (m CorrelationMatrix) At(i, j int) float64 { return m.Values[i][j] }

// Size returns the number of rows (and columns).
func (m CorrelationMatrix) Size() int { return len(m.Keys) }

// Masked reports whether cell (i, j) is hidden: the upper triangle
// including the diagonal.
func (m CorrelationMatrix) Masked(i, j int) bool { return j >= i }

// ============================================================================
// CHART TYPES
// ============================================================================

// Chart types understood by the renderer.
const (
	ChartBar     = "bar"
	ChartScatter = "scatter"
	ChartBox     = "box"
	ChartHeatmap = "heatmap"
)

// ChartConfig defines how to render a chart.
// Exactly one of Bars, Series, Boxes or Matrix is populated based on ChartType.
type ChartConfig struct {
	ChartType string  `json:"chartType"`
	Title     string  `json:"title"`
	XAxis     string  `json:"xAxis,omitempty"`
	YAxis     string  `json:"yAxis,omitempty"`
	WidthIn   float64 `json:"widthIn"`  // figure width in inches
	HeightIn  float64 `json:"heightIn"` // figure height in inches

	Bars   []ChartPoint       `json:"bars,omitempty"`
	Series []PointSeries      `json:"series,omitempty"`
	Boxes  []BoxSummary       `json:"boxes,omitempty"`
	Matrix *CorrelationMatrix `json:"matrix,omitempty"`

	Colors      []string     `json:"colors,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
	LegendTitle string       `json:"legendTitle,omitempty"`
	ShowLegend  bool         `json:"showLegend"`
	ShowGrid    bool         `json:"showGrid"`
	GridAxis    string       `json:"gridAxis,omitempty"` // "y" or "both"
}

// ChartPoint represents a single categorical data point.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Annotation is text placed at data coordinates, optionally with an arrow
// pointing at another data coordinate.
type Annotation struct {
	Text     string   `json:"text"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	FontSize float64  `json:"fontSize,omitempty"`
	Align    string   `json:"align,omitempty"` // "center" (default) or "left"
	Arrow    *XYPoint `json:"arrow,omitempty"`
}

// ============================================================================
// TABLE TYPES
// ============================================================================

// TableData defines a console table.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Align string `json:"align"` // "left", "right"
}

// Headers returns the column labels.
func (t TableData) Headers() []string {
	headers := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		headers[i] = c.Label
	}
	return headers
}
