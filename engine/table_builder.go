package engine

import (
	"fmt"
	"strconv"
)

// ============================================================================
// TABLE BUILDER: Console summaries of a RecordView
// ============================================================================
// Column discovery uses view.DimensionKeys()/MeasureKeys() instead of
// inspecting records.
// ============================================================================

// BuildHeadTable lists the first n records with every column.
func BuildHeadTable(view RecordView, n int) *TableData {
	if n > view.Len() {
		n = view.Len()
	}

	mesKeys := view.MeasureKeys()
	dimKeys := view.DimensionKeys()

	columns := []Column{{Key: "#", Label: "#", Align: "right"}}
	for _, key := range mesKeys {
		columns = append(columns, Column{Key: key, Label: key, Align: "right"})
	}
	for _, key := range dimKeys {
		columns = append(columns, Column{Key: key, Label: key, Align: "left"})
	}

	rows := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		row := []string{strconv.Itoa(i)}
		for _, key := range mesKeys {
			row = append(row, strconv.FormatFloat(view.Measure(i, key), 'f', -1, 64))
		}
		for _, key := range dimKeys {
			row = append(row, view.Dimension(i, key))
		}
		rows = append(rows, row)
	}

	return &TableData{
		Title:   fmt.Sprintf("First %d rows", n),
		Columns: columns,
		Rows:    rows,
	}
}

// BuildDescribeTable lists count, mean, std, min, quartiles and max per measure.
func BuildDescribeTable(view RecordView, title string) (*TableData, error) {
	return buildStatsTable(view, title, []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"})
}

// BuildGroupStatsTable lists mean, std, min and max per measure for one group.
func BuildGroupStatsTable(view RecordView, title string) (*TableData, error) {
	return buildStatsTable(view, title, []string{"mean", "std", "min", "max"})
}

func buildStatsTable(view RecordView, title string, stats []string) (*TableData, error) {
	mesKeys := view.MeasureKeys()

	columns := []Column{{Key: "stat", Label: "", Align: "left"}}
	descriptions := make([]Description, len(mesKeys))
	for i, key := range mesKeys {
		columns = append(columns, Column{Key: key, Label: key, Align: "right"})
		d, err := Describe(view, key)
		if err != nil {
			return nil, err
		}
		descriptions[i] = d
	}

	rows := make([][]string, 0, len(stats))
	for _, stat := range stats {
		row := []string{stat}
		for _, d := range descriptions {
			row = append(row, describeCell(d, stat))
		}
		rows = append(rows, row)
	}

	return &TableData{Title: title, Columns: columns, Rows: rows}, nil
}

func describeCell(d Description, stat string) string {
	var v float64
	switch stat {
	case "count":
		v = float64(d.Count)
	case "mean":
		v = d.Mean
	case "std":
		v = d.Std
	case "min":
		v = d.Min
	case "25%":
		v = d.Q1
	case "50%":
		v = d.Q2
	case "75%":
		v = d.Q3
	case "max":
		v = d.Max
	}
	if v != v {
		return "NaN"
	}
	return fmt.Sprintf("%.6f", v)
}
