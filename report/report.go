// Package report prints a console overview of a loaded dataset: its shape,
// the first rows, descriptive statistics and per-group statistics.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"

	"github.com/spektr-org/irisviz/engine"
	"github.com/spektr-org/irisviz/schema"
)

// HeadRows is the number of records shown by the head table.
const HeadRows = 5

// schemaSource is implemented by views that know how their columns were
// classified, such as *dataset.Table.
type schemaSource interface {
	Schema() schema.Config
}

// Write prints the full overview, splitting the last section by groupBy.
func Write(w io.Writer, view engine.RecordView, groupBy string) error {
	columns := len(view.MeasureKeys()) + len(view.DimensionKeys())
	fmt.Fprintf(w, "Dataset: %d rows, %d columns\n", view.Len(), columns)

	if src, ok := view.(schemaSource); ok {
		if err := DrawTable(w, columnsTable(src.Schema())); err != nil {
			return err
		}
	}

	if err := DrawTable(w, engine.BuildHeadTable(view, HeadRows)); err != nil {
		return err
	}

	describe, err := engine.BuildDescribeTable(view, "Summary statistics")
	if err != nil {
		return errors.Wrap(err, "describing dataset")
	}
	if err := DrawTable(w, describe); err != nil {
		return err
	}

	for _, value := range engine.UniqueValues(view, groupBy) {
		group := engine.ApplyFilters(view, engine.Where(groupBy, value))
		stats, err := engine.BuildGroupStatsTable(group, fmt.Sprintf("%s: %s (%d rows)", groupBy, value, group.Len()))
		if err != nil {
			return errors.Wrapf(err, "describing %s %s", groupBy, value)
		}
		if err := DrawTable(w, stats); err != nil {
			return err
		}
	}
	return nil
}

// columnsTable lists how each column was classified on load.
func columnsTable(sch schema.Config) *engine.TableData {
	table := &engine.TableData{
		Title: "Columns",
		Columns: []engine.Column{
			{Key: "column", Label: "Column", Align: "left"},
			{Key: "name", Label: "Name", Align: "left"},
			{Key: "kind", Label: "Kind", Align: "left"},
		},
	}
	for _, m := range sch.Measures {
		kind := "numeric"
		switch {
		case m.IsIdentifier:
			kind = "identifier"
		case m.Integer:
			kind = "integer"
		}
		table.Rows = append(table.Rows, []string{m.Key, m.DisplayName, kind})
	}
	for _, d := range sch.Dimensions {
		table.Rows = append(table.Rows, []string{d.Key, d.DisplayName, "categorical: " + strings.Join(d.SampleValues, ", ")})
	}
	for _, s := range sch.SkippedColumns {
		table.Rows = append(table.Rows, []string{s.Column, "", "skipped: " + s.Reason})
	}
	return table
}

// DrawTable prints a titled table.
func DrawTable(w io.Writer, table *engine.TableData) error {
	if table == nil {
		return errors.New("no table to draw")
	}
	fmt.Fprintf(w, "\n%s\n", table.Title)

	output := tablewriter.NewWriter(w)
	output.SetAutoFormatHeaders(false)
	output.SetAutoWrapText(false)
	output.SetReflowDuringAutoWrap(false)
	output.SetHeader(table.Headers())

	alignments := make([]int, len(table.Columns))
	for i, c := range table.Columns {
		alignments[i] = tablewriter.ALIGN_RIGHT
		if c.Align == "left" {
			alignments[i] = tablewriter.ALIGN_LEFT
		}
	}
	output.SetColumnAlignment(alignments)

	for _, row := range table.Rows {
		output.Append(row)
	}
	output.Render()
	return nil
}
