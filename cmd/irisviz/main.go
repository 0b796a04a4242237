package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/spektr-org/irisviz/charts"
	"github.com/spektr-org/irisviz/config"
	"github.com/spektr-org/irisviz/dataset"
	"github.com/spektr-org/irisviz/report"
	"github.com/spektr-org/irisviz/schema"
	"github.com/spektr-org/irisviz/style"
)

// ============================================================================
// IRISVIZ CLI: Four charts from the Iris dataset
// ============================================================================

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fatalf("%v", err)
	}
}

// run executes one invocation: configure, load, optionally report, resolve
// the style once and generate every chart.
func run(args []string, stdout io.Writer) error {
	opts, err := config.Parse(args)
	if err != nil {
		return err
	}

	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetLevel(opts.Level())

	if opts.DumpOnly {
		out, err := opts.Dump()
		if err != nil {
			return err
		}
		fmt.Fprint(stdout, out)
		return nil
	}

	table, err := dataset.Load(opts.Input)
	if err != nil {
		return err
	}

	if opts.Verbose {
		if err := report.Write(stdout, table, schema.ColumnSpecies); err != nil {
			return err
		}
	}

	st := style.Resolve(opts.Preferences())
	logrus.WithFields(logrus.Fields{
		"input": opts.Input,
		"rows":  table.Len(),
		"font":  st.FontName,
		"theme": st.Theme.Name,
	}).Debug("Starting chart generation")

	return charts.Run(table, st, stdout,
		charts.WithOutputDir(opts.OutputDir),
		charts.WithDPI(opts.DPI),
	)
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
