package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/spektr-org/irisviz/charts"
	"github.com/spektr-org/irisviz/dataset"
)

const sample = `Id,SepalLengthCm,SepalWidthCm,PetalLengthCm,PetalWidthCm,Species
1,5.1,3.5,1.4,0.2,Iris-setosa
2,4.9,3.0,1.4,0.2,Iris-setosa
3,4.7,3.2,1.3,0.2,Iris-setosa
4,7.0,3.2,4.7,1.4,Iris-versicolor
5,6.4,3.2,4.5,1.5,Iris-versicolor
6,6.9,3.1,4.9,1.5,Iris-versicolor
7,6.3,3.3,6.0,2.5,Iris-virginica
8,5.8,2.7,5.1,1.9,Iris-virginica
9,7.1,3.0,5.9,2.1,Iris-virginica
`

func TestRunWritesCharts(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "Iris.csv")
	if err := os.WriteFile(input, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "charts")

	var stdout bytes.Buffer
	err := run([]string{"--input=" + input, "--out_dir=" + out, "--dpi=30", "--font_dir=" + dir, "--log=error", "--verbose"}, &stdout)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	for _, name := range []string{charts.SpeciesCountFile, charts.PetalScatterFile, charts.SepalBoxplotFile, charts.CorrelationHeatmapFile} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
	if !strings.Contains(stdout.String(), "Dataset: 9 rows, 6 columns") {
		t.Errorf("verbose report missing:\n%s", stdout.String())
	}
	if !strings.HasSuffix(stdout.String(), "All charts have been saved to "+out+".\n") {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestRunMissingInput(t *testing.T) {
	dir := t.TempDir()
	err := run([]string{"--input=" + filepath.Join(dir, "nope.csv"), "--out_dir=" + dir, "--log=error"}, &bytes.Buffer{})
	var access *dataset.FileAccessError
	if !errors.As(err, &access) {
		t.Fatalf("error = %v, want *dataset.FileAccessError", err)
	}
}

func TestRunDumpConfig(t *testing.T) {
	var stdout bytes.Buffer
	if err := run([]string{"--dump_config", "--dpi=96"}, &stdout); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout.String(), "dpi: 96") {
		t.Errorf("dump = %q", stdout.String())
	}
}
