package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/spektr-org/irisviz/engine"
	"github.com/spektr-org/irisviz/schema"
)

// ============================================================================
// FIXTURES
// ============================================================================

const smallCSV = `Id,SepalLengthCm,SepalWidthCm,PetalLengthCm,PetalWidthCm,Species
1,5.1,3.5,1.4,0.2,Iris-setosa
2,7.0,3.2,4.7,1.4,Iris-versicolor
3,6.3,3.3,6.0,2.5,Iris-virginica
4,4.9,3.0,1.4,0.2,setosa
`

// balancedCSV builds n rows per species with distinct measurements.
func balancedCSV(n int) string {
	var b strings.Builder
	b.WriteString("Id,SepalLengthCm,SepalWidthCm,PetalLengthCm,PetalWidthCm,Species\n")
	id := 1
	for s, name := range []string{"setosa", "versicolor", "virginica"} {
		for i := 0; i < n; i++ {
			fmt.Fprintf(&b, "%d,%.1f,%.1f,%.1f,%.1f,Iris-%s\n",
				id, 4.5+float64(s)+float64(i%10)/10, 3.0+float64(i%5)/10,
				1.2+float64(s)*2+float64(i%7)/10, 0.2+float64(s)*0.8+float64(i%4)/10, name)
			id++
		}
	}
	return b.String()
}

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Iris.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

// ============================================================================
// LOADER
// ============================================================================

func TestLoadNormalizesSpecies(t *testing.T) {
	table, err := Load(writeTemp(t, smallCSV))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if table.Len() != 4 {
		t.Fatalf("Len = %d, want 4", table.Len())
	}

	want := []string{"setosa", "versicolor", "virginica", "setosa"}
	for i, w := range want {
		got := table.Dimension(i, schema.ColumnSpecies)
		if got != w {
			t.Errorf("row %d species = %q, want %q", i, got, w)
		}
		if strings.HasPrefix(got, LabelPrefix) {
			t.Errorf("row %d still carries the prefix", i)
		}
	}
}

func TestTableExposesNumericColumnsInHeaderOrder(t *testing.T) {
	table, err := Read(strings.NewReader(smallCSV))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	wantKeys := []string{"Id", schema.ColumnSepalLength, schema.ColumnSepalWidth, schema.ColumnPetalLength, schema.ColumnPetalWidth}
	if diff := cmp.Diff(wantKeys, table.MeasureKeys()); diff != "" {
		t.Errorf("measure keys mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{schema.ColumnSpecies}, table.DimensionKeys()); diff != "" {
		t.Errorf("dimension keys mismatch (-want +got):\n%s", diff)
	}

	want := Record{SepalLength: 7.0, SepalWidth: 3.2, PetalLength: 4.7, PetalWidth: 1.4, Species: "versicolor"}
	if diff := cmp.Diff(want, table.Record(1)); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
	if table.Measure(0, "Id") != 1 {
		t.Errorf("Id = %v, want 1", table.Measure(0, "Id"))
	}
	if table.Measure(99, schema.ColumnPetalLength) != 0 || table.Dimension(-1, schema.ColumnSpecies) != "" {
		t.Error("out-of-range access should return zero values")
	}
	if len(table.Records()) != 4 {
		t.Errorf("Records len = %d", len(table.Records()))
	}
}

func TestTableIsARecordView(t *testing.T) {
	table, err := Read(strings.NewReader(balancedCSV(50)))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	var view engine.RecordView = table
	if view.Len() != 150 {
		t.Fatalf("Len = %d, want 150", view.Len())
	}

	groups := engine.CountBy(view, schema.ColumnSpecies)
	if len(groups) != 3 {
		t.Fatalf("groups = %d, want 3", len(groups))
	}
	for _, g := range groups {
		if g.Count != 50 {
			t.Errorf("%s count = %d, want 50", g.Label, g.Count)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	var fae *FileAccessError
	if !errors.As(err, &fae) {
		t.Fatalf("err = %v, want *FileAccessError", err)
	}
	if !os.IsNotExist(fae.Err) {
		t.Errorf("cause = %v, want not-exist", fae.Err)
	}
}

func TestLoadMalformedInput(t *testing.T) {
	cases := map[string]string{
		"empty":          "",
		"missing column": "SepalLengthCm,Species\n5.1,setosa\n",
		"text measure":   "SepalLengthCm,SepalWidthCm,PetalLengthCm,PetalWidthCm,Species\nx,3.5,1.4,0.2,setosa\n",
		"ragged rows":    "SepalLengthCm,SepalWidthCm,PetalLengthCm,PetalWidthCm,Species\n5.1,3.5\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeTemp(t, content)
			_, err := Load(path)
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("err = %v, want *ParseError", err)
			}
			if pe.Path != path {
				t.Errorf("ParseError.Path = %q, want %q", pe.Path, path)
			}
		})
	}
}

// ============================================================================
// SPECIES
// ============================================================================

func TestNormalizeSpeciesIsIdempotent(t *testing.T) {
	for _, label := range []string{"Iris-setosa", "setosa", "Iris-Iris-virginica", "", "Iris-", "iris-setosa"} {
		once := NormalizeSpecies(label)
		if twice := NormalizeSpecies(once); twice != once {
			t.Errorf("NormalizeSpecies(%q): once=%q twice=%q", label, once, twice)
		}
		if strings.HasPrefix(once, LabelPrefix) {
			t.Errorf("NormalizeSpecies(%q) = %q still has prefix", label, once)
		}
	}
	if NormalizeSpecies("iris-setosa") != "iris-setosa" {
		t.Error("prefix match is case-sensitive")
	}
}

func TestParseSpecies(t *testing.T) {
	cases := map[string]Species{
		"setosa":          Setosa,
		"Iris-versicolor": Versicolor,
		"virginica":       Virginica,
	}
	for label, want := range cases {
		got, err := ParseSpecies(label)
		if err != nil || got != want {
			t.Errorf("ParseSpecies(%q) = %v, %v; want %v", label, got, err, want)
		}
	}

	_, err := ParseSpecies("sibirica")
	var le *LookupError
	if !errors.As(err, &le) || le.Label != "sibirica" {
		t.Errorf("err = %v, want *LookupError for sibirica", err)
	}
}

func TestSpeciesColorsAreTotal(t *testing.T) {
	want := map[Species]string{Setosa: "#8884d8", Versicolor: "#82ca9d", Virginica: "#ffc658"}
	for _, s := range AllSpecies() {
		if s.Color() != want[s] {
			t.Errorf("%s color = %q, want %q", s, s.Color(), want[s])
		}
		c, err := ColorOf(s.String())
		if err != nil || c != want[s] {
			t.Errorf("ColorOf(%s) = %q, %v", s, c, err)
		}
	}
	if diff := cmp.Diff([]string{"#8884d8", "#82ca9d", "#ffc658"}, Palette()); diff != "" {
		t.Errorf("palette mismatch (-want +got):\n%s", diff)
	}
	if Species(7).String() != "unknown" || Species(7).Color() != "" {
		t.Error("out-of-range species should have no name or color")
	}
}

func TestSchemaSamplesAreNormalized(t *testing.T) {
	table, err := Read(strings.NewReader(smallCSV))
	if err != nil {
		t.Fatal(err)
	}
	sch := table.Schema()
	if len(sch.Dimensions) != 1 {
		t.Fatalf("dimensions = %+v", sch.Dimensions)
	}
	want := []string{"setosa", "versicolor", "virginica"}
	if diff := cmp.Diff(want, sch.Dimensions[0].SampleValues); diff != "" {
		t.Errorf("samples (-want +got):\n%s", diff)
	}
}
