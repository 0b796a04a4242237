package charts

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/spektr-org/irisviz/dataset"
	"github.com/spektr-org/irisviz/engine"
	"github.com/spektr-org/irisviz/render"
	"github.com/spektr-org/irisviz/schema"
	"github.com/spektr-org/irisviz/style"
)

// ============================================================================
// CHARTS: The four Iris figures
// ============================================================================
// Each generator aggregates through the engine, builds a ChartConfig, renders
// it fully in memory and only then writes its file, so a failing chart never
// leaves a partial PNG behind.
// ============================================================================

// Output file names.
const (
	SpeciesCountFile       = "species_count.png"
	PetalScatterFile       = "petal_scatter.png"
	SepalBoxplotFile       = "sepal_boxplot.png"
	CorrelationHeatmapFile = "correlation_heatmap.png"
)

// Progress lines written by Run.
const (
	startMessage = "\nCreating visualizations..."
	doneMessage  = "\nAll charts have been saved to %s."
)

// Generator renders one chart from a view and writes it, returning the path.
type Generator func(view engine.RecordView, st *style.Style, opts ...Option) (string, error)

// Run generates every chart in order: count, scatter, boxplot, heatmap.
// The first error stops the run; files already written are kept.
func Run(view engine.RecordView, st *style.Style, stdout io.Writer, opts ...Option) error {
	cfg := applyOptions(opts)
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return errors.Wrapf(err, "creating output directory %s", cfg.OutputDir)
	}

	fmt.Fprintln(stdout, startMessage)
	for _, gen := range []Generator{SpeciesCount, PetalScatter, SepalBoxplot, CorrelationHeatmap} {
		if _, err := gen(view, st, opts...); err != nil {
			return err
		}
	}
	fmt.Fprintf(stdout, doneMessage+"\n", describeDir(cfg.OutputDir))
	return nil
}

func describeDir(dir string) string {
	if filepath.Clean(dir) == "." {
		return "the current directory"
	}
	return dir
}

// ============================================================================
// GENERATORS
// ============================================================================

// SpeciesCount writes a bar chart of records per species.
func SpeciesCount(view engine.RecordView, st *style.Style, opts ...Option) (string, error) {
	return write(speciesCountChart(view), st, SpeciesCountFile, opts)
}

// PetalScatter writes petal length against petal width, one color per
// species. An unknown species fails with *dataset.LookupError and no file.
func PetalScatter(view engine.RecordView, st *style.Style, opts ...Option) (string, error) {
	cfg, err := petalScatterChart(view)
	if err != nil {
		return "", err
	}
	return write(cfg, st, PetalScatterFile, opts)
}

// SepalBoxplot writes the sepal length distribution per species.
func SepalBoxplot(view engine.RecordView, st *style.Style, opts ...Option) (string, error) {
	cfg, err := sepalBoxplotChart(view)
	if err != nil {
		return "", err
	}
	return write(cfg, st, SepalBoxplotFile, opts)
}

// CorrelationHeatmap writes the lower triangle of the Pearson matrix over
// every numeric column.
func CorrelationHeatmap(view engine.RecordView, st *style.Style, opts ...Option) (string, error) {
	cfg, err := correlationHeatmapChart(view)
	if err != nil {
		return "", err
	}
	return write(cfg, st, CorrelationHeatmapFile, opts)
}

// ============================================================================
// CHART DESCRIPTIONS
// ============================================================================

func speciesCountChart(view engine.RecordView) *engine.ChartConfig {
	groups := engine.CountBy(view, schema.ColumnSpecies)
	return engine.BuildBarChart(engine.Labels{
		Title:    "Species Count Distribution",
		XAxis:    "Species",
		YAxis:    "Count",
		WidthIn:  10,
		HeightIn: 6,
	}, groups, dataset.Palette())
}

func petalScatterChart(view engine.RecordView) (*engine.ChartConfig, error) {
	series := engine.GroupPoints(view, schema.ColumnSpecies, schema.ColumnPetalLength, schema.ColumnPetalWidth)
	cfg, err := engine.BuildScatterChart(engine.Labels{
		Title:    "Petal Length vs Width",
		XAxis:    "Petal Length (cm)",
		YAxis:    "Petal Width (cm)",
		WidthIn:  10,
		HeightIn: 8,
	}, series, dataset.ColorOf)
	if err != nil {
		return nil, err
	}
	cfg.LegendTitle = "Species"
	cfg.Annotations = append(cfg.Annotations, engine.Annotation{
		Text:  "Setosa cluster",
		X:     2.5,
		Y:     0.3,
		Align: "left",
		Arrow: &engine.XYPoint{X: 1.5, Y: 0.3},
	})
	return cfg, nil
}

func sepalBoxplotChart(view engine.RecordView) (*engine.ChartConfig, error) {
	boxes, err := engine.BoxSummaries(view, schema.ColumnSpecies, schema.ColumnSepalLength)
	if err != nil {
		return nil, errors.Wrap(err, "sepal length summaries")
	}
	cfg := engine.BuildBoxChart(engine.Labels{
		Title:    "Sepal Length Distribution by Species",
		XAxis:    "Species",
		YAxis:    "Sepal Length (cm)",
		WidthIn:  12,
		HeightIn: 7,
	}, boxes, dataset.Palette())
	if cfg == nil {
		return nil, errors.New("no species to plot")
	}
	return cfg, nil
}

func correlationHeatmapChart(view engine.RecordView) (*engine.ChartConfig, error) {
	matrix, err := engine.Correlate(view, view.MeasureKeys())
	if err != nil {
		return nil, errors.Wrap(err, "correlation matrix")
	}
	return engine.BuildHeatmap(engine.Labels{
		Title:    "Feature Correlation Heatmap",
		WidthIn:  10,
		HeightIn: 8,
	}, matrix), nil
}

// ============================================================================
// OUTPUT
// ============================================================================

func write(chart *engine.ChartConfig, st *style.Style, name string, opts []Option) (string, error) {
	cfg := applyOptions(opts)
	if chart == nil {
		return "", errors.Errorf("%s: nothing to plot", name)
	}
	path := filepath.Join(cfg.OutputDir, name)

	var buf bytes.Buffer
	if err := render.Render(chart, st, &buf, cfg.DPI); err != nil {
		return "", errors.Wrapf(err, "rendering %s", name)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", errors.Wrapf(err, "writing %s", path)
	}

	logrus.WithFields(logrus.Fields{
		"chart": chart.Title,
		"path":  path,
		"bytes": buf.Len(),
	}).Debug("Chart saved")
	return path, nil
}
