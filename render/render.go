package render

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/spektr-org/irisviz/engine"
	"github.com/spektr-org/irisviz/style"
)

// ============================================================================
// RENDER: ChartConfig to PNG
// ============================================================================
// Figure sizes are in inches and font sizes in points, so output scales with
// DPI. Categorical charts place category i at x = i on a [-0.5, n-0.5] axis.
// Every layer is a go-chart series on the primary axis.
// ============================================================================

// DefaultDPI is the output resolution used when none is given.
const DefaultDPI = 300.0

// Font sizes in points.
const (
	titleFontSize      = 15.0
	axisLabelFontSize  = 12.0
	tickFontSize       = 10.0
	annotationFontSize = 10.0
	legendFontSize     = 10.0
)

// Render draws cfg as a PNG into w.
func Render(cfg *engine.ChartConfig, st *style.Style, w io.Writer, dpi float64) error {
	if cfg == nil {
		return errors.New("nothing to render")
	}
	if st == nil {
		st = style.Default()
	}
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	if cfg.WidthIn <= 0 || cfg.HeightIn <= 0 {
		return errors.Errorf("chart %q has no size", cfg.Title)
	}

	c, err := newCanvas(cfg, st, dpi)
	if err != nil {
		return err
	}

	switch cfg.ChartType {
	case engine.ChartBar:
		return c.renderBar(w)
	case engine.ChartScatter:
		return c.renderScatter(w)
	case engine.ChartBox:
		return c.renderBox(w)
	case engine.ChartHeatmap:
		return c.renderHeatmap(w)
	default:
		return errors.Errorf("unsupported chart type %q", cfg.ChartType)
	}
}

// canvas carries the resolved sizes and colors of one figure.
type canvas struct {
	cfg    *engine.ChartConfig
	theme  style.Theme
	font   *truetype.Font
	dpi    float64
	width  int
	height int
}

func newCanvas(cfg *engine.ChartConfig, st *style.Style, dpi float64) (*canvas, error) {
	font := st.Font
	if font == nil {
		f, err := chart.GetDefaultFont()
		if err != nil {
			return nil, errors.Wrap(err, "loading builtin font")
		}
		font = f
	}
	return &canvas{
		cfg:    cfg,
		theme:  st.Theme,
		font:   font,
		dpi:    dpi,
		width:  int(math.Round(cfg.WidthIn * dpi)),
		height: int(math.Round(cfg.HeightIn * dpi)),
	}, nil
}

// px converts points to pixels.
func (c *canvas) px(pt float64) float64 { return pt * c.dpi / 72 }

func (c *canvas) pxi(pt float64) int { return int(math.Round(c.px(pt))) }

func (c *canvas) textColor() drawing.Color { return hexColor(c.theme.Text) }

// ============================================================================
// FRAME: go-chart chart with explicit axes
// ============================================================================

// axisSpec is a fixed axis range with its labelled ticks.
type axisSpec struct {
	min, max float64
	ticks    []chart.Tick
	grid     []float64
}

func (a axisSpec) chartRange() *chart.ContinuousRange {
	return &chart.ContinuousRange{Min: a.min, Max: a.max}
}

// categoryAxis places labels at 0..n-1.
func categoryAxis(labels []string) axisSpec {
	a := axisSpec{min: -0.5, max: float64(len(labels)) - 0.5}
	for i, l := range labels {
		a.ticks = append(a.ticks, chart.Tick{Value: float64(i), Label: l})
	}
	return a
}

// valueAxis spans [lo, hi] with rounded tick values inside it.
func valueAxis(lo, hi float64) axisSpec {
	a := axisSpec{min: lo, max: hi}
	values, step := niceTicks(lo, hi, 6)
	prec := decimals(step)
	for _, v := range values {
		a.ticks = append(a.ticks, chart.Tick{Value: v, Label: strconv.FormatFloat(v, 'f', prec, 64)})
	}
	a.grid = values
	return a
}

// frame assembles a chart.Chart around layers. Layers are drawn in order,
// then the axes. go-chart's own axes stay hidden and only carry the ranges.
func (c *canvas) frame(x, y axisSpec, layers ...chart.Series) chart.Chart {
	text := c.textColor()
	margins := c.layoutAxes(y)
	series := append(append([]chart.Series(nil), layers...), c.axesLayer(x, y))

	return chart.Chart{
		Title:      c.cfg.Title,
		TitleStyle: chart.Style{FontSize: titleFontSize, FontColor: text},
		Width:      c.width,
		Height:     c.height,
		DPI:        c.dpi,
		Font:       c.font,
		Background: chart.Style{
			FillColor: hexColor(c.theme.Background),
			Padding: chart.Box{
				Top:    int(c.px(titleFontSize) * 2.2),
				Left:   margins.left,
				Right:  c.pxi(18),
				Bottom: margins.bottom,
			},
		},
		Canvas: chart.Style{FillColor: hexColor(c.theme.Canvas)},
		XAxis:  chart.XAxis{Style: chart.Hidden(), Range: x.chartRange()},
		YAxis:  chart.YAxis{Style: chart.Hidden(), Range: y.chartRange()},

		YAxisSecondary: chart.YAxis{Style: chart.Hidden()},
		Series:         series,
	}
}

func (c *canvas) save(ch chart.Chart, w io.Writer) error {
	if err := ch.Render(chart.PNG, w); err != nil {
		return errors.Wrapf(err, "rendering %q", c.cfg.Title)
	}
	return nil
}

// ============================================================================
// CHARTS
// ============================================================================

func (c *canvas) renderBar(w io.Writer) error {
	bars := c.cfg.Bars
	if len(bars) == 0 {
		return errors.Errorf("chart %q has no bars", c.cfg.Title)
	}
	labels := make([]string, len(bars))
	var ext extent
	ext.add(0)
	for i, b := range bars {
		labels[i] = b.Label
		ext.add(b.Value)
	}
	c.annotationExtent(&ext, nil)

	x := categoryAxis(labels)
	y := valueAxis(0, ext.max*1.08)
	ch := c.frame(x, y,
		c.gridLayer(x, y),
		c.barLayer(),
		c.annotationLayer(),
	)
	return c.save(ch, w)
}

func (c *canvas) renderScatter(w io.Writer) error {
	if len(c.cfg.Series) == 0 {
		return errors.Errorf("chart %q has no series", c.cfg.Title)
	}
	var xe, ye extent
	for _, s := range c.cfg.Series {
		for _, p := range s.Points {
			xe.add(p.X)
			ye.add(p.Y)
		}
	}
	c.annotationExtent(&ye, &xe)
	if !xe.set {
		return errors.Errorf("chart %q has no points", c.cfg.Title)
	}

	xlo, xhi := xe.padded(0.05)
	ylo, yhi := ye.padded(0.05)
	x, y := valueAxis(xlo, xhi), valueAxis(ylo, yhi)
	layers := []chart.Series{c.gridLayer(x, y), c.pointLayer(), c.annotationLayer()}
	if c.cfg.ShowLegend {
		layers = append(layers, c.legendLayer())
	}
	return c.save(c.frame(x, y, layers...), w)
}

func (c *canvas) renderBox(w io.Writer) error {
	boxes := c.cfg.Boxes
	if len(boxes) == 0 {
		return errors.Errorf("chart %q has no boxes", c.cfg.Title)
	}
	labels := make([]string, len(boxes))
	var ext extent
	for i, b := range boxes {
		labels[i] = b.Label
		ext.add(b.Values...)
		ext.add(b.LowerWhisker, b.UpperWhisker)
	}
	c.annotationExtent(&ext, nil)

	lo, hi := ext.padded(0.05)
	x, y := categoryAxis(labels), valueAxis(lo, hi)
	layers := []chart.Series{c.gridLayer(x, y), c.boxLayer()}
	if strip := c.stripLayer(); strip != nil {
		layers = append(layers, strip)
	}
	layers = append(layers, c.annotationLayer())
	return c.save(c.frame(x, y, layers...), w)
}

// annotationExtent widens the value extents so annotations stay on canvas.
func (c *canvas) annotationExtent(ye, xe *extent) {
	for _, a := range c.cfg.Annotations {
		ye.add(a.Y)
		if xe != nil {
			xe.add(a.X)
		}
		if a.Arrow != nil {
			ye.add(a.Arrow.Y)
			if xe != nil {
				xe.add(a.Arrow.X)
			}
		}
	}
}

// ============================================================================
// HELPERS
// ============================================================================

// extent tracks the min and max of the values seen.
type extent struct {
	min, max float64
	set      bool
}

func (e *extent) add(vs ...float64) {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if !e.set {
			e.min, e.max, e.set = v, v, true
			continue
		}
		e.min = math.Min(e.min, v)
		e.max = math.Max(e.max, v)
	}
}

// padded widens the extent by frac of its span on each side.
func (e extent) padded(frac float64) (float64, float64) {
	span := e.max - e.min
	if span == 0 {
		return e.min - 0.5, e.max + 0.5
	}
	return e.min - span*frac, e.max + span*frac
}

// niceTicks returns round values covering [lo, hi] in roughly n steps.
func niceTicks(lo, hi float64, n int) ([]float64, float64) {
	if !(hi > lo) || n < 2 {
		return nil, 0
	}
	step := niceStep((hi - lo) / float64(n-1))
	prec := decimals(step)
	var values []float64
	for k := math.Ceil(lo / step); k*step <= hi+step*1e-9; k++ {
		// Round away accumulated binary error, e.g. 3*0.2.
		v, _ := strconv.ParseFloat(strconv.FormatFloat(k*step, 'f', prec, 64), 64)
		values = append(values, v)
	}
	return values, step
}

func niceStep(raw float64) float64 {
	exp := math.Floor(math.Log10(raw))
	f := raw / math.Pow(10, exp)
	var nice float64
	switch {
	case f < 1.5:
		nice = 1
	case f < 3:
		nice = 2
	case f < 7:
		nice = 5
	default:
		nice = 10
	}
	return nice * math.Pow(10, exp)
}

// decimals returns how many fraction digits a tick step needs.
func decimals(step float64) int {
	if step <= 0 || step >= 1 {
		return 0
	}
	return int(math.Ceil(-math.Log10(step) - 1e-9))
}

// hexColor parses "#rrggbb".
func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

func withAlpha(c drawing.Color, alpha float64) drawing.Color {
	return c.WithAlpha(uint8(math.Round(alpha * 255)))
}
