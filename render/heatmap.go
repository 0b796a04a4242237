package render

import (
	"io"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/spektr-org/irisviz/engine"
)

// ============================================================================
// HEATMAP: Masked correlation matrix
// ============================================================================
// Drawn straight onto a raster renderer: square cells on a full n x n grid,
// only the strictly lower triangle filled, a colour bar at 80% of the grid
// height on the right. The scale is fixed to [-1, 1] centred on 0.
// ============================================================================

const (
	scaleMin      = -1.0
	scaleMax      = 1.0
	colorBarShare = 0.8
	colorBarStep  = 0.25
	cellFontSize  = 10.0
)

// Diverging scale endpoints in HSLuv: blue (230) through light grey to red (20).
var (
	scaleLow  = colorful.HSLuv(230, 0.75, 0.5)
	scaleMid  = colorful.HSLuv(0, 0, 0.95)
	scaleHigh = colorful.HSLuv(20, 0.75, 0.5)
)

// divergingColor maps v in [-1, 1] onto the diverging scale.
func divergingColor(v float64) colorful.Color {
	t := math.Max(scaleMin, math.Min(scaleMax, v))
	if t < 0 {
		return scaleMid.BlendLuv(scaleLow, -t).Clamped()
	}
	return scaleMid.BlendLuv(scaleHigh, t).Clamped()
}

func toDrawing(c colorful.Color) drawing.Color {
	r, g, b := c.RGB255()
	return drawing.Color{R: r, G: g, B: b, A: 255}
}

// readableOn picks dark or light text for a cell background.
func readableOn(c colorful.Color) drawing.Color {
	r, g, b := c.LinearRgb()
	if 0.2126*r+0.7152*g+0.0722*b > 0.408 {
		return hexColor("#262626")
	}
	return drawing.ColorWhite
}

// heatLayout is the pixel geometry of a heatmap figure.
type heatLayout struct {
	left, top int // grid origin
	cell      int
	n         int
	barLeft   int
	barWidth  int
	barTop    int
	barHeight int
}

func (l heatLayout) cellBox(i, j int) chart.Box {
	return chart.Box{
		Left:   l.left + j*l.cell,
		Top:    l.top + i*l.cell,
		Right:  l.left + (j+1)*l.cell,
		Bottom: l.top + (i+1)*l.cell,
	}
}

func (c *canvas) layoutHeatmap(r chart.Renderer, m *engine.CorrelationMatrix) heatLayout {
	r.SetFont(c.font)
	r.SetFontSize(tickFontSize)
	labelWidth := 0
	for _, k := range m.Keys {
		if w := r.MeasureText(k).Width(); w > labelWidth {
			labelWidth = w
		}
	}
	tickWidth := r.MeasureText("-1.00").Width()

	pad := c.pxi(8)
	top := int(c.px(titleFontSize) * 2.2)
	left := labelWidth + pad*2
	bottom := labelWidth + pad*2
	barWidth := c.pxi(14)
	right := pad*4 + barWidth + tickWidth + pad

	n := m.Size()
	availW := c.width - left - right
	availH := c.height - top - bottom
	cell := availW / n
	if h := availH / n; h < cell {
		cell = h
	}
	if cell < 1 {
		cell = 1
	}
	grid := cell * n
	// Centre the square grid in the space left of the colour bar.
	left += (availW - grid) / 2
	top += (availH - grid) / 2

	barHeight := int(float64(grid) * colorBarShare)
	return heatLayout{
		left:      left,
		top:       top,
		cell:      cell,
		n:         n,
		barLeft:   left + grid + pad*4,
		barWidth:  barWidth,
		barTop:    top + (grid-barHeight)/2,
		barHeight: barHeight,
	}
}

func (c *canvas) renderHeatmap(w io.Writer) error {
	m := c.cfg.Matrix
	if m == nil || m.Size() == 0 {
		return errors.Errorf("chart %q has no matrix", c.cfg.Title)
	}

	r, err := chart.PNG(c.width, c.height)
	if err != nil {
		return errors.Wrap(err, "creating raster renderer")
	}
	r.SetDPI(c.dpi)

	bg := hexColor(c.theme.Background)
	chart.Draw.Box(r, chart.Box{Right: c.width, Bottom: c.height}, chart.Style{FillColor: bg, StrokeColor: bg})

	l := c.layoutHeatmap(r, m)
	text := c.textColor()
	border := c.px(0.5)

	for _, ij := range engine.VisibleCells(m) {
		v := m.At(ij[0], ij[1])
		if math.IsNaN(v) {
			continue
		}
		col := divergingColor(v)
		b := l.cellBox(ij[0], ij[1])
		chart.Draw.Box(r, b, chart.Style{
			FillColor:   toDrawing(col),
			StrokeColor: drawing.ColorWhite,
			StrokeWidth: border,
		})
		cx, cy := (b.Left+b.Right)/2, (b.Top+b.Bottom)/2
		c.textMiddle(r, engine.FormatFixed2(v), cx, cy, cellFontSize, readableOn(col), "center")
	}

	pad := c.pxi(6)
	for i, k := range m.Keys {
		// Row labels, right-aligned against the grid.
		cy := l.top + i*l.cell + l.cell/2
		c.textMiddle(r, k, l.left-pad, cy, tickFontSize, text, "right")

		// Column labels, rotated to read bottom to top.
		r.SetFont(c.font)
		r.SetFontSize(tickFontSize)
		r.SetFontColor(text)
		tb := r.MeasureText(k)
		cx := l.left + i*l.cell + l.cell/2 + tb.Height()/2
		r.SetTextRotation(chart.DegreesToRadians(270))
		r.Text(k, cx, l.top+l.n*l.cell+pad+tb.Width())
		r.ClearTextRotation()
		r.ResetStyle()
	}

	c.colorBar(r, l, text)

	if c.cfg.Title != "" {
		r.SetFont(c.font)
		r.SetFontSize(titleFontSize)
		tw := r.MeasureText(c.cfg.Title)
		c.text(r, c.cfg.Title, l.left+l.n*l.cell/2, c.pxi(8)+tw.Height(), titleFontSize, text, "center")
	}

	if err := r.Save(w); err != nil {
		return errors.Wrapf(err, "rendering %q", c.cfg.Title)
	}
	return nil
}

// colorBar draws the scale one pixel row at a time, top = scaleMax.
func (c *canvas) colorBar(r chart.Renderer, l heatLayout, text drawing.Color) {
	if l.barHeight <= 0 {
		return
	}
	for y := 0; y < l.barHeight; y++ {
		v := scaleMax - (scaleMax-scaleMin)*(float64(y)+0.5)/float64(l.barHeight)
		col := toDrawing(divergingColor(v))
		chart.Draw.Box(r, chart.Box{
			Left:   l.barLeft,
			Right:  l.barLeft + l.barWidth,
			Top:    l.barTop + y,
			Bottom: l.barTop + y + 1,
		}, chart.Style{FillColor: col, StrokeColor: col, StrokeWidth: 0.5})
	}

	tick := chart.Style{StrokeColor: text, StrokeWidth: c.px(0.8)}
	right := l.barLeft + l.barWidth
	for v := scaleMin; v <= scaleMax+1e-9; v += colorBarStep {
		y := l.barTop + int(math.Round((scaleMax-v)/(scaleMax-scaleMin)*float64(l.barHeight)))
		line(r, tick, right, y, right+c.pxi(3.5), y)
		c.textMiddle(r, engine.FormatFixed2(v), right+c.pxi(5), y, tickFontSize, text, "left")
	}
}

// textMiddle draws body vertically centred on y.
func (c *canvas) textMiddle(r chart.Renderer, body string, x, y int, size float64, color drawing.Color, align string) {
	if body == "" {
		return
	}
	r.SetFont(c.font)
	r.SetFontSize(size)
	h := r.MeasureText(body).Height()
	c.text(r, body, x, y+h/2, size, color, align)
}
