package render

import (
	"math"
	"math/rand"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ============================================================================
// LAYERS: Custom go-chart series
// ============================================================================

const (
	barWidth    = 0.8  // category units
	boxWidth    = 0.8  // category units
	capWidth    = 0.4  // category units
	stripJitter = 0.08 // half-width of strip jitter, category units
	jitterSeed  = 1

	markerArea  = 70.0 // scatter marker area, points squared
	markerAlpha = 0.7
	stripRadius = 2.0 // points
	stripAlpha  = 0.3

	arrowWidth      = 1.5 // points
	arrowHeadWidth  = 12.0
	arrowHeadLength = 12.0
	arrowShrink     = 0.05
)

// layer adapts a draw function to chart.Series on the primary axis.
type layer struct {
	name string
	draw func(r chart.Renderer, box chart.Box, xr, yr chart.Range)
}

func (l layer) GetName() string           { return l.name }
func (l layer) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (l layer) GetStyle() chart.Style     { return chart.Style{} }
func (l layer) Validate() error           { return nil }
func (l layer) Render(r chart.Renderer, box chart.Box, xr, yr chart.Range, _ chart.Style) {
	l.draw(r, box, xr, yr)
}

func toX(box chart.Box, xr chart.Range, v float64) int { return box.Left + xr.Translate(v) }
func toY(box chart.Box, yr chart.Range, v float64) int { return box.Bottom - yr.Translate(v) }

// ============================================================================
// GRID
// ============================================================================

func (c *canvas) gridLayer(x, y axisSpec) chart.Series {
	dash := make([]float64, len(c.theme.GridDash))
	for i, d := range c.theme.GridDash {
		dash[i] = c.px(d)
	}
	s := chart.Style{
		StrokeColor:     withAlpha(hexColor(c.theme.Grid), c.theme.GridAlpha),
		StrokeWidth:     c.px(0.8),
		StrokeDashArray: dash,
	}
	vertical := c.cfg.ShowGrid && c.cfg.GridAxis == "both"
	horizontal := c.cfg.ShowGrid

	return layer{name: "grid", draw: func(r chart.Renderer, box chart.Box, xr, yr chart.Range) {
		if vertical {
			for _, v := range x.grid {
				px := toX(box, xr, v)
				line(r, s, px, box.Top, px, box.Bottom)
			}
		}
		if horizontal {
			for _, v := range y.grid {
				py := toY(box, yr, v)
				line(r, s, box.Left, py, box.Right, py)
			}
		}
	}}
}

// ============================================================================
// BARS, POINTS, BOXES
// ============================================================================

func (c *canvas) barLayer() chart.Series {
	bars := c.cfg.Bars
	return layer{name: "bars", draw: func(r chart.Renderer, box chart.Box, xr, yr chart.Range) {
		for i, b := range bars {
			fill := hexColor(c.fillColor(i))
			x := float64(i)
			chart.Draw.Box(r, chart.Box{
				Left:   toX(box, xr, x-barWidth/2),
				Right:  toX(box, xr, x+barWidth/2),
				Top:    toY(box, yr, b.Value),
				Bottom: toY(box, yr, 0),
			}, chart.Style{FillColor: fill, StrokeColor: fill, StrokeWidth: 1})
		}
	}}
}

func (c *canvas) pointLayer() chart.Series {
	series := c.cfg.Series
	radius := c.px(math.Sqrt(markerArea) / 2)
	edge := c.px(1)
	return layer{name: "points", draw: func(r chart.Renderer, box chart.Box, xr, yr chart.Range) {
		for i, s := range series {
			fill := withAlpha(hexColor(c.seriesColor(i, s.Color)), markerAlpha)
			for _, p := range s.Points {
				dot(r, toX(box, xr, p.X), toY(box, yr, p.Y), radius, fill, drawing.ColorWhite, edge)
			}
		}
	}}
}

func (c *canvas) boxLayer() chart.Series {
	boxes := c.cfg.Boxes
	edge := hexColor("#3f3f3f")
	width := c.px(1.2)
	flierRadius := c.px(2.5)

	return layer{name: "boxes", draw: func(r chart.Renderer, box chart.Box, xr, yr chart.Range) {
		stroke := chart.Style{StrokeColor: edge, StrokeWidth: width}
		for i, b := range boxes {
			x := float64(i)
			left, right := toX(box, xr, x-boxWidth/2), toX(box, xr, x+boxWidth/2)
			capL, capR := toX(box, xr, x-capWidth/2), toX(box, xr, x+capWidth/2)
			mid := toX(box, xr, x)

			line(r, stroke, mid, toY(box, yr, b.Q3), mid, toY(box, yr, b.UpperWhisker))
			line(r, stroke, mid, toY(box, yr, b.Q1), mid, toY(box, yr, b.LowerWhisker))
			line(r, stroke, capL, toY(box, yr, b.UpperWhisker), capR, toY(box, yr, b.UpperWhisker))
			line(r, stroke, capL, toY(box, yr, b.LowerWhisker), capR, toY(box, yr, b.LowerWhisker))

			chart.Draw.Box(r, chart.Box{
				Left:   left,
				Right:  right,
				Top:    toY(box, yr, b.Q3),
				Bottom: toY(box, yr, b.Q1),
			}, chart.Style{FillColor: hexColor(c.fillColor(i)), StrokeColor: edge, StrokeWidth: width})

			my := toY(box, yr, b.Median)
			line(r, stroke, left, my, right, my)

			for _, o := range b.Outliers {
				dot(r, mid, toY(box, yr, o), flierRadius, drawing.ColorTransparent, edge, width)
			}
		}
	}}
}

// stripLayer overlays every value with horizontal jitter. Jitter is seeded
// so the same data always renders the same image.
func (c *canvas) stripLayer() chart.Series {
	rng := rand.New(rand.NewSource(jitterSeed))
	var xs, ys []float64
	for i, b := range c.cfg.Boxes {
		for _, v := range b.Values {
			xs = append(xs, float64(i)+(rng.Float64()*2-1)*stripJitter)
			ys = append(ys, v)
		}
	}
	if len(xs) == 0 {
		return nil
	}
	dotColor := withAlpha(drawing.ColorBlack, stripAlpha)
	return chart.ContinuousSeries{
		Name:    "strip",
		YAxis:   chart.YAxisPrimary,
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeWidth: chart.Disabled,
			DotWidth:    c.px(stripRadius),
			DotColor:    dotColor,
		},
	}
}

// ============================================================================
// ANNOTATIONS AND LEGEND
// ============================================================================

func (c *canvas) annotationLayer() chart.Series {
	annotations := c.cfg.Annotations
	text := c.textColor()
	return layer{name: "annotations", draw: func(r chart.Renderer, box chart.Box, xr, yr chart.Range) {
		for _, a := range annotations {
			size := a.FontSize
			if size == 0 {
				size = annotationFontSize
			}
			x, y := toX(box, xr, a.X), toY(box, yr, a.Y)
			tb := c.text(r, a.Text, x, y, size, text, a.Align)
			if a.Arrow != nil {
				// The arrow leaves the text on the side facing its target.
				sx := float64(tb.Left)
				tx := toX(box, xr, a.Arrow.X)
				if tx > tb.Right {
					sx = float64(tb.Right)
				}
				sy := float64(tb.Top+tb.Bottom) / 2
				c.arrow(r, sx, sy, float64(tx), float64(toY(box, yr, a.Arrow.Y)))
			}
		}
	}}
}

// arrow draws a filled arrow from (sx, sy) to (tx, ty), shrunk at both ends.
func (c *canvas) arrow(r chart.Renderer, sx, sy, tx, ty float64) {
	dx, dy := tx-sx, ty-sy
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	sx, sy = sx+dx*arrowShrink, sy+dy*arrowShrink
	tx, ty = tx-dx*arrowShrink, ty-dy*arrowShrink
	length *= 1 - 2*arrowShrink

	ux, uy := dx/math.Hypot(dx, dy), dy/math.Hypot(dx, dy)
	nx, ny := -uy, ux
	headLen := math.Min(c.px(arrowHeadLength), length/2)
	half := c.px(arrowHeadWidth) / 2
	bx, by := tx-ux*headLen, ty-uy*headLen

	line(r, chart.Style{StrokeColor: drawing.ColorBlack, StrokeWidth: c.px(arrowWidth)},
		round(sx), round(sy), round(bx), round(by))

	r.SetFillColor(drawing.ColorBlack)
	r.SetStrokeColor(drawing.ColorBlack)
	r.SetStrokeWidth(1)
	r.MoveTo(round(tx), round(ty))
	r.LineTo(round(bx+nx*half), round(by+ny*half))
	r.LineTo(round(bx-nx*half), round(by-ny*half))
	r.Close()
	r.FillStroke()
	r.ResetStyle()
}

func (c *canvas) legendLayer() chart.Series {
	series := c.cfg.Series
	title := c.cfg.LegendTitle
	text := c.textColor()
	radius := c.px(math.Sqrt(markerArea) / 2)

	return layer{name: "legend", draw: func(r chart.Renderer, box chart.Box, _, _ chart.Range) {
		pad := c.pxi(6)
		lineHeight := c.pxi(legendFontSize * 1.6)
		marker := int(radius*2) + pad

		r.SetFont(c.font)
		r.SetFontSize(legendFontSize)
		textWidth := 0
		labels := make([]string, 0, len(series)+1)
		if title != "" {
			labels = append(labels, title)
		}
		for _, s := range series {
			labels = append(labels, s.Name)
		}
		for i, l := range labels {
			w := 0
			if l != "" {
				w = r.MeasureText(l).Width()
			}
			if title == "" || i > 0 {
				w += marker
			}
			if w > textWidth {
				textWidth = w
			}
		}

		frame := chart.Box{
			Left: box.Left + pad*2,
			Top:  box.Top + pad*2,
		}
		frame.Right = frame.Left + textWidth + pad*2
		frame.Bottom = frame.Top + lineHeight*len(labels) + pad
		chart.Draw.Box(r, frame, chart.Style{
			FillColor:   withAlpha(drawing.ColorWhite, 0.8),
			StrokeColor: hexColor("#cccccc"),
			StrokeWidth: c.px(0.8),
		})

		y := frame.Top + pad
		if title != "" {
			y += lineHeight
			c.text(r, title, (frame.Left+frame.Right)/2, y-pad/2, legendFontSize, text, "center")
		}
		for i, s := range series {
			y += lineHeight
			cy := y - lineHeight/2
			cx := frame.Left + pad + int(radius)
			dot(r, cx, cy, radius, withAlpha(hexColor(c.seriesColor(i, s.Color)), markerAlpha), drawing.ColorWhite, c.px(1))
			c.text(r, s.Name, frame.Left+pad+marker, y-pad/2, legendFontSize, text, "left")
		}
	}}
}

// ============================================================================
// PRIMITIVES
// ============================================================================

// text draws body with its baseline at y and returns its bounds.
// align is "center" (default), "left" or "right" relative to x.
func (c *canvas) text(r chart.Renderer, body string, x, y int, size float64, color drawing.Color, align string) chart.Box {
	if body == "" {
		// The raster renderer measures empty text as an overflowing box.
		return chart.Box{Left: x, Right: x, Top: y, Bottom: y}
	}
	r.SetFont(c.font)
	r.SetFontSize(size)
	r.SetFontColor(color)
	tb := r.MeasureText(body)
	switch align {
	case "left":
	case "right":
		x -= tb.Width()
	default:
		x -= tb.Width() / 2
	}
	r.Text(body, x, y)
	r.ResetStyle()
	return chart.Box{Left: x, Right: x + tb.Width(), Top: y - tb.Height(), Bottom: y}
}

func line(r chart.Renderer, s chart.Style, x0, y0, x1, y1 int) {
	r.SetStrokeColor(s.StrokeColor)
	r.SetStrokeWidth(s.StrokeWidth)
	r.SetStrokeDashArray(s.StrokeDashArray)
	r.MoveTo(x0, y0)
	r.LineTo(x1, y1)
	r.Stroke()
	r.ResetStyle()
}

func dot(r chart.Renderer, x, y int, radius float64, fill, stroke drawing.Color, width float64) {
	r.SetFillColor(fill)
	r.SetStrokeColor(stroke)
	r.SetStrokeWidth(width)
	r.Circle(radius, x, y)
	r.FillStroke()
	r.ResetStyle()
}

// fillColor is the chart's color for category i, else the theme palette's.
func (c *canvas) fillColor(i int) string {
	if colors := c.cfg.Colors; len(colors) > 0 {
		return colors[i%len(colors)]
	}
	if palette := c.theme.Palette; len(palette) > 0 {
		return palette[i%len(palette)]
	}
	return "#808080"
}

func (c *canvas) seriesColor(i int, color string) string {
	if color != "" {
		return color
	}
	return c.fillColor(i)
}

func round(v float64) int { return int(math.Round(v)) }

var _ chart.Series = layer{}
