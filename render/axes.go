package render

import (
	"math"

	"github.com/golang/freetype/truetype"
	"github.com/wcharczuk/go-chart/v2"
	"golang.org/x/image/font"
)

// ============================================================================
// AXES: Spines, ticks and axis names
// ============================================================================
// Drawn as the last layer. The frame padding reserves the room measured by
// layoutAxes, so the plot area never overlaps the labels.
// ============================================================================

// Distances in points.
const (
	tickLength = 3.5
	tickGap    = 3.5
	nameGap    = 6.0
	spineWidth = 0.8
)

// axesMargins is the room the axes need outside the plot area, in pixels.
type axesMargins struct {
	left, bottom int
}

// measure returns the advance width and ascent of body in pixels.
func (c *canvas) measure(body string, size float64) (width, ascent int) {
	face := truetype.NewFace(c.font, &truetype.Options{Size: size, DPI: c.dpi})
	defer face.Close()
	return font.MeasureString(face, body).Ceil(), face.Metrics().Ascent.Ceil()
}

// tickLabelWidth is the widest tick label of an axis.
func (c *canvas) tickLabelWidth(a axisSpec) int {
	widest := 0
	for _, t := range a.ticks {
		if w, _ := c.measure(t.Label, tickFontSize); w > widest {
			widest = w
		}
	}
	return widest
}

func (c *canvas) layoutAxes(y axisSpec) axesMargins {
	_, tickHeight := c.measure("0", tickFontSize)
	_, nameHeight := c.measure(c.cfg.XAxis+c.cfg.YAxis, axisLabelFontSize)

	left := c.px(tickLength+tickGap+nameGap) + float64(c.tickLabelWidth(y))
	bottom := c.px(tickLength+tickGap+nameGap) + float64(tickHeight)
	if c.cfg.YAxis != "" {
		left += float64(nameHeight) + c.px(nameGap)
	}
	if c.cfg.XAxis != "" {
		bottom += float64(nameHeight) + c.px(nameGap)
	}
	return axesMargins{left: int(math.Ceil(left)), bottom: int(math.Ceil(bottom))}
}

func (c *canvas) axesLayer(x, y axisSpec) chart.Series {
	text := c.textColor()
	spine := chart.Style{StrokeColor: hexColor(c.theme.Axis), StrokeWidth: c.px(spineWidth)}
	tick, gap, margin := c.pxi(tickLength), c.pxi(tickGap), c.pxi(nameGap)
	labelWidth := c.tickLabelWidth(y)
	_, tickHeight := c.measure("0", tickFontSize)

	return layer{name: "axes", draw: func(r chart.Renderer, box chart.Box, xr, yr chart.Range) {
		line(r, spine, box.Left, box.Top, box.Left, box.Bottom)
		line(r, spine, box.Left, box.Bottom, box.Right, box.Bottom)

		for _, t := range y.ticks {
			py := toY(box, yr, t.Value)
			line(r, spine, box.Left-tick, py, box.Left, py)
			c.textMiddle(r, t.Label, box.Left-tick-gap, py, tickFontSize, text, "right")
		}
		labelBase := box.Bottom + tick + gap + tickHeight
		for _, t := range x.ticks {
			px := toX(box, xr, t.Value)
			line(r, spine, px, box.Bottom, px, box.Bottom+tick)
			c.text(r, t.Label, px, labelBase, tickFontSize, text, "center")
		}

		if name := c.cfg.XAxis; name != "" {
			_, h := c.measure(name, axisLabelFontSize)
			c.text(r, name, (box.Left+box.Right)/2, labelBase+margin+h, axisLabelFontSize, text, "center")
		}
		if name := c.cfg.YAxis; name != "" {
			// Rotated text reads upward from (x, y) with its glyphs left of x.
			w, _ := c.measure(name, axisLabelFontSize)
			r.SetFont(c.font)
			r.SetFontSize(axisLabelFontSize)
			r.SetFontColor(text)
			r.SetTextRotation(chart.DegreesToRadians(270))
			r.Text(name, box.Left-tick-gap-labelWidth-margin, (box.Top+box.Bottom)/2+w/2)
			r.ClearTextRotation()
			r.ResetStyle()
		}
	}}
}
