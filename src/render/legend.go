package render

import (
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	legendFill   = drawing.Color{R: 255, G: 255, B: 255, A: 204}
	legendBorder = drawing.Color{R: 204, G: 204, B: 204, A: 255}
	legendText   = drawing.Color{R: 51, G: 51, B: 51, A: 255}
)

// legend draws a boxed legend in the top-left corner of the canvas.
// chart.Legend lists every series, including the unnamed grid lines and path
// segments, so only the named plot elements are listed here.
func legend(entries []LegendEntry, o Options) chart.Renderable {
	return func(r chart.Renderer, cb chart.Box, defaults chart.Style) {
		if len(entries) == 0 {
			return
		}
		r.SetFont(defaults.GetFont())
		r.SetFontSize(legendFontPt)
		r.SetFontColor(legendText)

		pad := int(o.px(5))
		sample := int(o.px(20))
		gap := int(o.px(6))
		rowH := 0
		textW := 0
		for _, e := range entries {
			tb := r.MeasureText(e.Label)
			if tb.Width() > textW {
				textW = tb.Width()
			}
			if tb.Height() > rowH {
				rowH = tb.Height()
			}
		}
		rowH += gap

		left := cb.Left + pad*2
		top := cb.Top + pad*2
		right := left + pad + sample + gap + textW + pad
		bottom := top + pad + rowH*len(entries) + pad - gap

		r.SetFillColor(legendFill)
		r.SetStrokeColor(legendBorder)
		r.SetStrokeWidth(o.px(0.8))
		r.SetStrokeDashArray(nil)
		r.MoveTo(left, top)
		r.LineTo(right, top)
		r.LineTo(right, bottom)
		r.LineTo(left, bottom)
		r.LineTo(left, top)
		r.Close()
		r.FillStroke()

		y := top + pad
		for _, e := range entries {
			mid := y + (rowH-gap)/2
			sx := left + pad
			if e.Dot {
				r.SetFillColor(e.Color)
				r.SetStrokeColor(e.Color)
				r.SetStrokeDashArray(nil)
				r.Circle(o.px(4), sx+sample/2, mid)
				r.FillStroke()
			} else {
				r.SetStrokeColor(e.Color)
				r.SetStrokeWidth(o.px(1.5))
				r.SetStrokeDashArray([]float64{o.px(6), o.px(3)})
				r.MoveTo(sx, mid)
				r.LineTo(sx+sample, mid)
				r.Stroke()
			}
			r.SetFontColor(legendText)
			r.Text(e.Label, sx+sample+gap, y+rowH-gap)
			y += rowH
		}
		r.SetStrokeDashArray(nil)
	}
}
