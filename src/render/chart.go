package render

import (
	"math"

	"github.com/golang/freetype/truetype"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/sunterlet/visualize-navigation-trajectories/src/types"
)

const (
	axisFontPt   = 10
	legendFontPt = 10
	circleSteps  = 360
)

// axisTicks returns symmetric ticks within ±lim.
func axisTicks(lim float64) []chart.Tick {
	at := ArenaTicks(lim)
	ticks := make([]chart.Tick, 0, len(at.Values))
	for _, v := range at.Values {
		ticks = append(ticks, chart.Tick{Value: v, Label: at.Label(v)})
	}
	return ticks
}

// lineSeries is a stroked series without dots.
func lineSeries(name string, xs, ys []float64, col drawing.Color, width float64, dash []float64) chart.ContinuousSeries {
	return chart.ContinuousSeries{
		Name:    name,
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeColor:     col,
			StrokeWidth:     width,
			StrokeDashArray: dash,
		},
	}
}

// pointStyle renders points only (no connecting line).
func pointStyle(col drawing.Color, radius float64) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    radius,
		DotColor:    col,
	}
}

// arenaSeries samples the boundary circle.
func arenaSeries(radius float64, o Options) chart.ContinuousSeries {
	xs := make([]float64, circleSteps+1)
	ys := make([]float64, circleSteps+1)
	for i := 0; i <= circleSteps; i++ {
		a := 2 * math.Pi * float64(i) / circleSteps
		xs[i] = radius * math.Cos(a)
		ys[i] = radius * math.Sin(a)
	}
	return lineSeries("Arena", xs, ys, colorArena, o.px(1.5), []float64{o.px(6), o.px(3)})
}

// gridSeries draws dashed grid lines at every tick across the plot bounds.
func gridSeries(ticks []chart.Tick, lim float64, o Options) []chart.Series {
	dash := []float64{o.px(3), o.px(3)}
	var out []chart.Series
	for _, t := range ticks {
		out = append(out,
			lineSeries("", []float64{t.Value, t.Value}, []float64{-lim, lim}, colorGrid, o.px(0.8), dash),
			lineSeries("", []float64{-lim, lim}, []float64{t.Value, t.Value}, colorGrid, o.px(0.8), dash),
		)
	}
	return out
}

func pointsXY(pts []types.Point) (xs, ys []float64) {
	xs = make([]float64, len(pts))
	ys = make([]float64, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = p.X, p.Y
	}
	return xs, ys
}

// Series returns the chart series in draw order: grid, arena, exploration
// segments, annotation path, markers.
func (p Plot) Series(o Options) []chart.Series {
	lim := o.Limit()
	series := gridSeries(axisTicks(lim), lim, o)
	series = append(series, arenaSeries(o.ArenaRadius, o))

	for _, s := range p.Segments {
		series = append(series, lineSeries("",
			[]float64{s.From.X, s.To.X}, []float64{s.From.Y, s.To.Y},
			s.Color, o.px(1.5), nil))
	}
	if len(p.Annotation) > 0 {
		xs, ys := pointsXY(p.Annotation)
		series = append(series, lineSeries(LabelAnnotationPath, xs, ys, colorAnnotPath, o.px(1.5), []float64{o.px(6), o.px(3)}))
	}
	marker := o.px(5)
	if t := p.Metrics.Target; t != nil {
		series = append(series, chart.ContinuousSeries{
			Name: LabelTarget, XValues: []float64{t.X}, YValues: []float64{t.Y},
			Style: pointStyle(colorTarget, marker),
		})
	}
	if a := p.Metrics.Annotation; a != nil {
		series = append(series, chart.ContinuousSeries{
			Name: LabelAnnotation, XValues: []float64{a.X}, YValues: []float64{a.Y},
			Style: pointStyle(colorAnnotation, marker),
		})
	}
	return series
}

// Chart builds the square trajectory chart. The title and colorbar are added
// by Figure.
func (p Plot) Chart(o Options, font *truetype.Font) chart.Chart {
	size := int(math.Round(o.FigureInches * o.DPI))
	lim := o.Limit()
	ticks := axisTicks(lim)
	pad := int(o.px(8))
	labels := make([]string, len(ticks))
	for i, t := range ticks {
		labels[i] = t.Label
	}
	// The y axis (tick labels plus rotated name) sits on the right and is
	// wider than the x axis is tall; pad the bottom by the difference so the
	// plotting area stays square.
	extra := 0
	if font != nil {
		extra = aspectCompensation(font, axisFontPt, o.DPI, labels)
	}

	ch := chart.Chart{
		Width:  size,
		Height: size,
		DPI:    o.DPI,
		Font:   font,
		Background: chart.Style{
			Padding: chart.Box{Top: pad, Left: pad, Right: pad, Bottom: pad + extra},
		},
		XAxis: chart.XAxis{
			Name:      "X position (meters)",
			NameStyle: chart.Style{FontSize: axisFontPt},
			Style:     chart.Style{FontSize: axisFontPt},
			Range:     &chart.ContinuousRange{Min: -lim, Max: lim},
			Ticks:     ticks,
		},
		YAxis: chart.YAxis{
			Name:      "Y position (meters)",
			NameStyle: chart.Style{FontSize: axisFontPt},
			Style:     chart.Style{FontSize: axisFontPt},
			Range:     &chart.ContinuousRange{Min: -lim, Max: lim},
			Ticks:     ticks,
		},
		Series: p.Series(o),
	}
	ch.Elements = []chart.Renderable{legend(p.Legend, o)}
	return ch
}
