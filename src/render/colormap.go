package render

import (
	"image/color"
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Gradient is a two-stop linear colormap.
type Gradient struct {
	From, To drawing.Color
}

// TimeGradient runs from dark blue (0, 0, 0.5) to red (1, 0, 0).
var TimeGradient = Gradient{
	From: drawing.Color{R: 0, G: 0, B: 128, A: 255},
	To:   drawing.Color{R: 255, G: 0, B: 0, A: 255},
}

// At returns the color at f in [0,1]; f is clamped.
func (g Gradient) At(f float64) drawing.Color {
	if math.IsNaN(f) || f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	lerp := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + (float64(b)-float64(a))*f))
	}
	return drawing.Color{
		R: lerp(g.From.R, g.To.R),
		G: lerp(g.From.G, g.To.G),
		B: lerp(g.From.B, g.To.B),
		A: lerp(g.From.A, g.To.A),
	}
}

// TimeScale maps trial times linearly onto [0,1].
type TimeScale struct {
	Min, Max float64
}

// Normalize maps v into [0,1]. A degenerate scale maps everything to 0.
func (s TimeScale) Normalize(v float64) float64 {
	if s.Max <= s.Min {
		return 0
	}
	f := (v - s.Min) / (s.Max - s.Min)
	return math.Max(0, math.Min(1, f))
}

// Color returns the gradient color for trial time v.
func (s TimeScale) Color(g Gradient, v float64) drawing.Color {
	return g.At(s.Normalize(v))
}

// toRGBA converts a chart color for use with image/draw.
func toRGBA(c drawing.Color) color.RGBA {
	a := uint32(c.A)
	return color.RGBA{
		R: uint8(uint32(c.R) * a / 255),
		G: uint8(uint32(c.G) * a / 255),
		B: uint8(uint32(c.B) * a / 255),
		A: c.A,
	}
}
