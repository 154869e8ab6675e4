package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/golang/freetype/truetype"
	chart "github.com/wcharczuk/go-chart/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// defaultFont returns the chart library's bundled font, or nil when it cannot
// be parsed (callers then fall back to basicfont).
func defaultFont() *truetype.Font {
	f, err := chart.GetDefaultFont()
	if err != nil {
		return nil
	}
	return f
}

// newFace returns a face of size pt at dpi, or the 7x13 bitmap face.
func newFace(f *truetype.Font, pt, dpi float64) font.Face {
	if f == nil {
		return basicfont.Face7x13
	}
	return truetype.NewFace(f, &truetype.Options{Size: pt, DPI: dpi, Hinting: font.HintingFull})
}

// textWidth measures s in pixels.
func textWidth(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}

// lineHeight is ascent plus descent in pixels.
func lineHeight(face font.Face) int {
	m := face.Metrics()
	return (m.Ascent + m.Descent).Ceil()
}

// aspectCompensation estimates how much wider the right-hand y axis is than
// the x axis is tall: widest tick label minus one text line.
func aspectCompensation(f *truetype.Font, pt, dpi float64, labels []string) int {
	face := newFace(f, pt, dpi)
	widest := 0
	for _, l := range labels {
		if w := textWidth(face, l); w > widest {
			widest = w
		}
	}
	if d := widest - lineHeight(face); d > 0 {
		return d
	}
	return 0
}

// drawText draws s with its baseline-left corner at (x, y).
func drawText(dst draw.Image, face font.Face, col color.Color, x, y int, s string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(s)
}

// drawTextCentered draws s horizontally centered on cx with baseline y.
func drawTextCentered(dst draw.Image, face font.Face, col color.Color, cx, y int, s string) {
	drawText(dst, face, col, cx-textWidth(face, s)/2, y, s)
}

// drawTextVertical draws s rotated 90° counter-clockwise so it reads bottom
// to top, with the rotated text's top-left corner at (x, y).
func drawTextVertical(dst draw.Image, face font.Face, col color.Color, x, y int, s string) {
	w, h := textWidth(face, s), lineHeight(face)
	if w <= 0 || h <= 0 {
		return
	}
	tmp := image.NewRGBA(image.Rect(0, 0, w, h))
	drawText(tmp, face, col, 0, face.Metrics().Ascent.Ceil(), s)
	rot := image.NewRGBA(image.Rect(0, 0, h, w))
	for sy := 0; sy < h; sy++ {
		for sx := 0; sx < w; sx++ {
			rot.SetRGBA(sy, w-1-sx, tmp.RGBAAt(sx, sy))
		}
	}
	draw.Draw(dst, image.Rect(x, y, x+h, y+w), rot, image.Point{}, draw.Over)
}
