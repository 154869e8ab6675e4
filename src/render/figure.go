package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"golang.org/x/image/font"

	"github.com/sunterlet/visualize-navigation-trajectories/src/logging"
)

const (
	titleFontPt    = 12
	colorbarFontPt = 10
)

var (
	figureBackground = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	textColor        = color.RGBA{R: 0, G: 0, B: 0, A: 255}
)

// renderChart draws a go-chart chart as PNG; tests replace it to stall.
var renderChart = func(ch chart.Chart, w io.Writer) error {
	return ch.Render(chart.PNG, w)
}

type figureResult struct {
	img image.Image
	err error
}

// Render draws the full figure for one trial: title, chart and colorbar,
// trimmed to its content. It returns ctx.Err() as soon as ctx is done; a
// figure still being drawn then finishes in the background and is dropped.
func Render(ctx context.Context, in Input, o Options) (image.Image, Plot, error) {
	defer logging.TimeTrack(time.Now(), "render trial "+in.Trial.ID)
	if err := ctx.Err(); err != nil {
		return nil, Plot{}, err
	}
	p := NewPlot(in)
	done := make(chan figureResult, 1)
	go func() {
		img, err := p.Figure(ctx, o)
		done <- figureResult{img: img, err: err}
	}()
	select {
	case r := <-done:
		return r.img, p, r.err
	case <-ctx.Done():
		return nil, p, ctx.Err()
	}
}

// Figure renders the plot to an image.
func (p Plot) Figure(ctx context.Context, o Options) (image.Image, error) {
	f := defaultFont()
	ch := p.Chart(o, f)

	var buf bytes.Buffer
	if err := renderChart(ch, &buf); err != nil {
		return nil, fmt.Errorf("render chart for trial %s: %w", p.TrialID, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	plotImg, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode chart for trial %s: %w", p.TrialID, err)
	}

	titleFace := newFace(f, titleFontPt, o.DPI)
	lh := lineHeight(titleFace)
	gap := int(o.px(4))
	titleH := len(p.Title)*(lh+gap) + gap

	pb := plotImg.Bounds()
	cbW := 0
	if p.Scale != nil {
		cbW = int(o.px(90))
	}
	canvas := image.NewRGBA(image.Rect(0, 0, pb.Dx()+cbW, titleH+pb.Dy()))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(figureBackground), image.Point{}, draw.Src)

	cx := pb.Dx() / 2
	for i, line := range p.Title {
		baseline := gap + i*(lh+gap) + titleFace.Metrics().Ascent.Ceil()
		drawTextCentered(canvas, titleFace, textColor, cx, baseline, line)
	}
	draw.Draw(canvas, image.Rect(0, titleH, pb.Dx(), titleH+pb.Dy()), plotImg, pb.Min, draw.Over)

	if p.Scale != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		area := image.Rect(pb.Dx(), titleH, pb.Dx()+cbW, titleH+pb.Dy())
		if err := drawColorbar(ctx, canvas, area, *p.Scale, newFace(f, colorbarFontPt, o.DPI), o); err != nil {
			return nil, err
		}
	}
	return TrimToContent(canvas, figureBackground, int(o.px(7.2))), nil
}

// drawColorbar fills area with a vertical gradient (min at the bottom), tick
// labels to its right and the rotated "Time (seconds)" label beyond them.
func drawColorbar(ctx context.Context, dst draw.Image, area image.Rectangle, s TimeScale, face font.Face, o Options) error {
	barW := int(o.px(12))
	top := area.Min.Y + area.Dy()/10
	bottom := area.Max.Y - area.Dy()/8
	left := area.Min.X + int(o.px(6))
	if bottom <= top {
		return nil
	}
	h := bottom - top
	for y := top; y < bottom; y++ {
		if (y-top)%64 == 0 && ctx.Err() != nil {
			return ctx.Err()
		}
		f := float64(bottom-1-y) / float64(max(h-1, 1))
		c := toRGBA(TimeGradient.At(f))
		draw.Draw(dst, image.Rect(left, y, left+barW, y+1), image.NewUniform(c), image.Point{}, draw.Src)
	}
	// outline
	border := image.NewUniform(textColor)
	draw.Draw(dst, image.Rect(left, top, left+barW, top+1), border, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(left, bottom-1, left+barW, bottom), border, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(left, top, left+1, bottom), border, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(left+barW-1, top, left+barW, bottom), border, image.Point{}, draw.Src)

	tick := int(o.px(3))
	asc := face.Metrics().Ascent.Ceil()
	labelX := left + barW + tick + int(o.px(2))
	widest := 0
	ticks := ColorbarTicks(s)
	for _, v := range ticks.Values {
		y := bottom - 1 - int(s.Normalize(v)*float64(h-1))
		draw.Draw(dst, image.Rect(left+barW, y, left+barW+tick, y+1), border, image.Point{}, draw.Src)
		label := ticks.Label(v)
		drawText(dst, face, textColor, labelX, y+asc/2, label)
		if w := textWidth(face, label); w > widest {
			widest = w
		}
	}
	nameW := textWidth(face, ColorbarLabel)
	drawTextVertical(dst, face, textColor, labelX+widest+int(o.px(4)), top+(h-nameW)/2, ColorbarLabel)
	return nil
}

// TrimToContent crops img to the bounding box of pixels that differ from bg,
// keeping pad pixels of margin.
func TrimToContent(img *image.RGBA, bg color.RGBA, pad int) image.Image {
	b := img.Bounds()
	minX, minY, maxX, maxY := b.Max.X, b.Max.Y, b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) == bg {
				continue
			}
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)
		}
	}
	if maxX < minX {
		return img
	}
	r := image.Rect(minX-pad, minY-pad, maxX+1+pad, maxY+1+pad).Intersect(b)
	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(out, out.Bounds(), img, r.Min, draw.Src)
	return out
}
