// Package render draws one trajectory chart per trial and writes it as PNG.
//
// A Plot is the fully derived description of a chart (title, colored
// segments, markers, legend). Chart turns it into a go-chart chart; Figure
// adds the multi-line title and the time colorbar around the rendered chart.
package render

import (
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/sunterlet/visualize-navigation-trajectories/src/analysis"
	"github.com/sunterlet/visualize-navigation-trajectories/src/config"
	"github.com/sunterlet/visualize-navigation-trajectories/src/types"
)

// Element colors.
var (
	colorArena      = drawing.Color{R: 0, G: 0, B: 0, A: 255}
	colorGrid       = drawing.Color{R: 176, G: 176, B: 176, A: 178}
	colorAnnotPath  = drawing.Color{R: 191, G: 0, B: 191, A: 128}
	colorTarget     = drawing.Color{R: 0, G: 128, B: 0, A: 255}
	colorAnnotation = drawing.Color{R: 191, G: 0, B: 191, A: 255}
)

// Legend labels.
const (
	LabelAnnotationPath = "Annotation Path"
	LabelTarget         = "Target"
	LabelAnnotation     = "Annotation"
	ColorbarLabel       = "Time (seconds)"
)

// Options are the rendering constants taken from the run configuration.
type Options struct {
	ArenaRadius  float64 // meters
	DPI          float64
	FigureInches float64
}

// OptionsFrom copies the rendering fields of cfg.
func OptionsFrom(cfg config.Config) Options {
	return Options{ArenaRadius: cfg.ArenaRadius, DPI: cfg.DPI, FigureInches: cfg.FigureSize()}
}

// Limit is the half-width of the square plot bounds.
func (o Options) Limit() float64 { return o.ArenaRadius * config.PlotLimitFactor }

// px converts typographic points to pixels at the configured DPI.
func (o Options) px(pt float64) float64 { return pt * o.DPI / 72 }

// Input is everything needed to draw one trial.
type Input struct {
	Participant string
	Trial       types.Trial
	Discrete    types.DiscreteRow
}

// Segment is one piece of the exploration path with its gradient color.
type Segment struct {
	From, To types.Point
	Time     float64 // time the color was taken from
	Color    drawing.Color
}

// LegendEntry describes one legend row.
type LegendEntry struct {
	Label string
	Color drawing.Color
	Dot   bool // dot sample; dashed line sample otherwise
}

// Plot is the derived content of one chart.
type Plot struct {
	Participant string
	TrialID     string
	Title       []string
	Metrics     analysis.TrialMetrics

	// Scale is nil when the exploration subset is empty; no path or colorbar
	// is drawn then.
	Scale      *TimeScale
	Path       []types.Point // positioned exploration points, input order
	Segments   []Segment
	Annotation []types.Point // positioned annotation points, input order
	Legend     []LegendEntry
}

// NewPlot derives the chart content for one trial.
func NewPlot(in Input) Plot {
	exp := in.Trial.Exploration()
	ann := in.Trial.Annotation()
	m := analysis.ComputeMetrics(in.Trial)
	p := Plot{
		Participant: in.Participant,
		TrialID:     in.Trial.ID,
		Metrics:     m,
		Title:       TitleLines(in.Participant, in.Trial.ID, m.TimeToMovementStart, in.Discrete),
	}

	if len(exp) > 0 {
		scale := TimeScale{}
		if m.HasTime {
			scale = TimeScale{Min: m.TimeMin, Max: m.TimeMax}
		}
		p.Scale = &scale
		var prev *types.ContinuousRow
		for i := range exp {
			r := &exp[i]
			if !r.HasPosition() {
				continue
			}
			p.Path = append(p.Path, types.Point{X: r.X, Y: r.Y})
			if prev != nil {
				t := segmentTime(prev.TrialTime, r.TrialTime)
				p.Segments = append(p.Segments, Segment{
					From:  types.Point{X: prev.X, Y: prev.Y},
					To:    types.Point{X: r.X, Y: r.Y},
					Time:  t,
					Color: scale.Color(TimeGradient, t),
				})
			}
			prev = r
		}
	}
	for _, r := range ann {
		if r.HasPosition() {
			p.Annotation = append(p.Annotation, types.Point{X: r.X, Y: r.Y})
		}
	}

	if len(p.Annotation) > 0 {
		p.Legend = append(p.Legend, LegendEntry{Label: LabelAnnotationPath, Color: colorAnnotPath})
	}
	if m.Target != nil {
		p.Legend = append(p.Legend, LegendEntry{Label: LabelTarget, Color: colorTarget, Dot: true})
	}
	if m.Annotation != nil {
		p.Legend = append(p.Legend, LegendEntry{Label: LabelAnnotation, Color: colorAnnotation, Dot: true})
	}
	return p
}

// segmentTime is the midpoint time of a segment, falling back to whichever
// end has a time.
func segmentTime(a, b float64) float64 {
	switch {
	case math.IsNaN(a):
		return b
	case math.IsNaN(b):
		return a
	}
	return (a + b) / 2
}

// TitleLines builds the multi-line chart title.
func TitleLines(participant, trialID string, timeToMovement float64, d types.DiscreteRow) []string {
	delay := d.AssignedDelayRaw
	if delay == "" {
		delay = fmt.Sprintf("%g", d.AssignedDelay)
	}
	return []string{
		"Participant: " + participant,
		"Trial: " + trialID,
		fmt.Sprintf("Time to movement start: %.2fs", timeToMovement),
		fmt.Sprintf("Assigned delay: %ss", delay),
		fmt.Sprintf("Exploration time: %.2fs", d.ExplorationTime),
	}
}
