package analysis

import (
	"math"

	"github.com/sunterlet/visualize-navigation-trajectories/src/types"
)

// TimeToMovementStart is the trial_time of the first exploration row whose
// event is "started moving", or 0 when there is none.
func TimeToMovementStart(exploration []types.ContinuousRow) float64 {
	for _, r := range exploration {
		if r.Event == types.EventStartedMoving {
			return r.TrialTime
		}
	}
	return 0
}

// FirstEventPosition returns the position of the first row carrying event.
func FirstEventPosition(rows []types.ContinuousRow, event string) (types.Point, bool) {
	for _, r := range rows {
		if r.Event == event {
			return types.Point{X: r.X, Y: r.Y}, true
		}
	}
	return types.Point{}, false
}

// TimeRange returns min and max trial_time over rows, ignoring NaN.
// ok is false when no row carries a time.
func TimeRange(rows []types.ContinuousRow) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, r := range rows {
		if math.IsNaN(r.TrialTime) {
			continue
		}
		lo = math.Min(lo, r.TrialTime)
		hi = math.Max(hi, r.TrialTime)
		ok = true
	}
	if !ok {
		return 0, 0, false
	}
	return lo, hi, true
}

// PathLength sums the euclidean length of consecutive positioned rows.
func PathLength(rows []types.ContinuousRow) float64 {
	var total float64
	var prev *types.ContinuousRow
	for i := range rows {
		r := &rows[i]
		if !r.HasPosition() {
			continue
		}
		if prev != nil {
			total += math.Hypot(r.X-prev.X, r.Y-prev.Y)
		}
		prev = r
	}
	return total
}

// TrialMetrics are the derived values for one trial.
type TrialMetrics struct {
	TrialID             string       `json:"trial_id"`
	ExplorationRows     int          `json:"exploration_rows"`
	AnnotationRows      int          `json:"annotation_rows"`
	TimeToMovementStart float64      `json:"time_to_movement_start_s"`
	TimeMin             float64      `json:"time_min_s"`
	TimeMax             float64      `json:"time_max_s"`
	HasTime             bool         `json:"-"`
	PathLength          float64      `json:"path_length_m"`
	Target              *types.Point `json:"target,omitempty"`
	Annotation          *types.Point `json:"annotation,omitempty"`
	// PlacementError is the distance between target and annotation (meters);
	// set only when both exist.
	PlacementError *float64 `json:"placement_error_m,omitempty"`
}

// ComputeMetrics derives the values charts and summaries report for a trial.
func ComputeMetrics(t types.Trial) TrialMetrics {
	exp := t.Exploration()
	ann := t.Annotation()
	m := TrialMetrics{
		TrialID:             t.ID,
		ExplorationRows:     len(exp),
		AnnotationRows:      len(ann),
		TimeToMovementStart: TimeToMovementStart(exp),
		PathLength:          PathLength(exp),
	}
	m.TimeMin, m.TimeMax, m.HasTime = TimeRange(exp)
	if p, ok := FirstEventPosition(exp, types.EventTargetPlaced); ok {
		m.Target = &p
	}
	if p, ok := FirstEventPosition(ann, types.EventTargetAnnotated); ok {
		m.Annotation = &p
	}
	if m.Target != nil && m.Annotation != nil {
		d := math.Hypot(m.Target.X-m.Annotation.X, m.Target.Y-m.Annotation.Y)
		m.PlacementError = &d
	}
	return m
}
