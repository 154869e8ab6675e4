// Package types holds the row and trial structures shared by the loader,
// grouper, renderer and summary tooling.
package types

import "math"

// Phase is the experiment phase a continuous-log row was captured in.
type Phase string

const (
	PhaseExploration Phase = "exploration"
	PhaseAnnotation  Phase = "annotation"
)

// Event names that drive derived values.
const (
	EventStartedMoving   = "started moving"
	EventTargetPlaced    = "target_placed"
	EventTargetAnnotated = "target_annotated"
)

// ContinuousRow is one timestamped position sample from a continuous log.
type ContinuousRow struct {
	TrialID       string  `json:"trial_id"`
	Phase         Phase   `json:"phase"`
	Event         string  `json:"event,omitempty"` // empty when the cell is empty or NaN
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	TrialTime     float64 `json:"trial_time"`
	ParticipantID string  `json:"participant_id"`
}

// HasPosition reports whether both coordinates are finite.
func (r ContinuousRow) HasPosition() bool {
	return !math.IsNaN(r.X) && !math.IsNaN(r.Y) && !math.IsInf(r.X, 0) && !math.IsInf(r.Y, 0)
}

// DiscreteRow is the per-trial summary record from a discrete log.
type DiscreteRow struct {
	TrialID         string  `json:"trial"`
	AssignedDelay   float64 `json:"assigned_delay"`
	ExplorationTime float64 `json:"exploration_time"`
	ParticipantID   string  `json:"participant_id,omitempty"`
	// AssignedDelayRaw keeps the cell text so titles show "2" rather than "2.000000".
	AssignedDelayRaw string `json:"-"`
}

// Point is a position in arena coordinates (meters).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Trial is the set of continuous rows sharing a trial id, in input order.
type Trial struct {
	ID   string
	Rows []ContinuousRow
}

// Exploration returns the exploration-phase rows in input order.
func (t Trial) Exploration() []ContinuousRow { return t.byPhase(PhaseExploration) }

// Annotation returns the annotation-phase rows in input order.
func (t Trial) Annotation() []ContinuousRow { return t.byPhase(PhaseAnnotation) }

func (t Trial) byPhase(p Phase) []ContinuousRow {
	var out []ContinuousRow
	for _, r := range t.Rows {
		if r.Phase == p {
			out = append(out, r)
		}
	}
	return out
}
