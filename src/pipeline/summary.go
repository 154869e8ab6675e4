package pipeline

import (
	"context"
	"errors"
	"math"

	"github.com/sunterlet/visualize-navigation-trajectories/src/analysis"
	"github.com/sunterlet/visualize-navigation-trajectories/src/config"
	"github.com/sunterlet/visualize-navigation-trajectories/src/types"
)

// TrialSummary is one row of the summary table.
type TrialSummary struct {
	analysis.TrialMetrics
	AssignedDelay   string   `json:"assigned_delay,omitempty"`
	ExplorationTime *float64 `json:"exploration_time_s,omitempty"` // nil when the cell is empty
	HasDiscrete     bool     `json:"has_discrete"`
}

// ParticipantSummary groups a participant's trial rows.
type ParticipantSummary struct {
	Participant string         `json:"participant"`
	Subfolder   string         `json:"subfolder"`
	Trials      []TrialSummary `json:"trials"`
}

// Summarize computes per-trial metrics for every participant in mode without
// rendering. Trials without discrete data are kept with HasDiscrete false.
func (r *Runner) Summarize(ctx context.Context, mode config.Mode) ([]ParticipantSummary, Report) {
	var (
		rep Report
		out []ParticipantSummary
	)
	for _, u := range r.units(mode, &rep) {
		if ctx.Err() != nil {
			break
		}
		ds, err := load(u)
		if err != nil {
			r.fail(&rep, u.participant, "", err)
			continue
		}
		ps := ParticipantSummary{Participant: u.participant, Subfolder: u.inputs.Subfolder}
		for _, tr := range ds.trials {
			ps.Trials = append(ps.Trials, summarizeTrial(tr, ds.discrete))
		}
		out = append(out, ps)
	}
	return out, rep
}

func summarizeTrial(tr types.Trial, idx analysis.DiscreteIndex) TrialSummary {
	ts := TrialSummary{TrialMetrics: analysis.ComputeMetrics(tr)}
	d, _, err := idx.Lookup(tr.ID)
	var missing *types.MissingDiscreteDataError
	if errors.As(err, &missing) {
		return ts
	}
	ts.HasDiscrete = true
	ts.AssignedDelay = d.AssignedDelayRaw
	if !math.IsNaN(d.ExplorationTime) {
		v := d.ExplorationTime
		ts.ExplorationTime = &v
	}
	return ts
}
