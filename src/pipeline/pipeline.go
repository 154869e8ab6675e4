// Package pipeline wires locating, loading, grouping, rendering and writing.
//
// Failures never abort a run: a missing folder or file skips that
// participant, a parse error skips that participant's tables, a trial
// without discrete data is skipped on its own, and a participant filter that
// matches nothing ends that run. Each failure is printed as an "Error: ..."
// line and recorded in the Report.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sunterlet/visualize-navigation-trajectories/src/analysis"
	"github.com/sunterlet/visualize-navigation-trajectories/src/config"
	"github.com/sunterlet/visualize-navigation-trajectories/src/locate"
	"github.com/sunterlet/visualize-navigation-trajectories/src/logging"
	"github.com/sunterlet/visualize-navigation-trajectories/src/render"
	"github.com/sunterlet/visualize-navigation-trajectories/src/types"
)

// Failure records one skipped unit. TrialID is empty for participant-level
// failures.
type Failure struct {
	Participant string
	TrialID     string
	Err         error
}

// Report is the outcome of a run.
type Report struct {
	Written  []string
	Failures []Failure
}

// Runner executes runs for one configuration.
type Runner struct {
	Config config.Config
	Out    io.Writer // progress and diagnostics; os.Stdout when nil
}

// New returns a runner printing to stdout.
func New(cfg config.Config) *Runner {
	return &Runner{Config: cfg, Out: os.Stdout}
}

func (r *Runner) out() io.Writer {
	if r.Out == nil {
		return os.Stdout
	}
	return r.Out
}

// unit is one participant's resolved inputs.
type unit struct {
	participant string
	inputs      locate.Inputs
	filter      []string
}

// dataset is a unit's loaded and grouped tables.
type dataset struct {
	trials   []types.Trial
	discrete analysis.DiscreteIndex
}

func (r *Runner) fail(rep *Report, participant, trialID string, err error) {
	rep.Failures = append(rep.Failures, Failure{Participant: participant, TrialID: trialID, Err: err})
	fmt.Fprintf(r.out(), "Error: %v\n", err)
	if trialID != "" {
		logging.Logger().Warn("trial skipped", "participant", participant, "trial", trialID, "error", err)
		return
	}
	logging.Logger().Warn("participant skipped", "participant", participant, "error", err)
}

// units resolves the inputs selected by mode. Participants that cannot be
// located are reported and left out.
func (r *Runner) units(mode config.Mode, rep *Report) []unit {
	root, tag := r.Config.ResultsRoot, r.Config.SessionTag
	switch mode.Kind {
	case config.ModeSubfolder:
		participant := locate.ParticipantFromSubfolder(mode.Subfolder, tag)
		in, err := locate.ForSubfolder(root, mode.Subfolder)
		if err != nil {
			r.fail(rep, participant, "", err)
			return nil
		}
		return []unit{{participant: participant, inputs: in, filter: mode.Filter}}
	default:
		var out []unit
		for _, id := range mode.Participants {
			in, err := locate.ForParticipant(root, id, tag)
			if err != nil {
				r.fail(rep, id, "", err)
				continue
			}
			out = append(out, unit{participant: id, inputs: in})
		}
		return out
	}
}

// load reads both tables of a unit and groups the continuous rows.
func load(u unit) (dataset, error) {
	defer logging.TimeTrack(time.Now(), "load "+u.inputs.DataDir)
	rows, err := analysis.LoadContinuous(u.inputs.ContinuousFile)
	if err != nil {
		return dataset{}, err
	}
	disc, err := analysis.LoadDiscrete(u.inputs.DiscreteFile)
	if err != nil {
		return dataset{}, err
	}
	rows, err = analysis.FilterParticipants(rows, u.filter)
	if err != nil {
		return dataset{}, err
	}
	logging.Debugf("loaded %d continuous and %d discrete rows from %s", len(rows), len(disc), u.inputs.DataDir)
	return dataset{trials: analysis.GroupTrials(rows), discrete: analysis.IndexDiscrete(disc)}, nil
}

// Run renders and writes one chart per trial for every participant in mode.
// It returns early only when ctx is done.
func (r *Runner) Run(ctx context.Context, mode config.Mode) Report {
	var rep Report
	opts := render.OptionsFrom(r.Config)
	for _, u := range r.units(mode, &rep) {
		if ctx.Err() != nil {
			break
		}
		ds, err := load(u)
		if err != nil {
			r.fail(&rep, u.participant, "", err)
			continue
		}
		for _, tr := range ds.trials {
			if ctx.Err() != nil {
				break
			}
			path, err := r.renderTrial(ctx, u, tr, ds.discrete, opts)
			if err != nil {
				r.fail(&rep, u.participant, tr.ID, err)
				continue
			}
			rep.Written = append(rep.Written, path)
			fmt.Fprintf(r.out(), "Created plot for %s in %s\n", tr.ID, u.inputs.Subfolder)
		}
	}
	if err := ctx.Err(); err != nil {
		logging.Warnf("run interrupted: %v", err)
	}
	return rep
}

func (r *Runner) renderTrial(ctx context.Context, u unit, tr types.Trial, idx analysis.DiscreteIndex, opts render.Options) (string, error) {
	d, n, err := idx.Lookup(tr.ID)
	if err != nil {
		return "", err
	}
	if n > 1 {
		logging.Warnf("trial %s has %d discrete rows; using the first", tr.ID, n)
	}
	if r.Config.TrialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Config.TrialTimeout)
		defer cancel()
	}
	img, _, err := render.Render(ctx, render.Input{Participant: u.participant, Trial: tr, Discrete: d}, opts)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("trial %s: render exceeded %s", tr.ID, r.Config.TrialTimeout)
		}
		return "", err
	}
	return render.WritePNG(r.Config.OutputDir, u.participant, tr.ID, img)
}
