package analysis

import (
	"errors"
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunterlet/visualize-navigation-trajectories/src/types"
)

func row(trial string, phase types.Phase, event string, x, y, t float64, p string) types.ContinuousRow {
	return types.ContinuousRow{TrialID: trial, Phase: phase, Event: event, X: x, Y: y, TrialTime: t, ParticipantID: p}
}

func TestTimeToMovementStart(t *testing.T) {
	none := []types.ContinuousRow{
		row("T1", types.PhaseExploration, "", 0, 0, 0.5, "p"),
		row("T1", types.PhaseExploration, "target_placed", 1, 1, 0.9, "p"),
	}
	assert.Equal(t, 0.0, TimeToMovementStart(none))

	first := []types.ContinuousRow{
		row("T1", types.PhaseExploration, "", 0, 0, 0.1, "p"),
		row("T1", types.PhaseExploration, "started moving", 0, 0, 0.7, "p"),
		row("T1", types.PhaseExploration, "started moving", 0, 0, 0.3, "p"),
	}
	assert.Equal(t, 0.7, TimeToMovementStart(first), "first in input order, not smallest time")
}

func TestTimeRange_Local(t *testing.T) {
	lo, hi, ok := TimeRange([]types.ContinuousRow{
		row("T", types.PhaseExploration, "", 0, 0, 12, "p"),
		row("T", types.PhaseExploration, "", 0, 0, math.NaN(), "p"),
		row("T", types.PhaseExploration, "", 0, 0, 10, "p"),
		row("T", types.PhaseExploration, "", 0, 0, 15, "p"),
	})
	require.True(t, ok)
	assert.Equal(t, 10.0, lo)
	assert.Equal(t, 15.0, hi)

	_, _, ok = TimeRange(nil)
	assert.False(t, ok)
}

func TestComputeMetrics(t *testing.T) {
	tr := types.Trial{ID: "T1", Rows: []types.ContinuousRow{
		row("T1", types.PhaseExploration, "started moving", 0, 0, 0.4, "p"),
		row("T1", types.PhaseExploration, "", 3, 0, 1.0, "p"),
		row("T1", types.PhaseExploration, "target_placed", 3, 4, 2.0, "p"),
		row("T1", types.PhaseAnnotation, "", 0, 0, 3.0, "p"),
		row("T1", types.PhaseAnnotation, "target_annotated", 0, 4, 4.0, "p"),
	}}
	m := ComputeMetrics(tr)
	assert.Equal(t, 3, m.ExplorationRows)
	assert.Equal(t, 2, m.AnnotationRows)
	assert.Equal(t, 0.4, m.TimeToMovementStart)
	assert.Equal(t, 7.0, m.PathLength)
	assert.Equal(t, 0.4, m.TimeMin)
	assert.Equal(t, 2.0, m.TimeMax)
	require.NotNil(t, m.Target)
	require.NotNil(t, m.Annotation)
	assert.Equal(t, types.Point{X: 3, Y: 4}, *m.Target)
	require.NotNil(t, m.PlacementError)
	assert.InDelta(t, 3.0, *m.PlacementError, 1e-9)
}

func TestComputeMetrics_TargetOnlyFromExploration(t *testing.T) {
	tr := types.Trial{ID: "T1", Rows: []types.ContinuousRow{
		row("T1", types.PhaseAnnotation, "target_placed", 1, 1, 0, "p"),
		row("T1", types.PhaseExploration, "target_annotated", 1, 1, 0, "p"),
	}}
	m := ComputeMetrics(tr)
	assert.Nil(t, m.Target)
	assert.Nil(t, m.Annotation)
	assert.Nil(t, m.PlacementError)
}

func TestGroupTrials_PreservesOrder(t *testing.T) {
	rows := []types.ContinuousRow{
		row("T2", types.PhaseExploration, "", 0, 0, 0, "a"),
		row("T1", types.PhaseExploration, "", 1, 0, 0, "a"),
		row("T2", types.PhaseExploration, "", 2, 0, 1, "a"),
		row("T1", types.PhaseAnnotation, "", 3, 0, 1, "a"),
	}
	trials := GroupTrials(rows)
	require.Len(t, trials, 2)
	assert.Equal(t, "T2", trials[0].ID)
	assert.Equal(t, []float64{0, 2}, []float64{trials[0].Rows[0].X, trials[0].Rows[1].X})
	assert.Equal(t, []float64{1, 3}, []float64{trials[1].Rows[0].X, trials[1].Rows[1].X})
	assert.Len(t, trials[1].Exploration(), 1)
	assert.Len(t, trials[1].Annotation(), 1)
}

func TestFilterThenGroupMatchesGroupThenDiscard(t *testing.T) {
	rows := []types.ContinuousRow{
		row("T1", types.PhaseExploration, "", 0, 0, 0, "A"),
		row("T2", types.PhaseExploration, "", 0, 0, 0, "B"),
		row("T3", types.PhaseExploration, "", 0, 0, 0, "A"),
		row("T3", types.PhaseExploration, "", 1, 0, 1, "A"),
		row("T4", types.PhaseExploration, "", 0, 0, 0, "B"),
	}
	filtered, err := FilterParticipants(rows, []string{"A"})
	require.NoError(t, err)
	got := trialIDs(GroupTrials(filtered))

	var want []string
	for _, tr := range GroupTrials(rows) {
		if hasParticipant(tr, "A") {
			want = append(want, tr.ID)
		}
	}
	sort.Strings(got)
	sort.Strings(want)
	assert.Equal(t, want, got)
	assert.Equal(t, []string{"T1", "T3"}, got)
}

func TestFilterParticipants(t *testing.T) {
	rows := []types.ContinuousRow{row("T1", types.PhaseExploration, "", 0, 0, 0, "A")}

	out, err := FilterParticipants(rows, nil)
	require.NoError(t, err)
	assert.Len(t, out, 1)

	_, err = FilterParticipants(rows, []string{"Z"})
	var nd *types.NoDataError
	require.True(t, errors.As(err, &nd), "got %v", err)
	assert.Equal(t, []string{"Z"}, nd.Participants)
}

func TestDiscreteIndex_Lookup(t *testing.T) {
	idx := IndexDiscrete([]types.DiscreteRow{
		{TrialID: "T1", AssignedDelay: 2},
		{TrialID: "T1", AssignedDelay: 5},
		{TrialID: "T3", AssignedDelay: 1},
	})
	d, n, err := idx.Lookup("T1")
	require.NoError(t, err)
	assert.Equal(t, 2.0, d.AssignedDelay)
	assert.Equal(t, 2, n)

	_, _, err = idx.Lookup("T2")
	var md *types.MissingDiscreteDataError
	require.True(t, errors.As(err, &md))
	assert.Equal(t, "T2", md.TrialID)
}

func trialIDs(ts []types.Trial) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.ID)
	}
	return out
}

func hasParticipant(tr types.Trial, id string) bool {
	for _, r := range tr.Rows {
		if r.ParticipantID == id {
			return true
		}
	}
	return false
}
