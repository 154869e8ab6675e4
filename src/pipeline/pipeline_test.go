package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunterlet/visualize-navigation-trajectories/src/config"
	"github.com/sunterlet/visualize-navigation-trajectories/src/logging"
	"github.com/sunterlet/visualize-navigation-trajectories/src/types"
)

const header = "timestamp,trial_info,phase,event,x,y,trial_time,participant_id\n"

// fixture lays out root/sub/<id>_vw1ezaxd/data with the given logs.
func fixture(t *testing.T, id, continuous, discrete string) (root, sub string) {
	t.Helper()
	root = t.TempDir()
	sub = filepath.Join("sub", id+"_"+config.DefaultSessionTag)
	data := filepath.Join(root, sub, "data")
	require.NoError(t, os.MkdirAll(data, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(data, "continuous_log_1.csv"), []byte(continuous), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(data, "discrete_log_1.csv"), []byte(discrete), 0o644))
	return root, sub
}

func runner(t *testing.T, root string) (*Runner, *bytes.Buffer) {
	t.Helper()
	logging.Discard()
	cfg := config.Default()
	cfg.ResultsRoot = root
	cfg.OutputDir = filepath.Join(t.TempDir(), "plots")
	cfg.DPI = 40
	cfg.FigureInches = 6
	var out bytes.Buffer
	return &Runner{Config: cfg, Out: &out}, &out
}

func failureOf[T error](rep Report) (Failure, bool) {
	for _, f := range rep.Failures {
		var target T
		if errors.As(f.Err, &target) {
			return f, true
		}
	}
	return Failure{}, false
}

func TestRun_SingleTrialRoundTrip(t *testing.T) {
	continuous := header +
		"1,T1,exploration,started moving,0,0,0.0,123456\n" +
		"2,T1,exploration,,0.5,0.3,1.2,123456\n"
	root, sub := fixture(t, "123456", continuous, "trial,assigned_delay,exploration_time\nT1,2,1.2\n")
	r, out := runner(t, root)

	rep := r.Run(context.Background(), config.ByParticipant("123456"))
	require.Empty(t, rep.Failures)
	require.Len(t, rep.Written, 1)
	want := filepath.Join(r.Config.OutputDir, "trajectory_123456_T1.png")
	assert.Equal(t, want, rep.Written[0])
	assert.FileExists(t, want)
	assert.Contains(t, out.String(), "Created plot for T1 in "+sub)
}

func TestRun_MissingDiscreteSkipsTrialOnly(t *testing.T) {
	continuous := header +
		"1,T1,exploration,,0,0,0,123456\n" +
		"2,T1,exploration,,1,1,1,123456\n" +
		"3,T2,exploration,,0,0,0,123456\n" +
		"4,T2,exploration,,1,0,1,123456\n"
	root, _ := fixture(t, "123456", continuous, "trial,assigned_delay,exploration_time\nT1,2,1.2\n")
	r, out := runner(t, root)

	rep := r.Run(context.Background(), config.ByParticipant("123456"))
	require.Len(t, rep.Written, 1)
	assert.Equal(t, "trajectory_123456_T1.png", filepath.Base(rep.Written[0]))
	f, ok := failureOf[*types.MissingDiscreteDataError](rep)
	require.True(t, ok)
	assert.Equal(t, "T2", f.TrialID)
	assert.Contains(t, out.String(), "Error: no discrete data for trial T2")
	assert.NoFileExists(t, filepath.Join(r.Config.OutputDir, "trajectory_123456_T2.png"))
}

func TestRun_NarrowTimeRangeDoesNotStallRun(t *testing.T) {
	continuous := header +
		"1,T1,exploration,,0,0,0.3,123456\n" +
		"2,T1,exploration,,0.5,0.5,0.30000000000000004,123456\n" +
		"3,T2,exploration,,0,0,0,123456\n" +
		"4,T2,exploration,,1,0,1,123456\n"
	root, _ := fixture(t, "123456", continuous, "trial,assigned_delay,exploration_time\nT1,2,1.2\nT2,2,1.2\n")
	r, _ := runner(t, root)
	r.Config.TrialTimeout = 30 * time.Second

	rep := r.Run(context.Background(), config.ByParticipant("123456"))
	require.Empty(t, rep.Failures)
	require.Len(t, rep.Written, 2)
	assert.Equal(t, "trajectory_123456_T2.png", filepath.Base(rep.Written[1]))
}

func TestRun_SubfolderModeDerivesParticipant(t *testing.T) {
	continuous := header + "1,T1,exploration,,0,0,0,123456\n2,T1,exploration,,1,1,1,123456\n"
	root, sub := fixture(t, "123456", continuous, "trial,assigned_delay,exploration_time\nT1,2,1.2\n")
	r, _ := runner(t, root)

	rep := r.Run(context.Background(), config.BySubfolder(sub))
	require.Empty(t, rep.Failures)
	require.Len(t, rep.Written, 1)
	assert.Equal(t, "trajectory_123456_T1.png", filepath.Base(rep.Written[0]))
}

func TestRun_UnknownParticipantIsSkipped(t *testing.T) {
	continuous := header + "1,T1,exploration,,0,0,0,123456\n2,T1,exploration,,1,1,1,123456\n"
	root, _ := fixture(t, "123456", continuous, "trial,assigned_delay,exploration_time\nT1,2,1.2\n")
	r, out := runner(t, root)

	rep := r.Run(context.Background(), config.ByParticipant("zzzzzz", "123456"))
	assert.Len(t, rep.Written, 1)
	f, ok := failureOf[*types.NotFoundError](rep)
	require.True(t, ok)
	assert.Equal(t, "zzzzzz", f.Participant)
	assert.Contains(t, out.String(), "Error: ")
}

func TestRun_FilterWithoutMatchesReportsNoData(t *testing.T) {
	continuous := header + "1,T1,exploration,,0,0,0,123456\n"
	root, sub := fixture(t, "123456", continuous, "trial,assigned_delay,exploration_time\nT1,2,1.2\n")
	r, _ := runner(t, root)

	rep := r.Run(context.Background(), config.BySubfolder(sub, "999999"))
	assert.Empty(t, rep.Written)
	_, ok := failureOf[*types.NoDataError](rep)
	assert.True(t, ok)
}

func TestRun_ParseErrorSkipsParticipant(t *testing.T) {
	root, _ := fixture(t, "123456", "trial_info,x\nT1,0\n", "trial,assigned_delay,exploration_time\nT1,2,1.2\n")
	r, _ := runner(t, root)

	rep := r.Run(context.Background(), config.ByParticipant("123456"))
	assert.Empty(t, rep.Written)
	_, ok := failureOf[*types.ParseError](rep)
	assert.True(t, ok)
}

func TestRun_CancelledContextWritesNothing(t *testing.T) {
	continuous := header + "1,T1,exploration,,0,0,0,123456\n2,T1,exploration,,1,1,1,123456\n"
	root, _ := fixture(t, "123456", continuous, "trial,assigned_delay,exploration_time\nT1,2,1.2\n")
	r, _ := runner(t, root)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rep := r.Run(ctx, config.ByParticipant("123456"))
	assert.Empty(t, rep.Written)
}

func TestSummarize(t *testing.T) {
	continuous := header +
		"1,T1,exploration,started moving,0,0,0.5,123456\n" +
		"2,T1,exploration,target_placed,3,4,1.5,123456\n" +
		"3,T1,annotation,target_annotated,3,0,2.5,123456\n" +
		"4,T2,exploration,,0,0,0,123456\n"
	root, sub := fixture(t, "123456", continuous, "trial,assigned_delay,exploration_time\nT1,2,\n")
	r, _ := runner(t, root)

	sums, rep := r.Summarize(context.Background(), config.ByParticipant("123456"))
	require.Empty(t, rep.Failures)
	require.Len(t, sums, 1)
	ps := sums[0]
	assert.Equal(t, "123456", ps.Participant)
	assert.Equal(t, sub, ps.Subfolder)
	require.Len(t, ps.Trials, 2)

	t1 := ps.Trials[0]
	assert.True(t, t1.HasDiscrete)
	assert.Equal(t, "2", t1.AssignedDelay)
	assert.Nil(t, t1.ExplorationTime)
	assert.Equal(t, 0.5, t1.TimeToMovementStart)
	assert.InDelta(t, 5.0, t1.PathLength, 1e-9)
	require.NotNil(t, t1.PlacementError)
	assert.InDelta(t, 4.0, *t1.PlacementError, 1e-9)

	assert.False(t, ps.Trials[1].HasDiscrete)
	assert.NoDirExists(t, r.Config.OutputDir)
}
