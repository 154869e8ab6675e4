package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrajinfo_CountsTrials(t *testing.T) {
	root := t.TempDir()
	data := filepath.Join(root, "123456_vw1ezaxd", "data")
	require.NoError(t, os.MkdirAll(data, 0o755))
	continuous := "trial_info,phase,event,x,y,trial_time,participant_id\n" +
		"T1,exploration,,0,0,0,123456\n" +
		"T2,exploration,,0,0,0,123456\n" +
		"T3,annotation,,0,0,0,123456\n"
	require.NoError(t, os.WriteFile(filepath.Join(data, "continuous_log.csv"), []byte(continuous), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(data, "discrete_log.csv"), []byte("trial,assigned_delay,exploration_time\nT1,2,1\nT3,0,1\n"), 0o644))

	cmd := newCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"--results-root", root, "123456", "abcdef"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "123456: 3 trials (2 with discrete data) in 123456_vw1ezaxd")
	assert.Contains(t, out.String(), "Total trials: 3")
	assert.Contains(t, errOut.String(), "Error: subfolder for participant abcdef not found")
}

func TestTrajinfo_RequiresArgs(t *testing.T) {
	cmd := newCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(nil)
	assert.Error(t, cmd.Execute())
}
