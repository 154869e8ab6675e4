// trajinfo prints how many trials each participant's logs hold, and how many
// of those have discrete data and would be plotted.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sunterlet/visualize-navigation-trajectories/src/config"
	"github.com/sunterlet/visualize-navigation-trajectories/src/logging"
	"github.com/sunterlet/visualize-navigation-trajectories/src/pipeline"
)

func main() {
	if err := newCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newCmd() *cobra.Command {
	var root, tag string
	cmd := &cobra.Command{
		Use:          "trajinfo <id|path>...",
		Short:        "Count trials per participant",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.SetOutput(cmd.ErrOrStderr())
			cfg := config.Default()
			cfg.ResultsRoot, cfg.SessionTag = root, tag
			mode, err := config.ModeFromArgs(args, nil)
			if err != nil {
				return err
			}
			r := &pipeline.Runner{Config: cfg, Out: cmd.ErrOrStderr()}
			sums, _ := r.Summarize(cmd.Context(), mode)
			return printCounts(cmd.OutOrStdout(), sums)
		},
	}
	cmd.Flags().StringVar(&root, "results-root", config.DefaultResultsRoot, "directory searched for participant folders")
	cmd.Flags().StringVar(&tag, "session-tag", config.DefaultSessionTag, "suffix of participant folder names")
	return cmd
}

func printCounts(w io.Writer, sums []pipeline.ParticipantSummary) error {
	total := 0
	for _, ps := range sums {
		plottable := 0
		for _, t := range ps.Trials {
			if t.HasDiscrete {
				plottable++
			}
		}
		total += len(ps.Trials)
		if _, err := fmt.Fprintf(w, "%s: %d trials (%d with discrete data) in %s\n", ps.Participant, len(ps.Trials), plottable, ps.Subfolder); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Total trials: %d\n", total)
	return err
}
