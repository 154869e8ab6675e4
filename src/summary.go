package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sunterlet/visualize-navigation-trajectories/src/pipeline"
	"github.com/sunterlet/visualize-navigation-trajectories/src/types"
)

func newSummaryCmd(opts *options) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "summary [--subfolder] <id|path>...",
		Short: "Print per-trial metrics without rendering",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, mode, err := opts.resolve(cmd, args)
			if err != nil {
				return err
			}
			r := &pipeline.Runner{Config: cfg, Out: cmd.ErrOrStderr()}
			sums, _ := r.Summarize(cmd.Context(), mode)
			if asJSON {
				return writeSummaryJSON(cmd.OutOrStdout(), sums)
			}
			return writeSummaryTable(cmd.OutOrStdout(), sums)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON instead of a table")
	return cmd
}

func writeSummaryJSON(w io.Writer, sums []pipeline.ParticipantSummary) error {
	if sums == nil {
		sums = []pipeline.ParticipantSummary{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sums)
}

func writeSummaryTable(w io.Writer, sums []pipeline.ParticipantSummary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PARTICIPANT\tTRIAL\tROWS\tDURATION\tMOVE_START\tPATH_M\tDELAY\tEXPLORATION\tTARGET\tANNOTATION\tERROR_M")
	for _, ps := range sums {
		for _, t := range ps.Trials {
			delay, expl := "-", "-"
			if t.HasDiscrete {
				delay = t.AssignedDelay
				if t.ExplorationTime != nil {
					expl = fmt.Sprintf("%.2f", *t.ExplorationTime)
				}
			}
			dur := "-"
			if t.HasTime {
				dur = fmt.Sprintf("%.2f", t.TimeMax-t.TimeMin)
			}
			errM := "-"
			if t.PlacementError != nil {
				errM = fmt.Sprintf("%.3f", *t.PlacementError)
			}
			fmt.Fprintf(tw, "%s\t%s\t%d/%d\t%s\t%.2f\t%.3f\t%s\t%s\t%s\t%s\t%s\n",
				ps.Participant, t.TrialID, t.ExplorationRows, t.AnnotationRows, dur,
				t.TimeToMovementStart, t.PathLength, delay, expl,
				point(t.Target), point(t.Annotation), errM)
		}
	}
	return tw.Flush()
}

func point(p *types.Point) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("(%.2f,%.2f)", p.X, p.Y)
}
