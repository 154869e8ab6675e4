// trajviz renders navigation-experiment trajectories, one PNG per trial.
//
// Two selection modes:
//  1. Participant mode: every --subfolder value is a 6-character participant
//     id; each participant's "<id>_<session tag>" folder is searched for under
//     the results root.
//  2. Subfolder mode: a single --subfolder path, optionally narrowed with
//     --participants to rows of those participant ids.
//
// Missing folders, unreadable logs and trials without discrete data are
// reported as "Error: ..." lines and skipped; the exit status is non-zero only
// for usage and configuration errors.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
