package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/sunterlet/visualize-navigation-trajectories/src/config"
	"github.com/sunterlet/visualize-navigation-trajectories/src/logging"
	"github.com/sunterlet/visualize-navigation-trajectories/src/pipeline"
)

// options holds raw flag values; only flags the user set override the config.
type options struct {
	configPath   string
	subfolders   []string
	participants []string
	resultsRoot  string
	sessionTag   string
	outputDir    string
	logLevel     string
	dpi          float64
	trialTimeout time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "trajviz [--subfolder] <id|path>...",
		Short: "Render navigation trajectories to one PNG per trial",
		Long: `trajviz reads the continuous and discrete logs of a participant's session
and writes a chart per trial: the exploration path colored by trial time, the
annotation path, the placed target and the annotated position inside the arena.

Values following the flags are treated as additional --subfolder values, so
"trajviz --subfolder 123456 654321" plots both participants.`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, mode, err := opts.resolve(cmd, args)
			if err != nil {
				return err
			}
			r := &pipeline.Runner{Config: cfg, Out: cmd.OutOrStdout()}
			rep := r.Run(cmd.Context(), mode)
			logging.Infof("wrote %d plots, %d skipped", len(rep.Written), len(rep.Failures))
			return nil
		},
	}
	opts.bind(root)
	root.AddCommand(newSummaryCmd(opts))
	return root
}

func (o *options) bind(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVar(&o.configPath, "config", "", "YAML config file")
	f.StringSliceVar(&o.subfolders, "subfolder", nil, "participant ids, or one subfolder path relative to the results root")
	f.StringSliceVar(&o.participants, "participants", nil, "participant ids to keep when --subfolder is a path")
	f.StringVar(&o.resultsRoot, "results-root", config.DefaultResultsRoot, "directory searched for participant folders")
	f.StringVar(&o.sessionTag, "session-tag", config.DefaultSessionTag, "suffix of participant folder names")
	f.StringVar(&o.outputDir, "output-dir", config.DefaultOutputDir, "directory for the PNG files")
	f.StringVar(&o.logLevel, "log-level", "info", "debug, info, warn or error")
	f.Float64Var(&o.dpi, "dpi", config.DefaultDPI, "output resolution")
	f.DurationVar(&o.trialTimeout, "trial-timeout", 0, "per-trial render limit (0 disables)")
}

// resolve layers flags over the loaded config and selects the run mode.
func (o *options) resolve(cmd *cobra.Command, args []string) (config.Config, config.Mode, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return cfg, config.Mode{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("results-root") {
		cfg.ResultsRoot = o.resultsRoot
	}
	if flags.Changed("session-tag") {
		cfg.SessionTag = o.sessionTag
	}
	if flags.Changed("output-dir") {
		cfg.OutputDir = o.outputDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("dpi") {
		cfg.DPI = o.dpi
	}
	if flags.Changed("trial-timeout") {
		cfg.TrialTimeout = o.trialTimeout
	}
	if err := cfg.Validate(); err != nil {
		return cfg, config.Mode{}, err
	}
	logging.SetLogLevel(cfg.LogLevel)

	mode, err := config.ModeFromArgs(append(append([]string{}, o.subfolders...), args...), o.participants)
	if err != nil {
		return cfg, mode, err
	}
	logging.Debugf("mode=%s root=%s out=%s", mode.Kind, cfg.ResultsRoot, cfg.OutputDir)
	return cfg, mode, nil
}
