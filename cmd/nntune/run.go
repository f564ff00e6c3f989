package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/ChizhovVadim/nntune/internal/codec"
	"github.com/ChizhovVadim/nntune/internal/config"
	"github.com/ChizhovVadim/nntune/internal/match"
	"github.com/ChizhovVadim/nntune/internal/metrics"
	"github.com/ChizhovVadim/nntune/internal/nnue"
	"github.com/ChizhovVadim/nntune/internal/optimizer"
	"github.com/ChizhovVadim/nntune/internal/space"
	"github.com/ChizhovVadim/nntune/internal/storage"
	"github.com/ChizhovVadim/nntune/internal/tuning"
)

type runFlags struct {
	budget      int
	resource    string
	history     string
	metricsAddr string
	progress    bool
}

// apply overrides cfg with the flags that were set and validates the result.
func (f *runFlags) apply(cfg *config.Config) error {
	if f.budget > 0 {
		cfg.Budget = f.budget
	}
	if f.resource != "" {
		cfg.Resource = f.resource
	}
	if f.history != "" {
		cfg.History.Backend = "sqlite"
		cfg.History.Path = f.history
	}
	if f.metricsAddr != "" {
		cfg.MetricsAddr = f.metricsAddr
	}
	cfg.ExpandPaths()
	return cfg.Validate()
}

func newRunCommand() *cobra.Command {
	var flags runFlags
	var cmd = &cobra.Command{
		Use:   "run",
		Short: "Run the tuning loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if err := flags.apply(&cfg); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runTuning(ctx, cfg, flags.progress)
		},
	}
	cmd.Flags().IntVarP(&flags.budget, "budget", "b", 0, "Number of matches (overrides config)")
	cmd.Flags().StringVarP(&flags.resource, "resource", "r", "", "Network file patched for every match (overrides config)")
	cmd.Flags().StringVar(&flags.history, "history", "", "SQLite file for evaluation history (overrides config)")
	cmd.Flags().StringVar(&flags.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	cmd.Flags().BoolVar(&flags.progress, "progress", false, "Show a progress bar")
	return cmd
}

func runTuning(ctx context.Context, cfg config.Config, progress bool) error {
	log.Info().Interface("config", cfg).Msg("loaded config")

	var s = space.Default()
	cdc, err := codec.New(s)
	if err != nil {
		return err
	}

	var resource = nnue.NewResource(cfg.Resource, cfg.Offset)
	if err := resource.Check(); err != nil {
		return err
	}

	var lower, upper = s.Bounds()
	opt, err := optimizer.NewOnePlusOne(lower, upper, cfg.OptimizerOptions())
	if err != nil {
		return err
	}

	var runner = &match.ProcessRunner{Command: cfg.Match.Command}
	evaluator, err := match.NewEvaluator(cfg.Match, resource, runner)
	if err != nil {
		return err
	}

	history, err := storage.NewStore(cfg.History.Backend, cfg.History.Path)
	if err != nil {
		return err
	}
	defer storage.CloseIfSupported(history)
	if err := history.Init(ctx); err != nil {
		return err
	}

	var m = metrics.New()
	if cfg.MetricsAddr != "" {
		go func() {
			if err := m.Serve(ctx, cfg.MetricsAddr); err != nil {
				log.Error().Err(err).Msg("metrics server")
			}
		}()
	}

	var runID = time.Now().Format("20060102-150405")
	var loop = &tuning.Loop{
		Optimizer: opt,
		Codec:     cdc,
		Evaluator: evaluator,
		Checkpointer: &tuning.Checkpointer{
			Resource: resource,
			Codec:    cdc,
			Dir:      cfg.SnapshotDir,
			Pattern:  cfg.SnapshotPattern,
			History:  history,
			Observer: m,
			RunID:    runID,
		},
		CheckpointInterval: cfg.CheckpointInterval,
		History:            history,
		Observer:           m,
		RunID:              runID,
	}
	if progress {
		var bar = progressbar.NewOptions(cfg.Budget,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("matches"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("tuning"),
		)
		loop.OnIteration = func(int, match.Result) {
			_ = bar.Add(1)
		}
		defer bar.Finish()
	}

	_, err = loop.Run(ctx)
	return err
}
