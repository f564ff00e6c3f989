package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ChizhovVadim/nntune/internal/config"
	"github.com/ChizhovVadim/nntune/internal/storage"
)

func newHistoryCommand() *cobra.Command {
	var dbPath string
	var cmd = &cobra.Command{
		Use:   "history [run-id]",
		Short: "List tuning runs, or the evaluations and checkpoints of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if dbPath == "" {
				dbPath = cfg.History.Path
			}
			var store = storage.NewSQLiteStore(dbPath)
			defer store.Close()
			var ctx = context.Background()
			if err := store.Init(ctx); err != nil {
				return err
			}
			if len(args) == 0 {
				runs, err := store.ListRuns(ctx)
				if err != nil {
					return err
				}
				for _, run := range runs {
					fmt.Println(run)
				}
				return nil
			}
			return printRun(ctx, store, args[0])
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite history file (default from config)")
	return cmd
}

func printRun(ctx context.Context, store storage.Store, runID string) error {
	evals, err := store.ListEvaluations(ctx, runID)
	if err != nil {
		return err
	}
	for _, e := range evals {
		fmt.Printf("%5d %v %v - %v - %v fitness=%.4f %v\n",
			e.Iteration, e.Tune, e.Outcome.Wins, e.Outcome.Losses, e.Outcome.Draws,
			e.Fitness, e.Duration)
	}
	checkpoints, err := store.ListCheckpoints(ctx, runID)
	if err != nil {
		return err
	}
	for _, c := range checkpoints {
		fmt.Printf("checkpoint %5d %v loss=%.4f %v\n", c.Iteration, c.Tune, c.Loss, c.Path)
	}
	return nil
}
