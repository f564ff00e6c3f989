package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ChizhovVadim/nntune/internal/codec"
	"github.com/ChizhovVadim/nntune/internal/config"
	"github.com/ChizhovVadim/nntune/internal/match"
	"github.com/ChizhovVadim/nntune/internal/nnue"
)

func newPatchCommand() *cobra.Command {
	var (
		resourcePath string
		fromPath     string
	)
	var cmd = &cobra.Command{
		Use:   "patch",
		Short: "Write the seed candidate, or the layers of another network, into the resource",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if resourcePath != "" {
				cfg.Resource = resourcePath
				cfg.ExpandPaths()
			}
			var resource = nnue.NewResource(cfg.Resource, cfg.Offset)
			if err := resource.Check(); err != nil {
				return err
			}
			var cand = codec.SeedCandidate()
			if fromPath != "" {
				var src = nnue.NewResource(fromPath, cfg.Offset)
				if err := src.Check(); err != nil {
					return err
				}
				cand, err = src.ReadRegion()
				if err != nil {
					return err
				}
			}
			if err := resource.Patch(&cand); err != nil {
				return err
			}
			log.Info().Str("resource", resource.Path).Str("from", fromPath).Msg("patched")
			return nil
		},
	}
	cmd.Flags().StringVarP(&resourcePath, "resource", "r", "", "Network file to patch (overrides config)")
	cmd.Flags().StringVar(&fromPath, "from", "", "Copy the tuned layers from this network instead of the seed")
	return cmd
}

func newDumpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dump [network]",
		Short: "Print the tuned layers of a network file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			var path = cfg.Resource
			if len(args) == 1 {
				path = args[0]
			}
			var resource = nnue.NewResource(path, cfg.Offset)
			if err := resource.Check(); err != nil {
				return err
			}
			c, err := resource.ReadRegion()
			if err != nil {
				return err
			}
			fmt.Printf("bias2 = %#v\n", c.Bias2)
			fmt.Printf("weights2 = %#v\n", c.Weights2)
			fmt.Printf("bias3 = %v\n", c.Bias3)
			fmt.Printf("weights3 = %#v\n", c.Weights3)
			return nil
		},
	}
}

func newScoreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "score [match-output]",
		Short: "Parse cutechess-cli output and print the fitness",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			var r io.Reader = os.Stdin
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			data, err := io.ReadAll(r)
			if err != nil {
				return errors.Wrap(err, "read match output")
			}
			outcome, err := match.ParseOutcome(data)
			if err != nil {
				return err
			}
			var stat = match.ComputeStat(outcome.Wins, outcome.Losses, outcome.Draws)
			fmt.Printf("Score: %v - %v - %v  [%.3f] %v\n",
				outcome.Wins, outcome.Losses, outcome.Draws, stat.WinningFraction, outcome.Games())
			fmt.Printf("Elo difference: %.1f, LOS: %.1f %%\n",
				stat.EloDifference, stat.LOS*100)
			fmt.Printf("Fitness: %.4f\n", outcome.Fitness(cfg.Match.Games))
			return nil
		},
	}
}
