package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "nntune",
		Short: "Tune NNUE output layers and engine knobs by match play",
		Long: `nntune searches the second and third layers of an NNUE network and three
engine tuning values. Every candidate is patched into the network file and
played against a reference engine with cutechess-cli.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogger(verbose)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log match output")

	rootCmd.AddCommand(
		newRunCommand(),
		newPatchCommand(),
		newDumpCommand(),
		newScoreCommand(),
		newHistoryCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("nntune failed")
		os.Exit(1)
	}
}

func setupLogger(verbose bool) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.DateTime})
}
