package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gauntlet",
		Short: "Gauntlet - failure-budget risk scoring for language models",
		Long: `Gauntlet evaluates model test outcomes against per-use-case failure
budgets, quantifies the business risk of observed failure rates, and ranks
candidate models.

It consumes outcome files produced by a test harness, holds them against a
budgets.yaml policy file, and reports risk breakdowns, recommendations, and
deployment plans.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newAnalyzeCommand())
	cmd.AddCommand(newSelectCommand())
	cmd.AddCommand(newPlanCommand())
	cmd.AddCommand(newInitCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
