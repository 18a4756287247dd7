package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gauntlet-ai/gauntlet/internal/wizard"
)

var (
	initOutputPath string
	initForce      bool
)

func newInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [use-case]",
		Short: "Interactively scaffold a failure-budget file",
		Long: `Init walks through the failure-rate ceilings, business impact, and cost
assumptions for one use case and writes a starter budgets.yaml.`,
		Args: cobra.MaximumNArgs(1),
		RunE: initCommandE,
	}

	cmd.Flags().StringVarP(&initOutputPath, "out", "o", "budgets.yaml", "Where to write the budget file")
	cmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing budget file")

	return cmd
}

func initCommandE(cmd *cobra.Command, args []string) error {
	if !initForce {
		if _, err := os.Stat(initOutputPath); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", initOutputPath)
		}
	}

	initialUseCase := ""
	if len(args) > 0 {
		initialUseCase = args[0]
	}

	spec, err := wizard.RunBudgetWizard(cmd.InOrStdin(), cmd.OutOrStdout(), initialUseCase)
	if err != nil {
		return err
	}

	content, err := wizard.GenerateBudgetYAML(spec)
	if err != nil {
		return err
	}
	if err := os.WriteFile(initOutputPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", initOutputPath, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote failure budget for %q to %s\n", spec.UseCase, initOutputPath)
	return nil
}
