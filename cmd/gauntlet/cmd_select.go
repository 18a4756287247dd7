package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gauntlet-ai/gauntlet/internal/budgets"
	"github.com/gauntlet-ai/gauntlet/internal/models"
	"github.com/gauntlet-ai/gauntlet/internal/policy"
	"github.com/gauntlet-ai/gauntlet/internal/recommend"
	"github.com/gauntlet-ai/gauntlet/internal/reporting"
)

var (
	selectBudgetsPath  string
	selectUseCase      string
	selectOutputFormat string
	selectOutputPath   string
)

func newSelectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select <results1> <results2> [results3 ...]",
		Short: "Rank candidate models for one use case and recommend the best",
		Long: `Select evaluates every candidate model's outcomes against a use case's
failure budget, filters out disqualified candidates, ranks the remainder, and
recommends the best fit with cost projections and tradeoff summaries.

When no candidate is viable the recommendation is the NONE sentinel with
remediation advice; that is a result, not an error.`,
		Args: cobra.MinimumNArgs(1),
		RunE: selectCommandE,
	}

	cmd.Flags().StringVarP(&selectBudgetsPath, "budgets", "b", "budgets.yaml", "Path to the failure-budget policy file")
	cmd.Flags().StringVarP(&selectUseCase, "use-case", "u", "", "Use case to select for (required)")
	cmd.Flags().StringVarP(&selectOutputFormat, "format", "f", "text", "Output format: text, json, or csv")
	cmd.Flags().StringVarP(&selectOutputPath, "out", "o", "", "Write the report to a file instead of stdout")
	_ = cmd.MarkFlagRequired("use-case")

	return cmd
}

func selectCommandE(_ *cobra.Command, args []string) error {
	if selectOutputFormat != "text" && selectOutputFormat != "json" && selectOutputFormat != "csv" {
		return fmt.Errorf("unsupported format %q: must be text, json, or csv", selectOutputFormat)
	}

	all, err := budgets.Load(selectBudgetsPath)
	if err != nil {
		return err
	}
	budget, err := budgets.ByUseCase(all, selectUseCase)
	if err != nil {
		return err
	}

	loaded, err := loadModelResults(args)
	if err != nil {
		return err
	}

	engine := recommend.NewEngine(policy.Default())
	rec, err := engine.SelectBestModel(budget.UseCase, budget, loaded)
	if err != nil {
		return err
	}

	out, err := openOutput(selectOutputPath)
	if err != nil {
		return err
	}
	defer out.Close() //nolint:errcheck

	switch selectOutputFormat {
	case "json":
		return reporting.WriteJSON(out, rec)
	case "csv":
		return reporting.WriteRecommendationsCSV(out, []models.Recommendation{rec})
	default:
		_, err = fmt.Fprint(out, formatRecommendationReport(rec))
		return err
	}
}
