package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gauntlet-ai/gauntlet/internal/budgets"
	"github.com/gauntlet-ai/gauntlet/internal/policy"
	"github.com/gauntlet-ai/gauntlet/internal/recommend"
	"github.com/gauntlet-ai/gauntlet/internal/reporting"
)

var (
	planBudgetsPath  string
	planOutputFormat string
	planOutputPath   string
)

func newPlanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan <results1> [results2 ...]",
		Short: "Build a deployment plan across every configured use case",
		Long: `Plan runs candidate selection once per configured use case and groups the
winners into a model-to-use-cases assignment, reporting whether a single model
covers every use case or a multi-model deployment is needed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: planCommandE,
	}

	cmd.Flags().StringVarP(&planBudgetsPath, "budgets", "b", "budgets.yaml", "Path to the failure-budget policy file")
	cmd.Flags().StringVarP(&planOutputFormat, "format", "f", "text", "Output format: text, json, or csv")
	cmd.Flags().StringVarP(&planOutputPath, "out", "o", "", "Write the report to a file instead of stdout")

	return cmd
}

func planCommandE(_ *cobra.Command, args []string) error {
	if planOutputFormat != "text" && planOutputFormat != "json" && planOutputFormat != "csv" {
		return fmt.Errorf("unsupported format %q: must be text, json, or csv", planOutputFormat)
	}

	all, err := budgets.Load(planBudgetsPath)
	if err != nil {
		return err
	}

	loaded, err := loadModelResults(args)
	if err != nil {
		return err
	}

	engine := recommend.NewEngine(policy.Default())
	plan, err := engine.BuildPlan(all, loaded)
	if err != nil {
		return err
	}

	out, err := openOutput(planOutputPath)
	if err != nil {
		return err
	}
	defer out.Close() //nolint:errcheck

	switch planOutputFormat {
	case "json":
		return reporting.WriteJSON(out, plan)
	case "csv":
		return reporting.WriteRecommendationsCSV(out, plan.Recommendations)
	default:
		_, err = fmt.Fprint(out, formatPlanReport(plan))
		return err
	}
}
