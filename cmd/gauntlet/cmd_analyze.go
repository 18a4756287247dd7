package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gauntlet-ai/gauntlet/internal/budgets"
	"github.com/gauntlet-ai/gauntlet/internal/policy"
	"github.com/gauntlet-ai/gauntlet/internal/reporting"
	"github.com/gauntlet-ai/gauntlet/internal/risk"
)

var (
	analyzeBudgetsPath  string
	analyzeUseCase      string
	analyzeModelKey     string
	analyzeOutputFormat string
	analyzeOutputPath   string
)

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <results-file>",
		Short: "Score one model's outcomes against a use case's failure budget",
		Long: `Analyze holds a single model's test outcomes against the failure budget
of one use case and reports the per-category breakdown, budget violations,
and risk score.

Exits with code 1 when the model is over budget, so the command can gate a
deployment pipeline.`,
		Args: cobra.ExactArgs(1),
		RunE: analyzeCommandE,
	}

	cmd.Flags().StringVarP(&analyzeBudgetsPath, "budgets", "b", "budgets.yaml", "Path to the failure-budget policy file")
	cmd.Flags().StringVarP(&analyzeUseCase, "use-case", "u", "", "Use case to analyze against (required)")
	cmd.Flags().StringVarP(&analyzeModelKey, "model", "m", "", "Model key for CSV input (provider/model)")
	cmd.Flags().StringVarP(&analyzeOutputFormat, "format", "f", "text", "Output format: text, json, or csv")
	cmd.Flags().StringVarP(&analyzeOutputPath, "out", "o", "", "Write the report to a file instead of stdout")
	_ = cmd.MarkFlagRequired("use-case")

	return cmd
}

func analyzeCommandE(_ *cobra.Command, args []string) error {
	if analyzeOutputFormat != "text" && analyzeOutputFormat != "json" && analyzeOutputFormat != "csv" {
		return fmt.Errorf("unsupported format %q: must be text, json, or csv", analyzeOutputFormat)
	}

	all, err := budgets.Load(analyzeBudgetsPath)
	if err != nil {
		return err
	}
	budget, err := budgets.ByUseCase(all, analyzeUseCase)
	if err != nil {
		return err
	}

	run, err := loadRun(args[0], analyzeModelKey)
	if err != nil {
		return err
	}

	analyzer := risk.NewAnalyzer(policy.Default())
	analysis, err := analyzer.CalculateRisk(run.Outcomes, budget)
	if err != nil {
		return err
	}

	out, err := openOutput(analyzeOutputPath)
	if err != nil {
		return err
	}
	defer out.Close() //nolint:errcheck

	switch analyzeOutputFormat {
	case "json":
		err = reporting.WriteJSON(out, analysis)
	case "csv":
		err = reporting.WriteBreakdownCSV(out, run.Model, analysis)
	default:
		_, err = fmt.Fprint(out, formatRiskReport(run.Model, budget, analysis))
	}
	if err != nil {
		return err
	}

	if analysis.OverBudget {
		return &OverBudgetError{
			Message: fmt.Sprintf("%s is over budget for %s (%d violations, risk score %.2f)",
				run.Model, budget.UseCase, len(analysis.Violations), analysis.RiskScore),
		}
	}
	return nil
}
