package main

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/gauntlet-ai/gauntlet/internal/models"
	"github.com/gauntlet-ai/gauntlet/internal/reporting"
)

// padRight pads s with spaces to the given display width. Uses runewidth so
// model names with wide characters keep columns aligned.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// formatRiskReport renders a risk analysis as a terminal report.
func formatRiskReport(model string, budget models.FailureBudget, analysis models.RiskAnalysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "=== Risk Analysis: %s ===\n", model)
	fmt.Fprintf(&b, "Use case: %s (%s impact)\n", budget.UseCase, budget.BusinessImpact)
	fmt.Fprintf(&b, "Cost per failure: $%.2f | Regulatory risk: %s | Human review: %s\n\n",
		budget.CostPerFailure, yesNo(budget.RegulatoryRisk), yesNo(budget.HumanReview))

	catWidth := len("Category")
	for _, d := range analysis.Breakdown {
		if w := runewidth.StringWidth(string(d.Category)); w > catWidth {
			catWidth = w
		}
	}

	fmt.Fprintf(&b, "%s  %8s  %8s  %8s\n", padRight("Category", catWidth), "Actual", "Budget", "Delta")
	for _, d := range analysis.Breakdown {
		marker := ""
		if d.Delta > 0 {
			marker = "  !!"
		}
		fmt.Fprintf(&b, "%s  %7.2f%%  %7.2f%%  %+7.2f%%%s\n",
			padRight(string(d.Category), catWidth), d.Actual*100, d.Budget*100, d.Delta*100, marker)
	}
	b.WriteString("\n")

	if len(analysis.Violations) > 0 {
		b.WriteString("Violations:\n")
		for _, v := range analysis.Violations {
			fmt.Fprintf(&b, "  - %s\n", v)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Risk score: $%.2f\n", analysis.RiskScore)
	b.WriteString(reporting.InterpretRisk(analysis) + "\n")
	return b.String()
}

// formatRecommendationReport renders a recommendation as a terminal report.
func formatRecommendationReport(rec models.Recommendation) string {
	var b strings.Builder

	fmt.Fprintf(&b, "=== Recommendation: %s ===\n", rec.UseCase)

	if rec.None() {
		b.WriteString("Recommended model: NONE\n\n")
		b.WriteString(rec.Reasoning + "\n")
		return b.String()
	}

	fmt.Fprintf(&b, "Recommended model: %s\n", modelLabel(rec.Provider, rec.RecommendedModel))
	fmt.Fprintf(&b, "Confidence: %.1f (%s)\n\n", rec.ConfidenceScore, reporting.InterpretConfidence(rec.ConfidenceScore))
	b.WriteString(rec.Reasoning + "\n\n")

	b.WriteString("Cost projection:\n")
	fmt.Fprintf(&b, "  Per request (1000 tokens): $%.4f\n", rec.CostAnalysis.PerRequest)
	fmt.Fprintf(&b, "  Monthly at 10M tokens:     $%.2f\n", rec.CostAnalysis.Monthly10M)
	fmt.Fprintf(&b, "  Monthly at 100M tokens:    $%.2f\n", rec.CostAnalysis.Monthly100M)

	if len(rec.Alternatives) > 0 {
		b.WriteString("\nAlternatives:\n")
		for i, alt := range rec.Alternatives {
			fmt.Fprintf(&b, "  %d. %s: %s\n", i+1, modelLabel(alt.Provider, alt.Model), alt.TradeoffSummary)
			for _, p := range alt.Pros {
				fmt.Fprintf(&b, "     + %s\n", p)
			}
			for _, c := range alt.Cons {
				fmt.Fprintf(&b, "     - %s\n", c)
			}
		}
	}
	return b.String()
}

// formatPlanReport renders a deployment plan as a terminal report.
func formatPlanReport(plan models.DeploymentPlan) string {
	var b strings.Builder

	b.WriteString("=== Deployment Plan ===\n")
	if plan.SingleModel {
		b.WriteString("Strategy: single model across all use cases\n\n")
	} else {
		fmt.Fprintf(&b, "Strategy: multi-model (%d distinct models)\n\n", plan.DistinctModels)
	}

	ucWidth := len("Use case")
	for _, r := range plan.Recommendations {
		if w := runewidth.StringWidth(r.UseCase); w > ucWidth {
			ucWidth = w
		}
	}

	fmt.Fprintf(&b, "%s  %-30s  %s\n", padRight("Use case", ucWidth), "Model", "Confidence")
	for _, r := range plan.Recommendations {
		fmt.Fprintf(&b, "%s  %-30s  %10.1f\n",
			padRight(r.UseCase, ucWidth), modelLabel(r.Provider, r.RecommendedModel), r.ConfidenceScore)
	}

	b.WriteString("\nAssignments:\n")
	for _, a := range plan.Assignments {
		fmt.Fprintf(&b, "  %s → %s\n", a.Model, strings.Join(a.UseCases, ", "))
	}
	return b.String()
}

func modelLabel(provider, model string) string {
	if provider == "" {
		return model
	}
	return provider + "/" + model
}
