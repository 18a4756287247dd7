// Package risk converts raw per-test outcome records into a categorized
// failure-rate breakdown, budget-violation list, and scalar risk score.
package risk

import (
	"fmt"

	"github.com/gauntlet-ai/gauntlet/internal/models"
	"github.com/gauntlet-ai/gauntlet/internal/policy"
)

// Analyzer computes risk analyses from outcome records. It is stateless and
// safe for concurrent use.
type Analyzer struct {
	policy policy.Policy
}

// NewAnalyzer creates an analyzer backed by the given policy tables.
func NewAnalyzer(p policy.Policy) *Analyzer {
	return &Analyzer{policy: p}
}

type categoryTally struct {
	total  int
	failed int
}

// CalculateRisk holds one model's outcome records against a failure budget.
//
// Outcomes are grouped by failure category; per category the observed failure
// rate is compared against the budget ceiling, and every category whose rate
// strictly exceeds its ceiling contributes (rate - ceiling) * impact
// multiplier * cost-per-failure to the risk score. Categories exactly at
// budget are
// compliant. Outcomes with an unrecognized identifier prefix are excluded
// from scoring entirely.
//
// Breakdown and violation ordering follow the order categories first appear
// in the outcome slice, so results are reproducible for a fixed input.
func (a *Analyzer) CalculateRisk(outcomes []models.OutcomeRecord, budget models.FailureBudget) (models.RiskAnalysis, error) {
	if len(outcomes) == 0 {
		return models.RiskAnalysis{}, fmt.Errorf("risk: no outcomes to analyze for use case %q", budget.UseCase)
	}

	// Group by category, preserving first-appearance order.
	var order []models.FailureCategory
	tallies := make(map[models.FailureCategory]*categoryTally)
	for _, o := range outcomes {
		cat := a.policy.Classify(o.TestID)
		if cat == models.CategoryUnknown {
			continue
		}
		t, ok := tallies[cat]
		if !ok {
			t = &categoryTally{}
			tallies[cat] = t
			order = append(order, cat)
		}
		t.total++
		if !o.Passed {
			t.failed++
		}
	}

	multiplier := a.policy.Multiplier(budget.BusinessImpact)

	analysis := models.RiskAnalysis{}
	for _, cat := range order {
		t := tallies[cat]
		actual := float64(t.failed) / float64(t.total)
		ceiling := budget.Ceiling(cat)

		analysis.Breakdown = append(analysis.Breakdown, models.CategoryDelta{
			Category: cat,
			Actual:   actual,
			Budget:   ceiling,
			Delta:    actual - ceiling,
		})

		// Strict inequality: exactly at budget is compliant.
		if actual > ceiling {
			analysis.Violations = append(analysis.Violations,
				fmt.Sprintf("%s: %.2f%% exceeds %.2f%% budget", cat, actual*100, ceiling*100))
			analysis.RiskScore += (actual - ceiling) * multiplier * budget.CostPerFailure
		}
	}

	analysis.OverBudget = len(analysis.Violations) > 0
	return analysis, nil
}
