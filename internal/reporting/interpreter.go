package reporting

import (
	"fmt"

	"github.com/gauntlet-ai/gauntlet/internal/models"
)

// InterpretConfidence returns a plain-language label for a confidence score (0–100).
func InterpretConfidence(score float64) string {
	switch {
	case score >= 90:
		return "High confidence (>=90)"
	case score >= 70:
		return "Moderate confidence (70-90)"
	case score >= 50:
		return "Low confidence (50-70)"
	default:
		return "Very low confidence (<50)"
	}
}

// InterpretPassRate returns a human-readable explanation of a pass rate (0–1).
func InterpretPassRate(rate float64) string {
	pct := rate * 100
	switch {
	case pct >= 100:
		return fmt.Sprintf("All tests passed (%.0f%%)", pct)
	case pct >= 80:
		return fmt.Sprintf("Most tests passed (%.0f%%)", pct)
	case pct >= 50:
		return fmt.Sprintf("About half the tests passed (%.0f%%)", pct)
	default:
		return fmt.Sprintf("Few tests passed (%.0f%%)", pct)
	}
}

// InterpretRisk explains a risk analysis in one sentence.
func InterpretRisk(analysis models.RiskAnalysis) string {
	if !analysis.OverBudget {
		return "All failure rates are within budget."
	}
	return fmt.Sprintf(
		"Over budget in %d of %d observed categories, estimated exposure $%.2f per failure-weighted unit. Review the violations before deploying.",
		len(analysis.Violations), len(analysis.Breakdown), analysis.RiskScore)
}
