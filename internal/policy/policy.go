// Package policy holds the static decision tables shared by the risk analyzer
// and the candidate selector: the test-identifier category table, the
// business-impact multipliers, and the fixed thresholds used when ranking and
// explaining tradeoffs. A Policy is built once at startup and passed by value;
// nothing mutates it afterwards.
package policy

import (
	"strings"

	"github.com/gauntlet-ai/gauntlet/internal/models"
)

// Fixed projection and scoring constants. These are the single source of
// truth: Default() references them and no other code should duplicate them.
const (
	// Token volumes used for cost projection.
	TokensMonthly10M  = 10_000_000
	TokensMonthly100M = 100_000_000
	TokensPerRequest  = 1000

	// Confidence scoring.
	ConfidencePerViolationPenalty = 10.0
	ConfidencePassRateFloor       = 0.95
	ConfidenceCriticalPenalty     = 30.0
	ConfidenceRegulatoryBonus     = 10.0
)

// Policy is the immutable configuration injected into both the analyzer and
// the selector.
type Policy struct {
	// RiskTolerance is the band within which two risk scores are considered
	// tied during ranking, to keep floating-point noise from reordering
	// near-equal candidates.
	RiskTolerance float64

	// Tradeoff significance thresholds. A pairwise delta below its threshold
	// is not worth mentioning in the one-line summary.
	CostSignificance      float64 // dollars per 10M tokens
	LatencySignificanceMs float64
	RiskSignificance      float64

	// LatencyConThresholdMs is the smallest positive latency delta listed as
	// a con. Small regressions are not penalized.
	LatencyConThresholdMs float64

	prefixes    map[string]models.FailureCategory
	multipliers map[models.BusinessImpact]float64
}

// Default returns the standard policy tables.
func Default() Policy {
	return Policy{
		RiskTolerance:         0.01,
		CostSignificance:      1.0,
		LatencySignificanceMs: 50,
		RiskSignificance:      0.1,
		LatencyConThresholdMs: 10,
		prefixes: map[string]models.FailureCategory{
			"hallucination": models.CategoryHallucination,
			"injection":     models.CategoryInjection,
			"refusal":       models.CategoryRefusal,
			"context":       models.CategoryContext,
			"consistency":   models.CategoryConsistency,
		},
		multipliers: map[models.BusinessImpact]float64{
			models.ImpactCritical: 10,
			models.ImpactHigh:     5,
			models.ImpactMedium:   2,
			models.ImpactLow:      1,
		},
	}
}

// Classify maps a test identifier to its failure category via the leading
// token of the identifier (the text before the first '-', '_', '.' or ':').
// Identifiers with an unrecognized prefix classify as CategoryUnknown.
func (p Policy) Classify(testID string) models.FailureCategory {
	token := leadingToken(testID)
	if cat, ok := p.prefixes[strings.ToLower(token)]; ok {
		return cat
	}
	return models.CategoryUnknown
}

// Multiplier returns the risk-weighting multiplier for a business-impact
// tier. Unknown tiers weight like low impact.
func (p Policy) Multiplier(impact models.BusinessImpact) float64 {
	if m, ok := p.multipliers[impact]; ok {
		return m
	}
	return 1
}

func leadingToken(id string) string {
	if i := strings.IndexAny(id, "-_.:"); i >= 0 {
		return id[:i]
	}
	return id
}
