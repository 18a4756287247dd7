// Package recommend ranks model candidates against a use case's failure
// budget and produces a recommendation with tradeoff explanations.
package recommend

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/gauntlet-ai/gauntlet/internal/metrics"
	"github.com/gauntlet-ai/gauntlet/internal/models"
	"github.com/gauntlet-ai/gauntlet/internal/policy"
	"github.com/gauntlet-ai/gauntlet/internal/risk"
)

// ModelResults pairs a "provider/model" key with the outcome records gathered
// for that model. Results are an ordered slice, not a map: input order breaks
// any ties the comparator leaves, so ordering must be reproducible.
type ModelResults struct {
	Key      string
	Outcomes []models.OutcomeRecord
}

// Engine selects the best model for a use case. It is stateless and safe for
// concurrent use.
type Engine struct {
	policy   policy.Policy
	analyzer *risk.Analyzer
}

// NewEngine creates a selection engine backed by the given policy tables.
func NewEngine(p policy.Policy) *Engine {
	return &Engine{
		policy:   p,
		analyzer: risk.NewAnalyzer(p),
	}
}

const remediationAdvice = "Consider: (1) relaxing failure-rate ceilings for this use case, " +
	"(2) requiring human review of all outputs, " +
	"(3) a hybrid multi-model deployment with per-category routing, or " +
	"(4) fine-tuning a model for this workload."

// SelectBestModel evaluates every candidate against the budget, filters out
// disqualified models, ranks the remainder, and explains the result.
//
// When no candidate survives the eligibility filter, the returned
// recommendation carries the RecommendationNone sentinel with remediation
// advice, zero confidence, and a zeroed cost analysis; that case is a value,
// not an error. An empty outcome set for any model is an error.
func (e *Engine) SelectBestModel(useCase string, budget models.FailureBudget, results []ModelResults) (models.Recommendation, error) {
	candidates, err := e.buildCandidates(budget, results)
	if err != nil {
		return models.Recommendation{}, err
	}

	viable := e.filterViable(candidates, budget)
	if len(viable) == 0 {
		return models.Recommendation{
			UseCase:          useCase,
			RecommendedModel: models.RecommendationNone,
			Reasoning:        fmt.Sprintf("No model meets the failure budget for %s. %s", useCase, remediationAdvice),
		}, nil
	}

	e.rank(viable, budget)
	best := viable[0]

	rec := models.Recommendation{
		UseCase:          useCase,
		Provider:         best.Provider,
		RecommendedModel: best.Model,
		Reasoning:        e.buildReasoning(useCase, best, budget),
		CostAnalysis:     costAnalysis(best),
		ConfidenceScore:  e.confidence(best, budget),
	}
	for i := 1; i < len(viable) && i <= 3; i++ {
		rec.Alternatives = append(rec.Alternatives, e.buildAlternative(viable[i], best))
	}
	return rec, nil
}

func (e *Engine) buildCandidates(budget models.FailureBudget, results []ModelResults) ([]models.Candidate, error) {
	candidates := make([]models.Candidate, 0, len(results))
	for _, r := range results {
		analysis, err := e.analyzer.CalculateRisk(r.Outcomes, budget)
		if err != nil {
			return nil, fmt.Errorf("recommend: model %q: %w", r.Key, err)
		}

		latencies := make([]float64, len(r.Outcomes))
		costs := make([]float64, len(r.Outcomes))
		passed := 0
		for i, o := range r.Outcomes {
			latencies[i] = float64(o.LatencyMs)
			costs[i] = o.Cost
			if o.Passed {
				passed++
			}
		}

		provider, model := splitModelKey(r.Key)
		candidates = append(candidates, models.Candidate{
			Provider:      provider,
			Model:         model,
			Risk:          analysis,
			MeanLatencyMs: metrics.Mean(latencies),
			MeanCost:      metrics.Mean(costs),
			PassRate:      metrics.Rate(passed, len(r.Outcomes)),
		})
	}
	return candidates, nil
}

// splitModelKey splits "provider/model" on the first separator. A bare model
// name has no provider.
func splitModelKey(key string) (provider, model string) {
	if before, after, found := strings.Cut(key, "/"); found {
		return before, after
	}
	return "", key
}

// filterViable applies the eligibility policy ahead of ranking. Under
// regulatory risk only spotless candidates survive; otherwise injection
// violations always disqualify, and hallucination violations disqualify when
// the use case is business-critical.
func (e *Engine) filterViable(candidates []models.Candidate, budget models.FailureBudget) []models.Candidate {
	var viable []models.Candidate
	for _, c := range candidates {
		if e.isViable(c, budget) {
			viable = append(viable, c)
		}
	}
	return viable
}

func (e *Engine) isViable(c models.Candidate, budget models.FailureBudget) bool {
	if budget.RegulatoryRisk {
		return len(c.Risk.Violations) == 0
	}
	for _, v := range c.Risk.Violations {
		lower := strings.ToLower(v)
		if strings.Contains(lower, "injection") {
			return false
		}
		if budget.BusinessImpact == models.ImpactCritical && strings.Contains(lower, "hallucination") {
			return false
		}
	}
	return true
}

// rank orders viable candidates by the lexicographic chain: fewer violations
// (critical tier only), then lower risk score outside the tolerance band,
// then higher pass rate. The stable sort preserves input order for full ties.
func (e *Engine) rank(viable []models.Candidate, budget models.FailureBudget) {
	sort.SliceStable(viable, func(i, j int) bool {
		a, b := viable[i], viable[j]

		if budget.BusinessImpact == models.ImpactCritical &&
			len(a.Risk.Violations) != len(b.Risk.Violations) {
			return len(a.Risk.Violations) < len(b.Risk.Violations)
		}

		// Risk scores within the tolerance band are tied; this keeps
		// floating-point noise from reordering near-equal candidates.
		if d := a.Risk.RiskScore - b.Risk.RiskScore; math.Abs(d) > e.policy.RiskTolerance {
			return d < 0
		}

		return a.PassRate > b.PassRate
	})
}

func (e *Engine) buildReasoning(useCase string, best models.Candidate, budget models.FailureBudget) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Best fit for %s: %.1f%% pass rate, risk score %.2f, avg latency %.0fms.",
		useCase, best.PassRate*100, best.Risk.RiskScore, best.MeanLatencyMs)

	if n := len(best.Risk.Violations); n == 0 {
		b.WriteString(" Fully compliant with the failure budget.")
	} else {
		fmt.Fprintf(&b, " Carries %d minor violation(s) within tolerance.", n)
	}

	if budget.RegulatoryRisk {
		b.WriteString(" Meets the zero-violation bar required under regulatory exposure.")
	}
	return b.String()
}

func (e *Engine) confidence(best models.Candidate, budget models.FailureBudget) float64 {
	score := 100.0
	violations := len(best.Risk.Violations)

	score -= policy.ConfidencePerViolationPenalty * float64(violations)
	if best.PassRate < policy.ConfidencePassRateFloor {
		score -= (policy.ConfidencePassRateFloor - best.PassRate) * 100
	}
	if budget.BusinessImpact == models.ImpactCritical && violations > 0 {
		score -= policy.ConfidenceCriticalPenalty
	}
	if budget.RegulatoryRisk && violations == 0 {
		score += policy.ConfidenceRegulatoryBonus
	}
	return metrics.Clamp(score, 0, 100)
}

func costAnalysis(c models.Candidate) models.CostAnalysis {
	return models.CostAnalysis{
		Monthly10M:  c.MeanCost * policy.TokensMonthly10M,
		Monthly100M: c.MeanCost * policy.TokensMonthly100M,
		PerRequest:  c.MeanCost * policy.TokensPerRequest,
	}
}

// buildAlternative computes the pairwise deltas of a runner-up against the
// recommended model and frames them as pros, cons, and a one-line summary.
func (e *Engine) buildAlternative(c, best models.Candidate) models.Alternative {
	alt := models.Alternative{Provider: c.Provider, Model: c.Model}

	costDelta := (c.MeanCost - best.MeanCost) * policy.TokensMonthly10M
	latencyDelta := c.MeanLatencyMs - best.MeanLatencyMs
	riskDelta := c.Risk.RiskScore - best.Risk.RiskScore
	violationDelta := len(c.Risk.Violations) - len(best.Risk.Violations)

	switch {
	case costDelta < 0:
		alt.Pros = append(alt.Pros, fmt.Sprintf("Cheaper: saves $%.2f per 10M tokens", -costDelta))
	case costDelta > 0:
		alt.Cons = append(alt.Cons, fmt.Sprintf("More expensive: $%.2f more per 10M tokens", costDelta))
	}

	// Small latency regressions are not worth a con.
	switch {
	case latencyDelta < 0:
		alt.Pros = append(alt.Pros, fmt.Sprintf("Faster: %.0fms lower latency", -latencyDelta))
	case latencyDelta > e.policy.LatencyConThresholdMs:
		alt.Cons = append(alt.Cons, fmt.Sprintf("Slower: %.0fms higher latency", latencyDelta))
	}

	switch {
	case riskDelta < 0:
		if best.Risk.RiskScore > 0 {
			alt.Pros = append(alt.Pros, fmt.Sprintf("Lower risk: %.0f%% reduction", -riskDelta/best.Risk.RiskScore*100))
		} else {
			alt.Pros = append(alt.Pros, fmt.Sprintf("Lower risk: score %.2f below recommended", -riskDelta))
		}
	case riskDelta > 0:
		// A spotless best candidate has zero risk; a percentage over zero is
		// undefined, so report the raw delta instead.
		if best.Risk.RiskScore > 0 {
			alt.Cons = append(alt.Cons, fmt.Sprintf("Higher risk: %.0f%% increase", riskDelta/best.Risk.RiskScore*100))
		} else {
			alt.Cons = append(alt.Cons, fmt.Sprintf("Higher risk: score %.2f above recommended", riskDelta))
		}
	}

	switch {
	case violationDelta < 0:
		alt.Pros = append(alt.Pros, fmt.Sprintf("Fewer budget violations (%d vs %d)",
			len(c.Risk.Violations), len(best.Risk.Violations)))
	case violationDelta > 0:
		alt.Cons = append(alt.Cons, fmt.Sprintf("More budget violations (%d vs %d)",
			len(c.Risk.Violations), len(best.Risk.Violations)))
	}

	alt.TradeoffSummary = e.tradeoffSummary(costDelta, latencyDelta, riskDelta)
	return alt
}

func (e *Engine) tradeoffSummary(costDelta, latencyDelta, riskDelta float64) string {
	var parts []string

	switch {
	case costDelta < -e.policy.CostSignificance:
		parts = append(parts, "cheaper")
	case costDelta > e.policy.CostSignificance:
		parts = append(parts, "more expensive")
	}
	switch {
	case latencyDelta < -e.policy.LatencySignificanceMs:
		parts = append(parts, "faster")
	case latencyDelta > e.policy.LatencySignificanceMs:
		parts = append(parts, "slower")
	}
	switch {
	case riskDelta < -e.policy.RiskSignificance:
		parts = append(parts, "lower risk")
	case riskDelta > e.policy.RiskSignificance:
		parts = append(parts, "higher risk")
	}

	if len(parts) == 0 {
		return "Similar performance"
	}
	s := strings.Join(parts, ", ")
	return strings.ToUpper(s[:1]) + s[1:]
}
