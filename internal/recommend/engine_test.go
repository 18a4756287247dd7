package recommend

import (
	"fmt"
	"testing"

	"github.com/gauntlet-ai/gauntlet/internal/models"
	"github.com/gauntlet-ai/gauntlet/internal/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeResults builds one model's results: per category prefix, n outcomes of
// which the first `failed` fail, all with the given latency and cost.
func makeResults(key string, latencyMs int64, cost float64, counts map[string][2]int) ModelResults {
	r := ModelResults{Key: key}
	// fixed category order so test inputs are reproducible
	for _, prefix := range []string{"hallucination", "injection", "refusal", "context", "consistency"} {
		c, ok := counts[prefix]
		if !ok {
			continue
		}
		n, failed := c[0], c[1]
		for i := 0; i < n; i++ {
			r.Outcomes = append(r.Outcomes, models.OutcomeRecord{
				TestID:    fmt.Sprintf("%s-%03d", prefix, i+1),
				Passed:    i >= failed,
				LatencyMs: latencyMs,
				Cost:      cost,
			})
		}
	}
	return r
}

func standardBudget() models.FailureBudget {
	return models.FailureBudget{
		UseCase:        "content-drafting",
		BusinessImpact: models.ImpactMedium,
		FailureCategories: map[models.FailureCategory]float64{
			models.CategoryHallucination: 0.10,
			models.CategoryInjection:     0.05,
			models.CategoryRefusal:       0.20,
			models.CategoryContext:       0.15,
			models.CategoryConsistency:   0.15,
		},
		CostPerFailure: 50,
	}
}

func TestSelectBestModel_EmptyOutcomesIsError(t *testing.T) {
	e := NewEngine(policy.Default())

	_, err := e.SelectBestModel("content-drafting", standardBudget(), []ModelResults{
		{Key: "openai/gpt-4o"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gpt-4o")
}

func TestSelectBestModel_CleanCandidateWins(t *testing.T) {
	e := NewEngine(policy.Default())

	results := []ModelResults{
		makeResults("openai/gpt-4o", 800, 0.002, map[string][2]int{
			"hallucination": {100, 20}, // 20% vs 10% ceiling: violation
		}),
		makeResults("anthropic/claude-sonnet", 900, 0.003, map[string][2]int{
			"hallucination": {100, 2},
		}),
	}

	rec, err := e.SelectBestModel("content-drafting", standardBudget(), results)
	require.NoError(t, err)
	assert.Equal(t, "claude-sonnet", rec.RecommendedModel)
	assert.Equal(t, "anthropic", rec.Provider)
	assert.False(t, rec.None())
	require.Len(t, rec.Alternatives, 1)
	assert.Equal(t, "gpt-4o", rec.Alternatives[0].Model)
}

func TestSelectBestModel_ZeroViolationConfidenceIs100(t *testing.T) {
	e := NewEngine(policy.Default())

	// pass rate 98% is above the 0.95 floor, zero violations, non-critical, non-regulatory
	results := []ModelResults{
		makeResults("openai/gpt-4o-mini", 500, 0.0005, map[string][2]int{
			"hallucination": {100, 2},
		}),
	}

	rec, err := e.SelectBestModel("content-drafting", standardBudget(), results)
	require.NoError(t, err)
	assert.Equal(t, 100.0, rec.ConfidenceScore)
}

func TestSelectBestModel_RegulatoryExclusivity(t *testing.T) {
	e := NewEngine(policy.Default())

	budget := standardBudget()
	budget.RegulatoryRisk = true

	// refusal violations are tolerated on the non-regulatory path, but the
	// regulatory filter excludes any candidate with a violation of any kind
	results := []ModelResults{
		makeResults("openai/gpt-4o", 800, 0.002, map[string][2]int{
			"refusal": {100, 30}, // 30% vs 20% ceiling
		}),
	}

	rec, err := e.SelectBestModel("content-drafting", budget, results)
	require.NoError(t, err)
	assert.True(t, rec.None())

	budget.RegulatoryRisk = false
	rec, err = e.SelectBestModel("content-drafting", budget, results)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", rec.RecommendedModel)
}

func TestSelectBestModel_InjectionAlwaysDisqualifies(t *testing.T) {
	e := NewEngine(policy.Default())

	results := []ModelResults{
		makeResults("openai/gpt-4o", 800, 0.002, map[string][2]int{
			"injection": {100, 10}, // 10% vs 5% ceiling
		}),
	}

	rec, err := e.SelectBestModel("content-drafting", standardBudget(), results)
	require.NoError(t, err)
	assert.True(t, rec.None())
}

func TestSelectBestModel_CriticalDisqualifiesHallucination(t *testing.T) {
	e := NewEngine(policy.Default())

	results := []ModelResults{
		makeResults("openai/gpt-4o", 800, 0.002, map[string][2]int{
			"hallucination": {100, 20},
		}),
	}

	budget := standardBudget()
	rec, err := e.SelectBestModel("content-drafting", budget, results)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", rec.RecommendedModel, "medium tier tolerates hallucination violations")

	budget.BusinessImpact = models.ImpactCritical
	rec, err = e.SelectBestModel("content-drafting", budget, results)
	require.NoError(t, err)
	assert.True(t, rec.None(), "critical tier must not tolerate hallucination violations")
}

func TestSelectBestModel_NoneScenario(t *testing.T) {
	e := NewEngine(policy.Default())

	results := []ModelResults{
		makeResults("openai/gpt-4o", 800, 0.002, map[string][2]int{"injection": {50, 10}}),
		makeResults("anthropic/claude-sonnet", 900, 0.003, map[string][2]int{"injection": {50, 20}}),
	}

	rec, err := e.SelectBestModel("content-drafting", standardBudget(), results)
	require.NoError(t, err)
	assert.Equal(t, models.RecommendationNone, rec.RecommendedModel)
	assert.Equal(t, 0.0, rec.ConfidenceScore)
	assert.Equal(t, models.CostAnalysis{}, rec.CostAnalysis)
	assert.Empty(t, rec.Alternatives)
	assert.Contains(t, rec.Reasoning, "human review")
	assert.Contains(t, rec.Reasoning, "fine-tuning")
}

func TestSelectBestModel_CriticalPrefersFewerViolations(t *testing.T) {
	e := NewEngine(policy.Default())

	budget := models.FailureBudget{
		UseCase:        "medical-triage",
		BusinessImpact: models.ImpactCritical,
		FailureCategories: map[models.FailureCategory]float64{
			models.CategoryHallucination: 0.01,
			models.CategoryRefusal:       0.10,
			models.CategoryConsistency:   0.10,
		},
		CostPerFailure: 1000,
	}

	// A violates refusal (tolerated category) and carries risk; B is clean
	// with a slightly worse pass rate. Fewer violations decides first.
	results := []ModelResults{
		makeResults("openai/gpt-4o", 700, 0.002, map[string][2]int{
			"hallucination": {100, 0},
			"refusal":       {100, 20},
		}),
		makeResults("anthropic/claude-sonnet", 950, 0.004, map[string][2]int{
			"hallucination": {100, 0},
			"refusal":       {100, 5},
		}),
	}

	rec, err := e.SelectBestModel("medical-triage", budget, results)
	require.NoError(t, err)
	assert.Equal(t, "claude-sonnet", rec.RecommendedModel)
	require.Len(t, rec.Alternatives, 1)
	alt := rec.Alternatives[0]
	assert.Equal(t, "gpt-4o", alt.Model)
	assert.Contains(t, alt.Cons, "More budget violations (1 vs 0)")
	assert.NotEmpty(t, alt.TradeoffSummary)
}

func TestRank_ToleranceBandFallsThroughToPassRate(t *testing.T) {
	e := NewEngine(policy.Default())

	candidates := []models.Candidate{
		{Model: "a", Risk: models.RiskAnalysis{RiskScore: 10.00}, PassRate: 0.90},
		{Model: "b", Risk: models.RiskAnalysis{RiskScore: 10.005}, PassRate: 0.95},
		{Model: "c", Risk: models.RiskAnalysis{RiskScore: 12.0}, PassRate: 0.99},
	}

	e.rank(candidates, standardBudget())

	// a and b are within the 0.01 tolerance, so the higher pass rate leads;
	// c is strictly worse on risk and ranks last despite its pass rate
	assert.Equal(t, "b", candidates[0].Model)
	assert.Equal(t, "a", candidates[1].Model)
	assert.Equal(t, "c", candidates[2].Model)
}

func TestRank_StableForFullTies(t *testing.T) {
	e := NewEngine(policy.Default())

	candidates := []models.Candidate{
		{Model: "first", Risk: models.RiskAnalysis{RiskScore: 5}, PassRate: 0.9},
		{Model: "second", Risk: models.RiskAnalysis{RiskScore: 5}, PassRate: 0.9},
	}
	e.rank(candidates, standardBudget())
	assert.Equal(t, "first", candidates[0].Model)
}

func TestConfidence_Penalties(t *testing.T) {
	e := NewEngine(policy.Default())

	budget := standardBudget()
	c := models.Candidate{PassRate: 0.90, Risk: models.RiskAnalysis{
		Violations: []string{"refusal: 30.00% exceeds 20.00% budget"},
	}}

	// 100 - 10 (one violation) - 5 ((0.95-0.90)*100)
	assert.InDelta(t, 85.0, e.confidence(c, budget), 1e-9)

	budget.BusinessImpact = models.ImpactCritical
	assert.InDelta(t, 55.0, e.confidence(c, budget), 1e-9)

	// regulatory bonus only applies to spotless candidates, capped at 100
	budget = standardBudget()
	budget.RegulatoryRisk = true
	clean := models.Candidate{PassRate: 0.99}
	assert.Equal(t, 100.0, e.confidence(clean, budget))

	clean.PassRate = 0.90
	// 100 - 5 + 10 caps at 100
	assert.Equal(t, 100.0, e.confidence(clean, budget))
}

func TestBuildAlternative_Deltas(t *testing.T) {
	e := NewEngine(policy.Default())

	best := models.Candidate{MeanCost: 0.0004, MeanLatencyMs: 800, Risk: models.RiskAnalysis{RiskScore: 10}}
	c := models.Candidate{Model: "rival", MeanCost: 0.0003, MeanLatencyMs: 950, Risk: models.RiskAnalysis{RiskScore: 15}}

	alt := e.buildAlternative(c, best)
	assert.Contains(t, alt.Pros, "Cheaper: saves $1000.00 per 10M tokens")
	assert.Contains(t, alt.Cons, "Slower: 150ms higher latency")
	assert.Contains(t, alt.Cons, "Higher risk: 50% increase")
	assert.Equal(t, "Cheaper, slower, higher risk", alt.TradeoffSummary)
}

func TestBuildAlternative_SmallLatencyRegressionNotPenalized(t *testing.T) {
	e := NewEngine(policy.Default())

	best := models.Candidate{MeanLatencyMs: 800}
	c := models.Candidate{MeanLatencyMs: 808}

	alt := e.buildAlternative(c, best)
	assert.Empty(t, alt.Cons)
	assert.Equal(t, "Similar performance", alt.TradeoffSummary)
}

func TestBuildAlternative_ZeroRiskBestUsesRawDelta(t *testing.T) {
	e := NewEngine(policy.Default())

	best := models.Candidate{}
	c := models.Candidate{Risk: models.RiskAnalysis{RiskScore: 3.5}}

	alt := e.buildAlternative(c, best)
	assert.Contains(t, alt.Cons, "Higher risk: score 3.50 above recommended")
}

func TestSelectBestModel_Deterministic(t *testing.T) {
	e := NewEngine(policy.Default())

	results := []ModelResults{
		makeResults("openai/gpt-4o", 800, 0.002, map[string][2]int{
			"hallucination": {100, 8}, "refusal": {50, 5},
		}),
		makeResults("anthropic/claude-sonnet", 900, 0.003, map[string][2]int{
			"hallucination": {100, 3}, "refusal": {50, 2},
		}),
		makeResults("google/gemini-pro", 600, 0.001, map[string][2]int{
			"hallucination": {100, 12}, "refusal": {50, 9},
		}),
	}
	budget := standardBudget()

	first, err := e.SelectBestModel("content-drafting", budget, results)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := e.SelectBestModel("content-drafting", budget, results)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestSplitModelKey(t *testing.T) {
	provider, model := splitModelKey("openai/gpt-4o")
	assert.Equal(t, "openai", provider)
	assert.Equal(t, "gpt-4o", model)

	provider, model = splitModelKey("azure/openai/gpt-4o")
	assert.Equal(t, "azure", provider)
	assert.Equal(t, "openai/gpt-4o", model)

	provider, model = splitModelKey("local-llama")
	assert.Equal(t, "", provider)
	assert.Equal(t, "local-llama", model)
}
