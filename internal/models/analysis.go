package models

// CategoryDelta is one row of a risk breakdown: observed failure rate versus
// the budgeted ceiling for a single category. Delta is signed (actual-budget),
// so a negative delta means headroom remains.
type CategoryDelta struct {
	Category FailureCategory `json:"category"`
	Actual   float64         `json:"actual_rate"`
	Budget   float64         `json:"budget_rate"`
	Delta    float64         `json:"delta"`
}

// RiskAnalysis is the outcome of holding one model's outcome records against
// one failure budget. It is recomputed fresh per (model, budget) pair and
// never persisted.
type RiskAnalysis struct {
	OverBudget bool            `json:"over_budget"`
	RiskScore  float64         `json:"risk_score"`
	Violations []string        `json:"violations"`
	Breakdown  []CategoryDelta `json:"breakdown"`
}

// Candidate is the ranking-time view of one model: its risk analysis plus
// the aggregate performance numbers the comparator and tradeoff text use.
type Candidate struct {
	Provider      string       `json:"provider"`
	Model         string       `json:"model"`
	Risk          RiskAnalysis `json:"risk"`
	MeanLatencyMs float64      `json:"mean_latency_ms"`
	MeanCost      float64      `json:"mean_cost"`
	PassRate      float64      `json:"pass_rate"`
}

// Key returns the provider/model identifier the candidate was built from.
func (c *Candidate) Key() string {
	if c.Provider == "" {
		return c.Model
	}
	return c.Provider + "/" + c.Model
}
