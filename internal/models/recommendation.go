package models

// RecommendationNone is the sentinel model identifier returned when no
// candidate survives the eligibility filter. Callers must check for it
// explicitly; it is a value, not an error.
const RecommendationNone = "NONE"

// CostAnalysis projects a candidate's mean per-test cost onto monthly token
// volumes and a fixed 1000-token request.
type CostAnalysis struct {
	Monthly10M  float64 `json:"monthly_10m_tokens"`
	Monthly100M float64 `json:"monthly_100m_tokens"`
	PerRequest  float64 `json:"per_request"`
}

// Alternative is a runner-up candidate with its pairwise tradeoffs against
// the recommended model.
type Alternative struct {
	Provider        string   `json:"provider"`
	Model           string   `json:"model"`
	TradeoffSummary string   `json:"tradeoff_summary"`
	Pros            []string `json:"pros"`
	Cons            []string `json:"cons"`
}

// Recommendation is the selector's verdict for one use case.
type Recommendation struct {
	UseCase          string        `json:"use_case"`
	Provider         string        `json:"provider,omitempty"`
	RecommendedModel string        `json:"recommended_model"`
	Reasoning        string        `json:"reasoning"`
	Alternatives     []Alternative `json:"alternatives"`
	CostAnalysis     CostAnalysis  `json:"cost_analysis"`
	ConfidenceScore  float64       `json:"confidence_score"`
}

// None reports whether this is the no-viable-candidate sentinel.
func (r *Recommendation) None() bool {
	return r.RecommendedModel == RecommendationNone
}

// ModelAssignment maps one recommended model to the use cases it won.
type ModelAssignment struct {
	Model    string   `json:"model"`
	UseCases []string `json:"use_cases"`
}

// DeploymentPlan aggregates per-use-case recommendations into a deployment
// strategy. Assignments preserve the order models first appear in the
// recommendation sequence so plan output is reproducible.
type DeploymentPlan struct {
	Recommendations []Recommendation  `json:"recommendations"`
	Assignments     []ModelAssignment `json:"assignments"`
	DistinctModels  int               `json:"distinct_models"`
	SingleModel     bool              `json:"single_model"`
}
