package models

// FailureCategory classifies what kind of failure a test probes for.
type FailureCategory string

const (
	CategoryHallucination FailureCategory = "hallucination"
	CategoryInjection     FailureCategory = "injection"
	CategoryRefusal       FailureCategory = "refusal"
	CategoryContext       FailureCategory = "context"
	CategoryConsistency   FailureCategory = "consistency"
	// CategoryUnknown is a terminal classification for test identifiers whose
	// prefix is not in the category table. Unknown outcomes are excluded from
	// budget comparison since there is no ceiling to hold them against.
	CategoryUnknown FailureCategory = "unknown"
)

// KnownCategories lists every budgetable category in canonical order.
func KnownCategories() []FailureCategory {
	return []FailureCategory{
		CategoryHallucination,
		CategoryInjection,
		CategoryRefusal,
		CategoryContext,
		CategoryConsistency,
	}
}

// OutcomeRecord is the result of one test execution against one model, as
// produced by the external test harness. The core treats it as read-only and
// never re-evaluates the pass/fail verdict.
type OutcomeRecord struct {
	TestID        string  `json:"test_id" mapstructure:"test_id"`
	Passed        bool    `json:"passed" mapstructure:"passed"`
	LatencyMs     int64   `json:"latency_ms" mapstructure:"latency_ms"`
	Cost          float64 `json:"cost" mapstructure:"cost"`
	FailureReason string  `json:"failure_reason,omitempty" mapstructure:"failure_reason"`
}

// ModelRun groups the outcome records from one harness run of one model.
// The Model field carries the "provider/model" key used throughout ranking.
type ModelRun struct {
	Model    string          `json:"model" mapstructure:"model"`
	Outcomes []OutcomeRecord `json:"outcomes" mapstructure:"outcomes"`
}
