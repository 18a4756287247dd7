package models

// BusinessImpact is the business-impact tier of a use case. It controls both
// eligibility filtering strictness and the risk-weighting multiplier.
type BusinessImpact string

const (
	ImpactCritical BusinessImpact = "critical"
	ImpactHigh     BusinessImpact = "high"
	ImpactMedium   BusinessImpact = "medium"
	ImpactLow      BusinessImpact = "low"
)

// Valid reports whether the tier is one of the four known values.
func (b BusinessImpact) Valid() bool {
	switch b {
	case ImpactCritical, ImpactHigh, ImpactMedium, ImpactLow:
		return true
	}
	return false
}

// FailureBudget is the risk-tolerance policy for a single use case: a ceiling
// failure rate per category plus the weighting inputs for the risk score.
// Budgets are loaded once and never mutated during an analysis run.
type FailureBudget struct {
	UseCase           string                      `yaml:"use_case" json:"use_case"`
	BusinessImpact    BusinessImpact              `yaml:"business_impact" json:"business_impact"`
	FailureCategories map[FailureCategory]float64 `yaml:"failure_categories" json:"failure_categories"`
	CostPerFailure    float64                     `yaml:"cost_per_failure" json:"cost_per_failure"`
	RegulatoryRisk    bool                        `yaml:"regulatory_risk" json:"regulatory_risk"`
	HumanReview       bool                        `yaml:"human_review" json:"human_review"`
}

// Ceiling returns the budgeted failure-rate ceiling for a category.
// A category the budget does not mention is unconstrained (ceiling 1.0);
// the budgets loader warns about such gaps so they don't silently mask risk.
func (b *FailureBudget) Ceiling(cat FailureCategory) float64 {
	if c, ok := b.FailureCategories[cat]; ok {
		return c
	}
	return 1.0
}
