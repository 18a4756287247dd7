package recommend

import (
	"fmt"

	"github.com/gauntlet-ai/gauntlet/internal/models"
)

// BuildPlan runs the selector once per budget against the same candidate
// pool and groups the winners into a model→use-cases assignment map.
// Assignment order follows the order models first win a use case; use cases
// with no viable candidate are grouped under the NONE sentinel but do not
// count toward the distinct-model total.
func (e *Engine) BuildPlan(budgets []models.FailureBudget, results []ModelResults) (models.DeploymentPlan, error) {
	if len(budgets) == 0 {
		return models.DeploymentPlan{}, fmt.Errorf("recommend: no budgets to plan for")
	}

	plan := models.DeploymentPlan{}
	index := make(map[string]int)

	for _, budget := range budgets {
		rec, err := e.SelectBestModel(budget.UseCase, budget, results)
		if err != nil {
			return models.DeploymentPlan{}, fmt.Errorf("recommend: use case %q: %w", budget.UseCase, err)
		}
		plan.Recommendations = append(plan.Recommendations, rec)

		key := rec.RecommendedModel
		if !rec.None() && rec.Provider != "" {
			key = rec.Provider + "/" + rec.RecommendedModel
		}

		i, ok := index[key]
		if !ok {
			i = len(plan.Assignments)
			index[key] = i
			plan.Assignments = append(plan.Assignments, models.ModelAssignment{Model: key})
		}
		plan.Assignments[i].UseCases = append(plan.Assignments[i].UseCases, budget.UseCase)
	}

	for _, a := range plan.Assignments {
		if a.Model != models.RecommendationNone {
			plan.DistinctModels++
		}
	}
	plan.SingleModel = plan.DistinctModels == 1
	return plan, nil
}
