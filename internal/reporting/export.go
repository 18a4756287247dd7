package reporting

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/gauntlet-ai/gauntlet/internal/models"
)

// Envelope wraps an exported payload with run identity so downstream tooling
// can correlate reports from the same invocation.
type Envelope struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Data        any       `json:"data"`
}

// WriteJSON exports any payload as an indented JSON envelope.
func WriteJSON(w io.Writer, data any) error {
	env := Envelope{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Data:        data,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(env); err != nil {
		return fmt.Errorf("reporting: encode json: %w", err)
	}
	return nil
}

// WriteBreakdownCSV exports a risk breakdown, one row per category.
func WriteBreakdownCSV(w io.Writer, model string, analysis models.RiskAnalysis) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"model", "category", "actual_rate", "budget_rate", "delta", "violation"}); err != nil {
		return fmt.Errorf("reporting: write csv header: %w", err)
	}
	for _, d := range analysis.Breakdown {
		row := []string{
			model,
			string(d.Category),
			strconv.FormatFloat(d.Actual, 'f', 4, 64),
			strconv.FormatFloat(d.Budget, 'f', 4, 64),
			strconv.FormatFloat(d.Delta, 'f', 4, 64),
			strconv.FormatBool(d.Delta > 0),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("reporting: write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteRecommendationsCSV exports one row per use-case recommendation.
func WriteRecommendationsCSV(w io.Writer, recs []models.Recommendation) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"use_case", "provider", "recommended_model", "confidence", "monthly_10m", "monthly_100m", "per_request"}); err != nil {
		return fmt.Errorf("reporting: write csv header: %w", err)
	}
	for _, r := range recs {
		row := []string{
			r.UseCase,
			r.Provider,
			r.RecommendedModel,
			strconv.FormatFloat(r.ConfidenceScore, 'f', 1, 64),
			strconv.FormatFloat(r.CostAnalysis.Monthly10M, 'f', 2, 64),
			strconv.FormatFloat(r.CostAnalysis.Monthly100M, 'f', 2, 64),
			strconv.FormatFloat(r.CostAnalysis.PerRequest, 'f', 4, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("reporting: write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
