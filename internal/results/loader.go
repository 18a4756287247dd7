// Package results loads test-harness outcome files. The harness writes one
// JSON file per model run; CSV is supported for outcome sets exported from
// spreadsheets or older tooling.
package results

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/gauntlet-ai/gauntlet/internal/models"
)

// LoadJSON reads one model's harness results file:
//
//	{"model": "openai/gpt-4o", "outcomes": [{"test_id": ..., "passed": ...}, ...]}
//
// Harness versions differ in the extra fields they attach, so the document is
// decoded generically and mapped onto the known shape.
func LoadJSON(path string) (models.ModelRun, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.ModelRun{}, fmt.Errorf("results: open %s: %w", path, err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return models.ModelRun{}, fmt.Errorf("results: parse %s: %w", path, err)
	}

	var run models.ModelRun
	if err := mapstructure.Decode(doc, &run); err != nil {
		return models.ModelRun{}, fmt.Errorf("results: decode %s: %w", path, err)
	}
	if err := validateRun(&run); err != nil {
		return models.ModelRun{}, fmt.Errorf("results: %s: %w", path, err)
	}

	slog.Debug("loaded results", "path", path, "model", run.Model, "outcomes", len(run.Outcomes))
	return run, nil
}

// LoadCSV reads outcome records for one model from a CSV file. The first row
// must be a header containing test_id, passed, latency_ms and cost columns;
// failure_reason is optional.
func LoadCSV(path string, model string) (models.ModelRun, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.ModelRun{}, fmt.Errorf("results: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	outcomes, err := ParseCSV(f)
	if err != nil {
		return models.ModelRun{}, fmt.Errorf("results: %s: %w", path, err)
	}

	run := models.ModelRun{Model: model, Outcomes: outcomes}
	if err := validateRun(&run); err != nil {
		return models.ModelRun{}, fmt.Errorf("results: %s: %w", path, err)
	}
	return run, nil
}

// ParseCSV decodes outcome rows from a CSV stream.
func ParseCSV(r io.Reader) ([]models.OutcomeRecord, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv: empty file (no header row)")
	}

	col := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		col[strings.TrimSpace(h)] = i
	}
	for _, required := range []string{"test_id", "passed", "latency_ms", "cost"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("csv: missing required column %q", required)
		}
	}

	outcomes := make([]models.OutcomeRecord, 0, len(records)-1)
	for i, record := range records[1:] {
		rowNum := i + 2
		if len(record) != len(records[0]) {
			return nil, fmt.Errorf("csv: row %d has %d columns, expected %d", rowNum, len(record), len(records[0]))
		}

		passed, err := strconv.ParseBool(record[col["passed"]])
		if err != nil {
			return nil, fmt.Errorf("csv: row %d: passed: %w", rowNum, err)
		}
		latency, err := strconv.ParseInt(record[col["latency_ms"]], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("csv: row %d: latency_ms: %w", rowNum, err)
		}
		cost, err := strconv.ParseFloat(record[col["cost"]], 64)
		if err != nil {
			return nil, fmt.Errorf("csv: row %d: cost: %w", rowNum, err)
		}

		o := models.OutcomeRecord{
			TestID:    record[col["test_id"]],
			Passed:    passed,
			LatencyMs: latency,
			Cost:      cost,
		}
		if j, ok := col["failure_reason"]; ok {
			o.FailureReason = record[j]
		}
		outcomes = append(outcomes, o)
	}
	return outcomes, nil
}

func validateRun(run *models.ModelRun) error {
	if run.Model == "" {
		return fmt.Errorf("missing model identifier")
	}
	if len(run.Outcomes) == 0 {
		return fmt.Errorf("model %q has no outcomes", run.Model)
	}
	for i, o := range run.Outcomes {
		if o.TestID == "" {
			return fmt.Errorf("outcome %d: missing test_id", i)
		}
		if o.LatencyMs < 0 {
			return fmt.Errorf("outcome %d (%s): negative latency", i, o.TestID)
		}
		if o.Cost < 0 {
			return fmt.Errorf("outcome %d (%s): negative cost", i, o.TestID)
		}
	}
	return nil
}
