package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanCommand(t *testing.T) {
	dir := t.TempDir()
	budgetsPath := writeBudgetsFile(t, dir)
	// clean enough for support-bot; the regulatory medical use case requires
	// zero violations, which the 2% hallucination rate exceeds (1% ceiling)
	gpt := writeResultsFile(t, dir, "gpt-4o.json", "openai/gpt-4o", map[string][2]int{
		"hallucination": {100, 2},
	})
	claude := writeResultsFile(t, dir, "claude.json", "anthropic/claude-sonnet", map[string][2]int{
		"hallucination": {200, 1}, // 0.5%, clean everywhere
	})
	outPath := filepath.Join(dir, "plan.txt")

	cmd := newPlanCommand()
	cmd.SetArgs([]string{gpt, claude, "--budgets", budgetsPath, "--out", outPath})
	require.NoError(t, cmd.Execute())

	report, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(report), "Deployment Plan")
	assert.Contains(t, string(report), "support-bot")
	assert.Contains(t, string(report), "medical-diagnosis-assistant")
	assert.Contains(t, string(report), "anthropic/claude-sonnet")
}

func TestPlanCommand_CSV(t *testing.T) {
	dir := t.TempDir()
	budgetsPath := writeBudgetsFile(t, dir)
	resultsPath := writeResultsFile(t, dir, "claude.json", "anthropic/claude-sonnet", map[string][2]int{
		"hallucination": {200, 1},
	})
	outPath := filepath.Join(dir, "plan.csv")

	cmd := newPlanCommand()
	cmd.SetArgs([]string{resultsPath, "--budgets", budgetsPath, "--format", "csv", "--out", outPath})
	require.NoError(t, cmd.Execute())

	report, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(report), "use_case,provider,recommended_model")
	assert.Contains(t, string(report), "support-bot,anthropic,claude-sonnet")
}

func TestPlanCommand_MissingBudgets(t *testing.T) {
	dir := t.TempDir()
	resultsPath := writeResultsFile(t, dir, "claude.json", "anthropic/claude-sonnet", map[string][2]int{
		"hallucination": {10, 0},
	})

	cmd := newPlanCommand()
	cmd.SetArgs([]string{resultsPath, "--budgets", filepath.Join(dir, "missing.yaml")})
	require.Error(t, cmd.Execute())
}
