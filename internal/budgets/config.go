// Package budgets loads and validates the failure-budget policy file.
// Budgets are read once at startup and treated as immutable afterwards.
package budgets

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gauntlet-ai/gauntlet/internal/models"
)

// File is the top-level shape of a budgets.yaml file.
type File struct {
	Budgets []models.FailureBudget `yaml:"budgets"`
}

// Load reads a budget file from disk and returns the validated budgets.
func Load(path string) ([]models.FailureBudget, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("budgets: read %s: %w", path, err)
	}
	budgets, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("budgets: %s: %w", path, err)
	}
	return budgets, nil
}

// Parse validates raw YAML against the budget schema and decodes it.
// A budget that leaves a known category without a ceiling is legal (the
// category defaults to unconstrained) but gets a loud warning, since an
// incomplete budget file can silently mask real risk.
func Parse(data []byte) ([]models.FailureBudget, error) {
	if errs := ValidateBytes(data); len(errs) > 0 {
		return nil, fmt.Errorf("schema validation failed:\n  %s", strings.Join(errs, "\n  "))
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if len(f.Budgets) == 0 {
		return nil, errors.New("no budgets defined")
	}

	seen := make(map[string]bool, len(f.Budgets))
	for i := range f.Budgets {
		b := &f.Budgets[i]
		if err := validateBudget(b); err != nil {
			return nil, fmt.Errorf("budget %q: %w", b.UseCase, err)
		}
		if seen[b.UseCase] {
			return nil, fmt.Errorf("duplicate use case %q", b.UseCase)
		}
		seen[b.UseCase] = true
		warnUnconstrained(b)
	}
	return f.Budgets, nil
}

// ByUseCase returns the budget for the named use case.
func ByUseCase(budgets []models.FailureBudget, useCase string) (models.FailureBudget, error) {
	for _, b := range budgets {
		if b.UseCase == useCase {
			return b, nil
		}
	}
	return models.FailureBudget{}, fmt.Errorf("budgets: no budget for use case %q", useCase)
}

func validateBudget(b *models.FailureBudget) error {
	if b.UseCase == "" {
		return errors.New("use_case is required")
	}
	if !b.BusinessImpact.Valid() {
		return fmt.Errorf("invalid business_impact %q", b.BusinessImpact)
	}
	for cat, ceiling := range b.FailureCategories {
		if ceiling < 0 || ceiling > 1 {
			return fmt.Errorf("category %s: ceiling %v outside [0,1]", cat, ceiling)
		}
	}
	if b.CostPerFailure < 0 {
		return fmt.Errorf("cost_per_failure %v must be non-negative", b.CostPerFailure)
	}
	return nil
}

func warnUnconstrained(b *models.FailureBudget) {
	for _, cat := range models.KnownCategories() {
		if _, ok := b.FailureCategories[cat]; !ok {
			slog.Warn("budget leaves category unconstrained (ceiling defaults to 100%)",
				"use_case", b.UseCase, "category", string(cat))
		}
	}
}
