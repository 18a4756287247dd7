// Package wizard provides the interactive budget-file scaffolding flow.
package wizard

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/template"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// BudgetSpec holds all fields collected during the interactive wizard.
type BudgetSpec struct {
	UseCase        string
	BusinessImpact string
	Hallucination  float64
	Injection      float64
	Refusal        float64
	Context        float64
	Consistency    float64
	CostPerFailure float64
	RegulatoryRisk bool
	HumanReview    bool
}

const budgetYAMLTemplate = `budgets:
  - use_case: {{ .UseCase }}
    business_impact: {{ .BusinessImpact }}
    failure_categories:
      hallucination: {{ .Hallucination }}
      injection: {{ .Injection }}
      refusal: {{ .Refusal }}
      context: {{ .Context }}
      consistency: {{ .Consistency }}
    cost_per_failure: {{ .CostPerFailure }}
    regulatory_risk: {{ .RegulatoryRisk }}
    human_review: {{ .HumanReview }}
`

// RunBudgetWizard runs an interactive huh form to collect one use case's
// failure budget. If initialUseCase is non-empty, it pre-populates the name.
func RunBudgetWizard(in io.Reader, out io.Writer, initialUseCase string) (*BudgetSpec, error) {
	var (
		useCase        = initialUseCase
		impact         string
		hallucination  = "0.05"
		injection      = "0.0"
		refusal        = "0.10"
		contextRate    = "0.10"
		consistency    = "0.10"
		costPerFailure = "100"
		regulatory     bool
		humanReview    bool
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Use case").
				Description("A kebab-case name for the deployment context").
				Placeholder("customer-support-bot").
				Value(&useCase).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("use case is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Business impact").
				Options(
					huh.NewOption("critical", "critical"),
					huh.NewOption("high", "high"),
					huh.NewOption("medium", "medium"),
					huh.NewOption("low", "low"),
				).
				Value(&impact),
		),
		huh.NewGroup(
			ceilingInput("Hallucination ceiling", &hallucination),
			ceilingInput("Injection ceiling", &injection),
			ceilingInput("Refusal ceiling", &refusal),
			ceilingInput("Context ceiling", &contextRate),
			ceilingInput("Consistency ceiling", &consistency),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Cost per failure").
				Description("Estimated monetary cost of one failure in production").
				Value(&costPerFailure).
				Validate(validateNonNegative),
			huh.NewConfirm().
				Title("Regulatory risk?").
				Description("Regulated use cases require zero budget violations").
				Value(&regulatory),
			huh.NewConfirm().
				Title("Human review required?").
				Value(&humanReview),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	spec := &BudgetSpec{
		UseCase:        strings.TrimSpace(useCase),
		BusinessImpact: impact,
		RegulatoryRisk: regulatory,
		HumanReview:    humanReview,
	}
	// Validated by the form, so these cannot fail.
	spec.Hallucination, _ = strconv.ParseFloat(hallucination, 64)
	spec.Injection, _ = strconv.ParseFloat(injection, 64)
	spec.Refusal, _ = strconv.ParseFloat(refusal, 64)
	spec.Context, _ = strconv.ParseFloat(contextRate, 64)
	spec.Consistency, _ = strconv.ParseFloat(consistency, 64)
	spec.CostPerFailure, _ = strconv.ParseFloat(costPerFailure, 64)
	return spec, nil
}

func ceilingInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Description("Failure-rate ceiling in [0, 1]").
		Value(value).
		Validate(validateRate)
}

func validateRate(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("must be a number")
	}
	if v < 0 || v > 1 {
		return fmt.Errorf("must be between 0 and 1")
	}
	return nil
}

func validateNonNegative(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("must be a number")
	}
	if v < 0 {
		return fmt.Errorf("must be non-negative")
	}
	return nil
}

// GenerateBudgetYAML renders a budgets.yaml from the given spec.
func GenerateBudgetYAML(spec *BudgetSpec) (string, error) {
	tmpl, err := template.New("budgetyaml").Parse(budgetYAMLTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, spec); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return buf.String(), nil
}
