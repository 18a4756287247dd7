package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess    = 0 // Analysis ran and no budget was violated
	ExitOverBudget = 1 // Analysis ran but the model is over budget
	ExitError      = 2 // Configuration or runtime error
)

// OverBudgetError indicates the analysis completed successfully, but the
// analyzed model exceeded its failure budget.
type OverBudgetError struct {
	Message string
}

func (e *OverBudgetError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var overBudgetErr *OverBudgetError
		if errors.As(err, &overBudgetErr) {
			os.Exit(ExitOverBudget)
		}

		// All other errors are configuration/runtime errors
		os.Exit(ExitError)
	}
}
