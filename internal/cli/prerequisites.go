package cli

import (
	"fmt"

	"github.com/pablasso/plankit/internal/plan"
)

// PrerequisiteError represents a failed prerequisite check with helpful remediation info.
type PrerequisiteError struct {
	Check   string
	Message string
	Help    string
}

func (e *PrerequisiteError) Error() string {
	return fmt.Sprintf("%s: %s\n\n%s", e.Check, e.Message, e.Help)
}

// requirePlanDir fails when the plan directory does not exist.
func requirePlanDir(repo *plan.Repository) error {
	if repo.Exists() {
		return nil
	}
	return &PrerequisiteError{
		Check:   "Plan directory",
		Message: fmt.Sprintf("%s does not exist", repo.Dir()),
		Help:    "Run 'plankit init' to create it, or point --dir at an existing plan directory.",
	}
}
