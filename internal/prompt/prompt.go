// Package prompt abstracts the questions a workflow asks its user. A
// workflow receives a Provider instead of reading a process-wide input
// stream, so the same code runs against a terminal or a script.
package prompt

import (
	"context"
	"errors"
)

// ErrAborted is returned when the user interrupts a prompt. Workflows stop
// without writing anything when they see it.
var ErrAborted = errors.New("prompt aborted")

// Choice is one option offered by Choose.
type Choice struct {
	Label       string
	Description string
}

// Provider asks one question at a time.
type Provider interface {
	// Ask returns a free-text answer. defaultValue is prefilled.
	Ask(ctx context.Context, question, defaultValue string) (string, error)
	// Choose returns the index of the selected choice.
	Choose(ctx context.Context, question string, choices []Choice) (int, error)
	// Confirm returns true when the user answers yes.
	Confirm(ctx context.Context, question string) (bool, error)
}
