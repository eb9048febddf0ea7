package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pablasso/plankit/internal/tui/views"
)

// Terminal asks questions through an inline bubbletea program.
type Terminal struct {
	in  io.Reader
	out io.Writer
}

// NewTerminal creates a provider reading in and rendering to out. Nil
// values default to stdin and stdout.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Terminal{in: in, out: out}
}

type answerable interface {
	tea.Model
	Result() views.Result
}

func (t *Terminal) run(ctx context.Context, model answerable) (tea.Model, error) {
	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
	)
	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) || ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", ErrAborted, err)
		}
		return nil, fmt.Errorf("failed to run prompt: %w", err)
	}
	if m, ok := final.(answerable); !ok || m.Result() != views.ResultSubmit {
		return nil, ErrAborted
	}
	return final, nil
}

// Ask implements Provider.
func (t *Terminal) Ask(ctx context.Context, question, defaultValue string) (string, error) {
	final, err := t.run(ctx, views.NewInputModel(views.InputConfig{
		Question: question,
		Default:  defaultValue,
	}))
	if err != nil {
		return "", err
	}
	return final.(views.InputModel).Value(), nil
}

// Choose implements Provider.
func (t *Terminal) Choose(ctx context.Context, question string, choices []Choice) (int, error) {
	options := make([]views.Option, len(choices))
	for i, c := range choices {
		options[i] = views.Option{Label: c.Label, Description: c.Description}
	}
	final, err := t.run(ctx, views.NewChoiceModel(question, options))
	if err != nil {
		return 0, err
	}
	return final.(views.ChoiceModel).Selected(), nil
}

// Confirm implements Provider.
func (t *Terminal) Confirm(ctx context.Context, question string) (bool, error) {
	final, err := t.run(ctx, views.NewConfirmModel(question))
	if err != nil {
		return false, err
	}
	return final.(views.ConfirmModel).Confirmed(), nil
}
