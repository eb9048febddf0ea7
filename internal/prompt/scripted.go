package prompt

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Scripted answers questions from a fixed queue. It backs non-interactive
// runs and tests.
type Scripted struct {
	answers []string
	asked   []string
}

// NewScripted creates a provider that replies with answers in order.
func NewScripted(answers ...string) *Scripted {
	return &Scripted{answers: answers}
}

// Asked returns the questions asked so far.
func (s *Scripted) Asked() []string {
	return s.asked
}

// Remaining returns the number of unused answers.
func (s *Scripted) Remaining() int {
	return len(s.answers)
}

func (s *Scripted) next(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrAborted, err)
	}
	s.asked = append(s.asked, question)
	if len(s.answers) == 0 {
		return "", fmt.Errorf("%w: no answer scripted for %q", ErrAborted, question)
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	return answer, nil
}

// Ask implements Provider. An empty scripted answer yields defaultValue.
func (s *Scripted) Ask(ctx context.Context, question, defaultValue string) (string, error) {
	answer, err := s.next(ctx, question)
	if err != nil {
		return "", err
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return defaultValue, nil
	}
	return answer, nil
}

// Choose implements Provider. The answer may be a choice label
// (case-insensitive) or its 1-based position.
func (s *Scripted) Choose(ctx context.Context, question string, choices []Choice) (int, error) {
	answer, err := s.next(ctx, question)
	if err != nil {
		return 0, err
	}
	answer = strings.TrimSpace(answer)
	for i, c := range choices {
		if strings.EqualFold(c.Label, answer) {
			return i, nil
		}
	}
	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(choices) {
		return n - 1, nil
	}
	return 0, fmt.Errorf("invalid choice %q for %q", answer, question)
}

// Confirm implements Provider. Any answer starting with "y" is a yes.
func (s *Scripted) Confirm(ctx context.Context, question string) (bool, error) {
	answer, err := s.next(ctx, question)
	if err != nil {
		return false, err
	}
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y"), nil
}

// Yes confirms every question and delegates the rest to another provider.
type Yes struct {
	Provider
}

// Confirm implements Provider.
func (Yes) Confirm(context.Context, string) (bool, error) {
	return true, nil
}

// WithConfirm answers Confirm through Confirmer and every other question
// through the embedded provider.
type WithConfirm struct {
	Provider
	Confirmer Provider
}

// Confirm implements Provider.
func (w WithConfirm) Confirm(ctx context.Context, question string) (bool, error) {
	return w.Confirmer.Confirm(ctx, question)
}
