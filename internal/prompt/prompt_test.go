package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bumpChoices = []Choice{{Label: "major"}, {Label: "minor"}, {Label: "patch"}}

func TestScripted_Ask(t *testing.T) {
	ctx := context.Background()
	s := NewScripted("  add export  ", "")

	got, err := s.Ask(ctx, "changes?", "")
	require.NoError(t, err)
	assert.Equal(t, "add export", got)

	got, err = s.Ask(ctx, "version?", "1.0.0")
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", got)

	assert.Equal(t, []string{"changes?", "version?"}, s.Asked())
	assert.Zero(t, s.Remaining())
}

func TestScripted_Choose(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		answer string
		want   int
	}{
		{"minor", 1},
		{"PATCH", 2},
		{"1", 0},
	}
	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			got, err := NewScripted(tt.answer).Choose(ctx, "bump?", bumpChoices)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := NewScripted("4").Choose(ctx, "bump?", bumpChoices)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrAborted))
}

func TestScripted_Confirm(t *testing.T) {
	ctx := context.Background()
	for answer, want := range map[string]bool{"y": true, "Yes": true, "n": false, "": false, "ok": false} {
		got, err := NewScripted(answer).Confirm(ctx, "create?")
		require.NoError(t, err)
		assert.Equal(t, want, got, answer)
	}
}

func TestScripted_ExhaustedAborts(t *testing.T) {
	_, err := NewScripted().Ask(context.Background(), "changes?", "")
	assert.ErrorIs(t, err, ErrAborted)
}

func TestScripted_CancelledContextAborts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewScripted("y")
	_, err := s.Confirm(ctx, "create?")
	assert.ErrorIs(t, err, ErrAborted)
	assert.Equal(t, 1, s.Remaining())
}

func TestYes(t *testing.T) {
	p := Yes{Provider: NewScripted("minor")}

	ok, err := p.Confirm(context.Background(), "create?")
	require.NoError(t, err)
	assert.True(t, ok)

	idx, err := p.Choose(context.Background(), "bump?", bumpChoices)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}

func TestWithConfirm(t *testing.T) {
	answers := NewScripted("minor")
	confirmer := NewScripted("n")
	p := WithConfirm{Provider: answers, Confirmer: confirmer}

	idx, err := p.Choose(context.Background(), "bump?", bumpChoices)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	ok, err := p.Confirm(context.Background(), "create?")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, []string{"create?"}, confirmer.Asked())
}

func TestProvidersImplementInterface(t *testing.T) {
	var _ Provider = (*Scripted)(nil)
	var _ Provider = (*Terminal)(nil)
	var _ Provider = Yes{}
	var _ Provider = WithConfirm{}
}
