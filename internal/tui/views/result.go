// Package views holds the single-question bubbletea models used by the
// terminal prompt provider. Each model quits its program once the question
// is answered or cancelled.
package views

// Result represents the outcome of a prompt interaction.
type Result int

const (
	// ResultPending means no decision has been made yet.
	ResultPending Result = iota
	// ResultSubmit means the user answered the question.
	ResultSubmit
	// ResultCancel means the user aborted the prompt.
	ResultCancel
)
