package views

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pablasso/plankit/internal/tui/components"
	"github.com/pablasso/plankit/internal/tui/styles"
)

// ConfirmModel asks a yes/no question. Enter answers no.
type ConfirmModel struct {
	question string
	yes      bool
	result   Result
	width    int
}

// NewConfirmModel creates a yes/no prompt.
func NewConfirmModel(question string) ConfirmModel {
	return ConfirmModel{question: question, result: ResultPending}
}

// Init implements tea.Model.
func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "y", "Y":
			m.yes = true
			m.result = ResultSubmit
			return m, tea.Quit
		case "n", "N", "enter":
			m.yes = false
			m.result = ResultSubmit
			return m, tea.Quit
		case "esc", "ctrl+c":
			m.result = ResultCancel
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m ConfirmModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(m.question))
	b.WriteString(" ")

	if m.result == ResultSubmit {
		if m.yes {
			b.WriteString(styles.SuccessStyle.Render("yes"))
		} else {
			b.WriteString(styles.SubtleStyle.Render("no"))
		}
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(styles.SubtleStyle.Render("(y/N)"))
	b.WriteString("\n")
	b.WriteString(components.NewStatusBar().Render(m.width, []string{"y Yes", "n No", "Esc Cancel"}))
	b.WriteString("\n")
	return b.String()
}

// Result returns the result of the interaction.
func (m ConfirmModel) Result() Result {
	return m.result
}

// Confirmed reports whether the user answered yes.
func (m ConfirmModel) Confirmed() bool {
	return m.yes
}
