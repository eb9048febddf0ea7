package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pablasso/plankit/internal/tui/components"
	"github.com/pablasso/plankit/internal/tui/styles"
)

// InputConfig holds initialization parameters for InputModel.
type InputConfig struct {
	Question    string
	Placeholder string
	Default     string
	// Validate, when set, rejects an answer by returning an error message.
	Validate func(string) error
}

// InputModel asks a free-text question.
type InputModel struct {
	question string
	input    textinput.Model
	validate func(string) error

	result Result
	value  string
	errMsg string
	width  int
}

// NewInputModel creates a new text question.
func NewInputModel(config InputConfig) InputModel {
	ti := textinput.New()
	ti.Placeholder = config.Placeholder
	ti.CharLimit = 1024
	ti.Width = 60
	ti.SetValue(config.Default)
	ti.Focus()

	return InputModel{
		question: config.Question,
		input:    ti,
		validate: config.Validate,
		result:   ResultPending,
	}
}

// Init implements tea.Model.
func (m InputModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m InputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			value := strings.TrimSpace(m.input.Value())
			if m.validate != nil {
				if err := m.validate(value); err != nil {
					m.errMsg = err.Error()
					return m, nil
				}
			}
			m.value = value
			m.result = ResultSubmit
			m.input.Blur()
			return m, tea.Quit

		case "esc", "ctrl+c":
			m.result = ResultCancel
			return m, tea.Quit
		}
		m.errMsg = ""
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m InputModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(m.question))
	b.WriteString("\n")

	if m.result != ResultPending {
		b.WriteString("  ")
		b.WriteString(styles.SelectedStyle.Render(m.value))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString("  ")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString(styles.ErrorStyle.Render("⚠ " + m.errMsg))
		b.WriteString("\n")
	}

	b.WriteString(components.NewStatusBar().Render(m.width, []string{"Enter Confirm", "Esc Cancel"}))
	b.WriteString("\n")
	return b.String()
}

// SetSize updates the model width.
func (m *InputModel) SetSize(width int) {
	m.width = width
	m.input.Width = width - 10
	if m.input.Width < 20 {
		m.input.Width = 20
	}
}

// Result returns the result of the interaction.
func (m InputModel) Result() Result {
	return m.result
}

// Value returns the submitted answer.
func (m InputModel) Value() string {
	return m.value
}
