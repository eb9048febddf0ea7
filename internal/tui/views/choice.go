package views

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pablasso/plankit/internal/tui/components"
	"github.com/pablasso/plankit/internal/tui/styles"
)

// Option is one entry of a ChoiceModel.
type Option struct {
	Label       string
	Description string
}

// ChoiceModel asks the user to pick one of a fixed list of options.
type ChoiceModel struct {
	question string
	options  []Option
	cursor   int
	result   Result
	width    int
}

// NewChoiceModel creates a selection prompt.
func NewChoiceModel(question string, options []Option) ChoiceModel {
	return ChoiceModel{
		question: question,
		options:  options,
		result:   ResultPending,
	}
}

// Init implements tea.Model.
func (m ChoiceModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ChoiceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.options)-1 {
				m.cursor++
			}
		case "enter":
			if len(m.options) == 0 {
				return m, nil
			}
			m.result = ResultSubmit
			return m, tea.Quit
		case "esc", "q", "ctrl+c":
			m.result = ResultCancel
			return m, tea.Quit
		default:
			// Digits jump straight to an option.
			if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
				if idx := int(s[0] - '1'); idx < len(m.options) {
					m.cursor = idx
					m.result = ResultSubmit
					return m, tea.Quit
				}
			}
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m ChoiceModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(m.question))
	b.WriteString("\n")

	if m.result == ResultSubmit {
		b.WriteString("  ")
		b.WriteString(styles.SelectedStyle.Render(m.options[m.cursor].Label))
		b.WriteString("\n")
		return b.String()
	}

	for i, opt := range m.options {
		line := opt.Label
		if opt.Description != "" {
			line += styles.SubtleStyle.Render(" - " + opt.Description)
		}
		if i == m.cursor {
			b.WriteString(styles.SelectedStyle.Render("> "))
		} else {
			b.WriteString("  ")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(components.NewStatusBar().Render(m.width, []string{"↑↓ Navigate", "Enter Select", "Esc Cancel"}))
	b.WriteString("\n")
	return b.String()
}

// Result returns the result of the interaction.
func (m ChoiceModel) Result() Result {
	return m.result
}

// Selected returns the index of the highlighted option.
func (m ChoiceModel) Selected() int {
	return m.cursor
}
