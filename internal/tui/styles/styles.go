// Package styles defines shared lipgloss styles for prompts and reports.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	primaryColor   = lipgloss.Color("#5FAFAF") // Teal accent
	secondaryColor = lipgloss.Color("#666666") // Gray for secondary text
	successColor   = lipgloss.Color("#87AF87") // Muted sage for success
	warningColor   = lipgloss.Color("#D7AF5F") // Amber for warnings
	errorColor     = lipgloss.Color("#AF5F5F") // Muted terracotta for errors
	infoColor      = lipgloss.Color("#5F87AF") // Steel blue for in-flight work

	// TitleStyle for headers
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	// HeadingStyle for report sections
	HeadingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(warningColor)

	// SubtleStyle for hints/help text
	SubtleStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	// SelectedStyle for selected items in lists
	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	// StatusBarStyle for the bottom help line
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	// SuccessStyle for success messages
	SuccessStyle = lipgloss.NewStyle().
			Foreground(successColor)

	// WarningStyle for warnings
	WarningStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	// ErrorStyle for error messages
	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	// InfoStyle for neutral emphasis
	InfoStyle = lipgloss.NewStyle().
			Foreground(infoColor)
)

// Status returns the style for a plan status value.
func Status(status string) lipgloss.Style {
	switch status {
	case "completed":
		return SuccessStyle
	case "in_progress":
		return InfoStyle
	case "pending":
		return WarningStyle
	case "cancelled":
		return ErrorStyle
	}
	return SubtleStyle
}

// Priority returns the style for a plan priority value.
func Priority(priority string) lipgloss.Style {
	switch priority {
	case "high":
		return ErrorStyle
	case "medium":
		return WarningStyle
	case "low":
		return SuccessStyle
	}
	return SubtleStyle
}
