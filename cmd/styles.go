package cmd

import "github.com/charmbracelet/lipgloss"

var (
	userStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	assistantStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	citationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	suggestionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62"))
)

// styleForRole returns the display style for a message role.
func styleForRole(role string) lipgloss.Style {
	switch role {
	case "assistant":
		return assistantStyle
	case "error":
		return errorStyle
	default:
		return userStyle
	}
}
