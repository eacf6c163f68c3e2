package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#ff0000")
	colorMuted   = lipgloss.Color("#888888")
	colorError   = lipgloss.Color("#ff5f5f")
	colorOK      = lipgloss.Color("#5fd787")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			MarginTop(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorError).
			Padding(0, 1)

	authorStyle = lipgloss.NewStyle().Bold(true)

	dateStyle = lipgloss.NewStyle().Foreground(colorMuted)

	editedStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	selectedCardStyle = cardStyle.
				BorderForeground(colorPrimary)

	editCardStyle = cardStyle.
			BorderForeground(colorOK)

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(colorPrimary).
			Padding(0, 1)

	disabledButtonStyle = buttonStyle.
				Background(colorMuted)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1)
)
