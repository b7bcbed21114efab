package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorRed   = lipgloss.Color("#E06C75")
	colorGreen = lipgloss.Color("#98C379")
	colorBlue  = lipgloss.Color("#61AFEF")
	colorGray  = lipgloss.Color("#666666")
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	clockStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(1, 4).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBlue)
	statusStyle = lipgloss.NewStyle().Foreground(colorGreen)
	errorStyle  = lipgloss.NewStyle().Foreground(colorRed)
	helpStyle   = lipgloss.NewStyle().Foreground(colorGray)
)
