package tui

import "github.com/charmbracelet/lipgloss"

var (
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#5a56e0", Dark: "#7d79f6"}).
			Render

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#56FF4E")).
			Render

	failureStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f23a74")).
			Render

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Render
)

var docStyle = lipgloss.NewStyle().Margin(1, 2)
