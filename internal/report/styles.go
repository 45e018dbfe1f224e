package report

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorDim     = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"}
	colorAccent  = lipgloss.AdaptiveColor{Light: "#F25D94", Dark: "#F25D94"}
	colorBorder  = lipgloss.AdaptiveColor{Light: "#DBDBDB", Dark: "#383838"}
	colorGreen   = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#25D366"}
	colorRed     = lipgloss.AdaptiveColor{Light: "#D7263D", Dark: "#FF5F5F"}
	colorYellow  = lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#F5C542"}
	colorCyan    = lipgloss.AdaptiveColor{Light: "#00838F", Dark: "#4DD0E1"}

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	subtleStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent).
			MarginTop(1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	successStyle = lipgloss.NewStyle().Foreground(colorGreen)
	failStyle    = lipgloss.NewStyle().Foreground(colorRed)

	anchorStyle    = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	concreteStyle  = lipgloss.NewStyle().Foreground(colorCyan)
	motifStyle     = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	sentimentStyle = lipgloss.NewStyle().Foreground(colorYellow)
	abstractStyle  = lipgloss.NewStyle().Foreground(colorRed).Underline(true)
)

func scoreStyle(v int) lipgloss.Style {
	switch {
	case v >= 80:
		return successStyle
	case v >= 40:
		return lipgloss.NewStyle().Foreground(colorYellow)
	default:
		return failStyle
	}
}
