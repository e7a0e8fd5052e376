package styles

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	Accent = lipgloss.Color("205")
	Gray   = lipgloss.Color("245")
	Red    = lipgloss.Color("#B8383B")
	Blu    = lipgloss.Color("#5885A2")
	Green  = lipgloss.Color("#4E9A06")
	Yellow = lipgloss.Color("#C4A000")

	Title = lipgloss.NewStyle().Bold(true).Foreground(Blu)
	// Subtitle follows a Title on the same line, eg. the persona state after a name.
	Subtitle = lipgloss.NewStyle().Foreground(Gray)

	PanelLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Width(14)
	PanelValue = lipgloss.NewStyle()

	// Check runner output.
	Running  = lipgloss.NewStyle().Foreground(Yellow)
	Passed   = lipgloss.NewStyle().Foreground(Green)
	Failed   = lipgloss.NewStyle().Foreground(Red).Bold(true)
	TestName = lipgloss.NewStyle().Foreground(Accent)
	Detail   = lipgloss.NewStyle().Foreground(Red).PaddingLeft(3)
)

// Row renders a label/value pair as a single panel line.
func Row(label string, value string) string {
	return PanelLabel.Render(label) + PanelValue.Render(value)
}
