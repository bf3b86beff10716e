// ABOUTME: Shared lipgloss styles for consistent terminal output
// ABOUTME: Defines colors, panels and verdict styles used by reports and the wizard

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors - Core palette
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Danger    = lipgloss.Color("#EF4444") // Red
	Muted     = lipgloss.Color("#6B7280") // Gray
	Text      = lipgloss.Color("#F9FAFB") // Light
	Info      = lipgloss.Color("#3B82F6") // Blue

	// Base styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted)

	Heading = lipgloss.NewStyle().
		Bold(true).
		Foreground(Info)

	// Status indicators
	StatusOK = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	StatusWarning = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	StatusCritical = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	// Panels
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(0, 1)

	// Label column in key/value listings
	KeyStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Width(22)

	// Value style for emphasized data
	ValueStyle = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true)
)

// Verdict renders a pass/fail marker with its label.
func Verdict(ok bool, label string) string {
	if ok {
		return StatusOK.Render("✓ " + label)
	}
	return StatusCritical.Render("✗ " + label)
}

// Row renders one aligned label/value line.
func Row(label, value string) string {
	return KeyStyle.Render(label) + ValueStyle.Render(value)
}

// LoadingBar shows how much of a rating is used. Amber from 80%, red past 100%.
func LoadingBar(percent float64, width int) string {
	filled := int(percent / 100.0 * float64(width))
	filled = min(max(filled, 0), width)

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	color := Secondary
	if percent >= 80 {
		color = Warning
	}
	if percent > 100 {
		color = Danger
	}

	return lipgloss.NewStyle().Foreground(color).Render(bar)
}
