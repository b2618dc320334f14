// Package themes defines the colour schemes of the dashboard.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Section       lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Figure        lipgloss.Style
	Button        lipgloss.Style
	ButtonOff     lipgloss.Style
	StatusError   lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusPending lipgloss.Style
	BorderedBox   lipgloss.Style
	TableHeader   lipgloss.Style
	TableCell     lipgloss.Style
	Primary       lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
	Error         lipgloss.Color
	Success       lipgloss.Color
}

// Default is the default theme.
var Default = Theme{
	// Colors
	Primary: lipgloss.Color("#7c3aed"),
	Success: lipgloss.Color("#10b981"),
	Error:   lipgloss.Color("#ef4444"),
	Border:  lipgloss.Color("#404040"),
	Muted:   lipgloss.Color("#737373"),

	// Text styles
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")).
		MarginBottom(1),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a3a3a3")),
	Section: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#a78bfa")),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#fafafa")),
	Bold: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")),
	Figure: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7c3aed")),

	// Component styles
	Button: lipgloss.NewStyle().
		Background(lipgloss.Color("#7c3aed")).
		Foreground(lipgloss.Color("#fafafa")).
		Padding(0, 1),
	ButtonOff: lipgloss.NewStyle().
		Background(lipgloss.Color("#262626")).
		Foreground(lipgloss.Color("#737373")).
		Padding(0, 1),
	BorderedBox: lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#404040")).
		Padding(0, 1),
	TableHeader: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")).
		Padding(0, 1),
	TableCell: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#e5e5e5")).
		Padding(0, 1),

	// Status styles
	StatusSuccess: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10b981")).
		Bold(true),
	StatusError: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ef4444")).
		Bold(true),
	StatusInfo: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#3b82f6")).
		Bold(true),
	StatusPending: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#737373")).
		Italic(true),
}

// Mono avoids colour entirely, for terminals that render it poorly.
var Mono = Theme{
	Title:         lipgloss.NewStyle().Bold(true).MarginBottom(1),
	Subtitle:      lipgloss.NewStyle(),
	Section:       lipgloss.NewStyle().Bold(true),
	Normal:        lipgloss.NewStyle(),
	Bold:          lipgloss.NewStyle().Bold(true),
	Figure:        lipgloss.NewStyle().Bold(true),
	Button:        lipgloss.NewStyle().Reverse(true).Padding(0, 1),
	ButtonOff:     lipgloss.NewStyle().Faint(true).Padding(0, 1),
	BorderedBox:   lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
	TableHeader:   lipgloss.NewStyle().Bold(true).Padding(0, 1),
	TableCell:     lipgloss.NewStyle().Padding(0, 1),
	StatusSuccess: lipgloss.NewStyle().Bold(true),
	StatusError:   lipgloss.NewStyle().Bold(true),
	StatusInfo:    lipgloss.NewStyle(),
	StatusPending: lipgloss.NewStyle().Italic(true),
}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "mono":
		return Mono
	default:
		return Default
	}
}
