// Package cli provides styled terminal output for the one-shot commands.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#7c3aed")
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#10b981")
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#f59e0b")
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#ef4444")
	// InfoColor indicates informational messages.
	InfoColor = lipgloss.Color("#3b82f6")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#737373")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// InfoStyle formats informational messages.
	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoxStyle is used for bordered content boxes.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#404040")).
			Padding(1, 2)
)

// Icons.
const (
	SuccessIcon  = "✓"
	ErrorIcon    = "✗"
	WarningIcon  = "⚠️"
	InfoIcon     = "ℹ️"
	ForecastIcon = "🥙"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle formats a title with the forecast icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(ForecastIcon + " " + title)
}

// RenderBox renders content in a styled box.
func RenderBox(title, content string) string {
	boxTitle := TitleStyle.
		UnsetMargins().
		Render(title)

	return BoxStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		boxTitle,
		content,
	))
}
