package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// wideLayoutWidth is the terminal width from which upload and summary sit
// beside the detail panel instead of above it.
const wideLayoutWidth = 100

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	if m.width >= wideLayoutWidth {
		body = m.renderWideView()
	} else {
		body = m.renderCompactView()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Title.Render("Shawarma MLOps"),
		body,
		m.renderStatusBar(),
	)
}

// renderCompactView stacks the three panels.
func (m Model) renderCompactView() string {
	width := m.width - 2
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.panel("1. Data Upload", m.upload.View(), width),
		m.panel("2. Summary", m.summary.View(), width),
		m.panel("3. Forecast", m.detail.View(), width),
	)
}

// renderWideView puts upload and summary on the left, detail on the right.
func (m Model) renderWideView() string {
	// Two borders per panel plus the gap.
	usable := m.width - 5
	leftWidth := usable * 2 / 5
	rightWidth := usable - leftWidth

	left := lipgloss.JoinVertical(
		lipgloss.Left,
		m.panel("1. Data Upload", m.upload.View(), leftWidth),
		m.panel("2. Summary", m.summary.View(), leftWidth),
	)
	right := m.panel("3. Forecast", m.detail.View(), rightWidth)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

func (m Model) panel(title, content string, width int) string {
	box := m.theme.BorderedBox
	if width > 0 {
		box = box.Width(width)
	}
	return box.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Section.Render(title),
		content,
	))
}

// renderStatusBar renders the key help line.
func (m Model) renderStatusBar() string {
	return lipgloss.NewStyle().Foreground(m.theme.Muted).Render(m.help.View(m.keymap))
}
