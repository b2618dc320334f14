// Package tuitest holds helpers for driving bubbletea models in tests
// without a running program.
package tuitest

import (
	tea "github.com/charmbracelet/bubbletea"
)

// KeyPress creates a key press message. Named keys such as "enter", "esc"
// and "ctrl+c" map to their key types; anything else is sent as runes.
func KeyPress(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return KeyEnter()
	case "esc":
		return KeyEsc()
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{
		Type:  tea.KeyRunes,
		Runes: []rune(key),
	}
}

// KeyEnter creates an enter key message.
func KeyEnter() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

// KeyEsc creates an escape key message.
func KeyEsc() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEsc}
}

// WindowSize creates a window size message for testing responsive layouts.
func WindowSize(width, height int) tea.WindowSizeMsg {
	return tea.WindowSizeMsg{
		Width:  width,
		Height: height,
	}
}

// Type returns one key message per character of text.
func Type(text string) []tea.Msg {
	msgs := make([]tea.Msg, 0, len(text))
	for _, r := range text {
		msgs = append(msgs, tea.KeyMsg{
			Type:  tea.KeyRunes,
			Runes: []rune{r},
		})
	}
	return msgs
}
