package tui

import (
	"github.com/Veraticus/shawarma-forecast/internal/tui/components"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the dashboard-level shortcuts. Upload keys belong to the
// upload panel and are only listed here for help rendering.
type KeyMap struct {
	Upload    components.UploadKeyMap
	Refresh   key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Upload: components.DefaultUploadKeyMap(),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload forecast"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "force quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Upload.Pick, k.Upload.Upload, k.Help, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Upload.Pick, k.Upload.Upload, k.Upload.Cancel},
		{k.Refresh, k.Help},
		{k.Quit, k.ForceQuit},
	}
}
