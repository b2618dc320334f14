// Package tui is the terminal dashboard: an upload panel, a summary panel and
// a detail panel coordinated by a shared refresh signal.
package tui

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/shawarma-forecast/internal/common"
	"github.com/Veraticus/shawarma-forecast/internal/refresh"
	"github.com/Veraticus/shawarma-forecast/internal/tui/components"
	"github.com/Veraticus/shawarma-forecast/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Model is the page container. It owns the refresh signal and is the only
// thing that increments it.
type Model struct {
	ctx      context.Context
	cancel   context.CancelFunc
	signal   *refresh.Signal
	theme    themes.Theme
	help     help.Model
	keymap   KeyMap
	upload   components.UploadModel
	summary  components.SummaryModel
	detail   components.DetailModel
	width    int
	height   int
	showHelp bool
	quitting bool
}

// New creates the dashboard. A reader and an importer are required.
func New(ctx context.Context, opts ...Option) (Model, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.Reader == nil {
		return Model{}, fmt.Errorf("%w: forecast reader", common.ErrMissingConfig)
	}
	if cfg.Importer == nil {
		return Model{}, fmt.Errorf("%w: sales importer", common.ErrMissingConfig)
	}

	ctx, cancel := context.WithCancel(ctx)

	signal := &refresh.Signal{}
	signal.Subscribe(func(v uint64) {
		slog.Info("Forecast data changed", "signal", v)
	})

	m := Model{
		ctx:     ctx,
		cancel:  cancel,
		signal:  signal,
		theme:   cfg.Theme,
		help:    help.New(),
		keymap:  DefaultKeyMap(),
		summary: components.NewSummaryModel(ctx, cfg.Reader, cfg.Theme),
		detail:  components.NewDetailModel(ctx, cfg.Reader, cfg.Theme),
		width:   cfg.Width,
		height:  cfg.Height,
	}

	m.upload = components.NewUploadModel(ctx, cfg.Importer, cfg.Recorder, dataChanged, cfg.Theme)
	// Help lists the bindings the upload panel actually uses.
	m.keymap.Upload = m.upload.Keys()
	if cfg.InitialFile != "" {
		m.upload = m.upload.SelectFile(cfg.InitialFile)
	}

	return m, nil
}

// dataChanged is the callback handed to the upload panel.
func dataChanged() tea.Msg {
	return dataChangedMsg{}
}

// Init mounts every panel.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.upload.Init(),
		m.summary.Init(),
		m.detail.Init(),
	)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case dataChangedMsg:
		cmd := m.notifyDataChanged()
		return m, cmd
	}

	cmd := m.updateChildren(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		return m.quit()
	}

	// The picker consumes every other key while it is open.
	if !m.upload.Picking() {
		switch {
		case key.Matches(msg, m.keymap.Quit):
			return m.quit()
		case key.Matches(msg, m.keymap.Help):
			m.showHelp = !m.showHelp
			m.help.ShowAll = m.showHelp
			return m, nil
		case key.Matches(msg, m.keymap.Refresh):
			// Re-fetch without touching the signal.
			cmd := m.broadcast(m.signal.Value())
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.upload, cmd = m.upload.Update(msg)
	return m, cmd
}

func (m *Model) updateChildren(msg tea.Msg) tea.Cmd {
	var cmds [3]tea.Cmd
	m.upload, cmds[0] = m.upload.Update(msg)
	m.summary, cmds[1] = m.summary.Update(msg)
	m.detail, cmds[2] = m.detail.Update(msg)
	return tea.Batch(cmds[:]...)
}

// notifyDataChanged bumps the refresh signal by one and tells the read-only
// panels about the new value.
func (m *Model) notifyDataChanged() tea.Cmd {
	return m.broadcast(m.signal.Notify())
}

func (m *Model) broadcast(value uint64) tea.Cmd {
	return m.updateChildren(components.RefreshMsg{Signal: value})
}

// quit disposes every panel and aborts in-flight requests.
func (m Model) quit() (Model, tea.Cmd) {
	m.quitting = true
	m.Close()
	return m, tea.Quit
}

// Close disposes the panels and cancels the shared request context. It is
// safe to call more than once.
func (m *Model) Close() {
	m.upload = m.upload.Dispose()
	m.summary = m.summary.Dispose()
	m.detail = m.detail.Dispose()
	if m.cancel != nil {
		m.cancel()
	}
}

// SelectFile selects a CSV in the upload panel.
func (m Model) SelectFile(path string) Model {
	m.upload = m.upload.SelectFile(path)
	return m
}

// Signal returns the current refresh signal value.
func (m Model) Signal() uint64 {
	return m.signal.Value()
}

// Upload returns the upload panel.
func (m Model) Upload() components.UploadModel {
	return m.upload
}

// Summary returns the summary panel.
func (m Model) Summary() components.SummaryModel {
	return m.summary
}

// Detail returns the detail panel.
func (m Model) Detail() components.DetailModel {
	return m.detail
}
