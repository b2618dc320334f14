package components

import (
	"context"
	"log/slog"

	"github.com/Veraticus/shawarma-forecast/internal/model"
	"github.com/Veraticus/shawarma-forecast/internal/service"
	"github.com/Veraticus/shawarma-forecast/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SummaryModel shows tomorrow's total predicted quantity.
//
// Failures never reach the screen: they are logged and the panel keeps the
// last value it had (0 before the first success).
type SummaryModel struct {
	ctx      context.Context
	reader   service.ForecastReader
	theme    themes.Theme
	value    float64
	signal   uint64
	latest   uint64
	disposed bool
}

// NewSummaryModel creates the summary panel. Requests run under ctx.
func NewSummaryModel(ctx context.Context, reader service.ForecastReader, theme themes.Theme) SummaryModel {
	return SummaryModel{
		ctx:    ctx,
		reader: reader,
		theme:  theme,
		latest: 1,
	}
}

// SummaryValue picks the displayed figure out of a response, substituting 0
// for an absent or malformed total.
func SummaryValue(resp model.ForecastResponse) float64 {
	return resp.Total()
}

// Init issues the mount-time fetch.
func (m SummaryModel) Init() tea.Cmd {
	return m.fetch(m.latest)
}

// Update handles messages.
func (m SummaryModel) Update(msg tea.Msg) (SummaryModel, tea.Cmd) {
	if m.disposed {
		return m, nil
	}

	switch msg := msg.(type) {
	case RefreshMsg:
		m.signal = msg.Signal
		m.latest++
		return m, m.fetch(m.latest)

	case summaryLoadedMsg:
		if msg.token != m.latest {
			slog.Debug("Dropping stale summary response", "token", msg.token, "latest", m.latest)
			return m, nil
		}
		if msg.err != nil {
			slog.Error("Error fetching forecast", "error", msg.err, "signal", m.signal)
			return m, nil
		}
		m.value = msg.value
	}

	return m, nil
}

func (m SummaryModel) fetch(token uint64) tea.Cmd {
	ctx, reader := m.ctx, m.reader
	return func() tea.Msg {
		resp, err := reader.GetTomorrow(ctx)
		if err != nil {
			return summaryLoadedMsg{token: token, err: err}
		}
		return summaryLoadedMsg{token: token, value: SummaryValue(resp)}
	}
}

// Dispose stops the panel from applying any further responses.
func (m SummaryModel) Dispose() SummaryModel {
	m.disposed = true
	return m
}

// Value returns the displayed quantity.
func (m SummaryModel) Value() float64 {
	return m.value
}

// View renders the panel.
func (m SummaryModel) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Bold.Render("Tomorrow's Prediction:"),
		m.theme.Figure.Render(FormatQuantity(m.value))+m.theme.Normal.Render(" items"),
	)
}
