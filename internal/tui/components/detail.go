package components

import (
	"context"
	"log/slog"

	"github.com/Veraticus/shawarma-forecast/internal/model"
	"github.com/Veraticus/shawarma-forecast/internal/service"
	"github.com/Veraticus/shawarma-forecast/internal/tui/themes"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// FallbackError is shown when the forecast request itself fails.
const FallbackError = "Model not trained or server error."

// DetailModel shows the full forecast breakdown.
//
// errText and forecast are never both set. Rendering prefers the error, then
// the forecast, then a loading placeholder.
type DetailModel struct {
	ctx      context.Context
	reader   service.ForecastReader
	forecast *model.ForecastResponse
	theme    themes.Theme
	errText  string
	spinner  spinner.Model
	signal   uint64
	latest   uint64
	disposed bool
}

// NewDetailModel creates the detail panel. Requests run under ctx.
func NewDetailModel(ctx context.Context, reader service.ForecastReader, theme themes.Theme) DetailModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(theme.Primary)

	return DetailModel{
		ctx:     ctx,
		reader:  reader,
		theme:   theme,
		spinner: s,
		latest:  1,
	}
}

// ResolveDetail maps a fetch outcome onto the panel state: an explicit error
// field, a forecast, or the fallback message when the request failed. A
// blank body yields neither, which renders as the loading placeholder.
func ResolveDetail(resp model.ForecastResponse, err error) (*model.ForecastResponse, string) {
	switch {
	case err != nil:
		return nil, FallbackError
	case resp.HasError():
		return nil, resp.Error
	case resp.Blank:
		return nil, ""
	default:
		return &resp, ""
	}
}

// Init issues the mount-time fetch and starts the loading spinner.
func (m DetailModel) Init() tea.Cmd {
	return tea.Batch(m.fetch(m.latest), m.spinner.Tick)
}

// Update handles messages.
func (m DetailModel) Update(msg tea.Msg) (DetailModel, tea.Cmd) {
	if m.disposed {
		return m, nil
	}

	switch msg := msg.(type) {
	case RefreshMsg:
		m.signal = msg.Signal
		m.latest++
		return m, m.fetch(m.latest)

	case detailLoadedMsg:
		if msg.token != m.latest {
			slog.Debug("Dropping stale forecast response", "token", msg.token, "latest", m.latest)
			return m, nil
		}
		if msg.err != nil {
			slog.Error("Forecast error", "error", msg.err, "signal", m.signal)
		}
		wasLoading := m.loading()
		m.forecast, m.errText = ResolveDetail(msg.forecast, msg.err)
		if m.loading() && !wasLoading {
			return m, m.spinner.Tick
		}

	case spinner.TickMsg:
		// Ticking stops once something other than the placeholder is shown.
		if m.loading() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m DetailModel) fetch(token uint64) tea.Cmd {
	ctx, reader := m.ctx, m.reader
	return func() tea.Msg {
		resp, err := reader.GetTomorrow(ctx)
		return detailLoadedMsg{token: token, forecast: resp, err: err}
	}
}

func (m DetailModel) loading() bool {
	return m.errText == "" && m.forecast == nil
}

// Dispose stops the panel from applying any further responses.
func (m DetailModel) Dispose() DetailModel {
	m.disposed = true
	return m
}

// ErrorText returns the error being displayed, or "" when there is none.
func (m DetailModel) ErrorText() string {
	return m.errText
}

// Forecast returns the forecast being displayed, or nil.
func (m DetailModel) Forecast() *model.ForecastResponse {
	return m.forecast
}

// View renders the panel.
func (m DetailModel) View() string {
	switch {
	case m.errText != "":
		return RenderDetailError(m.theme, m.errText)
	case m.forecast != nil:
		return RenderForecast(m.theme, *m.forecast)
	default:
		return m.spinner.View() + " " + m.theme.StatusPending.Render("Loading forecast...")
	}
}

// RenderDetailError renders the error line of the detail panel.
func RenderDetailError(theme themes.Theme, errText string) string {
	return theme.StatusError.Render("Error: " + errText)
}

// RenderForecast renders a forecast: heading, total, breakdown table and
// model metadata.
func RenderForecast(theme themes.Theme, f model.ForecastResponse) string {
	heading := "Tomorrow's Forecast"
	if f.Date != "" {
		heading = "Forecast for " + f.Date
	}

	total := ""
	if f.TotalPredictedQuantity != nil {
		total = formatRaw(*f.TotalPredictedQuantity)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		theme.Title.Render(heading),
		theme.Bold.Render("Total Predicted:")+" "+theme.Normal.Render(total),
		"",
		renderBreakdown(theme, f.Breakdown),
		"",
		theme.Bold.Render("Model Version:")+" "+theme.Normal.Render(f.ModelVersion),
		theme.Bold.Render("MAE (Error Margin):")+" "+theme.Normal.Render(FormatMAE(f.MAE)),
	)
}

const qtyColumn = 2

func renderBreakdown(theme themes.Theme, items []model.BreakdownItem) string {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{item.ProductName, item.Size, formatRaw(item.PredictedQuantity)})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers("Product", "Size", "Qty").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := theme.TableCell
			if row == table.HeaderRow {
				style = theme.TableHeader
			}
			if col == qtyColumn && row != table.HeaderRow {
				return style.Align(lipgloss.Right)
			}
			return style
		})

	return t.Render()
}

