package components

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Veraticus/shawarma-forecast/internal/model"
	"github.com/Veraticus/shawarma-forecast/internal/tui/themes"
	"github.com/Veraticus/shawarma-forecast/internal/tui/tuitest"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadedDetail(t *testing.T, msgs []tea.Msg) detailLoadedMsg {
	t.Helper()
	for _, msg := range msgs {
		if loaded, ok := msg.(detailLoadedMsg); ok {
			return loaded
		}
	}
	require.FailNow(t, "no detailLoadedMsg produced")
	return detailLoadedMsg{}
}

func mountDetail(t *testing.T, reader *fakeReader) DetailModel {
	t.Helper()
	m := NewDetailModel(context.Background(), reader, themes.Default)
	m, _ = m.Update(loadedDetail(t, tuitest.Collect(m.Init())))
	return m
}

func sampleForecast() model.ForecastResponse {
	return model.ForecastResponse{
		TotalPredictedQuantity: floatPtr(180),
		Date:                   "2024-03-02",
		ModelVersion:           "v3",
		MAE:                    floatPtr(2.5),
		Breakdown: []model.BreakdownItem{
			{ProductName: "Chicken", Size: "L", PredictedQuantity: 60},
			{ProductName: "Beef", Size: "M", PredictedQuantity: 120},
		},
	}
}

func TestDetailModel_LoadingPlaceholder(t *testing.T) {
	m := NewDetailModel(context.Background(), &fakeReader{}, themes.Default)

	assert.Contains(t, m.View(), "Loading forecast...")
	assert.Nil(t, m.Forecast())
	assert.Empty(t, m.ErrorText())
}

func TestDetailModel_ErrorField(t *testing.T) {
	m := mountDetail(t, &fakeReader{resp: model.ForecastResponse{Error: "no model"}})

	assert.Equal(t, "Error: no model", m.View())
	assert.Nil(t, m.Forecast())
	assert.NotContains(t, m.View(), "Product")
}

func TestDetailModel_RequestFailure(t *testing.T) {
	m := mountDetail(t, &fakeReader{err: errors.New("dial tcp: connection refused")})

	assert.Equal(t, FallbackError, m.ErrorText())
	assert.Equal(t, "Error: Model not trained or server error.", m.View())
}

func TestDetailModel_RendersBreakdown(t *testing.T) {
	m := mountDetail(t, &fakeReader{resp: sampleForecast()})
	view := m.View()

	assert.Contains(t, view, "Forecast for 2024-03-02")
	assert.Contains(t, view, "Total Predicted: 180")
	assert.Contains(t, view, "Model Version: v3")
	assert.Contains(t, view, "MAE (Error Margin): 2.5000")

	lines := strings.Split(view, "\n")
	chicken, beef := -1, -1
	for i, line := range lines {
		switch {
		case strings.Contains(line, "Chicken"):
			chicken = i
			// Qty is right-aligned under a three-wide header.
			assert.Contains(t, line, "  60 │")
		case strings.Contains(line, "Beef"):
			beef = i
			assert.Contains(t, line, " 120 │")
		}
	}
	require.NotEqual(t, -1, chicken)
	require.NotEqual(t, -1, beef)
	assert.Less(t, chicken, beef, "rows keep response order")
}

func TestDetailModel_MissingMAEShowsZero(t *testing.T) {
	resp := sampleForecast()
	resp.MAE = nil
	m := mountDetail(t, &fakeReader{resp: resp})

	assert.Contains(t, m.View(), "MAE (Error Margin): 0")
}

func TestDetailModel_HeadingWithoutDate(t *testing.T) {
	resp := sampleForecast()
	resp.Date = ""
	m := mountDetail(t, &fakeReader{resp: resp})

	assert.Contains(t, m.View(), "Tomorrow's Forecast")
}

func TestDetailModel_ErrorClearedBySuccess(t *testing.T) {
	reader := &fakeReader{resp: model.ForecastResponse{Error: "Model not trained yet"}}
	m := mountDetail(t, reader)
	require.Equal(t, "Model not trained yet", m.ErrorText())

	reader.set(sampleForecast(), nil)
	m, cmd := m.Update(RefreshMsg{Signal: 1})
	m, _ = m.Update(loadedDetail(t, tuitest.Collect(cmd)))

	assert.Empty(t, m.ErrorText())
	require.NotNil(t, m.Forecast())
	assert.Equal(t, "v3", m.Forecast().ModelVersion)
}

func TestDetailModel_ForecastReplacedByError(t *testing.T) {
	reader := &fakeReader{resp: sampleForecast()}
	m := mountDetail(t, reader)
	require.NotNil(t, m.Forecast())

	reader.set(model.ForecastResponse{}, errors.New("boom"))
	m, cmd := m.Update(RefreshMsg{Signal: 1})
	m, _ = m.Update(loadedDetail(t, tuitest.Collect(cmd)))

	assert.Nil(t, m.Forecast())
	assert.Equal(t, "Error: "+FallbackError, m.View())
}

func TestDetailModel_DropsStaleResponse(t *testing.T) {
	reader := &fakeReader{resp: model.ForecastResponse{Error: "Model not trained yet"}}
	m := NewDetailModel(context.Background(), reader, themes.Default)
	initial := loadedDetail(t, tuitest.Collect(m.Init()))

	reader.set(sampleForecast(), nil)
	m, cmd := m.Update(RefreshMsg{Signal: 1})
	m, _ = m.Update(loadedDetail(t, tuitest.Collect(cmd)))
	m, _ = m.Update(initial)

	require.NotNil(t, m.Forecast())
	assert.Empty(t, m.ErrorText())
}

func TestDetailModel_DisposeIgnoresResponses(t *testing.T) {
	m := NewDetailModel(context.Background(), &fakeReader{resp: sampleForecast()}, themes.Default)
	pending := loadedDetail(t, tuitest.Collect(m.Init()))

	m = m.Dispose()
	m, _ = m.Update(pending)

	assert.Nil(t, m.Forecast())
	assert.Contains(t, m.View(), "Loading forecast...")
}

func TestDetailModel_SpinnerStopsAfterLoad(t *testing.T) {
	m := mountDetail(t, &fakeReader{resp: sampleForecast()})

	_, cmd := m.Update(spinner.TickMsg{})
	assert.Nil(t, cmd)
}

func TestResolveDetail(t *testing.T) {
	f, errText := ResolveDetail(model.ForecastResponse{}, nil)
	require.NotNil(t, f)
	assert.Empty(t, errText)

	f, errText = ResolveDetail(model.ForecastResponse{Error: "x"}, nil)
	assert.Nil(t, f)
	assert.Equal(t, "x", errText)

	f, errText = ResolveDetail(sampleForecast(), errors.New("down"))
	assert.Nil(t, f)
	assert.Equal(t, FallbackError, errText)

	f, errText = ResolveDetail(model.ForecastResponse{Blank: true}, nil)
	assert.Nil(t, f)
	assert.Empty(t, errText)
}

func TestDetailModel_BlankBodyKeepsPlaceholder(t *testing.T) {
	reader := &fakeReader{resp: model.ForecastResponse{Blank: true}}
	m := mountDetail(t, reader)

	assert.Nil(t, m.Forecast())
	assert.Empty(t, m.ErrorText())
	assert.Contains(t, m.View(), "Loading forecast...")

	reader.set(sampleForecast(), nil)
	m, cmd := m.Update(RefreshMsg{Signal: 1})
	m, _ = m.Update(loadedDetail(t, tuitest.Collect(cmd)))
	require.NotNil(t, m.Forecast())

	// Going back to blank shows the placeholder and restarts the spinner.
	reader.set(model.ForecastResponse{Blank: true}, nil)
	m, cmd = m.Update(RefreshMsg{Signal: 2})
	m, cmd = m.Update(loadedDetail(t, tuitest.Collect(cmd)))
	assert.Nil(t, m.Forecast())
	assert.Contains(t, m.View(), "Loading forecast...")
	assert.NotNil(t, cmd)
}
