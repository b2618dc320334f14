package components

import (
	"context"
	"errors"
	"testing"

	"github.com/Veraticus/shawarma-forecast/internal/model"
	"github.com/Veraticus/shawarma-forecast/internal/tui/themes"
	"github.com/Veraticus/shawarma-forecast/internal/tui/tuitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryModel_InitLoadsTotal(t *testing.T) {
	reader := &fakeReader{resp: model.ForecastResponse{TotalPredictedQuantity: floatPtr(1234)}}
	m := NewSummaryModel(context.Background(), reader, themes.Default)

	assert.Equal(t, 0.0, m.Value())

	msgs := tuitest.Collect(m.Init())
	require.Len(t, msgs, 1)
	m, cmd := m.Update(msgs[0])

	assert.Nil(t, cmd)
	assert.Equal(t, 1234.0, m.Value())
	assert.Equal(t, 1, reader.Calls())
	assert.Contains(t, m.View(), "Tomorrow's Prediction:")
	assert.Contains(t, m.View(), "1,234 items")
}

func TestSummaryValue(t *testing.T) {
	tests := []struct {
		name string
		resp model.ForecastResponse
		want float64
	}{
		{name: "total present", resp: model.ForecastResponse{TotalPredictedQuantity: floatPtr(88.5)}, want: 88.5},
		{name: "total absent", resp: model.ForecastResponse{}, want: 0},
		{name: "error body", resp: model.ForecastResponse{Error: "Model not trained yet"}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SummaryValue(tt.resp))
		})
	}
}

func TestSummaryModel_FailureKeepsPreviousValue(t *testing.T) {
	reader := &fakeReader{resp: model.ForecastResponse{TotalPredictedQuantity: floatPtr(40)}}
	m := NewSummaryModel(context.Background(), reader, themes.Default)

	m, _ = m.Update(tuitest.Collect(m.Init())[0])
	require.Equal(t, 40.0, m.Value())

	reader.set(model.ForecastResponse{}, errors.New("connection refused"))
	m, cmd := m.Update(RefreshMsg{Signal: 1})
	require.NotNil(t, cmd)
	m, _ = m.Update(tuitest.Collect(cmd)[0])

	assert.Equal(t, 40.0, m.Value())
	assert.NotContains(t, m.View(), "connection refused")
}

func TestSummaryModel_RefreshRefetches(t *testing.T) {
	reader := &fakeReader{resp: model.ForecastResponse{TotalPredictedQuantity: floatPtr(10)}}
	m := NewSummaryModel(context.Background(), reader, themes.Default)
	m, _ = m.Update(tuitest.Collect(m.Init())[0])

	reader.set(model.ForecastResponse{TotalPredictedQuantity: floatPtr(25)}, nil)
	m, cmd := m.Update(RefreshMsg{Signal: 1})
	m, _ = m.Update(tuitest.Collect(cmd)[0])

	assert.Equal(t, 25.0, m.Value())
	assert.Equal(t, 2, reader.Calls())
}

func TestSummaryModel_DropsStaleResponse(t *testing.T) {
	reader := &fakeReader{resp: model.ForecastResponse{TotalPredictedQuantity: floatPtr(1)}}
	m := NewSummaryModel(context.Background(), reader, themes.Default)

	initial := tuitest.Collect(m.Init())

	reader.set(model.ForecastResponse{TotalPredictedQuantity: floatPtr(2)}, nil)
	m, cmd := m.Update(RefreshMsg{Signal: 1})
	latest := tuitest.Collect(cmd)

	// The newer response lands first; the mount-time one must not overwrite it.
	m, _ = m.Update(latest[0])
	m, _ = m.Update(initial[0])

	assert.Equal(t, 2.0, m.Value())
}

func TestSummaryModel_DisposeIgnoresResponses(t *testing.T) {
	reader := &fakeReader{resp: model.ForecastResponse{TotalPredictedQuantity: floatPtr(7)}}
	m := NewSummaryModel(context.Background(), reader, themes.Default)

	pending := tuitest.Collect(m.Init())
	m = m.Dispose()
	m, cmd := m.Update(pending[0])
	assert.Nil(t, cmd)
	assert.Equal(t, 0.0, m.Value())

	m, cmd = m.Update(RefreshMsg{Signal: 1})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, reader.Calls())
}
