package components

import "github.com/Veraticus/shawarma-forecast/internal/model"

// RefreshMsg tells a read-only panel that the shared refresh signal changed.
// Panels re-fetch on every RefreshMsg they receive.
type RefreshMsg struct {
	Signal uint64
}

// summaryLoadedMsg carries the outcome of one summary fetch.
type summaryLoadedMsg struct {
	err   error
	value float64
	token uint64
}

// detailLoadedMsg carries the outcome of one detail fetch.
type detailLoadedMsg struct {
	err      error
	forecast model.ForecastResponse
	token    uint64
}

// uploadFinishedMsg carries the outcome of one upload attempt.
type uploadFinishedMsg struct {
	err    error
	path   string
	result model.ImportResult
	token  uint64
}
