// Package model holds the data shapes exchanged with the forecasting service.
package model

import (
	"encoding/json"
)

// BreakdownItem is the predicted quantity for one product and size.
type BreakdownItem struct {
	ProductName       string  `json:"product_name"`
	Size              string  `json:"size"`
	PredictedQuantity float64 `json:"predicted_quantity"`
}

// ForecastResponse is the body of GET /forecast/tomorrow.
//
// Optional numeric fields are pointers so callers can tell an absent value
// from a zero one. Error is set when the service answers 200 with an
// application-level error instead of a forecast. Blank is set when the
// body was empty or JSON null, which carries no forecast at all.
type ForecastResponse struct {
	TotalPredictedQuantity *float64        `json:"total_predicted_quantity,omitempty"`
	MAE                    *float64        `json:"mae,omitempty"`
	Date                   string          `json:"date,omitempty"`
	ModelVersion           string          `json:"model_version,omitempty"`
	Error                  string          `json:"error,omitempty"`
	Breakdown              []BreakdownItem `json:"breakdown,omitempty"`
	Blank                  bool            `json:"-"`
}

// HasError reports whether the body carried an explicit error message.
func (f ForecastResponse) HasError() bool {
	return f.Error != ""
}

// Total returns the predicted quantity, or 0 when the field was absent.
func (f ForecastResponse) Total() float64 {
	if f.TotalPredictedQuantity == nil {
		return 0
	}
	return *f.TotalPredictedQuantity
}

// ErrorMargin returns the mean absolute error, or 0 when absent.
func (f ForecastResponse) ErrorMargin() float64 {
	if f.MAE == nil {
		return 0
	}
	return *f.MAE
}

// UnmarshalJSON decodes field by field. A field with an unexpected type is
// treated as absent rather than failing the whole body.
func (f *ForecastResponse) UnmarshalJSON(data []byte) error {
	*f = ForecastResponse{}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		// Not an object: nothing usable, every field stays absent.
		return nil //nolint:nilerr // malformed bodies decode to the zero response
	}

	f.TotalPredictedQuantity = decodeNumber(fields, "total_predicted_quantity")
	f.MAE = decodeNumber(fields, "mae")
	decodeString(fields, "date", &f.Date)
	decodeString(fields, "model_version", &f.ModelVersion)
	decodeString(fields, "error", &f.Error)

	if raw, ok := fields["breakdown"]; ok {
		var items []BreakdownItem
		if json.Unmarshal(raw, &items) == nil {
			f.Breakdown = items
		}
	}

	return nil
}

func decodeNumber(fields map[string]json.RawMessage, key string) *float64 {
	raw, ok := fields[key]
	if !ok || string(raw) == "null" {
		return nil
	}
	var n float64
	if json.Unmarshal(raw, &n) != nil {
		return nil
	}
	return &n
}

func decodeString(fields map[string]json.RawMessage, key string, dst *string) {
	raw, ok := fields[key]
	if !ok {
		return
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		*dst = s
	}
}
