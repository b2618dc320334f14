package forecastapi

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrTransport marks failures where no HTTP response was received.
var ErrTransport = errors.New("forecast service unreachable")

// APIError is a non-2xx answer from the forecast service.
type APIError struct {
	Detail     string
	RequestID  string
	StatusCode int
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("forecast service error: %d %s - %s", e.StatusCode, http.StatusText(e.StatusCode), e.Detail)
	}
	return fmt.Sprintf("forecast service error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// DetailOf returns the server-reported detail carried by err, if any.
func DetailOf(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail, true
	}
	return "", false
}

// IsTransport reports whether err is a transport-level failure.
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}
