// Package forecastapi is the HTTP client for the point-of-sale forecasting
// service. Every call is attempted exactly once: there are no retries,
// backoff, or client-side timeouts. Only the caller's context ends a request.
package forecastapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/Veraticus/shawarma-forecast/internal/model"
	"github.com/google/uuid"
)

// DefaultBaseURL is where the forecasting service listens unless configured otherwise.
const DefaultBaseURL = "http://localhost:8000"

const (
	forecastPath = "/forecast/tomorrow"
	importPath   = "/sales/import-csv"
	modelsPath   = "/models"

	// uploadField is the multipart field the service reads the CSV from.
	uploadField = "file"

	requestIDHeader = "X-Request-ID"
)

// Client talks to the forecasting service.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		// No Timeout: requests run until they finish or the context ends.
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the service root this client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetTomorrow fetches tomorrow's forecast.
//
// A 2xx body that cannot be decoded yields the zero response and no error;
// callers substitute defaults for whatever is missing.
func (c *Client) GetTomorrow(ctx context.Context) (model.ForecastResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+forecastPath, nil)
	if err != nil {
		return model.ForecastResponse{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.ForecastResponse{}, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp, ""); err != nil {
		return model.ForecastResponse{}, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.ForecastResponse{}, fmt.Errorf("%w: reading body: %w", ErrTransport, err)
	}

	if trimmed := bytes.TrimSpace(body); len(trimmed) == 0 || string(trimmed) == "null" {
		return model.ForecastResponse{Blank: true}, nil
	}

	var forecast model.ForecastResponse
	if err := json.Unmarshal(body, &forecast); err != nil {
		slog.Debug("Forecast body was not JSON, using empty forecast", "error", err, "bytes", len(body))
		return model.ForecastResponse{}, nil
	}

	return forecast, nil
}

// ImportCSV uploads one CSV file as the multipart field "file". The body is
// streamed from r, so r may be a progress-reporting reader.
func (c *Client) ImportCSV(ctx context.Context, filename string, r io.Reader) (model.ImportResult, error) {
	requestID := uuid.NewString()

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile(uploadField, filename)
		if err != nil {
			_ = pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, r); err != nil {
			_ = pw.CloseWithError(err)
			return
		}
		_ = pw.CloseWithError(mw.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+importPath, pr)
	if err != nil {
		_ = pr.CloseWithError(err)
		return model.ImportResult{RequestID: requestID}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)

	slog.Debug("Uploading sales CSV", "filename", filename, "request_id", requestID)

	resp, err := c.httpClient.Do(req)
	// Unblocks the writer goroutine if the transport stopped reading early.
	_ = pr.CloseWithError(io.ErrClosedPipe)
	if err != nil {
		return model.ImportResult{RequestID: requestID}, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp, requestID); err != nil {
		return model.ImportResult{RequestID: requestID}, err
	}

	var result model.ImportResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil && err != io.EOF {
		slog.Debug("Import body was not JSON", "error", err, "request_id", requestID)
	}
	result.RequestID = requestID

	return result, nil
}

// ListModels returns the trained model versions known to the service.
func (c *Client) ListModels(ctx context.Context) ([]model.ModelVersion, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+modelsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp, ""); err != nil {
		return nil, err
	}

	var versions []model.ModelVersion
	if err := json.NewDecoder(resp.Body).Decode(&versions); err != nil {
		return nil, fmt.Errorf("failed to decode models: %w", err)
	}
	return versions, nil
}

// checkStatus converts a non-2xx response into an *APIError, picking up the
// service's {"detail": "..."} body when there is one.
func checkStatus(resp *http.Response, requestID string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode, RequestID: requestID}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if json.Unmarshal(body, &payload) == nil && len(payload.Detail) > 0 {
		var detail string
		if json.Unmarshal(payload.Detail, &detail) == nil {
			apiErr.Detail = detail
		} else if string(payload.Detail) != "null" {
			// Validation errors arrive as a list of objects; keep them verbatim.
			apiErr.Detail = string(payload.Detail)
		}
	}

	return apiErr
}
