// Package service defines the interfaces the dashboard panels depend on.
package service

import (
	"context"
	"io"

	"github.com/Veraticus/shawarma-forecast/internal/model"
)

// ForecastReader fetches the current forecast.
type ForecastReader interface {
	GetTomorrow(ctx context.Context) (model.ForecastResponse, error)
}

// SalesImporter uploads a sales CSV to the forecasting service.
type SalesImporter interface {
	ImportCSV(ctx context.Context, filename string, r io.Reader) (model.ImportResult, error)
}

// ModelLister lists trained model versions.
type ModelLister interface {
	ListModels(ctx context.Context) ([]model.ModelVersion, error)
}

// UploadRecorder keeps an audit trail of upload attempts.
type UploadRecorder interface {
	RecordUpload(ctx context.Context, record model.UploadRecord) error
}

// UploadJournal reads and writes the upload audit trail.
type UploadJournal interface {
	UploadRecorder
	ListUploads(ctx context.Context, limit int) ([]model.UploadRecord, error)
	Migrate(ctx context.Context) error
	Close() error
}
