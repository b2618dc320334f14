package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/shawarma-forecast/internal/model"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrInvalidRecord = errors.New("invalid upload record")
	ErrInvalidLimit  = errors.New("limit must not be negative")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateUploadRecord checks the fields the journal requires.
func validateUploadRecord(r model.UploadRecord) error {
	if strings.TrimSpace(r.Filename) == "" {
		return fmt.Errorf("%w: filename is required", ErrInvalidRecord)
	}
	if r.StartedAt.IsZero() || r.FinishedAt.IsZero() {
		return fmt.Errorf("%w: start and finish times are required", ErrInvalidRecord)
	}
	if r.FinishedAt.Before(r.StartedAt) {
		return fmt.Errorf("%w: finished before it started", ErrInvalidRecord)
	}
	return nil
}
