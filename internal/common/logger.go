package common

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Fields represents structured logging fields.
type Fields map[string]any

// ParseLevel converts a configured level name into a slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: log level %q", ErrInvalidConfig, level)
	}
}

// NewHandler builds a text or JSON handler writing to w.
func NewHandler(w io.Writer, level slog.Level, format string) (slog.Handler, error) {
	opts := &slog.HandlerOptions{Level: level}

	switch format {
	case "json":
		return slog.NewJSONHandler(w, opts), nil
	case "console", "":
		return slog.NewTextHandler(w, opts), nil
	default:
		return nil, fmt.Errorf("%w: log format %q", ErrInvalidConfig, format)
	}
}

// SetupLogger configures the global logger to write to stderr.
func SetupLogger(level slog.Level, format string) error {
	handler, err := NewHandler(os.Stderr, level, format)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(handler))
	return nil
}

// RedirectToFile points the global logger at path so that log lines do not
// land on a terminal owned by the dashboard. The returned func closes the file.
func RedirectToFile(path string, level slog.Level, format string) (func() error, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) //nolint:gosec // path comes from config
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	handler, err := NewHandler(f, level, format)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	slog.SetDefault(slog.New(handler))

	return f.Close, nil
}

// LogError logs an error with additional context.
func LogError(err error, msg string, fields Fields) {
	attrs := make([]slog.Attr, 0, len(fields)+1)
	attrs = append(attrs, slog.String("error", err.Error()))

	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}

	slog.LogAttrs(context.Background(), slog.LevelError, msg, attrs...)
}

// LogDebug logs a debug message with fields.
func LogDebug(msg string, fields Fields) {
	attrs := make([]slog.Attr, 0, len(fields))
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}

	slog.LogAttrs(context.Background(), slog.LevelDebug, msg, attrs...)
}
