package common

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    slog.Level
		wantErr bool
	}{
		{name: "debug", input: "debug", want: slog.LevelDebug},
		{name: "info", input: "info", want: slog.LevelInfo},
		{name: "empty defaults to info", input: "", want: slog.LevelInfo},
		{name: "warn", input: "warn", want: slog.LevelWarn},
		{name: "error", input: "error", want: slog.LevelError},
		{name: "unknown", input: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHandler(t *testing.T) {
	var buf bytes.Buffer

	h, err := NewHandler(&buf, slog.LevelInfo, "json")
	require.NoError(t, err)
	slog.New(h).Info("hello", "k", "v")
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	_, err = NewHandler(&buf, slog.LevelInfo, "xml")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestRedirectToFile(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	path := filepath.Join(t.TempDir(), "logs", "forecast.log")
	closeFn, err := RedirectToFile(path, slog.LevelDebug, "console")
	require.NoError(t, err)

	LogDebug("written to file", Fields{"signal": 3})
	require.NoError(t, closeFn())
	assert.FileExists(t, path)
}
