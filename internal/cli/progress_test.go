package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressReader(t *testing.T) {
	payload := strings.Repeat("2024-03-01,Chicken Shawarma,Large,14,3\n", 100)
	var out bytes.Buffer

	bar := NewUploadBar(&out, int64(len(payload)), "sales.csv")
	data, err := io.ReadAll(ProgressReader(strings.NewReader(payload), bar))

	require.NoError(t, err)
	assert.Equal(t, payload, string(data))
	assert.True(t, bar.IsFinished())
	assert.Contains(t, out.String(), "Uploading sales.csv")
}

func TestFormatHelpers(t *testing.T) {
	assert.Contains(t, FormatSuccess("done"), "✓ done")
	assert.Contains(t, FormatError("failed"), "✗ failed")
	assert.Contains(t, FormatTitle("Forecast"), "Forecast")
	assert.Contains(t, RenderBox("Title", "body"), "body")
}
