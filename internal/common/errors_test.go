package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserError(t *testing.T) {
	err := NewUserError("No such file: sales.csv", ErrNoFileSelected)
	assert.Equal(t, "No such file: sales.csv: no file selected", err.Error())
	assert.ErrorIs(t, err, ErrNoFileSelected)

	bare := NewUserError("Upload failed", nil)
	assert.Equal(t, "Upload failed", bare.Error())

	base := errors.New("boom")
	wrapped := NewUserError("Upload failed", base)
	assert.Equal(t, "Upload failed: boom", wrapped.Error())
	assert.ErrorIs(t, wrapped, base)

	msg, ok := UserMessage(wrapped)
	assert.True(t, ok)
	assert.Equal(t, "Upload failed", msg)

	_, ok = UserMessage(base)
	assert.False(t, ok)
}

func TestUserMessage(t *testing.T) {
	wrapped := fmt.Errorf("upload: %w", NewUserError("Error: Missing column: quantity", ErrUploadFailed))

	msg, ok := UserMessage(wrapped)
	assert.True(t, ok)
	assert.Equal(t, "Error: Missing column: quantity", msg)

	_, ok = UserMessage(errors.New("plain"))
	assert.False(t, ok)
}
