package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "without cause",
			err:      NewAppValidationError("column is not numeric"),
			expected: "[VALIDATION] column is not numeric",
		},
		{
			name:     "with cause",
			err:      NewStorageError("failed to open dataset", fmt.Errorf("permission denied")),
			expected: "[STORAGE] failed to open dataset: permission denied",
		},
		{
			name:     "column not found",
			err:      NewColumnNotFoundError("price", nil),
			expected: `[NOT_FOUND] column "price" not found`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("unknown column name")
	err := NewColumnNotFoundError("price", cause)

	assert.True(t, errors.Is(err, cause))

	wrapped := fmt.Errorf("histograms: %w", err)
	var appErr *AppError
	require.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, ErrTypeNotFound, appErr.Type)
	assert.Equal(t, "price", appErr.Context["column"])
}

func TestIsType(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		errType ErrorType
		want    bool
	}{
		{"matching type", NewRenderError("encode png", nil), ErrTypeRender, true},
		{"wrapped matching type", fmt.Errorf("outer: %w", NewParsingError("bad csv", nil)), ErrTypeParsing, true},
		{"different type", NewConfigError("bad port", nil), ErrTypeStorage, false},
		{"plain error", errors.New("boom"), ErrTypeNotFound, false},
		{"nil error", nil, ErrTypeNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsType(tt.err, tt.errType))
		})
	}
}

func TestWithContext_InitializesMap(t *testing.T) {
	err := &AppError{Type: ErrTypeStorage, Message: "write failed"}
	err.WithContext("path", "/tmp/out.csv").WithContext("rows", 3)

	assert.Equal(t, "/tmp/out.csv", err.Context["path"])
	assert.Equal(t, 3, err.Context["rows"])
}
