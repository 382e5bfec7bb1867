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
		name        string
		appError    *AppError
		wantMessage string
	}{
		{
			name: "error without cause",
			appError: &AppError{
				Type:    ErrTypeNotFound,
				Message: "sales_data.csv not found",
			},
			wantMessage: "[NOT_FOUND] sales_data.csv not found",
		},
		{
			name: "error with cause",
			appError: &AppError{
				Type:    ErrTypeParsing,
				Message: "invalid Date in row 4",
				Cause:   fmt.Errorf("unsupported layout"),
			},
			wantMessage: "[PARSING] invalid Date in row 4: unsupported layout",
		},
		{
			name: "error with empty message",
			appError: &AppError{
				Type: ErrTypeValidation,
			},
			wantMessage: "[VALIDATION] ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMessage, tt.appError.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := NewStorageError("insert failed", cause)

	assert.Same(t, cause, err.Unwrap())
	assert.True(t, errors.Is(err, cause))
	assert.Nil(t, NewAppValidationError("bad").Unwrap())
}

func TestAppError_WithContext(t *testing.T) {
	t.Run("nil context is initialized", func(t *testing.T) {
		appError := &AppError{Type: ErrTypeStorage, Message: "Test error"}

		result := appError.WithContext("table", "sales_data")

		assert.Same(t, appError, result)
		require.NotNil(t, result.Context)
		assert.Equal(t, "sales_data", result.Context["table"])
	})

	t.Run("existing context is extended", func(t *testing.T) {
		appError := &AppError{
			Type:    ErrTypeValidation,
			Message: "Validation error",
			Context: map[string]interface{}{"field": "UnitsMax"},
		}

		appError.WithContext("value", 0)

		assert.Len(t, appError.Context, 2)
		assert.Equal(t, 0, appError.Context["value"])
	})
}

func TestConstructors(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
		wantMsg  string
	}{
		{"parsing", NewParsingError("bad number", cause), ErrTypeParsing, "bad number"},
		{"storage", NewStorageError("insert failed", cause), ErrTypeStorage, "insert failed"},
		{"validation", NewAppValidationError("bounds inverted"), ErrTypeValidation, "bounds inverted"},
		{"not found", NewNotFoundError("customer_data.csv"), ErrTypeNotFound, "customer_data.csv not found"},
		{"config", NewConfigError("invalid config", cause), ErrTypeConfig, "invalid config"},
		{"render", NewRenderError("top_products.png", cause), ErrTypeRender, "failed to render top_products.png"},
		{"export", NewExportError("customer_rfm.csv", cause), ErrTypeExport, "failed to export customer_rfm.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, tt.wantMsg, tt.err.Message)
			assert.NotNil(t, tt.err.Context)
		})
	}
}

func TestNewSchemaError(t *testing.T) {
	err := NewSchemaError("sales", "Unit_Price")

	assert.Equal(t, ErrTypeSchema, err.Type)
	assert.Equal(t, `[SCHEMA] table "sales" has no column "Unit_Price"`, err.Error())
	assert.Equal(t, "sales", err.Context["table"])
	assert.Equal(t, "Unit_Price", err.Context["column"])
}

func TestIsTypeAndTypeOf(t *testing.T) {
	wrapped := fmt.Errorf("load step: %w", NewParsingError("bad date", nil))

	assert.True(t, IsType(wrapped, ErrTypeParsing))
	assert.False(t, IsType(wrapped, ErrTypeStorage))
	assert.Equal(t, ErrTypeParsing, TypeOf(wrapped))

	plain := errors.New("plain")
	assert.False(t, IsType(plain, ErrTypeParsing))
	assert.Equal(t, ErrorType(""), TypeOf(plain))
}
