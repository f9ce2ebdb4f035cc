package apperrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("App", "01HX")
	assert.Equal(t, "App with id 01HX not found", err.Message)
	assert.Equal(t, NotFoundError, err.Code)
	assert.True(t, IsNotFoundError(err))
	assert.False(t, IsValidationError(err))
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError(
		FieldError{Field: "name", Message: "Required"},
		FieldError{Field: "description", Message: "Exceeds maximum length of 140 characters"},
	)
	assert.Equal(t, ValidationError, err.Code)
	assert.Len(t, err.Fields, 2)
	assert.True(t, IsValidationError(err))
}

func TestNewConflictError(t *testing.T) {
	err := NewConflictError("ClientsPreventingDelete", "application owns 2 active clients")
	assert.Equal(t, ConflictError, err.Code)
	assert.Equal(t, "application owns 2 active clients", err.Message)
	assert.Len(t, err.Fields, 1)
	assert.Equal(t, "ClientsPreventingDelete", err.Fields[0].Field)
	assert.True(t, IsConflictError(err))
}

func TestWrappedErrorsCarryDetails(t *testing.T) {
	cause := errors.New("connection refused")

	internal := NewInternalError("failed to save app", cause)
	assert.Equal(t, InternalError, internal.Code)
	assert.Equal(t, "connection refused", internal.Details)
	assert.True(t, IsInternalError(internal))

	external := NewExternalError("failed to delete client at identity provider", cause)
	assert.Equal(t, ExternalError, external.Code)
	assert.True(t, IsExternalError(external))
	assert.False(t, IsInternalError(external))
}

func TestCheckersRejectForeignErrors(t *testing.T) {
	err := errors.New("plain error")
	assert.False(t, IsValidationError(err))
	assert.False(t, IsNotFoundError(err))
	assert.False(t, IsConflictError(err))
	assert.False(t, IsInternalError(err))
	assert.False(t, IsExternalError(err))
}
