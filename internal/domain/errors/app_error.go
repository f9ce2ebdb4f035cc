package apperrors

import "fmt"

// AppError represents an application error
// @Description An application error with a code, message and optional field details
type AppError struct {
	Message string       `json:"message"`
	Details string       `json:"details,omitempty"`
	Code    string       `json:"code"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// FieldError represents a single field-level rule violation
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error types
const (
	ValidationError = "VALIDATION_ERROR"
	NotFoundError   = "NOT_FOUND"
	ConflictError   = "CONFLICT"
	InternalError   = "INTERNAL_ERROR"
	ExternalError   = "EXTERNAL_DEPENDENCY_ERROR"
)

// Error returns the error message
func (e *AppError) Error() string {
	return e.Message
}

// NewValidationError creates a new validation error aggregating field violations
func NewValidationError(fields ...FieldError) *AppError {
	return &AppError{
		Message: "validation failed",
		Code:    ValidationError,
		Fields:  fields,
	}
}

// NewNotFoundError creates a new not found error for an entity type and id
func NewNotFoundError(entityType, id string) *AppError {
	return &AppError{
		Message: fmt.Sprintf("%s with id %s not found", entityType, id),
		Code:    NotFoundError,
	}
}

// NewConflictError creates a new conflict error naming the blocking rule
func NewConflictError(field, message string) *AppError {
	return &AppError{
		Message: message,
		Code:    ConflictError,
		Fields:  []FieldError{{Field: field, Message: message}},
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Message: message,
		Details: err.Error(),
		Code:    InternalError,
	}
}

// NewExternalError creates a new external dependency error
func NewExternalError(message string, err error) *AppError {
	return &AppError{
		Message: message,
		Details: err.Error(),
		Code:    ExternalError,
	}
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return fmt.Errorf("%s: %s", e.Code, e.Message)
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == ValidationError
	}
	return false
}

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == NotFoundError
	}
	return false
}

// IsConflictError checks if the error is a conflict error
func IsConflictError(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == ConflictError
	}
	return false
}

// IsInternalError checks if the error is an internal error
func IsInternalError(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == InternalError
	}
	return false
}

// IsExternalError checks if the error is an external dependency error
func IsExternalError(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == ExternalError
	}
	return false
}
