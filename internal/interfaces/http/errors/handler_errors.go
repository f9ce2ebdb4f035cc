package errors

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/ipede/app-admin-service/internal/domain/errors"
)

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details []apperrors.FieldError `json:"details,omitempty"`
}

// StatusFor maps an application error code to an HTTP status
func StatusFor(err *apperrors.AppError) int {
	switch err.Code {
	case apperrors.NotFoundError:
		return http.StatusNotFound
	case apperrors.ValidationError:
		return http.StatusBadRequest
	case apperrors.ConflictError:
		return http.StatusConflict
	case apperrors.ExternalError:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// RespondWithError sends a standardized error response. Unknown error types
// are reported as internal errors without leaking their details.
func RespondWithError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = &apperrors.AppError{Code: apperrors.InternalError, Message: "internal server error"}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(appErr))
	json.NewEncoder(w).Encode(ErrorResponse{
		Code:    appErr.Code,
		Message: appErr.Message,
		Details: appErr.Fields,
	})
}

// RespondWithValidationError sends a bad request carrying field details
func RespondWithValidationError(w http.ResponseWriter, fields ...apperrors.FieldError) {
	RespondWithError(w, apperrors.NewValidationError(fields...))
}
