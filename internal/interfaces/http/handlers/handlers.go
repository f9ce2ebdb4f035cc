package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/ipede/app-admin-service/internal/domain/errors"
	httperrors "github.com/ipede/app-admin-service/internal/interfaces/http/errors"
)

const defaultPageSize = 50

var validate = validator.New()

// decodeRequest decodes and validates a JSON request body. It writes the
// error response itself and reports whether the handler should continue.
func decodeRequest(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		httperrors.RespondWithValidationError(w, apperrors.FieldError{Field: "body", Message: "invalid request body"})
		return false
	}
	if err := validate.Struct(req); err != nil {
		var fields []apperrors.FieldError
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, verr := range verrs {
				fields = append(fields, apperrors.FieldError{Field: verr.Field(), Message: "failed on " + verr.Tag()})
			}
		}
		httperrors.RespondWithValidationError(w, fields...)
		return false
	}
	return true
}

// parsePageParams reads the cursor and page_size query parameters. The
// cursor defaults to 0 ("from start"); range checks happen in the services.
func parsePageParams(r *http.Request) (int64, int, *apperrors.AppError) {
	cursor := int64(0)
	if raw := r.URL.Query().Get("cursor"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, 0, apperrors.NewValidationError(apperrors.FieldError{Field: "cursor", Message: "must be an integer"})
		}
		cursor = parsed
	}

	pageSize := defaultPageSize
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, apperrors.NewValidationError(apperrors.FieldError{Field: "page_size", Message: "must be an integer"})
		}
		pageSize = parsed
	}
	return cursor, pageSize, nil
}

// parseTimeParam reads an optional RFC3339 query parameter
func parseTimeParam(r *http.Request, name string) (*time.Time, *apperrors.AppError) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, apperrors.NewValidationError(apperrors.FieldError{Field: name, Message: "must be an RFC3339 timestamp"})
	}
	return &parsed, nil
}

// respondJSON writes a JSON response with the given status
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
