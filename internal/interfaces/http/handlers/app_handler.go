package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/ipede/app-admin-service/internal/application"
	apperrors "github.com/ipede/app-admin-service/internal/domain/errors"
	"github.com/ipede/app-admin-service/internal/interfaces/http/dto"
	httperrors "github.com/ipede/app-admin-service/internal/interfaces/http/errors"
	"go.uber.org/zap"
)

// AppHandler exposes the application management endpoints
type AppHandler struct {
	service *application.AppService
	logger  *zap.Logger
}

// NewAppHandler creates a new AppHandler
func NewAppHandler(service *application.AppService, logger *zap.Logger) *AppHandler {
	return &AppHandler{service: service, logger: logger}
}

// Create handles POST /apps
func (h *AppHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	app, err := h.service.CreateApp(r.Context(), application.CreateAppInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		httperrors.RespondWithError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, dto.NewAppResponse(app))
}

// Get handles GET /apps/{id}
func (h *AppHandler) Get(w http.ResponseWriter, r *http.Request) {
	app, err := h.service.GetApp(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httperrors.RespondWithError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewAppResponse(app))
}

// List handles GET /apps
func (h *AppHandler) List(w http.ResponseWriter, r *http.Request) {
	cursor, pageSize, appErr := parsePageParams(r)
	if appErr != nil {
		httperrors.RespondWithError(w, appErr)
		return
	}
	createdFrom, appErr := parseTimeParam(r, "created_from")
	if appErr != nil {
		httperrors.RespondWithError(w, appErr)
		return
	}
	createdTo, appErr := parseTimeParam(r, "created_to")
	if appErr != nil {
		httperrors.RespondWithError(w, appErr)
		return
	}

	input := application.ListAppsInput{
		Name:        r.URL.Query().Get("name"),
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
		Cursor:      cursor,
		PageSize:    pageSize,
	}
	if raw := r.URL.Query().Get("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			httperrors.RespondWithValidationError(w, apperrors.FieldError{Field: "active", Message: "must be a boolean"})
			return
		}
		input.Active = &active
	}

	page, err := h.service.ListApps(r.Context(), input)
	if err != nil {
		httperrors.RespondWithError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewPageResponse(page, dto.NewAppResponse))
}

// Update handles PUT /apps/{id}
func (h *AppHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateAppRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	app, err := h.service.UpdateApp(r.Context(), chi.URLParam(r, "id"), application.UpdateAppInput{
		Name:        req.Name,
		Description: req.Description,
		Active:      req.Active,
	})
	if err != nil {
		httperrors.RespondWithError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewAppResponse(app))
}

// Delete handles DELETE /apps/{id}
func (h *AppHandler) Delete(w http.ResponseWriter, r *http.Request) {
	app, err := h.service.DeleteApp(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httperrors.RespondWithError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewAppResponse(app))
}
