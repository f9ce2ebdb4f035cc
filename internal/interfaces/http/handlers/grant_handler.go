package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ipede/app-admin-service/internal/application"
	"github.com/ipede/app-admin-service/internal/interfaces/http/dto"
	httperrors "github.com/ipede/app-admin-service/internal/interfaces/http/errors"
	"go.uber.org/zap"
)

// GrantHandler exposes the grant management endpoints
type GrantHandler struct {
	service *application.GrantService
	logger  *zap.Logger
}

// NewGrantHandler creates a new GrantHandler
func NewGrantHandler(service *application.GrantService, logger *zap.Logger) *GrantHandler {
	return &GrantHandler{service: service, logger: logger}
}

// Create handles POST /grants
func (h *GrantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateGrantRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	grant, err := h.service.CreateGrant(r.Context(), application.CreateGrantInput{
		ClientID:         req.ClientID,
		ResourceServerID: req.ResourceServerID,
		ExternalID:       req.ExternalID,
	})
	if err != nil {
		httperrors.RespondWithError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, dto.NewGrantResponse(grant))
}

// Get handles GET /grants/{id}
func (h *GrantHandler) Get(w http.ResponseWriter, r *http.Request) {
	grant, err := h.service.GetGrant(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httperrors.RespondWithError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewGrantResponse(grant))
}

// List handles GET /grants
func (h *GrantHandler) List(w http.ResponseWriter, r *http.Request) {
	cursor, pageSize, appErr := parsePageParams(r)
	if appErr != nil {
		httperrors.RespondWithError(w, appErr)
		return
	}

	page, err := h.service.ListGrants(r.Context(), application.ListGrantsInput{
		ClientID:         r.URL.Query().Get("client_id"),
		ResourceServerID: r.URL.Query().Get("resource_server_id"),
		Cursor:           cursor,
		PageSize:         pageSize,
	})
	if err != nil {
		httperrors.RespondWithError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewPageResponse(page, dto.NewGrantResponse))
}

// Delete handles DELETE /grants/{id}
func (h *GrantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	grant, err := h.service.DeleteGrant(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httperrors.RespondWithError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewGrantResponse(grant))
}
