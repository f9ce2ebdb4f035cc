package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ipede/app-admin-service/internal/application"
	"github.com/ipede/app-admin-service/internal/domain"
	"github.com/ipede/app-admin-service/internal/interfaces/http/dto"
	httperrors "github.com/ipede/app-admin-service/internal/interfaces/http/errors"
	"go.uber.org/zap"
)

// ResourceServerHandler exposes the resource server management endpoints
type ResourceServerHandler struct {
	service *application.ResourceServerService
	logger  *zap.Logger
}

// NewResourceServerHandler creates a new ResourceServerHandler
func NewResourceServerHandler(service *application.ResourceServerService, logger *zap.Logger) *ResourceServerHandler {
	return &ResourceServerHandler{service: service, logger: logger}
}

func toScopes(reqs []dto.ScopeRequest) []domain.Scope {
	scopes := make([]domain.Scope, len(reqs))
	for i, req := range reqs {
		scopes[i] = domain.Scope{Value: req.Value, Description: req.Description}
	}
	return scopes
}

// Create handles POST /resource-servers
func (h *ResourceServerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateResourceServerRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	server, err := h.service.CreateResourceServer(r.Context(), application.CreateResourceServerInput{
		Name:          req.Name,
		Audience:      req.Audience,
		TokenLifetime: req.TokenLifetime,
		Scopes:        toScopes(req.Scopes),
		ExternalID:    req.ExternalID,
	})
	if err != nil {
		httperrors.RespondWithError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, dto.NewResourceServerResponse(server))
}

// Get handles GET /resource-servers/{id}
func (h *ResourceServerHandler) Get(w http.ResponseWriter, r *http.Request) {
	server, err := h.service.GetResourceServer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httperrors.RespondWithError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewResourceServerResponse(server))
}

// List handles GET /resource-servers
func (h *ResourceServerHandler) List(w http.ResponseWriter, r *http.Request) {
	cursor, pageSize, appErr := parsePageParams(r)
	if appErr != nil {
		httperrors.RespondWithError(w, appErr)
		return
	}

	page, err := h.service.ListResourceServers(r.Context(), application.ListResourceServersInput{
		Name:     r.URL.Query().Get("name"),
		Audience: r.URL.Query().Get("audience"),
		Cursor:   cursor,
		PageSize: pageSize,
	})
	if err != nil {
		httperrors.RespondWithError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewPageResponse(page, dto.NewResourceServerResponse))
}

// Update handles PUT /resource-servers/{id}
func (h *ResourceServerHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateResourceServerRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	server, err := h.service.UpdateResourceServer(r.Context(), chi.URLParam(r, "id"), application.UpdateResourceServerInput{
		Name:          req.Name,
		TokenLifetime: req.TokenLifetime,
		Scopes:        toScopes(req.Scopes),
	})
	if err != nil {
		httperrors.RespondWithError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewResourceServerResponse(server))
}

// Delete handles DELETE /resource-servers/{id}
func (h *ResourceServerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	server, err := h.service.DeleteResourceServer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httperrors.RespondWithError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewResourceServerResponse(server))
}
