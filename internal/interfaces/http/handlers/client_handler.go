package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ipede/app-admin-service/internal/application"
	"github.com/ipede/app-admin-service/internal/interfaces/http/dto"
	httperrors "github.com/ipede/app-admin-service/internal/interfaces/http/errors"
	"go.uber.org/zap"
)

// ClientHandler exposes the client management endpoints
type ClientHandler struct {
	service *application.ClientService
	logger  *zap.Logger
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(service *application.ClientService, logger *zap.Logger) *ClientHandler {
	return &ClientHandler{service: service, logger: logger}
}

// Create handles POST /clients
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateClientRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	client, err := h.service.CreateClient(r.Context(), application.CreateClientInput{
		AppID:        req.AppID,
		Name:         req.Name,
		Description:  req.Description,
		TypeName:     req.Type,
		LoginURL:     req.LoginURL,
		CallbackURLs: req.CallbackURLs,
		SignoutURLs:  req.SignoutURLs,
		Audience:     req.Audience,
	})
	if err != nil {
		httperrors.RespondWithError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, dto.NewClientResponse(client))
}

// Get handles GET /clients/{id}
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	client, err := h.service.GetClient(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httperrors.RespondWithError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewClientResponse(client))
}

// List handles GET /clients
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	cursor, pageSize, appErr := parsePageParams(r)
	if appErr != nil {
		httperrors.RespondWithError(w, appErr)
		return
	}

	page, err := h.service.ListClients(r.Context(), application.ListClientsInput{
		AppID:    r.URL.Query().Get("app_id"),
		Name:     r.URL.Query().Get("name"),
		Cursor:   cursor,
		PageSize: pageSize,
	})
	if err != nil {
		httperrors.RespondWithError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewPageResponse(page, dto.NewClientResponse))
}

// Update handles PUT /clients/{id}
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateClientRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	client, err := h.service.UpdateClient(r.Context(), chi.URLParam(r, "id"), application.UpdateClientInput{
		Name:         req.Name,
		Description:  req.Description,
		LoginURL:     req.LoginURL,
		CallbackURLs: req.CallbackURLs,
		SignoutURLs:  req.SignoutURLs,
	})
	if err != nil {
		httperrors.RespondWithError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewClientResponse(client))
}

// Delete handles DELETE /clients/{id}
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	client, err := h.service.DeleteClient(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httperrors.RespondWithError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewClientResponse(client))
}
