package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ipede/app-admin-service/internal/application"
	"github.com/ipede/app-admin-service/internal/interfaces/http/dto"
	httperrors "github.com/ipede/app-admin-service/internal/interfaces/http/errors"
	"go.uber.org/zap"
)

// ProductClientHandler exposes the product client management endpoints
type ProductClientHandler struct {
	service *application.ProductClientService
	logger  *zap.Logger
}

// NewProductClientHandler creates a new ProductClientHandler
func NewProductClientHandler(service *application.ProductClientService, logger *zap.Logger) *ProductClientHandler {
	return &ProductClientHandler{service: service, logger: logger}
}

// Create handles POST /product-clients
func (h *ProductClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProductClientRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	pc, err := h.service.CreateProductClient(r.Context(), application.CreateProductClientInput{
		ProductID:    req.ProductID,
		Name:         req.Name,
		Description:  req.Description,
		TypeName:     req.Type,
		Audience:     req.Audience,
		CallbackURLs: req.CallbackURLs,
		SignoutURLs:  req.SignoutURLs,
	})
	if err != nil {
		httperrors.RespondWithError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, dto.NewProductClientResponse(pc))
}

// Get handles GET /product-clients/{id}
func (h *ProductClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	pc, err := h.service.GetProductClient(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httperrors.RespondWithError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewProductClientResponse(pc))
}

// List handles GET /product-clients
func (h *ProductClientHandler) List(w http.ResponseWriter, r *http.Request) {
	cursor, pageSize, appErr := parsePageParams(r)
	if appErr != nil {
		httperrors.RespondWithError(w, appErr)
		return
	}

	page, err := h.service.ListProductClients(r.Context(), application.ListProductClientsInput{
		ProductID: r.URL.Query().Get("product_id"),
		Name:      r.URL.Query().Get("name"),
		Cursor:    cursor,
		PageSize:  pageSize,
	})
	if err != nil {
		httperrors.RespondWithError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewPageResponse(page, dto.NewProductClientResponse))
}

// Update handles PUT /product-clients/{id}
func (h *ProductClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateProductClientRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	pc, err := h.service.UpdateProductClient(r.Context(), chi.URLParam(r, "id"), application.UpdateProductClientInput{
		Name:         req.Name,
		Description:  req.Description,
		CallbackURLs: req.CallbackURLs,
		SignoutURLs:  req.SignoutURLs,
	})
	if err != nil {
		httperrors.RespondWithError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewProductClientResponse(pc))
}

// Delete handles DELETE /product-clients/{id}
func (h *ProductClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	pc, err := h.service.DeleteProductClient(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httperrors.RespondWithError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewProductClientResponse(pc))
}
