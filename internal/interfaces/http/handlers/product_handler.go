package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ipede/app-admin-service/internal/application"
	"github.com/ipede/app-admin-service/internal/interfaces/http/dto"
	httperrors "github.com/ipede/app-admin-service/internal/interfaces/http/errors"
	"go.uber.org/zap"
)

// ProductHandler exposes the product management endpoints
type ProductHandler struct {
	service *application.ProductService
	logger  *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(service *application.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{service: service, logger: logger}
}

// Create handles POST /products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProductRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	product, err := h.service.CreateProduct(r.Context(), application.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		httperrors.RespondWithError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, dto.NewProductResponse(product))
}

// Get handles GET /products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httperrors.RespondWithError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewProductResponse(product))
}

// List handles GET /products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
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

	page, err := h.service.ListProducts(r.Context(), application.ListProductsInput{
		Name:        r.URL.Query().Get("name"),
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
		Cursor:      cursor,
		PageSize:    pageSize,
	})
	if err != nil {
		httperrors.RespondWithError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewPageResponse(page, dto.NewProductResponse))
}

// Update handles PUT /products/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateProductRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	product, err := h.service.UpdateProduct(r.Context(), chi.URLParam(r, "id"), application.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		httperrors.RespondWithError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewProductResponse(product))
}

// Delete handles DELETE /products/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.DeleteProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httperrors.RespondWithError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewProductResponse(product))
}
