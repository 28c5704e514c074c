package handler

import (
	"log/slog"
	"net/http"

	"github.com/storefront/storefront/internal/handler/dto"
	"github.com/storefront/storefront/internal/service"
)

// ProductHandler handles HTTP requests for product operations.
type ProductHandler struct {
	svc    *service.ProductService
	logger *slog.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(svc *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.ListProducts(r.Context())
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// Get handles GET /products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeIDError(w, "id")
		return
	}

	product, err := h.svc.GetProduct(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// Create handles POST /products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProductRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	product, err := h.svc.CreateProduct(r.Context(), req.ToInput())
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("product_created", "product_id", product.ID)

	writeJSON(w, http.StatusCreated, product)
}

// Update handles PUT /products/{id}.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeIDError(w, "id")
		return
	}

	var req dto.UpdateProductRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	product, err := h.svc.UpdateProduct(r.Context(), id, req.ToPatch())
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("product_updated", "product_id", product.ID)

	writeJSON(w, http.StatusOK, product)
}

// Delete handles DELETE /products/{id}.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeIDError(w, "id")
		return
	}

	if err := h.svc.DeleteProduct(r.Context(), id); err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("product_deleted", "product_id", id)

	w.WriteHeader(http.StatusNoContent)
}
