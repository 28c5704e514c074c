package handler

import (
	"log/slog"
	"net/http"

	"github.com/storefront/storefront/internal/handler/dto"
	"github.com/storefront/storefront/internal/service"
)

// Association response messages.
const (
	MsgProductAdded   = "Product added to order"
	MsgProductRemoved = "Product removed from order"
)

// OrderHandler handles orders and their product associations.
type OrderHandler struct {
	svc    *service.OrderService
	logger *slog.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(svc *service.OrderService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /orders.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.ListOrders(r.Context())
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// ListForUser handles GET /orders/user/{user_id}.
func (h *OrderHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	userID, err := parseID(r, "user_id")
	if err != nil {
		writeIDError(w, "user_id")
		return
	}

	orders, err := h.svc.ListOrdersForUser(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// Get handles GET /orders/{order_id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "order_id")
	if err != nil {
		writeIDError(w, "order_id")
		return
	}

	order, err := h.svc.GetOrder(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// Create handles POST /orders.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	order, err := h.svc.CreateOrder(r.Context(), req.ToInput())
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("order_created", "order_id", order.ID, "user_id", order.UserID)

	writeJSON(w, http.StatusCreated, order)
}

// Update handles PUT /orders/{order_id}.
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "order_id")
	if err != nil {
		writeIDError(w, "order_id")
		return
	}

	var req dto.UpdateOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	order, err := h.svc.UpdateOrder(r.Context(), id, req.ToPatch())
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("order_updated", "order_id", order.ID)

	writeJSON(w, http.StatusOK, order)
}

// Delete handles DELETE /orders/{order_id}.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "order_id")
	if err != nil {
		writeIDError(w, "order_id")
		return
	}

	if err := h.svc.DeleteOrder(r.Context(), id); err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("order_deleted", "order_id", id)

	w.WriteHeader(http.StatusNoContent)
}

// AddProduct handles PUT /orders/{order_id}/add_product/{product_id}.
func (h *OrderHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	orderID, productID, ok := h.parseAssociation(w, r)
	if !ok {
		return
	}

	if err := h.svc.AddProductToOrder(r.Context(), orderID, productID); err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("order_product_added", "order_id", orderID, "product_id", productID)

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: MsgProductAdded})
}

// RemoveProduct handles DELETE /orders/{order_id}/remove_product/{product_id}.
func (h *OrderHandler) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	orderID, productID, ok := h.parseAssociation(w, r)
	if !ok {
		return
	}

	if err := h.svc.RemoveProductFromOrder(r.Context(), orderID, productID); err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("order_product_removed", "order_id", orderID, "product_id", productID)

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: MsgProductRemoved})
}

// ListProducts handles GET /orders/{order_id}/products.
func (h *OrderHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	orderID, err := parseID(r, "order_id")
	if err != nil {
		writeIDError(w, "order_id")
		return
	}

	products, err := h.svc.ListProductsForOrder(r.Context(), orderID)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *OrderHandler) parseAssociation(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	orderID, err := parseID(r, "order_id")
	if err != nil {
		writeIDError(w, "order_id")
		return 0, 0, false
	}
	productID, err := parseID(r, "product_id")
	if err != nil {
		writeIDError(w, "product_id")
		return 0, 0, false
	}
	return orderID, productID, true
}
