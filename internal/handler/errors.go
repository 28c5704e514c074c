package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/storefront/storefront/internal/handler/dto"
	"github.com/storefront/storefront/internal/service"
)

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleServiceError maps service errors to HTTP responses. Store details
// are logged, never echoed to the client.
func handleServiceError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
	case errors.Is(err, service.ErrProductNotFound):
		writeError(w, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found")
	case errors.Is(err, service.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found")
	case errors.Is(err, service.ErrAssociationNotFound):
		writeError(w, http.StatusNotFound, "ASSOCIATION_NOT_FOUND", "Product not in order")
	case errors.Is(err, service.ErrDuplicateAssociation):
		writeError(w, http.StatusBadRequest, "DUPLICATE_ASSOCIATION", "Product already in order")
	case errors.Is(err, service.ErrEmailExists):
		writeError(w, http.StatusConflict, "EMAIL_EXISTS", "Email already exists")
	case errors.Is(err, service.ErrInvalidReference):
		logger.Warn("constraint_violation", "error", err)
		writeError(w, http.StatusBadRequest, "INVALID_REFERENCE", "Referenced record does not exist")
	case errors.Is(err, service.ErrMissingField):
		logger.Warn("constraint_violation", "error", err)
		writeError(w, http.StatusBadRequest, "MISSING_FIELD", "A required field is missing or null")
	case errors.Is(err, service.ErrConstraintViolation):
		logger.Warn("constraint_violation", "error", err)
		writeError(w, http.StatusBadRequest, "CONSTRAINT_VIOLATION", "Request violates a data constraint")
	default:
		logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
