package handler

import (
	"log/slog"
	"net/http"

	"github.com/storefront/storefront/internal/handler/dto"
	"github.com/storefront/storefront/internal/service"
)

// UserHandler handles HTTP requests for user operations.
type UserHandler struct {
	svc    *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// Get handles GET /users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeIDError(w, "id")
		return
	}

	user, err := h.svc.GetUser(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Create handles POST /users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	user, err := h.svc.CreateUser(r.Context(), req.ToInput())
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("user_created", "user_id", user.ID)

	writeJSON(w, http.StatusCreated, user)
}

// Update handles PUT /users/{id}.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeIDError(w, "id")
		return
	}

	var req dto.UpdateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	user, err := h.svc.UpdateUser(r.Context(), id, req.ToPatch())
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("user_updated", "user_id", user.ID)

	writeJSON(w, http.StatusOK, user)
}

// Delete handles DELETE /users/{id}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeIDError(w, "id")
		return
	}

	if err := h.svc.DeleteUser(r.Context(), id); err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("user_deleted", "user_id", id)

	w.WriteHeader(http.StatusNoContent)
}
