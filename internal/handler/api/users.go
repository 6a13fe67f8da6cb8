package api

import (
	"net/http"

	"github.com/dukerupert/tantuka/internal/domain"
	"github.com/dukerupert/tantuka/internal/handler"
	"github.com/dukerupert/tantuka/internal/middleware"
)

// UserHandler serves account profiles.
type UserHandler struct {
	users domain.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(users domain.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Me handles GET /api/v1/users/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		handler.UnauthorizedResponse(w, r)
		return
	}

	handler.WriteJSON(w, r, http.StatusOK, user)
}

// UpdateMe handles PUT /api/v1/users/me
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		handler.UnauthorizedResponse(w, r)
		return
	}

	var input domain.UserUpdate
	if err := handler.DecodeAndValidate(r, "user.update", &input); err != nil {
		handler.RespondError(w, r, err)
		return
	}

	updated, err := h.users.UpdateUser(r.Context(), user.ID, input)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	handler.WriteJSON(w, r, http.StatusOK, updated)
}

// List handles GET /api/v1/users and GET /api/v1/admin/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := handler.Pagination(r)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	users, err := h.users.ListUsers(r.Context(), skip, limit)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	handler.WriteJSON(w, r, http.StatusOK, users)
}

// Get handles GET /api/v1/users/{user_id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := handler.PathID(r, "user_id")
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	user, err := h.users.GetUser(r.Context(), id)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	handler.WriteJSON(w, r, http.StatusOK, user)
}
