package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/PabloPavan/sniply_projects/internal/users"
)

type UsersService interface {
	Create(ctx context.Context, req users.CreateUserRequest) (*users.User, error)
	Me(ctx context.Context) (*users.User, error)
	SetRole(ctx context.Context, targetID string, role string) error
}

type UsersHandler struct {
	Service UsersService
}

// Create User
// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Param body body UserCreateDTO true "user"
// @Success 201 {object} users.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users [post]
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req UserCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	u, err := h.Service.Create(r.Context(), users.CreateUserRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, u.Response())
}

// Me User
// @Summary Current user
// @Tags users
// @Produce json
// @Security SessionAuth
// @Success 200 {object} users.UserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/me [get]
func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.Service.Me(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u.Response())
}

// SetRole User
// @Summary Change a user's role (admin)
// @Tags users
// @Accept json
// @Security SessionAuth
// @Param id path string true "user id"
// @Param body body RoleUpdateDTO true "role"
// @Param X-CSRF-Token header string true "CSRF token"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{id}/role [put]
func (h *UsersHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))

	var req RoleUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Service.SetRole(r.Context(), id, req.Role); err != nil {
		writeAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
