package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/PabloPavan/sniply_projects/internal/auth"
	"github.com/PabloPavan/sniply_projects/internal/identity"
	"github.com/PabloPavan/sniply_projects/internal/session"
)

type AuthService interface {
	Login(ctx context.Context, input auth.LoginInput) (auth.LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
}

type AuthHandler struct {
	Service AuthService
	Cookie  session.CookieConfig
}

type LoginResponse struct {
	UserID           string `json:"user_id"`
	Role             string `json:"role"`
	CSRFToken        string `json:"csrf_token"`
	SessionExpiresAt string `json:"session_expires_at"` // RFC3339
}

// Login Auth
// @Summary Login
// @Description Sets the session cookie. Send csrf_token back as X-CSRF-Token on writes.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginDTO true "credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	res, err := h.Service.Login(r.Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		ClientIP: identity.ClientInfo(r.Context()).IP,
	})
	if err != nil {
		writeAppError(w, err)
		return
	}

	h.Cookie.Write(w, res.Session.ID, res.Session.ExpiresAt)
	writeJSON(w, http.StatusOK, LoginResponse{
		UserID:           res.UserID,
		Role:             res.UserRole,
		CSRFToken:        res.Session.CSRFToken,
		SessionExpiresAt: res.Session.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// Logout Auth
// @Summary Logout
// @Tags auth
// @Success 204
// @Failure 500 {object} ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Logout(r.Context(), h.Cookie.Read(r)); err != nil {
		writeAppError(w, err)
		return
	}
	h.Cookie.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}
