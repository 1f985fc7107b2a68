package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/PabloPavan/sniply_projects/internal/apperrors"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Message: msg})
}

func writeAppError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}

	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if appErr.Kind == apperrors.KindRateLimited && appErr.RetryAfter > 0 {
		seconds := int(appErr.RetryAfter.Seconds())
		if seconds <= 0 {
			seconds = 1
		}
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}
	writeError(w, statusFromKind(appErr.Kind), errorMessage(appErr))
}

func statusFromKind(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindInvalidInput, apperrors.KindSpam:
		return http.StatusBadRequest
	case apperrors.KindUnauthorized:
		return http.StatusUnauthorized
	case apperrors.KindForbidden:
		return http.StatusForbidden
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindConflict:
		return http.StatusConflict
	case apperrors.KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Internal errors never leak their message.
func errorMessage(appErr *apperrors.Error) string {
	if appErr.Kind == apperrors.KindInternal {
		return "internal error"
	}
	if appErr.Message != "" {
		return appErr.Message
	}
	switch appErr.Kind {
	case apperrors.KindUnauthorized:
		return "401 Unauthorized"
	case apperrors.KindForbidden:
		return "403 Forbidden"
	case apperrors.KindNotFound:
		return "404 Not Found"
	case apperrors.KindConflict:
		return "conflict"
	case apperrors.KindRateLimited:
		return "too many requests"
	case apperrors.KindSpam:
		return "Spam detected"
	default:
		return "invalid request"
	}
}
