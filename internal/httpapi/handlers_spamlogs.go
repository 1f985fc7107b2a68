package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/PabloPavan/sniply_projects/internal/spamlogs"
)

type SpamLogsService interface {
	List(ctx context.Context, f spamlogs.Filter) ([]*spamlogs.Log, error)
}

type SpamLogsHandler struct {
	Service SpamLogsService
}

// List SpamLogs
// @Summary List rejected spam submissions
// @Tags admin
// @Produce json
// @Security SessionAuth
// @Param limit query int false "limit (default 50, max 500)"
// @Param offset query int false "offset"
// @Success 200 {array} spamlogs.Log
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/spam_logs [get]
func (h *SpamLogsHandler) List(w http.ResponseWriter, r *http.Request) {
	var f spamlogs.Filter
	if v, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get("limit"))); err == nil {
		f.Limit = v
	}
	if v, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get("offset"))); err == nil {
		f.Offset = v
	}

	list, err := h.Service.List(r.Context(), f)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
