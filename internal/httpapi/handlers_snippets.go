package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/PabloPavan/sniply_projects/internal/snippets"
)

type SnippetsService interface {
	List(ctx context.Context, projectID string, input snippets.ListInput) ([]*snippets.Snippet, error)
	Get(ctx context.Context, projectID, id string) (*snippets.Snippet, error)
	Raw(ctx context.Context, projectID, id string) (string, error)
	Create(ctx context.Context, projectID string, req snippets.CreateSnippetRequest) (*snippets.Snippet, error)
	Update(ctx context.Context, projectID, id string, req snippets.UpdateSnippetRequest) (*snippets.Snippet, error)
	Delete(ctx context.Context, projectID, id string) (*snippets.Snippet, error)
}

type SnippetsHandler struct {
	Service SnippetsService
}

func snippetPath(r *http.Request) (projectID, id string) {
	return strings.TrimSpace(chi.URLParam(r, "projectID")), strings.TrimSpace(chi.URLParam(r, "id"))
}

// List Snippets
// @Summary List project snippets visible to the caller
// @Tags snippets
// @Produce json
// @Security SessionAuth
// @Param projectID path string true "project id"
// @Param limit query int false "limit (default 20, max 100)"
// @Param offset query int false "offset"
// @Success 200 {array} snippets.Snippet
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /projects/{projectID}/snippets [get]
func (h *SnippetsHandler) List(w http.ResponseWriter, r *http.Request) {
	projectID, _ := snippetPath(r)

	input := snippets.ListInput{}
	if l := strings.TrimSpace(r.URL.Query().Get("limit")); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 {
			input.Limit = v
		}
	}
	if o := strings.TrimSpace(r.URL.Query().Get("offset")); o != "" {
		if v, err := strconv.Atoi(o); err == nil && v >= 0 {
			input.Offset = v
		}
	}

	list, err := h.Service.List(r.Context(), projectID, input)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Get Snippet
// @Summary Get snippet
// @Tags snippets
// @Produce json
// @Security SessionAuth
// @Param projectID path string true "project id"
// @Param id path string true "snippet id"
// @Success 200 {object} snippets.Snippet
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /projects/{projectID}/snippets/{id} [get]
func (h *SnippetsHandler) Get(w http.ResponseWriter, r *http.Request) {
	projectID, id := snippetPath(r)

	snippet, err := h.Service.Get(r.Context(), projectID, id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snippet)
}

// Raw Snippet
// @Summary Get raw snippet content
// @Tags snippets
// @Produce plain
// @Security SessionAuth
// @Param projectID path string true "project id"
// @Param id path string true "snippet id"
// @Success 200 {string} string
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /projects/{projectID}/snippets/{id}/raw [get]
func (h *SnippetsHandler) Raw(w http.ResponseWriter, r *http.Request) {
	projectID, id := snippetPath(r)

	content, err := h.Service.Raw(r.Context(), projectID, id)
	if err != nil {
		writeAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, content)
}

// Create Snippet
// @Summary Create snippet
// @Tags snippets
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param projectID path string true "project id"
// @Param body body SnippetCreateDTO true "snippet"
// @Param X-CSRF-Token header string true "CSRF token"
// @Success 201 {object} snippets.Snippet
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /projects/{projectID}/snippets [post]
func (h *SnippetsHandler) Create(w http.ResponseWriter, r *http.Request) {
	projectID, _ := snippetPath(r)

	var req SnippetCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	snippet, err := h.Service.Create(r.Context(), projectID, req.Request())
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, snippet)
}

// Update Snippet
// @Summary Update snippet
// @Tags snippets
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param projectID path string true "project id"
// @Param id path string true "snippet id"
// @Param body body SnippetUpdateDTO true "fields to change"
// @Param X-CSRF-Token header string true "CSRF token"
// @Success 200 {object} snippets.Snippet
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /projects/{projectID}/snippets/{id} [put]
func (h *SnippetsHandler) Update(w http.ResponseWriter, r *http.Request) {
	projectID, id := snippetPath(r)

	var req SnippetUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	snippet, err := h.Service.Update(r.Context(), projectID, id, req.Request())
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snippet)
}

// Delete Snippet
// @Summary Delete snippet
// @Tags snippets
// @Produce json
// @Security SessionAuth
// @Param projectID path string true "project id"
// @Param id path string true "snippet id"
// @Param X-CSRF-Token header string true "CSRF token"
// @Success 200 {object} snippets.Snippet
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /projects/{projectID}/snippets/{id} [delete]
func (h *SnippetsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	projectID, id := snippetPath(r)

	snippet, err := h.Service.Delete(r.Context(), projectID, id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snippet)
}
