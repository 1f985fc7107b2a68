package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/PabloPavan/sniply_projects/internal/projects"
)

type ProjectsService interface {
	Create(ctx context.Context, req projects.CreateProjectRequest) (*projects.Project, error)
	GetVisible(ctx context.Context, id string) (*projects.Project, error)
	AddMember(ctx context.Context, projectID, userID string) error
}

type ProjectsHandler struct {
	Service ProjectsService
}

// Create Project
// @Summary Create project
// @Tags projects
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param body body ProjectCreateDTO true "project"
// @Param X-CSRF-Token header string true "CSRF token"
// @Success 201 {object} projects.Project
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /projects [post]
func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ProjectCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.Service.Create(r.Context(), projects.CreateProjectRequest{
		Name:       req.Name,
		Visibility: req.Level(),
	})
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// Get Project
// @Summary Get project
// @Tags projects
// @Produce json
// @Security SessionAuth
// @Param projectID path string true "project id"
// @Success 200 {object} projects.Project
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /projects/{projectID} [get]
func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "projectID"))

	p, err := h.Service.GetVisible(r.Context(), id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// AddMember Project
// @Summary Add project member
// @Tags projects
// @Accept json
// @Security SessionAuth
// @Param projectID path string true "project id"
// @Param body body MemberAddDTO true "member"
// @Param X-CSRF-Token header string true "CSRF token"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /projects/{projectID}/members [post]
func (h *ProjectsHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "projectID"))

	var req MemberAddDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Service.AddMember(r.Context(), id, req.UserID); err != nil {
		writeAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
