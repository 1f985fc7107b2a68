package projects

import (
	"context"
	"strings"

	"github.com/PabloPavan/sniply_projects/internal"
	"github.com/PabloPavan/sniply_projects/internal/apperrors"
	"github.com/PabloPavan/sniply_projects/internal/identity"
	"github.com/PabloPavan/sniply_projects/internal/telemetry"
	"github.com/PabloPavan/sniply_projects/internal/visibility"
)

const notFoundMessage = "404 Project Not Found"

type Store interface {
	Create(ctx context.Context, p *Project) error
	GetByID(ctx context.Context, id string) (*Project, error)
	AddMember(ctx context.Context, projectID, userID string) error
	IsMember(ctx context.Context, projectID, userID string) (bool, error)
}

type Service struct {
	Store       Store
	IDGenerator func() string
}

func (s *Service) Create(ctx context.Context, req CreateProjectRequest) (*Project, error) {
	if s.Store == nil {
		return nil, apperrors.New(apperrors.KindInternal, "projects store not configured")
	}
	ownerID, ok := identity.UserID(ctx)
	if !ok || strings.TrimSpace(ownerID) == "" {
		return nil, apperrors.New(apperrors.KindUnauthorized, "unauthorized")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.New(apperrors.KindInvalidInput, "name is required")
	}
	if !req.Visibility.Valid() {
		return nil, apperrors.New(apperrors.KindInvalidInput, "invalid visibility")
	}

	idGen := s.IDGenerator
	if idGen == nil {
		idGen = func() string {
			return "prj_" + internal.RandomHex(12)
		}
	}

	p := &Project{
		ID:         idGen(),
		Name:       name,
		Visibility: req.Visibility,
		OwnerID:    ownerID,
	}
	if err := s.Store.Create(ctx, p); err != nil {
		return nil, apperrors.New(apperrors.KindInternal, "failed to create project")
	}

	telemetry.LogInfo(ctx, "project created",
		telemetry.LogString("event", "project.created"),
		telemetry.LogString("project.id", p.ID),
		telemetry.LogString("project.visibility", p.Visibility.String()),
	)
	return p, nil
}

// Get loads a project without any access check. Callers apply their own policy.
func (s *Service) Get(ctx context.Context, id string) (*Project, error) {
	if s.Store == nil {
		return nil, apperrors.New(apperrors.KindInternal, "projects store not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperrors.New(apperrors.KindNotFound, notFoundMessage)
	}

	p, err := s.Store.GetByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, apperrors.New(apperrors.KindNotFound, notFoundMessage)
		}
		return nil, apperrors.New(apperrors.KindInternal, "failed to load project")
	}
	return p, nil
}

// GetVisible is Get plus the project visibility rules. Projects the caller
// cannot see are reported as missing.
func (s *Service) GetVisible(ctx context.Context, id string) (*Project, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	member, err := s.IsMember(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if member || identity.IsAdmin(ctx) {
		return p, nil
	}
	switch p.Visibility {
	case visibility.Public:
		return p, nil
	case visibility.Internal:
		if identity.IsAuthenticated(ctx) && !identity.IsExternal(ctx) {
			return p, nil
		}
	}
	return nil, apperrors.New(apperrors.KindNotFound, notFoundMessage)
}

// IsMember reports whether the caller in ctx belongs to the project.
// Anonymous callers are never members.
func (s *Service) IsMember(ctx context.Context, projectID string) (bool, error) {
	if s.Store == nil {
		return false, apperrors.New(apperrors.KindInternal, "projects store not configured")
	}
	userID, ok := identity.UserID(ctx)
	if !ok || strings.TrimSpace(userID) == "" {
		return false, nil
	}
	member, err := s.Store.IsMember(ctx, projectID, userID)
	if err != nil {
		return false, apperrors.New(apperrors.KindInternal, "failed to load membership")
	}
	return member, nil
}

func (s *Service) AddMember(ctx context.Context, projectID, userID string) error {
	if s.Store == nil {
		return apperrors.New(apperrors.KindInternal, "projects store not configured")
	}
	requesterID, ok := identity.UserID(ctx)
	if !ok || strings.TrimSpace(requesterID) == "" {
		return apperrors.New(apperrors.KindUnauthorized, "unauthorized")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return apperrors.New(apperrors.KindInvalidInput, "user_id is required")
	}

	p, err := s.GetVisible(ctx, projectID)
	if err != nil {
		return err
	}
	if p.OwnerID != requesterID && !identity.IsAdmin(ctx) {
		return apperrors.New(apperrors.KindForbidden, "forbidden")
	}

	if err := s.Store.AddMember(ctx, p.ID, userID); err != nil {
		if IsDuplicateMember(err) {
			return apperrors.New(apperrors.KindConflict, "member already exists")
		}
		if IsUnknownUser(err) {
			return apperrors.New(apperrors.KindInvalidInput, "user not found")
		}
		return apperrors.New(apperrors.KindInternal, "failed to add member")
	}
	return nil
}
