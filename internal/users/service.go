package users

import (
	"context"
	"strings"

	"github.com/PabloPavan/sniply_projects/internal"
	"github.com/PabloPavan/sniply_projects/internal/apperrors"
	"github.com/PabloPavan/sniply_projects/internal/identity"
	"github.com/PabloPavan/sniply_projects/internal/telemetry"
)

type Store interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	SetRole(ctx context.Context, id string, role UserRole) error
}

// SessionRevoker ends a user's live sessions. Roles are copied into the
// session at login, so a role change has to drop them.
type SessionRevoker interface {
	RevokeUser(ctx context.Context, userID string) error
}

type Service struct {
	Store          Store
	Sessions       SessionRevoker
	PasswordHasher func(plain string) (string, error)
	IDGenerator    func() string
}

func (s *Service) Create(ctx context.Context, req CreateUserRequest) (*User, error) {
	if s.Store == nil {
		return nil, apperrors.New(apperrors.KindInternal, "users store not configured")
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	password := strings.TrimSpace(req.Password)
	if email == "" || password == "" {
		return nil, apperrors.New(apperrors.KindInvalidInput, "email and password are required")
	}

	hasher := s.PasswordHasher
	if hasher == nil {
		hasher = internal.DefaultPasswordHasher
	}

	hash, err := hasher(password)
	if err != nil {
		return nil, apperrors.New(apperrors.KindInternal, "failed to process password")
	}

	idGen := s.IDGenerator
	if idGen == nil {
		idGen = func() string {
			return "usr_" + internal.RandomHex(12)
		}
	}

	u := &User{
		ID:           idGen(),
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.Store.Create(ctx, u); err != nil {
		if IsUniqueViolationEmail(err) {
			return nil, apperrors.New(apperrors.KindConflict, "email already exists")
		}
		return nil, apperrors.New(apperrors.KindInternal, "failed to create user")
	}

	telemetry.LogInfo(ctx, "user created",
		telemetry.LogString("event", "user.created"),
		telemetry.LogString("user.id", u.ID),
	)
	return u, nil
}

func (s *Service) Me(ctx context.Context) (*User, error) {
	if s.Store == nil {
		return nil, apperrors.New(apperrors.KindInternal, "users store not configured")
	}
	userID, ok := identity.UserID(ctx)
	if !ok || strings.TrimSpace(userID) == "" {
		return nil, apperrors.New(apperrors.KindUnauthorized, "unauthorized")
	}

	u, err := s.Store.GetByID(ctx, userID)
	if err != nil {
		if IsNotFound(err) {
			return nil, apperrors.New(apperrors.KindNotFound, "user not found")
		}
		return nil, apperrors.New(apperrors.KindInternal, "failed to load user")
	}
	return u, nil
}

// SetRole is admin only. It is how users get marked external.
func (s *Service) SetRole(ctx context.Context, targetID string, role string) error {
	if s.Store == nil {
		return apperrors.New(apperrors.KindInternal, "users store not configured")
	}
	if !identity.IsAuthenticated(ctx) {
		return apperrors.New(apperrors.KindUnauthorized, "unauthorized")
	}
	if !identity.IsAdmin(ctx) {
		return apperrors.New(apperrors.KindForbidden, "forbidden")
	}
	targetID = strings.TrimSpace(targetID)
	if targetID == "" {
		return apperrors.New(apperrors.KindInvalidInput, "id is required")
	}
	parsed, err := ParseUserRole(strings.TrimSpace(role))
	if err != nil {
		return apperrors.New(apperrors.KindInvalidInput, "invalid role")
	}

	if err := s.Store.SetRole(ctx, targetID, parsed); err != nil {
		if IsNotFound(err) {
			return apperrors.New(apperrors.KindNotFound, "user not found")
		}
		return apperrors.New(apperrors.KindInternal, "failed to update user")
	}

	if s.Sessions != nil {
		if err := s.Sessions.RevokeUser(ctx, targetID); err != nil {
			return apperrors.Wrap(apperrors.KindInternal, "failed to revoke sessions", err)
		}
	}
	telemetry.LogInfo(ctx, "user role changed",
		telemetry.LogString("event", "user.role_changed"),
		telemetry.LogString("user.id", targetID),
		telemetry.LogString("user.role", string(parsed)),
	)
	return nil
}
