package users

import (
	"context"
	"errors"
	"testing"

	"github.com/PabloPavan/sniply_projects/internal/apperrors"
	"github.com/PabloPavan/sniply_projects/internal/identity"
)

type storeStub struct {
	createFn  func(ctx context.Context, u *User) error
	getFn     func(ctx context.Context, id string) (*User, error)
	setRoleFn func(ctx context.Context, id string, role UserRole) error
}

func (s *storeStub) Create(ctx context.Context, u *User) error {
	if s.createFn != nil {
		return s.createFn(ctx, u)
	}
	return nil
}

func (s *storeStub) GetByID(ctx context.Context, id string) (*User, error) {
	if s.getFn != nil {
		return s.getFn(ctx, id)
	}
	return nil, ErrNotFound
}

func (s *storeStub) SetRole(ctx context.Context, id string, role UserRole) error {
	if s.setRoleFn != nil {
		return s.setRoleFn(ctx, id, role)
	}
	return nil
}

func TestServiceCreateUser(t *testing.T) {
	store := &storeStub{}
	svc := &Service{
		Store: store,
		PasswordHasher: func(plain string) (string, error) {
			if plain == "" {
				return "", errors.New("empty")
			}
			return "hash", nil
		},
		IDGenerator: func() string {
			return "usr_test"
		},
	}

	var got *User
	store.createFn = func(ctx context.Context, u *User) error {
		got = u
		return nil
	}

	u, err := svc.Create(context.Background(), CreateUserRequest{
		Email:    "TEST@LOCAL",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("create user error: %v", err)
	}
	if u.ID != "usr_test" {
		t.Fatalf("unexpected id: %s", u.ID)
	}
	if got == nil || got.Email != "test@local" {
		t.Fatalf("unexpected stored email: %+v", got)
	}
	if got.PasswordHash != "hash" {
		t.Fatalf("unexpected password hash: %s", got.PasswordHash)
	}
}

func TestServiceCreateRequiresPassword(t *testing.T) {
	svc := &Service{Store: &storeStub{}}

	_, err := svc.Create(context.Background(), CreateUserRequest{Email: "a@local", Password: "  "})
	assertKind(t, err, apperrors.KindInvalidInput)
}

func TestServiceMeUnauthorized(t *testing.T) {
	svc := &Service{Store: &storeStub{}}

	_, err := svc.Me(context.Background())
	assertKind(t, err, apperrors.KindUnauthorized)
}

func TestServiceMeNotFound(t *testing.T) {
	svc := &Service{Store: &storeStub{}}

	ctx := identity.WithUser(context.Background(), "usr_1", "user")
	_, err := svc.Me(ctx)
	assertKind(t, err, apperrors.KindNotFound)
}

func TestServiceSetRoleRequiresAdmin(t *testing.T) {
	svc := &Service{Store: &storeStub{}}

	ctx := identity.WithUser(context.Background(), "usr_1", "user")
	err := svc.SetRole(ctx, "usr_2", "external")
	assertKind(t, err, apperrors.KindForbidden)
}

func TestServiceSetRoleExternal(t *testing.T) {
	store := &storeStub{}
	svc := &Service{Store: store}

	var gotID string
	var gotRole UserRole
	store.setRoleFn = func(ctx context.Context, id string, role UserRole) error {
		gotID = id
		gotRole = role
		return nil
	}

	ctx := identity.WithUser(context.Background(), "usr_1", "admin")
	if err := svc.SetRole(ctx, "usr_2", "external"); err != nil {
		t.Fatalf("set role error: %v", err)
	}
	if gotID != "usr_2" || gotRole != RoleExternal {
		t.Fatalf("unexpected update: %s %s", gotID, gotRole)
	}
}

type revokerStub struct {
	revoked []string
	err     error
}

func (r *revokerStub) RevokeUser(ctx context.Context, userID string) error {
	r.revoked = append(r.revoked, userID)
	return r.err
}

func TestServiceSetRoleRevokesSessions(t *testing.T) {
	revoker := &revokerStub{}
	svc := &Service{Store: &storeStub{}, Sessions: revoker}

	ctx := identity.WithUser(context.Background(), "usr_1", "admin")
	if err := svc.SetRole(ctx, "usr_2", "external"); err != nil {
		t.Fatalf("set role error: %v", err)
	}
	if len(revoker.revoked) != 1 || revoker.revoked[0] != "usr_2" {
		t.Fatalf("unexpected revocations: %v", revoker.revoked)
	}

	revoker.err = errors.New("redis down")
	err := svc.SetRole(ctx, "usr_2", "user")
	assertKind(t, err, apperrors.KindInternal)
}

func TestServiceSetRoleInvalid(t *testing.T) {
	svc := &Service{Store: &storeStub{}}

	ctx := identity.WithUser(context.Background(), "usr_1", "admin")
	err := svc.SetRole(ctx, "usr_2", "root")
	assertKind(t, err, apperrors.KindInvalidInput)
}

func assertKind(t *testing.T, err error, kind apperrors.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error kind %s", kind)
	}
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected app error, got: %v", err)
	}
	if appErr.Kind != kind {
		t.Fatalf("unexpected kind: %s", appErr.Kind)
	}
}
