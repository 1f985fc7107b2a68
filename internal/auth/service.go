package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/PabloPavan/sniply_projects/internal/apperrors"
	"github.com/PabloPavan/sniply_projects/internal/session"
	"github.com/PabloPavan/sniply_projects/internal/telemetry"
	"github.com/PabloPavan/sniply_projects/internal/users"
	"golang.org/x/crypto/bcrypt"
)

type UserStore interface {
	GetByEmail(ctx context.Context, email string) (users.User, error)
}

type SessionManager interface {
	Create(ctx context.Context, userID, role string) (*session.Session, error)
	Get(ctx context.Context, id string) (*session.Session, error)
	Refresh(ctx context.Context, sess *session.Session) (*session.Session, bool, error)
	Delete(ctx context.Context, id string) error
}

type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
}

type Service struct {
	Users            UserStore
	Sessions         SessionManager
	LoginLimiter     RateLimiter
	PasswordVerifier func(hashed, plain string) error
}

type LoginInput struct {
	Email    string
	Password string
	ClientIP string
}

type SessionInfo struct {
	ID        string
	UserID    string
	Role      string
	CSRFToken string
	ExpiresAt time.Time
}

func infoOf(s *session.Session) SessionInfo {
	return SessionInfo{
		ID:        s.ID,
		UserID:    s.UserID,
		Role:      s.Role,
		CSRFToken: s.CSRFToken,
		ExpiresAt: s.ExpiresAt,
	}
}

type LoginResult struct {
	UserID    string
	UserEmail string
	UserRole  string
	Session   SessionInfo
}

func (s *Service) Login(ctx context.Context, input LoginInput) (LoginResult, error) {
	if s.Users == nil || s.Sessions == nil {
		return LoginResult{}, apperrors.New(apperrors.KindInternal, "auth not configured")
	}

	email := strings.TrimSpace(strings.ToLower(input.Email))
	password := strings.TrimSpace(input.Password)
	if email == "" || password == "" {
		return LoginResult{}, apperrors.New(apperrors.KindInvalidInput, "email and password are required")
	}
	if !strings.Contains(email, "@") {
		return LoginResult{}, apperrors.New(apperrors.KindInvalidInput, "invalid email")
	}

	if ip := strings.TrimSpace(input.ClientIP); ip != "" {
		if err := s.limit(ctx, "login:ip:"+ip); err != nil {
			return LoginResult{}, err
		}
	}
	if err := s.limit(ctx, "login:email:"+email); err != nil {
		return LoginResult{}, err
	}

	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		telemetry.LogWarn(ctx, "login failed",
			telemetry.LogString("event", "auth.login_failed"),
			telemetry.LogString("reason", "unknown_email"),
		)
		return LoginResult{}, apperrors.New(apperrors.KindUnauthorized, "invalid credentials")
	}

	verifier := s.PasswordVerifier
	if verifier == nil {
		verifier = func(hashed, plain string) error {
			return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
		}
	}
	if err := verifier(u.PasswordHash, password); err != nil {
		telemetry.LogWarn(ctx, "login failed",
			telemetry.LogString("event", "auth.login_failed"),
			telemetry.LogString("reason", "bad_password"),
			telemetry.LogString("user.id", u.ID),
		)
		return LoginResult{}, apperrors.New(apperrors.KindUnauthorized, "invalid credentials")
	}

	sess, err := s.Sessions.Create(ctx, u.ID, string(u.Role))
	if err != nil {
		return LoginResult{}, apperrors.Wrap(apperrors.KindInternal, "failed to create session", err)
	}

	telemetry.LogInfo(ctx, "login succeeded",
		telemetry.LogString("event", "auth.login"),
		telemetry.LogString("user.id", u.ID),
	)
	return LoginResult{
		UserID:    u.ID,
		UserEmail: u.Email,
		UserRole:  string(u.Role),
		Session:   infoOf(sess),
	}, nil
}

func (s *Service) limit(ctx context.Context, key string) error {
	if s.LoginLimiter == nil {
		return nil
	}
	allowed, retryAfter, err := s.LoginLimiter.Allow(ctx, key)
	if err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "rate limit error", err)
	}
	if !allowed {
		return apperrors.RateLimit("too many requests", retryAfter)
	}
	return nil
}

func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if s.Sessions == nil {
		return apperrors.New(apperrors.KindInternal, "auth not configured")
	}
	if strings.TrimSpace(sessionID) == "" {
		return nil
	}
	if err := s.Sessions.Delete(ctx, sessionID); err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to logout", err)
	}
	return nil
}

// AuthenticateSession resolves a session cookie. Unsafe methods must echo
// the session's CSRF token.
func (s *Service) AuthenticateSession(ctx context.Context, sessionID, csrfToken, method string) (SessionInfo, bool, error) {
	if s.Sessions == nil {
		return SessionInfo{}, false, apperrors.New(apperrors.KindInternal, "auth not configured")
	}
	if strings.TrimSpace(sessionID) == "" {
		return SessionInfo{}, false, apperrors.New(apperrors.KindUnauthorized, "missing session")
	}

	sess, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return SessionInfo{}, false, apperrors.New(apperrors.KindUnauthorized, "unauthorized")
	}

	if requiresCSRFToken(method) {
		if csrfToken == "" || csrfToken != sess.CSRFToken {
			return SessionInfo{}, false, apperrors.New(apperrors.KindForbidden, "forbidden")
		}
	}

	sess, refreshed, err := s.Sessions.Refresh(ctx, sess)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return SessionInfo{}, false, apperrors.New(apperrors.KindUnauthorized, "unauthorized")
		}
		return SessionInfo{}, false, apperrors.Wrap(apperrors.KindInternal, "failed to refresh session", err)
	}
	return infoOf(sess), refreshed, nil
}

func requiresCSRFToken(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	default:
		return true
	}
}
