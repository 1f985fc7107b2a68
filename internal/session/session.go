package session

import (
	"context"
	"errors"
	"time"

	"github.com/PabloPavan/sniply_projects/internal"
)

var ErrNotFound = errors.New("session not found")

var errNoStore = errors.New("session store not configured")

type Session struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Role            string    `json:"role"`
	CSRFToken       string    `json:"csrf_token"`
	CreatedAt       time.Time `json:"created_at"`
	LastRefreshedAt time.Time `json:"last_refreshed_at"`
	ExpiresAt       time.Time `json:"expires_at"`
}

func (s *Session) expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

type Store interface {
	Set(ctx context.Context, id string, s Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	DeleteUser(ctx context.Context, userID string) error
}

// Manager issues sessions with a sliding TTL bounded by MaxAge.
type Manager struct {
	Store         Store
	TTL           time.Duration
	MaxAge        time.Duration
	RefreshBefore time.Duration
	IDBytes       int

	now func() time.Time
}

func (m *Manager) clock() time.Time {
	if m.now != nil {
		return m.now()
	}
	return time.Now()
}

func (m *Manager) Create(ctx context.Context, userID, role string) (*Session, error) {
	if m.Store == nil {
		return nil, errNoStore
	}

	idBytes := m.IDBytes
	if idBytes <= 0 {
		idBytes = 32
	}

	now := m.clock()
	s := Session{
		ID:              "ses_" + internal.RandomHex(idBytes),
		UserID:          userID,
		Role:            role,
		CSRFToken:       internal.RandomHex(16),
		CreatedAt:       now,
		LastRefreshedAt: now,
		ExpiresAt:       now.Add(m.TTL),
	}

	if err := m.Store.Set(ctx, s.ID, s, m.TTL); err != nil {
		return nil, err
	}
	return &s, nil
}

func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	if m.Store == nil {
		return nil, errNoStore
	}
	sess, err := m.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.tooOld(sess) {
		_ = m.Store.Delete(ctx, id)
		return nil, ErrNotFound
	}
	return sess, nil
}

func (m *Manager) Delete(ctx context.Context, id string) error {
	if m.Store == nil {
		return errNoStore
	}
	return m.Store.Delete(ctx, id)
}

// RevokeUser ends every session of userID, so a changed role is picked up
// on the next login.
func (m *Manager) RevokeUser(ctx context.Context, userID string) error {
	if m.Store == nil {
		return errNoStore
	}
	return m.Store.DeleteUser(ctx, userID)
}

// Refresh extends the session once it is within RefreshBefore of expiring.
// The returned bool reports whether a new expiry was written.
func (m *Manager) Refresh(ctx context.Context, sess *Session) (*Session, bool, error) {
	if m.Store == nil {
		return nil, false, errNoStore
	}
	if sess == nil {
		return nil, false, errors.New("session not provided")
	}
	if m.TTL <= 0 {
		return sess, false, nil
	}
	if m.tooOld(sess) {
		_ = m.Store.Delete(ctx, sess.ID)
		return nil, false, ErrNotFound
	}

	now := m.clock()
	if m.RefreshBefore > 0 && sess.ExpiresAt.Sub(now) > m.RefreshBefore {
		return sess, false, nil
	}

	exp := now.Add(m.TTL)
	if m.MaxAge > 0 {
		if limit := sess.CreatedAt.Add(m.MaxAge); exp.After(limit) {
			exp = limit
		}
	}
	sess.ExpiresAt = exp
	sess.LastRefreshedAt = now

	if err := m.Store.Set(ctx, sess.ID, *sess, exp.Sub(now)); err != nil {
		return nil, false, err
	}
	return sess, true, nil
}

func (m *Manager) tooOld(sess *Session) bool {
	if m.MaxAge <= 0 || sess.CreatedAt.IsZero() {
		return false
	}
	return m.clock().After(sess.CreatedAt.Add(m.MaxAge))
}
