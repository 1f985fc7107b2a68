package spamlogs

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/PabloPavan/sniply_projects/internal/apperrors"
	"github.com/PabloPavan/sniply_projects/internal/identity"
	"github.com/PabloPavan/sniply_projects/internal/snippets"
	"github.com/PabloPavan/sniply_projects/internal/telemetry"
	"github.com/google/uuid"
)

type Store interface {
	Insert(ctx context.Context, l *Log) error
	List(ctx context.Context, f Filter) ([]*Log, error)
}

type Service struct {
	Store       Store
	IDGenerator func() string
}

// RecordAttempt appends one log for a rejected attempt. Its signature
// matches snippets.SpamSink so it can be handed to the admission check.
func (s *Service) RecordAttempt(ctx context.Context, attempt snippets.SpamAttempt) error {
	if s.Store == nil {
		return apperrors.New(apperrors.KindInternal, "spam logs store not configured")
	}

	payload, err := json.Marshal(attempt.Draft)
	if err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to encode spam payload", err)
	}

	idGen := s.IDGenerator
	if idGen == nil {
		idGen = func() string {
			return "spl_" + uuid.NewString()
		}
	}

	l := &Log{
		ID:        idGen(),
		UserID:    attempt.UserID,
		ProjectID: attempt.ProjectID,
		SourceIP:  attempt.IP,
		UserAgent: attempt.UserAgent,
		Payload:   payload,
	}
	if err := s.Store.Insert(ctx, l); err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to write spam log", err)
	}

	telemetry.LogWarn(ctx, "spam log recorded",
		telemetry.LogString("event", "spam_log.created"),
		telemetry.LogString("spam_log.id", l.ID),
		telemetry.LogString("user.id", l.UserID),
		telemetry.LogString("project.id", l.ProjectID),
	)
	return nil
}

func (s *Service) List(ctx context.Context, f Filter) ([]*Log, error) {
	if s.Store == nil {
		return nil, apperrors.New(apperrors.KindInternal, "spam logs store not configured")
	}
	requesterID, ok := identity.UserID(ctx)
	if !ok || strings.TrimSpace(requesterID) == "" {
		return nil, apperrors.New(apperrors.KindUnauthorized, "unauthorized")
	}
	if !identity.IsAdmin(ctx) {
		return nil, apperrors.New(apperrors.KindForbidden, "forbidden")
	}

	if f.Limit <= 0 {
		f.Limit = 50
	}
	f.Limit = min(f.Limit, 500)
	f.Offset = max(f.Offset, 0)

	list, err := s.Store.List(ctx, f)
	if err != nil {
		return nil, apperrors.New(apperrors.KindInternal, "failed to list spam logs")
	}
	return list, nil
}
