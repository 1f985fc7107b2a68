package snippets

import (
	"context"
	"strings"
	"time"

	"github.com/PabloPavan/sniply_projects/internal"
	"github.com/PabloPavan/sniply_projects/internal/apperrors"
	"github.com/PabloPavan/sniply_projects/internal/identity"
	"github.com/PabloPavan/sniply_projects/internal/projects"
	"github.com/PabloPavan/sniply_projects/internal/telemetry"
)

type Store interface {
	Create(ctx context.Context, s *Snippet) error
	GetByID(ctx context.Context, id string) (*Snippet, error)
	ListByProject(ctx context.Context, q ListQuery) ([]*Snippet, error)
	Update(ctx context.Context, s *Snippet) error
	Delete(ctx context.Context, id string) error
}

// ProjectLookup resolves projects with their own visibility applied, so a
// project the caller cannot see is reported missing.
type ProjectLookup interface {
	GetVisible(ctx context.Context, id string) (*projects.Project, error)
	IsMember(ctx context.Context, projectID string) (bool, error)
}

type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
}

type Service struct {
	Store         Store
	Projects      ProjectLookup
	Admission     *Admission
	Cache         Cache
	CacheTTL      time.Duration
	ListCacheTTL  time.Duration
	CreateLimiter RateLimiter
	IDGenerator   func() string
}

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

func (s *Service) List(ctx context.Context, projectID string, input ListInput) ([]*Snippet, error) {
	project, principal, err := s.scope(ctx, projectID)
	if err != nil {
		return nil, err
	}

	limit := defaultListLimit
	if input.Limit > 0 {
		limit = min(input.Limit, maxListLimit)
	}
	q := ListQuery{
		ProjectID:         project.ID,
		ProjectVisibility: project.Visibility,
		MinVisibility:     VisibleFloor(principal),
		Limit:             limit,
		Offset:            max(input.Offset, 0),
	}

	page, err := s.listPage(ctx, q)
	if err != nil {
		return nil, err
	}
	return FilterVisible(page, principal, project), nil
}

func (s *Service) Get(ctx context.Context, projectID, id string) (*Snippet, error) {
	project, principal, err := s.scope(ctx, projectID)
	if err != nil {
		return nil, err
	}

	snippet, err := s.load(ctx, project, id)
	if err != nil {
		return nil, err
	}
	if !CanView(principal, project, snippet) {
		return nil, apperrors.New(apperrors.KindNotFound, notFoundMessage)
	}
	return snippet, nil
}

// Raw returns the stored content untouched.
func (s *Service) Raw(ctx context.Context, projectID, id string) (string, error) {
	snippet, err := s.Get(ctx, projectID, id)
	if err != nil {
		return "", err
	}
	return snippet.Content, nil
}

func (s *Service) Create(ctx context.Context, projectID string, req CreateSnippetRequest) (*Snippet, error) {
	if s.Store == nil {
		return nil, apperrors.New(apperrors.KindInternal, "snippets store not configured")
	}
	authorID, ok := identity.UserID(ctx)
	if !ok || strings.TrimSpace(authorID) == "" {
		return nil, apperrors.New(apperrors.KindUnauthorized, "unauthorized")
	}

	project, principal, err := s.scope(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !CanCreate(principal) {
		return nil, apperrors.New(apperrors.KindForbidden, "forbidden")
	}

	if s.CreateLimiter != nil {
		allowed, retryAfter, err := s.CreateLimiter.Allow(ctx, "snippets:create:"+authorID)
		if err != nil {
			return nil, apperrors.New(apperrors.KindInternal, "rate limit error")
		}
		if !allowed {
			return nil, apperrors.RateLimit("too many requests", retryAfter)
		}
	}

	draft := Draft{
		Title:      strings.TrimSpace(req.Title),
		FileName:   strings.TrimSpace(req.FileName),
		Content:    req.Content,
		Visibility: req.Visibility,
	}
	if err := s.admit(ctx, draft, project, principal); err != nil {
		return nil, err
	}

	idGen := s.IDGenerator
	if idGen == nil {
		idGen = func() string {
			return "snp_" + internal.RandomHex(12)
		}
	}

	snippet := &Snippet{
		ID:         idGen(),
		Title:      draft.Title,
		FileName:   draft.FileName,
		Content:    draft.Content,
		Visibility: draft.Visibility,
		AuthorID:   authorID,
		ProjectID:  project.ID,
	}

	if err := s.Store.Create(ctx, snippet); err != nil {
		if IsDuplicateID(err) {
			return nil, apperrors.New(apperrors.KindConflict, "snippet already exists")
		}
		return nil, apperrors.New(apperrors.KindInternal, "failed to create snippet")
	}
	s.invalidate(ctx, project.ID, "")

	telemetry.LogInfo(ctx, "snippet created",
		telemetry.LogString("event", "snippet.created"),
		telemetry.LogString("snippet.id", snippet.ID),
		telemetry.LogString("project.id", project.ID),
		telemetry.LogString("snippet.visibility", snippet.Visibility.String()),
	)
	return snippet, nil
}

func (s *Service) Update(ctx context.Context, projectID, id string, req UpdateSnippetRequest) (*Snippet, error) {
	if s.Store == nil {
		return nil, apperrors.New(apperrors.KindInternal, "snippets store not configured")
	}
	if !identity.IsAuthenticated(ctx) {
		return nil, apperrors.New(apperrors.KindUnauthorized, "unauthorized")
	}

	project, principal, err := s.scope(ctx, projectID)
	if err != nil {
		return nil, err
	}
	existing, err := s.load(ctx, project, id)
	if err != nil {
		return nil, err
	}
	if !CanView(principal, project, existing) {
		return nil, apperrors.New(apperrors.KindNotFound, notFoundMessage)
	}
	if !CanModify(principal, existing) {
		return nil, apperrors.New(apperrors.KindForbidden, "forbidden")
	}

	if req.empty() {
		return nil, apperrors.New(apperrors.KindInvalidInput, "title, file_name, content, visibility are missing, at least one parameter must be provided")
	}

	draft := Draft{
		Title:      existing.Title,
		FileName:   existing.FileName,
		Content:    existing.Content,
		Visibility: existing.Visibility,
	}
	if req.Title != nil {
		draft.Title = strings.TrimSpace(*req.Title)
	}
	if req.FileName != nil {
		draft.FileName = strings.TrimSpace(*req.FileName)
	}
	if req.Content != nil {
		draft.Content = *req.Content
	}
	if req.Visibility != nil {
		draft.Visibility = *req.Visibility
	}
	if err := s.admit(ctx, draft, project, principal); err != nil {
		return nil, err
	}

	updated := *existing
	updated.Title = draft.Title
	updated.FileName = draft.FileName
	updated.Content = draft.Content
	updated.Visibility = draft.Visibility

	if err := s.Store.Update(ctx, &updated); err != nil {
		if IsNotFound(err) {
			return nil, apperrors.New(apperrors.KindNotFound, notFoundMessage)
		}
		return nil, apperrors.New(apperrors.KindInternal, "failed to update snippet")
	}
	s.invalidate(ctx, project.ID, updated.ID)

	telemetry.LogInfo(ctx, "snippet updated",
		telemetry.LogString("event", "snippet.updated"),
		telemetry.LogString("snippet.id", updated.ID),
		telemetry.LogString("project.id", project.ID),
	)
	return &updated, nil
}

func (s *Service) Delete(ctx context.Context, projectID, id string) (*Snippet, error) {
	if s.Store == nil {
		return nil, apperrors.New(apperrors.KindInternal, "snippets store not configured")
	}
	if !identity.IsAuthenticated(ctx) {
		return nil, apperrors.New(apperrors.KindUnauthorized, "unauthorized")
	}

	project, principal, err := s.scope(ctx, projectID)
	if err != nil {
		return nil, err
	}
	existing, err := s.load(ctx, project, id)
	if err != nil {
		return nil, err
	}
	if !CanView(principal, project, existing) {
		return nil, apperrors.New(apperrors.KindNotFound, notFoundMessage)
	}
	if !CanModify(principal, existing) {
		return nil, apperrors.New(apperrors.KindForbidden, "forbidden")
	}

	if err := s.Store.Delete(ctx, existing.ID); err != nil {
		if IsNotFound(err) {
			return nil, apperrors.New(apperrors.KindNotFound, notFoundMessage)
		}
		return nil, apperrors.New(apperrors.KindInternal, "failed to delete snippet")
	}
	s.invalidate(ctx, project.ID, existing.ID)

	telemetry.LogInfo(ctx, "snippet deleted",
		telemetry.LogString("event", "snippet.deleted"),
		telemetry.LogString("snippet.id", existing.ID),
		telemetry.LogString("project.id", project.ID),
	)
	return existing, nil
}

// scope loads the project through its visibility check and resolves the
// caller against it. A project the caller cannot see is 404 for every
// operation, writes included.
func (s *Service) scope(ctx context.Context, projectID string) (*projects.Project, Principal, error) {
	if s.Store == nil {
		return nil, Principal{}, apperrors.New(apperrors.KindInternal, "snippets store not configured")
	}
	if s.Projects == nil {
		return nil, Principal{}, apperrors.New(apperrors.KindInternal, "projects not configured")
	}

	project, err := s.Projects.GetVisible(ctx, projectID)
	if err != nil {
		return nil, Principal{}, err
	}

	userID, _ := identity.UserID(ctx)
	p := Principal{
		UserID:   strings.TrimSpace(userID),
		Admin:    identity.IsAdmin(ctx),
		External: identity.IsExternal(ctx),
	}
	if p.Authenticated() {
		member, err := s.Projects.IsMember(ctx, project.ID)
		if err != nil {
			return nil, Principal{}, err
		}
		p.Member = member
	}
	return project, p, nil
}

// load fetches a snippet that belongs to project, going through the cache.
func (s *Service) load(ctx context.Context, project *projects.Project, id string) (*Snippet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperrors.New(apperrors.KindNotFound, notFoundMessage)
	}

	var snippet *Snippet
	if s.Cache != nil {
		if cached, ok, err := s.Cache.GetByID(ctx, id); err == nil && ok {
			snippet = cached
		}
	}

	if snippet == nil {
		loaded, err := s.Store.GetByID(ctx, id)
		if err != nil {
			if IsNotFound(err) {
				return nil, apperrors.New(apperrors.KindNotFound, notFoundMessage)
			}
			return nil, apperrors.New(apperrors.KindInternal, "failed to load snippet")
		}
		snippet = loaded
		if s.Cache != nil && s.CacheTTL > 0 {
			_ = s.Cache.SetByID(ctx, snippet, s.CacheTTL)
		}
	}

	if snippet.ProjectID != project.ID {
		return nil, apperrors.New(apperrors.KindNotFound, notFoundMessage)
	}
	return snippet, nil
}

func (s *Service) listPage(ctx context.Context, q ListQuery) ([]*Snippet, error) {
	field := q.cacheField()
	if s.Cache != nil {
		if cached, ok, err := s.Cache.GetListPage(ctx, q.ProjectID, field); err == nil && ok {
			return cached, nil
		}
	}

	page, err := s.Store.ListByProject(ctx, q)
	if err != nil {
		return nil, apperrors.New(apperrors.KindInternal, "failed to list snippets")
	}

	if s.Cache != nil && s.ListCacheTTL > 0 {
		_ = s.Cache.SetListPage(ctx, q.ProjectID, field, page, s.ListCacheTTL)
	}
	return page, nil
}

func (s *Service) admit(ctx context.Context, draft Draft, project *projects.Project, p Principal) error {
	admission := s.Admission
	if admission == nil {
		admission = &Admission{}
	}
	decision, err := admission.Admit(ctx, draft, project, p)
	if err != nil {
		return err
	}
	return decision.Err()
}

func (s *Service) invalidate(ctx context.Context, projectID, id string) {
	if s.Cache == nil {
		return
	}
	var err error
	if id != "" {
		err = s.Cache.DeleteByID(ctx, id)
	}
	if listErr := s.Cache.DeleteProjectList(ctx, projectID); listErr != nil {
		err = listErr
	}
	if err != nil {
		telemetry.LogWarn(ctx, "snippet cache invalidation failed",
			telemetry.LogString("event", "snippet.cache_invalidate_failed"),
			telemetry.LogString("project.id", projectID),
			telemetry.LogErr(err),
		)
	}
}
