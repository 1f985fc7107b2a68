package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloPavan/sniply_projects/internal/apperrors"
	"github.com/PabloPavan/sniply_projects/internal/auth"
	"github.com/PabloPavan/sniply_projects/internal/identity"
	"github.com/PabloPavan/sniply_projects/internal/projects"
	"github.com/PabloPavan/sniply_projects/internal/session"
	"github.com/PabloPavan/sniply_projects/internal/snippets"
	"github.com/PabloPavan/sniply_projects/internal/spamlogs"
	"github.com/PabloPavan/sniply_projects/internal/users"
	"github.com/PabloPavan/sniply_projects/internal/visibility"
)

type snippetsStub struct {
	listFn   func(ctx context.Context, projectID string, input snippets.ListInput) ([]*snippets.Snippet, error)
	getFn    func(ctx context.Context, projectID, id string) (*snippets.Snippet, error)
	rawFn    func(ctx context.Context, projectID, id string) (string, error)
	createFn func(ctx context.Context, projectID string, req snippets.CreateSnippetRequest) (*snippets.Snippet, error)
	updateFn func(ctx context.Context, projectID, id string, req snippets.UpdateSnippetRequest) (*snippets.Snippet, error)
	deleteFn func(ctx context.Context, projectID, id string) (*snippets.Snippet, error)
}

func (s *snippetsStub) List(ctx context.Context, projectID string, input snippets.ListInput) ([]*snippets.Snippet, error) {
	if s.listFn != nil {
		return s.listFn(ctx, projectID, input)
	}
	return []*snippets.Snippet{}, nil
}

func (s *snippetsStub) Get(ctx context.Context, projectID, id string) (*snippets.Snippet, error) {
	if s.getFn != nil {
		return s.getFn(ctx, projectID, id)
	}
	return nil, apperrors.New(apperrors.KindNotFound, "404 Snippet Not Found")
}

func (s *snippetsStub) Raw(ctx context.Context, projectID, id string) (string, error) {
	if s.rawFn != nil {
		return s.rawFn(ctx, projectID, id)
	}
	return "", apperrors.New(apperrors.KindNotFound, "404 Snippet Not Found")
}

func (s *snippetsStub) Create(ctx context.Context, projectID string, req snippets.CreateSnippetRequest) (*snippets.Snippet, error) {
	if s.createFn != nil {
		return s.createFn(ctx, projectID, req)
	}
	return nil, errors.New("not implemented")
}

func (s *snippetsStub) Update(ctx context.Context, projectID, id string, req snippets.UpdateSnippetRequest) (*snippets.Snippet, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, projectID, id, req)
	}
	return nil, errors.New("not implemented")
}

func (s *snippetsStub) Delete(ctx context.Context, projectID, id string) (*snippets.Snippet, error) {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, projectID, id)
	}
	return nil, errors.New("not implemented")
}

type projectsStub struct{}

func (projectsStub) Create(ctx context.Context, req projects.CreateProjectRequest) (*projects.Project, error) {
	return &projects.Project{ID: "prj_1", Name: req.Name, Visibility: req.Visibility}, nil
}

func (projectsStub) GetVisible(ctx context.Context, id string) (*projects.Project, error) {
	return &projects.Project{ID: id, Visibility: visibility.Public}, nil
}

func (projectsStub) AddMember(ctx context.Context, projectID, userID string) error {
	return nil
}

type spamLogsStub struct{}

func (spamLogsStub) List(ctx context.Context, f spamlogs.Filter) ([]*spamlogs.Log, error) {
	if !identity.IsAdmin(ctx) {
		return nil, apperrors.New(apperrors.KindForbidden, "forbidden")
	}
	return []*spamlogs.Log{{ID: "spl_1"}}, nil
}

type usersStub struct{}

func (usersStub) Create(ctx context.Context, req users.CreateUserRequest) (*users.User, error) {
	return &users.User{ID: "usr_new", Email: req.Email}, nil
}

func (usersStub) Me(ctx context.Context) (*users.User, error) {
	id, _ := identity.UserID(ctx)
	return &users.User{ID: id}, nil
}

func (usersStub) SetRole(ctx context.Context, targetID, role string) error {
	return nil
}

type authStub struct{}

func (authStub) Login(ctx context.Context, input auth.LoginInput) (auth.LoginResult, error) {
	return auth.LoginResult{
		UserID:   "usr_1",
		UserRole: "user",
		Session:  auth.SessionInfo{ID: "ses_1", CSRFToken: "csrf", ExpiresAt: time.Now().Add(time.Hour)},
	}, nil
}

func (authStub) Logout(ctx context.Context, sessionID string) error {
	return nil
}

// authenticatorStub accepts cookie values of the form "<user>:<role>".
type authenticatorStub struct{}

func (authenticatorStub) AuthenticateSession(ctx context.Context, sessionID, csrfToken, method string) (auth.SessionInfo, bool, error) {
	userID, role, ok := strings.Cut(sessionID, ":")
	if !ok {
		return auth.SessionInfo{}, false, apperrors.New(apperrors.KindUnauthorized, "unauthorized")
	}
	return auth.SessionInfo{ID: sessionID, UserID: userID, Role: role}, false, nil
}

func newTestRouter(sn *snippetsStub) http.Handler {
	return NewRouter(&App{
		Health:        &HealthHandler{Checks: map[string]PingFunc{"db": func(context.Context) error { return nil }}},
		Snippets:      &SnippetsHandler{Service: sn},
		Projects:      &ProjectsHandler{Service: projectsStub{}},
		SpamLogs:      &SpamLogsHandler{Service: spamLogsStub{}},
		Users:         &UsersHandler{Service: usersStub{}},
		Auth:          &AuthHandler{Service: authStub{}},
		Authenticator: authenticatorStub{},
		ServiceName:   "test",
	})
}

func do(t *testing.T, h http.Handler, method, path, body, sessionID string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: sessionID})
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Message
}

func TestGetSnippetNotFound(t *testing.T) {
	h := newTestRouter(&snippetsStub{})

	rec := do(t, h, http.MethodGet, "/v1/projects/prj_1/snippets/snp_x", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "404 Snippet Not Found", decodeMessage(t, rec))
}

func TestRawSnippetIsPlainText(t *testing.T) {
	content := "#!/bin/sh\n\necho \"hi\"  \n"
	h := newTestRouter(&snippetsStub{rawFn: func(ctx context.Context, projectID, id string) (string, error) {
		assert.Equal(t, "prj_1", projectID)
		assert.Equal(t, "snp_1", id)
		return content, nil
	}})

	rec := do(t, h, http.MethodGet, "/v1/projects/prj_1/snippets/snp_1/raw", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain"))
	assert.Equal(t, content, rec.Body.String())
}

func TestListPassesPaging(t *testing.T) {
	var got snippets.ListInput
	h := newTestRouter(&snippetsStub{listFn: func(ctx context.Context, projectID string, input snippets.ListInput) ([]*snippets.Snippet, error) {
		got = input
		return []*snippets.Snippet{{ID: "snp_1"}}, nil
	}})

	rec := do(t, h, http.MethodGet, "/v1/projects/prj_1/snippets?limit=5&offset=10", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, snippets.ListInput{Limit: 5, Offset: 10}, got)
}

func TestAnonymousReadWithBadCookie(t *testing.T) {
	var sawUser bool
	h := newTestRouter(&snippetsStub{listFn: func(ctx context.Context, projectID string, input snippets.ListInput) ([]*snippets.Snippet, error) {
		sawUser = identity.IsAuthenticated(ctx)
		return []*snippets.Snippet{}, nil
	}})

	rec := do(t, h, http.MethodGet, "/v1/projects/prj_1/snippets", "", "garbage")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, sawUser)
}

func TestCreateSnippetRequiresSession(t *testing.T) {
	h := newTestRouter(&snippetsStub{})

	rec := do(t, h, http.MethodPost, "/v1/projects/prj_1/snippets", `{"title":"t"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateSnippet(t *testing.T) {
	var got snippets.CreateSnippetRequest
	h := newTestRouter(&snippetsStub{createFn: func(ctx context.Context, projectID string, req snippets.CreateSnippetRequest) (*snippets.Snippet, error) {
		got = req
		return &snippets.Snippet{ID: "snp_1", ProjectID: projectID, Content: req.Content, Visibility: req.Visibility}, nil
	}})

	rec := do(t, h, http.MethodPost, "/v1/projects/prj_1/snippets",
		`{"title":"t","file_name":"a.sh","content":"ls\n","visibility":"internal"}`, "usr_1:user")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, visibility.Internal, got.Visibility)
	assert.Equal(t, "ls\n", got.Content)

	var out snippets.Snippet
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "snp_1", out.ID)
}

func TestCreateSnippetDefaultsToPrivate(t *testing.T) {
	var got snippets.CreateSnippetRequest
	h := newTestRouter(&snippetsStub{createFn: func(ctx context.Context, projectID string, req snippets.CreateSnippetRequest) (*snippets.Snippet, error) {
		got = req
		return &snippets.Snippet{ID: "snp_1"}, nil
	}})

	rec := do(t, h, http.MethodPost, "/v1/projects/prj_1/snippets", `{"title":"t","file_name":"f","content":"c"}`, "usr_1:user")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, visibility.Private, got.Visibility)
}

func TestCreateSnippetBadVisibility(t *testing.T) {
	h := newTestRouter(&snippetsStub{})

	rec := do(t, h, http.MethodPost, "/v1/projects/prj_1/snippets", `{"title":"t","visibility":"secret"}`, "usr_1:user")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "visibility is invalid", decodeMessage(t, rec))
}

func TestCreateSnippetSpam(t *testing.T) {
	h := newTestRouter(&snippetsStub{createFn: func(ctx context.Context, projectID string, req snippets.CreateSnippetRequest) (*snippets.Snippet, error) {
		return nil, apperrors.New(apperrors.KindSpam, "Spam detected")
	}})

	rec := do(t, h, http.MethodPost, "/v1/projects/prj_1/snippets", `{"title":"t","file_name":"f","content":"c","visibility":"public"}`, "usr_1:user")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Spam detected", decodeMessage(t, rec))
}

func TestCreateSnippetRateLimited(t *testing.T) {
	h := newTestRouter(&snippetsStub{createFn: func(ctx context.Context, projectID string, req snippets.CreateSnippetRequest) (*snippets.Snippet, error) {
		return nil, apperrors.RateLimit("too many requests", 1500*time.Millisecond)
	}})

	rec := do(t, h, http.MethodPost, "/v1/projects/prj_1/snippets", `{"title":"t"}`, "usr_1:user")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestUpdateSnippetPassesOnlySentFields(t *testing.T) {
	var got snippets.UpdateSnippetRequest
	h := newTestRouter(&snippetsStub{updateFn: func(ctx context.Context, projectID, id string, req snippets.UpdateSnippetRequest) (*snippets.Snippet, error) {
		got = req
		return &snippets.Snippet{ID: id}, nil
	}})

	rec := do(t, h, http.MethodPut, "/v1/projects/prj_1/snippets/snp_1", `{"visibility":"public"}`, "usr_1:user")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, got.Title)
	assert.Nil(t, got.Content)
	require.NotNil(t, got.Visibility)
	assert.Equal(t, visibility.Public, *got.Visibility)
}

func TestDeleteSnippetReturnsSnippet(t *testing.T) {
	h := newTestRouter(&snippetsStub{deleteFn: func(ctx context.Context, projectID, id string) (*snippets.Snippet, error) {
		return &snippets.Snippet{ID: id}, nil
	}})

	rec := do(t, h, http.MethodDelete, "/v1/projects/prj_1/snippets/snp_1", "", "usr_1:user")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"snp_1"`)
}

func TestInternalErrorIsHidden(t *testing.T) {
	h := newTestRouter(&snippetsStub{getFn: func(ctx context.Context, projectID, id string) (*snippets.Snippet, error) {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to load snippet", errors.New("pg: connection refused"))
	}})

	rec := do(t, h, http.MethodGet, "/v1/projects/prj_1/snippets/snp_1", "", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal error", decodeMessage(t, rec))
}

func TestSpamLogsAdminOnly(t *testing.T) {
	h := newTestRouter(&snippetsStub{})

	rec := do(t, h, http.MethodGet, "/v1/admin/spam_logs", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodGet, "/v1/admin/spam_logs", "", "usr_1:user")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, h, http.MethodGet, "/v1/admin/spam_logs", "", "usr_a:admin")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginSetsCookie(t *testing.T) {
	h := newTestRouter(&snippetsStub{})

	rec := do(t, h, http.MethodPost, "/v1/auth/login", `{"email":"a@b.c","password":"x"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var out LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "csrf", out.CSRFToken)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "ses_1", cookies[0].Value)
}

func TestHealthDegraded(t *testing.T) {
	h := &HealthHandler{Checks: map[string]PingFunc{
		"db":    func(context.Context) error { return nil },
		"redis": func(context.Context) error { return errors.New("down") },
	}}

	rec := httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var out HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "down", out.Checks["redis"])
	assert.Equal(t, "ok", out.Checks["db"])
}

func TestUserCreateValidation(t *testing.T) {
	h := newTestRouter(&snippetsStub{})

	rec := do(t, h, http.MethodPost, "/v1/users", `{"email":"nope","password":"x"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid email", decodeMessage(t, rec))

	rec = do(t, h, http.MethodPost, "/v1/users", `{"email":"a@b.co","password":"x"}`, "")
	assert.Equal(t, http.StatusCreated, rec.Code)
}
