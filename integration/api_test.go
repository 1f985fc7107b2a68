package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/PabloPavan/sniply_projects/internal"
	"github.com/PabloPavan/sniply_projects/internal/auth"
	"github.com/PabloPavan/sniply_projects/internal/db"
	"github.com/PabloPavan/sniply_projects/internal/httpapi"
	"github.com/PabloPavan/sniply_projects/internal/projects"
	"github.com/PabloPavan/sniply_projects/internal/ratelimit"
	"github.com/PabloPavan/sniply_projects/internal/session"
	"github.com/PabloPavan/sniply_projects/internal/snippets"
	"github.com/PabloPavan/sniply_projects/internal/spam"
	"github.com/PabloPavan/sniply_projects/internal/spamlogs"
	"github.com/PabloPavan/sniply_projects/internal/users"
	"github.com/PabloPavan/sniply_projects/migrations"
)

type testEnv struct {
	baseURL string
	server  *httptest.Server
	users   *users.Repository
}

// newTestEnv wires the real Postgres repositories behind the router. Redis
// is a miniredis instance; the classifier flags the word "casino".
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := db.New(ctx, databaseURL)
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}
	t.Cleanup(pool.Close)
	if _, err := db.Migrate(ctx, pool.Pool, migrations.FS); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })

	base := db.NewBase(pool.Pool, 3*time.Second)
	usrRepo := users.NewRepository(base)

	sessionManager := &session.Manager{
		Store:   session.NewRedisStore(redisClient, "it:session:"),
		TTL:     5 * time.Minute,
		IDBytes: 16,
	}
	cookieCfg := session.CookieConfig{Path: "/"}

	keywords, err := spam.NewKeywordClassifier([]string{"casino"}, 0)
	if err != nil {
		t.Fatalf("classifier: %v", err)
	}

	projectsSvc := &projects.Service{Store: projects.NewRepository(base)}
	spamLogsSvc := &spamlogs.Service{Store: spamlogs.NewRepository(base)}
	authSvc := &auth.Service{
		Users:        usrRepo,
		Sessions:     sessionManager,
		LoginLimiter: &ratelimit.Limiter{Client: redisClient, Prefix: "it:rl:", Limit: 50},
	}
	snippetsSvc := &snippets.Service{
		Store:    snippets.NewRepository(base),
		Projects: projectsSvc,
		Admission: &snippets.Admission{
			Classifier: spam.NewCachedClassifier(keywords, redisClient, "it:spam:", time.Minute),
			OnSpam:     spamLogsSvc.RecordAttempt,
		},
		Cache:        snippets.NewRedisCache(redisClient, "it:cache:"),
		CacheTTL:     time.Minute,
		ListCacheTTL: time.Minute,
	}

	app := &httpapi.App{
		Health:        &httpapi.HealthHandler{Checks: map[string]httpapi.PingFunc{"db": pool.Ping}},
		Snippets:      &httpapi.SnippetsHandler{Service: snippetsSvc},
		Projects:      &httpapi.ProjectsHandler{Service: projectsSvc},
		SpamLogs:      &httpapi.SpamLogsHandler{Service: spamLogsSvc},
		Users:         &httpapi.UsersHandler{Service: &users.Service{Store: usrRepo, Sessions: sessionManager}},
		Auth:          &httpapi.AuthHandler{Service: authSvc, Cookie: cookieCfg},
		Authenticator: authSvc,
		AuthOptions:   httpapi.AuthOptions{Cookie: cookieCfg},
	}

	srv := httptest.NewServer(httpapi.NewRouter(app))
	t.Cleanup(srv.Close)

	return &testEnv{baseURL: srv.URL, server: srv, users: usrRepo}
}

type apiClient struct {
	http *http.Client
	csrf string
}

func newClient(t *testing.T) *apiClient {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &apiClient{http: &http.Client{Jar: jar}}
}

func createUser(t *testing.T, env *testEnv, c *apiClient, email, password string) users.UserResponse {
	t.Helper()

	res := doJSON(t, c, http.MethodPost, env.baseURL+"/v1/users", map[string]string{
		"email":    email,
		"password": password,
	})
	defer res.Body.Close()
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("create user status: %d", res.StatusCode)
	}

	var out users.UserResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatalf("decode create user: %v", err)
	}
	t.Cleanup(func() { _ = env.users.Delete(context.Background(), out.ID) })
	return out
}

func login(t *testing.T, c *apiClient, baseURL, email, password string) {
	t.Helper()

	res := doJSON(t, c, http.MethodPost, baseURL+"/v1/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("login status: %d", res.StatusCode)
	}

	var out httpapi.LoginResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	if out.CSRFToken == "" {
		t.Fatal("missing csrf token after login")
	}
	c.csrf = out.CSRFToken
}

// signUp creates a user with a random email and logs the client in.
func signUp(t *testing.T, env *testEnv, c *apiClient) users.UserResponse {
	t.Helper()
	email := fmt.Sprintf("ci_%s@local", internal.RandomHex(6))
	u := createUser(t, env, c, email, "secret123")
	login(t, c, env.baseURL, email, "secret123")
	return u
}

func makeAdmin(t *testing.T, env *testEnv, userID string) {
	t.Helper()
	if err := env.users.SetRole(context.Background(), userID, users.RoleAdmin); err != nil {
		t.Fatalf("set admin role: %v", err)
	}
}

func doJSON(t *testing.T, c *apiClient, method, url string, body any) *http.Response {
	t.Helper()

	var buf *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal json: %v", err)
		}
		buf = bytes.NewReader(b)
	} else {
		buf = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.csrf != "" {
		req.Header.Set("X-CSRF-Token", c.csrf)
	}

	res, err := c.http.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	return res
}

func decode[T any](t *testing.T, res *http.Response) T {
	t.Helper()
	defer res.Body.Close()
	var out T
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func expectStatus(t *testing.T, res *http.Response, want int) {
	t.Helper()
	if res.StatusCode != want {
		body, _ := io.ReadAll(res.Body)
		_ = res.Body.Close()
		t.Fatalf("status %d, want %d: %s", res.StatusCode, want, body)
	}
}

func createProject(t *testing.T, env *testEnv, c *apiClient, level string) projects.Project {
	t.Helper()
	res := doJSON(t, c, http.MethodPost, env.baseURL+"/v1/projects", map[string]string{
		"name":       "ci " + internal.RandomHex(4),
		"visibility": level,
	})
	expectStatus(t, res, http.StatusCreated)
	return decode[projects.Project](t, res)
}

func createSnippet(t *testing.T, env *testEnv, c *apiClient, projectID string, body map[string]string) *http.Response {
	t.Helper()
	return doJSON(t, c, http.MethodPost, env.baseURL+"/v1/projects/"+projectID+"/snippets", body)
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t)

	res, err := http.Get(env.baseURL + "/health")
	if err != nil {
		t.Fatalf("health request: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("health status: %d", res.StatusCode)
	}
}

func TestAuthLoginLogout(t *testing.T) {
	env := newTestEnv(t)
	c := newClient(t)
	signUp(t, env, c)

	res := doJSON(t, c, http.MethodGet, env.baseURL+"/v1/users/me", nil)
	expectStatus(t, res, http.StatusOK)
	_ = res.Body.Close()

	res = doJSON(t, c, http.MethodPost, env.baseURL+"/v1/auth/logout", nil)
	expectStatus(t, res, http.StatusNoContent)
	_ = res.Body.Close()

	res = doJSON(t, c, http.MethodGet, env.baseURL+"/v1/users/me", nil)
	expectStatus(t, res, http.StatusUnauthorized)
	_ = res.Body.Close()
}

func TestSnippetLifecycle(t *testing.T) {
	env := newTestEnv(t)
	owner := newClient(t)
	signUp(t, env, owner)
	anon := newClient(t)

	project := createProject(t, env, owner, "public")
	base := env.baseURL + "/v1/projects/" + project.ID + "/snippets"

	content := "#!/bin/sh\n\techo  hi\n\n"
	res := createSnippet(t, env, owner, project.ID, map[string]string{
		"title": "hello", "file_name": "hi.sh", "content": content, "visibility": "public",
	})
	expectStatus(t, res, http.StatusCreated)
	public := decode[snippets.Snippet](t, res)

	res = createSnippet(t, env, owner, project.ID, map[string]string{
		"title": "secret", "file_name": "s.txt", "content": "hidden", "visibility": "private",
	})
	expectStatus(t, res, http.StatusCreated)
	private := decode[snippets.Snippet](t, res)

	res = doJSON(t, anon, http.MethodGet, base+"/"+public.ID+"/raw", nil)
	expectStatus(t, res, http.StatusOK)
	raw, _ := io.ReadAll(res.Body)
	_ = res.Body.Close()
	if string(raw) != content {
		t.Fatalf("raw content differs: %q", raw)
	}

	res = doJSON(t, anon, http.MethodGet, base+"/"+private.ID, nil)
	expectStatus(t, res, http.StatusNotFound)
	if msg := decode[httpapi.ErrorResponse](t, res).Message; msg != "404 Snippet Not Found" {
		t.Fatalf("unexpected message: %s", msg)
	}

	res = doJSON(t, anon, http.MethodGet, base, nil)
	expectStatus(t, res, http.StatusOK)
	if list := decode[[]snippets.Snippet](t, res); len(list) != 1 || list[0].ID != public.ID {
		t.Fatalf("anonymous list: %+v", list)
	}

	res = doJSON(t, owner, http.MethodGet, base, nil)
	expectStatus(t, res, http.StatusOK)
	if list := decode[[]snippets.Snippet](t, res); len(list) != 2 {
		t.Fatalf("owner list size: %d", len(list))
	}

	res = doJSON(t, owner, http.MethodPut, base+"/snp_missing", map[string]string{"title": "x"})
	expectStatus(t, res, http.StatusNotFound)
	_ = res.Body.Close()

	res = doJSON(t, owner, http.MethodPut, base+"/"+public.ID, map[string]string{})
	expectStatus(t, res, http.StatusBadRequest)
	_ = res.Body.Close()

	res = doJSON(t, owner, http.MethodPut, base+"/"+public.ID, map[string]string{"title": "renamed"})
	expectStatus(t, res, http.StatusOK)
	if got := decode[snippets.Snippet](t, res); got.Title != "renamed" || got.Content != content {
		t.Fatalf("unexpected update: %+v", got)
	}

	res = doJSON(t, owner, http.MethodDelete, base+"/"+private.ID, nil)
	expectStatus(t, res, http.StatusOK)
	_ = res.Body.Close()

	res = doJSON(t, owner, http.MethodGet, base+"/"+private.ID, nil)
	expectStatus(t, res, http.StatusNotFound)
	_ = res.Body.Close()
}

func TestNonMemberCannotCreate(t *testing.T) {
	env := newTestEnv(t)
	owner := newClient(t)
	signUp(t, env, owner)
	other := newClient(t)
	signUp(t, env, other)

	project := createProject(t, env, owner, "public")

	res := createSnippet(t, env, other, project.ID, map[string]string{
		"title": "t", "file_name": "f", "content": "c", "visibility": "public",
	})
	expectStatus(t, res, http.StatusForbidden)
	_ = res.Body.Close()
}

func TestPrivateProjectHiddenFromOutsiders(t *testing.T) {
	env := newTestEnv(t)
	owner := newClient(t)
	signUp(t, env, owner)
	other := newClient(t)
	signUp(t, env, other)
	anon := newClient(t)

	project := createProject(t, env, owner, "private")
	base := env.baseURL + "/v1/projects/" + project.ID + "/snippets"

	res := createSnippet(t, env, owner, project.ID, map[string]string{
		"title": "t", "file_name": "f", "content": "c", "visibility": "public",
	})
	expectStatus(t, res, http.StatusCreated)
	_ = res.Body.Close()

	for name, c := range map[string]*apiClient{"anonymous": anon, "stranger": other} {
		res = doJSON(t, c, http.MethodGet, base, nil)
		expectStatus(t, res, http.StatusNotFound)
		if msg := decode[httpapi.ErrorResponse](t, res).Message; msg != "404 Project Not Found" {
			t.Fatalf("%s: unexpected message: %s", name, msg)
		}
	}

	res = createSnippet(t, env, other, project.ID, map[string]string{
		"title": "t", "file_name": "f", "content": "c", "visibility": "private",
	})
	expectStatus(t, res, http.StatusNotFound)
	_ = res.Body.Close()
}

func TestSpamAdmission(t *testing.T) {
	env := newTestEnv(t)
	owner := newClient(t)
	signUp(t, env, owner)
	admin := newClient(t)
	adminUser := signUp(t, env, admin)
	makeAdmin(t, env, adminUser.ID)
	// Role is read at login, so log in again.
	res := doJSON(t, admin, http.MethodPost, env.baseURL+"/v1/auth/logout", nil)
	_ = res.Body.Close()
	login(t, admin, env.baseURL, adminUser.Email, "secret123")

	publicProject := createProject(t, env, owner, "public")
	privateProject := createProject(t, env, owner, "private")
	spamBody := func(level string) map[string]string {
		return map[string]string{"title": "win", "file_name": "ad.txt", "content": "best casino online", "visibility": level}
	}

	res = createSnippet(t, env, owner, publicProject.ID, spamBody("private"))
	expectStatus(t, res, http.StatusCreated)
	_ = res.Body.Close()

	res = createSnippet(t, env, owner, privateProject.ID, spamBody("public"))
	expectStatus(t, res, http.StatusCreated)
	_ = res.Body.Close()

	res = createSnippet(t, env, owner, publicProject.ID, spamBody("public"))
	expectStatus(t, res, http.StatusBadRequest)
	if msg := decode[httpapi.ErrorResponse](t, res).Message; msg != "Spam detected" {
		t.Fatalf("unexpected message: %s", msg)
	}

	res = doJSON(t, admin, http.MethodGet, env.baseURL+"/v1/admin/spam_logs?limit=500", nil)
	expectStatus(t, res, http.StatusOK)
	logs := decode[[]spamlogs.Log](t, res)
	count := 0
	for _, l := range logs {
		if l.ProjectID == publicProject.ID {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected one spam log for project, got %d", count)
	}

	res = doJSON(t, owner, http.MethodGet, env.baseURL+"/v1/admin/spam_logs", nil)
	expectStatus(t, res, http.StatusForbidden)
	_ = res.Body.Close()
}
