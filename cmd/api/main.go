package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	_ "github.com/PabloPavan/sniply_projects/docs"
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
	"github.com/PabloPavan/sniply_projects/internal/telemetry"
	"github.com/PabloPavan/sniply_projects/internal/users"
)

const serviceName = "sniply-projects"

func main() {
	port := internal.Env("APP_PORT", "8080")
	databaseURL := internal.MustEnv("DATABASE_URL")
	redisURL := strings.TrimSpace(internal.Env("REDIS_URL", ""))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := telemetry.Setup(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: internal.Env("APP_VERSION", ""),
		Environment:    internal.Env("APP_ENV", ""),
	})
	if err != nil {
		log.Fatalf("telemetry setup error: %v", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(flushCtx); err != nil {
			log.Printf("telemetry shutdown error: %v", err)
		}
	}()
	db.InitTelemetry(serviceName)

	d, err := db.NewWithOptions(ctx, databaseURL, db.PoolOptions{
		MaxConns:        int32(parseIntEnv("DB_MAX_CONNS", 10)),
		MinConns:        int32(parseIntEnv("DB_MIN_CONNS", 1)),
		MaxConnLifetime: parseDurationEnv("DB_MAX_CONN_LIFETIME", 30*time.Minute),
	})
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	defer d.Close()

	// Without Redis, sessions live in memory and caching and rate limiting
	// are off. Fine for a single local instance only.
	var redisClient *redis.Client
	if redisURL != "" {
		redisOpt, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Fatalf("redis url error: %v", err)
		}
		redisClient = redis.NewClient(redisOpt)
		defer redisClient.Close()
	} else {
		log.Printf("REDIS_URL not set: using in-memory sessions, no cache, no rate limits")
	}

	dbBase := db.NewBase(d.Pool, parseDurationEnv("DB_QUERY_TIMEOUT", 3*time.Second))
	usrRepo := users.NewRepository(dbBase)
	prjRepo := projects.NewRepository(dbBase)
	snRepo := snippets.NewRepository(dbBase)
	splRepo := spamlogs.NewRepository(dbBase)

	var sessionStore session.Store = session.NewMemoryStore()
	if redisClient != nil {
		sessionStore = session.NewRedisStore(redisClient, internal.Env("SESSION_REDIS_PREFIX", "sniply_projects:session:"))
	}
	sessionManager := &session.Manager{
		Store:         sessionStore,
		TTL:           parseDurationEnv("SESSION_TTL", 7*24*time.Hour),
		MaxAge:        parseDurationEnv("SESSION_MAX_AGE", 30*24*time.Hour),
		RefreshBefore: parseDurationEnv("SESSION_REFRESH_BEFORE", 24*time.Hour),
		IDBytes:       32,
	}

	cookie := session.CookieConfig{
		Name:     internal.Env("SESSION_COOKIE_NAME", session.DefaultCookieName),
		Path:     internal.Env("SESSION_COOKIE_PATH", "/"),
		Domain:   internal.Env("SESSION_COOKIE_DOMAIN", ""),
		Secure:   parseBoolEnv("SESSION_COOKIE_SECURE", true),
		SameSite: parseSameSiteEnv("SESSION_COOKIE_SAMESITE", http.SameSiteLaxMode),
	}

	loginLimiter := &ratelimit.Limiter{
		Client: redisClient,
		Prefix: "sniply_projects:ratelimit:",
		Limit:  parseIntEnv("LOGIN_RATE_LIMIT", 5),
		Window: parseDurationEnv("LOGIN_RATE_WINDOW", time.Minute),
	}
	createLimiter := &ratelimit.Limiter{
		Client: redisClient,
		Prefix: "sniply_projects:ratelimit:",
		Limit:  parseIntEnv("SNIPPETS_CREATE_RATE_LIMIT", 30),
		Window: parseDurationEnv("SNIPPETS_CREATE_RATE_WINDOW", time.Minute),
	}

	classifier, err := newClassifier(redisClient)
	if err != nil {
		log.Fatalf("spam classifier error: %v", err)
	}

	usersSvc := &users.Service{Store: usrRepo, Sessions: sessionManager}
	projectsSvc := &projects.Service{Store: prjRepo}
	spamLogsSvc := &spamlogs.Service{Store: splRepo}
	authSvc := &auth.Service{
		Users:        usrRepo,
		Sessions:     sessionManager,
		LoginLimiter: loginLimiter,
	}
	snippetsSvc := &snippets.Service{
		Store:    snRepo,
		Projects: projectsSvc,
		Admission: &snippets.Admission{
			Classifier: classifier,
			OnSpam:     spamLogsSvc.RecordAttempt,
		},
		CreateLimiter: createLimiter,
	}
	if redisClient != nil {
		snippetsSvc.Cache = snippets.NewRedisCache(redisClient, "sniply_projects:cache:")
		snippetsSvc.CacheTTL = parseDurationEnv("SNIPPETS_CACHE_TTL", 2*time.Minute)
		snippetsSvc.ListCacheTTL = parseDurationEnv("SNIPPETS_LIST_CACHE_TTL", 30*time.Second)
	}

	checks := map[string]httpapi.PingFunc{"db": d.Ping}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}

	app := &httpapi.App{
		Health:   &httpapi.HealthHandler{Checks: checks},
		Snippets: &httpapi.SnippetsHandler{Service: snippetsSvc},
		Projects: &httpapi.ProjectsHandler{Service: projectsSvc},
		SpamLogs: &httpapi.SpamLogsHandler{Service: spamLogsSvc},
		Users:    &httpapi.UsersHandler{Service: usersSvc},
		Auth:     &httpapi.AuthHandler{Service: authSvc, Cookie: cookie},

		Authenticator:  authSvc,
		AuthOptions:    httpapi.AuthOptions{Cookie: cookie},
		AllowedOrigins: parseListEnv("CORS_ALLOWED_ORIGINS"),
		ServiceName:    serviceName,
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           httpapi.NewRouter(app),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("api listening on :%s", port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
}

// newClassifier picks the remote scorer when SPAM_CLASSIFIER_URL is set and
// the keyword rules otherwise. Verdicts are cached in Redis when available.
func newClassifier(redisClient *redis.Client) (spam.Classifier, error) {
	var base spam.Classifier
	if endpoint := strings.TrimSpace(internal.Env("SPAM_CLASSIFIER_URL", "")); endpoint != "" {
		base = &spam.HTTPClassifier{
			Endpoint: endpoint,
			Token:    internal.Env("SPAM_CLASSIFIER_TOKEN", ""),
			Timeout:  parseDurationEnv("SPAM_CLASSIFIER_TIMEOUT", 2*time.Second),
		}
	} else {
		kw, err := spam.NewKeywordClassifier(
			spam.ParseKeywords(internal.Env("SPAM_KEYWORDS", "")),
			parseIntEnv("SPAM_MAX_LINKS", 0),
		)
		if err != nil {
			return nil, err
		}
		base = kw
	}

	if redisClient == nil {
		return base, nil
	}
	return spam.NewCachedClassifier(base, redisClient, "sniply_projects:spam:",
		parseDurationEnv("SPAM_VERDICT_CACHE_TTL", time.Hour)), nil
}

func parseDurationEnv(key string, def time.Duration) time.Duration {
	val := strings.TrimSpace(internal.Env(key, ""))
	if val == "" {
		return def
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		log.Printf("invalid %s: %q, using default", key, val)
		return def
	}
	return d
}

func parseIntEnv(key string, def int) int {
	val := strings.TrimSpace(internal.Env(key, ""))
	if val == "" {
		return def
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		log.Printf("invalid %s: %q, using default", key, val)
		return def
	}
	return n
}

func parseBoolEnv(key string, def bool) bool {
	val := strings.TrimSpace(internal.Env(key, ""))
	if val == "" {
		return def
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		log.Printf("invalid %s: %q, using default", key, val)
		return def
	}
	return b
}

func parseListEnv(key string) []string {
	var out []string
	for _, part := range strings.Split(internal.Env(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseSameSiteEnv(key string, def http.SameSite) http.SameSite {
	val := strings.ToLower(strings.TrimSpace(internal.Env(key, "")))
	switch val {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	case "lax":
		return http.SameSiteLaxMode
	case "":
		return def
	default:
		log.Printf("invalid %s: %q, using default", key, val)
		return def
	}
}
