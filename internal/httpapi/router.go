package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/PabloPavan/sniply_projects/internal/telemetry"
)

type App struct {
	Health   *HealthHandler
	Snippets *SnippetsHandler
	Projects *ProjectsHandler
	SpamLogs *SpamLogsHandler
	Users    *UsersHandler
	Auth     *AuthHandler

	Authenticator  Authenticator
	AuthOptions    AuthOptions
	AllowedOrigins []string
	ServiceName    string
}

func NewRouter(app *App) http.Handler {
	serviceName := app.ServiceName
	if serviceName == "" {
		serviceName = "sniply-projects"
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(telemetry.ChiMiddleware(serviceName))
	r.Use(ClientMiddleware)
	if len(app.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   app.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Retry-After"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	optionalOpts := app.AuthOptions
	optionalOpts.Optional = true
	requiredOpts := app.AuthOptions
	requiredOpts.Optional = false
	optional := AuthMiddleware(app.Authenticator, optionalOpts)
	required := AuthMiddleware(app.Authenticator, requiredOpts)

	r.Get("/health", app.Health.Get)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", app.Auth.Login)
			r.Post("/logout", app.Auth.Logout)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/", app.Users.Create)

			r.Group(func(r chi.Router) {
				r.Use(required)
				r.Get("/me", app.Users.Me)
				r.Put("/{id}/role", app.Users.SetRole)
			})
		})

		r.Route("/projects", func(r chi.Router) {
			r.With(required).Post("/", app.Projects.Create)

			r.Route("/{projectID}", func(r chi.Router) {
				// Reads are open to anonymous callers; visibility decides.
				r.Group(func(r chi.Router) {
					r.Use(optional)
					r.Get("/", app.Projects.Get)
					r.Get("/snippets", app.Snippets.List)
					r.Get("/snippets/{id}", app.Snippets.Get)
					r.Get("/snippets/{id}/raw", app.Snippets.Raw)
				})

				r.Group(func(r chi.Router) {
					r.Use(required)
					r.Post("/members", app.Projects.AddMember)
					r.Post("/snippets", app.Snippets.Create)
					r.Put("/snippets/{id}", app.Snippets.Update)
					r.Delete("/snippets/{id}", app.Snippets.Delete)
				})
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(required)
			r.Get("/spam_logs", app.SpamLogs.List)
		})
	})
	return r
}
