package httpapi

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/PabloPavan/sniply_projects/internal/auth"
	"github.com/PabloPavan/sniply_projects/internal/identity"
	"github.com/PabloPavan/sniply_projects/internal/session"
)

type Authenticator interface {
	AuthenticateSession(ctx context.Context, sessionID, csrfToken, method string) (auth.SessionInfo, bool, error)
}

type AuthOptions struct {
	Cookie session.CookieConfig
	// Optional lets requests without a usable session through as anonymous.
	Optional bool
}

func AuthMiddleware(authenticator Authenticator, opts AuthOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if authenticator == nil {
				writeError(w, http.StatusInternalServerError, "auth not configured")
				return
			}

			sessionID := opts.Cookie.Read(r)
			if sessionID == "" && opts.Optional {
				next.ServeHTTP(w, r)
				return
			}

			csrfToken := r.Header.Get("X-CSRF-Token")
			sess, refreshed, err := authenticator.AuthenticateSession(r.Context(), sessionID, csrfToken, r.Method)
			if err != nil {
				if opts.Optional {
					next.ServeHTTP(w, r)
					return
				}
				writeAppError(w, err)
				return
			}

			if refreshed {
				opts.Cookie.Write(w, sess.ID, sess.ExpiresAt)
			}

			ctx := identity.WithUser(r.Context(), sess.UserID, sess.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClientMiddleware records the caller's address and user agent. It runs
// after chi's RealIP so RemoteAddr is already resolved.
func ClientMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := identity.WithClient(r.Context(), identity.Client{
			IP:        remoteIP(r.RemoteAddr),
			UserAgent: r.UserAgent(),
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func remoteIP(addr string) string {
	addr = strings.TrimSpace(addr)
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
