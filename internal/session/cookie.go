package session

import (
	"net/http"
	"time"
)

const DefaultCookieName = "sniply_projects_session"

type CookieConfig struct {
	Name     string
	Path     string
	Domain   string
	Secure   bool
	SameSite http.SameSite
}

func (c CookieConfig) CookieName() string {
	if c.Name == "" {
		return DefaultCookieName
	}
	return c.Name
}

// Read returns the session id carried by r, or "" when there is none.
func (c CookieConfig) Read(r *http.Request) string {
	ck, err := r.Cookie(c.CookieName())
	if err != nil {
		return ""
	}
	return ck.Value
}

func (c CookieConfig) Write(w http.ResponseWriter, value string, expiresAt time.Time) {
	http.SetCookie(w, c.cookie(value, expiresAt, int(time.Until(expiresAt).Seconds())))
}

func (c CookieConfig) Clear(w http.ResponseWriter) {
	http.SetCookie(w, c.cookie("", time.Unix(0, 0), -1))
}

func (c CookieConfig) cookie(value string, expires time.Time, maxAge int) *http.Cookie {
	path := c.Path
	if path == "" {
		path = "/"
	}
	return &http.Cookie{
		Name:     c.CookieName(),
		Value:    value,
		Path:     path,
		Domain:   c.Domain,
		Expires:  expires,
		MaxAge:   maxAge,
		Secure:   c.Secure,
		HttpOnly: true,
		SameSite: c.SameSite,
	}
}
