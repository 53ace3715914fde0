package handlers

import (
	"net/http"
	"time"

	"societyBack/internal/models"
)

const (
	AccessCookie  = "access_token"
	RefreshCookie = "refresh_token"
)

// SessionCookies issues the session credentials as HTTP-only cookies.
type SessionCookies struct {
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Secure     bool
}

func (c SessionCookies) cookie(name, value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// SetAccess replaces the access cookie only, as done after a silent refresh.
func (c SessionCookies) SetAccess(w http.ResponseWriter, token string) {
	http.SetCookie(w, c.cookie(AccessCookie, token, c.AccessTTL))
}

func (c SessionCookies) Set(w http.ResponseWriter, tokens models.Tokens) {
	c.SetAccess(w, tokens.AccessToken)
	http.SetCookie(w, c.cookie(RefreshCookie, tokens.RefreshToken, c.RefreshTTL))
}

func (c SessionCookies) Clear(w http.ResponseWriter) {
	for _, name := range []string{AccessCookie, RefreshCookie} {
		ck := c.cookie(name, "", 0)
		ck.MaxAge = -1
		http.SetCookie(w, ck)
	}
}
