package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"societyBack/internal/handlers"
	"societyBack/internal/models"
)

const requestIDHeader = "X-Request-ID"

func secureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Frame-Options", "deny")
		next.ServeHTTP(w, r)
	})
}

func makeResponseJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// requestID keeps an incoming X-Request-ID or assigns a new one.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(requestIDHeader, id)
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.infoLog.Printf("%s - %s %s %s [%s]", r.RemoteAddr, r.Proto, r.Method, r.URL.RequestURI(), r.Header.Get(requestIDHeader))
		next.ServeHTTP(w, r)
	})
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.serverError(w, fmt.Errorf("%s", err))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	fmt.Fprintf(w, "{\"message\":%q}\n", msg)
}

// accessToken reads the bearer header first, then the session cookie.
func accessToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if c, err := r.Cookie(handlers.AccessCookie); err == nil {
		return c.Value
	}
	return ""
}

func refreshToken(r *http.Request) string {
	if t := r.Header.Get("Refresh-Token"); t != "" {
		return t
	}
	if c, err := r.Cookie(handlers.RefreshCookie); err == nil {
		return c.Value
	}
	return ""
}

func roleAllowed(requiredRole, role string) bool {
	switch requiredRole {
	case models.RoleAdmin:
		return role == models.RoleAdmin
	case models.RoleProvider:
		return role == models.RoleProvider || role == models.RoleAdmin
	}
	return true
}

// JWTMiddleware authenticates the caller. An invalid or expired access token
// is renewed from the refresh token and the new one is sent back as a cookie
// and in the Authorization header.
func (app *application) JWTMiddleware(next http.Handler, requiredRole string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var userID int
		var role string

		claims, err := app.tokens.Parse(accessToken(r))
		if err == nil {
			userID, role = claims.UserID, claims.Role
		} else {
			refresh := refreshToken(r)
			if refresh == "" {
				unauthorized(w, "authentication required")
				return
			}
			session, newAccess, err := app.userService.Refresh(r.Context(), refresh)
			if err != nil {
				unauthorized(w, "session expired")
				return
			}
			app.cookies.SetAccess(w, newAccess)
			w.Header().Set("Authorization", "Bearer "+newAccess)
			userID, role = session.UserID, session.Role
		}

		if !roleAllowed(requiredRole, role) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			fmt.Fprintf(w, "{\"message\":%q}\n", "forbidden: "+requiredRole+" role required")
			return
		}

		ctx := handlers.WithIdentity(r.Context(), userID, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (app *application) JWTMiddlewareWithRole(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return app.JWTMiddleware(next, requiredRole)
	}
}
