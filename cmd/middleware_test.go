package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"societyBack/internal/handlers"
	"societyBack/internal/models"
	"societyBack/internal/services"
	"societyBack/utils"
)

type sessionStore struct {
	services.UserStore
	session models.Session
}

func (s sessionStore) GetSessionByToken(ctx context.Context, token string) (models.Session, error) {
	if token != s.session.RefreshToken {
		return models.Session{}, models.ErrInvalidSession
	}
	return s.session, nil
}

func newTestApp(t *testing.T) *application {
	t.Helper()
	tokens, err := utils.NewManager("test-secret")
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	discard := log.New(io.Discard, "", 0)
	return &application{
		errorLog: discard,
		infoLog:  discard,
		tokens:   tokens,
		cookies:  handlers.SessionCookies{AccessTTL: time.Hour, RefreshTTL: 24 * time.Hour},
		userService: &services.UserService{
			UserRepo: sessionStore{session: models.Session{
				UserID:       7,
				Role:         models.RoleProvider,
				RefreshToken: "refresh-7",
				ExpiresAt:    time.Now().Add(time.Hour),
			}},
			TokenManager: tokens,
			AccessTTL:    time.Hour,
		},
	}
}

// whoami echoes the authenticated identity.
func whoami(t *testing.T, got *int, role *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, rl, ok := handlers.Identity(r.Context())
		if !ok {
			t.Fatal("expected identity in context")
		}
		*got, *role = id, rl
	})
}

func TestJWTMiddlewareAcceptsBearerAndCookie(t *testing.T) {
	app := newTestApp(t)
	token, err := app.tokens.NewJWT(3, models.RoleCustomer, time.Hour)
	if err != nil {
		t.Fatalf("NewJWT: %v", err)
	}

	var id int
	var role string
	h := app.JWTMiddleware(whoami(t, &id, &role), "user")

	req := httptest.NewRequest(http.MethodGet, "/user/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || id != 3 || role != models.RoleCustomer {
		t.Fatalf("bearer: status %d, identity %d/%s", rr.Code, id, role)
	}

	id = 0
	req = httptest.NewRequest(http.MethodGet, "/user/me", nil)
	req.AddCookie(&http.Cookie{Name: handlers.AccessCookie, Value: token})
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || id != 3 {
		t.Fatalf("cookie: status %d, identity %d", rr.Code, id)
	}
}

func TestJWTMiddlewareRefreshesExpiredAccess(t *testing.T) {
	app := newTestApp(t)
	expired, err := app.tokens.NewJWT(7, models.RoleProvider, -time.Minute)
	if err != nil {
		t.Fatalf("NewJWT: %v", err)
	}

	var id int
	var role string
	h := app.JWTMiddleware(whoami(t, &id, &role), models.RoleProvider)

	req := httptest.NewRequest(http.MethodPost, "/comments/1/reply", nil)
	req.AddCookie(&http.Cookie{Name: handlers.AccessCookie, Value: expired})
	req.AddCookie(&http.Cookie{Name: handlers.RefreshCookie, Value: "refresh-7"})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK || id != 7 || role != models.RoleProvider {
		t.Fatalf("status %d, identity %d/%s", rr.Code, id, role)
	}
	var renewed string
	for _, c := range rr.Result().Cookies() {
		if c.Name == handlers.AccessCookie {
			renewed = c.Value
		}
	}
	claims, err := app.tokens.Parse(renewed)
	if err != nil || claims.UserID != 7 {
		t.Fatalf("expected a fresh access cookie, got %q (%v)", renewed, err)
	}
}

func TestJWTMiddlewareRejects(t *testing.T) {
	app := newTestApp(t)
	customer, _ := app.tokens.NewJWT(3, models.RoleCustomer, time.Hour)

	tests := []struct {
		name    string
		role    string
		bearer  string
		refresh string
		status  int
	}{
		{"anonymous", "user", "", "", http.StatusUnauthorized},
		{"garbage token", "user", "not-a-jwt", "", http.StatusUnauthorized},
		{"unknown refresh", "user", "", "stolen", http.StatusUnauthorized},
		{"customer on provider route", models.RoleProvider, customer, "", http.StatusForbidden},
		{"provider on admin route", models.RoleAdmin, "", "refresh-7", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler must not run")
			})
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.bearer != "" {
				req.Header.Set("Authorization", "Bearer "+tt.bearer)
			}
			if tt.refresh != "" {
				req.Header.Set("Refresh-Token", tt.refresh)
			}
			rr := httptest.NewRecorder()
			app.JWTMiddleware(next, tt.role).ServeHTTP(rr, req)
			if rr.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, rr.Code)
			}
		})
	}
}

func TestRequestIDIsPropagated(t *testing.T) {
	h := requestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Header().Get(requestIDHeader) == "" {
		t.Fatal("expected a generated request id")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "abc")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if got := rr.Header().Get(requestIDHeader); got != "abc" {
		t.Fatalf("expected abc, got %q", got)
	}
}

func TestRecoverPanic(t *testing.T) {
	app := newTestApp(t)
	h := app.recoverPanic(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
}
