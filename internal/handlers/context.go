package handlers

import (
	"context"
	"net/http"
)

type ctxKey int

const (
	userIDKey ctxKey = iota
	roleKey
)

// WithIdentity stores the authenticated caller in ctx.
func WithIdentity(ctx context.Context, userID int, role string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, roleKey, role)
}

// Identity returns the caller stored by WithIdentity.
func Identity(ctx context.Context) (userID int, role string, ok bool) {
	userID, ok = ctx.Value(userIDKey).(int)
	if !ok || userID == 0 {
		return 0, "", false
	}
	role, _ = ctx.Value(roleKey).(string)
	return userID, role, true
}

// caller answers 401 and reports false when the request is anonymous.
func caller(w http.ResponseWriter, r *http.Request) (int, string, bool) {
	userID, role, ok := Identity(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "unauthorized")
	}
	return userID, role, ok
}
