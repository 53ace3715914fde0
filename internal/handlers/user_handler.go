package handlers

import (
	"net/http"
	"strings"

	"societyBack/internal/models"
	"societyBack/internal/services"
)

type UserHandler struct {
	Service *services.UserService
	Cookies SessionCookies
}

type signInResponse struct {
	User         models.User `json:"user"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
}

type userResponse struct {
	User models.User `json:"user"`
}

type fcmTokenRequest struct {
	Token string `json:"token"`
}

func (h *UserHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req models.SignUpRequest
	if !decodeJSON(r, &req) {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	user, err := h.Service.SignUp(r.Context(), req)
	if err != nil {
		writeError(w, "SignUp", err, "failed to sign up")
		return
	}
	writeJSON(w, http.StatusCreated, userResponse{User: user})
}

// SignIn sets the session cookies and also returns the tokens for clients
// that keep them outside a cookie jar.
func (h *UserHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req models.SignInRequest
	if !decodeJSON(r, &req) {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	user, tokens, err := h.Service.SignIn(r.Context(), req)
	if err != nil {
		writeError(w, "SignIn", err, "failed to sign in")
		return
	}
	h.Cookies.Set(w, tokens)
	writeJSON(w, http.StatusOK, signInResponse{User: user, AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken})
}

func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := caller(w, r)
	if !ok {
		return
	}
	if err := h.Service.Logout(r.Context(), userID); err != nil {
		writeError(w, "Logout", err, "failed to log out")
		return
	}
	h.Cookies.Clear(w)
	writeMessage(w, http.StatusOK, "logged out")
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := caller(w, r)
	if !ok {
		return
	}
	user, err := h.Service.Me(r.Context(), userID)
	if err != nil {
		writeError(w, "Me", err, "failed to load user")
		return
	}
	writeJSON(w, http.StatusOK, userResponse{User: user})
}

// RegisterFCMToken stores the caller's device token for push notifications.
func (h *UserHandler) RegisterFCMToken(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := caller(w, r)
	if !ok {
		return
	}
	var req fcmTokenRequest
	if !decodeJSON(r, &req) || strings.TrimSpace(req.Token) == "" {
		writeMessage(w, http.StatusBadRequest, "token is required")
		return
	}
	if err := h.Service.RegisterDevice(r.Context(), userID, strings.TrimSpace(req.Token)); err != nil {
		writeError(w, "RegisterFCMToken", err, "failed to save token")
		return
	}
	writeMessage(w, http.StatusOK, "token saved")
}
