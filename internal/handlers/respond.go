package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"societyBack/internal/models"
	"societyBack/internal/repositories"
	"societyBack/internal/services"
)

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

// writeMessage answers with {"message": msg}. Clients show the message as is.
func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

// statusFor maps domain errors to HTTP statuses. Unknown errors are 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrNoRecord),
		errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrProviderNotFound),
		errors.Is(err, models.ErrServiceNotFound),
		errors.Is(err, models.ErrCommentNotFound),
		errors.Is(err, models.ErrNoReply):
		return http.StatusNotFound
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, models.ErrAlreadyReviewed),
		errors.Is(err, models.ErrAlreadyReplied),
		errors.Is(err, models.ErrDuplicateEmail):
		return http.StatusConflict
	case errors.Is(err, models.ErrInvalidRating),
		errors.Is(err, models.ErrEmptyText),
		errors.Is(err, models.ErrInvalidOffering),
		errors.Is(err, models.ErrInvalidImage),
		errors.Is(err, services.ErrInvalidSignUp),
		repositories.IsForeignKeyError(err):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrInvalidCredentials),
		errors.Is(err, models.ErrInvalidSession):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// writeError answers with the mapped status. Server errors are logged and
// answered with fallback so internals do not leak.
func writeError(w http.ResponseWriter, op string, err error, fallback string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("%s error: %v", op, err)
		writeMessage(w, status, fallback)
		return
	}
	if repositories.IsForeignKeyError(err) {
		writeMessage(w, status, "referenced record does not exist")
		return
	}
	writeMessage(w, status, strings.TrimPrefix(err.Error(), "models: "))
}

// idParam parses a positive integer path parameter.
func idParam(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(getParam(r, name))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func decodeJSON(r *http.Request, dst interface{}) bool {
	return json.NewDecoder(r.Body).Decode(dst) == nil
}
