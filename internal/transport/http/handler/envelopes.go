package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vsbank-api/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	ErrorCode int    `json:"error_code,omitempty"`
}

// LoginEnvelope wraps the first login step.
type LoginEnvelope struct {
	Message  string            `json:"message"`
	PreToken string            `json:"preToken"`
	User     domain.PublicUser `json:"user"`
}

// TwoFactorEnvelope wraps the session issued by 2FA.
type TwoFactorEnvelope struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    domain.User `json:"user"`
}

// RegisterEnvelope echoes the registered profile.
type RegisterEnvelope struct {
	Message string         `json:"message"`
	User    domain.Profile `json:"user"`
}

const msgBadBody = "Corpo da requisição inválido"

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg, ErrorCode: status})
}

func decodeBody(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// statusFor maps a service error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError renders err. Domain errors carry their user-facing
// message; anything else is logged and hidden behind a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, context.Canceled) {
		// The client went away during the simulated delay; nobody reads the reply.
		slog.Debug("request cancelled", "path", r.URL.Path)
		return
	}
	status := statusFor(err)
	var de *domain.Error
	if status == http.StatusInternalServerError || !errors.As(err, &de) {
		slog.Error("request failed", "path", r.URL.Path, "err", err)
		writeError(w, status, http.StatusText(status))
		return
	}
	writeError(w, status, de.Message)
}
