package handler

import (
	"net/http"

	"github.com/vsbank-api/internal/application/auth"
	"github.com/vsbank-api/internal/domain"
)

// AuthHandler serves login, two-factor verification and registration.
type AuthHandler struct {
	svc auth.Service
}

func NewAuthHandler(svc auth.Service) *AuthHandler { return &AuthHandler{svc: svc} }

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgBadBody)
		return
	}
	res, err := h.svc.Login(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, LoginEnvelope{
		Message:  "Login realizado com sucesso",
		PreToken: res.PreToken,
		User:     res.User,
	})
}

func (h *AuthHandler) TwoFactor(w http.ResponseWriter, r *http.Request) {
	var req domain.TwoFactorRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgBadBody)
		return
	}
	res, err := h.svc.VerifyTwoFactor(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, TwoFactorEnvelope{
		Message: "Autenticação 2FA realizada com sucesso",
		Token:   res.Token,
		User:    res.User,
	})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgBadBody)
		return
	}
	p, err := h.svc.Register(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, RegisterEnvelope{Message: "Conta criada com sucesso", User: *p})
}
