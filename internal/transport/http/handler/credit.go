package handler

import (
	"net/http"

	"github.com/vsbank-api/internal/application/credit"
	"github.com/vsbank-api/internal/domain"
	"github.com/vsbank-api/internal/transport/http/middleware"
)

type CreditHandler struct {
	svc credit.Service
}

func NewCreditHandler(svc credit.Service) *CreditHandler { return &CreditHandler{svc: svc} }

func (h *CreditHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	var req domain.SimulateLoanRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgBadBody)
		return
	}
	res, err := h.svc.Simulate(r.Context(), middleware.TokenFromContext(r.Context()), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
