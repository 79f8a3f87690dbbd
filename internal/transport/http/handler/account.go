package handler

import (
	"net/http"
	"strconv"

	"github.com/vsbank-api/internal/application/account"
	"github.com/vsbank-api/internal/domain"
	"github.com/vsbank-api/internal/transport/http/middleware"
)

// AccountHandler serves the dashboard endpoints. Routes must sit behind middleware.Bearer.
type AccountHandler struct {
	svc account.Service
}

func NewAccountHandler(svc account.Service) *AccountHandler { return &AccountHandler{svc: svc} }

func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	info, err := h.svc.Info(r.Context(), middleware.TokenFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (h *AccountHandler) Summary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.svc.Summary(r.Context(), middleware.TokenFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// Transactions accepts ?days=N (default 7, at most account.MaxDays) and ?type=IN|OUT|PIX.
func (h *AccountHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	q, ok := parseTransactionQuery(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Parâmetro days inválido")
		return
	}
	page, err := h.svc.Transactions(r.Context(), middleware.TokenFromContext(r.Context()), q)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func parseTransactionQuery(r *http.Request) (account.TransactionQuery, bool) {
	q := account.TransactionQuery{
		Days: account.DefaultDays,
		Type: domain.TransactionType(r.URL.Query().Get("type")),
	}
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > account.MaxDays {
			return q, false
		}
		q.Days = n
	}
	return q, true
}
