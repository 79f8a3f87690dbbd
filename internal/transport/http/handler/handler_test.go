package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vsbank-api/internal/application/account"
	"github.com/vsbank-api/internal/application/auth"
	"github.com/vsbank-api/internal/application/credit"
	"github.com/vsbank-api/internal/domain"
	"github.com/vsbank-api/internal/transport/http/middleware"
)

// --- mocks ---

type mockAuthSvc struct{ mock.Mock }

func (m *mockAuthSvc) Login(ctx context.Context, req domain.LoginRequest) (*auth.LoginResult, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*auth.LoginResult)
	return res, args.Error(1)
}

func (m *mockAuthSvc) VerifyTwoFactor(ctx context.Context, req domain.TwoFactorRequest) (*auth.TwoFactorResult, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*auth.TwoFactorResult)
	return res, args.Error(1)
}

func (m *mockAuthSvc) Register(ctx context.Context, req domain.RegisterRequest) (*domain.Profile, error) {
	args := m.Called(ctx, req)
	p, _ := args.Get(0).(*domain.Profile)
	return p, args.Error(1)
}

func (m *mockAuthSvc) CheckSession(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

type mockAccountSvc struct{ mock.Mock }

func (m *mockAccountSvc) Info(ctx context.Context, token string) (*domain.AccountInfo, error) {
	args := m.Called(ctx, token)
	res, _ := args.Get(0).(*domain.AccountInfo)
	return res, args.Error(1)
}

func (m *mockAccountSvc) Summary(ctx context.Context, token string) (*domain.AccountSummary, error) {
	args := m.Called(ctx, token)
	res, _ := args.Get(0).(*domain.AccountSummary)
	return res, args.Error(1)
}

func (m *mockAccountSvc) Transactions(ctx context.Context, token string, q account.TransactionQuery) (*domain.TransactionPage, error) {
	args := m.Called(ctx, token, q)
	res, _ := args.Get(0).(*domain.TransactionPage)
	return res, args.Error(1)
}

type mockCreditSvc struct{ mock.Mock }

func (m *mockCreditSvc) Simulate(ctx context.Context, token string, req domain.SimulateLoanRequest) (*credit.SimulationResponse, error) {
	args := m.Called(ctx, token, req)
	res, _ := args.Get(0).(*credit.SimulationResponse)
	return res, args.Error(1)
}

// --- helpers ---

func do(t *testing.T, h http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

// --- statusFor ---

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.Validation("x"), http.StatusBadRequest},
		{domain.Unauthorized("x"), http.StatusUnauthorized},
		{domain.Conflict("x"), http.StatusConflict},
		{domain.InvalidInput("x"), http.StatusUnprocessableEntity},
		{fmt.Errorf("wrapped: %w", domain.ErrNotFound), http.StatusNotFound},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, statusFor(c.err), c.err.Error())
	}
}

// --- auth ---

func TestLogin_OK(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("Login", mock.Anything, domain.LoginRequest{Identifier: "joao@email.com", Password: "x"}).
		Return(&auth.LoginResult{PreToken: "pre_token_1", User: domain.PublicUser{UserID: "1", Name: "João Silva", Email: "joao@email.com"}}, nil)

	rr := do(t, http.HandlerFunc(NewAuthHandler(svc).Login), http.MethodPost, "/api/auth/login",
		`{"identifier":"joao@email.com","password":"x"}`, "")

	assert.Equal(t, http.StatusOK, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, "Login realizado com sucesso", body["message"])
	assert.Equal(t, "pre_token_1", body["preToken"])
	assert.Equal(t, "1", body["user"].(map[string]interface{})["id"])
	assert.NotContains(t, body["user"], "taxpayerId")
}

func TestLogin_ServiceErrors(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("Login", mock.Anything, domain.LoginRequest{}).Return(nil, domain.Validation("Email/CPF e senha são obrigatórios"))
	svc.On("Login", mock.Anything, domain.LoginRequest{Identifier: "x", Password: "y"}).Return(nil, domain.Unauthorized("Credenciais inválidas"))
	h := http.HandlerFunc(NewAuthHandler(svc).Login)

	rr := do(t, h, http.MethodPost, "/api/auth/login", `{}`, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Email/CPF e senha são obrigatórios", decode(t, rr)["error"])

	rr = do(t, h, http.MethodPost, "/api/auth/login", `{"identifier":"x","password":"y"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, "Credenciais inválidas", body["error"])
	assert.Equal(t, float64(401), body["error_code"])
}

func TestLogin_MalformedBody(t *testing.T) {
	svc := &mockAuthSvc{}
	rr := do(t, http.HandlerFunc(NewAuthHandler(svc).Login), http.MethodPost, "/api/auth/login", `{"identifier":`, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
}

func TestTwoFactor_OK(t *testing.T) {
	svc := &mockAuthSvc{}
	u := domain.User{UserID: "1", Name: "João Silva", Email: "joao@email.com", TaxpayerID: "123.456.789-00"}
	svc.On("VerifyTwoFactor", mock.Anything, domain.TwoFactorRequest{Code: "123456", PreToken: "pre_token_1"}).
		Return(&auth.TwoFactorResult{Token: "access_token_1", User: u}, nil)

	rr := do(t, http.HandlerFunc(NewAuthHandler(svc).TwoFactor), http.MethodPost, "/api/auth/2fa",
		`{"code":"123456","preToken":"pre_token_1"}`, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, "Autenticação 2FA realizada com sucesso", body["message"])
	assert.Equal(t, "access_token_1", body["token"])
	assert.Equal(t, "123.456.789-00", body["user"].(map[string]interface{})["taxpayerId"])
}

func TestRegister_Conflict(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("Register", mock.Anything, mock.Anything).Return(nil, domain.Conflict("Email já cadastrado"))

	rr := do(t, http.HandlerFunc(NewAuthHandler(svc).Register), http.MethodPost, "/api/auth/register",
		`{"name":"A","email":"joao@email.com","taxpayerId":"1","password":"p"}`, "")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "Email já cadastrado", decode(t, rr)["error"])
}

func TestRegister_OK(t *testing.T) {
	svc := &mockAuthSvc{}
	p := &domain.Profile{Name: "Ana", Email: "ana@email.com", TaxpayerID: "111.222.333-44"}
	svc.On("Register", mock.Anything, domain.RegisterRequest{Name: "Ana", Email: "ana@email.com", TaxpayerID: "111.222.333-44", Password: "p"}).Return(p, nil)

	rr := do(t, http.HandlerFunc(NewAuthHandler(svc).Register), http.MethodPost, "/api/auth/register",
		`{"name":"Ana","email":"ana@email.com","taxpayerId":"111.222.333-44","password":"p"}`, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, "Conta criada com sucesso", body["message"])
	assert.Equal(t, "ana@email.com", body["user"].(map[string]interface{})["email"])
}

func TestInternalErrorIsHidden(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("Login", mock.Anything, mock.Anything).Return(nil, errors.New("redis: connection refused"))

	rr := do(t, http.HandlerFunc(NewAuthHandler(svc).Login), http.MethodPost, "/api/auth/login", `{"identifier":"a","password":"b"}`, "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "redis")
}

// --- account ---

func accountRouter(svc account.Service) http.Handler {
	h := NewAccountHandler(svc)
	r := chi.NewRouter()
	r.Use(middleware.Bearer)
	r.Get("/api/account/me", h.Me)
	r.Get("/api/account/summary", h.Summary)
	r.Get("/api/transactions", h.Transactions)
	return r
}

func TestSummary_PassesBearerToken(t *testing.T) {
	svc := &mockAccountSvc{}
	svc.On("Summary", mock.Anything, "access_token_1").Return(&domain.AccountSummary{
		User:    domain.User{UserID: "1"},
		Summary: domain.Summary{TotalIn: 650, TotalOut: 89.9, Balance: 560.1, TransactionCount: 4},
	}, nil)

	rr := do(t, accountRouter(svc), http.MethodGet, "/api/account/summary", "", "access_token_1")
	assert.Equal(t, http.StatusOK, rr.Code)
	sum := decode(t, rr)["summary"].(map[string]interface{})
	assert.Equal(t, float64(4), sum["transactionCount"])
}

func TestSummary_NoToken(t *testing.T) {
	svc := &mockAccountSvc{}
	svc.On("Summary", mock.Anything, "").Return(nil, domain.Unauthorized("Token de autenticação inválido"))

	rr := do(t, accountRouter(svc), http.MethodGet, "/api/account/summary", "", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Token de autenticação inválido", decode(t, rr)["error"])
}

func TestMe(t *testing.T) {
	svc := &mockAccountSvc{}
	svc.On("Info", mock.Anything, "tok").Return(&domain.AccountInfo{
		User:    domain.User{UserID: "1"},
		Account: domain.Account{AccountNumber: "0012345-6"},
	}, nil)

	rr := do(t, accountRouter(svc), http.MethodGet, "/api/account/me", "", "tok")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "0012345-6", decode(t, rr)["account"].(map[string]interface{})["accountNumber"])
}

func TestTransactions_Query(t *testing.T) {
	svc := &mockAccountSvc{}
	page := &domain.TransactionPage{Transactions: []domain.Transaction{}, Days: 30}
	svc.On("Transactions", mock.Anything, "tok", account.TransactionQuery{Days: 30, Type: domain.TransactionPix}).Return(page, nil)
	svc.On("Transactions", mock.Anything, "tok", account.TransactionQuery{Days: 7}).Return(page, nil)
	svc.On("Transactions", mock.Anything, "tok", account.TransactionQuery{Days: 0}).Return(page, nil)

	rr := do(t, accountRouter(svc), http.MethodGet, "/api/transactions?days=30&type=PIX", "", "tok")
	assert.Equal(t, http.StatusOK, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, []interface{}{}, body["transactions"])

	rr = do(t, accountRouter(svc), http.MethodGet, "/api/transactions", "", "tok")
	assert.Equal(t, http.StatusOK, rr.Code)

	// An explicit zero is kept, not replaced by the default.
	rr = do(t, accountRouter(svc), http.MethodGet, "/api/transactions?days=0", "", "tok")
	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}

func TestTransactions_BadDays(t *testing.T) {
	svc := &mockAccountSvc{}
	for _, days := range []string{"abc", "-1", "1.5", "36501", "9223372036854775807"} {
		rr := do(t, accountRouter(svc), http.MethodGet, "/api/transactions?days="+days, "", "tok")
		assert.Equal(t, http.StatusBadRequest, rr.Code, days)
	}
	svc.AssertNotCalled(t, "Transactions", mock.Anything, mock.Anything, mock.Anything)
}

// --- credit ---

func TestSimulate(t *testing.T) {
	svc := &mockCreditSvc{}
	svc.On("Simulate", mock.Anything, "tok", domain.SimulateLoanRequest{Amount: 10000, TermMonths: 12}).
		Return(&credit.SimulationResponse{Display: credit.Display{MonthlyRate: "2,99%"}}, nil)
	svc.On("Simulate", mock.Anything, "tok", domain.SimulateLoanRequest{Amount: 0, TermMonths: 12}).
		Return(nil, domain.InvalidInput("O valor deve ser maior que zero"))
	h := chi.NewRouter()
	h.With(middleware.Bearer).Post("/api/credit/simulations", NewCreditHandler(svc).Simulate)

	rr := do(t, h, http.MethodPost, "/api/credit/simulations", `{"amount":10000,"termMonths":12}`, "tok")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "2,99%", decode(t, rr)["display"].(map[string]interface{})["monthlyRate"])

	rr = do(t, h, http.MethodPost, "/api/credit/simulations", `{"amount":0,"termMonths":12}`, "tok")
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

// --- health ---

func TestHealthPing(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/health-check/{action}", NewHealthHandler().Ping)

	rr := do(t, r, http.MethodGet, "/api/health-check/ping", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "pong", decode(t, rr)["message"])

	rr = do(t, r, http.MethodGet, "/api/health-check/other", "", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
