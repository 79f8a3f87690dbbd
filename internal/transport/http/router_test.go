package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsbank-api/internal/application/account"
	"github.com/vsbank-api/internal/application/auth"
	"github.com/vsbank-api/internal/application/credit"
	"github.com/vsbank-api/internal/config"
	"github.com/vsbank-api/internal/fixture"
	"github.com/vsbank-api/internal/infrastructure/memory"
	"github.com/vsbank-api/internal/pkg/latency"
)

// newTestServer wires the real services over the default fixture with a fake clock.
func newTestServer(t *testing.T, strict bool) http.Handler {
	t.Helper()
	clock := latency.NewFake(time.Date(2024, 9, 2, 12, 0, 0, 0, time.UTC))
	fx := fixture.Default()
	cfg := &config.Config{
		AllowedOrigins:     []string{"*"},
		RateLimitPerMinute: 1000,
		AuthRatePerSecond:  100,
		AuthRateBurst:      100,
		Auth:               config.Auth{StrictTokens: strict, PreTokenTTL: 5 * time.Minute, SessionTTL: time.Hour},
		Credit:             config.Credit{DefaultMonthlyRate: 2.99, MaxAmount: 50000},
	}
	authSvc := auth.NewService(auth.ServiceDeps{
		Fixture: fx,
		Clock:   clock,
		Auth:    cfg.Auth,
		Ledger:  memory.NewLedger(clock.Now),
	})
	h, stop := NewRouter(cfg, &Deps{
		Auth:    authSvc,
		Account: account.NewService(account.ServiceDeps{Fixture: fx, Clock: clock, Sessions: authSvc}),
		Credit:  credit.NewService(credit.ServiceDeps{Sessions: authSvc, DefaultMonthlyRate: 2.99, MaxAmount: 50000}),
	})
	t.Cleanup(stop)
	return h
}

func call(t *testing.T, h http.Handler, method, path string, body interface{}, token string) (int, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	var out map[string]interface{}
	if rr.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	}
	return rr.Code, out
}

func TestFlow_LoginTwoFactorSummary(t *testing.T) {
	h := newTestServer(t, true)

	code, body := call(t, h, http.MethodPost, "/api/auth/login", map[string]string{"identifier": "joao@email.com", "password": "123"}, "")
	require.Equal(t, http.StatusOK, code)
	preToken := body["preToken"].(string)

	code, body = call(t, h, http.MethodPost, "/api/auth/2fa", map[string]string{"code": "123456", "preToken": preToken}, "")
	require.Equal(t, http.StatusOK, code)
	token := body["token"].(string)

	code, body = call(t, h, http.MethodGet, "/api/account/summary", nil, token)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(4), body["summary"].(map[string]interface{})["transactionCount"])

	code, body = call(t, h, http.MethodGet, "/api/transactions?type=IN", nil, token)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(2), body["total"])
	assert.Equal(t, float64(7), body["days"])

	code, _ = call(t, h, http.MethodPost, "/api/credit/simulations", map[string]interface{}{"amount": 10000, "termMonths": 12, "includeSchedule": true}, token)
	assert.Equal(t, http.StatusOK, code)

	// Strict mode: a forged token is rejected.
	code, _ = call(t, h, http.MethodGet, "/api/account/summary", nil, "access_token_forged")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestFlow_LenientAcceptsAnyBearer(t *testing.T) {
	h := newTestServer(t, false)

	code, _ := call(t, h, http.MethodGet, "/api/account/me", nil, "whatever")
	assert.Equal(t, http.StatusOK, code)

	code, body := call(t, h, http.MethodGet, "/api/account/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, float64(401), body["error_code"])
}

func TestRouter_Health(t *testing.T) {
	h := newTestServer(t, false)
	code, body := call(t, h, http.MethodGet, "/api/health-check/ping", nil, "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "pong", body["message"])
}

func TestRouter_CORSPreflight(t *testing.T) {
	h := newTestServer(t, false)
	req := httptest.NewRequest(http.MethodOptions, "/api/auth/login", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestFlow_StrictKeepsTokenKindsApart(t *testing.T) {
	h := newTestServer(t, true)

	code, body := call(t, h, http.MethodPost, "/api/auth/login", map[string]string{"identifier": "joao@email.com", "password": "123"}, "")
	require.Equal(t, http.StatusOK, code)
	preToken := body["preToken"].(string)

	code, _ = call(t, h, http.MethodGet, "/api/account/summary", nil, preToken)
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = call(t, h, http.MethodPost, "/api/credit/simulations", map[string]interface{}{"amount": 10000, "termMonths": 12}, preToken)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, body = call(t, h, http.MethodPost, "/api/auth/2fa", map[string]string{"code": "123456", "preToken": preToken}, "")
	require.Equal(t, http.StatusOK, code)
	token := body["token"].(string)

	code, _ = call(t, h, http.MethodPost, "/api/auth/2fa", map[string]string{"code": "123456", "preToken": token}, "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = call(t, h, http.MethodGet, "/api/account/summary", nil, token)
	assert.Equal(t, http.StatusOK, code)
}
