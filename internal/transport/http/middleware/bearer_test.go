package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureToken(t *testing.T, header string) string {
	t.Helper()
	var got string
	h := Bearer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = TokenFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	return got
}

func TestBearer_ExtractsToken(t *testing.T) {
	assert.Equal(t, "access_token_abc", captureToken(t, "Bearer access_token_abc"))
}

func TestBearer_MissingOrMalformed(t *testing.T) {
	assert.Equal(t, "", captureToken(t, ""))
	assert.Equal(t, "", captureToken(t, "Basic dXNlcjpwYXNz"))
	assert.Equal(t, "", captureToken(t, "Bearer "))
	assert.Equal(t, "", captureToken(t, "bearer access_token_abc"))
}
