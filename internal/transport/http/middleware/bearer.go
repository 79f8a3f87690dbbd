package middleware

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const tokenKey contextKey = "bearer_token"

// Bearer copies the token from an "Authorization: Bearer <token>" header into
// the request context. It never rejects a request: services decide, after
// their simulated delay, whether a missing or unknown token is an error.
func Bearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if tok, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
			if tok = strings.TrimSpace(tok); tok != "" {
				r = r.WithContext(context.WithValue(r.Context(), tokenKey, tok))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// TokenFromContext returns the bearer token, or "" when the request had none.
func TokenFromContext(ctx context.Context) string {
	tok, _ := ctx.Value(tokenKey).(string)
	return tok
}
