package token

import (
	"strings"

	"github.com/vsbank-api/internal/pkg/id"
)

const (
	preAuthPrefix = "pre_token_"
	sessionPrefix = "access_token_"
)

// NewPreAuth returns an opaque pre-auth token. The ULID suffix carries the
// issue time and 80 random bits, so two calls never collide.
func NewPreAuth() string {
	return preAuthPrefix + strings.ToLower(id.New())
}

// NewSession returns an opaque session token.
func NewSession() string {
	return sessionPrefix + strings.ToLower(id.New())
}

// IsPreAuth reports whether tok has the pre-auth token shape.
func IsPreAuth(tok string) bool {
	return strings.HasPrefix(tok, preAuthPrefix) && len(tok) > len(preAuthPrefix)
}
