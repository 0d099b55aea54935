// Package auth validates the bearer credential presented on the
// goal-logging tool callback.
package auth

import (
	"crypto/subtle"
	"errors"
	"strings"
)

// ErrInvalidToken is returned for any credential mismatch, including an
// absent header when a secret is configured.
var ErrInvalidToken = errors.New("invalid token")

// Guard compares presented bearer credentials against a shared secret.
//
// When no secret is configured every request is authorized. This is
// deliberate: the tool-callback endpoint is used in development without
// a secret provisioned.
type Guard struct {
	secret string
}

// NewGuard creates a guard for the configured shared secret. An empty
// secret disables authorization.
func NewGuard(secret string) *Guard {
	return &Guard{secret: secret}
}

// Enabled reports whether a shared secret is configured.
func (g *Guard) Enabled() bool {
	return g.secret != ""
}

// Authorize checks the raw Authorization header value. A literal
// "Bearer " prefix is stripped before comparison; without the prefix the
// raw value is compared as-is. Comparison is constant-time.
func (g *Guard) Authorize(header string) error {
	if g.secret == "" {
		return nil
	}

	token := strings.TrimPrefix(header, "Bearer ")
	if subtle.ConstantTimeCompare([]byte(token), []byte(g.secret)) != 1 {
		return ErrInvalidToken
	}
	return nil
}
