package auth

import (
	"github.com/kbukum/sessionauth/auth/password"
	"github.com/kbukum/sessionauth/auth/token"
)

// TokenIssuer signs a session token for a subject.
type TokenIssuer interface {
	Sign(subject string, custom map[string]any) (string, error)
}

// TokenVerifier checks a token and returns its claims. Errors wrapping
// token.ErrTokenInvalid or token.ErrTokenExpired mean the caller is
// anonymous; any other error is an infrastructure failure.
type TokenVerifier interface {
	Verify(token string) (*token.Claims, error)
}

// TokenService issues and verifies tokens. *token.Service implements it.
type TokenService interface {
	TokenIssuer
	TokenVerifier
}

// TokenVerifierFunc adapts a function to TokenVerifier.
type TokenVerifierFunc func(token string) (*token.Claims, error)

// Verify implements TokenVerifier.
func (f TokenVerifierFunc) Verify(t string) (*token.Claims, error) {
	return f(t)
}

var (
	_ TokenService    = (*token.Service)(nil)
	_ password.Hasher = (*password.BcryptHasher)(nil)
	_ password.Hasher = (*password.Argon2Hasher)(nil)
)
