package auth

import (
	"errors"

	"github.com/kbukum/sessionauth/auth/token"
	apperrors "github.com/kbukum/sessionauth/errors"
)

// TokenError classifies a token verification error: expired tokens become
// TokenExpired, other rejected tokens InvalidToken, and anything else
// Internal. Hosts that hard-reject bad tokens on their own routes use it;
// Authenticate treats the first two as anonymous.
func TokenError(err error) *apperrors.AppError {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, token.ErrTokenExpired):
		return apperrors.TokenExpired().WithCause(err)
	case errors.Is(err, token.ErrTokenInvalid):
		return apperrors.InvalidToken().WithCause(err)
	default:
		return apperrors.Internal(err)
	}
}
