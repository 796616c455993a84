package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/sessionauth/auth/authctx"
	apperrors "github.com/kbukum/sessionauth/errors"
	"github.com/kbukum/sessionauth/logger"
	"github.com/kbukum/sessionauth/observability"
)

// Authenticate results recorded in metrics.
const (
	resultAnonymous = "anonymous"
	resultInvalid   = "invalid"
	resultAttached  = "attached"
	resultRejected  = "rejected"
)

// Authenticate attaches the caller's identity when the request carries a
// valid token. Requests without a token, or with an invalid or expired
// one, continue anonymously. A valid token whose user is gone, or a lookup
// failure, aborts the request.
func (a *Auth) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := authctx.FromGin(c); ok {
			c.Next()
			return
		}

		raw, source := a.extractToken(c.Request)
		if raw == "" {
			a.metrics.RecordAuthenticate(c.Request.Context(), resultAnonymous)
			c.Next()
			return
		}

		ctx, span := observability.StartSpan(c.Request.Context(), observability.SpanAuthenticate)
		observability.SetSpanAttribute(ctx, observability.AttrTokenSource, source)
		log := a.log.WithContext(ctx)

		claims, err := a.tokens.Verify(raw)
		if err != nil {
			span.End()
			appErr := TokenError(err)
			if appErr.Kind() == apperrors.KindUnauthorized {
				log.Debug("ignoring unusable token", logger.Fields(logger.FieldTokenSource, source, logger.FieldError, err.Error()))
				a.metrics.RecordAuthenticate(ctx, resultInvalid)
				c.Next()
				return
			}
			log.Error("token verification failed", logger.ErrorFields("authenticate", err))
			a.metrics.RecordAuthenticate(ctx, resultRejected)
			_ = c.Error(appErr)
			c.Abort()
			return
		}

		id, err := a.resolve(ctx, claims.Subject)
		if err != nil {
			observability.SetSpanError(ctx, err)
			span.End()
			a.metrics.RecordAuthenticate(ctx, resultRejected)
			_ = c.Error(err)
			c.Abort()
			return
		}
		observability.SetSpanAttribute(ctx, observability.AttrUserID, id.UserID())
		span.End()

		authctx.SetGin(c, id)
		a.metrics.RecordAuthenticate(ctx, resultAttached)
		c.Next()
	}
}

// RequireAuth rejects requests with no attached identity.
func (a *Auth) RequireAuth() gin.HandlerFunc {
	return RequireAuth()
}

// RequireAuth rejects requests with no attached identity. It performs no
// verification itself and works after any middleware that populates
// authctx.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := authctx.FromGin(c); !ok {
			_ = c.Error(apperrors.Unauthorized("Authentication required"))
			c.Abort()
			return
		}
		c.Next()
	}
}
