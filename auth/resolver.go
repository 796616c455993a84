package auth

import (
	"context"

	"github.com/kbukum/sessionauth/auth/authctx"
	apperrors "github.com/kbukum/sessionauth/errors"
	"github.com/kbukum/sessionauth/logger"
)

// resolve turns a verified subject into an identity. Without a FindByID
// collaborator the subject alone is the identity. A subject whose record
// no longer exists is rejected.
func (a *Auth) resolve(ctx context.Context, subject string) (authctx.Identity, error) {
	if a.cfg.Store.FindByID == nil {
		return authctx.Identity{Subject: subject}, nil
	}

	user, err := a.cfg.Store.findByID(ctx, subject)
	if err != nil {
		a.log.WithContext(ctx).Error("user lookup failed", logger.ErrorFields("resolve", err))
		return authctx.Identity{}, apperrors.Wrap(err)
	}
	if user == nil {
		a.log.WithContext(ctx).Warn("token subject has no user", logger.Fields(logger.FieldUserID, subject))
		return authctx.Identity{}, apperrors.Unauthorized("User not found")
	}
	return authctx.Identity{Subject: subject, User: user}, nil
}
