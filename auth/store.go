package auth

import (
	"context"
	"errors"

	"github.com/kbukum/sessionauth/auth/authctx"
)

// User is the identity record supplied by the Store.
type User = authctx.User

// PublicUser is the part of a user returned to clients.
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}

// ToPublic returns the client-visible fields of u.
func ToPublic(u *User) PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email}
}

// CreateUserInput is passed to Store.Create on registration. Extra holds
// every request field other than email and password, unchanged.
type CreateUserInput struct {
	Email        string
	PasswordHash string
	Extra        map[string]any
}

// ErrUserNotFound is returned by lookups that find nothing. Returning a nil
// user with a nil error means the same.
var ErrUserNotFound = errors.New("auth: user not found")

// Store holds the host-supplied collaborators. Every field is optional:
//
//   - FindByID nil: the token subject alone is the identity
//   - FindByEmail nil: every lookup misses
//   - Create nil: registration fails with NOT_IMPLEMENTED
//   - ValidatePassword nil: the stored PasswordHash is compared with the
//     configured hasher
//
// Functions receive the request context and may block on I/O.
type Store struct {
	FindByID         func(ctx context.Context, id string) (*User, error)
	FindByEmail      func(ctx context.Context, email string) (*User, error)
	Create           func(ctx context.Context, in CreateUserInput) (*User, error)
	ValidatePassword func(ctx context.Context, user *User, password string) (bool, error)
}

func (s Store) findByEmail(ctx context.Context, email string) (*User, error) {
	if s.FindByEmail == nil {
		return nil, nil
	}
	return normalizeLookup(s.FindByEmail(ctx, email))
}

func (s Store) findByID(ctx context.Context, id string) (*User, error) {
	return normalizeLookup(s.FindByID(ctx, id))
}

// normalizeLookup folds ErrUserNotFound into a nil user with no error.
func normalizeLookup(u *User, err error) (*User, error) {
	if errors.Is(err, ErrUserNotFound) {
		return nil, nil
	}
	return u, err
}
