package auth

import (
	"context"
	"fmt"

	apperrors "github.com/kbukum/sessionauth/errors"
	"github.com/kbukum/sessionauth/logger"
	"github.com/kbukum/sessionauth/validation"
)

// RegisterInput is the payload of a registration. Extra fields are passed
// to Store.Create untouched.
type RegisterInput struct {
	Email    string
	Password string
	Extra    map[string]any
}

// LoginInput is the payload of a password login.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Session is the result of a successful registration or login.
type Session struct {
	Token string
	User  *User
}

// Register creates a user and issues a token for it. Registering an email
// that already exists fails with ALREADY_EXISTS.
func (a *Auth) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	email := validation.NormalizeEmail(in.Email)
	if err := a.validateRegistration(email, in.Password); err != nil {
		return nil, err
	}
	log := a.log.WithContext(ctx)

	existing, err := a.cfg.Store.findByEmail(ctx, email)
	if err != nil {
		log.Error("user lookup failed", logger.ErrorFields("register", err))
		return nil, apperrors.Wrap(err)
	}
	if existing != nil {
		log.Warn("registration for existing user", logger.Fields(logger.FieldEmail, email))
		return nil, apperrors.AlreadyExists("User")
	}
	if a.cfg.Store.Create == nil {
		return nil, apperrors.NotImplemented("createUser")
	}

	hash, err := a.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	extra := in.Extra
	if extra == nil {
		extra = map[string]any{}
	}
	user, err := a.cfg.Store.Create(ctx, CreateUserInput{Email: email, PasswordHash: hash, Extra: extra})
	if err != nil {
		log.Error("user creation failed", logger.ErrorFields("register", err))
		return nil, apperrors.Wrap(err)
	}
	if user == nil {
		return nil, apperrors.Internal(fmt.Errorf("createUser returned no user"))
	}
	if user.Email == "" {
		user.Email = email
	}

	session, err := a.issue(user)
	if err != nil {
		return nil, err
	}
	log.Info("user registered", logger.Fields(logger.FieldUserID, user.ID))
	return session, nil
}

// Login checks credentials and issues a token. An unknown email and a wrong
// password fail with the same INVALID_CREDENTIALS error.
func (a *Auth) Login(ctx context.Context, in LoginInput) (*Session, error) {
	in.Email = validation.NormalizeEmail(in.Email)
	if err := validation.Validate(in); err != nil {
		return nil, err
	}
	log := a.log.WithContext(ctx)

	user, err := a.cfg.Store.findByEmail(ctx, in.Email)
	if err != nil {
		log.Error("user lookup failed", logger.ErrorFields("login", err))
		return nil, apperrors.Wrap(err)
	}
	if user == nil {
		log.Warn("login for unknown user", logger.Fields(logger.FieldEmail, in.Email))
		return nil, apperrors.InvalidCredentials()
	}

	ok, err := a.checkPassword(ctx, user, in.Password)
	if err != nil {
		log.Error("password validation failed", logger.ErrorFields("login", err))
		return nil, apperrors.Wrap(err)
	}
	if !ok {
		log.Warn("login with wrong password", logger.Fields(logger.FieldUserID, user.ID))
		return nil, apperrors.InvalidCredentials()
	}

	session, err := a.issue(user)
	if err != nil {
		return nil, err
	}
	log.Info("user logged in", logger.Fields(logger.FieldUserID, user.ID))
	return session, nil
}

// checkPassword delegates to Store.ValidatePassword when set, otherwise
// compares against the stored hash. A user without a hash never matches.
func (a *Auth) checkPassword(ctx context.Context, user *User, pw string) (bool, error) {
	if a.cfg.Store.ValidatePassword != nil {
		return a.cfg.Store.ValidatePassword(ctx, user, pw)
	}
	if user.PasswordHash == "" {
		return false, nil
	}
	return a.hasher.Compare(pw, user.PasswordHash), nil
}

func (a *Auth) issue(user *User) (*Session, error) {
	t, err := a.tokens.Sign(user.ID, nil)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &Session{Token: t, User: user}, nil
}

func (a *Auth) validateRegistration(email, pw string) error {
	var fields []validation.FieldError
	if fe := validation.Check("email", email, "required,email"); fe != nil {
		fields = append(fields, *fe)
	}
	if fe := validation.Check("password", pw, fmt.Sprintf("required,min=%d", a.cfg.MinPasswordLength)); fe != nil {
		fields = append(fields, *fe)
	} else if len(pw) > MaxPasswordLength {
		fields = append(fields, validation.FieldError{
			Field:   "password",
			Message: fmt.Sprintf("must be at most %d bytes", MaxPasswordLength),
		})
	}
	return validation.Fail(fields...)
}
