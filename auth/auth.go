package auth

import (
	"fmt"

	"github.com/kbukum/sessionauth/auth/password"
	"github.com/kbukum/sessionauth/auth/token"
	"github.com/kbukum/sessionauth/logger"
	"github.com/kbukum/sessionauth/observability"
)

// Auth is a configured authentication layer. It holds no per-request state
// and is safe for concurrent use.
type Auth struct {
	cfg     Config
	hasher  password.Hasher
	tokens  TokenService
	log     *logger.Logger
	metrics *observability.Metrics
}

// New validates cfg, applies defaults and builds the hasher and token
// service it does not override.
func New(cfg Config) (*Auth, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := cfg.Logger
	if log == nil {
		log = logger.Get("auth")
	}
	if cfg.InsecureSecret() {
		log.Warn("using the built-in JWT secret; set AUTH_JWT_SECRET before deploying")
	}

	hasher := cfg.Hasher
	if hasher == nil {
		h, err := password.NewHasher(cfg.Password)
		if err != nil {
			return nil, fmt.Errorf("auth: %w", err)
		}
		hasher = h
	}

	tokens := cfg.Tokens
	if tokens == nil {
		svc, err := token.NewService(token.Config{
			Secret: cfg.JWTSecret,
			TTL:    cfg.TokenTTL(),
			Issuer: cfg.JWTIssuer,
		})
		if err != nil {
			return nil, fmt.Errorf("auth: %w", err)
		}
		tokens = svc
	}

	return &Auth{
		cfg:     cfg,
		hasher:  hasher,
		tokens:  tokens,
		log:     log,
		metrics: cfg.Metrics,
	}, nil
}

// Config returns a copy of the effective configuration.
func (a *Auth) Config() Config { return a.cfg }

// SignToken issues a session token for subject.
func (a *Auth) SignToken(subject string, custom map[string]any) (string, error) {
	return a.tokens.Sign(subject, custom)
}

// VerifyToken checks a session token.
func (a *Auth) VerifyToken(t string) (*token.Claims, error) {
	return a.tokens.Verify(t)
}

// HashPassword hashes pw with the configured hasher.
func (a *Auth) HashPassword(pw string) (string, error) {
	return a.hasher.Hash(pw)
}

// ComparePassword reports whether pw matches hash.
func (a *Auth) ComparePassword(pw, hash string) bool {
	return a.hasher.Compare(pw, hash)
}
