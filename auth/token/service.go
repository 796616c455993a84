// Package token signs and verifies HS256 session tokens.
//
// A token carries a subject, issue and expiry times, a unique id and any
// caller-supplied claims:
//
//	svc, err := token.NewService(token.Config{Secret: secret, TTL: 24 * time.Hour})
//	signed, err := svc.Sign(user.ID, map[string]any{"role": "admin"})
//	claims, err := svc.Verify(signed)
//	if errors.Is(err, token.ErrTokenExpired) { ... }
package token

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrTokenInvalid reports a malformed token, a bad signature or an
	// unexpected algorithm.
	ErrTokenInvalid = errors.New("token: invalid")

	// ErrTokenExpired reports a well-signed token past its expiry.
	ErrTokenExpired = errors.New("token: expired")
)

// reserved claims are always set by Sign and never taken from custom claims.
var reserved = map[string]bool{"sub": true, "iat": true, "exp": true, "jti": true, "iss": true}

// Claims is the verified content of a token.
type Claims struct {
	Subject   string
	ID        string
	Issuer    string
	IssuedAt  time.Time
	ExpiresAt time.Time

	// Custom holds the non-reserved claims. JSON numbers decode as float64.
	Custom map[string]any
}

// Service issues and verifies tokens. It is safe for concurrent use.
type Service struct {
	cfg Config
	now func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces the time source used for issuing and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a token service.
func NewService(cfg Config, opts ...Option) (*Service, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Service{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// TTL returns the configured token lifetime.
func (s *Service) TTL() time.Duration { return s.cfg.TTL }

// Sign issues a token for subject. Custom claims named like a reserved
// claim are ignored.
func (s *Service) Sign(subject string, custom map[string]any) (string, error) {
	if subject == "" {
		return "", errors.New("token: subject is required")
	}

	now := s.now()
	claims := gojwt.MapClaims{}
	for k, v := range custom {
		if !reserved[k] {
			claims[k] = v
		}
	}
	claims["sub"] = subject
	claims["iat"] = gojwt.NewNumericDate(now)
	claims["exp"] = gojwt.NewNumericDate(now.Add(s.cfg.TTL))
	claims["jti"] = uuid.NewString()
	if s.cfg.Issuer != "" {
		claims["iss"] = s.cfg.Issuer
	}

	signed, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Verify checks the signature, then the expiry with no leeway. Failures
// wrap ErrTokenInvalid or ErrTokenExpired.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	parsed, err := gojwt.ParseWithClaims(tokenString, gojwt.MapClaims{}, s.keyFunc, s.parserOptions()...)
	if err != nil {
		if errors.Is(err, gojwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	mc, ok := parsed.Claims.(gojwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected claims type", ErrTokenInvalid)
	}

	subject, err := mc.GetSubject()
	if err != nil || subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrTokenInvalid)
	}

	claims := &Claims{Subject: subject, Custom: map[string]any{}}
	if iat, err := mc.GetIssuedAt(); err == nil && iat != nil {
		claims.IssuedAt = iat.Time
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	if iss, err := mc.GetIssuer(); err == nil {
		claims.Issuer = iss
	}
	if jti, ok := mc["jti"].(string); ok {
		claims.ID = jti
	}
	for k, v := range mc {
		if !reserved[k] {
			claims.Custom[k] = v
		}
	}
	return claims, nil
}

func (s *Service) keyFunc(t *gojwt.Token) (interface{}, error) {
	if _, ok := t.Method.(*gojwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
	}
	return []byte(s.cfg.Secret), nil
}

func (s *Service) parserOptions() []gojwt.ParserOption {
	opts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithExpirationRequired(),
		gojwt.WithTimeFunc(s.now),
	}
	if s.cfg.Issuer != "" {
		opts = append(opts, gojwt.WithIssuer(s.cfg.Issuer))
	}
	return opts
}
