package auth

import (
	"fmt"
	"time"

	"github.com/kbukum/sessionauth/auth/password"
	"github.com/kbukum/sessionauth/logger"
	"github.com/kbukum/sessionauth/observability"
)

// Defaults applied by Config.ApplyDefaults.
const (
	// DefaultJWTSecret is a public value; New logs a warning when it is used.
	DefaultJWTSecret         = "your-secret-key-change-this"
	DefaultJWTExpiresIn      = 604800 // seconds (7 days)
	DefaultBcryptRounds      = password.DefaultBcryptCost
	DefaultCookieName        = "auth_token"
	DefaultCookieMaxAge      = 604800000 // milliseconds (7 days)
	DefaultCookiePath        = "/"
	DefaultQueryParam        = "token"
	DefaultMinPasswordLength = 8

	// MaxPasswordLength is the bcrypt input limit in bytes.
	MaxPasswordLength = 72
)

// Config configures an Auth instance. It is copied by New and never
// changed afterwards. Scalar fields load from YAML/env via mapstructure
// (AUTH_JWT_SECRET -> auth.jwt_secret).
type Config struct {
	// JWTSecret is the HMAC signing secret (default: DefaultJWTSecret).
	JWTSecret string `yaml:"jwt_secret" mapstructure:"jwt_secret"`

	// JWTExpiresIn is the token lifetime in seconds (default: 604800).
	JWTExpiresIn int64 `yaml:"jwt_expires_in" mapstructure:"jwt_expires_in"`

	// JWTIssuer is the optional "iss" claim; verification requires it when set.
	JWTIssuer string `yaml:"jwt_issuer" mapstructure:"jwt_issuer"`

	// BcryptRounds is the bcrypt work factor (default: 10, range: 4-31).
	BcryptRounds int `yaml:"bcrypt_rounds" mapstructure:"bcrypt_rounds"`

	// Password selects the hashing algorithm and its parameters. Its
	// bcrypt cost always comes from BcryptRounds.
	Password password.Config `yaml:"password" mapstructure:"password"`

	// CookieName names the cookie carrying the token (default: auth_token).
	CookieName string `yaml:"cookie_name" mapstructure:"cookie_name"`

	// CookieMaxAge is the cookie lifetime in milliseconds (default: 604800000).
	CookieMaxAge int64 `yaml:"cookie_max_age" mapstructure:"cookie_max_age"`

	// CookieSecure sets the Secure attribute. Enable in production.
	CookieSecure bool `yaml:"cookie_secure" mapstructure:"cookie_secure"`

	// CookiePath is the cookie path (default: /).
	CookiePath string `yaml:"cookie_path" mapstructure:"cookie_path"`

	// CookieDomain is the cookie domain (default: host-only).
	CookieDomain string `yaml:"cookie_domain" mapstructure:"cookie_domain"`

	// QueryParam is the query parameter checked last for a token
	// (default: token).
	QueryParam string `yaml:"query_param" mapstructure:"query_param"`

	// MinPasswordLength is enforced on registration (default: 8, max: 72).
	MinPasswordLength int `yaml:"min_password_length" mapstructure:"min_password_length"`

	// Store supplies user records.
	Store Store `yaml:"-" mapstructure:"-"`

	// Hasher overrides the hasher built from Password.
	Hasher password.Hasher `yaml:"-" mapstructure:"-"`

	// Tokens overrides the token service built from the JWT fields.
	Tokens TokenService `yaml:"-" mapstructure:"-"`

	// Logger defaults to the "auth" component logger.
	Logger *logger.Logger `yaml:"-" mapstructure:"-"`

	// Metrics is optional; nil records nothing.
	Metrics *observability.Metrics `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults fills zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.JWTSecret == "" {
		c.JWTSecret = DefaultJWTSecret
	}
	if c.JWTExpiresIn == 0 {
		c.JWTExpiresIn = DefaultJWTExpiresIn
	}
	if c.BcryptRounds == 0 {
		c.BcryptRounds = DefaultBcryptRounds
	}
	c.Password.BcryptCost = c.BcryptRounds
	c.Password.ApplyDefaults()
	if c.CookieName == "" {
		c.CookieName = DefaultCookieName
	}
	if c.CookieMaxAge == 0 {
		c.CookieMaxAge = DefaultCookieMaxAge
	}
	if c.CookiePath == "" {
		c.CookiePath = DefaultCookiePath
	}
	if c.QueryParam == "" {
		c.QueryParam = DefaultQueryParam
	}
	if c.MinPasswordLength == 0 {
		c.MinPasswordLength = DefaultMinPasswordLength
	}
}

// Validate checks the configuration after defaults are applied.
func (c *Config) Validate() error {
	if c.JWTExpiresIn < 0 {
		return fmt.Errorf("auth.jwt_expires_in must be positive (got: %d)", c.JWTExpiresIn)
	}
	if c.BcryptRounds < 4 || c.BcryptRounds > 31 {
		return fmt.Errorf("auth.bcrypt_rounds must be between 4 and 31 (got: %d)", c.BcryptRounds)
	}
	if err := c.Password.Validate(); err != nil {
		return fmt.Errorf("auth.password: %w", err)
	}
	// Cookie Max-Age has one-second resolution; anything shorter would
	// become a browser-session cookie.
	if c.CookieMaxAge < 1000 {
		return fmt.Errorf("auth.cookie_max_age must be at least 1000 ms (got: %d)", c.CookieMaxAge)
	}
	if c.MinPasswordLength < 1 || c.MinPasswordLength > MaxPasswordLength {
		return fmt.Errorf("auth.min_password_length must be between 1 and %d (got: %d)", MaxPasswordLength, c.MinPasswordLength)
	}
	return nil
}

// TokenTTL returns JWTExpiresIn as a duration.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWTExpiresIn) * time.Second
}

// InsecureSecret reports whether the built-in default secret is in use.
func (c *Config) InsecureSecret() bool {
	return c.JWTSecret == DefaultJWTSecret
}

// Describe returns a one-line summary for startup logs. It never includes
// the secret.
func (c *Config) Describe() string {
	return fmt.Sprintf("JWT(HS256) TTL=%s password=%s bcrypt=%d cookie=%s secure=%t lookup=%t",
		c.TokenTTL(), c.Password.Algorithm, c.BcryptRounds, c.CookieName, c.CookieSecure, c.Store.FindByID != nil)
}
