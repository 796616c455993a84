package token

import (
	"errors"
	"time"
)

// DefaultTTL is the token lifetime used when none is configured (7 days).
const DefaultTTL = 7 * 24 * time.Hour

// Config configures the token service.
type Config struct {
	// Secret is the HMAC signing key (required).
	Secret string `mapstructure:"secret"`

	// TTL is the lifetime of issued tokens (default: 7 days).
	TTL time.Duration `mapstructure:"ttl"`

	// Issuer is the "iss" claim (optional). When set, Verify requires it.
	Issuer string `mapstructure:"issuer"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.TTL == 0 {
		c.TTL = DefaultTTL
	}
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.Secret == "" {
		return errors.New("token: secret is required")
	}
	if c.TTL < 0 {
		return errors.New("token: ttl must be positive")
	}
	return nil
}
