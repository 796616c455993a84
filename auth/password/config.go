package password

import "fmt"

// Algorithm names a supported hashing scheme.
type Algorithm string

const (
	// AlgorithmBcrypt is the default.
	AlgorithmBcrypt Algorithm = "bcrypt"

	// AlgorithmArgon2id trades memory for brute-force resistance.
	AlgorithmArgon2id Algorithm = "argon2id"
)

// DefaultBcryptCost is the work factor used when none is configured.
const DefaultBcryptCost = 10

// Config configures password hashing. Loadable from YAML/env via
// mapstructure tags.
type Config struct {
	// Algorithm selects the hashing scheme (default: "bcrypt").
	Algorithm Algorithm `mapstructure:"algorithm"`

	// BcryptCost is the bcrypt work factor (default: 10, range: 4-31).
	BcryptCost int `mapstructure:"bcrypt_cost"`

	// Argon2Time is the number of argon2id passes (default: 1).
	Argon2Time uint32 `mapstructure:"argon2_time"`

	// Argon2Memory is argon2id memory in KiB (default: 65536).
	Argon2Memory uint32 `mapstructure:"argon2_memory"`

	// Argon2Threads is argon2id parallelism (default: 4).
	Argon2Threads uint8 `mapstructure:"argon2_threads"`
}

// ApplyDefaults sets defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Algorithm == "" {
		c.Algorithm = AlgorithmBcrypt
	}
	if c.BcryptCost == 0 {
		c.BcryptCost = DefaultBcryptCost
	}
	if c.Argon2Time == 0 {
		c.Argon2Time = 1
	}
	if c.Argon2Memory == 0 {
		c.Argon2Memory = 64 * 1024
	}
	if c.Argon2Threads == 0 {
		c.Argon2Threads = 4
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	switch c.Algorithm {
	case AlgorithmBcrypt, AlgorithmArgon2id:
	default:
		return fmt.Errorf("unsupported algorithm: %s (use bcrypt or argon2id)", c.Algorithm)
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("bcrypt_cost must be between 4 and 31 (got: %d)", c.BcryptCost)
	}
	if c.Argon2Memory > maxArgon2Memory {
		return fmt.Errorf("argon2_memory must be at most %d KiB (got: %d)", maxArgon2Memory, c.Argon2Memory)
	}
	if c.Argon2Time > maxArgon2Time {
		return fmt.Errorf("argon2_time must be at most %d (got: %d)", maxArgon2Time, c.Argon2Time)
	}
	return nil
}

// NewHasher builds the Hasher selected by cfg.
func NewHasher(cfg Config) (Hasher, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Algorithm {
	case AlgorithmArgon2id:
		return NewArgon2Hasher(
			WithArgon2Time(cfg.Argon2Time),
			WithArgon2Memory(cfg.Argon2Memory),
			WithArgon2Threads(cfg.Argon2Threads),
		), nil
	default:
		return NewBcryptHasher(WithCost(cfg.BcryptCost)), nil
	}
}
