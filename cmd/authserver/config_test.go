package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kbukum/sessionauth/auth/password"
	"github.com/kbukum/sessionauth/config"
)

func TestConfig_Defaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.Name != serviceName {
		t.Errorf("expected name %q, got %q", serviceName, cfg.Name)
	}
	if cfg.Observability.ServiceName != serviceName {
		t.Errorf("expected observability service name, got %q", cfg.Observability.ServiceName)
	}
	if cfg.Auth.CookieSecure {
		t.Error("development must not force secure cookies")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate in development: %v", err)
	}
}

func TestConfig_Production(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		wantErr bool
	}{
		{"built-in secret refused", "", true},
		{"configured secret", "a-real-production-secret", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Config{}
			cfg.Environment = config.EnvProduction
			cfg.Auth.JWTSecret = tc.secret
			cfg.ApplyDefaults()

			if !cfg.Auth.CookieSecure {
				t.Error("production must force secure cookies")
			}
			if err := cfg.Validate(); (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestConfig_LoadFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	data := []byte("name: authserver\nauth:\n  bcrypt_rounds: 12\n  password:\n    algorithm: argon2id\n    argon2_memory: 2048\nserver:\n  port: 9000\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("AUTH_JWT_SECRET", "from-env")

	var cfg Config
	if err := config.LoadConfig(serviceName, &cfg, config.WithConfigFile(path), config.WithEnvFile(filepath.Join(dir, "missing.env"))); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Auth.BcryptRounds != 12 || cfg.Server.Port != 9000 {
		t.Errorf("file values not loaded: %+v %+v", cfg.Auth.BcryptRounds, cfg.Server.Port)
	}
	if cfg.Auth.Password.Algorithm != password.AlgorithmArgon2id || cfg.Auth.Password.Argon2Memory != 2048 {
		t.Errorf("password section not loaded: %+v", cfg.Auth.Password)
	}
	if cfg.Auth.JWTSecret != "from-env" {
		t.Errorf("expected secret from env, got %q", cfg.Auth.JWTSecret)
	}
}
