// Package config loads service configuration for sessionauth hosts.
//
// Values come from a config.yml file, a .env file and the process
// environment, in that order of increasing precedence. Environment keys are
// matched against nested mapstructure keys, so AUTH_JWT_SECRET populates
// auth.jwt_secret:
//
//	type Config struct {
//	    config.ServiceConfig `mapstructure:",squash"`
//	    Auth auth.Config     `mapstructure:"auth"`
//	}
//	var cfg Config
//	err := config.LoadConfig("authserver", &cfg)
package config
