package main

import (
	"fmt"

	"github.com/kbukum/sessionauth/auth"
	"github.com/kbukum/sessionauth/config"
	"github.com/kbukum/sessionauth/database"
	"github.com/kbukum/sessionauth/observability"
	"github.com/kbukum/sessionauth/server"
)

// Config is the authserver configuration, loaded from config.yml and
// environment variables (AUTH_JWT_SECRET, SERVER_PORT, ...).
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Auth          auth.Config          `yaml:"auth" mapstructure:"auth"`
	Database      database.Config      `yaml:"database" mapstructure:"database"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults fills unset fields in every section.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Auth.ApplyDefaults()
	c.Database.ApplyDefaults()

	if c.Observability.ServiceName == "" {
		c.Observability.ServiceName = c.Name
	}
	if c.Observability.Environment == "" {
		c.Observability.Environment = c.Environment
	}
	if c.Observability.ServiceVersion == "" {
		c.Observability.ServiceVersion = c.Version
	}
	c.Observability.ApplyDefaults()

	if c.IsProduction() {
		c.Auth.CookieSecure = true
	}
}

// Validate checks every section. Production refuses the built-in secret.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Observability.Validate(); err != nil {
		return err
	}
	if c.IsProduction() && c.Auth.InsecureSecret() {
		return fmt.Errorf("auth.jwt_secret must be set in production")
	}
	return nil
}
