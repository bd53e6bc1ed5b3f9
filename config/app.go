package config

import (
	"fmt"
	"time"

	"github.com/chatly/authkit/accounts"
	"github.com/chatly/authkit/auth/jwt"
	"github.com/chatly/authkit/auth/oidc"
	"github.com/chatly/authkit/gate"
	"github.com/chatly/authkit/server"
	"github.com/chatly/authkit/server/handler"
	"github.com/chatly/authkit/session"
)

// Config is the full authkit service configuration.
type Config struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server    server.Config   `yaml:"server" mapstructure:"server"`
	Accounts  accounts.Config `yaml:"accounts" mapstructure:"accounts"`
	Session   SessionConfig   `yaml:"session" mapstructure:"session"`
	Google    GoogleConfig    `yaml:"google" mapstructure:"google"`
	Gate      gate.Config     `yaml:"gate" mapstructure:"gate"`
	Handler   handler.Config  `yaml:"handler" mapstructure:"handler"`
	Telemetry TelemetryConfig `yaml:"telemetry" mapstructure:"telemetry"`
}

// SessionConfig groups the session signing, sealing, and cookie settings.
// Both keys are secrets and come from the environment: SESSION_JWT_SECRET
// and SESSION_ENCRYPTION_KEY.
type SessionConfig struct {
	JWT           jwt.Config           `yaml:"jwt" mapstructure:"jwt"`
	EncryptionKey string               `yaml:"encryption_key" mapstructure:"encryption_key"`
	Cookie        session.CookieConfig `yaml:"cookie" mapstructure:"cookie"`
}

// GoogleConfig wraps the OAuth2 provider config with an enable switch.
// Credential sign-in works without it.
type GoogleConfig struct {
	Enabled     bool `yaml:"enabled" mapstructure:"enabled"`
	oidc.Config `yaml:",inline" mapstructure:",squash"`
}

// TelemetryConfig controls the OTLP exporters.
type TelemetryConfig struct {
	Enabled    bool          `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string        `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure   bool          `yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64       `yaml:"sample_rate" mapstructure:"sample_rate"`
	Interval   time.Duration `yaml:"interval" mapstructure:"interval"`
}

// ApplyDefaults fills zero-valued fields across all sections.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "authkit"
	}
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Session.JWT.ApplyDefaults()
	c.Session.Cookie.ApplyDefaults()
	c.Gate.ApplyDefaults()
	c.Handler.ApplyDefaults()
	if c.Google.Enabled {
		c.Google.Config.ApplyDefaults()
	}
	if c.Telemetry.Endpoint == "" {
		c.Telemetry.Endpoint = "localhost:4318"
	}
	if c.Telemetry.SampleRate == 0 {
		c.Telemetry.SampleRate = 1.0
	}
	if c.Telemetry.Interval == 0 {
		c.Telemetry.Interval = 15 * time.Second
	}
	if c.Environment != "production" {
		c.Telemetry.Insecure = true
	}
}

// Validate checks all sections.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Accounts.Validate(); err != nil {
		return err
	}
	if err := c.Session.JWT.Validate(); err != nil {
		return err
	}
	if c.Session.EncryptionKey == "" {
		return fmt.Errorf("config: session.encryption_key is required")
	}
	if c.Google.Enabled {
		if err := c.Google.Config.Validate(); err != nil {
			return err
		}
	}
	return nil
}
