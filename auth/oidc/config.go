package oidc

import "errors"

// Google's OAuth2 endpoints.
const (
	googleAuthEndpoint     = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenEndpoint    = "https://oauth2.googleapis.com/token"
	googleUserInfoEndpoint = "https://openidconnect.googleapis.com/v1/userinfo"
)

// Config configures an OAuth2 provider.
type Config struct {
	// ClientID is the OAuth2 client identifier.
	ClientID string `yaml:"client_id" mapstructure:"client_id"`

	// ClientSecret is the OAuth2 client secret.
	ClientSecret string `yaml:"client_secret" mapstructure:"client_secret"`

	// RedirectURL is the callback URL registered with the provider.
	RedirectURL string `yaml:"redirect_url" mapstructure:"redirect_url"`

	// Scopes are the requested scopes (default: openid, email, profile).
	Scopes []string `yaml:"scopes" mapstructure:"scopes"`

	// AuthEndpoint, TokenEndpoint and UserInfoEndpoint default to Google's
	// endpoints; tests point them at local servers.
	AuthEndpoint     string `yaml:"auth_endpoint" mapstructure:"auth_endpoint"`
	TokenEndpoint    string `yaml:"token_endpoint" mapstructure:"token_endpoint"`
	UserInfoEndpoint string `yaml:"userinfo_endpoint" mapstructure:"userinfo_endpoint"`
}

// ApplyDefaults fills in Google endpoints and standard scopes.
func (c *Config) ApplyDefaults() {
	if len(c.Scopes) == 0 {
		c.Scopes = []string{"openid", "email", "profile"}
	}
	if c.AuthEndpoint == "" {
		c.AuthEndpoint = googleAuthEndpoint
	}
	if c.TokenEndpoint == "" {
		c.TokenEndpoint = googleTokenEndpoint
	}
	if c.UserInfoEndpoint == "" {
		c.UserInfoEndpoint = googleUserInfoEndpoint
	}
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.ClientID == "" {
		return errors.New("oidc: client_id is required")
	}
	if c.ClientSecret == "" {
		return errors.New("oidc: client_secret is required")
	}
	if c.RedirectURL == "" {
		return errors.New("oidc: redirect_url is required")
	}
	return nil
}
