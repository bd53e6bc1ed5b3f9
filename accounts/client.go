package accounts

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/chatly/authkit/errors"
	"github.com/chatly/authkit/httpclient"
	"github.com/chatly/authkit/logger"
)

// Config configures the account service client.
type Config struct {
	// BaseURL is the account service root, e.g. "https://api.chatly.dev".
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout bounds every call to the account service.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout == 0 {
		c.Timeout = 10 * time.Second
	}
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("accounts: base_url is required")
	}
	return nil
}

// Client is the identity resolver: it turns raw credentials or a provider
// profile into a canonical UserRecord by delegating to the account service.
type Client struct {
	http *httpclient.Client
	log  *logger.Logger
}

// New creates an account service client.
func New(cfg Config) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	hc, err := httpclient.New(httpclient.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return nil, err
	}
	return &Client{
		http: hc,
		log:  logger.WithComponent("accounts"),
	}, nil
}

// Authenticate forwards the credential pair to the account service's login
// endpoint and returns the canonical user record.
//
// Error mapping: a 4xx response becomes InvalidCredentials carrying the
// server-supplied message; no response at all (timeout, refused connection)
// becomes ServerUnreachable; anything else becomes Unknown. No local state
// is mutated on failure and the call is never retried automatically.
func (c *Client) Authenticate(ctx context.Context, creds Credentials) (*UserRecord, error) {
	resp, err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   creds,
	})
	if err != nil {
		return nil, c.mapLoginError(resp, err)
	}

	var body struct {
		Success bool    `json:"success"`
		Message string  `json:"message"`
		Token   string  `json:"token"`
		User    userDTO `json:"user"`
	}
	if err := resp.DecodeJSON(&body); err != nil {
		return nil, errors.Unknown("").WithCause(err)
	}
	if !body.Success {
		return nil, errors.InvalidCredentials(body.Message)
	}
	if body.User.ID == "" || body.Token == "" {
		return nil, errors.Unknown("").WithCause(fmt.Errorf("accounts: login response missing id or token"))
	}

	return body.User.record(body.Token), nil
}

// Register creates a new account via the registration endpoint, sending the
// optional profile picture as a multipart file field. On success the caller
// signs in with the same credentials to obtain a session; the registration
// response itself carries no access token.
func (c *Client) Register(ctx context.Context, reg Registration) error {
	body := &httpclient.MultipartBody{
		Fields: map[string]string{
			"fullName": reg.FullName,
			"userName": reg.UserName,
			"email":    reg.Email,
			"password": reg.Password,
		},
	}
	if len(reg.ProfilePic) > 0 {
		name := reg.ProfilePicName
		if name == "" {
			name = "profilePic"
		}
		body.Files = append(body.Files, httpclient.FileField{
			FieldName:   "profilePic",
			FileName:    name,
			ContentType: reg.ProfilePicMimeType,
			Data:        reg.ProfilePic,
		})
	}

	resp, err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/auth/register",
		Body:   body,
	})
	if err != nil {
		if httpclient.IsUnreachable(err) {
			return errors.ServerUnreachable().WithCause(err)
		}
		if httpclient.IsClientError(err) {
			return errors.Validation(serverMessage(resp, "Something went wrong."))
		}
		return errors.Unknown("").WithCause(err)
	}

	var out struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := resp.DecodeJSON(&out); err != nil {
		return errors.Unknown("").WithCause(err)
	}
	if !out.Success {
		return errors.Validation(serverMessage(resp, "Something went wrong."))
	}
	return nil
}

// LinkOAuthAccount forwards provider-supplied profile attributes to the
// OAuth-link endpoint, which finds or creates the matching account and
// returns its record plus access token.
//
// Any failure aborts the entire sign-in: the caller must not fall back to
// provider-only identity.
func (c *Client) LinkOAuthAccount(ctx context.Context, profile ProviderProfile) (*UserRecord, error) {
	resp, err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/auth/google",
		Body: map[string]string{
			"email":    profile.Email,
			"fullName": profile.Name,
			"image":    profile.Image,
			"id":       profile.ProviderID,
		},
	})
	if err != nil {
		c.log.Warn("provider link rejected", logger.ErrorFields("link_oauth", err))
		if httpclient.IsUnreachable(err) {
			return nil, errors.ServerUnreachable().WithCause(err)
		}
		return nil, errors.ProviderLinkFailed().WithCause(err)
	}

	var body struct {
		Token string  `json:"token"`
		User  userDTO `json:"user"`
	}
	if err := resp.DecodeJSON(&body); err != nil {
		return nil, errors.ProviderLinkFailed().WithCause(err)
	}
	if body.User.ID == "" || body.Token == "" {
		return nil, errors.ProviderLinkFailed().WithCause(fmt.Errorf("accounts: link response missing id or token"))
	}

	return body.User.record(body.Token), nil
}

// Health probes whether the account service is reachable. Any HTTP
// response counts as reachable; only transport failures are reported.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   "/",
	})
	if httpclient.IsUnreachable(err) {
		return fmt.Errorf("account service unreachable: %w", err)
	}
	return nil
}

// mapLoginError translates a transport or HTTP failure of the login call
// into the authentication taxonomy.
func (c *Client) mapLoginError(resp *httpclient.Response, err error) error {
	if httpclient.IsUnreachable(err) {
		return errors.ServerUnreachable().WithCause(err)
	}
	if httpclient.IsClientError(err) {
		return errors.InvalidCredentials(serverMessage(resp, ""))
	}
	c.log.Error("login failed", logger.ErrorFields("authenticate", err))
	return errors.Unknown("").WithCause(err)
}

// serverMessage extracts the "message" field from an error response body,
// falling back to def when absent or unparseable.
func serverMessage(resp *httpclient.Response, def string) string {
	if resp == nil || len(resp.Body) == 0 {
		return def
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body, &body); err != nil || body.Message == "" {
		return def
	}
	return body.Message
}
