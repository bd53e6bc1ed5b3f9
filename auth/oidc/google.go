package oidc

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/chatly/authkit/httpclient"
)

// GoogleProvider implements Provider for Google's OAuth2 endpoints.
type GoogleProvider struct {
	cfg    Config
	client *httpclient.Client
}

// NewGoogle creates a Google OAuth2 provider.
func NewGoogle(cfg Config) (*GoogleProvider, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	client, err := httpclient.New(httpclient.Config{})
	if err != nil {
		return nil, err
	}
	return &GoogleProvider{cfg: cfg, client: client}, nil
}

// Name returns "google".
func (p *GoogleProvider) Name() string { return "google" }

// AuthURL returns the authorization URL for initiating the OAuth2 flow.
func (p *GoogleProvider) AuthURL(state string) string {
	q := url.Values{}
	q.Set("client_id", p.cfg.ClientID)
	q.Set("redirect_uri", p.cfg.RedirectURL)
	q.Set("response_type", "code")
	q.Set("scope", strings.Join(p.cfg.Scopes, " "))
	q.Set("state", state)
	return p.cfg.AuthEndpoint + "?" + q.Encode()
}

// Exchange trades an authorization code for tokens.
func (p *GoogleProvider) Exchange(ctx context.Context, code string) (*TokenResult, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("client_id", p.cfg.ClientID)
	form.Set("client_secret", p.cfg.ClientSecret)
	form.Set("redirect_uri", p.cfg.RedirectURL)

	resp, err := p.client.Do(ctx, httpclient.Request{
		Method:  http.MethodPost,
		Path:    p.cfg.TokenEndpoint,
		Headers: map[string]string{"Content-Type": "application/x-www-form-urlencoded"},
		Body:    form.Encode(),
	})
	if err != nil {
		return nil, fmt.Errorf("oidc: token exchange: %w", err)
	}

	var body struct {
		AccessToken string `json:"access_token"`
		IDToken     string `json:"id_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := resp.DecodeJSON(&body); err != nil {
		return nil, fmt.Errorf("oidc: token exchange: %w", err)
	}
	if body.AccessToken == "" {
		return nil, fmt.Errorf("oidc: token exchange returned no access token")
	}

	return &TokenResult{
		AccessToken: body.AccessToken,
		IDToken:     body.IDToken,
		TokenType:   body.TokenType,
		ExpiresIn:   body.ExpiresIn,
	}, nil
}

// UserInfo fetches the user's profile from the provider.
func (p *GoogleProvider) UserInfo(ctx context.Context, accessToken string) (*UserInfo, error) {
	resp, err := p.client.Do(ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   p.cfg.UserInfoEndpoint,
		Auth:   httpclient.BearerAuth(accessToken),
	})
	if err != nil {
		return nil, fmt.Errorf("oidc: userinfo: %w", err)
	}

	var info UserInfo
	if err := resp.DecodeJSON(&info); err != nil {
		return nil, fmt.Errorf("oidc: userinfo: %w", err)
	}
	if info.Subject == "" {
		return nil, fmt.Errorf("oidc: userinfo returned no subject")
	}
	return &info, nil
}
