package oidc

import "context"

// Provider defines the contract for an OAuth2 authentication provider,
// covering the server-side Authorization Code flow.
type Provider interface {
	// Name returns the provider identifier (e.g., "google").
	Name() string

	// AuthURL returns the authorization URL for initiating the OAuth2 flow.
	// The state parameter must be a cryptographically random value for CSRF
	// protection (see GenerateState).
	AuthURL(state string) string

	// Exchange trades an authorization code for tokens.
	Exchange(ctx context.Context, code string) (*TokenResult, error)

	// UserInfo fetches the user's profile from the provider using an access token.
	UserInfo(ctx context.Context, accessToken string) (*UserInfo, error)
}

// TokenResult holds the tokens returned from an OAuth2 exchange.
type TokenResult struct {
	// AccessToken is the OAuth2 access token.
	AccessToken string

	// IDToken is the raw OIDC ID token JWT string (may be empty).
	IDToken string

	// TokenType is typically "Bearer".
	TokenType string

	// ExpiresIn is the access token lifetime in seconds.
	ExpiresIn int
}

// UserInfo represents the standard OIDC UserInfo claims consumed by the
// sign-in flow.
type UserInfo struct {
	// Subject is the provider's unique identifier for the user.
	Subject string `json:"sub"`

	// Email is the user's email address (may be empty if not in scope).
	Email string `json:"email,omitempty"`

	// EmailVerified indicates if the provider has verified the email.
	EmailVerified bool `json:"email_verified,omitempty"`

	// Name is the user's full display name.
	Name string `json:"name,omitempty"`

	// Picture is a URL to the user's profile picture.
	Picture string `json:"picture,omitempty"`
}
