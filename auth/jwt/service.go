// Package jwt provides a generic JWT token service over a custom claims type.
//
// The service is parameterized by a claims type T implementing jwt.Claims
// (typically by embedding jwt.RegisteredClaims), so the session package can
// define its own token structure without this package knowing the fields.
//
//	svc, err := jwt.NewService(cfg, func() *SessionToken { return &SessionToken{} })
//	signed, err := svc.GenerateSession(tok)
//	tok, err := svc.Parse(signed)
package jwt

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Service provides JWT token generation and parsing for custom claims type T.
type Service[T gojwt.Claims] struct {
	cfg      Config
	newEmpty func() T
}

// NewService creates a new JWT service.
// The newEmpty function returns a zero-value instance of T for parsing.
func NewService[T gojwt.Claims](cfg *Config, newEmpty func() T) (*Service[T], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("jwt: %w", err)
	}
	return &Service[T]{cfg: *cfg, newEmpty: newEmpty}, nil
}

// TTL returns the configured token lifetime.
func (s *Service[T]) TTL() time.Duration {
	return s.cfg.TTL
}

// Generate creates a signed JWT token from the given claims as-is.
func (s *Service[T]) Generate(claims T) (string, error) {
	token := gojwt.NewWithClaims(s.cfg.signingMethod(), claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("jwt: sign token: %w", err)
	}
	return signed, nil
}

// GenerateSession stamps standard time claims (iat, exp from the configured
// TTL, iss) and signs the token. Claims types opt in by implementing
//
//	SetDefaults(now time.Time, ttl time.Duration, issuer string)
func (s *Service[T]) GenerateSession(claims T) (string, error) {
	if setter, ok := any(claims).(interface {
		SetDefaults(time.Time, time.Duration, string)
	}); ok {
		setter.SetDefaults(time.Now(), s.cfg.TTL, s.cfg.Issuer)
	}
	return s.Generate(claims)
}

// Parse validates and parses a JWT token string into claims of type T.
// It verifies the signature and expiry, and the issuer when configured.
func (s *Service[T]) Parse(tokenString string) (T, error) {
	claims := s.newEmpty()
	token, err := gojwt.ParseWithClaims(tokenString, claims, s.keyFunc, s.parserOptions()...)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("jwt: parse token: %w", err)
	}
	if !token.Valid {
		var zero T
		return zero, errors.New("jwt: invalid token")
	}
	parsed, ok := token.Claims.(T)
	if !ok {
		var zero T
		return zero, errors.New("jwt: unexpected claims type")
	}
	return parsed, nil
}

// ValidatorFunc bridges the typed service to middleware that only knows
// func(string) (any, error).
func (s *Service[T]) ValidatorFunc() func(string) (any, error) {
	return func(token string) (any, error) {
		return s.Parse(token)
	}
}

// keyFunc is the jwt.Keyfunc used during token parsing.
func (s *Service[T]) keyFunc(token *gojwt.Token) (interface{}, error) {
	expected := s.cfg.signingMethod()
	if token.Method.Alg() != expected.Alg() {
		return nil, fmt.Errorf("jwt: unexpected signing method: %s", token.Method.Alg())
	}
	return []byte(s.cfg.Secret), nil
}

// parserOptions returns jwt.ParserOption based on config.
func (s *Service[T]) parserOptions() []gojwt.ParserOption {
	opts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{s.cfg.signingMethod().Alg()}),
	}
	if s.cfg.Issuer != "" {
		opts = append(opts, gojwt.WithIssuer(s.cfg.Issuer))
	}
	return opts
}
