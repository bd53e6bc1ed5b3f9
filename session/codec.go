package session

import (
	"fmt"
	"time"

	"github.com/chatly/authkit/auth"
	"github.com/chatly/authkit/auth/jwt"
	"github.com/chatly/authkit/encryption"
)

// Codec seals session tokens into opaque blobs and opens them again.
// A blob is a signed JWT encrypted with an AEAD cipher, so the client can
// hold it but can neither read nor forge it. The AEAD output is already
// base64url, which keeps the blob cookie-safe.
type Codec struct {
	jwt *jwt.Service[*SessionToken]
	enc encryption.Encryptor
}

// NewCodec creates a codec from a JWT signing config and an encryption key.
func NewCodec(jwtCfg *jwt.Config, encryptionKey string) (*Codec, error) {
	svc, err := jwt.NewService(jwtCfg, func() *SessionToken { return &SessionToken{} })
	if err != nil {
		return nil, err
	}
	enc, err := encryption.New(encryptionKey, encryption.WithAlgorithm(encryption.AlgorithmChaCha20))
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	return &Codec{jwt: svc, enc: enc}, nil
}

// Seal signs a fresh token, stamping its time claims, and encrypts it.
func (c *Codec) Seal(tok *SessionToken) (string, error) {
	signed, err := c.jwt.GenerateSession(tok)
	if err != nil {
		return "", fmt.Errorf("session: %w", err)
	}
	blob, err := c.enc.Encrypt(signed)
	if err != nil {
		return "", fmt.Errorf("session: seal: %w", err)
	}
	return blob, nil
}

// Reseal signs a token preserving its existing time claims. Used after a
// patch so an update never extends the session's life.
func (c *Codec) Reseal(tok *SessionToken) (string, error) {
	signed, err := c.jwt.Generate(tok)
	if err != nil {
		return "", fmt.Errorf("session: %w", err)
	}
	blob, err := c.enc.Encrypt(signed)
	if err != nil {
		return "", fmt.Errorf("session: seal: %w", err)
	}
	return blob, nil
}

// Open decrypts and verifies a blob. Any tampering, garbage input, wrong
// key, or expired token yields an error, never a panic.
func (c *Codec) Open(blob string) (*SessionToken, error) {
	signed, err := c.enc.Decrypt(blob)
	if err != nil {
		return nil, fmt.Errorf("session: open: %w", err)
	}
	tok, err := c.jwt.Parse(signed)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	return tok, nil
}

// Validator adapts the codec to the auth.TokenValidator interface the
// access gate consumes.
func (c *Codec) Validator() auth.TokenValidator {
	return auth.NewValidator(func(blob string) (any, error) {
		return c.Open(blob)
	})
}

// TTL returns the configured session lifetime.
func (c *Codec) TTL() time.Duration {
	return c.jwt.TTL()
}
