package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

// Encryptor seals plaintext into an opaque cookie-safe blob and opens it
// back. Both directions must use the same key and algorithm.
type Encryptor interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(blob string) (string, error)
}

// Algorithm selects the AEAD cipher backing an Encryptor.
type Algorithm string

const (
	// AlgorithmAESGCM is AES-256-GCM (default, widely supported).
	AlgorithmAESGCM Algorithm = "aes-256-gcm"

	// AlgorithmChaCha20 is ChaCha20-Poly1305 (fast on CPUs without AES-NI).
	AlgorithmChaCha20 Algorithm = "chacha20-poly1305"
)

// Option configures the encryption service.
type Option func(*options)

type options struct {
	algorithm Algorithm
}

// WithAlgorithm selects the encryption algorithm (default: AES-256-GCM).
func WithAlgorithm(alg Algorithm) Option {
	return func(o *options) { o.algorithm = alg }
}

// New creates an Encryptor with the given key and options. The key is a
// passphrase of any length; it is hashed with SHA-256 to derive the
// 32-byte cipher key, so deployments can use human-managed secrets.
func New(key string, opts ...Option) (Encryptor, error) {
	o := &options{algorithm: AlgorithmAESGCM}
	for _, opt := range opts {
		opt(o)
	}

	k := sha256.Sum256([]byte(key))
	aead, err := newAEAD(o.algorithm, k[:])
	if err != nil {
		return nil, err
	}
	return &sealer{alg: o.algorithm, aead: aead}, nil
}

func newAEAD(alg Algorithm, key []byte) (cipher.AEAD, error) {
	switch alg {
	case AlgorithmChaCha20:
		aead, err := chacha20poly1305.New(key)
		if err != nil {
			return nil, fmt.Errorf("create chacha20: %w", err)
		}
		return aead, nil
	case AlgorithmAESGCM, "":
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("create cipher: %w", err)
		}
		aead, err := cipher.NewGCM(block)
		if err != nil {
			return nil, fmt.Errorf("create GCM: %w", err)
		}
		return aead, nil
	default:
		return nil, fmt.Errorf("unsupported algorithm %q", alg)
	}
}

// sealer implements Encryptor over any AEAD. The blob layout is
// nonce || ciphertext, base64url-encoded without padding so the result
// can travel in a cookie value unescaped.
type sealer struct {
	alg  Algorithm
	aead cipher.AEAD
}

func (s *sealer) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, s.aead.NonceSize(), s.aead.NonceSize()+len(plaintext)+s.aead.Overhead())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	sealed := s.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

func (s *sealer) Decrypt(blob string) (string, error) {
	data, err := base64.RawURLEncoding.DecodeString(blob)
	if err != nil {
		return "", fmt.Errorf("decode base64: %w", err)
	}
	if len(data) < s.aead.NonceSize() {
		return "", fmt.Errorf("blob too short")
	}

	nonce, ciphertext := data[:s.aead.NonceSize()], data[s.aead.NonceSize():]
	plaintext, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("decrypt: %w", err)
	}
	return string(plaintext), nil
}
