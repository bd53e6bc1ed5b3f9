package session

import (
	"github.com/chatly/authkit/accounts"
	"github.com/chatly/authkit/errors"
	"github.com/chatly/authkit/logger"
)

// Manager drives session lifecycle transitions over a codec. It is the
// only writer of session blobs; handlers hand it user records and patches
// and get replacement blobs back.
type Manager struct {
	codec *Codec
	log   *logger.Logger
}

// NewManager creates a session manager.
func NewManager(codec *Codec, log *logger.Logger) *Manager {
	return &Manager{codec: codec, log: log.WithComponent("session")}
}

// Codec exposes the underlying codec, mainly so the server can build the
// gate validator from the same keys.
func (m *Manager) Codec() *Codec {
	return m.codec
}

// Create mints a session for a freshly authenticated user.
func (m *Manager) Create(rec *accounts.UserRecord) (string, *SessionToken, error) {
	tok := NewSessionToken(rec)
	blob, err := m.codec.Seal(tok)
	if err != nil {
		m.log.Error("failed to seal session", logger.ErrorFields("seal", err))
		return "", nil, errors.Internal(err)
	}
	m.log.Debug("session created", logger.Fields(logger.FieldUserID, tok.UserID))
	return blob, tok, nil
}

// Update applies a patch to an existing session and reseals it. The user
// id, access token, and expiry are preserved regardless of what the patch
// contains, and an empty patch simply reseals the current state.
func (m *Manager) Update(blob string, patch Patch) (string, *SessionToken, error) {
	tok, err := m.Resolve(blob)
	if err != nil {
		return "", nil, err
	}
	next := tok.Apply(patch)
	out, err := m.codec.Reseal(next)
	if err != nil {
		m.log.Error("failed to reseal session", logger.ErrorFields("reseal", err))
		return "", nil, errors.Internal(err)
	}
	return out, next, nil
}

// Resolve opens a blob into its token. Invalid or expired blobs come back
// as an unauthorized error carrying the underlying cause for logs only.
func (m *Manager) Resolve(blob string) (*SessionToken, error) {
	if blob == "" {
		return nil, errors.Unauthorized()
	}
	tok, err := m.codec.Open(blob)
	if err != nil {
		m.log.Debug("session rejected", logger.ErrorFields("open", err))
		return nil, errors.Unauthorized().WithCause(err)
	}
	return tok, nil
}
