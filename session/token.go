package session

import (
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/chatly/authkit/accounts"
)

// SessionToken is the claims set carried inside a session blob. It embeds
// the registered JWT claims (iat, exp, iss) and flattens the user record
// into custom claims.
type SessionToken struct {
	gojwt.RegisteredClaims

	UserID      string `json:"uid"`
	Email       string `json:"email"`
	FullName    string `json:"fullName,omitempty"`
	UserName    string `json:"userName,omitempty"`
	ProfilePic  string `json:"profilePic,omitempty"`
	About       string `json:"about,omitempty"`
	AccessToken string `json:"accessToken"`
}

// NewSessionToken builds a token from a resolved user record. Time claims
// are stamped later, when the token is signed.
func NewSessionToken(rec *accounts.UserRecord) *SessionToken {
	return &SessionToken{
		UserID:      rec.ID,
		Email:       rec.Email,
		FullName:    rec.FullName,
		UserName:    rec.UserName,
		ProfilePic:  rec.ProfilePic,
		About:       rec.About,
		AccessToken: rec.AccessToken,
	}
}

// SetDefaults stamps the registered time claims. Called by the jwt service
// when the token is first signed.
func (t *SessionToken) SetDefaults(now time.Time, ttl time.Duration, issuer string) {
	t.IssuedAt = gojwt.NewNumericDate(now)
	t.ExpiresAt = gojwt.NewNumericDate(now.Add(ttl))
	if issuer != "" {
		t.Issuer = issuer
	}
}

// Patch is the set of profile fields a client may change on a live
// session. The zero value of a field means "leave unchanged"; the user id
// and upstream access token are not patchable at all.
type Patch struct {
	Email      string `json:"email,omitempty"`
	FullName   string `json:"fullName,omitempty"`
	UserName   string `json:"userName,omitempty"`
	ProfilePic string `json:"profilePic,omitempty"`
	About      string `json:"about,omitempty"`
}

// IsZero reports whether the patch changes nothing.
func (p Patch) IsZero() bool {
	return p == Patch{}
}

// Apply returns a copy of the token with the patch's non-empty fields
// written over the current values. The receiver is never modified, and
// the identity and time claims carry over untouched.
func (t *SessionToken) Apply(p Patch) *SessionToken {
	next := *t
	if p.Email != "" {
		next.Email = p.Email
	}
	if p.FullName != "" {
		next.FullName = p.FullName
	}
	if p.UserName != "" {
		next.UserName = p.UserName
	}
	if p.ProfilePic != "" {
		next.ProfilePic = p.ProfilePic
	}
	if p.About != "" {
		next.About = p.About
	}
	return &next
}

// View is the client-facing projection of a session, returned by the
// session endpoint. It mirrors the token claims without the JWT plumbing.
type View struct {
	User      UserView  `json:"user"`
	ExpiresAt time.Time `json:"expires"`
}

// UserView is the user half of a session view.
type UserView struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FullName    string `json:"fullName,omitempty"`
	UserName    string `json:"userName,omitempty"`
	ProfilePic  string `json:"profilePic,omitempty"`
	About       string `json:"about,omitempty"`
	AccessToken string `json:"accessToken"`
}

// View projects the token into its client-facing shape.
func (t *SessionToken) View() View {
	v := View{
		User: UserView{
			ID:          t.UserID,
			Email:       t.Email,
			FullName:    t.FullName,
			UserName:    t.UserName,
			ProfilePic:  t.ProfilePic,
			About:       t.About,
			AccessToken: t.AccessToken,
		},
	}
	if t.ExpiresAt != nil {
		v.ExpiresAt = t.ExpiresAt.Time
	}
	return v
}
