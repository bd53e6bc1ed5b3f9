package accounts

// UserRecord is the canonical user identity returned by the account service.
// ID and AccessToken are always present on a successfully returned record;
// every other field is best-effort and may be the empty string, never nil,
// so downstream code can treat them uniformly as text.
type UserRecord struct {
	ID          string
	Email       string
	FullName    string
	UserName    string
	ProfilePic  string
	About       string
	AccessToken string
}

// Credentials is an email/password pair submitted by the login form.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Registration is the signup form payload. ProfilePic is optional.
type Registration struct {
	FullName string `json:"fullName" validate:"required,min=3"`
	UserName string `json:"userName" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`

	// ProfilePic is the raw image content, sent as a multipart file field
	// when non-empty.
	ProfilePic         []byte `json:"-"`
	ProfilePicName     string `json:"-"`
	ProfilePicMimeType string `json:"-"`
}

// ProviderProfile holds the attributes an OAuth provider asserted about the
// user. The account service either finds or creates the matching account.
type ProviderProfile struct {
	Email      string
	Name       string
	Image      string
	ProviderID string
}

// userDTO mirrors the account service's user JSON shape.
type userDTO struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	FullName   string `json:"fullName"`
	UserName   string `json:"userName"`
	ProfilePic string `json:"profilePic"`
	About      string `json:"about"`
}

// record converts a userDTO plus access token into a UserRecord.
func (u userDTO) record(token string) *UserRecord {
	return &UserRecord{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		UserName:    u.UserName,
		ProfilePic:  u.ProfilePic,
		About:       u.About,
		AccessToken: token,
	}
}
