package session

import (
	"net/http"
	"time"
)

// DefaultCookieName is the session cookie written when no name is configured.
const DefaultCookieName = "chatly.session"

// CookieConfig controls how the session blob travels in a cookie.
type CookieConfig struct {
	Name     string `yaml:"name" mapstructure:"name"`
	Domain   string `yaml:"domain" mapstructure:"domain"`
	Path     string `yaml:"path" mapstructure:"path"`
	Secure   bool   `yaml:"secure" mapstructure:"secure"`
	SameSite string `yaml:"same_site" mapstructure:"same_site"` // lax, strict, none
}

// ApplyDefaults fills zero-valued fields with defaults.
func (c *CookieConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = DefaultCookieName
	}
	if c.Path == "" {
		c.Path = "/"
	}
	if c.SameSite == "" {
		c.SameSite = "lax"
	}
}

func (c *CookieConfig) sameSite() http.SameSite {
	switch c.SameSite {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// CookieJar reads and writes the session cookie. The cookie is always
// HttpOnly so page scripts never see the blob.
type CookieJar struct {
	cfg CookieConfig
}

// NewCookieJar creates a cookie jar from config.
func NewCookieJar(cfg CookieConfig) *CookieJar {
	cfg.ApplyDefaults()
	return &CookieJar{cfg: cfg}
}

// Name returns the configured cookie name.
func (j *CookieJar) Name() string { return j.cfg.Name }

// Read returns the session blob from the request, or "" when absent.
func (j *CookieJar) Read(r *http.Request) string {
	c, err := r.Cookie(j.cfg.Name)
	if err != nil {
		return ""
	}
	return c.Value
}

// Write sets the session cookie expiring at the given time.
func (j *CookieJar) Write(w http.ResponseWriter, blob string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     j.cfg.Name,
		Value:    blob,
		Domain:   j.cfg.Domain,
		Path:     j.cfg.Path,
		Expires:  expires,
		Secure:   j.cfg.Secure,
		HttpOnly: true,
		SameSite: j.cfg.sameSite(),
	})
}

// Clear expires the session cookie immediately.
func (j *CookieJar) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     j.cfg.Name,
		Value:    "",
		Domain:   j.cfg.Domain,
		Path:     j.cfg.Path,
		MaxAge:   -1,
		Secure:   j.cfg.Secure,
		HttpOnly: true,
		SameSite: j.cfg.sameSite(),
	})
}
