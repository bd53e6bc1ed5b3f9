package gate

import "strings"

// Default policy targets. Restricted paths are the entry pages an
// already signed-in user has no business visiting.
var defaultRestrictedPaths = []string{"/login", "/signup"}

const (
	defaultSignInPath = "/login"
	defaultHomePath   = "/"
)

// Config describes the access policy.
type Config struct {
	// RestrictedPaths are pages only unauthenticated visitors may see.
	RestrictedPaths []string `yaml:"restricted_paths" mapstructure:"restricted_paths"`

	// SignInPath is where unauthenticated visitors get redirected.
	SignInPath string `yaml:"sign_in_path" mapstructure:"sign_in_path"`

	// HomePath is where authenticated visitors on restricted pages go.
	HomePath string `yaml:"home_path" mapstructure:"home_path"`

	// ExcludePrefixes are path prefixes the gate never inspects, such as
	// the auth endpoints themselves and static assets.
	ExcludePrefixes []string `yaml:"exclude_prefixes" mapstructure:"exclude_prefixes"`
}

// ApplyDefaults fills zero-valued fields with the app defaults.
func (c *Config) ApplyDefaults() {
	if c.RestrictedPaths == nil {
		c.RestrictedPaths = defaultRestrictedPaths
	}
	if c.SignInPath == "" {
		c.SignInPath = defaultSignInPath
	}
	if c.HomePath == "" {
		c.HomePath = defaultHomePath
	}
	// The auth API and operational endpoints are never page routes.
	if c.ExcludePrefixes == nil {
		c.ExcludePrefixes = []string{"/auth/", "/health", "/version"}
	}
}

// Decision is the outcome of the policy for one request.
type Decision struct {
	Allow      bool
	RedirectTo string
}

// allow is the pass-through decision.
var allow = Decision{Allow: true}

// IsRestricted reports whether the path is one of the restricted pages.
func (c *Config) IsRestricted(path string) bool {
	for _, p := range c.RestrictedPaths {
		if path == p {
			return true
		}
	}
	return false
}

// IsExcluded reports whether the gate should skip the path entirely.
func (c *Config) IsExcluded(path string) bool {
	for _, prefix := range c.ExcludePrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Decide applies the policy table to one request. It is pure: same
// inputs, same decision, no I/O.
func (c *Config) Decide(authenticated bool, path string) Decision {
	restricted := c.IsRestricted(path)
	switch {
	case !authenticated && !restricted:
		return Decision{RedirectTo: c.SignInPath}
	case authenticated && restricted:
		return Decision{RedirectTo: c.HomePath}
	default:
		return allow
	}
}
