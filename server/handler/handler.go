// Package handler implements the auth HTTP endpoints: credential and
// Google sign-in, sign-up, session read and patch, and sign-out.
package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/chatly/authkit/accounts"
	"github.com/chatly/authkit/auth/oidc"
	"github.com/chatly/authkit/logger"
	"github.com/chatly/authkit/observability"
	"github.com/chatly/authkit/session"
)

// Config holds the handler-level settings.
type Config struct {
	// HomePath is where a successful Google sign-in lands.
	HomePath string `yaml:"home_path" mapstructure:"home_path"`

	// SignInPath is where a failed Google sign-in lands.
	SignInPath string `yaml:"sign_in_path" mapstructure:"sign_in_path"`

	// SecureCookies marks the OAuth state cookie Secure.
	SecureCookies bool `yaml:"secure_cookies" mapstructure:"secure_cookies"`
}

// ApplyDefaults fills zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.HomePath == "" {
		c.HomePath = "/"
	}
	if c.SignInPath == "" {
		c.SignInPath = "/login"
	}
}

// Handler owns the auth routes.
type Handler struct {
	cfg      Config
	accounts *accounts.Client
	sessions *session.Manager
	jar      *session.CookieJar
	google   oidc.Provider
	metrics  *observability.AuthMetrics
	log      *logger.Logger
}

// New creates the handler. google and metrics may be nil; the Google
// routes answer 404 when no provider is configured.
func New(cfg Config, accountsClient *accounts.Client, sessions *session.Manager, jar *session.CookieJar, google oidc.Provider, metrics *observability.AuthMetrics, log *logger.Logger) *Handler {
	cfg.ApplyDefaults()
	return &Handler{
		cfg:      cfg,
		accounts: accountsClient,
		sessions: sessions,
		jar:      jar,
		google:   google,
		metrics:  metrics,
		log:      log.WithComponent("handler"),
	}
}

// RegisterRoutes mounts the auth endpoints on the engine.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	auth.POST("/login", h.Login)
	auth.POST("/signup", h.Signup)
	auth.POST("/logout", h.Logout)
	auth.GET("/session", h.GetSession)
	auth.PATCH("/session", h.UpdateSession)
	if h.google != nil {
		auth.GET("/google", h.GoogleRedirect)
		auth.GET("/google/callback", h.GoogleCallback)
	}
}

func (h *Handler) recordSignIn(c *gin.Context, method, outcome string) {
	if h.metrics != nil {
		h.metrics.RecordSignIn(c.Request.Context(), method, outcome)
	}
}
