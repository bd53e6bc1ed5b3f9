package gate

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chatly/authkit/auth"
	"github.com/chatly/authkit/auth/authctx"
	"github.com/chatly/authkit/logger"
	"github.com/chatly/authkit/observability"
)

// TokenSource extracts the session blob from a request. Empty string
// means no session is present.
type TokenSource func(r *http.Request) string

// Gate binds the access policy to HTTP middleware.
type Gate struct {
	cfg       Config
	validator auth.TokenValidator
	source    TokenSource
	log       *logger.Logger
	metrics   *observability.AuthMetrics
}

// New creates a gate from a policy config, a session validator, and a
// token source (normally the session cookie jar's Read).
func New(cfg Config, validator auth.TokenValidator, source TokenSource, log *logger.Logger) *Gate {
	cfg.ApplyDefaults()
	return &Gate{
		cfg:       cfg,
		validator: validator,
		source:    source,
		log:       log.WithComponent("gate"),
	}
}

// WithMetrics attaches the service's metric instruments so redirects are
// counted. Returns the gate for chaining.
func (g *Gate) WithMetrics(m *observability.AuthMetrics) *Gate {
	g.metrics = m
	return g
}

// Middleware returns a gin handler enforcing the policy. Valid session
// claims are stored in the request context for downstream handlers; a
// present-but-invalid session counts as no session.
func (g *Gate) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if g.cfg.IsExcluded(path) {
			c.Next()
			return
		}

		var claims any
		if blob := g.source(c.Request); blob != "" {
			parsed, err := g.validator.ValidateToken(blob)
			if err != nil {
				g.log.Debug("session rejected at gate", logger.Fields(logger.FieldPath, path, logger.FieldError, err.Error()))
			} else {
				claims = parsed
			}
		}

		decision := g.cfg.Decide(claims != nil, path)
		if !decision.Allow {
			if g.metrics != nil {
				g.metrics.RecordGateRedirect(c.Request.Context(), decision.RedirectTo)
			}
			c.Redirect(http.StatusFound, decision.RedirectTo)
			c.Abort()
			return
		}
		if claims != nil {
			c.Request = c.Request.WithContext(authctx.Set(c.Request.Context(), claims))
		}
		c.Next()
	}
}
