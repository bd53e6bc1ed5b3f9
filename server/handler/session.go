package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chatly/authkit/errors"
	"github.com/chatly/authkit/observability"
	"github.com/chatly/authkit/server"
	"github.com/chatly/authkit/session"
)

// GetSession handles GET /auth/session, returning the current session
// view or 401 when there is none.
func (h *Handler) GetSession(c *gin.Context) {
	tok, err := h.sessions.Resolve(h.jar.Read(c.Request))
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, tok.View())
}

// UpdateSession handles PATCH /auth/session. The body is a partial set
// of profile fields; unknown fields are ignored and protected fields
// cannot be addressed at all. The replacement blob goes out in the same
// cookie with the original expiry.
func (h *Handler) UpdateSession(c *gin.Context) {
	blob := h.jar.Read(c.Request)
	if blob == "" {
		h.recordSessionUpdate(c, observability.OutcomeError)
		server.RespondWithError(c, errors.Unauthorized())
		return
	}

	var patch session.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.recordSessionUpdate(c, observability.OutcomeError)
		server.RespondWithError(c, errors.Validation("request body must be a JSON object of profile fields"))
		return
	}

	next, tok, err := h.sessions.Update(blob, patch)
	if err != nil {
		h.recordSessionUpdate(c, observability.OutcomeError)
		server.RespondWithError(c, err)
		return
	}

	h.jar.Write(c.Writer, next, tok.ExpiresAt.Time)
	h.recordSessionUpdate(c, observability.OutcomeSuccess)
	server.RespondOK(c, tok.View())
}

// Logout handles POST /auth/logout. Clearing the cookie is the whole
// operation; there is no server-side state to destroy. The client is
// sent back to the sign-in page.
func (h *Handler) Logout(c *gin.Context) {
	h.jar.Clear(c.Writer)
	c.Redirect(http.StatusFound, h.cfg.SignInPath)
}

func (h *Handler) recordSessionUpdate(c *gin.Context, outcome string) {
	if h.metrics != nil {
		h.metrics.RecordSessionUpdate(c.Request.Context(), outcome)
	}
}
