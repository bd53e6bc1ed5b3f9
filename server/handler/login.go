package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/chatly/authkit/accounts"
	"github.com/chatly/authkit/errors"
	"github.com/chatly/authkit/logger"
	"github.com/chatly/authkit/observability"
	"github.com/chatly/authkit/server"
	"github.com/chatly/authkit/validation"
)

// Login handles POST /auth/login. On success the response carries the
// session view and the session cookie is set; on failure no cookie is
// touched and the error taxonomy drives the status code.
func (h *Handler) Login(c *gin.Context) {
	var creds accounts.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		h.recordSignIn(c, observability.MethodCredentials, observability.OutcomeError)
		server.RespondWithError(c, errors.Validation("request body must be JSON with email and password"))
		return
	}
	if err := validation.Validate(creds); err != nil {
		h.recordSignIn(c, observability.MethodCredentials, observability.OutcomeError)
		server.RespondWithError(c, err)
		return
	}

	rec, err := h.accounts.Authenticate(c.Request.Context(), creds)
	if err != nil {
		h.recordSignIn(c, observability.MethodCredentials, loginOutcome(err))
		server.RespondWithError(c, err)
		return
	}

	blob, tok, err := h.sessions.Create(rec)
	if err != nil {
		h.recordSignIn(c, observability.MethodCredentials, observability.OutcomeError)
		server.RespondWithError(c, err)
		return
	}

	h.jar.Write(c.Writer, blob, tok.ExpiresAt.Time)
	h.recordSignIn(c, observability.MethodCredentials, observability.OutcomeSuccess)
	h.log.Info("user signed in", logger.Fields(
		logger.FieldUserID, tok.UserID,
		logger.FieldProvider, observability.MethodCredentials,
	))
	server.RespondOK(c, tok.View())
}

// loginOutcome maps the error taxonomy onto the metric outcome label.
func loginOutcome(err error) string {
	switch {
	case errors.IsCode(err, errors.ErrCodeInvalidCredentials):
		return observability.OutcomeRejected
	case errors.IsCode(err, errors.ErrCodeServerUnreachable):
		return observability.OutcomeUnreachable
	default:
		return observability.OutcomeError
	}
}
