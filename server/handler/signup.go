package handler

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/chatly/authkit/accounts"
	"github.com/chatly/authkit/errors"
	"github.com/chatly/authkit/logger"
	"github.com/chatly/authkit/observability"
	"github.com/chatly/authkit/server"
	"github.com/chatly/authkit/validation"
)

// Signup handles POST /auth/signup as a multipart form with fullName,
// userName, email, password, and an optional profilePic file. The account
// service does not hand out a token on registration, so a successful
// sign-up is followed by an immediate sign-in with the same credentials.
func (h *Handler) Signup(c *gin.Context) {
	reg, err := bindRegistration(c)
	if err != nil {
		h.recordSignUp(c, observability.OutcomeError)
		server.RespondWithError(c, err)
		return
	}
	if err := validation.Validate(reg); err != nil {
		h.recordSignUp(c, observability.OutcomeError)
		server.RespondWithError(c, err)
		return
	}

	if err := h.accounts.Register(c.Request.Context(), reg); err != nil {
		h.recordSignUp(c, signupOutcome(err))
		server.RespondWithError(c, err)
		return
	}

	rec, err := h.accounts.Authenticate(c.Request.Context(), accounts.Credentials{
		Email:    reg.Email,
		Password: reg.Password,
	})
	if err != nil {
		// Account exists now but the follow-up sign-in failed. The user
		// can still sign in manually, so report the error as-is.
		h.recordSignUp(c, observability.OutcomeError)
		server.RespondWithError(c, err)
		return
	}

	blob, tok, err := h.sessions.Create(rec)
	if err != nil {
		h.recordSignUp(c, observability.OutcomeError)
		server.RespondWithError(c, err)
		return
	}

	h.jar.Write(c.Writer, blob, tok.ExpiresAt.Time)
	h.recordSignUp(c, observability.OutcomeSuccess)
	h.log.Info("user signed up", logger.Fields(logger.FieldUserID, tok.UserID))
	server.RespondCreated(c, tok.View())
}

func (h *Handler) recordSignUp(c *gin.Context, outcome string) {
	if h.metrics != nil {
		h.metrics.RecordSignUp(c.Request.Context(), outcome)
	}
}

func signupOutcome(err error) string {
	switch {
	case errors.IsCode(err, errors.ErrCodeServerUnreachable):
		return observability.OutcomeUnreachable
	case errors.IsCode(err, errors.ErrCodeInvalidInput):
		return observability.OutcomeRejected
	default:
		return observability.OutcomeError
	}
}

func bindRegistration(c *gin.Context) (accounts.Registration, error) {
	reg := accounts.Registration{
		FullName: c.PostForm("fullName"),
		UserName: c.PostForm("userName"),
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
	}

	file, err := c.FormFile("profilePic")
	if err != nil {
		// The avatar is optional; only a present-but-unreadable file is an error.
		return reg, nil
	}
	f, err := file.Open()
	if err != nil {
		return reg, errors.Validation("profilePic could not be read")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return reg, errors.Validation("profilePic could not be read")
	}
	reg.ProfilePic = data
	reg.ProfilePicName = file.Filename
	reg.ProfilePicMimeType = file.Header.Get("Content-Type")
	return reg, nil
}
