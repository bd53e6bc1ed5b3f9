package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/chatly/authkit/accounts"
	"github.com/chatly/authkit/auth/oidc"
	"github.com/chatly/authkit/errors"
	"github.com/chatly/authkit/logger"
	"github.com/chatly/authkit/observability"
)

const (
	stateCookieName = "chatly.oauth_state"
	stateCookieTTL  = 600 // seconds
)

// GoogleRedirect handles GET /auth/google. It plants the anti-forgery
// state cookie and sends the browser to Google's consent screen.
func (h *Handler) GoogleRedirect(c *gin.Context) {
	state, err := oidc.GenerateState()
	if err != nil {
		h.failGoogle(c, errors.Unknown("").WithCause(err))
		return
	}

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/auth",
		MaxAge:   stateCookieTTL,
		Secure:   h.cfg.SecureCookies,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	c.Redirect(http.StatusFound, h.google.AuthURL(state))
}

// GoogleCallback handles GET /auth/google/callback. On any failure the
// browser lands back on the sign-in page and no session cookie is
// written; only a fully linked account gets a session.
func (h *Handler) GoogleCallback(c *gin.Context) {
	h.clearStateCookie(c)

	if errParam := c.Query("error"); errParam != "" {
		h.log.Warn("google sign-in denied", logger.Fields(logger.FieldProvider, h.google.Name(), "reason", errParam))
		h.failGoogleRedirect(c, "access_denied")
		return
	}

	state, err := c.Cookie(stateCookieName)
	if err != nil || state == "" || state != c.Query("state") {
		h.log.Warn("google state mismatch", logger.Fields(logger.FieldProvider, h.google.Name()))
		h.failGoogleRedirect(c, "state_mismatch")
		return
	}

	code := c.Query("code")
	if code == "" {
		h.failGoogleRedirect(c, "missing_code")
		return
	}

	tokenRes, err := h.google.Exchange(c.Request.Context(), code)
	if err != nil {
		h.failGoogle(c, err)
		return
	}
	info, err := h.google.UserInfo(c.Request.Context(), tokenRes.AccessToken)
	if err != nil {
		h.failGoogle(c, err)
		return
	}

	rec, err := h.accounts.LinkOAuthAccount(c.Request.Context(), accounts.ProviderProfile{
		Email:      info.Email,
		Name:       info.Name,
		Image:      info.Picture,
		ProviderID: info.Subject,
	})
	if err != nil {
		h.failGoogle(c, err)
		return
	}

	blob, tok, err := h.sessions.Create(rec)
	if err != nil {
		h.failGoogle(c, err)
		return
	}

	h.jar.Write(c.Writer, blob, tok.ExpiresAt.Time)
	h.recordSignIn(c, observability.MethodGoogle, observability.OutcomeSuccess)
	h.log.Info("user signed in", logger.Fields(
		logger.FieldUserID, tok.UserID,
		logger.FieldProvider, observability.MethodGoogle,
	))
	c.Redirect(http.StatusFound, h.cfg.HomePath)
}

// failGoogle logs the cause and bounces the browser to the sign-in page
// with an error code. The cause never reaches the query string.
func (h *Handler) failGoogle(c *gin.Context, err error) {
	h.recordSignIn(c, observability.MethodGoogle, loginOutcome(err))
	h.log.Error("google sign-in failed", logger.ErrorFields("google_callback", err))

	code := "signin_failed"
	switch {
	case errors.IsCode(err, errors.ErrCodeProviderLinkFailed):
		code = "link_failed"
	case errors.IsCode(err, errors.ErrCodeServerUnreachable):
		code = "server_unreachable"
	}
	h.failGoogleRedirect(c, code)
}

func (h *Handler) failGoogleRedirect(c *gin.Context, code string) {
	target := h.cfg.SignInPath + "?error=" + url.QueryEscape(code)
	c.Redirect(http.StatusFound, target)
}

func (h *Handler) clearStateCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     "/auth",
		MaxAge:   -1,
		Secure:   h.cfg.SecureCookies,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
