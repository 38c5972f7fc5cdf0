package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/irrigo/dashboard/internal/domain"
	"github.com/irrigo/dashboard/internal/middleware"
	"github.com/irrigo/dashboard/internal/rendering"
	"github.com/irrigo/dashboard/internal/view"
	"github.com/irrigo/dashboard/web/src/templates/pages"
)

const flashKeyEmail = "form_email"

// Authenticator exchanges credentials for a session with the remote API.
type Authenticator interface {
	Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error)
}

// AuthHandler serves sign-in and sign-out.
type AuthHandler struct {
	auth Authenticator
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth Authenticator) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// LoginGet renders the login form.
func (h *AuthHandler) LoginGet(c echo.Context) error {
	// 1. Restore the email of a failed attempt, if any.
	email := view.TakeFlashValue(c, flashKeyEmail)

	// 2. Collect the page chrome, including pending flash messages.
	p := rendering.NewPage(c, middleware.Localizer(c).T("login.title"))

	// 3. Render.
	return rendering.Page(c, http.StatusOK, p, pages.Login(p, email, nil))
}

// LoginPost signs the user in against the remote API.
func (h *AuthHandler) LoginPost(c echo.Context) error {
	loc := middleware.Localizer(c)

	// 1. Bind and validate the form.
	var creds domain.Credentials
	errs, err := BindForm(c, &creds)
	if err != nil {
		return err
	}
	if errs.Any() {
		p := rendering.NewPage(c, loc.T("login.title"))
		return rendering.Page(c, http.StatusUnprocessableEntity, p, pages.Login(p, creds.Email, errs))
	}

	// 2. Ask the API for a session.
	sess, err := h.auth.Login(c.Request().Context(), creds)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		slog.Warn("Failed login attempt", "email", creds.Email)
		// The submitted email comes back with the error on the next render.
		view.SetFlashErrorWithValue(c, loc.T("login.invalid"), flashKeyEmail, creds.Email)
		return c.Redirect(http.StatusSeeOther, middleware.LocalPath(c, "/login"))
	}
	if err != nil {
		return err
	}

	// 3. Store the identity in the session cookie.
	if err := middleware.SaveIdentity(c, *sess); err != nil {
		return err
	}

	view.SetFlashSuccess(c, loc.T("login.success", sess.Name))
	return c.Redirect(http.StatusSeeOther, middleware.LocalPath(c, "/"))
}

// Logout clears the identity session.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := middleware.ClearIdentity(c); err != nil {
		return err
	}
	view.SetFlashSuccess(c, middleware.Localizer(c).T("logout.success"))
	return c.Redirect(http.StatusSeeOther, middleware.LocalPath(c, "/login"))
}
