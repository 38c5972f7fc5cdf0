package middleware

import (
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/irrigo/dashboard/internal/domain"
	"github.com/irrigo/dashboard/internal/view"
)

const (
	// UserContextKey holds the request's Identity in the echo context.
	UserContextKey = "user"
	// SessionName is the cookie session carrying the signed-in identity.
	SessionName = "irrigo-session"

	sessKeyUserID = "user_id"
	sessKeyName   = "name"
	sessKeyToken  = "token"
)

// Identity is the viewer of the current request. The zero value is an
// anonymous visitor.
type Identity struct {
	UserID string
	Name   string
	Token  string
}

// Present reports whether the viewer is signed in.
func (i Identity) Present() bool {
	return i.UserID != ""
}

// LoadIdentity reads the identity session once per request and stores the
// result under UserContextKey. It never rejects a request.
func LoadIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		var id Identity
		if sess, err := session.Get(SessionName, c); err == nil {
			id.UserID, _ = sess.Values[sessKeyUserID].(string)
			id.Name, _ = sess.Values[sessKeyName].(string)
			id.Token, _ = sess.Values[sessKeyToken].(string)
		}
		c.Set(UserContextKey, id)
		return next(c)
	}
}

// CurrentIdentity returns the identity loaded by LoadIdentity.
func CurrentIdentity(c echo.Context) Identity {
	id, _ := c.Get(UserContextKey).(Identity)
	return id
}

// SaveIdentity stores a signed-in session in the cookie.
func SaveIdentity(c echo.Context, s domain.Session) error {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		return err
	}
	sess.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	sess.Values[sessKeyUserID] = s.UserID
	sess.Values[sessKeyName] = s.Name
	sess.Values[sessKeyToken] = s.Token
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return err
	}
	c.Set(UserContextKey, Identity{UserID: s.UserID, Name: s.Name, Token: s.Token})
	return nil
}

// ClearIdentity expires the identity session.
func ClearIdentity(c echo.Context) error {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		return err
	}
	sess.Options = &sessions.Options{Path: "/", MaxAge: -1}
	sess.Values = map[interface{}]interface{}{}
	c.Set(UserContextKey, Identity{})
	return sess.Save(c.Request(), c.Response())
}

// RequireIdentity protects routes that need a signed-in viewer. Anonymous
// requests are sent to the login page with a flash message; htmx requests
// get an HX-Redirect instead of a 303.
func RequireIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if CurrentIdentity(c).Present() {
			return next(c)
		}

		// 1. Tell the user why they ended up on the login page.
		view.SetFlashError(c, Localizer(c).T("auth.required"))

		// 2. Redirect, keeping the locale prefix.
		target := LocalPath(c, "/login")
		if c.Request().Header.Get("HX-Request") == "true" {
			c.Response().Header().Set("HX-Redirect", target)
			return c.NoContent(http.StatusUnauthorized)
		}
		return c.Redirect(http.StatusSeeOther, target)
	}
}
