package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"

	"github.com/irrigo/dashboard/internal/domain"
	"github.com/irrigo/dashboard/internal/middleware"
	"github.com/irrigo/dashboard/internal/rendering"
	"github.com/irrigo/dashboard/internal/view"
	"github.com/irrigo/dashboard/web/src/templates/pages"
)

// HTTPErrorHandler is the application's echo.HTTPErrorHandler.
//
//   - echo.HTTPError keeps its status; 404s render the not-found page.
//   - domain.ErrNotFound renders the not-found page.
//   - domain.ErrUnauthorized sends the viewer to the login page.
//   - Anything else is logged with a stack trace and rendered as a 500.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, message := classify(err, c)

	switch status {
	case http.StatusNotFound:
		respond(c, status, func() error { return rendering.NotFound(c, rendering.NewPage(c, "")) })
		return
	case http.StatusUnauthorized:
		view.SetFlashError(c, middleware.Localizer(c).T("auth.required"))
		target := middleware.LocalPath(c, "/login")
		if rendering.IsHTMX(c) {
			c.Response().Header().Set("HX-Redirect", target)
			_ = c.NoContent(http.StatusUnauthorized)
			return
		}
		_ = c.Redirect(http.StatusSeeOther, target)
		return
	}

	respond(c, status, func() error {
		p := rendering.NewPage(c, message)
		return rendering.Page(c, status, p, pages.Error(p, status, message))
	})
}

// classify maps err onto a status and a user-facing message, logging the
// errors nobody handled.
func classify(err error, c echo.Context) (int, string) {
	loc := middleware.Localizer(c)

	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		msg := http.StatusText(he.Code)
		if s, ok := he.Message.(string); ok && s != "" {
			msg = s
		}
		if he.Code >= http.StatusInternalServerError {
			slog.Error("HTTP error", "status", he.Code, "error", err)
		}
		return he.Code, msg
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, loc.T("notfound.title")
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, loc.T("auth.required")
	}

	logger := middleware.FromContext(c.Request().Context())
	logger.Error("Internal Server Error (Unhandled)",
		"error", err.Error(),
		"method", c.Request().Method,
		"path", c.Request().URL.Path,
		"stack_trace", string(debug.Stack()),
	)
	return http.StatusInternalServerError, loc.T("error.internal")
}

// respond writes an error response; HEAD requests and render failures
// fall back to a bare status.
func respond(c echo.Context, status int, render func() error) {
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	if err := render(); err != nil {
		slog.Error("failed to render error page", "status", status, "error", err)
		if !c.Response().Committed {
			_ = c.String(status, fmt.Sprintf("%d %s", status, http.StatusText(status)))
		}
	}
}
