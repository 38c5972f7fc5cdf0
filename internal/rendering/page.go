package rendering

import (
	"net/http"

	"github.com/labstack/echo/v4"
	cmp "maragu.dev/gomponents"

	"github.com/irrigo/dashboard/internal/middleware"
	"github.com/irrigo/dashboard/internal/view"
	"github.com/irrigo/dashboard/web/src/templates/components"
	"github.com/irrigo/dashboard/web/src/templates/layouts"
)

// NewPage collects the per-request page chrome: language, locale prefix,
// viewer and pending flash messages. Reading the flashes consumes them.
func NewPage(c echo.Context, title string) view.Page {
	id := middleware.CurrentIdentity(c)
	path := c.Request().URL.Path
	if q := c.Request().URL.RawQuery; q != "" {
		path += "?" + q
	}
	return view.Page{
		Title:  title,
		Loc:    middleware.Localizer(c),
		Prefix: middleware.LocalePrefix(c),
		Path:   path,
		Viewer: view.Viewer{ID: id.UserID, Name: id.Name},
		Flash:  view.GetFlashData(c),
	}
}

// IsHTMX reports whether the request was issued by htmx and expects a
// fragment. Boosted navigations still get the whole document.
func IsHTMX(c echo.Context) bool {
	h := c.Request().Header
	return h.Get("HX-Request") == "true" && h.Get("HX-Boosted") != "true"
}

// Page renders content inside the base layout, or just the fragment for
// htmx requests.
func Page(c echo.Context, status int, p view.Page, fragment cmp.Node) error {
	r := pageRenderer(c)
	if IsHTMX(c) {
		c.Response().Header().Set("Vary", "HX-Request")
		return r.RenderPage(c, status, fragment)
	}
	return r.RenderPage(c, status, layouts.Base(p, fragment))
}

// NotFound renders the not-found fallback with a 404 status.
func NotFound(c echo.Context, p view.Page) error {
	if p.Title == "" {
		p.Title = p.T("notfound.title")
	}
	return Page(c, http.StatusNotFound, p, components.NotFound(p))
}

func pageRenderer(c echo.Context) Renderer {
	if r, ok := c.Echo().Renderer.(Renderer); ok {
		return r
	}
	return NewUniversalRenderer()
}
