package profile

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/irrigo/dashboard/internal/middleware"
	"github.com/irrigo/dashboard/internal/modules/profile/view"
	resolver "github.com/irrigo/dashboard/internal/profile"
	"github.com/irrigo/dashboard/internal/rendering"
	"github.com/irrigo/dashboard/web/src/templates/components"
)

// Handler serves the profile page.
type Handler struct {
	panels map[resolver.Tab]Panel
}

// NewHandler creates a Handler dispatching to panels.
func NewHandler(panels map[resolver.Tab]Panel) *Handler {
	return &Handler{panels: panels}
}

// Get renders GET /profile/:id. The tab comes from the query string and is
// resolved against the viewer on every request; anything the viewer may not
// open is a 404.
func (h *Handler) Get(c echo.Context) error {
	// 1. Read the address and the viewer.
	_, hasTab := c.QueryParams()[resolver.QueryParam]
	loc := resolver.Location{
		Prefix:    middleware.LocalePrefix(c),
		SubjectID: c.Param("id"),
		RawTab:    c.QueryParam(resolver.QueryParam),
		HasTab:    hasTab,
	}
	viewer := middleware.CurrentIdentity(c)

	// 2. Resolve the tab.
	res := resolver.Resolve(loc.Input(viewer.UserID))
	p := rendering.NewPage(c, middleware.Localizer(c).T("profile.title"))
	if res.Fallback() {
		middleware.FromContext(c.Request().Context()).Debug("profile tab rejected",
			"subject", loc.SubjectID, "tab", loc.RawTab, "owner", res.IsOwner)
		return rendering.NotFound(c, p)
	}

	// 3. Render the active panel. Its failures stay inside the panel.
	panel, ok := h.panels[res.Active]
	if !ok {
		return fmt.Errorf("no panel registered for tab %q", res.Active)
	}
	body, err := panel.Render(c.Request().Context(), PanelContext{
		SubjectID: loc.SubjectID,
		Token:     viewer.Token,
		Page:      p,
	})
	if err != nil {
		middleware.FromContext(c.Request().Context()).Warn("profile panel failed",
			"subject", loc.SubjectID, "tab", res.Active, "error", err)
		body = components.InlineError(p.T("profile.panel_error"))
	}

	// 4. htmx tab switches only need the tab strip and panel.
	return rendering.Page(c, http.StatusOK, p, view.Tabs(p, loc, res, body))
}
