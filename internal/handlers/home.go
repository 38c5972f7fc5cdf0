package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/irrigo/dashboard/internal/domain"
	"github.com/irrigo/dashboard/internal/middleware"
	"github.com/irrigo/dashboard/internal/rendering"
	"github.com/irrigo/dashboard/web/src/templates/pages"
)

// homeFavorites is how many favorite scripts the dashboard lists.
const homeFavorites = 5

// ScriptLister lists scripts from the remote API.
type ScriptLister interface {
	ListScripts(ctx context.Context, token string, q domain.ListQuery) (domain.Page[domain.Script], error)
}

// HomeHandler handles requests for the home page.
type HomeHandler struct {
	scripts ScriptLister
}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler(scripts ScriptLister) *HomeHandler {
	return &HomeHandler{scripts: scripts}
}

// HomeGet renders the dashboard. Signed-in viewers also see a few of their
// favorite scripts; failing to load them does not fail the page.
func (h *HomeHandler) HomeGet(c echo.Context) error {
	id := middleware.CurrentIdentity(c)
	p := rendering.NewPage(c, middleware.Localizer(c).T("home.title"))

	var data pages.HomeData
	if id.Present() {
		page, err := h.scripts.ListScripts(c.Request().Context(), id.Token, domain.ListQuery{
			Favorites: true,
			Sort:      domain.SortPopular,
			PerPage:   homeFavorites,
		})
		if err != nil {
			middleware.FromContext(c.Request().Context()).Warn("could not load favorite scripts", "error", err)
			data.FavoritesErr = true
		} else {
			data.Favorites = page.Items
		}
	}

	return rendering.Page(c, http.StatusOK, p, pages.Home(p, data))
}
