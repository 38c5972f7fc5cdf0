package components

import (
	"strconv"

	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"

	"github.com/irrigo/dashboard/internal/view"
)

// FavoriteButton toggles a favorite. With htmx the response replaces only
// the button; without it the form posts and the server redirects back.
func FavoriteButton(p view.Page, id, action string, favorite bool, count int) cmp.Node {
	label := p.T("favorite.add")
	if favorite {
		label = p.T("favorite.remove")
	}
	return g.Form(
		g.ID("favorite-"+id),
		g.Method("post"),
		g.Action(action),
		hx.Post(action),
		hx.Swap("outerHTML"),
		g.Class("inline-flex items-center gap-2"),
		g.Input(g.Type("hidden"), g.Name("favorite"), g.Value(strconv.FormatBool(!favorite))),
		g.Button(
			g.Type("submit"),
			g.Aria("pressed", boolAttr(favorite)),
			cmp.If(favorite, g.Class("text-yellow-500")),
			cmp.If(!favorite, g.Class("text-gray-400")),
			cmp.Text(label),
		),
		FavoritesCount(p, count),
	)
}

// FavoritesCount shows how many users favorited an item.
func FavoritesCount(p view.Page, count int) cmp.Node {
	return g.Span(g.Class("favorites-count text-sm text-gray-600"), cmp.Text(p.T("favorite.count", p.Loc.Number(float64(count), 0))))
}
