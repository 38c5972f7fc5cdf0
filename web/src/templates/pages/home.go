package pages

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/irrigo/dashboard/internal/domain"
	"github.com/irrigo/dashboard/internal/view"
	"github.com/irrigo/dashboard/web/src/templates/components"
)

// HomeData is what the dashboard landing page shows.
type HomeData struct {
	Favorites []domain.Script
	// FavoritesErr is set when the favorites could not be loaded.
	FavoritesErr bool
}

// Home is the dashboard landing page.
func Home(p view.Page, data HomeData) cmp.Node {
	greeting := p.T("home.welcome")
	if p.SignedIn() {
		greeting = p.T("home.welcome_back", p.Viewer.Name)
	}
	return g.Div(
		g.Class("space-y-8"),
		g.H1(g.Class("text-4xl font-extrabold text-indigo-700"), cmp.Text(greeting)),
		g.P(g.Class("text-gray-700"), cmp.Text(p.T("home.intro"))),
		g.Div(
			g.Class("grid gap-4 md:grid-cols-3"),
			card(p.Link("/scripts"), p.T("home.scripts_title"), p.T("home.scripts_body")),
			card(p.Link("/models"), p.T("home.models_title"), p.T("home.models_body")),
			cmp.If(p.SignedIn(), card(p.Link("/profile/"+p.Viewer.ID), p.T("home.profile_title"), p.T("home.profile_body"))),
		),
		cmp.If(p.SignedIn(), favorites(p, data)),
	)
}

func card(href, title, body string) cmp.Node {
	return g.A(
		g.Href(href),
		g.Class("block rounded-lg bg-white p-6 shadow hover:shadow-lg"),
		g.Div(g.Class("mb-2 text-xl font-bold"), cmp.Text(title)),
		g.P(g.Class("text-gray-700"), cmp.Text(body)),
	)
}

func favorites(p view.Page, data HomeData) cmp.Node {
	var body cmp.Node
	switch {
	case data.FavoritesErr:
		body = components.InlineError(p.T("home.favorites_error"))
	case len(data.Favorites) == 0:
		body = components.Empty(p.T("home.favorites_empty"))
	default:
		body = g.Ul(
			g.Class("divide-y rounded-lg bg-white shadow"),
			cmp.Map(data.Favorites, func(s domain.Script) cmp.Node {
				return g.Li(
					g.Class("flex justify-between p-4"),
					g.A(g.Href(p.Link("/scripts/"+s.ID)), g.Class("text-indigo-600"), cmp.Text(s.Name)),
					g.Span(g.Class("text-gray-500"), cmp.Text(components.Label(p, "script.status", string(s.Status)))),
				)
			}),
		)
	}
	return g.Section(
		g.ID("favorite-scripts"),
		g.H2(g.Class("mb-3 text-2xl font-bold"), cmp.Text(p.T("home.favorites"))),
		body,
	)
}
