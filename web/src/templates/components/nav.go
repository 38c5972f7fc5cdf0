package components

import (
	"strings"

	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/irrigo/dashboard/internal/i18n"
	"github.com/irrigo/dashboard/internal/view"
)

// Nav is the top navigation bar.
func Nav(p view.Page) cmp.Node {
	return g.Nav(
		g.Class("bg-white shadow"),
		g.Div(
			g.Class("container mx-auto flex items-center gap-6 p-4"),
			g.A(g.Class("font-extrabold text-indigo-700"), g.Href(p.Link("/")), cmp.Text("Irrigo")),
			navLink(p, "/scripts", p.T("nav.scripts")),
			navLink(p, "/models", p.T("nav.models")),
			cmp.If(p.SignedIn(), navLink(p, "/profile/"+p.Viewer.ID, p.T("nav.profile"))),
			g.Div(
				g.Class("ml-auto flex items-center gap-4"),
				cmp.If(p.SignedIn(), g.Span(g.Class("text-gray-600"), cmp.Text(p.T("nav.greeting", p.Viewer.Name)))),
				cmp.If(p.SignedIn(), g.Form(
					g.Method("post"),
					g.Action(p.Link("/logout")),
					g.Button(g.Type("submit"), g.Class("text-indigo-600"), cmp.Text(p.T("nav.logout"))),
				)),
				cmp.If(!p.SignedIn(), navLink(p, "/login", p.T("nav.login"))),
			),
		),
	)
}

func navLink(p view.Page, path, label string) cmp.Node {
	active := p.Path == path || strings.HasPrefix(p.Path, path+"/") || strings.HasPrefix(p.Path, path+"?")
	return g.A(
		g.Href(p.Link(path)),
		cmp.If(active, g.Class("font-bold text-indigo-700")),
		cmp.If(!active, g.Class("text-gray-700 hover:text-indigo-700")),
		cmp.Text(label),
	)
}

// LanguageSwitcher links the current page in every supported language.
func LanguageSwitcher(p view.Page) cmp.Node {
	return g.Ul(
		g.Class("flex gap-3"),
		g.Aria("label", p.T("nav.language")),
		cmp.Map(i18n.Languages(), func(lang string) cmp.Node {
			return g.Li(
				g.A(
					g.Href(p.LangLink(lang)),
					g.Lang(lang),
					cmp.If(lang == p.Loc.Lang(), g.Aria("current", "true")),
					cmp.Text(p.T("lang."+lang)),
				),
			)
		}),
	)
}
