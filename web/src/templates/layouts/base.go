package layouts

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/irrigo/dashboard/internal/view"
	"github.com/irrigo/dashboard/web/src/templates/components"
)

// HTMXSource is the htmx build the pages load.
const HTMXSource = "https://unpkg.com/htmx.org@2.0.4"

// Base wraps page content in the document shell: head, navigation,
// flash messages and footer.
func Base(p view.Page, content ...cmp.Node) cmp.Node {
	return g.Doctype(
		g.HTML(
			g.Lang(p.Loc.Lang()),
			g.Head(
				g.Meta(g.Charset("utf-8")),
				g.Meta(g.Name("viewport"), g.Content("width=device-width, initial-scale=1")),
				g.TitleEl(cmp.Text(CalculateTitle(p.Title))),
				g.Link(g.Rel("stylesheet"), g.Href("/static/app.css")),
				g.Script(g.Src(HTMXSource), g.Defer()),
			),
			g.Body(
				g.Class("min-h-screen bg-gray-50 text-gray-900"),
				components.Nav(p),
				g.Main(
					g.ID("main"),
					g.Class("container mx-auto p-6"),
					components.Flash(p.Flash),
					cmp.Group(content),
				),
				g.Footer(
					g.Class("container mx-auto p-6 text-sm text-gray-500"),
					components.LanguageSwitcher(p),
				),
			),
		),
	)
}
