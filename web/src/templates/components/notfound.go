package components

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/irrigo/dashboard/internal/view"
)

// NotFound is the fallback shown for unknown pages and for profile tabs the
// viewer may not open. It always links back to the dashboard root.
func NotFound(p view.Page) cmp.Node {
	return g.Section(
		g.ID("not-found"),
		g.Class("mx-auto max-w-lg rounded-xl bg-white p-10 text-center shadow"),
		g.H1(g.Class("mb-4 text-3xl font-extrabold"), cmp.Text(p.T("notfound.title"))),
		g.P(g.Class("mb-6 text-gray-700"), cmp.Text(p.T("notfound.body"))),
		g.A(g.Class("text-indigo-600 underline"), g.Href(p.Link("/")), cmp.Text(p.T("notfound.back"))),
	)
}

// InlineError reports a failure inside one part of a page.
func InlineError(msg string) cmp.Node {
	return g.Div(g.Role("alert"), g.Class("rounded bg-red-50 p-4 text-red-700"), cmp.Text(msg))
}

// Empty is the placeholder for a list without items.
func Empty(msg string) cmp.Node {
	return g.P(g.Class("p-4 text-gray-500"), cmp.Text(msg))
}
