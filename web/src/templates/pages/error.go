package pages

import (
	"strconv"

	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/irrigo/dashboard/internal/view"
)

// Error is the page for failures other than not-found.
func Error(p view.Page, status int, message string) cmp.Node {
	return g.Section(
		g.Class("mx-auto max-w-lg rounded-xl bg-white p-10 text-center shadow"),
		g.P(g.Class("mb-2 text-6xl font-extrabold text-gray-300"), cmp.Text(strconv.Itoa(status))),
		g.H1(g.Class("mb-4 text-2xl font-bold"), cmp.Text(message)),
		g.A(g.Class("text-indigo-600 underline"), g.Href(p.Link("/")), cmp.Text(p.T("notfound.back"))),
	)
}
