package components

import (
	"net/url"
	"strconv"

	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"

	"github.com/irrigo/dashboard/internal/view"
)

// Pagination renders previous/next links for a list. query holds the
// current filters; only "page" is rewritten.
func Pagination(p view.Page, path string, query url.Values, page, pages int, target string) cmp.Node {
	if pages <= 1 {
		return nil
	}
	link := func(n int) string {
		q := url.Values{}
		for k, v := range query {
			q[k] = append([]string(nil), v...)
		}
		q.Set("page", strconv.Itoa(n))
		return p.Link(path) + "?" + q.Encode()
	}
	pageLink := func(n int, label string) cmp.Node {
		href := link(n)
		return g.A(
			g.Href(href),
			hx.Get(href),
			hx.Target(target),
			hx.Swap("outerHTML"),
			hx.PushURL("true"),
			g.Class("rounded border px-3 py-1"),
			cmp.Text(label),
		)
	}
	return g.Nav(
		g.Class("mt-4 flex items-center gap-3"),
		g.Aria("label", p.T("pagination.label")),
		cmp.If(page > 1, pageLink(page-1, p.T("pagination.prev"))),
		g.Span(g.Class("text-gray-600"), cmp.Text(p.T("pagination.status", strconv.Itoa(page), strconv.Itoa(pages)))),
		cmp.If(page < pages, pageLink(page+1, p.T("pagination.next"))),
	)
}
