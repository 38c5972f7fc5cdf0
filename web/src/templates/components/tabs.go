package components

import (
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"
)

// TabItem is one entry of a tab strip.
type TabItem struct {
	ID     string
	Label  string
	Href   string
	Active bool
}

// Tabs renders a tab strip whose links load into target through htmx and
// push their URL, so the address bar always names the active tab. Without
// JavaScript they are plain links.
func Tabs(target string, items []TabItem) cmp.Node {
	return g.Nav(
		g.Role("tablist"),
		g.Class("mb-4 flex gap-2 border-b"),
		cmp.Map(items, func(it TabItem) cmp.Node {
			return g.A(
				g.Role("tab"),
				g.ID("tab-"+it.ID),
				g.Href(it.Href),
				hx.Get(it.Href),
				hx.Target(target),
				hx.Swap("outerHTML"),
				hx.PushURL("true"),
				g.Aria("selected", boolAttr(it.Active)),
				cmp.If(it.Active, g.Class("border-b-2 border-indigo-600 px-4 py-2 font-bold")),
				cmp.If(!it.Active, g.Class("px-4 py-2 text-gray-600")),
				cmp.Text(it.Label),
			)
		}),
	)
}

func boolAttr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
