package components

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/irrigo/dashboard/internal/view"
)

// Flash renders the one-shot messages of the current request.
func Flash(f view.FlashData) cmp.Node {
	if f.Empty() {
		return nil
	}
	return g.Div(
		g.ID("flash"),
		g.Class("mb-4 space-y-2"),
		cmp.Map(f.Success, func(msg string) cmp.Node {
			return g.Div(g.Role("status"), g.Class("rounded bg-green-100 p-3 text-green-800"), cmp.Text(msg))
		}),
		cmp.Map(f.Error, func(msg string) cmp.Node {
			return g.Div(g.Role("alert"), g.Class("rounded bg-red-100 p-3 text-red-800"), cmp.Text(msg))
		}),
	)
}
