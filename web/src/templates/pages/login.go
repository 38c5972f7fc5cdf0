package pages

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/irrigo/dashboard/internal/view"
	"github.com/irrigo/dashboard/web/src/templates/components"
)

// Login renders the sign-in form. email is echoed back after a failed
// attempt; the password never is.
func Login(p view.Page, email string, errs view.FieldErrors) cmp.Node {
	return g.Div(
		g.Class("mx-auto max-w-md rounded-xl bg-white p-8 shadow"),
		g.H1(g.Class("mb-6 text-3xl font-extrabold"), cmp.Text(p.T("login.title"))),
		g.Form(
			g.Method("post"),
			g.Action(p.Link("/login")),
			components.Field("email", p.T("login.email"), errs,
				components.TextInput("email", "email", email, errs, g.Required(), g.AutoComplete("username"))),
			components.Field("password", p.T("login.password"), errs,
				components.TextInput("password", "password", "", errs, g.Required(), g.AutoComplete("current-password"))),
			components.SubmitButton(p.T("login.submit")),
		),
	)
}
