package components

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/irrigo/dashboard/internal/view"
)

// Option is one choice of a select input.
type Option struct {
	Value string
	Label string
}

// Field wraps an input with its label and validation message.
func Field(name, label string, errs view.FieldErrors, input cmp.Node) cmp.Node {
	return g.Div(
		g.Class("mb-4"),
		g.Label(g.For(name), g.Class("mb-1 block font-semibold"), cmp.Text(label)),
		input,
		cmp.If(errs.Has(name), g.P(g.ID(name+"-error"), g.Class("mt-1 text-sm text-red-600"), cmp.Text(errs.Get(name)))),
	)
}

// TextInput is a single-line input. kind is the HTML input type.
func TextInput(name, kind, value string, errs view.FieldErrors, attrs ...cmp.Node) cmp.Node {
	return g.Input(
		g.ID(name),
		g.Name(name),
		g.Type(kind),
		g.Value(value),
		g.Class("w-full rounded border p-2"),
		cmp.If(errs.Has(name), g.Aria("invalid", "true")),
		cmp.If(errs.Has(name), g.Aria("describedby", name+"-error")),
		cmp.Group(attrs),
	)
}

// TextArea is a multi-line input.
func TextArea(name, value string, errs view.FieldErrors) cmp.Node {
	return g.Textarea(
		g.ID(name),
		g.Name(name),
		cmp.Attr("rows", "6"),
		g.Class("w-full rounded border p-2"),
		cmp.If(errs.Has(name), g.Aria("invalid", "true")),
		cmp.Text(value),
	)
}

// Select renders a select input with selected pre-chosen. A non-empty
// blank label adds a leading option with an empty value.
func Select(name, selected, blank string, options []Option, attrs ...cmp.Node) cmp.Node {
	return g.Select(
		g.ID(name),
		g.Name(name),
		g.Class("rounded border p-2"),
		cmp.Group(attrs),
		cmp.If(blank != "", g.Option(g.Value(""), cmp.Text(blank))),
		cmp.Map(options, func(o Option) cmp.Node {
			return g.Option(g.Value(o.Value), cmp.If(o.Value == selected, g.Selected()), cmp.Text(o.Label))
		}),
	)
}

// SubmitButton is the primary action of a form.
func SubmitButton(label string) cmp.Node {
	return g.Button(g.Type("submit"), g.Class("rounded bg-indigo-600 px-4 py-2 font-semibold text-white"), cmp.Text(label))
}
