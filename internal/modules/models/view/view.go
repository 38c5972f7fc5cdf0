package view

import (
	"net/url"
	"strconv"

	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"

	"github.com/irrigo/dashboard/internal/domain"
	gview "github.com/irrigo/dashboard/internal/view"
	"github.com/irrigo/dashboard/web/src/templates/components"
)

// ResultsID is the element live search and pagination replace.
const ResultsID = "models-results"

// ListData is what the models list renders.
type ListData struct {
	Query   domain.ListQuery
	Filters url.Values
	Result  domain.Page[domain.Model]
}

// List is the models index page.
func List(p gview.Page, data ListData) cmp.Node {
	q := data.Query
	return g.Div(
		g.Div(
			g.Class("mb-6 flex items-center justify-between"),
			g.H1(g.Class("text-3xl font-extrabold"), cmp.Text(p.T("models.title"))),
			cmp.If(p.SignedIn(), g.A(g.Href(p.Link("/models/new")), g.Class("rounded bg-indigo-600 px-4 py-2 text-white"), cmp.Text(p.T("models.new")))),
		),
		g.Form(
			g.ID("models-filters"),
			g.Method("get"),
			g.Action(p.Link("/models")),
			hx.Get(p.Link("/models")),
			hx.Trigger("input changed delay:300ms from:#q, change"),
			hx.Target("#"+ResultsID),
			hx.Swap("outerHTML"),
			hx.PushURL("true"),
			g.Class("mb-4 flex flex-wrap items-end gap-3"),
			components.TextInput("q", "search", q.Search, nil, g.Placeholder(p.T("list.search"))),
			components.Select("kind", q.Kind, p.T("models.all_kinds"), kindOptions(p)),
			components.Select("status", q.Status, p.T("models.all_statuses"), statusOptions(p)),
			components.Select("sort", q.Sort, "", []components.Option{
				{Value: domain.SortName, Label: p.T("sort.name")},
				{Value: domain.SortPopular, Label: p.T("sort.popular")},
			}),
			cmp.If(p.SignedIn(), g.Label(
				g.Class("flex items-center gap-1"),
				g.Input(g.Type("checkbox"), g.Name("favorites"), g.Value("true"), cmp.If(q.Favorites, g.Checked())),
				cmp.Text(p.T("list.favorites_only")),
			)),
			g.NoScript(components.SubmitButton(p.T("list.apply"))),
		),
		Results(p, data),
	)
}

// Results is the swappable list of models with its pagination.
func Results(p gview.Page, data ListData) cmp.Node {
	var body cmp.Node
	if len(data.Result.Items) == 0 {
		body = components.Empty(p.T("models.empty"))
	} else {
		body = g.Table(
			g.Class("w-full rounded-lg bg-white shadow"),
			g.THead(g.Tr(
				g.Th(g.Class("p-3 text-left"), cmp.Text(p.T("model.name"))),
				g.Th(g.Class("p-3 text-left"), cmp.Text(p.T("model.kind"))),
				g.Th(g.Class("p-3 text-left"), cmp.Text(p.T("model.version"))),
				g.Th(g.Class("p-3 text-right"), cmp.Text(p.T("model.accuracy"))),
				g.Th(g.Class("p-3 text-left"), cmp.Text(p.T("model.status"))),
				g.Th(g.Class("p-3 text-left"), cmp.Text(p.T("list.favorites"))),
			)),
			g.TBody(cmp.Map(data.Result.Items, func(m domain.Model) cmp.Node {
				return g.Tr(
					g.Class("border-t"),
					g.Td(g.Class("p-3"), g.A(g.Href(p.Link("/models/"+m.ID)), g.Class("text-indigo-600"), cmp.Text(m.Name))),
					g.Td(g.Class("p-3"), cmp.Text(components.Label(p, "model.kind", string(m.Kind)))),
					g.Td(g.Class("p-3"), cmp.Text(m.Version)),
					g.Td(g.Class("p-3 text-right"), cmp.Text(Accuracy(p, m.Accuracy))),
					g.Td(g.Class("p-3"), cmp.Text(components.Label(p, "model.status", string(m.Status)))),
					g.Td(g.Class("p-3"), cmp.If(p.SignedIn(), FavoriteButton(p, m.ID, m.Favorite, m.FavoritesCount)),
						cmp.If(!p.SignedIn(), components.FavoritesCount(p, m.FavoritesCount))),
				)
			})),
		)
	}
	pages := domain.Pages(data.Result.Total, data.Query.PerPage)
	return g.Div(
		g.ID(ResultsID),
		body,
		components.Pagination(p, "/models", data.Filters, data.Query.Page, pages, "#"+ResultsID),
	)
}

// Accuracy formats a 0..1 ratio with the viewer's locale ("87.5%", "87,5 %").
func Accuracy(p gview.Page, ratio float64) string {
	return p.Loc.Percent(ratio, 1)
}

// FavoriteButton toggles the viewer's favorite on a model.
func FavoriteButton(p gview.Page, id string, fav bool, count int) cmp.Node {
	return components.FavoriteButton(p, id, p.Link("/models/"+id+"/favorite"), fav, count)
}

// Info is the model information page. It shows how many users favorited
// the model but offers no toggle.
func Info(p gview.Page, m domain.Model) cmp.Node {
	owner := p.Viewer.ID != "" && p.Viewer.ID == m.OwnerID
	return g.Article(
		g.ID("model-"+m.ID),
		g.Class("space-y-6 rounded-lg bg-white p-6 shadow"),
		g.Div(
			g.Class("flex items-center justify-between"),
			g.H1(g.Class("text-3xl font-extrabold"), cmp.Text(m.Name)),
			components.FavoritesCount(p, m.FavoritesCount),
		),
		g.Dl(
			g.Class("grid grid-cols-2 gap-x-6 gap-y-2"),
			g.Dt(g.Class("font-semibold"), cmp.Text(p.T("model.kind"))),
			g.Dd(cmp.Text(components.Label(p, "model.kind", string(m.Kind)))),
			g.Dt(g.Class("font-semibold"), cmp.Text(p.T("model.version"))),
			g.Dd(cmp.Text(m.Version)),
			g.Dt(g.Class("font-semibold"), cmp.Text(p.T("model.accuracy"))),
			g.Dd(g.ID("model-accuracy"), cmp.Text(Accuracy(p, m.Accuracy))),
			g.Dt(g.Class("font-semibold"), cmp.Text(p.T("model.status"))),
			g.Dd(cmp.Text(components.Label(p, "model.status", string(m.Status)))),
			g.Dt(g.Class("font-semibold"), cmp.Text(p.T("list.owner"))),
			g.Dd(g.A(g.Href(p.Link("/profile/"+url.PathEscape(m.OwnerID))), g.Class("text-indigo-600"), cmp.Text(m.OwnerName))),
			g.Dt(g.Class("font-semibold"), cmp.Text(p.T("list.updated"))),
			g.Dd(components.RelTime(p, m.UpdatedAt)),
		),
		cmp.If(m.Description != "", g.Div(g.Class("prose"), gview.MarkdownNode(m.Description))),
		cmp.If(owner, g.Div(
			g.Class("flex gap-3"),
			g.A(g.Href(p.Link("/models/"+m.ID+"/edit")), g.Class("rounded border px-4 py-2"), cmp.Text(p.T("action.edit"))),
			g.Form(
				g.Method("post"),
				g.Action(p.Link("/models/"+m.ID+"/delete")),
				hx.Confirm(p.T("action.delete_confirm")),
				g.Button(g.Type("submit"), g.Class("rounded bg-red-600 px-4 py-2 text-white"), cmp.Text(p.T("action.delete"))),
			),
		)),
	)
}

// Form is the create and edit form for a model.
func Form(p gview.Page, title, action string, in domain.ModelInput, errs gview.FieldErrors) cmp.Node {
	return g.Div(
		g.Class("mx-auto max-w-2xl rounded-xl bg-white p-8 shadow"),
		g.H1(g.Class("mb-6 text-3xl font-extrabold"), cmp.Text(title)),
		cmp.If(errs.Has("form"), components.InlineError(errs.Get("form"))),
		g.Form(
			g.ID("model-form"),
			g.Method("post"),
			g.Action(action),
			components.Field("name", p.T("model.name"), errs, components.TextInput("name", "text", in.Name, errs, g.Required())),
			components.Field("description", p.T("model.description"), errs, components.TextArea("description", in.Description, errs)),
			components.Field("kind", p.T("model.kind"), errs, components.Select("kind", string(in.Kind), "", kindOptions(p))),
			components.Field("version", p.T("model.version"), errs, components.TextInput("version", "text", in.Version, errs, g.Required())),
			components.Field("accuracy", p.T("model.accuracy"), errs, components.TextInput("accuracy", "number",
				strconv.FormatFloat(in.Accuracy, 'f', -1, 64), errs, g.Min("0"), g.Max("1"), cmp.Attr("step", "0.001"))),
			components.Field("status", p.T("model.status"), errs, components.Select("status", string(in.Status), "", statusOptions(p))),
			components.SubmitButton(p.T("action.save")),
		),
	)
}

func kindOptions(p gview.Page) []components.Option {
	opts := make([]components.Option, 0, len(domain.ModelKinds))
	for _, k := range domain.ModelKinds {
		opts = append(opts, components.Option{Value: string(k), Label: components.Label(p, "model.kind", string(k))})
	}
	return opts
}

func statusOptions(p gview.Page) []components.Option {
	opts := make([]components.Option, 0, len(domain.ModelStatuses))
	for _, s := range domain.ModelStatuses {
		opts = append(opts, components.Option{Value: string(s), Label: components.Label(p, "model.status", string(s))})
	}
	return opts
}
