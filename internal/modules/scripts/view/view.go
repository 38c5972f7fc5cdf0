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
const ResultsID = "scripts-results"

// ListData is what the scripts list renders.
type ListData struct {
	Query   domain.ListQuery
	Filters url.Values
	Result  domain.Page[domain.Script]
}

// List is the scripts index page: filters on top, results below.
func List(p gview.Page, data ListData) cmp.Node {
	q := data.Query
	return g.Div(
		g.Div(
			g.Class("mb-6 flex items-center justify-between"),
			g.H1(g.Class("text-3xl font-extrabold"), cmp.Text(p.T("scripts.title"))),
			cmp.If(p.SignedIn(), g.A(g.Href(p.Link("/scripts/new")), g.Class("rounded bg-indigo-600 px-4 py-2 text-white"), cmp.Text(p.T("scripts.new")))),
		),
		g.Form(
			g.ID("scripts-filters"),
			g.Method("get"),
			g.Action(p.Link("/scripts")),
			hx.Get(p.Link("/scripts")),
			hx.Trigger("input changed delay:300ms from:#q, change"),
			hx.Target("#"+ResultsID),
			hx.Swap("outerHTML"),
			hx.PushURL("true"),
			g.Class("mb-4 flex flex-wrap items-end gap-3"),
			components.TextInput("q", "search", q.Search, nil, g.Placeholder(p.T("list.search"))),
			components.Select("status", q.Status, p.T("scripts.all_statuses"), statusOptions(p)),
			components.Select("sort", q.Sort, "", sortOptions(p)),
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

// Results is the swappable table of scripts with its pagination.
func Results(p gview.Page, data ListData) cmp.Node {
	var body cmp.Node
	if len(data.Result.Items) == 0 {
		body = components.Empty(p.T("scripts.empty"))
	} else {
		body = g.Table(
			g.Class("w-full rounded-lg bg-white shadow"),
			g.THead(g.Tr(
				g.Th(g.Class("p-3 text-left"), cmp.Text(p.T("script.name"))),
				g.Th(g.Class("p-3 text-left"), cmp.Text(p.T("script.schedule"))),
				g.Th(g.Class("p-3 text-left"), cmp.Text(p.T("script.zone"))),
				g.Th(g.Class("p-3 text-left"), cmp.Text(p.T("script.status"))),
				g.Th(g.Class("p-3 text-left"), cmp.Text(p.T("list.favorites"))),
			)),
			g.TBody(cmp.Map(data.Result.Items, func(s domain.Script) cmp.Node {
				return g.Tr(
					g.Class("border-t"),
					g.Td(g.Class("p-3"), g.A(g.Href(p.Link("/scripts/"+s.ID)), g.Class("text-indigo-600"), cmp.Text(s.Name))),
					g.Td(g.Class("p-3"), g.Code(cmp.Text(s.Schedule))),
					g.Td(g.Class("p-3"), cmp.Text(s.Zone)),
					g.Td(g.Class("p-3"), cmp.Text(components.Label(p, "script.status", string(s.Status)))),
					g.Td(g.Class("p-3"), favorite(p, s)),
				)
			})),
		)
	}
	pages := domain.Pages(data.Result.Total, data.Query.PerPage)
	return g.Div(
		g.ID(ResultsID),
		body,
		components.Pagination(p, "/scripts", data.Filters, data.Query.Page, pages, "#"+ResultsID),
	)
}

func favorite(p gview.Page, s domain.Script) cmp.Node {
	if !p.SignedIn() {
		return components.FavoritesCount(p, s.FavoritesCount)
	}
	return FavoriteButton(p, s.ID, s.Favorite, s.FavoritesCount)
}

// FavoriteButton toggles the viewer's favorite on a script.
func FavoriteButton(p gview.Page, id string, fav bool, count int) cmp.Node {
	return components.FavoriteButton(p, id, p.Link("/scripts/"+id+"/favorite"), fav, count)
}

// Detail shows one script. Owners also get edit and delete actions.
func Detail(p gview.Page, s domain.Script) cmp.Node {
	owner := p.Viewer.ID != "" && p.Viewer.ID == s.OwnerID
	return g.Article(
		g.ID("script-"+s.ID),
		g.Class("space-y-6 rounded-lg bg-white p-6 shadow"),
		g.Div(
			g.Class("flex items-center justify-between"),
			g.H1(g.Class("text-3xl font-extrabold"), cmp.Text(s.Name)),
			favorite(p, s),
		),
		g.Dl(
			g.Class("grid grid-cols-2 gap-x-6 gap-y-2"),
			g.Dt(g.Class("font-semibold"), cmp.Text(p.T("script.status"))),
			g.Dd(cmp.Text(components.Label(p, "script.status", string(s.Status)))),
			g.Dt(g.Class("font-semibold"), cmp.Text(p.T("script.schedule"))),
			g.Dd(g.Code(cmp.Text(s.Schedule))),
			g.Dt(g.Class("font-semibold"), cmp.Text(p.T("script.duration"))),
			g.Dd(cmp.Text(p.T("script.minutes", strconv.Itoa(s.DurationMinutes)))),
			g.Dt(g.Class("font-semibold"), cmp.Text(p.T("script.zone"))),
			g.Dd(cmp.Text(s.Zone)),
			g.Dt(g.Class("font-semibold"), cmp.Text(p.T("list.owner"))),
			g.Dd(g.A(g.Href(p.Link("/profile/"+url.PathEscape(s.OwnerID))), g.Class("text-indigo-600"), cmp.Text(s.OwnerName))),
			g.Dt(g.Class("font-semibold"), cmp.Text(p.T("list.updated"))),
			g.Dd(components.RelTime(p, s.UpdatedAt)),
		),
		cmp.If(s.Description != "", g.Div(g.Class("prose"), gview.MarkdownNode(s.Description))),
		cmp.If(owner, g.Div(
			g.Class("flex gap-3"),
			g.A(g.Href(p.Link("/scripts/"+s.ID+"/edit")), g.Class("rounded border px-4 py-2"), cmp.Text(p.T("action.edit"))),
			g.Form(
				g.Method("post"),
				g.Action(p.Link("/scripts/"+s.ID+"/delete")),
				hx.Confirm(p.T("action.delete_confirm")),
				g.Button(g.Type("submit"), g.Class("rounded bg-red-600 px-4 py-2 text-white"), cmp.Text(p.T("action.delete"))),
			),
		)),
	)
}

// Form is the create and edit form. action is where it posts.
func Form(p gview.Page, title, action string, in domain.ScriptInput, errs gview.FieldErrors) cmp.Node {
	duration := ""
	if in.DurationMinutes > 0 {
		duration = strconv.Itoa(in.DurationMinutes)
	}
	return g.Div(
		g.Class("mx-auto max-w-2xl rounded-xl bg-white p-8 shadow"),
		g.H1(g.Class("mb-6 text-3xl font-extrabold"), cmp.Text(title)),
		cmp.If(errs.Has("form"), components.InlineError(errs.Get("form"))),
		g.Form(
			g.ID("script-form"),
			g.Method("post"),
			g.Action(action),
			components.Field("name", p.T("script.name"), errs, components.TextInput("name", "text", in.Name, errs, g.Required())),
			components.Field("description", p.T("script.description"), errs, components.TextArea("description", in.Description, errs)),
			components.Field("schedule", p.T("script.schedule"), errs, components.TextInput("schedule", "text", in.Schedule, errs, g.Required(), g.Placeholder("0 6 * * *"))),
			components.Field("duration_minutes", p.T("script.duration"), errs, components.TextInput("duration_minutes", "number", duration, errs, g.Min("1"), g.Max("1440"))),
			components.Field("zone", p.T("script.zone"), errs, components.TextInput("zone", "text", in.Zone, errs, g.Required())),
			components.Field("status", p.T("script.status"), errs, components.Select("status", string(in.Status), "", statusOptions(p))),
			components.SubmitButton(p.T("action.save")),
		),
	)
}

func statusOptions(p gview.Page) []components.Option {
	opts := make([]components.Option, 0, len(domain.ScriptStatuses))
	for _, s := range domain.ScriptStatuses {
		opts = append(opts, components.Option{Value: string(s), Label: components.Label(p, "script.status", string(s))})
	}
	return opts
}

func sortOptions(p gview.Page) []components.Option {
	return []components.Option{
		{Value: domain.SortName, Label: p.T("sort.name")},
		{Value: domain.SortPopular, Label: p.T("sort.popular")},
	}
}
