package view

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/irrigo/dashboard/internal/domain"
	"github.com/irrigo/dashboard/internal/profile"
	gview "github.com/irrigo/dashboard/internal/view"
	"github.com/irrigo/dashboard/web/src/templates/components"
)

// TabsID is the element htmx swaps when switching tabs.
const TabsID = "profile-tabs"

// Tabs renders the tab strip for res and the active panel below it.
func Tabs(p gview.Page, loc profile.Location, res profile.Resolution, panel cmp.Node) cmp.Node {
	items := make([]components.TabItem, 0, len(res.Tabs))
	for _, tab := range res.Tabs {
		items = append(items, components.TabItem{
			ID:     string(tab),
			Label:  p.T("profile.tab." + string(tab)),
			Href:   loc.Select(tab),
			Active: tab == res.Active,
		})
	}
	return g.Div(
		g.ID(TabsID),
		components.Tabs("#"+TabsID, items),
		g.Section(
			g.ID("profile-panel"),
			g.Role("tabpanel"),
			g.Aria("labelledby", "tab-"+string(res.Active)),
			cmp.Attr("data-tab", string(res.Active)),
			panel,
		),
	)
}

// Profile shows the public details of a user.
func Profile(p gview.Page, u domain.User) cmp.Node {
	return g.Div(
		g.Class("flex gap-6 rounded-lg bg-white p-6 shadow"),
		cmp.If(u.AvatarURL != "", g.Img(g.Src(u.AvatarURL), g.Alt(u.Name), g.Class("h-24 w-24 rounded-full"))),
		g.Div(
			g.H2(g.Class("text-2xl font-bold"), cmp.Text(u.Name)),
			g.Dl(
				g.Class("mt-2 grid grid-cols-2 gap-x-4 text-sm"),
				detail(p.T("profile.farm"), u.Farm),
				detail(p.T("profile.location"), u.Location),
				g.Dt(g.Class("font-semibold"), cmp.Text(p.T("profile.joined"))),
				g.Dd(components.RelTime(p, u.JoinedAt)),
			),
			cmp.If(u.Bio != "", g.Div(g.Class("prose mt-4"), gview.MarkdownNode(u.Bio))),
		),
	)
}

func detail(label, value string) cmp.Node {
	if value == "" {
		return nil
	}
	return cmp.Group([]cmp.Node{
		g.Dt(g.Class("font-semibold"), cmp.Text(label)),
		g.Dd(cmp.Text(value)),
	})
}

// Activity lists a user's recent actions, newest first as delivered.
func Activity(p gview.Page, items []domain.Activity) cmp.Node {
	if len(items) == 0 {
		return components.Empty(p.T("activity.empty"))
	}
	return g.Ul(
		g.Class("divide-y rounded-lg bg-white shadow"),
		cmp.Map(items, func(a domain.Activity) cmp.Node {
			return g.Li(
				g.Class("flex justify-between p-4"),
				g.Span(
					cmp.Text(components.Label(p, "activity.kind", a.Kind)+" "),
					g.A(g.Href(p.Link("/scripts/"+a.SubjectID)), g.Class("text-indigo-600"), cmp.Text(a.SubjectName)),
				),
				g.Span(g.Class("text-sm text-gray-500"), components.RelTime(p, a.At)),
			)
		}),
	)
}

// Notifications lists the owner's notifications; unread ones stand out.
func Notifications(p gview.Page, items []domain.Notification) cmp.Node {
	if len(items) == 0 {
		return components.Empty(p.T("notifications.empty"))
	}
	return g.Ul(
		g.Class("divide-y rounded-lg bg-white shadow"),
		cmp.Map(items, func(n domain.Notification) cmp.Node {
			class := "flex justify-between p-4"
			if !n.Read {
				class += " font-semibold"
			}
			return g.Li(
				g.Class(class),
				g.Span(
					cmp.If(!n.Read, g.Span(g.Class("mr-2 rounded bg-indigo-100 px-2 text-xs"), cmp.Text(p.T("notifications.unread")))),
					cmp.Text(n.Message),
				),
				g.Span(g.Class("text-sm text-gray-500"), components.RelTime(p, n.At)),
			)
		}),
	)
}

// TopScripts lists a user's most favorited scripts.
func TopScripts(p gview.Page, items []domain.Script) cmp.Node {
	if len(items) == 0 {
		return components.Empty(p.T("topscripts.empty"))
	}
	return g.Ol(
		g.Class("divide-y rounded-lg bg-white shadow"),
		cmp.Map(items, func(s domain.Script) cmp.Node {
			return g.Li(
				g.Class("flex justify-between p-4"),
				g.A(g.Href(p.Link("/scripts/"+s.ID)), g.Class("text-indigo-600"), cmp.Text(s.Name)),
				components.FavoritesCount(p, s.FavoritesCount),
			)
		}),
	)
}
