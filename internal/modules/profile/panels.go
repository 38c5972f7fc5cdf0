package profile

import (
	"context"

	cmp "maragu.dev/gomponents"

	"github.com/irrigo/dashboard/internal/domain"
	"github.com/irrigo/dashboard/internal/modules/profile/view"
	resolver "github.com/irrigo/dashboard/internal/profile"
	gview "github.com/irrigo/dashboard/internal/view"
)

// API is the part of the remote API the profile panels read.
type API interface {
	User(ctx context.Context, token, id string) (*domain.User, error)
	Activity(ctx context.Context, token, id string) ([]domain.Activity, error)
	Notifications(ctx context.Context, token, id string) ([]domain.Notification, error)
	TopScripts(ctx context.Context, token, id string) ([]domain.Script, error)
}

// PanelContext is everything a panel may use. Panels never see the tab
// resolution; the dispatcher has already decided they may render.
type PanelContext struct {
	SubjectID string
	// Token is the viewer's API token, empty for anonymous viewers.
	Token string
	Page  gview.Page
}

// Panel renders the content of one tab.
type Panel interface {
	Render(ctx context.Context, pc PanelContext) (cmp.Node, error)
}

// PanelFunc adapts a function to the Panel interface.
type PanelFunc func(ctx context.Context, pc PanelContext) (cmp.Node, error)

// Render calls f.
func (f PanelFunc) Render(ctx context.Context, pc PanelContext) (cmp.Node, error) {
	return f(ctx, pc)
}

// DefaultPanels returns one panel per tab, all backed by api.
func DefaultPanels(api API) map[resolver.Tab]Panel {
	return map[resolver.Tab]Panel{
		resolver.TabProfile: PanelFunc(func(ctx context.Context, pc PanelContext) (cmp.Node, error) {
			u, err := api.User(ctx, pc.Token, pc.SubjectID)
			if err != nil {
				return nil, err
			}
			return view.Profile(pc.Page, *u), nil
		}),
		resolver.TabActivity: PanelFunc(func(ctx context.Context, pc PanelContext) (cmp.Node, error) {
			items, err := api.Activity(ctx, pc.Token, pc.SubjectID)
			if err != nil {
				return nil, err
			}
			return view.Activity(pc.Page, items), nil
		}),
		resolver.TabNotifications: PanelFunc(func(ctx context.Context, pc PanelContext) (cmp.Node, error) {
			items, err := api.Notifications(ctx, pc.Token, pc.SubjectID)
			if err != nil {
				return nil, err
			}
			return view.Notifications(pc.Page, items), nil
		}),
		resolver.TabTopScripts: PanelFunc(func(ctx context.Context, pc PanelContext) (cmp.Node, error) {
			items, err := api.TopScripts(ctx, pc.Token, pc.SubjectID)
			if err != nil {
				return nil, err
			}
			return view.TopScripts(pc.Page, items), nil
		}),
	}
}
