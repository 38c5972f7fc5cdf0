package apiclient

import (
	"context"
	"log/slog"

	"github.com/irrigo/dashboard/internal/pubsub"
)

// Change actions.
const (
	ActionCreated   = "created"
	ActionUpdated   = "updated"
	ActionDeleted   = "deleted"
	ActionFavorited = "favorited"
)

// Change describes a mutation made through the dashboard.
type Change struct {
	ID     string `json:"id"`
	Action string `json:"action"`
}

var (
	ScriptsChanged = pubsub.NewEvent[Change]("scripts.changed", "A script was created, updated, deleted or (un)favorited")
	ModelsChanged  = pubsub.NewEvent[Change]("models.changed", "A model was created, updated, deleted or (un)favorited")
)

// SubscribeInvalidation drops cached responses whenever a change event
// arrives. Profile sub-resources embed scripts, so "users" goes too.
func SubscribeInvalidation(ctx context.Context, sub pubsub.Subscriber, c *Client) error {
	invalidate := func(resources ...string) func(context.Context, Change) error {
		return func(ctx context.Context, ch Change) error {
			for _, r := range resources {
				if err := c.Invalidate(ctx, r); err != nil {
					return err
				}
			}
			slog.Debug("api cache invalidated", "resources", resources, "id", ch.ID, "action", ch.Action)
			return nil
		}
	}

	if err := pubsub.Subscribe(ctx, sub, ScriptsChanged, invalidate("scripts", "users")); err != nil {
		return err
	}
	return pubsub.Subscribe(ctx, sub, ModelsChanged, invalidate("models"))
}
