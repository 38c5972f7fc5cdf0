package registry

import (
	"github.com/irrigo/dashboard/internal/apiclient"
	"github.com/irrigo/dashboard/internal/i18n"
	"github.com/irrigo/dashboard/internal/pubsub"
	"github.com/irrigo/dashboard/internal/rendering"
)

// Keys of the core services every module may use.
const (
	APIClientKey  Key[*apiclient.Client]  = "core.apiclient"
	PublisherKey  Key[pubsub.Publisher]   = "core.publisher"
	SubscriberKey Key[pubsub.Subscriber]  = "core.subscriber"
	BundleKey     Key[*i18n.Bundle]       = "core.i18n"
	RendererKey   Key[rendering.Renderer] = "core.renderer"
)
