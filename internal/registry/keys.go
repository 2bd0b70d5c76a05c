package registry

import (
	"github.com/pyowdigitals/optin/internal/content"
	"github.com/pyowdigitals/optin/internal/optin"
	"github.com/pyowdigitals/optin/internal/pubsub"
	"github.com/pyowdigitals/optin/internal/rendering"
)

// Core services every module may look up during Boot.
var (
	ContentStoreKey = Key[*content.Store]("core.content.Store")
	FormStoreKey    = Key[*optin.Store]("core.optin.Store")
	PublisherKey    = Key[pubsub.Publisher]("core.pubsub.Publisher")
	SubscriberKey   = Key[pubsub.Subscriber]("core.pubsub.Subscriber")
	RendererKey     = Key[rendering.Renderer]("core.rendering.Renderer")
)
