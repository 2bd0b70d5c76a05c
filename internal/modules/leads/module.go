package leads

import (
	"context"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pyowdigitals/optin/internal/module"
	"github.com/pyowdigitals/optin/internal/pubsub"
	"github.com/pyowdigitals/optin/internal/registry"
	"github.com/pyowdigitals/optin/internal/rendering"
	"github.com/pyowdigitals/optin/web/src/templates/partials"
)

// LeadsModule handles the opt-in form, the free-resource action and the
// events they announce.
type LeadsModule struct {
	module.BaseModule
	publisher  pubsub.Publisher
	subscriber pubsub.Subscriber
	renderer   rendering.Renderer
	now        func() time.Time
	cancel     context.CancelFunc
}

// Dependencies holds the services the module is constructed with. The form
// and content stores are looked up in the registry at boot.
type Dependencies struct {
	Publisher  pubsub.Publisher
	Subscriber pubsub.Subscriber
	Renderer   rendering.Renderer
	Now        func() time.Time
}

// New creates the leads module.
func New(deps Dependencies) *LeadsModule {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &LeadsModule{
		publisher:  deps.Publisher,
		subscriber: deps.Subscriber,
		renderer:   deps.Renderer,
		now:        now,
	}
}

// Name returns the module name.
func (m *LeadsModule) Name() string {
	return "leads"
}

// Boot starts the event logger and mounts the form routes.
func (m *LeadsModule) Boot(ctx context.Context, g *echo.Group, reg *registry.Registry) error {
	subCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	if err := NewLeadLogger(m.subscriber).Start(subCtx); err != nil {
		cancel()
		return err
	}

	handler := NewHandler(HandlerDependencies{
		Forms:     registry.MustGet(reg, registry.FormStoreKey),
		Content:   registry.MustGet(reg, registry.ContentStoreKey),
		Publisher: m.publisher,
		Renderer:  m.renderer,
		Now:       m.now,
	})

	slog.Info("Booting leads module", "subscribe", partials.SubscribePath, "download", partials.DownloadPath)
	g.POST(partials.SubscribePath, handler.SubscribePost)
	g.POST(partials.DownloadPath, handler.DownloadPost)
	return nil
}

// Shutdown stops the event logger.
func (m *LeadsModule) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down leads module")
	if m.cancel != nil {
		m.cancel()
	}
	return nil
}
