package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/do/v2"
	"github.com/spf13/afero"
	"go.opentelemetry.io/otel/trace"

	"github.com/pyowdigitals/optin/internal/config"
	"github.com/pyowdigitals/optin/internal/content"
	"github.com/pyowdigitals/optin/internal/optin"
	"github.com/pyowdigitals/optin/internal/pubsub"
	"github.com/pyowdigitals/optin/internal/rendering"
)

// Tracing owns the tracer used by the event bus.
type Tracing struct {
	Tracer  trace.Tracer
	cleanup func()
}

// Shutdown flushes pending spans. The injector calls it on shutdown.
func (t *Tracing) Shutdown() {
	t.cleanup()
}

// Bus is the in-process event bus.
type Bus struct {
	*pubsub.WatermillBridge
}

// Shutdown closes the bus. The injector calls it on shutdown.
func (b *Bus) Shutdown() error {
	return b.Close()
}

// NewInjector wires the core services. Everything is built lazily on first
// use; call ShutdownWithContext on the result to release them.
func NewInjector(cfg config.Provider) *do.RootScope {
	i := do.New()

	do.ProvideValue(i, cfg)
	do.Provide(i, newTracing)
	do.Provide(i, newBus)
	do.Provide(i, newContentStore)
	do.Provide(i, newFormStore)
	do.Provide(i, func(do.Injector) (rendering.Renderer, error) {
		return rendering.NewUniversalRenderer(), nil
	})
	return i
}

func newTracing(i do.Injector) (*Tracing, error) {
	cfg := do.MustInvoke[config.Provider](i)
	tracer, cleanup, err := pubsub.SetupOTel(context.Background(), pubsub.TracingConfig{
		Enabled:     cfg.GetTracingEnabled(),
		ServiceName: cfg.GetTracingServiceName(),
		ZipkinURL:   cfg.GetTracingZipkinURL(),
	})
	if err != nil {
		return nil, fmt.Errorf("set up tracing: %w", err)
	}
	if cfg.GetTracingEnabled() {
		slog.Info("Event bus tracing enabled", "zipkin", cfg.GetTracingZipkinURL())
	}
	return &Tracing{Tracer: tracer, cleanup: cleanup}, nil
}

func newBus(i do.Injector) (*Bus, error) {
	tracing, err := do.Invoke[*Tracing](i)
	if err != nil {
		return nil, err
	}
	return &Bus{pubsub.NewWatermillBridgeWithTracer(tracing.Tracer)}, nil
}

func newContentStore(i do.Injector) (*content.Store, error) {
	cfg := do.MustInvoke[config.Provider](i)
	store, err := content.NewStore(afero.NewOsFs(), cfg.GetContentFile())
	if err != nil {
		return nil, fmt.Errorf("load page content: %w", err)
	}
	return store, nil
}

func newFormStore(i do.Injector) (*optin.Store, error) {
	cfg := do.MustInvoke[config.Provider](i)
	bus, err := do.Invoke[*Bus](i)
	if err != nil {
		return nil, err
	}
	return optin.NewStore(cfg.GetFormStateCapacity(), optin.Settings{
		Delay:        cfg.GetSubmitDelay(),
		OnSubscribed: optin.AnnounceTo(bus),
	})
}
