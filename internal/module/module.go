package module

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/pyowdigitals/optin/internal/registry"
)

// Module is a self-contained feature of the page: its routes, background
// work and cleanup.
type Module interface {
	Name() string

	// Register publishes the module's services before any module boots.
	Register(reg *registry.Registry) error

	// Boot mounts routes on the root group and starts background work.
	Boot(ctx context.Context, router *echo.Group, reg *registry.Registry) error

	// Shutdown releases everything Boot started.
	Shutdown(ctx context.Context) error
}

// BaseModule provides no-op lifecycle methods for embedding.
type BaseModule struct{}

func (m *BaseModule) Register(reg *registry.Registry) error { return nil }
func (m *BaseModule) Boot(ctx context.Context, router *echo.Group, reg *registry.Registry) error {
	return nil
}
func (m *BaseModule) Shutdown(ctx context.Context) error { return nil }
