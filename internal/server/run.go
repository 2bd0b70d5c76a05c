package server

import (
	"context"
	"fmt"

	"github.com/pyowdigitals/optin/internal/app"
	"github.com/pyowdigitals/optin/internal/config"
)

// Run builds the full application from cfg and serves it until a shutdown
// signal arrives or ctx ends.
func Run(ctx context.Context, cfg config.Provider) error {
	injector := app.NewInjector(cfg)

	s, err := New(Dependencies{Injector: injector})
	if err != nil {
		injector.ShutdownWithContext(ctx)
		return fmt.Errorf("create server: %w", err)
	}
	if err := s.InitModules(ctx, app.NewModules(injector)); err != nil {
		s.Shutdown(ctx)
		return err
	}
	if err := s.RegisterRoutes(); err != nil {
		s.Shutdown(ctx)
		return err
	}
	return s.Start(ctx)
}
