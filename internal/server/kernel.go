package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pyowdigitals/optin/internal/module"
)

// InitModules registers every module, then boots them in order on the root
// route group. Modules are shut down in reverse order by Shutdown.
func (s *Server) InitModules(ctx context.Context, modules []module.Module) error {
	for _, m := range modules {
		if err := m.Register(s.Registry); err != nil {
			return fmt.Errorf("register module %s: %w", m.Name(), err)
		}
	}

	root := s.E.Group("")
	for _, m := range modules {
		if err := m.Boot(ctx, root, s.Registry); err != nil {
			return fmt.Errorf("boot module %s: %w", m.Name(), err)
		}
		s.modules = append(s.modules, m)
		slog.Debug("Module booted", "module", m.Name())
	}
	return nil
}
