package server

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// waitForShutdown is closed on an interrupt or terminate signal, or when ctx ends.
func waitForShutdown(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(quit)
		select {
		case sig := <-quit:
			slog.Info("Shutdown signal received", "signal", sig.String())
		case <-ctx.Done():
		}
	}()
	return done
}

// Shutdown stops modules in reverse boot order, then the HTTP server, then
// the core services.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error
	for i := len(s.modules) - 1; i >= 0; i-- {
		m := s.modules[i]
		if err := m.Shutdown(ctx); err != nil {
			errs = append(errs, err)
			slog.Error("Module shutdown failed", "module", m.Name(), "error", err)
		}
	}
	s.modules = nil

	if err := s.E.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}

	if report := s.Injector.ShutdownWithContext(ctx); !report.Succeed {
		errs = append(errs, report)
	}

	slog.Info("Server stopped")
	return errors.Join(errs...)
}
