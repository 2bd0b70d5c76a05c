package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/pyowdigitals/optin/internal/config"
	"github.com/pyowdigitals/optin/internal/logging"
	"github.com/pyowdigitals/optin/internal/server"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		// slog is not configured until the config is read.
		log.Fatalf("Invalid configuration: %v", err)
	}
	logging.New(cfg.GetLogFormat(), cfg.GetLogLevel())

	if err := server.Run(context.Background(), cfg); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}
