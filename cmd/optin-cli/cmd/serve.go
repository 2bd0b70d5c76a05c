package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pyowdigitals/optin/internal/config"
	"github.com/pyowdigitals/optin/internal/logging"
	"github.com/pyowdigitals/optin/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long: `Start the opt-in page server. Configuration is read from the environment
and an optional .env file; --addr overrides SERVER_ADDR.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			return err
		}
		if serveAddr != "" {
			cfg.ServerAddr = serveAddr
		}
		logging.New(cfg.GetLogFormat(), cfg.GetLogLevel())
		return server.Run(cmd.Context(), cfg)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address, e.g. :8080")
	rootCmd.AddCommand(serveCmd)
}
