package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "optin-cli",
	Short: "Run and inspect the opt-in page",
	Long: `optin-cli runs the opt-in landing page and offers tools around it.

Available commands:
  serve       Start the web server
  countdown   Print the countdown as it ticks
  content     Validate page content files
  events      List the events the page publishes
  version     Print the version

Use "optin-cli [command] --help" for more information about a command.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
