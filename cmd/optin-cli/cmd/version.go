package cmd

import (
	"github.com/spf13/cobra"
)

var version = "0.1.0" // set at build time with -ldflags "-X .../cmd.version=..."

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of optin-cli",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("optin-cli v%s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
