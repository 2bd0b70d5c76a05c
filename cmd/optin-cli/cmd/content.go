package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/pyowdigitals/optin/internal/content"
)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Work with page content files",
}

var contentValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a content file",
	Long: `Parse and validate a YAML content file the way the server does at startup
and on hot reload. Without a file the built-in content is checked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		doc, err := content.Load(afero.NewOsFs(), path)
		if err != nil {
			return err
		}

		name := path
		if name == "" {
			name = "built-in content"
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s is valid\n", name)
		fmt.Fprintf(out, "  brand:    %s\n", doc.Brand)
		fmt.Fprintf(out, "  features: %d\n", len(doc.Features))
		fmt.Fprintf(out, "  faqs:     %d\n", len(doc.FAQs))
		for _, l := range doc.NavLinks() {
			fmt.Fprintf(out, "  nav:      %s -> #%s\n", l.Label, l.Anchor)
		}
		return nil
	},
}

func init() {
	contentCmd.AddCommand(contentValidateCmd)
	rootCmd.AddCommand(contentCmd)
}
