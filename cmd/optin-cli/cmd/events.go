package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pyowdigitals/optin/internal/pubsub"

	// Registers the opt-in events.
	_ "github.com/pyowdigitals/optin/internal/optin"
)

var eventsFormat string

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List the events the page publishes",
	Long: `List every event published on the in-process bus, with its topic and
payload type.

Output formats:
  table - Human-readable table format (default)
  json  - Machine-readable JSON format`,
	RunE: func(cmd *cobra.Command, args []string) error {
		events := pubsub.Events()
		out := cmd.OutOrStdout()

		switch eventsFormat {
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Events []pubsub.EventInfo `json:"events"`
				Count  int                `json:"count"`
			}{events, len(events)})
		case "table":
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TOPIC\tPAYLOAD\tFIELDS\tDESCRIPTION")
			fmt.Fprintln(w, "-----\t-------\t------\t-----------")
			for _, e := range events {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Topic, e.TypeName, strings.Join(e.PayloadFields, ","), e.Description)
			}
			return w.Flush()
		default:
			return fmt.Errorf("unsupported output format %q, use table or json", eventsFormat)
		}
	},
}

func init() {
	eventsCmd.Flags().StringVarP(&eventsFormat, "format", "f", "table", "output format (table, json)")
	rootCmd.AddCommand(eventsCmd)
}
