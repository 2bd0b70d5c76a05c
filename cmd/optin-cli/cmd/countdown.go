package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pyowdigitals/optin/internal/countdown"
)

var (
	countdownFrom     string
	countdownTicks    int
	countdownInterval time.Duration
)

var countdownCmd = &cobra.Command{
	Use:   "countdown",
	Short: "Print the countdown as it ticks",
	Long: `Run the same countdown the page shows and print each value.

Examples:
  optin-cli countdown                         # from the page's starting value
  optin-cli countdown --from 90s --ticks 5    # five ticks from 00:00:01:30
  optin-cli countdown --from 5s --interval 0  # run to zero without waiting`,
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := countdown.Parse(countdownFrom)
		if err != nil {
			return err
		}
		return runCountdown(cmd, start)
	},
}

func runCountdown(cmd *cobra.Command, start countdown.Value) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, start.String())

	if countdownInterval <= 0 {
		v := start
		for i := 0; countdownTicks <= 0 || i < countdownTicks; i++ {
			next, ok := countdown.Tick(v)
			if !ok {
				break
			}
			v = next
			fmt.Fprintln(out, v.String())
		}
		return nil
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	tk := countdown.NewTicker(start, countdownInterval)
	if err := tk.Start(ctx); err != nil {
		return err
	}
	defer tk.Stop()

	printed := 0
	for v := range tk.Updates() {
		fmt.Fprintln(out, v.String())
		printed++
		if countdownTicks > 0 && printed >= countdownTicks {
			break
		}
	}
	return nil
}

func init() {
	countdownCmd.Flags().StringVar(&countdownFrom, "from", countdown.Initial.String(), "starting value: 3d22h14m24s, 90s or DD:HH:MM:SS")
	countdownCmd.Flags().IntVar(&countdownTicks, "ticks", 0, "stop after this many ticks (0 runs to zero)")
	countdownCmd.Flags().DurationVar(&countdownInterval, "interval", time.Second, "time between ticks; 0 prints without waiting")
	rootCmd.AddCommand(countdownCmd)
}
