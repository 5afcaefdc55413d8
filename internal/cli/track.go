package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/faizmokh/jam/internal/timelog"
)

func newStartCommand(ctx context.Context, st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start <account>",
		Short: "Start tracking time on an account.",
		Long:  "start records a running entry for the account. Each account can only be running once.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := st.ready(); err != nil {
				return err
			}

			entry, err := st.tracker.Start(ctx, joinAccount(args), st.clock())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Started %q at %s\n",
				entry.Account, entry.Start.Format(timelog.TimestampLayout))
			return nil
		},
	}

	return cmd
}

func newStopCommand(ctx context.Context, st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stop [account]",
		Short: "Stop tracking an account and record the entry.",
		Long: `stop completes a running entry and appends it to the entries file.
The account may be omitted when exactly one entry is running.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := st.ready(); err != nil {
				return err
			}

			entry, remaining, err := st.tracker.Stop(ctx, joinAccount(args), st.clock())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Stopped %q after %s\n", entry.Account, formatElapsed(entry.Duration()))
			if len(remaining) > 0 {
				fmt.Fprintf(out, "%d %s still running\n", len(remaining), plural(len(remaining), "entry", "entries"))
			}
			return nil
		},
	}

	return cmd
}
