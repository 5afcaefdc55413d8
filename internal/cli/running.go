package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
)

type runningJSON struct {
	Start          time.Time `json:"start"`
	Account        string    `json:"account"`
	Description    string    `json:"description,omitempty"`
	ElapsedSeconds int64     `json:"elapsed_seconds"`
}

func newRunningCommand(ctx context.Context, st *state) *cobra.Command {
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "running",
		Short: "List the running entries.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := st.ready(); err != nil {
				return err
			}
			return listRunning(ctx, cmd, st, jsonFlag)
		},
	}

	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Print entries as a JSON array")

	return cmd
}

func listRunning(ctx context.Context, cmd *cobra.Command, st *state, asJSON bool) error {
	entries, err := st.tracker.Running(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		now := st.clock()
		items := make([]runningJSON, 0, len(entries))
		for _, entry := range entries {
			items = append(items, runningJSON{
				Start:          entry.Start.UTC(),
				Account:        entry.Account,
				Description:    entry.Description,
				ElapsedSeconds: int64(entry.Elapsed(now) / time.Second),
			})
		}
		data, err := sonic.MarshalIndent(items, "", "  ")
		if err != nil {
			return fmt.Errorf("encode running entries: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	for _, entry := range entries {
		fmt.Fprintln(out, formatRunning(entry))
	}
	return nil
}
