package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newExportCommand(ctx context.Context, st *state) *cobra.Command {
	var outputFlag string

	cmd := &cobra.Command{
		Use:   "export --output <path>",
		Short: "Export completed entries in timeclock format.",
		Long: `export converts every completed entry into an "i"/"o" clock pair readable
by ledger-style timeclock tools. The output file must not exist yet; use
--output - to write to standard output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := st.ready(); err != nil {
				return err
			}

			if outputFlag == "-" {
				_, err := st.tracker.Export(ctx, cmd.OutOrStdout())
				return err
			}

			count, err := st.tracker.ExportFile(ctx, outputFlag)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d %s to %s\n", count, plural(count, "entry", "entries"), outputFlag)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Destination file (must not exist), or - for stdout")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
