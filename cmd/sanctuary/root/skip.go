package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/babsant/clean-sanctuary/internal/ui"
)

func newSkipCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skip",
		Short: "Abandon the active quest",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			active := restoreActive(ctx, svc)
			if active == nil {
				fmt.Fprintln(out, ui.Muted.Render("No quest in progress."))
				return nil
			}
			svc.Skip(ctx)
			fmt.Fprintf(out, "Skipped %s. No points, no guilt.\n", ui.H2.Render(active.Task.Title))
			return nil
		},
	}

	return cmd
}
