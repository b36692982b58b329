package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/babsant/clean-sanctuary/internal/ui"
)

func newDismissCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dismiss",
		Short: "Discard the paused quest without finishing it",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			paused := svc.Paused(ctx)
			if paused == nil {
				fmt.Fprintln(out, ui.Muted.Render("Nothing is paused."))
				return nil
			}
			if err := svc.DismissPaused(ctx); err != nil {
				return err
			}
			fmt.Fprintf(out, "Dismissed %s. No points, no guilt.\n", ui.H2.Render(paused.TaskTitle))
			return nil
		},
	}

	return cmd
}
