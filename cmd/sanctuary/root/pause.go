package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/babsant/clean-sanctuary/internal/ui"
)

func newPauseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pause",
		Short: "Pause the active quest to pick up later",
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
			if err := svc.Pause(ctx); err != nil {
				return err
			}
			fmt.Fprintf(out, "%s Paused %s. Come back with `sanctuary resume`.\n", ui.IconPause, ui.H2.Render(active.Task.Title))
			return nil
		},
	}

	return cmd
}
