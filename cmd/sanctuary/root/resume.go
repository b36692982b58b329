package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/babsant/clean-sanctuary/internal/ui"
)

func newResumeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resume",
		Short: "Resume the paused quest",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			if svc.Paused(ctx) == nil {
				fmt.Fprintln(out, ui.Muted.Render("Nothing is paused."))
				return nil
			}
			if err := svc.Resume(ctx); err != nil {
				return err
			}
			active := svc.Active()
			if active == nil {
				fmt.Fprintln(out, ui.Muted.Render("That quest is no longer available; it was dismissed."))
				return nil
			}
			fmt.Fprintln(out, ui.Heading(ui.IconBroom, "Back at it"))
			printStep(out, active)
			return nil
		},
	}

	return cmd
}
