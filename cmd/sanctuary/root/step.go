package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/babsant/clean-sanctuary/internal/ui"
)

func newStepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "step",
		Short: "Advance to the next step of the active quest",
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
				fmt.Fprintln(out, ui.Muted.Render("No quest in progress. Run `sanctuary start`."))
				return nil
			}
			if active.StepIndex >= len(active.Task.Steps)-1 {
				printStep(out, active)
				return nil
			}
			svc.AdvanceStep(ctx)
			printStep(out, svc.Active())
			return nil
		},
	}

	return cmd
}
