package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/babsant/clean-sanctuary/internal/ui"
)

func newDoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done",
		Short: "Finish the active quest and collect points",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			if restoreActive(ctx, svc) == nil {
				fmt.Fprintln(out, ui.Muted.Render("No quest in progress. Run `sanctuary start`."))
				return nil
			}
			res, err := svc.Complete(ctx)
			if err != nil {
				return err
			}
			if res == nil {
				fmt.Fprintln(out, ui.Muted.Render("No quest in progress."))
				return nil
			}
			printCompleteResult(out, res)
			return nil
		},
	}

	return cmd
}
