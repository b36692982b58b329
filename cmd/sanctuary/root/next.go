package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/babsant/clean-sanctuary/internal/ui"
)

func newNextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the recommended quest for right now",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			rec := svc.Recommend(ctx)
			out := cmd.OutOrStdout()
			if rec.Task == nil {
				fmt.Fprintln(out, ui.Muted.Render("No quests available."))
				return nil
			}
			if rec.TodayComplete {
				fmt.Fprintln(out, ui.Good.Render(ui.IconDone+" Today's quests are done. One more for fun?"))
			}
			if rec.IsCatchUp {
				fmt.Fprintln(out, ui.Warn.Render("Catch up from earlier this week:"))
			}
			printTask(out, rec.Task)
			fmt.Fprintln(out, ui.Dim.Render("Run `sanctuary start` to begin."))
			return nil
		},
	}

	return cmd
}
