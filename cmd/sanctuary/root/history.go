package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/babsant/clean-sanctuary/internal/engine"
	"github.com/babsant/clean-sanctuary/internal/ui"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent cleaning sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			sessions := svc.History(ctx, limit)
			if len(sessions) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No sessions yet. Run `sanctuary start`."))
				return nil
			}
			fmt.Fprintln(out, ui.Heading(ui.IconScroll, "Cleaning History"))
			for _, s := range sessions {
				fmt.Fprintf(out, "- %s  %s %s\n",
					ui.Muted.Render(s.Date),
					s.TaskTitle,
					ui.Muted.Render("("+engine.FormatDuration(s.ActualMinutes)+")"),
				)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "number of sessions to show (0 for all)")

	return cmd
}
