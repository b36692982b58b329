package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/babsant/clean-sanctuary/internal/ui"
)

func newStartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start [task-id]",
		Short: "Start a quest (the recommended one by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			if active := restoreActive(ctx, svc); active != nil {
				fmt.Fprintf(out, "%s is already in progress.\n", ui.H2.Render(active.Task.Title))
				printStep(out, active)
				return nil
			}

			p := svc.LoadProfile(ctx)
			if len(args) == 1 {
				task := svc.Catalog().Get(args[0])
				if task == nil {
					return fmt.Errorf("unknown quest %q", args[0])
				}
				svc.Start(ctx, task, roomIDFor(p, task))
			} else {
				rec := svc.Recommend(ctx)
				if rec.Task == nil {
					fmt.Fprintln(out, ui.Muted.Render("No quests available."))
					return nil
				}
				svc.Start(ctx, rec.Task, roomIDFor(p, rec.Task))
			}

			active := svc.Active()
			fmt.Fprintln(out, ui.Heading(ui.IconBroom, "Quest started"))
			printStep(out, active)
			return nil
		},
	}

	return cmd
}
