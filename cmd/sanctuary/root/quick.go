package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/babsant/clean-sanctuary/internal/engine"
	"github.com/babsant/clean-sanctuary/internal/ui"
)

func newQuickCmd() *cobra.Command {
	var (
		easiest bool
		room    string
		minutes int
	)

	cmd := &cobra.Command{
		Use:   "quick",
		Short: "Suggest a small quest for low-energy moments",
		RunE: func(cmd *cobra.Command, args []string) error {
			if room != "" && !engine.RoomType(room).IsValid() {
				return fmt.Errorf("unknown room type %q", room)
			}

			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var task *engine.Task
			switch {
			case room != "" || cmd.Flags().Changed("minutes"):
				task = svc.AdHoc(engine.RoomType(room), minutes)
			case easiest:
				task = svc.Easiest(ctx)
			default:
				task = svc.QuickWin(ctx)
			}

			out := cmd.OutOrStdout()
			if task == nil {
				fmt.Fprintln(out, ui.Muted.Render("Nothing fits — try a bigger time window."))
				return nil
			}
			fmt.Fprintln(out, ui.Heading(ui.IconBolt, "Quick win"))
			printTask(out, task)
			fmt.Fprintf(out, "%s\n", ui.Dim.Render(fmt.Sprintf("Run `sanctuary start %s` to begin.", task.ID)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&easiest, "easiest", false, "pick the gentlest available quest")
	cmd.Flags().StringVar(&room, "room", "", "limit to a room type (kitchen, bathroom, …)")
	cmd.Flags().IntVar(&minutes, "minutes", 15, "time available, in minutes")

	return cmd
}
