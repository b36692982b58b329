package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/babsant/clean-sanctuary/internal/engine"
	"github.com/babsant/clean-sanctuary/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show points, streaks, and bonfire access",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			p := svc.LoadProfile(ctx)
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Sanctuary Status"))
			fmt.Fprintln(out, ui.LabelValue("Total points", p.TotalPoints))
			fmt.Fprintln(out, ui.LabelValue("This week", p.WeeklyPoints))
			fmt.Fprintln(out, ui.LabelValue("Streak", ui.Streak(p.CurrentStreak)))
			fmt.Fprintln(out, ui.LabelValue("Longest streak", fmt.Sprintf("%d days", p.LongestStreak)))
			fmt.Fprintln(out, ui.LabelValue("Quests done", p.TasksCompleted))
			fmt.Fprintln(out, ui.LabelValue("Time cleaned", engine.FormatDuration(p.TotalMinutesCleaned)))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render(ui.IconHome+" Home"))
			fmt.Fprintf(out, "- %d bed / %g bath, %d rooms (%s)\n", p.Home.Bedrooms, p.Home.Bathrooms, len(p.Home.Rooms), engine.ClassifyHomeSize(p.Home))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render(ui.IconBonfire+" Bonfire"))
			switch {
			case !p.HasCommunityAccess:
				missing := engine.CommunityUnlockPoints - p.TotalPoints
				if missing < 0 {
					missing = 0
				}
				fmt.Fprintf(out, "- %s %s\n", ui.Bad.Render("locked"), ui.Muted.Render(fmt.Sprintf("(%d points to go)", missing)))
			case p.IsCommunityAccessActive:
				fmt.Fprintln(out, "- "+ui.Good.Render("active")+" "+ui.Muted.Render("(weekly activity met)"))
			default:
				missing := engine.WeeklyActivityMinimum - p.WeeklyPoints
				if missing < 0 {
					missing = 0
				}
				fmt.Fprintf(out, "- %s %s\n", ui.Warn.Render("dormant"), ui.Muted.Render(fmt.Sprintf("(%d weekly points to rekindle)", missing)))
			}

			if active := restoreActive(ctx, svc); active != nil {
				fmt.Fprintln(out, "")
				fmt.Fprintf(out, "%s In progress: %s (step %d of %d)\n", ui.IconBroom, active.Task.Title, active.StepIndex+1, len(active.Task.Steps))
			}
			if paused := svc.Paused(ctx); paused != nil {
				fmt.Fprintln(out, "")
				fmt.Fprintf(out, "%s Paused: %s (step %d) — `sanctuary resume` to continue\n", ui.IconPause, paused.TaskTitle, paused.StepIndex+1)
			}
			return nil
		},
	}

	return cmd
}
