package root

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/babsant/clean-sanctuary/internal/engine"
	"github.com/babsant/clean-sanctuary/internal/ui"
)

func newBonfireCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bonfire",
		Short: "Show the community bonfire",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			p := svc.LoadProfile(ctx)
			if !p.HasCommunityAccess {
				missing := engine.CommunityUnlockPoints - p.TotalPoints
				if missing < 0 {
					missing = 0
				}
				fmt.Fprintf(out, "%s The bonfire unlocks at %d points — %d to go.\n", ui.IconBonfire, engine.CommunityUnlockPoints, missing)
				return nil
			}
			if os.Getenv("SANCTUARY_BONFIRE_URL") == "" {
				fmt.Fprintln(out, ui.Muted.Render("No bonfire endpoint configured (set SANCTUARY_BONFIRE_URL)."))
				return nil
			}

			state, err := svc.Ledger().State(ctx)
			if err != nil {
				return err
			}
			position := engine.DecayedPosition(state.Position, state.LastUpdated, state.DecayRate, engine.DecayGraceHours, time.Now())

			fmt.Fprintln(out, ui.Heading(ui.IconBonfire, "Community Bonfire"))
			fmt.Fprintln(out, ui.LabelValue("Warmth", fmt.Sprintf("%.1f%%", position)))
			fmt.Fprintln(out, ui.LabelValue("Total contributed", state.TotalContributed))
			fmt.Fprintln(out, ui.LabelValue("Cleaners gathered", len(state.Users)))
			if len(state.RecentContributions) > 0 {
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, ui.H2.Render("Recent sparks"))
				for _, c := range state.RecentContributions {
					fmt.Fprintf(out, "- +%d %s\n", c.Amount, ui.Muted.Render(c.At.Local().Format("Jan 2 15:04")))
				}
			}
			if !p.IsCommunityAccessActive {
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, ui.Warn.Render(fmt.Sprintf("Earn %d points this week to keep contributing.", engine.WeeklyActivityMinimum)))
			}
			return nil
		},
	}

	return cmd
}
