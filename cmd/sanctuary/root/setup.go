package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/babsant/clean-sanctuary/internal/engine"
	"github.com/babsant/clean-sanctuary/internal/ui"
)

func newSetupCmd() *cobra.Command {
	var (
		bedrooms  int
		bathrooms float64
		pets      bool
		feeling   string
		struggle  string
		energy    string
		tone      string
	)

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Describe your home and how you're doing",
		RunE: func(cmd *cobra.Command, args []string) error {
			if energy != "" && !engine.EnergyLevel(energy).IsValid() {
				return fmt.Errorf("unknown energy level %q (veryLow, low, medium, high)", energy)
			}
			if struggle != "" && !engine.Struggle(struggle).IsValid() {
				return fmt.Errorf("unknown struggle %q (starting, finishing, deciding)", struggle)
			}

			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if cmd.Flags().Changed("bedrooms") || cmd.Flags().Changed("bathrooms") || cmd.Flags().Changed("pets") {
				cur := svc.LoadProfile(ctx)
				if !cmd.Flags().Changed("bedrooms") {
					bedrooms = cur.Home.Bedrooms
				}
				if !cmd.Flags().Changed("bathrooms") {
					bathrooms = cur.Home.Bathrooms
				}
				if !cmd.Flags().Changed("pets") {
					pets = cur.Home.HasPets
				}
				if _, err := svc.SetHomeLayout(ctx, bedrooms, bathrooms, pets); err != nil {
					return err
				}
			}

			p, err := svc.UpdatePreferences(ctx, engine.PreferenceUpdate{
				Feeling:  feeling,
				Struggle: struggle,
				Energy:   energy,
				Tone:     tone,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconHome, "Sanctuary ready"))
			fmt.Fprintln(out, ui.LabelValue("Home", fmt.Sprintf("%d bed / %g bath (%s)", p.Home.Bedrooms, p.Home.Bathrooms, engine.ClassifyHomeSize(p.Home))))
			fmt.Fprintln(out, ui.LabelValue("Rooms", len(p.Home.Rooms)))
			if p.Energy != "" {
				fmt.Fprintln(out, ui.LabelValue("Energy", p.Energy))
			}
			if p.Struggle != "" {
				fmt.Fprintln(out, ui.LabelValue("Struggle", p.Struggle))
			}
			fmt.Fprintln(out, ui.Muted.Render("Run `sanctuary next` to get your first quest."))
			return nil
		},
	}

	cmd.Flags().IntVar(&bedrooms, "bedrooms", 1, "number of bedrooms (0 for a studio)")
	cmd.Flags().Float64Var(&bathrooms, "bathrooms", 1, "number of bathrooms (halves allowed, e.g. 1.5)")
	cmd.Flags().BoolVar(&pets, "pets", false, "whether pets live here")
	cmd.Flags().StringVar(&feeling, "feeling", "", "how cleaning feels right now")
	cmd.Flags().StringVar(&struggle, "struggle", "", "what's hardest: starting, finishing, or deciding")
	cmd.Flags().StringVar(&energy, "energy", "", "today's energy: veryLow, low, medium, or high")
	cmd.Flags().StringVar(&tone, "tone", "", "preferred encouragement tone")

	return cmd
}
