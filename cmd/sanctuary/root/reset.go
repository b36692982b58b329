package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/babsant/clean-sanctuary/internal/ui"
)

func newResetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase profile, progress, and history (keeps your anonymous id)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return errors.New("this erases all local progress; re-run with --force to confirm")
			}

			ctx := context.Background()
			store, cleanup, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := store.ResetAll(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render("Fresh start. Run `sanctuary setup` to begin again."))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "confirm the wipe")

	return cmd
}
