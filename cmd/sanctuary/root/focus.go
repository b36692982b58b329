package root

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/babsant/clean-sanctuary/internal/tui"
)

func newFocusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "focus",
		Short: "Open the interactive quest session (TUI)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.RunFocus(ctx, svc, os.Stdout)
		},
	}

	return cmd
}
