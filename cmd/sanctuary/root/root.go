package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/babsant/clean-sanctuary/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "sanctuary",
	Short:         "Clean Sanctuary — gentle quest-based home cleaning",
	Long:          "Clean Sanctuary is a local-first CLI/TUI that turns home cleaning into small, guided quests with points, streaks, and a community bonfire.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newSetupCmd(),
		newStatusCmd(),
		newNextCmd(),
		newQuickCmd(),
		newStartCmd(),
		newStepCmd(),
		newPauseCmd(),
		newResumeCmd(),
		newDismissCmd(),
		newSkipCmd(),
		newDoneCmd(),
		newHistoryCmd(),
		newBonfireCmd(),
		newFocusCmd(),
		newResetCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
