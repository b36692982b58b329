package root

import (
	"context"
	"fmt"
	"io"

	"github.com/babsant/clean-sanctuary/internal/engine"
	"github.com/babsant/clean-sanctuary/internal/storage"
	"github.com/babsant/clean-sanctuary/internal/ui"
)

// roomIDFor resolves the first room matching the task's target type, or "".
func roomIDFor(p *storage.Profile, task *engine.Task) string {
	if p == nil || task == nil || task.Room == "" {
		return ""
	}
	for i := range p.Home.Rooms {
		if p.Home.Rooms[i].Type == string(task.Room) {
			return p.Home.Rooms[i].ID
		}
	}
	return ""
}

// restoreActive rebuilds the session a previous invocation checkpointed.
func restoreActive(ctx context.Context, svc *engine.Service) *engine.ActiveSession {
	if svc.Active() == nil {
		svc.RestoreCheckpoint(ctx)
	}
	return svc.Active()
}

func printTask(w io.Writer, task *engine.Task) {
	fmt.Fprintf(w, "%s %s %s\n",
		ui.CategoryIcon(string(task.Category)),
		ui.H2.Render(task.Title),
		ui.Muted.Render(fmt.Sprintf("[%s] %s", task.ID, engine.FormatDuration(task.Duration))),
	)
	if task.Subtitle != "" {
		fmt.Fprintln(w, ui.Muted.Render(task.Subtitle))
	}
}

func printStep(w io.Writer, active *engine.ActiveSession) {
	task := active.Task
	step := task.Steps[active.StepIndex]
	fmt.Fprintf(w, "%s %s\n", ui.H2.Render(task.Title), ui.Muted.Render(fmt.Sprintf("step %d of %d", active.StepIndex+1, len(task.Steps))))
	fmt.Fprintln(w, ui.StepActive.Render("▶ "+step.Instruction))
	if step.Explanation != "" {
		fmt.Fprintln(w, ui.Muted.Render("  "+step.Explanation))
	}
	if active.StepIndex == len(task.Steps)-1 {
		fmt.Fprintln(w, ui.Dim.Render("Last step — run `sanctuary done` when finished."))
	} else {
		fmt.Fprintln(w, ui.Dim.Render("Run `sanctuary step` for the next step."))
	}
}

func printCompleteResult(w io.Writer, res *engine.CompleteResult) {
	fmt.Fprintln(w, ui.Good.Render(fmt.Sprintf("%s Quest complete! +%d points (%d min)", ui.IconDone, res.PointsEarned, res.ActualMinutes)))
	fmt.Fprintln(w, ui.LabelValue("Streak", ui.Streak(res.CurrentStreak)))
	if res.CommunityUnlocked {
		fmt.Fprintln(w, ui.BadgeUnlocked+" "+ui.IconBonfire+" You can now gather at the bonfire.")
	} else if res.WeeklyActive {
		fmt.Fprintln(w, ui.Muted.Render("Weekly activity met — your bonfire access is active."))
	}
}
