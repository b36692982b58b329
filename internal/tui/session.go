package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/babsant/clean-sanctuary/internal/engine"
	"github.com/babsant/clean-sanctuary/internal/storage"
	"github.com/babsant/clean-sanctuary/internal/ui"
)

type phase int

const (
	phasePick phase = iota
	phaseRun
	phaseDone
)

type focusModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	profile *storage.Profile
	rec     engine.Recommendation
	paused  *storage.PausedTask

	phase   phase
	result  *engine.CompleteResult
	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	profile  *storage.Profile
	rec      engine.Recommendation
	paused   *storage.PausedTask
	restored bool
}

type completedMsg struct {
	res *engine.CompleteResult
	err error
}

type pausedMsg struct {
	err error
}

func newFocusModel(ctx context.Context, svc *engine.Service) focusModel {
	return focusModel{
		ctx:     ctx,
		svc:     svc,
		loading: true,
		lastLog: "Loading…",
	}
}

func (m focusModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m focusModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		restored := false
		if m.svc.Active() == nil {
			restored = m.svc.RestoreCheckpoint(m.ctx)
		} else {
			restored = true
		}
		return loadedMsg{
			profile:  m.svc.LoadProfile(m.ctx),
			rec:      m.svc.Recommend(m.ctx),
			paused:   m.svc.Paused(m.ctx),
			restored: restored,
		}
	}
}

func (m focusModel) completeCmd() tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.Complete(m.ctx)
		return completedMsg{res: res, err: err}
	}
}

func (m focusModel) pauseCmd() tea.Cmd {
	return func() tea.Msg {
		return pausedMsg{err: m.svc.Pause(m.ctx)}
	}
}

// roomFor resolves the first room of the task's target type, or "".
func roomFor(home *storage.HomeConfig, task *engine.Task) string {
	if task == nil || task.Room == "" {
		return ""
	}
	for i := range home.Rooms {
		if home.Rooms[i].Type == string(task.Room) {
			return home.Rooms[i].ID
		}
	}
	return ""
}

func (m focusModel) startTask(task *engine.Task) (tea.Model, tea.Cmd) {
	if task == nil {
		m.lastLog = "Nothing to start."
		return m, nil
	}
	var roomID string
	if m.profile != nil {
		roomID = roomFor(&m.profile.Home, task)
	}
	m.svc.Start(m.ctx, task, roomID)
	m.phase = phaseRun
	m.lastLog = "Quest started. One step at a time."
	return m, nil
}

func (m focusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.profile = msg.profile
		m.rec = msg.rec
		m.paused = msg.paused
		if msg.restored {
			m.phase = phaseRun
			m.lastLog = "Picked your quest back up."
		} else if m.phase != phaseDone {
			m.phase = phasePick
			m.lastLog = "Ready."
		}
		return m, nil
	case completedMsg:
		if msg.err != nil {
			m.lastLog = "Complete failed: " + msg.err.Error()
			return m, nil
		}
		if msg.res == nil {
			m.lastLog = "No active quest."
			m.phase = phasePick
			return m, nil
		}
		m.result = msg.res
		m.phase = phaseDone
		m.lastLog = fmt.Sprintf("Done! +%d points.", msg.res.PointsEarned)
		return m, m.loadCmd()
	case pausedMsg:
		if msg.err != nil {
			m.lastLog = "Pause failed: " + msg.err.Error()
			return m, nil
		}
		m.phase = phasePick
		m.lastLog = "Paused. Come back when you can."
		return m, m.loadCmd()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m focusModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" || key == "q" {
		return m, tea.Quit
	}

	switch m.phase {
	case phasePick:
		switch key {
		case "enter", "s":
			return m.startTask(m.rec.Task)
		case "w":
			return m.startTask(m.svc.QuickWin(m.ctx))
		case "e":
			return m.startTask(m.svc.Easiest(m.ctx))
		case "r":
			if m.paused == nil {
				m.lastLog = "Nothing is paused."
				return m, nil
			}
			if err := m.svc.Resume(m.ctx); err != nil {
				m.lastLog = "Resume failed: " + err.Error()
				return m, nil
			}
			if m.svc.Active() == nil {
				m.lastLog = "That quest is gone; pick a new one."
				return m, m.loadCmd()
			}
			m.phase = phaseRun
			m.paused = nil
			m.lastLog = "Resumed where you left off."
			return m, nil
		}
	case phaseRun:
		active := m.svc.Active()
		if active == nil {
			m.phase = phasePick
			return m, nil
		}
		switch key {
		case "enter", "n":
			if active.StepIndex >= len(active.Task.Steps)-1 {
				m.lastLog = "Finishing up…"
				return m, m.completeCmd()
			}
			m.svc.AdvanceStep(m.ctx)
			return m, nil
		case "c":
			m.lastLog = "Finishing up…"
			return m, m.completeCmd()
		case "p":
			return m, m.pauseCmd()
		case "x":
			m.svc.Skip(m.ctx)
			m.phase = phasePick
			m.lastLog = "Skipped. No points, no guilt."
			return m, m.loadCmd()
		}
	case phaseDone:
		switch key {
		case "enter", "n":
			m.phase = phasePick
			m.result = nil
			return m, m.loadCmd()
		}
	}
	return m, nil
}

func (m focusModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}
	if m.loading {
		return "Clean Sanctuary — loading…\n"
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	switch m.phase {
	case phasePick:
		b.WriteString(m.renderPick())
	case phaseRun:
		b.WriteString(m.renderRun())
	case phaseDone:
		b.WriteString(m.renderDone())
	}
	b.WriteString("\n\n")
	b.WriteString(ui.Dim.Render(m.lastLog))
	b.WriteString("\n")
	return b.String()
}

func (m focusModel) renderHeader() string {
	if m.profile == nil {
		return ui.Heading(ui.IconSparkle, "Clean Sanctuary")
	}
	return fmt.Sprintf("%s  %s  %s  %s",
		ui.Heading(ui.IconSparkle, "Clean Sanctuary"),
		ui.LabelValue("Points", m.profile.TotalPoints),
		ui.LabelValue("This week", m.profile.WeeklyPoints),
		ui.LabelValue("Streak", ui.Streak(m.profile.CurrentStreak)),
	)
}

func (m focusModel) renderPick() string {
	var lines []string
	task := m.rec.Task
	if task == nil {
		lines = append(lines, "No quests available.")
	} else {
		label := "Up next"
		if m.rec.IsCatchUp {
			label = "Catch up"
		}
		if m.rec.TodayComplete {
			lines = append(lines, ui.Good.Render(ui.IconDone+" Today's quests are done. One more for fun?"))
		}
		lines = append(lines, fmt.Sprintf("%s: %s %s %s",
			ui.H2.Render(label),
			ui.CategoryIcon(string(task.Category)),
			task.Title,
			ui.Muted.Render("("+engine.FormatDuration(task.Duration)+")"),
		))
		if task.Subtitle != "" {
			lines = append(lines, ui.Muted.Render(task.Subtitle))
		}
	}
	if m.paused != nil {
		lines = append(lines, "")
		lines = append(lines, fmt.Sprintf("%s Paused: %s (step %d)", ui.IconPause, m.paused.TaskTitle, m.paused.StepIndex+1))
	}
	lines = append(lines, "")
	keys := "enter/s: start   w: quick win   e: easiest"
	if m.paused != nil {
		keys += "   r: resume"
	}
	keys += "   q: quit"
	lines = append(lines, ui.Dim.Render(keys))
	return strings.Join(lines, "\n")
}

func (m focusModel) renderRun() string {
	active := m.svc.Active()
	if active == nil {
		return "No active quest."
	}
	task := active.Task

	var lines []string
	lines = append(lines, fmt.Sprintf("%s %s %s",
		ui.CategoryIcon(string(task.Category)),
		ui.H2.Render(task.Title),
		ui.Muted.Render(fmt.Sprintf("step %d of %d", active.StepIndex+1, len(task.Steps))),
	))
	lines = append(lines, "")
	for i, step := range task.Steps {
		switch {
		case i < active.StepIndex:
			lines = append(lines, ui.Muted.Render("  ✓ "+step.Instruction))
		case i == active.StepIndex:
			lines = append(lines, ui.StepActive.Render("  ▶ "+step.Instruction))
			if step.Explanation != "" {
				lines = append(lines, ui.Muted.Render("     "+step.Explanation))
			}
		default:
			lines = append(lines, "  · "+step.Instruction)
		}
	}
	lines = append(lines, "")
	lines = append(lines, ui.Dim.Render("enter/n: next step   c: finish   p: pause   x: skip   q: quit"))
	return strings.Join(lines, "\n")
}

func (m focusModel) renderDone() string {
	if m.result == nil {
		return "Done."
	}
	var lines []string
	lines = append(lines, ui.Good.Render(fmt.Sprintf("%s Quest complete! +%d points (%d min)", ui.IconDone, m.result.PointsEarned, m.result.ActualMinutes)))
	lines = append(lines, ui.LabelValue("Streak", ui.Streak(m.result.CurrentStreak)))
	if m.result.CommunityUnlocked {
		lines = append(lines, ui.BadgeUnlocked+" "+ui.IconBonfire+" You can now gather at the bonfire.")
	}
	lines = append(lines, "")
	lines = append(lines, ui.Dim.Render("enter/n: next quest   q: quit"))
	return strings.Join(lines, "\n")
}
