package engine

import (
	"context"
	"time"

	"github.com/babsant/clean-sanctuary/internal/storage"
)

// session is the transient in-progress quest. Only one exists at a time and
// it is mutually exclusive with a paused checkpoint while running.
type session struct {
	task          *Task
	roomID        string
	stepIndex     int
	startedAt     time.Time
	stepStartedAt time.Time
}

// ActiveSession is a read-only view of the in-progress quest.
type ActiveSession struct {
	Task          *Task
	RoomID        string
	StepIndex     int
	StartedAt     time.Time
	StepStartedAt time.Time
}

// Active returns the current session view, or nil when idle.
func (s *Service) Active() *ActiveSession {
	if s.cur == nil {
		return nil
	}
	return &ActiveSession{
		Task:          s.cur.task,
		RoomID:        s.cur.roomID,
		StepIndex:     s.cur.stepIndex,
		StartedAt:     s.cur.startedAt,
		StepStartedAt: s.cur.stepStartedAt,
	}
}

func (s *Service) checkpoint(ctx context.Context) {
	if s.cur == nil {
		return
	}
	err := s.store.SaveQuestProgress(ctx, &storage.QuestProgress{
		TaskID:    s.cur.task.ID,
		StepIndex: s.cur.stepIndex,
		RoomID:    s.cur.roomID,
		StartedAt: s.cur.startedAt,
	})
	if err != nil {
		s.logger.Warn("save quest progress failed", "task", s.cur.task.ID, "error", err)
	}
}

func (s *Service) clearCheckpoint(ctx context.Context) {
	if err := s.store.ClearQuestProgress(ctx); err != nil {
		s.logger.Warn("clear quest progress failed", "error", err)
	}
}

// Start begins a quest, replacing any idle state. A lightweight progress
// checkpoint is persisted so an interrupted process can pick the quest back
// up.
func (s *Service) Start(ctx context.Context, task *Task, roomID string) {
	now := s.now()
	s.cur = &session{
		task:          task,
		roomID:        roomID,
		stepIndex:     0,
		startedAt:     now,
		stepStartedAt: now,
	}
	s.checkpoint(ctx)
}

// StartByID starts the catalog task with the given id; unknown ids are a
// no-op returning false.
func (s *Service) StartByID(ctx context.Context, taskID string, roomID string) bool {
	task := s.catalog.Get(taskID)
	if task == nil {
		return false
	}
	s.Start(ctx, task, roomID)
	return true
}

// AdvanceStep moves to the next step and re-checkpoints. Advancing past the
// last step, or with no active session, is a no-op.
func (s *Service) AdvanceStep(ctx context.Context) {
	if s.cur == nil || s.cur.stepIndex >= len(s.cur.task.Steps)-1 {
		return
	}
	s.cur.stepIndex++
	s.cur.stepStartedAt = s.now()
	s.checkpoint(ctx)
}

// Pause checkpoints the session as a paused task and clears the active
// state. With no active session it is a no-op.
func (s *Service) Pause(ctx context.Context) error {
	if s.cur == nil || s.cur.startedAt.IsZero() || s.cur.stepStartedAt.IsZero() {
		return nil
	}
	pt := &storage.PausedTask{
		TaskID:        s.cur.task.ID,
		TaskTitle:     s.cur.task.Title,
		Category:      string(s.cur.task.Category),
		Duration:      s.cur.task.Duration,
		StepIndex:     s.cur.stepIndex,
		RoomID:        s.cur.roomID,
		PausedAt:      s.now(),
		StepStartedAt: s.cur.stepStartedAt,
		TaskStartedAt: s.cur.startedAt,
	}
	if err := s.store.SavePausedTask(ctx, pt); err != nil {
		return err
	}
	s.clearCheckpoint(ctx)
	s.cur = nil
	return nil
}

// Paused returns the persisted paused task, or nil.
func (s *Service) Paused(ctx context.Context) *storage.PausedTask {
	pt, err := s.store.LoadPausedTask(ctx)
	if err != nil {
		s.logger.Warn("load paused task failed", "error", err)
		return nil
	}
	return pt
}

// Resume restores the paused quest. The original start instant is kept, so
// time spent paused counts toward the elapsed total at completion. With no
// paused task it is a no-op.
func (s *Service) Resume(ctx context.Context) error {
	pt, err := s.store.LoadPausedTask(ctx)
	if err != nil {
		return err
	}
	if pt == nil {
		return nil
	}
	task := s.catalog.Get(pt.TaskID)
	if task == nil {
		s.logger.Warn("paused task no longer in catalog, dismissing", "task", pt.TaskID)
		return s.store.ClearPausedTask(ctx)
	}

	s.cur = &session{
		task:          task,
		roomID:        pt.RoomID,
		stepIndex:     pt.StepIndex,
		startedAt:     pt.TaskStartedAt,
		stepStartedAt: s.now(),
	}
	s.checkpoint(ctx)
	return s.store.ClearPausedTask(ctx)
}

// DismissPaused discards the paused checkpoint without touching session
// state.
func (s *Service) DismissPaused(ctx context.Context) error {
	return s.store.ClearPausedTask(ctx)
}

// Skip abandons the active quest: nothing is recorded, no points awarded,
// and the progress checkpoint is cleared.
func (s *Service) Skip(ctx context.Context) {
	if s.cur == nil {
		return
	}
	s.cur = nil
	s.clearCheckpoint(ctx)
}

// RestoreCheckpoint rebuilds an active session from a progress checkpoint
// left by an interrupted process. Returns false when there is nothing to
// restore.
func (s *Service) RestoreCheckpoint(ctx context.Context) bool {
	qp, err := s.store.LoadQuestProgress(ctx)
	if err != nil {
		s.logger.Warn("load quest progress failed", "error", err)
		return false
	}
	if qp == nil {
		return false
	}
	task := s.catalog.Get(qp.TaskID)
	if task == nil {
		s.clearCheckpoint(ctx)
		return false
	}
	s.cur = &session{
		task:          task,
		roomID:        qp.RoomID,
		stepIndex:     qp.StepIndex,
		startedAt:     qp.StartedAt,
		stepStartedAt: s.now(),
	}
	return true
}
