package engine

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/babsant/clean-sanctuary/internal/storage"
)

func newTestService(t *testing.T) (*Service, *time.Time) {
	t.Helper()
	ctx := context.Background()

	store, err := storage.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	svc := NewService(store, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	clock := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC) // a Monday morning
	svc.now = func() time.Time { return clock }
	return svc, &clock
}

type errLedger struct{}

func (errLedger) Contribute(ctx context.Context, anonymousID string, amount int) error {
	return errors.New("bonfire offline")
}

func (errLedger) State(ctx context.Context) (*BonfireState, error) {
	return nil, errors.New("bonfire offline")
}

type recordLedger struct {
	ids     []string
	amounts []int
}

func (r *recordLedger) Contribute(ctx context.Context, anonymousID string, amount int) error {
	r.ids = append(r.ids, anonymousID)
	r.amounts = append(r.amounts, amount)
	return nil
}

func (r *recordLedger) State(ctx context.Context) (*BonfireState, error) {
	return &BonfireState{}, nil
}

func TestStartAdvanceAndCheckpoint(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if ok := svc.StartByID(ctx, "morning-reset", ""); !ok {
		t.Fatalf("StartByID failed for catalog task")
	}
	qp, err := svc.Store().LoadQuestProgress(ctx)
	if err != nil || qp == nil {
		t.Fatalf("checkpoint after start: %v, err=%v", qp, err)
	}
	if qp.TaskID != "morning-reset" || qp.StepIndex != 0 {
		t.Fatalf("checkpoint=%+v, want step 0 of morning-reset", qp)
	}

	svc.AdvanceStep(ctx)
	svc.AdvanceStep(ctx)
	if got := svc.Active().StepIndex; got != 2 {
		t.Fatalf("step index=%d, want 2", got)
	}

	// morning-reset has three steps; advancing past the last is a no-op.
	svc.AdvanceStep(ctx)
	if got := svc.Active().StepIndex; got != 2 {
		t.Fatalf("advance past last step moved index to %d", got)
	}

	qp, err = svc.Store().LoadQuestProgress(ctx)
	if err != nil || qp == nil {
		t.Fatalf("checkpoint after advance: %v, err=%v", qp, err)
	}
	if qp.StepIndex != 2 {
		t.Fatalf("checkpoint step=%d, want 2", qp.StepIndex)
	}
}

func TestStartUnknownTask(t *testing.T) {
	svc, _ := newTestService(t)
	if ok := svc.StartByID(context.Background(), "no-such-quest", ""); ok {
		t.Fatalf("expected StartByID to reject unknown task")
	}
	if svc.Active() != nil {
		t.Fatalf("unexpected active session")
	}
}

func TestPauseResumePreservesProgress(t *testing.T) {
	svc, clock := newTestService(t)
	ctx := context.Background()
	startAt := *clock

	p := svc.LoadProfile(ctx)
	roomID := p.Home.Rooms[0].ID

	svc.StartByID(ctx, "morning-reset", roomID)
	svc.AdvanceStep(ctx)

	*clock = clock.Add(5 * time.Minute)
	if err := svc.Pause(ctx); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if svc.Active() != nil {
		t.Fatalf("session still active after pause")
	}
	if qp, _ := svc.Store().LoadQuestProgress(ctx); qp != nil {
		t.Fatalf("checkpoint not cleared on pause: %+v", qp)
	}

	pt := svc.Paused(ctx)
	if pt == nil {
		t.Fatalf("no paused task persisted")
	}
	if pt.StepIndex != 1 || pt.RoomID != roomID {
		t.Fatalf("paused snapshot=%+v, want step 1 room %s", pt, roomID)
	}
	if !pt.TaskStartedAt.Equal(startAt) {
		t.Fatalf("paused taskStartedAt=%v, want %v", pt.TaskStartedAt, startAt)
	}

	*clock = clock.Add(30 * time.Minute)
	if err := svc.Resume(ctx); err != nil {
		t.Fatalf("resume: %v", err)
	}
	active := svc.Active()
	if active == nil {
		t.Fatalf("no active session after resume")
	}
	if active.StepIndex != 1 || active.RoomID != roomID {
		t.Fatalf("resumed session=%+v, want step 1 room %s", active, roomID)
	}
	// Paused wall clock counts toward elapsed: the original start survives.
	if !active.StartedAt.Equal(startAt) {
		t.Fatalf("resumed startedAt=%v, want original %v", active.StartedAt, startAt)
	}
	if svc.Paused(ctx) != nil {
		t.Fatalf("paused task not cleared on resume")
	}
}

func TestDismissPaused(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	svc.StartByID(ctx, "dish-patrol", "")
	if err := svc.Pause(ctx); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if err := svc.DismissPaused(ctx); err != nil {
		t.Fatalf("dismiss: %v", err)
	}
	if svc.Paused(ctx) != nil {
		t.Fatalf("paused task survived dismissal")
	}

	// Resume with nothing paused is a no-op.
	if err := svc.Resume(ctx); err != nil {
		t.Fatalf("resume after dismiss: %v", err)
	}
	if svc.Active() != nil {
		t.Fatalf("resume after dismissal restored a session")
	}
}

func TestSkipDiscardsEverything(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	svc.StartByID(ctx, "dish-patrol", "")
	svc.Skip(ctx)

	if svc.Active() != nil {
		t.Fatalf("session survived skip")
	}
	if qp, _ := svc.Store().LoadQuestProgress(ctx); qp != nil {
		t.Fatalf("checkpoint survived skip")
	}
	if res, err := svc.Complete(ctx); res != nil || err != nil {
		t.Fatalf("complete after skip: res=%+v err=%v, want no-op", res, err)
	}
	if m := svc.CompletedTasks(ctx); len(m) != 0 {
		t.Fatalf("skip recorded a completion: %v", m)
	}
}

func TestCompleteRoundTrip(t *testing.T) {
	svc, clock := newTestService(t)
	ctx := context.Background()

	svc.StartByID(ctx, "dish-patrol", "")
	svc.AdvanceStep(ctx)
	svc.AdvanceStep(ctx)

	*clock = clock.Add(7*time.Minute + 30*time.Second)
	completedAt := *clock

	res, err := svc.Complete(ctx)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if res == nil {
		t.Fatalf("expected a result")
	}
	if res.ActualMinutes != 8 {
		t.Fatalf("actual minutes=%d, want 8 (7m30s rounded)", res.ActualMinutes)
	}
	wantPoints := TaskPoints(CategoryDaily, 15)
	if res.PointsEarned != wantPoints {
		t.Fatalf("points=%d, want %d", res.PointsEarned, wantPoints)
	}

	m := svc.CompletedTasks(ctx)
	if got, ok := m["dish-patrol"]; !ok || !got.Equal(completedAt) {
		t.Fatalf("completed map=%v, want dish-patrol at %v", m, completedAt)
	}

	history := svc.History(ctx, 0)
	if len(history) != 1 {
		t.Fatalf("history entries=%d, want 1", len(history))
	}
	if history[0].TaskID != "dish-patrol" || history[0].ActualMinutes < 1 {
		t.Fatalf("history entry=%+v", history[0])
	}

	p := svc.LoadProfile(ctx)
	if p.TasksCompleted != 1 || p.TotalMinutesCleaned != 8 {
		t.Fatalf("profile totals=%d tasks/%d min, want 1/8", p.TasksCompleted, p.TotalMinutesCleaned)
	}
	if p.TotalPoints != wantPoints || p.WeeklyPoints != wantPoints {
		t.Fatalf("profile points=%d/%d, want %d", p.TotalPoints, p.WeeklyPoints, wantPoints)
	}

	if qp, _ := svc.Store().LoadQuestProgress(ctx); qp != nil {
		t.Fatalf("checkpoint survived completion")
	}
	if svc.Active() != nil {
		t.Fatalf("session still active after completion")
	}
}

func TestCompleteWithNoSessionIsNoOp(t *testing.T) {
	svc, _ := newTestService(t)
	if res, err := svc.Complete(context.Background()); res != nil || err != nil {
		t.Fatalf("complete with no session: res=%+v err=%v", res, err)
	}
}

func completeOne(t *testing.T, svc *Service, taskID string) *CompleteResult {
	t.Helper()
	ctx := context.Background()
	if ok := svc.StartByID(ctx, taskID, ""); !ok {
		t.Fatalf("start %s", taskID)
	}
	res, err := svc.Complete(ctx)
	if err != nil {
		t.Fatalf("complete %s: %v", taskID, err)
	}
	return res
}

func TestStreakAcrossDays(t *testing.T) {
	svc, clock := newTestService(t)
	ctx := context.Background()

	completeOne(t, svc, "counter-sweep")
	p := svc.LoadProfile(ctx)
	if p.CurrentStreak != 1 || p.LongestStreak != 1 {
		t.Fatalf("day1 streak=%d/%d, want 1/1", p.CurrentStreak, p.LongestStreak)
	}

	// Second completion the same day changes nothing.
	completeOne(t, svc, "dish-patrol")
	p = svc.LoadProfile(ctx)
	if p.CurrentStreak != 1 {
		t.Fatalf("same-day streak=%d, want 1", p.CurrentStreak)
	}

	*clock = clock.Add(24 * time.Hour)
	completeOne(t, svc, "counter-sweep")
	*clock = clock.Add(24 * time.Hour)
	completeOne(t, svc, "counter-sweep")

	p = svc.LoadProfile(ctx)
	if p.CurrentStreak != 3 || p.LongestStreak != 3 {
		t.Fatalf("day3 streak=%d/%d, want 3/3", p.CurrentStreak, p.LongestStreak)
	}

	// A two-day gap restarts the streak; the longest survives.
	*clock = clock.Add(48 * time.Hour)
	completeOne(t, svc, "counter-sweep")
	p = svc.LoadProfile(ctx)
	if p.CurrentStreak != 1 || p.LongestStreak != 3 {
		t.Fatalf("post-gap streak=%d/%d, want 1/3", p.CurrentStreak, p.LongestStreak)
	}
}

func TestWeeklyPointsReset(t *testing.T) {
	svc, clock := newTestService(t)
	ctx := context.Background()

	stale := weekStart(*clock).AddDate(0, 0, -14)
	p := svc.LoadProfile(ctx)
	p.WeeklyPoints = 120
	p.WeeklyPointsResetDate = &stale
	p.HasCommunityAccess = true
	p.IsCommunityAccessActive = true
	if err := svc.SaveProfile(ctx, p); err != nil {
		t.Fatalf("save profile: %v", err)
	}

	p = svc.LoadProfile(ctx)
	if p.WeeklyPoints != 0 {
		t.Fatalf("weekly points=%d, want 0 after reset", p.WeeklyPoints)
	}
	if p.IsCommunityAccessActive {
		t.Fatalf("weekly activity flag survived reset")
	}
	if p.WeeklyPointsResetDate == nil || !p.WeeklyPointsResetDate.Equal(weekStart(*clock)) {
		t.Fatalf("reset date=%v, want %v", p.WeeklyPointsResetDate, weekStart(*clock))
	}

	// A reset date already at this week's Monday is left alone.
	p.WeeklyPoints = 50
	if err := svc.SaveProfile(ctx, p); err != nil {
		t.Fatalf("save profile: %v", err)
	}
	p = svc.LoadProfile(ctx)
	if p.WeeklyPoints != 50 {
		t.Fatalf("weekly points=%d, want 50 (no reset within same week)", p.WeeklyPoints)
	}
}

func TestCommunityUnlockEndToEnd(t *testing.T) {
	svc, clock := newTestService(t)
	ctx := context.Background()

	p := svc.LoadProfile(ctx)
	p.TotalPoints = 290
	if err := svc.SaveProfile(ctx, p); err != nil {
		t.Fatalf("save profile: %v", err)
	}
	roomID := p.Home.Rooms[0].ID

	if ok := svc.StartByID(ctx, "fridge-deep-clean", roomID); !ok {
		t.Fatalf("start deep clean")
	}
	res, err := svc.Complete(ctx)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if res.PointsEarned != 300 {
		t.Fatalf("deep clean points=%d, want 300", res.PointsEarned)
	}
	if !res.CommunityUnlocked {
		t.Fatalf("expected this completion to unlock community access")
	}
	if !res.WeeklyActive {
		t.Fatalf("300 weekly points should activate community access")
	}

	p = svc.LoadProfile(ctx)
	if p.TotalPoints != 590 {
		t.Fatalf("total points=%d, want 590", p.TotalPoints)
	}
	if !p.HasCommunityAccess || p.CommunityUnlockDate == nil || !p.CommunityUnlockDate.Equal(*clock) {
		t.Fatalf("unlock state=%v date=%v", p.HasCommunityAccess, p.CommunityUnlockDate)
	}

	room := FindRoom(&p.Home, roomID)
	if room.LastCleaned == nil || !room.LastCleaned.Equal(*clock) {
		t.Fatalf("room lastCleaned=%v, want %v", room.LastCleaned, *clock)
	}
	if room.LastDeepCleaned == nil || !room.LastDeepCleaned.Equal(*clock) {
		t.Fatalf("room lastDeepCleaned=%v, want %v", room.LastDeepCleaned, *clock)
	}

	// The flag flips exactly once.
	res = completeOne(t, svc, "counter-sweep")
	if res.CommunityUnlocked {
		t.Fatalf("unlock reported twice")
	}
}

func TestLedgerFailureDoesNotBlockCompletion(t *testing.T) {
	svc, _ := newTestService(t)
	svc.ledger = errLedger{}
	ctx := context.Background()

	p := svc.LoadProfile(ctx)
	p.TotalPoints = 500
	p.HasCommunityAccess = true
	if err := svc.SaveProfile(ctx, p); err != nil {
		t.Fatalf("save profile: %v", err)
	}

	res := completeOne(t, svc, "counter-sweep")
	if res == nil {
		t.Fatalf("completion aborted by ledger failure")
	}
	if m := svc.CompletedTasks(ctx); len(m) != 1 {
		t.Fatalf("completion not recorded: %v", m)
	}
}

func TestLedgerContributionUsesStableAnonymousID(t *testing.T) {
	svc, _ := newTestService(t)
	ledger := &recordLedger{}
	svc.ledger = ledger
	ctx := context.Background()

	p := svc.LoadProfile(ctx)
	p.TotalPoints = 500
	p.HasCommunityAccess = true
	if err := svc.SaveProfile(ctx, p); err != nil {
		t.Fatalf("save profile: %v", err)
	}

	res1 := completeOne(t, svc, "counter-sweep")
	res2 := completeOne(t, svc, "dish-patrol")

	if len(ledger.amounts) != 2 {
		t.Fatalf("contributions=%d, want 2", len(ledger.amounts))
	}
	if ledger.amounts[0] != res1.PointsEarned || ledger.amounts[1] != res2.PointsEarned {
		t.Fatalf("contribution amounts=%v, want %d,%d", ledger.amounts, res1.PointsEarned, res2.PointsEarned)
	}
	if ledger.ids[0] == "" || ledger.ids[0] != ledger.ids[1] {
		t.Fatalf("anonymous id not stable: %v", ledger.ids)
	}
}

func TestNoContributionBeforeUnlock(t *testing.T) {
	svc, _ := newTestService(t)
	ledger := &recordLedger{}
	svc.ledger = ledger

	completeOne(t, svc, "counter-sweep")
	if len(ledger.amounts) != 0 {
		t.Fatalf("contributed before community unlock: %v", ledger.amounts)
	}
}

func TestRestoreCheckpointAfterRestart(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	svc.StartByID(ctx, "morning-reset", "")
	svc.AdvanceStep(ctx)

	// Simulate a process restart on the same store.
	svc2 := NewService(svc.Store(), nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if !svc2.RestoreCheckpoint(ctx) {
		t.Fatalf("expected checkpoint restore")
	}
	active := svc2.Active()
	if active == nil || active.Task.ID != "morning-reset" || active.StepIndex != 1 {
		t.Fatalf("restored session=%+v, want step 1 of morning-reset", active)
	}
}

func TestRestoreCheckpointKeepsRoomTargeting(t *testing.T) {
	svc, clock := newTestService(t)
	ctx := context.Background()

	p := svc.LoadProfile(ctx)
	roomID := p.Home.Rooms[0].ID
	svc.StartByID(ctx, "morning-reset", roomID)
	svc.AdvanceStep(ctx)

	// Restart: a later process must still know which room the quest targets.
	svc2 := NewService(svc.Store(), nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc2.now = svc.now
	if !svc2.RestoreCheckpoint(ctx) {
		t.Fatalf("expected checkpoint restore")
	}
	active := svc2.Active()
	if active == nil || active.RoomID != roomID {
		t.Fatalf("restored session=%+v, want room %s", active, roomID)
	}

	*clock = clock.Add(10 * time.Minute)
	if _, err := svc2.Complete(ctx); err != nil {
		t.Fatalf("complete after restore: %v", err)
	}

	p = svc2.LoadProfile(ctx)
	room := FindRoom(&p.Home, roomID)
	if room.LastCleaned == nil || !room.LastCleaned.Equal(*clock) {
		t.Fatalf("room lastCleaned=%v after restored completion, want %v", room.LastCleaned, *clock)
	}
}

func TestCompleteAbortsWhenCompletionMapUnreadable(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")
	store, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	svc := NewService(store, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	clock := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }

	completeOne(t, svc, "counter-sweep")

	// Corrupt the stored completion map out-of-band.
	raw, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open raw db: %v", err)
	}
	t.Cleanup(func() { _ = raw.Close() })
	if _, err := raw.Exec(`UPDATE kv SET value = 'not json' WHERE key = ?`, storage.KeyCompletedTasks); err != nil {
		t.Fatalf("corrupt kv: %v", err)
	}

	svc.StartByID(ctx, "dish-patrol", "")
	res, err := svc.Complete(ctx)
	if err == nil {
		t.Fatalf("expected an error, got result %+v", res)
	}
	if res != nil {
		t.Fatalf("result despite error: %+v", res)
	}
	// The session survives so the quest can be finished once storage is
	// healthy again; nothing was overwritten.
	if svc.Active() == nil {
		t.Fatalf("session discarded on failed completion")
	}
	p := svc.LoadProfile(ctx)
	if p.TasksCompleted != 1 {
		t.Fatalf("profile mutated by failed completion: %+v", p)
	}
}
