package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestProfileRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	p, err := store.LoadProfile(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p != nil {
		t.Fatalf("expected no profile on fresh store, got %+v", p)
	}

	when := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	in := &Profile{
		Onboarded:             true,
		Energy:                "low",
		TotalPoints:           420,
		WeeklyPoints:          70,
		WeeklyPointsResetDate: &when,
		Home: HomeConfig{
			Bedrooms:  2,
			Bathrooms: 1.5,
			Rooms: []Room{
				{ID: "r1", Type: "kitchen", Name: "Kitchen", LastCleaned: &when},
			},
		},
	}
	if err := store.SaveProfile(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := store.LoadProfile(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if out == nil || out.TotalPoints != 420 || out.Energy != "low" {
		t.Fatalf("reloaded profile=%+v", out)
	}
	if out.Home.Bathrooms != 1.5 || len(out.Home.Rooms) != 1 {
		t.Fatalf("reloaded home=%+v", out.Home)
	}
	if out.Home.Rooms[0].LastCleaned == nil || !out.Home.Rooms[0].LastCleaned.Equal(when) {
		t.Fatalf("room timestamp lost: %+v", out.Home.Rooms[0])
	}
}

func TestCompletedTasksRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	m, err := store.LoadCompletedTasks(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if m == nil || len(m) != 0 {
		t.Fatalf("fresh store map=%v, want empty non-nil", m)
	}

	at := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	m["dish-patrol"] = at
	if err := store.SaveCompletedTasks(ctx, m); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Only the latest completion per task survives.
	later := at.Add(6 * time.Hour)
	m["dish-patrol"] = later
	if err := store.SaveCompletedTasks(ctx, m); err != nil {
		t.Fatalf("resave: %v", err)
	}

	out, err := store.LoadCompletedTasks(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(out) != 1 || !out["dish-patrol"].Equal(later) {
		t.Fatalf("reloaded map=%v, want dish-patrol at %v", out, later)
	}
}

func TestPausedTaskLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	now := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	pt := &PausedTask{
		TaskID:        "morning-reset",
		TaskTitle:     "Morning Reset",
		Category:      "daily",
		Duration:      10,
		StepIndex:     1,
		RoomID:        "r1",
		PausedAt:      now,
		StepStartedAt: now.Add(-time.Minute),
		TaskStartedAt: now.Add(-5 * time.Minute),
	}
	if err := store.SavePausedTask(ctx, pt); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := store.LoadPausedTask(ctx)
	if err != nil || out == nil {
		t.Fatalf("load: %+v, err=%v", out, err)
	}
	if out.StepIndex != 1 || out.RoomID != "r1" || !out.TaskStartedAt.Equal(pt.TaskStartedAt) {
		t.Fatalf("reloaded paused=%+v", out)
	}

	if err := store.ClearPausedTask(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	out, err = store.LoadPausedTask(ctx)
	if err != nil || out != nil {
		t.Fatalf("after clear: %+v, err=%v", out, err)
	}
}

func TestCleaningHistoryAppendOnly(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := store.AppendCleaningSession(ctx, CleaningSession{
			TaskID:        "dish-patrol",
			TaskTitle:     "Dish Patrol",
			Date:          base.AddDate(0, 0, i).Format("2006-01-02"),
			ActualMinutes: 10 + i,
			CompletedAt:   base.AddDate(0, 0, i),
		})
		if err != nil {
			t.Fatalf("append #%d: %v", i, err)
		}
	}

	list, err := store.ListCleaningSessions(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("history len=%d, want 3", len(list))
	}
	// Newest first.
	if list[0].ActualMinutes != 12 || list[2].ActualMinutes != 10 {
		t.Fatalf("history order wrong: %+v", list)
	}

	limited, err := store.ListCleaningSessions(ctx, 2)
	if err != nil {
		t.Fatalf("limited list: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("limited len=%d, want 2", len(limited))
	}

	n, err := store.CountCleaningSessions(ctx)
	if err != nil || n != 3 {
		t.Fatalf("count=%d err=%v, want 3", n, err)
	}
}

func TestResetAllPreservesAnonymousID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.GetOrCreateAnonymousID(ctx)
	if err != nil || id == "" {
		t.Fatalf("anonymous id: %q, err=%v", id, err)
	}

	if err := store.SaveProfile(ctx, &Profile{TotalPoints: 100}); err != nil {
		t.Fatalf("save profile: %v", err)
	}
	if _, err := store.AppendCleaningSession(ctx, CleaningSession{TaskID: "x", TaskTitle: "X", Date: "2026-03-02", ActualMinutes: 5, CompletedAt: time.Now()}); err != nil {
		t.Fatalf("append: %v", err)
	}

	if err := store.ResetAll(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	p, err := store.LoadProfile(ctx)
	if err != nil || p != nil {
		t.Fatalf("profile after reset=%+v, err=%v", p, err)
	}
	if n, _ := store.CountCleaningSessions(ctx); n != 0 {
		t.Fatalf("history after reset=%d, want 0", n)
	}

	id2, err := store.GetOrCreateAnonymousID(ctx)
	if err != nil {
		t.Fatalf("anonymous id after reset: %v", err)
	}
	if id2 != id {
		t.Fatalf("anonymous id changed across reset: %q -> %q", id, id2)
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sentinel := errors.New("boom")
	err := store.WithTx(ctx, func(txs *Store) error {
		if err := txs.SaveProfile(ctx, &Profile{TotalPoints: 999}); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("tx error=%v, want sentinel", err)
	}

	p, err := store.LoadProfile(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p != nil {
		t.Fatalf("rolled-back write visible: %+v", p)
	}
}

func TestAccountCreatedAtRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	got, err := store.LoadAccountCreatedAt(ctx)
	if err != nil || got != nil {
		t.Fatalf("fresh store created-at=%v, err=%v", got, err)
	}

	when := time.Date(2026, time.January, 15, 8, 30, 0, 0, time.UTC)
	if err := store.SaveAccountCreatedAt(ctx, when); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err = store.LoadAccountCreatedAt(ctx)
	if err != nil || got == nil || !got.Equal(when) {
		t.Fatalf("reloaded created-at=%v, err=%v", got, err)
	}
}
