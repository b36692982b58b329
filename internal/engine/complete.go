package engine

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/babsant/clean-sanctuary/internal/storage"
)

const dateLayout = "2006-01-02"

// CompleteResult reports what a quest completion changed.
type CompleteResult struct {
	TaskID            string
	PointsEarned      int
	ActualMinutes     int
	CurrentStreak     int
	CommunityUnlocked bool // flipped to unlocked by this completion
	WeeklyActive      bool
}

// Complete finishes the active quest: it records the completion, appends a
// history entry, awards points, stamps the targeted room, updates streak and
// community access, and contributes to the bonfire. The local writes commit
// as one transaction before the result is returned; the bonfire contribution
// is best-effort and never rolls the completion back. With no active session
// Complete is a no-op.
func (s *Service) Complete(ctx context.Context) (*CompleteResult, error) {
	if s.cur == nil {
		return nil, nil
	}
	task := s.cur.task
	roomID := s.cur.roomID
	now := s.now()

	actualMinutes := task.Duration
	if !s.cur.startedAt.IsZero() {
		actualMinutes = int(math.Round(now.Sub(s.cur.startedAt).Minutes()))
	}
	if actualMinutes < 1 {
		actualMinutes = 1
	}

	// An unreadable completion map must abort here: defaulting to empty and
	// writing it back would erase every prior completion timestamp.
	completed, err := s.store.LoadCompletedTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("load completed tasks: %w", err)
	}
	completed[task.ID] = now

	earned := TaskPoints(task.Category, task.Duration)

	p := s.LoadProfile(ctx)
	if roomID != "" {
		if room := FindRoom(&p.Home, roomID); room != nil {
			at := now
			room.LastCleaned = &at
			if task.Category == CategoryDeepClean {
				room.LastDeepCleaned = &at
			}
		}
	}

	p.TasksCompleted++
	p.TotalMinutesCleaned += actualMinutes
	p.TotalPoints += earned
	p.WeeklyPoints += earned

	unlocked := false
	if !p.HasCommunityAccess && p.TotalPoints >= CommunityUnlockPoints {
		p.HasCommunityAccess = true
		at := now
		p.CommunityUnlockDate = &at
		unlocked = true
	}
	if p.HasCommunityAccess && p.WeeklyPoints >= WeeklyActivityMinimum {
		p.IsCommunityAccessActive = true
	}

	updateStreak(p, now)

	entry := storage.CleaningSession{
		TaskID:        task.ID,
		TaskTitle:     task.Title,
		Date:          now.Format(dateLayout),
		ActualMinutes: actualMinutes,
		CompletedAt:   now,
	}

	// All local effects of a completion land together; an interrupted
	// process sees either the full completion with the checkpoint cleared,
	// or none of it with the checkpoint intact.
	err = s.store.WithTx(ctx, func(txs *storage.Store) error {
		if err := txs.SaveCompletedTasks(ctx, completed); err != nil {
			return err
		}
		if _, err := txs.AppendCleaningSession(ctx, entry); err != nil {
			return err
		}
		if err := txs.SaveProfile(ctx, p); err != nil {
			return err
		}
		return txs.ClearQuestProgress(ctx)
	})
	if err != nil {
		return nil, err
	}
	s.cur = nil

	if p.HasCommunityAccess {
		s.contribute(ctx, earned)
	}

	return &CompleteResult{
		TaskID:            task.ID,
		PointsEarned:      earned,
		ActualMinutes:     actualMinutes,
		CurrentStreak:     p.CurrentStreak,
		CommunityUnlocked: unlocked,
		WeeklyActive:      p.IsCommunityAccessActive,
	}, nil
}

// contribute sends earned points to the community ledger. Failures are
// logged and swallowed; the local completion already committed.
func (s *Service) contribute(ctx context.Context, earned int) {
	anonID, err := s.store.GetOrCreateAnonymousID(ctx)
	if err != nil {
		s.logger.Warn("anonymous id unavailable, skipping contribution", "error", err)
		return
	}
	if err := s.ledger.Contribute(ctx, anonID, earned); err != nil {
		s.logger.Warn("bonfire contribution failed", "error", err)
	}
}

// updateStreak applies the once-per-day streak rule: a completion the day
// after the last active date extends the streak, a repeat on the same day
// changes nothing, and any longer gap restarts at one.
func updateStreak(p *storage.Profile, now time.Time) {
	today := now.Format(dateLayout)
	yesterday := now.AddDate(0, 0, -1).Format(dateLayout)

	switch p.LastActiveDate {
	case today:
		// Already counted for today.
	case yesterday:
		p.CurrentStreak++
	default:
		p.CurrentStreak = 1
	}
	if p.CurrentStreak > p.LongestStreak {
		p.LongestStreak = p.CurrentStreak
	}
	p.LastActiveDate = today
}
