package engine

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/babsant/clean-sanctuary/internal/storage"
)

// Service wires the catalog, the local store, and the community ledger into
// the quest recommendation and session engine. It holds at most one active
// session; the host serializes calls onto it.
type Service struct {
	store   *storage.Store
	ledger  Ledger
	logger  *slog.Logger
	catalog *Catalog
	rec     *Recommender

	now func() time.Time
	cur *session
}

func NewService(store *storage.Store, ledger Ledger, logger *slog.Logger) *Service {
	if ledger == nil {
		ledger = NopLedger{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	catalog := DefaultCatalog()
	return &Service{
		store:   store,
		ledger:  ledger,
		logger:  logger,
		catalog: catalog,
		rec:     NewRecommender(catalog, nil),
		now:     time.Now,
	}
}

// WithCatalog swaps the task catalog (and the recommender built on it).
func (s *Service) WithCatalog(catalog *Catalog) *Service {
	s.catalog = catalog
	s.rec = NewRecommender(catalog, nil)
	return s
}

// WithRand seeds the recommender's random source.
func (s *Service) WithRand(rng *rand.Rand) *Service {
	s.rec = NewRecommender(s.catalog, rng)
	return s
}

func (s *Service) Store() *storage.Store     { return s.store }
func (s *Service) Ledger() Ledger            { return s.ledger }
func (s *Service) Catalog() *Catalog         { return s.catalog }
func (s *Service) Recommender() *Recommender { return s.rec }

func defaultProfile() *storage.Profile {
	p := &storage.Profile{
		Home: storage.HomeConfig{
			Bedrooms:  1,
			Bathrooms: 1,
		},
	}
	p.Home.Rooms = GenerateDefaultRooms(p.Home.Bedrooms, p.Home.Bathrooms, p.Home.HasPets)
	return p
}

// weekStart returns Monday 00:00 local of the week containing t.
func weekStart(t time.Time) time.Time {
	daysBack := (int(t.Weekday()) + 6) % 7
	y, m, d := t.AddDate(0, 0, -daysBack).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// LoadProfile returns the profile, creating a default one on first run and
// applying the Monday-aligned weekly points reset. A storage failure is
// logged and answered with an unsaved default so the app stays usable.
func (s *Service) LoadProfile(ctx context.Context) *storage.Profile {
	p, err := s.store.LoadProfile(ctx)
	if err != nil {
		s.logger.Warn("load profile failed, using default", "error", err)
		return defaultProfile()
	}
	if p == nil {
		p = defaultProfile()
		if err := s.store.SaveProfile(ctx, p); err != nil {
			s.logger.Warn("save initial profile failed", "error", err)
		}
		if err := s.store.SaveAccountCreatedAt(ctx, s.now()); err != nil {
			s.logger.Warn("save account created at failed", "error", err)
		}
	}

	changed := s.applyWeeklyReset(p)

	before := len(p.Home.Rooms)
	EnsureRooms(&p.Home)
	changed = changed || len(p.Home.Rooms) != before

	if changed {
		if err := s.store.SaveProfile(ctx, p); err != nil {
			s.logger.Warn("save profile after weekly reset failed", "error", err)
		}
	}
	return p
}

// applyWeeklyReset zeroes weekly points when the current time has crossed
// into a new calendar week, and requires weekly activity to be re-earned.
func (s *Service) applyWeeklyReset(p *storage.Profile) bool {
	start := weekStart(s.now())
	if p.WeeklyPointsResetDate != nil && !p.WeeklyPointsResetDate.Before(start) {
		return false
	}
	p.WeeklyPoints = 0
	p.WeeklyPointsResetDate = &start
	p.IsCommunityAccessActive = false
	return true
}

func (s *Service) SaveProfile(ctx context.Context, p *storage.Profile) error {
	return s.store.SaveProfile(ctx, p)
}

// PreferenceUpdate carries optional onboarding answers; empty fields are
// left unchanged.
type PreferenceUpdate struct {
	Feeling  string
	Struggle string
	Energy   string
	Tone     string
}

func (s *Service) UpdatePreferences(ctx context.Context, upd PreferenceUpdate) (*storage.Profile, error) {
	p := s.LoadProfile(ctx)
	changed := false
	if upd.Feeling != "" {
		p.Feeling = upd.Feeling
		changed = true
	}
	if upd.Struggle != "" {
		p.Struggle = upd.Struggle
		changed = true
	}
	if upd.Energy != "" {
		p.Energy = upd.Energy
		changed = true
	}
	if upd.Tone != "" {
		p.Tone = upd.Tone
		changed = true
	}
	// An all-empty update must not mark onboarding done.
	if changed {
		p.Onboarded = true
	}
	if err := s.store.SaveProfile(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// SetHomeLayout updates the bed/bath/pet counts and appends any rooms the
// new counts imply. Existing rooms keep their names and timestamps.
func (s *Service) SetHomeLayout(ctx context.Context, bedrooms int, bathrooms float64, hasPets bool) (*storage.Profile, error) {
	p := s.LoadProfile(ctx)
	p.Home.Bedrooms = bedrooms
	p.Home.Bathrooms = bathrooms
	p.Home.HasPets = hasPets
	if len(p.Home.Rooms) == 0 {
		p.Home.Rooms = GenerateDefaultRooms(bedrooms, bathrooms, hasPets)
	} else {
		EnsureRooms(&p.Home)
	}
	if err := s.store.SaveProfile(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// CompletedTasks loads the completion map, answering empty on failure.
func (s *Service) CompletedTasks(ctx context.Context) map[string]time.Time {
	m, err := s.store.LoadCompletedTasks(ctx)
	if err != nil {
		s.logger.Warn("load completed tasks failed, using empty", "error", err)
		return map[string]time.Time{}
	}
	return m
}

// History loads the cleaning history, answering empty on failure.
func (s *Service) History(ctx context.Context, limit int) []storage.CleaningSession {
	list, err := s.store.ListCleaningSessions(ctx, limit)
	if err != nil {
		s.logger.Warn("load history failed, using empty", "error", err)
		return nil
	}
	return list
}

// Recommend surfaces the next quest for the current profile and time.
func (s *Service) Recommend(ctx context.Context) Recommendation {
	p := s.LoadProfile(ctx)
	return s.rec.Recommend(p, s.CompletedTasks(ctx), s.now())
}

func (s *Service) QuickWin(ctx context.Context) *Task {
	return s.rec.QuickWin(s.CompletedTasks(ctx), s.now())
}

func (s *Service) Easiest(ctx context.Context) *Task {
	return s.rec.Easiest(s.CompletedTasks(ctx), s.now())
}

func (s *Service) AdHoc(room RoomType, maxDuration int) *Task {
	return s.rec.AdHoc(room, maxDuration)
}
