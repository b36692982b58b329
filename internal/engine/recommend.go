package engine

import (
	"math/rand"
	"time"

	"github.com/babsant/clean-sanctuary/internal/storage"
)

// Recommendation is the result of a next-quest query.
type Recommendation struct {
	Task          *Task
	IsCatchUp     bool
	TodayComplete bool
}

// Recommender picks the next quest from the catalog. The rand source is
// injectable so catch-up and fallback picks can be seeded in tests.
type Recommender struct {
	catalog *Catalog
	rng     *rand.Rand
}

func NewRecommender(catalog *Catalog, rng *rand.Rand) *Recommender {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Recommender{catalog: catalog, rng: rng}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func completedToday(completed map[string]time.Time, now time.Time) map[string]bool {
	done := map[string]bool{}
	for id, at := range completed {
		if sameDay(at, now) {
			done[id] = true
		}
	}
	return done
}

// weekdayNames covers Monday through Friday; weekend days have no
// day-specific weekly quests.
var weekdayNames = map[time.Weekday]string{
	time.Monday:    "Monday",
	time.Tuesday:   "Tuesday",
	time.Wednesday: "Wednesday",
	time.Thursday:  "Thursday",
	time.Friday:    "Friday",
}

// weekdayOf returns the weekday a weekly quest targets, matched by the
// literal day name appearing in its title. This substring convention is
// inherited from the catalog's authoring style; an explicit day field on the
// task would be better, but parity matters more here.
func weekdayOf(t *Task) (time.Weekday, bool) {
	if t.Category != CategoryWeekly {
		return 0, false
	}
	for day, name := range weekdayNames {
		if t.TitleContains(name) {
			return day, true
		}
	}
	return 0, false
}

// idealToday is the set of quests a fully-on-track day would finish: every
// daily quest, plus the weekly quest named for today's weekday.
func (r *Recommender) idealToday(now time.Time) []*Task {
	dayName, isWeekday := weekdayNames[now.Weekday()]

	var out []*Task
	tasks := r.catalog.Tasks()
	for i := range tasks {
		t := &tasks[i]
		if t.Category == CategoryDaily {
			out = append(out, t)
			continue
		}
		if isWeekday && t.Category == CategoryWeekly && t.TitleContains(dayName) {
			out = append(out, t)
		}
	}
	return out
}

// Recommend picks the next quest given the profile, completion history, and
// current time. When today's ideal set still has open quests the pick is
// deterministic (highest score, catalog order breaking ties); catch-up and
// fallback paths pick uniformly at random from their candidate sets.
func (r *Recommender) Recommend(profile *storage.Profile, completed map[string]time.Time, now time.Time) Recommendation {
	done := completedToday(completed, now)

	ideal := r.idealToday(now)
	var open []*Task
	for _, t := range ideal {
		if !done[t.ID] {
			open = append(open, t)
		}
	}

	todayComplete := len(open) == 0 && len(done) > 0

	if len(open) > 0 {
		return Recommendation{Task: r.best(open, profile, now)}
	}

	// Ideal set is finished; offer a weekly quest missed earlier this week.
	if missed := r.missedWeeklies(done, now); len(missed) > 0 {
		return Recommendation{
			Task:          r.pick(missed),
			IsCatchUp:     true,
			TodayComplete: todayComplete,
		}
	}

	var rest []*Task
	tasks := r.catalog.Tasks()
	for i := range tasks {
		if !done[tasks[i].ID] {
			rest = append(rest, &tasks[i])
		}
	}
	if len(rest) == 0 {
		var all []*Task
		for i := range tasks {
			all = append(all, &tasks[i])
		}
		return Recommendation{Task: r.pick(all), TodayComplete: todayComplete}
	}

	return Recommendation{Task: r.best(rest, profile, now), TodayComplete: todayComplete}
}

// missedWeeklies returns weekly quests targeting a weekday strictly earlier
// in the current week (Monday through Thursday) that were not completed
// today.
func (r *Recommender) missedWeeklies(done map[string]bool, now time.Time) []*Task {
	today := int(now.Weekday())

	var out []*Task
	tasks := r.catalog.Tasks()
	for i := range tasks {
		t := &tasks[i]
		if done[t.ID] {
			continue
		}
		day, ok := weekdayOf(t)
		if !ok || day > time.Thursday {
			continue
		}
		if today > int(day) {
			out = append(out, t)
		}
	}
	return out
}

// best returns the highest-scoring candidate; the first maximum in catalog
// order wins so repeated calls are deterministic.
func (r *Recommender) best(cands []*Task, profile *storage.Profile, now time.Time) *Task {
	top := cands[0]
	topScore := score(top, profile, now)
	for _, t := range cands[1:] {
		if s := score(t, profile, now); s > topScore {
			top = t
			topScore = s
		}
	}
	return top
}

func score(t *Task, profile *storage.Profile, now time.Time) int {
	s := 0

	hour := now.Hour()
	if (hour < 12 && t.TitleContains("morning")) || (hour >= 17 && t.TitleContains("night")) {
		s += 20
	}

	if profile != nil {
		if ceiling := EnergyLevel(profile.Energy).SuggestedMaxDuration(); ceiling > 0 {
			switch {
			case t.Duration <= ceiling:
				s += 15
			case t.Duration <= 2*ceiling:
				s += 5
			}
		}

		switch ClassifyHomeSize(profile.Home) {
		case HomeSmall:
			if t.Category == CategorySpeedClean {
				s += 10
			}
		case HomeMedium:
			if t.Category == CategoryDaily {
				s += 10
			}
		case HomeLarge:
			if t.Room != "" {
				s += 10
			}
		}

		switch Struggle(profile.Struggle) {
		case StruggleStarting:
			if len(t.Steps) <= 5 {
				s += 15
			}
		case StruggleFinishing:
			if t.Duration <= 10 {
				s += 15
			}
		case StruggleDeciding:
			s += 10
		}
	}

	if t.Frequency == FrequencyWeekly && (now.Weekday() == time.Saturday || now.Weekday() == time.Sunday) {
		s += 10
	}

	return s
}

// QuickWin suggests a short quest: under five minutes if possible, then a
// speed clean, then anything ten minutes or less, skipping quests already
// done today.
func (r *Recommender) QuickWin(completed map[string]time.Time, now time.Time) *Task {
	done := completedToday(completed, now)

	var short []*Task
	tasks := r.catalog.Tasks()
	for i := range tasks {
		t := &tasks[i]
		if done[t.ID] || t.Duration > 10 {
			continue
		}
		short = append(short, t)
	}
	if len(short) == 0 {
		return nil
	}

	if tiny := filterTasks(short, func(t *Task) bool { return t.Duration <= 5 }); len(tiny) > 0 {
		return r.pick(tiny)
	}
	if speedy := filterTasks(short, func(t *Task) bool { return t.Category == CategorySpeedClean }); len(speedy) > 0 {
		return r.pick(speedy)
	}
	return r.pick(short)
}

// Easiest suggests the lowest-effort quest not yet done today.
func (r *Recommender) Easiest(completed map[string]time.Time, now time.Time) *Task {
	done := completedToday(completed, now)

	var remaining []*Task
	tasks := r.catalog.Tasks()
	for i := range tasks {
		if !done[tasks[i].ID] {
			remaining = append(remaining, &tasks[i])
		}
	}
	if len(remaining) == 0 {
		return nil
	}

	trivial := filterTasks(remaining, func(t *Task) bool {
		return t.Duration <= 5 && (t.Category == CategorySpeedClean || t.Category == CategoryDaily)
	})
	if len(trivial) > 0 {
		return r.pick(trivial)
	}
	if short := filterTasks(remaining, func(t *Task) bool { return t.Duration <= 10 }); len(short) > 0 {
		return r.pick(short)
	}
	return r.pick(remaining)
}

// AdHoc suggests a quest fitting a time budget, optionally scoped to one
// room, preferring speed cleans and dailies.
func (r *Recommender) AdHoc(room RoomType, maxDuration int) *Task {
	var fits []*Task
	tasks := r.catalog.Tasks()
	for i := range tasks {
		t := &tasks[i]
		if t.Duration > maxDuration {
			continue
		}
		if room != "" && t.Room != room {
			continue
		}
		fits = append(fits, t)
	}
	if len(fits) == 0 {
		return nil
	}

	preferred := filterTasks(fits, func(t *Task) bool {
		return t.Category == CategorySpeedClean || t.Category == CategoryDaily
	})
	if len(preferred) > 0 {
		return r.pick(preferred)
	}
	return r.pick(fits)
}

func filterTasks(in []*Task, keep func(*Task) bool) []*Task {
	var out []*Task
	for _, t := range in {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

func (r *Recommender) pick(cands []*Task) *Task {
	return cands[r.rng.Intn(len(cands))]
}
