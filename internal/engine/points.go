package engine

import (
	"fmt"

	"github.com/babsant/clean-sanctuary/internal/storage"
)

const (
	// CommunityUnlockPoints is the lifetime total that unlocks the bonfire.
	CommunityUnlockPoints = 300

	// WeeklyActivityMinimum keeps community access active within a week.
	WeeklyActivityMinimum = 100

	// SpeedCleanPointsCap bounds the duration-scaled speed clean award.
	SpeedCleanPointsCap = 200
)

var categoryPoints = map[Category]int{
	CategoryDaily:     100,
	CategoryWeekly:    150,
	CategoryMonthly:   250,
	CategorySeasonal:  250,
	CategoryDeepClean: 300,
	CategoryDeclutter: 200,
	CategoryLaundry:   150,
	CategoryPet:       150,
}

// TaskPoints returns the points awarded for completing a task of the given
// category. Speed cleans scale with duration: 100 base plus 10 per full five
// minutes, capped at 200; an absent duration yields the base. Unknown
// categories award 100.
func TaskPoints(category Category, duration int) int {
	if category == CategorySpeedClean {
		if duration <= 0 {
			return 100
		}
		pts := 100 + (duration/5)*10
		if pts > SpeedCleanPointsCap {
			pts = SpeedCleanPointsCap
		}
		return pts
	}
	if pts, ok := categoryPoints[category]; ok {
		return pts
	}
	return 100
}

// ClassifyHomeSize buckets a home layout. A studio with at most one
// bathroom, or exactly one bedroom with one bathroom, is small; up to two of
// each is medium; anything bigger is large.
func ClassifyHomeSize(home storage.HomeConfig) HomeSize {
	if (home.Bedrooms == 0 && home.Bathrooms <= 1) || (home.Bedrooms == 1 && home.Bathrooms == 1) {
		return HomeSmall
	}
	if home.Bedrooms <= 2 && home.Bathrooms <= 2 {
		return HomeMedium
	}
	return HomeLarge
}

// FormatDuration renders minutes for the status surfaces ("45 min",
// "1 hr 20 min", "2 hr").
func FormatDuration(minutes int) string {
	if minutes < 1 {
		return "under a minute"
	}
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	hrs := minutes / 60
	rem := minutes % 60
	if rem == 0 {
		return fmt.Sprintf("%d hr", hrs)
	}
	return fmt.Sprintf("%d hr %d min", hrs, rem)
}
