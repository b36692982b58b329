package storage

import "time"

// Profile is the single per-installation user record. Enum-like fields
// (energy, struggle, home size) are kept as plain strings here; the engine
// package owns the valid value sets.
type Profile struct {
	Onboarded bool `json:"onboarded"`

	Feeling  string `json:"feeling,omitempty"`
	Struggle string `json:"struggle,omitempty"`
	Energy   string `json:"energy,omitempty"`
	Tone     string `json:"tone,omitempty"`

	Home HomeConfig `json:"home"`

	TasksCompleted      int `json:"tasksCompleted"`
	TotalMinutesCleaned int `json:"totalMinutesCleaned"`
	CurrentStreak       int `json:"currentStreak"`
	LongestStreak       int `json:"longestStreak"`

	TotalPoints           int        `json:"totalPoints"`
	WeeklyPoints          int        `json:"weeklyPoints"`
	WeeklyPointsResetDate *time.Time `json:"weeklyPointsResetDate,omitempty"`

	HasCommunityAccess      bool       `json:"hasCommunityAccess"`
	IsCommunityAccessActive bool       `json:"isCommunityAccessActive"`
	CommunityUnlockDate     *time.Time `json:"communityUnlockDate,omitempty"`

	// LastActiveDate is the calendar day ("2006-01-02") of the most recent
	// completion, used for streak bookkeeping.
	LastActiveDate string `json:"lastActiveDate,omitempty"`

	AuthID string `json:"authId,omitempty"`
}

type HomeConfig struct {
	Bedrooms     int     `json:"bedrooms"`
	Bathrooms    float64 `json:"bathrooms"`
	FloorCount   string  `json:"floorCount,omitempty"`
	WindowAmount string  `json:"windowAmount,omitempty"`
	HasPets      bool    `json:"hasPets"`
	Rooms        []Room  `json:"rooms"`
}

type Room struct {
	ID              string     `json:"id"`
	Type            string     `json:"type"`
	Name            string     `json:"name"`
	LastCleaned     *time.Time `json:"lastCleaned,omitempty"`
	LastDeepCleaned *time.Time `json:"lastDeepCleaned,omitempty"`
}

// QuestProgress is the lightweight in-flight checkpoint written on start and
// each step advance, and cleared on pause, skip, and completion.
type QuestProgress struct {
	TaskID    string    `json:"taskId"`
	StepIndex int       `json:"stepIndex"`
	RoomID    string    `json:"roomId,omitempty"`
	StartedAt time.Time `json:"startedAt"`
}

// PausedTask is the at-most-one paused checkpoint. Title, category, and
// duration are denormalized snapshots of the catalog task.
type PausedTask struct {
	TaskID        string    `json:"taskId"`
	TaskTitle     string    `json:"taskTitle"`
	Category      string    `json:"category"`
	Duration      int       `json:"duration"`
	StepIndex     int       `json:"stepIndex"`
	RoomID        string    `json:"roomId,omitempty"`
	PausedAt      time.Time `json:"pausedAt"`
	StepStartedAt time.Time `json:"stepStartedAt"`
	TaskStartedAt time.Time `json:"taskStartedAt"`
}

type CleaningSession struct {
	ID            int64     `json:"id"`
	TaskID        string    `json:"taskId"`
	TaskTitle     string    `json:"taskTitle"`
	Date          string    `json:"date"` // calendar day, "2006-01-02"
	ActualMinutes int       `json:"actualMinutes"`
	CompletedAt   time.Time `json:"completedAt"`
}
