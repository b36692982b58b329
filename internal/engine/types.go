package engine

import "strings"

type Category string

const (
	CategoryDaily      Category = "daily"
	CategoryWeekly     Category = "weekly"
	CategoryMonthly    Category = "monthly"
	CategorySeasonal   Category = "seasonal"
	CategorySpeedClean Category = "speedClean"
	CategoryDeepClean  Category = "deepClean"
	CategoryDeclutter  Category = "declutter"
	CategoryLaundry    Category = "laundry"
	CategoryPet        Category = "pet"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryDaily, CategoryWeekly, CategoryMonthly, CategorySeasonal,
		CategorySpeedClean, CategoryDeepClean, CategoryDeclutter, CategoryLaundry, CategoryPet:
		return true
	default:
		return false
	}
}

type Frequency string

const (
	FrequencyDaily     Frequency = "daily"
	FrequencyWeekly    Frequency = "weekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
	FrequencyAdhoc     Frequency = "adhoc"
)

func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyQuarterly, FrequencyYearly, FrequencyAdhoc:
		return true
	default:
		return false
	}
}

type RoomType string

const (
	RoomBedroom    RoomType = "bedroom"
	RoomBathroom   RoomType = "bathroom"
	RoomKitchen    RoomType = "kitchen"
	RoomLivingRoom RoomType = "livingRoom"
	RoomEntryway   RoomType = "entryway"
	RoomPetArea    RoomType = "petArea"
)

func (r RoomType) IsValid() bool {
	switch r {
	case RoomBedroom, RoomBathroom, RoomKitchen, RoomLivingRoom, RoomEntryway, RoomPetArea:
		return true
	default:
		return false
	}
}

type EnergyLevel string

const (
	EnergyVeryLow EnergyLevel = "veryLow"
	EnergyLow     EnergyLevel = "low"
	EnergyMedium  EnergyLevel = "medium"
	EnergyHigh    EnergyLevel = "high"
)

func (e EnergyLevel) IsValid() bool {
	switch e {
	case EnergyVeryLow, EnergyLow, EnergyMedium, EnergyHigh:
		return true
	default:
		return false
	}
}

// SuggestedMaxDuration maps an energy level to a task-duration ceiling in
// minutes. Unknown levels get no ceiling (0).
func (e EnergyLevel) SuggestedMaxDuration() int {
	switch e {
	case EnergyVeryLow:
		return 5
	case EnergyLow:
		return 10
	case EnergyMedium:
		return 20
	case EnergyHigh:
		return 45
	default:
		return 0
	}
}

type Struggle string

const (
	StruggleStarting  Struggle = "starting"
	StruggleFinishing Struggle = "finishing"
	StruggleDeciding  Struggle = "deciding"
)

func (s Struggle) IsValid() bool {
	switch s {
	case StruggleStarting, StruggleFinishing, StruggleDeciding:
		return true
	default:
		return false
	}
}

type HomeSize string

const (
	HomeSmall  HomeSize = "small"
	HomeMedium HomeSize = "medium"
	HomeLarge  HomeSize = "large"
)

// TaskStep is one instruction inside a catalog task.
type TaskStep struct {
	ID          string
	Instruction string
	Explanation string
	Duration    int // minutes, 0 when unset
}

// Task is an immutable catalog entry, referenced by ID everywhere else.
type Task struct {
	ID        string
	Title     string
	Subtitle  string
	Category  Category
	Frequency Frequency
	Duration  int // nominal minutes
	Steps     []TaskStep
	Room      RoomType // "" when the task targets no specific room
}

// TitleContains reports a case-insensitive substring match on the title.
func (t *Task) TitleContains(sub string) bool {
	return strings.Contains(strings.ToLower(t.Title), strings.ToLower(sub))
}
