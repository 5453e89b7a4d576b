package models

import (
	"encoding/json"
	"fmt"
	"time"
)

type Rarity string

const (
	RarityCommon    Rarity = "Common"
	RarityRare      Rarity = "Rare"
	RarityEpic      Rarity = "Epic"
	RarityLegendary Rarity = "Legendary"
)

// RequirementKind tags a Requirement variant in its persisted form.
type RequirementKind string

const (
	RequirementFirstHabit       RequirementKind = "first_habit"
	RequirementStreak           RequirementKind = "streak"
	RequirementTotalCompletions RequirementKind = "total_completions"
	RequirementAllHabitsOneDay  RequirementKind = "all_habits_one_day"
	RequirementWeekPerfect      RequirementKind = "week_perfect"
	RequirementMonthPerfect     RequirementKind = "month_perfect"
	RequirementExperiencePoints RequirementKind = "experience_points"
	RequirementLevel            RequirementKind = "level"
	RequirementHabitsCount      RequirementKind = "habits_count"
	RequirementCategoryMaster   RequirementKind = "category_master"
)

// Requirement is the closed set of unlock conditions. Only the variants in
// this file implement it.
type Requirement interface {
	Kind() RequirementKind
	Describe() string
	requirement()
}

type FirstHabitRequirement struct{}
type StreakRequirement struct{ Days int }
type TotalCompletionsRequirement struct{ Count int }
type AllHabitsOneDayRequirement struct{}
type WeekPerfectRequirement struct{}
type MonthPerfectRequirement struct{}
type ExperiencePointsRequirement struct{ Points int }
type LevelRequirement struct{ Level int }
type HabitsCountRequirement struct{ Count int }
type CategoryMasterRequirement struct{ Category Category }

func (FirstHabitRequirement) Kind() RequirementKind       { return RequirementFirstHabit }
func (StreakRequirement) Kind() RequirementKind           { return RequirementStreak }
func (TotalCompletionsRequirement) Kind() RequirementKind { return RequirementTotalCompletions }
func (AllHabitsOneDayRequirement) Kind() RequirementKind  { return RequirementAllHabitsOneDay }
func (WeekPerfectRequirement) Kind() RequirementKind      { return RequirementWeekPerfect }
func (MonthPerfectRequirement) Kind() RequirementKind     { return RequirementMonthPerfect }
func (ExperiencePointsRequirement) Kind() RequirementKind { return RequirementExperiencePoints }
func (LevelRequirement) Kind() RequirementKind            { return RequirementLevel }
func (HabitsCountRequirement) Kind() RequirementKind      { return RequirementHabitsCount }
func (CategoryMasterRequirement) Kind() RequirementKind   { return RequirementCategoryMaster }

func (FirstHabitRequirement) Describe() string      { return "Create your first habit" }
func (AllHabitsOneDayRequirement) Describe() string { return "Complete all habits in one day" }
func (r LevelRequirement) Describe() string         { return fmt.Sprintf("Reach level %d", r.Level) }

func (r StreakRequirement) Describe() string {
	return fmt.Sprintf("Maintain a %d-day streak", r.Days)
}
func (WeekPerfectRequirement) Describe() string {
	return "Complete all habits for 7 days straight"
}
func (MonthPerfectRequirement) Describe() string {
	return "Complete all habits for 30 days straight"
}
func (r TotalCompletionsRequirement) Describe() string {
	return fmt.Sprintf("Complete %d habits total", r.Count)
}
func (r ExperiencePointsRequirement) Describe() string {
	return fmt.Sprintf("Earn %d experience points", r.Points)
}
func (r HabitsCountRequirement) Describe() string {
	return fmt.Sprintf("Track %d different habits", r.Count)
}
func (r CategoryMasterRequirement) Describe() string {
	return fmt.Sprintf("Master the %s category", r.Category)
}

func (FirstHabitRequirement) requirement()       {}
func (StreakRequirement) requirement()           {}
func (TotalCompletionsRequirement) requirement() {}
func (AllHabitsOneDayRequirement) requirement()  {}
func (WeekPerfectRequirement) requirement()      {}
func (MonthPerfectRequirement) requirement()     {}
func (ExperiencePointsRequirement) requirement() {}
func (LevelRequirement) requirement()            {}
func (HabitsCountRequirement) requirement()      {}
func (CategoryMasterRequirement) requirement()   {}

// requirementJSON is the tagged wire form of a Requirement.
type requirementJSON struct {
	Kind     RequirementKind `json:"kind"`
	Days     int             `json:"days,omitempty"`
	Count    int             `json:"count,omitempty"`
	Points   int             `json:"points,omitempty"`
	Level    int             `json:"level,omitempty"`
	Category Category        `json:"category,omitempty"`
}

func encodeRequirement(r Requirement) (requirementJSON, error) {
	out := requirementJSON{Kind: r.Kind()}
	switch v := r.(type) {
	case FirstHabitRequirement, AllHabitsOneDayRequirement, WeekPerfectRequirement, MonthPerfectRequirement:
	case StreakRequirement:
		out.Days = v.Days
	case TotalCompletionsRequirement:
		out.Count = v.Count
	case ExperiencePointsRequirement:
		out.Points = v.Points
	case LevelRequirement:
		out.Level = v.Level
	case HabitsCountRequirement:
		out.Count = v.Count
	case CategoryMasterRequirement:
		out.Category = v.Category
	default:
		return out, fmt.Errorf("unknown requirement type %T", r)
	}
	return out, nil
}

func decodeRequirement(in requirementJSON) (Requirement, error) {
	switch in.Kind {
	case RequirementFirstHabit:
		return FirstHabitRequirement{}, nil
	case RequirementStreak:
		return StreakRequirement{Days: in.Days}, nil
	case RequirementTotalCompletions:
		return TotalCompletionsRequirement{Count: in.Count}, nil
	case RequirementAllHabitsOneDay:
		return AllHabitsOneDayRequirement{}, nil
	case RequirementWeekPerfect:
		return WeekPerfectRequirement{}, nil
	case RequirementMonthPerfect:
		return MonthPerfectRequirement{}, nil
	case RequirementExperiencePoints:
		return ExperiencePointsRequirement{Points: in.Points}, nil
	case RequirementLevel:
		return LevelRequirement{Level: in.Level}, nil
	case RequirementHabitsCount:
		return HabitsCountRequirement{Count: in.Count}, nil
	case RequirementCategoryMaster:
		if !in.Category.Valid() {
			return nil, fmt.Errorf("invalid category %q in category_master requirement", in.Category)
		}
		return CategoryMasterRequirement{Category: in.Category}, nil
	default:
		return nil, fmt.Errorf("unknown requirement kind %q", in.Kind)
	}
}

type Achievement struct {
	ID           string
	Title        string
	Description  string
	Icon         string
	Requirement  Requirement
	Rarity       Rarity
	IsUnlocked   bool
	UnlockedDate *time.Time
}

type achievementJSON struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Icon         string          `json:"icon"`
	Requirement  requirementJSON `json:"requirement"`
	Rarity       Rarity          `json:"rarity"`
	IsUnlocked   bool            `json:"is_unlocked"`
	UnlockedDate *time.Time      `json:"unlocked_date,omitempty"`
}

func (a Achievement) MarshalJSON() ([]byte, error) {
	req, err := encodeRequirement(a.Requirement)
	if err != nil {
		return nil, err
	}
	return json.Marshal(achievementJSON{
		ID:           a.ID,
		Title:        a.Title,
		Description:  a.Description,
		Icon:         a.Icon,
		Requirement:  req,
		Rarity:       a.Rarity,
		IsUnlocked:   a.IsUnlocked,
		UnlockedDate: a.UnlockedDate,
	})
}

func (a *Achievement) UnmarshalJSON(data []byte) error {
	var raw achievementJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	req, err := decodeRequirement(raw.Requirement)
	if err != nil {
		return fmt.Errorf("achievement %q: %w", raw.Title, err)
	}
	*a = Achievement{
		ID:           raw.ID,
		Title:        raw.Title,
		Description:  raw.Description,
		Icon:         raw.Icon,
		Requirement:  req,
		Rarity:       raw.Rarity,
		IsUnlocked:   raw.IsUnlocked,
		UnlockedDate: raw.UnlockedDate,
	}
	return nil
}

// Unlock marks the achievement unlocked at now. Unlocking twice is a no-op
// and the original date is kept. It reports whether the state changed.
func (a *Achievement) Unlock(now time.Time) bool {
	if a.IsUnlocked {
		return false
	}
	stamp := now
	a.IsUnlocked = true
	a.UnlockedDate = &stamp
	return true
}
