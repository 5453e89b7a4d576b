// Package achievements evaluates the achievement catalog against habit state.
//
// An achievement moves from locked to unlocked exactly once. Evaluation only
// considers locked entries, so deleting habits can never re-lock anything.
package achievements

import (
	"sort"
	"time"

	"github.com/julianstephens/habitburn/internal/constants"
	"github.com/julianstephens/habitburn/internal/models"
	"github.com/julianstephens/habitburn/internal/stats"
	"github.com/julianstephens/habitburn/internal/utils"
)

// Record is the persisted form of the unlock-state list.
type Record struct {
	CatalogVersion int                  `json:"catalog_version"`
	Achievements   []models.Achievement `json:"achievements"`
}

func NewRecord() Record {
	return Record{
		CatalogVersion: constants.AchievementCatalogVersion,
		Achievements:   DefaultCatalog(),
	}
}

// Satisfied reports whether req holds for the given habits and user.
func Satisfied(req models.Requirement, habits []models.Habit, user models.User, now time.Time) bool {
	switch r := req.(type) {
	case models.FirstHabitRequirement:
		return len(habits) > 0
	case models.StreakRequirement:
		return stats.LongestCurrentStreak(habits, now) >= r.Days
	case models.TotalCompletionsRequirement:
		return stats.TotalCompletions(habits) >= r.Count
	case models.AllHabitsOneDayRequirement:
		return len(habits) > 0 && stats.CompletedToday(habits, now) == len(habits)
	case models.WeekPerfectRequirement:
		return perfectPeriod(habits, 7, now)
	case models.MonthPerfectRequirement:
		return perfectPeriod(habits, 30, now)
	case models.ExperiencePointsRequirement:
		return stats.TotalExperience(habits) >= r.Points
	case models.LevelRequirement:
		return stats.MaxLevel(habits) >= r.Level
	case models.HabitsCountRequirement:
		return len(habits) >= r.Count
	case models.CategoryMasterRequirement:
		return stats.CategoryCompletions(habits, r.Category) >= constants.CategoryMasterThreshold
	default:
		return false
	}
}

// perfectPeriod is true when every habit has a completion on each of the last
// days calendar days, today included. No habits means no perfect period.
func perfectPeriod(habits []models.Habit, days int, now time.Time) bool {
	if len(habits) == 0 {
		return false
	}
	today := utils.StartOfDay(now)
	for offset := 0; offset < days; offset++ {
		day := utils.AddDays(today, -offset)
		for i := range habits {
			if !habits[i].IsCompletedOn(day, now) {
				return false
			}
		}
	}
	return true
}

// CheckAndUnlock evaluates every locked achievement and unlocks the ones whose
// requirement now holds. It updates list in place and returns copies of the
// newly unlocked entries, in catalog order.
func CheckAndUnlock(list []models.Achievement, habits []models.Habit, user models.User, now time.Time) []models.Achievement {
	var newlyUnlocked []models.Achievement
	for i := range list {
		if list[i].IsUnlocked {
			continue
		}
		if Satisfied(list[i].Requirement, habits, user, now) && list[i].Unlock(now) {
			newlyUnlocked = append(newlyUnlocked, list[i])
		}
	}
	return newlyUnlocked
}

func Unlocked(list []models.Achievement) []models.Achievement {
	var out []models.Achievement
	for _, a := range list {
		if a.IsUnlocked {
			out = append(out, a)
		}
	}
	return out
}

// Recent returns up to n unlocked achievements, newest first.
func Recent(list []models.Achievement, n int) []models.Achievement {
	out := Unlocked(list)
	sort.SliceStable(out, func(i, j int) bool {
		return unlockedAt(out[i]).After(unlockedAt(out[j]))
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func unlockedAt(a models.Achievement) time.Time {
	if a.UnlockedDate == nil {
		return time.Time{}
	}
	return *a.UnlockedDate
}

// Progress returns the unlocked and total counts.
func Progress(list []models.Achievement) (unlocked, total int) {
	return len(Unlocked(list)), len(list)
}

// Reconcile brings a persisted record up to the current catalog version.
// Entries are matched by ID. Persisted unlock state always wins and entries no
// longer in the catalog are kept. It reports whether rec changed.
func Reconcile(rec Record) (Record, bool) {
	if rec.CatalogVersion >= constants.AchievementCatalogVersion {
		return rec, false
	}

	known := make(map[string]bool, len(rec.Achievements))
	for _, a := range rec.Achievements {
		known[a.ID] = true
	}
	for _, a := range DefaultCatalog() {
		if !known[a.ID] {
			rec.Achievements = append(rec.Achievements, a)
		}
	}
	rec.CatalogVersion = constants.AchievementCatalogVersion
	return rec, true
}
