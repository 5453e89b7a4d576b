// Package stats aggregates derived values across a collection of habits.
// Every function treats an empty collection as zero.
package stats

import (
	"time"

	"github.com/julianstephens/habitburn/internal/models"
)

type Overall struct {
	TotalHabits    int     `json:"total_habits"`
	CompletedToday int     `json:"completed_today"`
	WeeklyAverage  float64 `json:"weekly_average"`
}

func TotalCompletions(habits []models.Habit) int {
	total := 0
	for _, h := range habits {
		total += len(h.Completions)
	}
	return total
}

func TotalExperience(habits []models.Habit) int {
	total := 0
	for _, h := range habits {
		total += h.TotalExperience
	}
	return total
}

// MaxLevel is the highest habit level, or 0 when there are no habits.
func MaxLevel(habits []models.Habit) int {
	best := 0
	for i := range habits {
		best = max(best, habits[i].Level())
	}
	return best
}

func CategoryCompletions(habits []models.Habit, category models.Category) int {
	total := 0
	for _, h := range habits {
		if h.Category == category {
			total += len(h.Completions)
		}
	}
	return total
}

func CompletedToday(habits []models.Habit, now time.Time) int {
	count := 0
	for i := range habits {
		if habits[i].IsCompletedToday(now) {
			count++
		}
	}
	return count
}

// AverageWeeklyCompletion is the mean of each habit's weekly completion percentage.
func AverageWeeklyCompletion(habits []models.Habit, now time.Time, weekStart time.Weekday) float64 {
	if len(habits) == 0 {
		return 0.0
	}
	sum := 0.0
	for i := range habits {
		sum += habits[i].WeeklyCompletionPercentage(now, weekStart)
	}
	return sum / float64(len(habits))
}

func OverallStats(habits []models.Habit, now time.Time, weekStart time.Weekday) Overall {
	return Overall{
		TotalHabits:    len(habits),
		CompletedToday: CompletedToday(habits, now),
		WeeklyAverage:  AverageWeeklyCompletion(habits, now, weekStart),
	}
}

// LongestCurrentStreak is the best current streak across habits.
func LongestCurrentStreak(habits []models.Habit, now time.Time) int {
	best := 0
	for i := range habits {
		best = max(best, habits[i].CurrentStreak(now))
	}
	return best
}
