package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitburn/internal/constants"
	"github.com/julianstephens/habitburn/internal/utils"
)

// HabitGoal is a streak target attached to a habit. Goals are independent of achievements.
type HabitGoal struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	TargetStreak  int        `json:"target_streak"`
	IsCompleted   bool       `json:"is_completed"`
	CompletedDate *time.Time `json:"completed_date,omitempty"`
}

func NewHabitGoal(title string, targetStreak int) HabitGoal {
	return HabitGoal{
		ID:           uuid.New().String(),
		Title:        title,
		TargetStreak: targetStreak,
	}
}

type Habit struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Icon            string      `json:"icon"`
	Category        Category    `json:"category"`
	Difficulty      Difficulty  `json:"difficulty"`
	Frequency       Frequency   `json:"frequency"`
	ReminderTime    string      `json:"reminder_time,omitempty"` // HH:MM format
	Notes           string      `json:"notes"`
	Color           string      `json:"color"`
	CreatedAt       time.Time   `json:"created_at"`
	Completions     []time.Time `json:"completions"`
	Goals           []HabitGoal `json:"goals"`
	TotalExperience int         `json:"total_experience"`
}

// NewHabit returns a habit with a fresh id and the default icon, category,
// difficulty, frequency and color.
func NewHabit(title string, now time.Time) Habit {
	return Habit{
		ID:          uuid.New().String(),
		Title:       title,
		Icon:        constants.DefaultHabitIcon,
		Category:    CategoryPersonal,
		Difficulty:  DifficultyMedium,
		Frequency:   FrequencyDaily,
		Color:       constants.DefaultHabitColor,
		CreatedAt:   now,
		Completions: []time.Time{},
		Goals:       []HabitGoal{},
	}
}

func (h *Habit) Validate() error {
	if strings.TrimSpace(h.Title) == "" {
		return fmt.Errorf("habit title cannot be empty")
	}
	if !h.Category.Valid() {
		return fmt.Errorf("invalid category: %q", h.Category)
	}
	if h.Difficulty.ExperiencePoints() == 0 {
		return fmt.Errorf("invalid difficulty: %q", h.Difficulty)
	}
	if h.Frequency.Description() == "" {
		return fmt.Errorf("invalid frequency: %q", h.Frequency)
	}
	if h.ReminderTime != "" && !utils.ValidateTimeFormat(h.ReminderTime) {
		return fmt.Errorf("invalid reminder time format (expected HH:MM): %s", h.ReminderTime)
	}
	for _, g := range h.Goals {
		if g.TargetStreak < 1 {
			return fmt.Errorf("goal %q must target a streak of at least 1 day", g.Title)
		}
	}
	return nil
}

// IsCompletedToday reports whether any completion falls on now's calendar day.
func (h *Habit) IsCompletedToday(now time.Time) bool {
	return h.IsCompletedOn(now, now)
}

// IsCompletedOn reports whether any completion falls on day's calendar day,
// evaluated in now's location.
func (h *Habit) IsCompletedOn(day, now time.Time) bool {
	day = day.In(now.Location())
	for _, c := range h.Completions {
		if utils.SameDay(c, day) {
			return true
		}
	}
	return false
}

// MarkCompleted appends now unless today is already completed.
func (h *Habit) MarkCompleted(now time.Time) {
	if h.IsCompletedToday(now) {
		return
	}
	h.Completions = append(h.Completions, now)
}

// UnmarkCompleted removes every completion on now's calendar day.
func (h *Habit) UnmarkCompleted(now time.Time) {
	kept := make([]time.Time, 0, len(h.Completions))
	for _, c := range h.Completions {
		if !utils.SameDay(c, now) {
			kept = append(kept, c)
		}
	}
	h.Completions = kept
}

// ToggleCompletion flips today's completion and reports whether the habit is
// now completed. Completing awards the difficulty's XP; un-completing never
// takes it back.
func (h *Habit) ToggleCompletion(now time.Time) bool {
	if h.IsCompletedToday(now) {
		h.UnmarkCompleted(now)
		return false
	}
	h.MarkCompleted(now)
	h.TotalExperience += h.Difficulty.ExperiencePoints()
	return true
}

// CurrentStreak counts consecutive completed days walking back from today.
// Today must be completed for the streak to be nonzero.
func (h *Habit) CurrentStreak(now time.Time) int {
	loc := now.Location()
	days := make(map[string]bool, len(h.Completions))
	for _, c := range h.Completions {
		days[utils.DayKey(c, loc)] = true
	}

	streak := 0
	for day := utils.StartOfDay(now); days[utils.DayKey(day, loc)]; day = utils.AddDays(day, -1) {
		streak++
	}
	return streak
}

func (h *Habit) countSince(start, now time.Time) int {
	count := 0
	for _, c := range h.Completions {
		if !c.Before(start) && !c.After(now) {
			count++
		}
	}
	return count
}

// WeeklyCompletions counts completions in [start of the current week, now].
func (h *Habit) WeeklyCompletions(now time.Time, weekStart time.Weekday) int {
	return h.countSince(utils.StartOfWeek(now, weekStart), now)
}

// MonthlyCompletions counts completions in [start of the current month, now].
func (h *Habit) MonthlyCompletions(now time.Time) int {
	return h.countSince(utils.StartOfMonth(now), now)
}

// WeeklyCompletionPercentage is weekly completions over the days elapsed so far
// this week (today included, at most 7).
func (h *Habit) WeeklyCompletionPercentage(now time.Time, weekStart time.Weekday) float64 {
	start := utils.StartOfWeek(now, weekStart)
	elapsed := min(utils.DaysBetween(start, now)+1, 7)
	if elapsed <= 0 {
		return 0.0
	}
	return float64(h.WeeklyCompletions(now, weekStart)) / float64(elapsed)
}

// Last7DaysStatus returns completion flags for the last seven days, oldest first.
// Index 6 is today.
func (h *Habit) Last7DaysStatus(now time.Time) []bool {
	today := utils.StartOfDay(now)
	status := make([]bool, 7)
	for i := 0; i < 7; i++ {
		status[6-i] = h.IsCompletedOn(utils.AddDays(today, -i), now)
	}
	return status
}

// Level is max(1, totalExperience/100).
func (h *Habit) Level() int {
	return max(1, h.TotalExperience/constants.ExperiencePerLevel)
}

// ExperienceToNextLevel is the XP left until the next 100-point boundary.
func (h *Habit) ExperienceToNextLevel() int {
	next := (h.TotalExperience/constants.ExperiencePerLevel + 1) * constants.ExperiencePerLevel
	return next - h.TotalExperience
}

// LevelProgress is the filled fraction of the current 100-point band, in [0, 1).
func (h *Habit) LevelProgress() float64 {
	return float64(h.TotalExperience%constants.ExperiencePerLevel) / float64(constants.ExperiencePerLevel)
}

// ShouldCompleteToday reports whether the habit's frequency schedules today.
func (h *Habit) ShouldCompleteToday(now time.Time) bool {
	switch h.Frequency {
	case FrequencyWeekdays:
		wd := now.Weekday()
		return wd >= time.Monday && wd <= time.Friday
	case FrequencyWeekends:
		wd := now.Weekday()
		return wd == time.Saturday || wd == time.Sunday
	default:
		return true
	}
}

// ActiveGoals returns the goals not yet completed.
func (h *Habit) ActiveGoals() []HabitGoal {
	var active []HabitGoal
	for _, g := range h.Goals {
		if !g.IsCompleted {
			active = append(active, g)
		}
	}
	return active
}

// CheckGoalCompletion completes every open goal whose target the current
// streak has reached. It returns the number of goals completed by this call.
func (h *Habit) CheckGoalCompletion(now time.Time) int {
	streak := h.CurrentStreak(now)
	completed := 0
	for i := range h.Goals {
		if !h.Goals[i].IsCompleted && h.Goals[i].TargetStreak <= streak {
			stamp := now
			h.Goals[i].IsCompleted = true
			h.Goals[i].CompletedDate = &stamp
			completed++
		}
	}
	return completed
}

// Clone returns a deep copy so callers never share completion or goal slices.
func (h Habit) Clone() Habit {
	completions := make([]time.Time, len(h.Completions))
	copy(completions, h.Completions)
	goals := make([]HabitGoal, len(h.Goals))
	copy(goals, h.Goals)
	h.Completions = completions
	h.Goals = goals
	return h
}

// SampleHabits returns the demo habits used to seed an empty tracker.
func SampleHabits(now time.Time) []Habit {
	samples := []struct {
		title      string
		icon       string
		category   Category
		difficulty Difficulty
	}{
		{"Read Books", "book.fill", CategoryLearning, DifficultyEasy},
		{"Drink Water", "drop.fill", CategoryHealth, DifficultyEasy},
		{"Exercise", "figure.run", CategoryFitness, DifficultyMedium},
		{"Meditate", "leaf.fill", CategoryMindfulness, DifficultyMedium},
		{"Write Journal", "pencil", CategoryPersonal, DifficultyEasy},
	}

	habits := make([]Habit, 0, len(samples))
	for _, s := range samples {
		h := NewHabit(s.title, now)
		h.Icon = s.icon
		h.Category = s.category
		h.Difficulty = s.difficulty
		habits = append(habits, h)
	}
	return habits
}
