package tracker

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/habitburn/internal/models"
	"github.com/julianstephens/habitburn/internal/utils"
)

// ToggleResult describes the effect of ToggleCompletion.
type ToggleResult struct {
	Found            bool
	Completed        bool // state after the toggle
	ExperienceGained int
	GoalsCompleted   int
	Unlocked         []models.Achievement
}

// AddResult describes the effect of AddHabit.
type AddResult struct {
	Added    bool
	Unlocked []models.Achievement
}

// AddHabit appends h unless the habit cap is reached. A rejected add changes
// nothing.
func (t *Tracker) AddHabit(h models.Habit) AddResult {
	if !t.CanAddHabit() {
		return AddResult{}
	}
	if h.Completions == nil {
		h.Completions = []time.Time{}
	}
	if h.Goals == nil {
		h.Goals = []models.HabitGoal{}
	}
	t.habits = append(t.habits, h.Clone())
	t.saveHabits()
	t.scheduleReminder(h)
	return AddResult{Added: true, Unlocked: t.evaluate()}
}

// UpdateHabit replaces the stored habit with the same ID and reports whether
// one was found.
func (t *Tracker) UpdateHabit(h models.Habit) bool {
	i := t.indexOf(h.ID)
	if i < 0 {
		return false
	}
	t.habits[i] = h.Clone()
	t.saveHabits()
	t.cancelReminder(h.ID)
	t.scheduleReminder(h)
	return true
}

// DeleteHabit removes the habit and its reminder. Unlocked achievements stay unlocked.
func (t *Tracker) DeleteHabit(id string) bool {
	i := t.indexOf(id)
	if i < 0 {
		return false
	}
	t.habits = append(t.habits[:i], t.habits[i+1:]...)
	t.saveHabits()
	t.cancelReminder(id)
	t.evaluate()
	return true
}

// ToggleCompletion flips today's completion for the habit, checks its goals
// and re-evaluates achievements.
func (t *Tracker) ToggleCompletion(id string) ToggleResult {
	i := t.indexOf(id)
	if i < 0 {
		return ToggleResult{}
	}
	now := t.now()
	h := &t.habits[i]

	before := h.TotalExperience
	res := ToggleResult{Found: true}
	res.Completed = h.ToggleCompletion(now)
	res.ExperienceGained = h.TotalExperience - before
	res.GoalsCompleted = h.CheckGoalCompletion(now)

	t.saveHabits()
	res.Unlocked = t.evaluate()
	return res
}

// AddGoal attaches a streak goal to the habit. A goal already met by the
// current streak completes immediately.
func (t *Tracker) AddGoal(habitID, title string, targetStreak int) (models.HabitGoal, error) {
	i := t.indexOf(habitID)
	if i < 0 {
		return models.HabitGoal{}, fmt.Errorf("%w: %s", ErrHabitNotFound, habitID)
	}
	if strings.TrimSpace(title) == "" {
		title = fmt.Sprintf("%d-day streak", targetStreak)
	}
	if targetStreak < 1 {
		return models.HabitGoal{}, fmt.Errorf("goal target streak must be at least 1, got %d", targetStreak)
	}

	goal := models.NewHabitGoal(title, targetStreak)
	h := &t.habits[i]
	h.Goals = append(h.Goals, goal)
	h.CheckGoalCompletion(t.now())
	t.saveHabits()
	return h.Goals[len(h.Goals)-1], nil
}

// ResetStats clears every habit's completions. Habits, goals and experience
// are kept.
func (t *Tracker) ResetStats() {
	for i := range t.habits {
		t.habits[i].Completions = []time.Time{}
	}
	t.saveHabits()
}

// ResetAllData returns habits, user, settings and onboarding to their
// defaults and cancels every reminder. Achievement unlocks are terminal and
// survive the reset.
func (t *Tracker) ResetAllData() {
	if t.beforeReset != nil {
		t.beforeReset()
	}
	t.habits = []models.Habit{}
	t.user = models.NewUser("", t.now())
	t.settings = models.DefaultAppSettings()
	t.onboardingCompleted = false

	t.saveHabits()
	t.saveUser()
	t.saveSettings()
	t.saveOnboarding()
	t.cancelAllReminders()
}

// LoadSampleData adds the demo habits until the cap is reached and returns
// how many were added.
func (t *Tracker) LoadSampleData() int {
	added := 0
	for _, h := range models.SampleHabits(t.now()) {
		if !t.AddHabit(h).Added {
			break
		}
		added++
	}
	return added
}

func (t *Tracker) UpdateUserName(name string) {
	t.user.Name = strings.TrimSpace(name)
	t.saveUser()
}

// CompleteOnboarding sets both the user flag and the standalone onboarding record.
func (t *Tracker) CompleteOnboarding() {
	t.user.OnboardingCompleted = true
	t.onboardingCompleted = true
	t.saveUser()
	t.saveOnboarding()
}

// UpdateNotificationSettings toggles reminders globally. Disabling cancels
// every reminder; enabling reschedules all habits that have a reminder time.
func (t *Tracker) UpdateNotificationSettings(enabled bool) {
	t.settings.NotificationsEnabled = enabled
	t.user.NotificationsEnabled = enabled
	t.saveSettings()
	t.saveUser()
	t.rescheduleAll()
}

// SetDefaultReminderTime sets the reminder applied to new habits. An empty
// value clears it.
func (t *Tracker) SetDefaultReminderTime(at string) error {
	if at != "" && !utils.ValidateTimeFormat(at) {
		return fmt.Errorf("invalid reminder time format (expected HH:MM): %s", at)
	}
	t.settings.ReminderTime = at
	t.saveSettings()
	return nil
}

func (t *Tracker) SetTheme(theme string) error {
	theme = strings.TrimSpace(theme)
	if theme == "" {
		return fmt.Errorf("theme cannot be empty")
	}
	t.settings.Theme = theme
	t.saveSettings()
	return nil
}
