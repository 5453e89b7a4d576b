// Package tracker owns the canonical habit list, user profile, settings and
// achievement state. Every mutation is applied in memory first, then written
// to storage best-effort, then followed by reminder and achievement updates.
//
// A Tracker is not safe for concurrent use; callers serialize access.
package tracker

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/habitburn/internal/achievements"
	"github.com/julianstephens/habitburn/internal/constants"
	"github.com/julianstephens/habitburn/internal/logger"
	"github.com/julianstephens/habitburn/internal/models"
	"github.com/julianstephens/habitburn/internal/reminder"
	"github.com/julianstephens/habitburn/internal/stats"
	"github.com/julianstephens/habitburn/internal/storage"
)

// ErrHabitNotFound is returned by lookups that name a habit that does not exist.
var ErrHabitNotFound = errors.New("habit not found")

type Option func(*Tracker)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

func WithWeekStart(day time.Weekday) Option {
	return func(t *Tracker) { t.weekStart = day }
}

// WithBeforeReset registers a hook run before ResetAllData wipes state,
// typically an automatic backup.
func WithBeforeReset(fn func()) Option {
	return func(t *Tracker) { t.beforeReset = fn }
}

type Tracker struct {
	store       storage.Provider
	reminders   reminder.Scheduler
	now         func() time.Time
	weekStart   time.Weekday
	beforeReset func()

	habits              []models.Habit
	user                models.User
	settings            models.AppSettings
	onboardingCompleted bool
	achievements        achievements.Record
}

// New returns a tracker over store. reminders may be nil, in which case no
// reminders are scheduled. Call Load before use.
func New(store storage.Provider, reminders reminder.Scheduler, opts ...Option) *Tracker {
	t := &Tracker{
		store:     store,
		reminders: reminders,
		now:       time.Now,
		weekStart: time.Sunday,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.habits = []models.Habit{}
	t.user = models.NewUser("", t.now())
	t.settings = models.DefaultAppSettings()
	t.achievements = achievements.NewRecord()
	return t
}

// Load reads every record from storage. A record that is missing or cannot
// be decoded falls back to its default; only an unusable store is an error.
func (t *Tracker) Load() error {
	if _, err := t.store.Keys(); errors.Is(err, storage.ErrNotLoaded) {
		return err
	}
	now := t.now()

	var habits []models.Habit
	if t.loadRecord(constants.RecordHabits, &habits) && habits != nil {
		t.habits = habits
	} else {
		t.habits = []models.Habit{}
	}

	var user models.User
	if t.loadRecord(constants.RecordUser, &user) {
		t.user = user
	} else {
		t.user = models.NewUser("", now)
	}

	settings := models.DefaultAppSettings()
	if !t.loadRecord(constants.RecordSettings, &settings) {
		settings = models.DefaultAppSettings()
	}
	t.settings = settings

	var onboarding bool
	if !t.loadRecord(constants.RecordOnboardingCompleted, &onboarding) {
		onboarding = false
	}
	t.onboardingCompleted = onboarding

	var rec achievements.Record
	if t.loadRecord(constants.RecordAchievements, &rec) && rec.Achievements != nil {
		if reconciled, changed := achievements.Reconcile(rec); changed {
			rec = reconciled
			t.persist(constants.RecordAchievements, rec)
		}
		t.achievements = rec
	} else {
		// First run, or an unreadable record: start from the catalog and save it once.
		t.achievements = achievements.NewRecord()
		t.persist(constants.RecordAchievements, t.achievements)
	}

	return nil
}

// loadRecord decodes key into v and reports whether it succeeded.
func (t *Tracker) loadRecord(key string, v any) bool {
	data, err := t.store.Get(key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("Failed to read record, using default", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		logger.Warn("Failed to decode record, using default", "key", key, "error", err)
		return false
	}
	return true
}

// persist writes v under key. Failures are logged and otherwise ignored: the
// in-memory state stays authoritative for this process.
func (t *Tracker) persist(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logger.Warn("Failed to encode record", "key", key, "error", err)
		return
	}
	if err := t.store.Set(key, data); err != nil {
		logger.Warn("Failed to write record", "key", key, "error", err)
	}
}

func (t *Tracker) saveHabits()   { t.persist(constants.RecordHabits, t.habits) }
func (t *Tracker) saveUser()     { t.persist(constants.RecordUser, t.user) }
func (t *Tracker) saveSettings() { t.persist(constants.RecordSettings, t.settings) }

func (t *Tracker) saveOnboarding() {
	t.persist(constants.RecordOnboardingCompleted, t.onboardingCompleted)
}

func (t *Tracker) saveAchievements() {
	t.persist(constants.RecordAchievements, t.achievements)
}

func (t *Tracker) Now() time.Time          { return t.now() }
func (t *Tracker) WeekStart() time.Weekday { return t.weekStart }

func (t *Tracker) indexOf(id string) int {
	for i := range t.habits {
		if t.habits[i].ID == id {
			return i
		}
	}
	return -1
}

// Habits returns a copy of every habit in insertion order.
func (t *Tracker) Habits() []models.Habit {
	out := make([]models.Habit, len(t.habits))
	for i := range t.habits {
		out[i] = t.habits[i].Clone()
	}
	return out
}

func (t *Tracker) Habit(id string) (models.Habit, bool) {
	if i := t.indexOf(id); i >= 0 {
		return t.habits[i].Clone(), true
	}
	return models.Habit{}, false
}

// FindHabit resolves ref as a habit id, then a unique id prefix, then a
// case-insensitive title.
func (t *Tracker) FindHabit(ref string) (models.Habit, error) {
	ref = strings.TrimSpace(ref)
	if h, ok := t.Habit(ref); ok {
		return h, nil
	}

	var matches []int
	for i := range t.habits {
		if ref != "" && strings.HasPrefix(t.habits[i].ID, ref) {
			matches = append(matches, i)
		}
	}
	if len(matches) == 1 {
		return t.habits[matches[0]].Clone(), nil
	}
	if len(matches) > 1 {
		return models.Habit{}, fmt.Errorf("habit id prefix %q is ambiguous", ref)
	}

	for i := range t.habits {
		if strings.EqualFold(t.habits[i].Title, ref) {
			return t.habits[i].Clone(), nil
		}
	}
	return models.Habit{}, fmt.Errorf("%w: %s", ErrHabitNotFound, ref)
}

func (t *Tracker) CanAddHabit() bool {
	return len(t.habits) < constants.MaxHabits
}

// NewHabit returns an unsaved habit carrying the default reminder time from settings.
func (t *Tracker) NewHabit(title string) models.Habit {
	h := models.NewHabit(title, t.now())
	h.ReminderTime = t.settings.ReminderTime
	return h
}

func (t *Tracker) User() models.User            { return t.user }
func (t *Tracker) Settings() models.AppSettings { return t.settings }
func (t *Tracker) OnboardingCompleted() bool    { return t.onboardingCompleted }

func (t *Tracker) OverallStats() stats.Overall {
	return stats.OverallStats(t.habits, t.now(), t.weekStart)
}

func (t *Tracker) UnlockedAchievements() []models.Achievement {
	return achievements.Unlocked(t.achievements.Achievements)
}

func (t *Tracker) Achievements() []models.Achievement {
	return append([]models.Achievement(nil), t.achievements.Achievements...)
}

func (t *Tracker) RecentAchievements() []models.Achievement {
	return achievements.Recent(t.achievements.Achievements, constants.RecentAchievementsLimit)
}

func (t *Tracker) AchievementProgress() (unlocked, total int) {
	return achievements.Progress(t.achievements.Achievements)
}

// evaluate unlocks any newly satisfied achievements and saves them.
func (t *Tracker) evaluate() []models.Achievement {
	unlocked := achievements.CheckAndUnlock(t.achievements.Achievements, t.habits, t.user, t.now())
	if len(unlocked) > 0 {
		for _, a := range unlocked {
			logger.Info("Achievement unlocked", "id", a.ID, "title", a.Title)
		}
		t.saveAchievements()
	}
	return unlocked
}

func (t *Tracker) scheduleReminder(h models.Habit) {
	if t.reminders == nil || h.ReminderTime == "" || !t.settings.NotificationsEnabled {
		return
	}
	if err := t.reminders.Schedule(h.ID, h.Title, h.ReminderTime); err != nil {
		logger.Warn("Failed to schedule reminder", "habit_id", h.ID, "error", err)
	}
}

func (t *Tracker) cancelReminder(id string) {
	if t.reminders == nil {
		return
	}
	if err := t.reminders.Cancel(id); err != nil {
		logger.Warn("Failed to cancel reminder", "habit_id", id, "error", err)
	}
}

func (t *Tracker) cancelAllReminders() {
	if t.reminders == nil {
		return
	}
	if err := t.reminders.CancelAll(); err != nil {
		logger.Warn("Failed to cancel reminders", "error", err)
	}
}

func (t *Tracker) rescheduleAll() {
	if !t.settings.NotificationsEnabled {
		t.cancelAllReminders()
		return
	}
	for _, h := range t.habits {
		if h.ReminderTime == "" {
			t.cancelReminder(h.ID)
			continue
		}
		t.scheduleReminder(h)
	}
}

// SyncReminders rebuilds the reminder schedule from the current habits and
// settings. Entries for habits that no longer exist are cancelled; an entry
// whose time is unchanged keeps its delivery state.
func (t *Tracker) SyncReminders() {
	if lister, ok := t.reminders.(interface{ Entries() []reminder.Entry }); ok {
		for _, e := range lister.Entries() {
			if t.indexOf(e.HabitID) < 0 {
				t.cancelReminder(e.HabitID)
			}
		}
	}
	t.rescheduleAll()
}
