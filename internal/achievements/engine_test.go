package achievements

import (
	"testing"
	"time"

	"github.com/julianstephens/habitburn/internal/models"
)

var now = time.Date(2025, 12, 31, 15, 0, 0, 0, time.UTC)

func completedOn(h *models.Habit, offsets ...int) {
	for _, o := range offsets {
		h.Completions = append(h.Completions, now.AddDate(0, 0, -o))
	}
}

func rangeOffsets(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func find(t *testing.T, list []models.Achievement, id string) models.Achievement {
	t.Helper()
	for _, a := range list {
		if a.ID == id {
			return a
		}
	}
	t.Fatalf("achievement %q not in list", id)
	return models.Achievement{}
}

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()
	if len(catalog) != 14 {
		t.Fatalf("Expected 14 achievements, got %d", len(catalog))
	}

	seen := make(map[string]bool)
	for _, a := range catalog {
		if seen[a.ID] {
			t.Errorf("Duplicate achievement id %q", a.ID)
		}
		seen[a.ID] = true
		if a.IsUnlocked || a.UnlockedDate != nil {
			t.Errorf("Expected %q to start locked", a.ID)
		}
		if a.Requirement == nil {
			t.Errorf("Expected %q to have a requirement", a.ID)
		}
	}
}

func TestSatisfied(t *testing.T) {
	user := models.NewUser("tester", now)

	health := models.NewHabit("Water", now)
	health.Category = models.CategoryHealth
	completedOn(&health, rangeOffsets(7)...)
	health.TotalExperience = 1000

	other := models.NewHabit("Read", now)
	completedOn(&other, 1)

	tests := []struct {
		name   string
		req    models.Requirement
		habits []models.Habit
		want   bool
	}{
		{"first habit empty", models.FirstHabitRequirement{}, nil, false},
		{"first habit present", models.FirstHabitRequirement{}, []models.Habit{other}, true},
		{"streak reached", models.StreakRequirement{Days: 7}, []models.Habit{health, other}, true},
		{"streak short", models.StreakRequirement{Days: 8}, []models.Habit{health, other}, false},
		{"total completions", models.TotalCompletionsRequirement{Count: 8}, []models.Habit{health, other}, true},
		{"total completions short", models.TotalCompletionsRequirement{Count: 9}, []models.Habit{health, other}, false},
		{"all one day empty", models.AllHabitsOneDayRequirement{}, nil, false},
		{"all one day partial", models.AllHabitsOneDayRequirement{}, []models.Habit{health, other}, false},
		{"all one day", models.AllHabitsOneDayRequirement{}, []models.Habit{health}, true},
		{"week perfect empty", models.WeekPerfectRequirement{}, nil, false},
		{"week perfect", models.WeekPerfectRequirement{}, []models.Habit{health}, true},
		{"week perfect broken", models.WeekPerfectRequirement{}, []models.Habit{health, other}, false},
		{"month perfect empty", models.MonthPerfectRequirement{}, nil, false},
		{"month perfect short", models.MonthPerfectRequirement{}, []models.Habit{health}, false},
		{"experience", models.ExperiencePointsRequirement{Points: 1000}, []models.Habit{health}, true},
		{"experience short", models.ExperiencePointsRequirement{Points: 1001}, []models.Habit{health}, false},
		{"level", models.LevelRequirement{Level: 10}, []models.Habit{health}, true},
		{"level empty", models.LevelRequirement{Level: 1}, nil, false},
		{"habits count", models.HabitsCountRequirement{Count: 2}, []models.Habit{health, other}, true},
		{"habits count short", models.HabitsCountRequirement{Count: 3}, []models.Habit{health, other}, false},
		{"category master short", models.CategoryMasterRequirement{Category: models.CategoryHealth}, []models.Habit{health}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Satisfied(tt.req, tt.habits, user, now); got != tt.want {
				t.Errorf("Satisfied(%#v) = %v, want %v", tt.req, got, tt.want)
			}
		})
	}
}

func TestMonthPerfect(t *testing.T) {
	h := models.NewHabit("Walk", now)
	completedOn(&h, rangeOffsets(30)...)

	if !Satisfied(models.MonthPerfectRequirement{}, []models.Habit{h}, models.User{}, now) {
		t.Error("Expected 30 consecutive days to satisfy month perfect")
	}
}

func TestCheckAndUnlock_StreakBoundary(t *testing.T) {
	list := DefaultCatalog()
	user := models.NewUser("tester", now)

	h := models.NewHabit("Run", now)
	completedOn(&h, 0, 1, 2, 3, 4, 5)

	if h.CurrentStreak(now) != 6 {
		t.Fatalf("setup: expected streak 6, got %d", h.CurrentStreak(now))
	}
	CheckAndUnlock(list, []models.Habit{h}, user, now)
	if find(t, list, "week_warrior").IsUnlocked {
		t.Fatal("Expected Week Warrior to stay locked at streak 6")
	}

	completedOn(&h, 6)
	if h.CurrentStreak(now) != 7 {
		t.Fatalf("setup: expected streak 7, got %d", h.CurrentStreak(now))
	}
	unlocked := CheckAndUnlock(list, []models.Habit{h}, user, now)
	if !find(t, list, "week_warrior").IsUnlocked {
		t.Error("Expected Week Warrior to unlock at streak 7")
	}

	var sawWarrior bool
	for _, a := range unlocked {
		if a.ID == "week_warrior" {
			sawWarrior = true
		}
	}
	if !sawWarrior {
		t.Error("Expected Week Warrior among newly unlocked")
	}
}

func TestCheckAndUnlock_CategoryMasterAcrossHabits(t *testing.T) {
	list := DefaultCatalog()
	a := models.NewHabit("Water", now)
	a.Category = models.CategoryHealth
	b := models.NewHabit("Sleep", now)
	b.Category = models.CategoryHealth
	c := models.NewHabit("Pushups", now)
	c.Category = models.CategoryFitness

	completedOn(&a, rangeOffsets(30)...)
	completedOn(&b, rangeOffsets(19)...)
	completedOn(&c, rangeOffsets(40)...)

	CheckAndUnlock(list, []models.Habit{a, b, c}, models.User{}, now)
	if find(t, list, "health_guardian").IsUnlocked {
		t.Fatal("Expected Health Guardian locked at 49 health completions")
	}

	b.Completions = append(b.Completions, now.AddDate(0, 0, -25))
	CheckAndUnlock(list, []models.Habit{a, b, c}, models.User{}, now)
	if !find(t, list, "health_guardian").IsUnlocked {
		t.Error("Expected Health Guardian to unlock at 50 health completions split across habits")
	}
}

func TestCheckAndUnlock_TerminalAfterDelete(t *testing.T) {
	list := DefaultCatalog()
	h := models.NewHabit("Read", now)

	unlocked := CheckAndUnlock(list, []models.Habit{h}, models.User{}, now)
	if len(unlocked) != 1 || unlocked[0].ID != "first_step" {
		t.Fatalf("Expected only First Step to unlock, got %+v", unlocked)
	}

	unlocked = CheckAndUnlock(list, nil, models.User{}, now.Add(time.Hour))
	if len(unlocked) != 0 {
		t.Errorf("Expected nothing newly unlocked, got %d", len(unlocked))
	}
	first := find(t, list, "first_step")
	if !first.IsUnlocked {
		t.Error("Expected First Step to remain unlocked after habits are deleted")
	}
	if !first.UnlockedDate.Equal(now) {
		t.Errorf("Expected unlock date to be unchanged, got %v", first.UnlockedDate)
	}
}

func TestRecent(t *testing.T) {
	list := DefaultCatalog()
	for i, id := range []string{"first_step", "getting_started", "habit_collector", "perfect_day"} {
		for j := range list {
			if list[j].ID == id {
				list[j].Unlock(now.Add(time.Duration(i) * time.Hour))
			}
		}
	}

	recent := Recent(list, 3)
	want := []string{"perfect_day", "habit_collector", "getting_started"}
	if len(recent) != len(want) {
		t.Fatalf("Expected %d recent achievements, got %d", len(want), len(recent))
	}
	for i := range want {
		if recent[i].ID != want[i] {
			t.Errorf("recent[%d] = %s, want %s", i, recent[i].ID, want[i])
		}
	}

	unlocked, total := Progress(list)
	if unlocked != 4 || total != 14 {
		t.Errorf("Progress() = %d/%d, want 4/14", unlocked, total)
	}
}

func TestReconcile(t *testing.T) {
	old := models.Achievement{ID: "first_step", Title: "First Step", Requirement: models.FirstHabitRequirement{}}
	old.Unlock(now)
	legacy := models.Achievement{ID: "retired", Title: "Retired", Requirement: models.LevelRequirement{Level: 2}}

	rec, changed := Reconcile(Record{CatalogVersion: 0, Achievements: []models.Achievement{old, legacy}})
	if !changed {
		t.Fatal("Expected an outdated record to change")
	}
	if len(rec.Achievements) != 15 {
		t.Errorf("Expected 14 catalog entries plus 1 retired, got %d", len(rec.Achievements))
	}
	if !find(t, rec.Achievements, "first_step").IsUnlocked {
		t.Error("Expected persisted unlock state to survive reconcile")
	}
	find(t, rec.Achievements, "retired")

	if _, changed := Reconcile(rec); changed {
		t.Error("Expected a current record to be left alone")
	}
}
