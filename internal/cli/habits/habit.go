package habits

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitburn/internal/cli"
	"github.com/julianstephens/habitburn/internal/constants"
	"github.com/julianstephens/habitburn/internal/models"
	"github.com/julianstephens/habitburn/internal/tracker"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List habits with today's status."`
	Show   HabitShowCmd   `cmd:"" help:"Show a habit's stats, level and goals."`
	Edit   HabitEditCmd   `cmd:"" help:"Edit an existing habit."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit."`
	Toggle HabitToggleCmd `cmd:"" help:"Toggle today's completion of a habit."`
	Goal   struct {
		Add HabitGoalAddCmd `cmd:"" help:"Add a streak goal to a habit."`
	} `cmd:"" help:"Manage habit goals."`
}

type HabitAddCmd struct {
	Title      string `arg:"" help:"Habit title."`
	Category   string `help:"Category (health, fitness, learning, productivity, mindfulness, creativity, social, personal)." default:"personal"`
	Difficulty string `help:"Difficulty (easy, medium, hard)." default:"medium"`
	Frequency  string `help:"Frequency (daily, weekdays, weekends, weekly)." default:"daily"`
	Icon       string `help:"Icon name."`
	Reminder   string `help:"Daily reminder time (HH:MM). Defaults to the reminder in settings."`
	Notes      string `help:"Free-form notes."`
	Color      string `help:"Display color."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	if !t.CanAddHabit() {
		return fmt.Errorf("habit limit reached: at most %d habits can be tracked", constants.MaxHabits)
	}

	h := t.NewHabit(strings.TrimSpace(c.Title))
	if h.Category, err = models.ParseCategory(c.Category); err != nil {
		return err
	}
	if h.Difficulty, err = models.ParseDifficulty(c.Difficulty); err != nil {
		return err
	}
	if h.Frequency, err = models.ParseFrequency(c.Frequency); err != nil {
		return err
	}
	if c.Icon != "" {
		h.Icon = c.Icon
	}
	if c.Reminder != "" {
		h.ReminderTime = c.Reminder
	}
	if c.Color != "" {
		h.Color = c.Color
	}
	h.Notes = c.Notes
	if err := h.Validate(); err != nil {
		return err
	}

	res := t.AddHabit(h)
	if !res.Added {
		return fmt.Errorf("habit limit reached: at most %d habits can be tracked", constants.MaxHabits)
	}
	fmt.Printf("Added habit: %s (%s)\n", h.Title, shortID(h.ID))
	printUnlocked(res.Unlocked)
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	habits := t.Habits()
	if len(habits) == 0 {
		fmt.Println("No habits found. Add one with 'habitburn habit add'.")
		return nil
	}

	now := t.Now()
	done := 0
	for _, h := range habits {
		status := "[ ]"
		if h.IsCompletedToday(now) {
			status = "[x]"
			done++
		} else if !h.ShouldCompleteToday(now) {
			status = "[-]"
		}
		fmt.Printf("%s %-8s %-24s %-12s streak %-3d Lv %d\n",
			status, shortID(h.ID), h.Title, h.Category, h.CurrentStreak(now), h.Level())
	}
	fmt.Printf("\nCompleted today: %d/%d\n", done, len(habits))
	return nil
}

type HabitShowCmd struct {
	Habit string `arg:"" help:"Habit id, id prefix or title."`
}

func (c *HabitShowCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	h, err := t.FindHabit(c.Habit)
	if err != nil {
		return err
	}

	now := t.Now()
	fmt.Printf("%s  [%s]\n", h.Title, h.ID)
	fmt.Printf("  Category:    %s (%s)\n", h.Category, h.Category.Description())
	fmt.Printf("  Difficulty:  %s, %d XP per completion (%s)\n", h.Difficulty, h.Difficulty.ExperiencePoints(), h.Difficulty.Description())
	fmt.Printf("  Frequency:   %s (%s)\n", h.Frequency, h.Frequency.Description())
	if h.ReminderTime != "" {
		fmt.Printf("  Reminder:    %s\n", h.ReminderTime)
	}
	if h.Notes != "" {
		fmt.Printf("  Notes:       %s\n", h.Notes)
	}
	fmt.Printf("  Created:     %s\n", h.CreatedAt.In(now.Location()).Format(constants.DateFormat))

	fmt.Println("\nProgress:")
	fmt.Printf("  Due today:   %v\n", h.ShouldCompleteToday(now))
	fmt.Printf("  Done today:  %v\n", h.IsCompletedToday(now))
	fmt.Printf("  Streak:      %d days\n", h.CurrentStreak(now))
	fmt.Printf("  This week:   %d (%.0f%%)\n", h.WeeklyCompletions(now, t.WeekStart()), h.WeeklyCompletionPercentage(now, t.WeekStart())*100)
	fmt.Printf("  This month:  %d\n", h.MonthlyCompletions(now))
	fmt.Printf("  Last 7 days: %s\n", last7(h.Last7DaysStatus(now)))
	fmt.Printf("  Level:       %d (%d XP, %d to next, %s)\n", h.Level(), h.TotalExperience, h.ExperienceToNextLevel(), progressBar(h.LevelProgress(), 10))

	if len(h.Goals) > 0 {
		fmt.Println("\nGoals:")
		for _, g := range h.Goals {
			mark := "[ ]"
			if g.IsCompleted {
				mark = "[x]"
			}
			fmt.Printf("  %s %s (%d-day streak)\n", mark, g.Title, g.TargetStreak)
		}
	}
	return nil
}

type HabitEditCmd struct {
	Habit      string  `arg:"" help:"Habit id, id prefix or title."`
	Title      *string `help:"New title."`
	Category   *string `help:"New category."`
	Difficulty *string `help:"New difficulty."`
	Frequency  *string `help:"New frequency."`
	Icon       *string `help:"New icon."`
	Reminder   *string `help:"New reminder time (HH:MM); empty clears it."`
	Notes      *string `help:"New notes."`
	Color      *string `help:"New color."`
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	h, err := t.FindHabit(c.Habit)
	if err != nil {
		return err
	}

	if c.Title != nil {
		h.Title = strings.TrimSpace(*c.Title)
	}
	if c.Category != nil {
		if h.Category, err = models.ParseCategory(*c.Category); err != nil {
			return err
		}
	}
	if c.Difficulty != nil {
		if h.Difficulty, err = models.ParseDifficulty(*c.Difficulty); err != nil {
			return err
		}
	}
	if c.Frequency != nil {
		if h.Frequency, err = models.ParseFrequency(*c.Frequency); err != nil {
			return err
		}
	}
	if c.Icon != nil {
		h.Icon = *c.Icon
	}
	if c.Reminder != nil {
		h.ReminderTime = *c.Reminder
	}
	if c.Notes != nil {
		h.Notes = *c.Notes
	}
	if c.Color != nil {
		h.Color = *c.Color
	}
	if err := h.Validate(); err != nil {
		return err
	}

	if !t.UpdateHabit(h) {
		return fmt.Errorf("%w: %s", tracker.ErrHabitNotFound, c.Habit)
	}
	fmt.Printf("Updated habit: %s\n", h.Title)
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit id, id prefix or title."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	h, err := t.FindHabit(c.Habit)
	if err != nil {
		return err
	}
	if !t.DeleteHabit(h.ID) {
		return fmt.Errorf("%w: %s", tracker.ErrHabitNotFound, c.Habit)
	}
	fmt.Printf("Deleted habit: %s\n", h.Title)
	return nil
}

type HabitToggleCmd struct {
	Habit string `arg:"" help:"Habit id, id prefix or title."`
}

func (c *HabitToggleCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	h, err := t.FindHabit(c.Habit)
	if err != nil {
		return err
	}

	res := t.ToggleCompletion(h.ID)
	if !res.Found {
		return fmt.Errorf("%w: %s", tracker.ErrHabitNotFound, c.Habit)
	}
	if res.Completed {
		fmt.Printf("Completed %q for today (+%d XP)\n", h.Title, res.ExperienceGained)
	} else {
		fmt.Printf("Unmarked %q for today\n", h.Title)
	}
	if res.GoalsCompleted > 0 {
		fmt.Printf("Goals completed: %d\n", res.GoalsCompleted)
	}
	printUnlocked(res.Unlocked)
	return nil
}

type HabitGoalAddCmd struct {
	Habit  string `arg:"" help:"Habit id, id prefix or title."`
	Target int    `arg:"" help:"Target streak in days."`
	Title  string `help:"Goal title (default: \"<n>-day streak\")."`
}

func (c *HabitGoalAddCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	h, err := t.FindHabit(c.Habit)
	if err != nil {
		return err
	}
	goal, err := t.AddGoal(h.ID, c.Title, c.Target)
	if err != nil {
		return err
	}
	fmt.Printf("Added goal %q to %s\n", goal.Title, h.Title)
	if goal.IsCompleted {
		fmt.Println("Goal already reached by the current streak.")
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func last7(status []bool) string {
	var b strings.Builder
	for _, done := range status {
		if done {
			b.WriteString("■")
		} else {
			b.WriteString("□")
		}
	}
	return b.String()
}

func progressBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}

func printUnlocked(unlocked []models.Achievement) {
	for _, a := range unlocked {
		fmt.Printf("Achievement unlocked: %s (%s)\n", a.Title, a.Rarity)
	}
}
