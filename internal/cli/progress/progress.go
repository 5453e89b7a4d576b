package progress

import (
	"fmt"

	"github.com/julianstephens/habitburn/internal/cli"
	"github.com/julianstephens/habitburn/internal/constants"
	"github.com/julianstephens/habitburn/internal/models"
	"github.com/julianstephens/habitburn/internal/stats"
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	habits := t.Habits()
	now := t.Now()
	overall := t.OverallStats()
	unlocked, total := t.AchievementProgress()

	fmt.Println("Overall:")
	fmt.Printf("  Habits:            %d/%d\n", overall.TotalHabits, constants.MaxHabits)
	fmt.Printf("  Completed today:   %d/%d\n", overall.CompletedToday, overall.TotalHabits)
	fmt.Printf("  Weekly average:    %.0f%%\n", overall.WeeklyAverage*100)
	fmt.Printf("  Best streak:       %d days\n", stats.LongestCurrentStreak(habits, now))
	fmt.Printf("  Total completions: %d\n", stats.TotalCompletions(habits))
	fmt.Printf("  Total XP:          %d\n", stats.TotalExperience(habits))
	fmt.Printf("  Highest level:     %d\n", stats.MaxLevel(habits))
	fmt.Printf("  Achievements:      %d/%d\n", unlocked, total)

	var shown bool
	for _, cat := range models.Categories {
		n := stats.CategoryCompletions(habits, cat)
		if n == 0 {
			continue
		}
		if !shown {
			fmt.Println("\nBy category:")
			shown = true
		}
		fmt.Printf("  %-13s %d\n", cat, n)
	}
	return nil
}

type AchievementsCmd struct {
	Unlocked bool `help:"Only show unlocked achievements."`
	Recent   bool `help:"Only show the most recently unlocked achievements."`
}

func (c *AchievementsCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	var list []models.Achievement
	switch {
	case c.Recent:
		list = t.RecentAchievements()
	case c.Unlocked:
		list = t.UnlockedAchievements()
	default:
		list = t.Achievements()
	}

	unlocked, total := t.AchievementProgress()
	fmt.Printf("Achievements: %d/%d unlocked\n\n", unlocked, total)
	if len(list) == 0 {
		fmt.Println("Nothing unlocked yet.")
		return nil
	}
	for _, a := range list {
		mark := "[ ]"
		when := ""
		if a.IsUnlocked {
			mark = "[x]"
			if a.UnlockedDate != nil {
				when = "  " + a.UnlockedDate.In(t.Now().Location()).Format(constants.DateFormat)
			}
		}
		fmt.Printf("%s %-20s %-9s %s%s\n", mark, a.Title, a.Rarity, a.Requirement.Describe(), when)
	}
	return nil
}
