package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitburn/internal/models"
	"github.com/julianstephens/habitburn/internal/utils"
)

type HabitFormModel struct {
	Title      string
	Category   models.Category
	Difficulty models.Difficulty
	Frequency  models.Frequency
	Reminder   string
}

func newHabitFormModel(defaults models.Habit) *HabitFormModel {
	return &HabitFormModel{
		Category:   defaults.Category,
		Difficulty: defaults.Difficulty,
		Frequency:  defaults.Frequency,
		Reminder:   defaults.ReminderTime,
	}
}

func newHabitForm(fm *HabitFormModel) *huh.Form {
	categories := make([]huh.Option[models.Category], len(models.Categories))
	for i, c := range models.Categories {
		categories[i] = huh.NewOption(string(c), c)
	}
	difficulties := make([]huh.Option[models.Difficulty], len(models.Difficulties))
	for i, d := range models.Difficulties {
		difficulties[i] = huh.NewOption(fmt.Sprintf("%s (%d XP)", d, d.ExperiencePoints()), d)
	}
	frequencies := make([]huh.Option[models.Frequency], len(models.Frequencies))
	for i, f := range models.Frequencies {
		frequencies[i] = huh.NewOption(string(f), f)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit").
				Value(&fm.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("title cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[models.Category]().
				Title("Category").
				Options(categories...).
				Value(&fm.Category),
			huh.NewSelect[models.Difficulty]().
				Title("Difficulty").
				Options(difficulties...).
				Value(&fm.Difficulty),
			huh.NewSelect[models.Frequency]().
				Title("Frequency").
				Options(frequencies...).
				Value(&fm.Frequency),
			huh.NewInput().
				Title("Reminder (HH:MM)").
				Description("Leave empty for no reminder").
				Value(&fm.Reminder).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" || utils.ValidateTimeFormat(s) {
						return nil
					}
					return errors.New("reminder must be HH:MM")
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

// habit builds the new habit from the submitted form on top of base.
func (fm *HabitFormModel) habit(base models.Habit) models.Habit {
	base.Title = strings.TrimSpace(fm.Title)
	base.Category = fm.Category
	base.Difficulty = fm.Difficulty
	base.Frequency = fm.Frequency
	base.ReminderTime = strings.TrimSpace(fm.Reminder)
	return base
}
