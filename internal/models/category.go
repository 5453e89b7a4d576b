package models

import (
	"fmt"
	"strings"
)

type Category string

const (
	CategoryHealth       Category = "Health"
	CategoryFitness      Category = "Fitness"
	CategoryLearning     Category = "Learning"
	CategoryProductivity Category = "Productivity"
	CategoryMindfulness  Category = "Mindfulness"
	CategoryCreativity   Category = "Creativity"
	CategorySocial       Category = "Social"
	CategoryPersonal     Category = "Personal"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryHealth,
	CategoryFitness,
	CategoryLearning,
	CategoryProductivity,
	CategoryMindfulness,
	CategoryCreativity,
	CategorySocial,
	CategoryPersonal,
}

type categoryInfo struct {
	icon        string
	description string
}

var categoryTable = map[Category]categoryInfo{
	CategoryHealth:       {"heart.fill", "Physical and mental wellbeing"},
	CategoryFitness:      {"figure.run", "Exercise and physical activity"},
	CategoryLearning:     {"book.fill", "Knowledge and skill development"},
	CategoryProductivity: {"briefcase.fill", "Work and task management"},
	CategoryMindfulness:  {"leaf.fill", "Meditation and awareness"},
	CategoryCreativity:   {"paintbrush.fill", "Art and creative expression"},
	CategorySocial:       {"person.2.fill", "Relationships and community"},
	CategoryPersonal:     {"person.fill", "Self-improvement and growth"},
}

func (c Category) Icon() string        { return categoryTable[c].icon }
func (c Category) Description() string { return categoryTable[c].description }

func (c Category) Valid() bool {
	_, ok := categoryTable[c]
	return ok
}

// ParseCategory matches a category name case-insensitively.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("invalid category: %s", s)
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// ExperiencePoints is the XP awarded for one completion at this difficulty.
func (d Difficulty) ExperiencePoints() int {
	switch d {
	case DifficultyEasy:
		return 10
	case DifficultyMedium:
		return 20
	case DifficultyHard:
		return 30
	default:
		return 0
	}
}

func (d Difficulty) Description() string {
	switch d {
	case DifficultyEasy:
		return "Simple daily habits"
	case DifficultyMedium:
		return "Moderate effort required"
	case DifficultyHard:
		return "Challenging and rewarding"
	default:
		return ""
	}
}

func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range Difficulties {
		if strings.EqualFold(string(d), strings.TrimSpace(s)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("invalid difficulty: %s", s)
}

type Frequency string

const (
	FrequencyDaily    Frequency = "Daily"
	FrequencyWeekdays Frequency = "Weekdays"
	FrequencyWeekends Frequency = "Weekends"
	FrequencyWeekly   Frequency = "Weekly"
)

var Frequencies = []Frequency{FrequencyDaily, FrequencyWeekdays, FrequencyWeekends, FrequencyWeekly}

func (f Frequency) Description() string {
	switch f {
	case FrequencyDaily:
		return "Every day"
	case FrequencyWeekdays:
		return "Monday to Friday"
	case FrequencyWeekends:
		return "Saturday and Sunday"
	case FrequencyWeekly:
		return "Once per week"
	default:
		return ""
	}
}

func ParseFrequency(s string) (Frequency, error) {
	for _, f := range Frequencies {
		if strings.EqualFold(string(f), strings.TrimSpace(s)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid frequency: %s", s)
}
