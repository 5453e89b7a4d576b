package achievements

import "github.com/julianstephens/habitburn/internal/models"

// DefaultCatalog returns the fixed achievement catalog, all locked.
// IDs are stable across builds so persisted unlock state can be matched
// against a future catalog version.
func DefaultCatalog() []models.Achievement {
	return []models.Achievement{
		// Getting started
		{
			ID: "first_step", Title: "First Step", Icon: "foot.circle.fill",
			Description: "Create your first habit and begin your journey",
			Requirement: models.FirstHabitRequirement{}, Rarity: models.RarityCommon,
		},
		{
			ID: "getting_started", Title: "Getting Started", Icon: "star.fill",
			Description: "Complete any habit 5 times",
			Requirement: models.TotalCompletionsRequirement{Count: 5}, Rarity: models.RarityCommon,
		},
		{
			ID: "habit_collector", Title: "Habit Collector", Icon: "square.grid.3x3.fill",
			Description: "Track 3 different habits",
			Requirement: models.HabitsCountRequirement{Count: 3}, Rarity: models.RarityCommon,
		},

		// Streaks
		{
			ID: "week_warrior", Title: "Week Warrior", Icon: "calendar.circle.fill",
			Description: "Maintain a 7-day streak on any habit",
			Requirement: models.StreakRequirement{Days: 7}, Rarity: models.RarityRare,
		},
		{
			ID: "month_master", Title: "Month Master", Icon: "calendar.badge.clock",
			Description: "Maintain a 30-day streak on any habit",
			Requirement: models.StreakRequirement{Days: 30}, Rarity: models.RarityEpic,
		},
		{
			ID: "consistency_king", Title: "Consistency King", Icon: "crown.fill",
			Description: "Maintain a 100-day streak on any habit",
			Requirement: models.StreakRequirement{Days: 100}, Rarity: models.RarityLegendary,
		},

		// Perfect periods
		{
			ID: "perfect_day", Title: "Perfect Day", Icon: "checkmark.circle.fill",
			Description: "Complete all your habits in one day",
			Requirement: models.AllHabitsOneDayRequirement{}, Rarity: models.RarityRare,
		},
		{
			ID: "perfect_week", Title: "Perfect Week", Icon: "checkmark.seal.fill",
			Description: "Complete all habits every day for a week",
			Requirement: models.WeekPerfectRequirement{}, Rarity: models.RarityEpic,
		},

		// Experience
		{
			ID: "experience_seeker", Title: "Experience Seeker", Icon: "bolt.circle.fill",
			Description: "Earn 1000 experience points",
			Requirement: models.ExperiencePointsRequirement{Points: 1000}, Rarity: models.RarityRare,
		},
		{
			ID: "level_up_master", Title: "Level Up Master", Icon: "arrow.up.circle.fill",
			Description: "Reach level 10",
			Requirement: models.LevelRequirement{Level: 10}, Rarity: models.RarityEpic,
		},

		// Categories
		{
			ID: "health_guardian", Title: "Health Guardian", Icon: "heart.circle.fill",
			Description: "Complete 50 health-related habits",
			Requirement: models.CategoryMasterRequirement{Category: models.CategoryHealth}, Rarity: models.RarityRare,
		},
		{
			ID: "fitness_fanatic", Title: "Fitness Fanatic", Icon: "figure.run.circle.fill",
			Description: "Complete 50 fitness-related habits",
			Requirement: models.CategoryMasterRequirement{Category: models.CategoryFitness}, Rarity: models.RarityRare,
		},
		{
			ID: "knowledge_seeker", Title: "Knowledge Seeker", Icon: "book.circle.fill",
			Description: "Complete 50 learning-related habits",
			Requirement: models.CategoryMasterRequirement{Category: models.CategoryLearning}, Rarity: models.RarityRare,
		},
		{
			ID: "mindful_soul", Title: "Mindful Soul", Icon: "leaf.circle.fill",
			Description: "Complete 50 mindfulness-related habits",
			Requirement: models.CategoryMasterRequirement{Category: models.CategoryMindfulness}, Rarity: models.RarityRare,
		},
	}
}
