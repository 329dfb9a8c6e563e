package achievements

import "github.com/strivetrack/strivetrack-api/internal/models"

// Combo achievement ids, granted when the number of non-combo achievements
// unlocked in one day reaches the threshold.
const (
	ComboSpree    = "combo-spree"
	ComboRampage  = "combo-rampage"
	ComboOverload = "combo-overload"
)

type Combo struct {
	Threshold     int
	AchievementID string
}

// Combos is ordered by ascending threshold.
var Combos = []Combo{
	{Threshold: 3, AchievementID: ComboSpree},
	{Threshold: 5, AchievementID: ComboRampage},
	{Threshold: 10, AchievementID: ComboOverload},
}

// CombosReached returns the combo ids whose threshold count has reached.
func CombosReached(count int) []string {
	var ids []string
	for _, c := range Combos {
		if count >= c.Threshold {
			ids = append(ids, c.AchievementID)
		}
	}
	return ids
}

// Catalog is the seeded achievement reference data.
func Catalog() []models.Achievement {
	return []models.Achievement{
		achievement("first-habit", "First Step", "Create your first habit", "habits", models.RequirementHabitsCreated, 1, 10, models.RarityCommon),
		achievement("habit-builder", "Habit Builder", "Create five habits", "habits", models.RequirementHabitsCreated, 5, 25, models.RarityUncommon),
		achievement("first-check-in", "Checked In", "Complete a habit for the first time", "habits", models.RequirementHabitCompletions, 1, 10, models.RarityCommon),
		achievement("consistency-king", "Consistency King", "Record fifty habit completions", "habits", models.RequirementHabitCompletions, 50, 100, models.RarityRare),
		achievement("streak-3", "Warming Up", "Keep a three day streak", "streaks", models.RequirementStreakDays, 3, 20, models.RarityCommon),
		achievement("streak-7", "Week Warrior", "Keep a seven day streak", "streaks", models.RequirementStreakDays, 7, 50, models.RarityUncommon),
		achievement("streak-30", "Unstoppable", "Keep a thirty day streak", "streaks", models.RequirementStreakDays, 30, 200, models.RarityEpic),
		achievement("nutrition-novice", "Nutrition Novice", "Log your first meal", "nutrition", models.RequirementNutritionLogs, 1, 10, models.RarityCommon),
		achievement("nutrition-tracker", "Macro Master", "Log twenty five meals", "nutrition", models.RequirementNutritionLogs, 25, 50, models.RarityUncommon),
		achievement("weigh-in", "Weigh In", "Record your first weight", "weight", models.RequirementWeightLogs, 1, 10, models.RarityCommon),
		achievement("weight-watcher", "Weight Watcher", "Record ten weigh-ins", "weight", models.RequirementWeightLogs, 10, 40, models.RarityUncommon),
		achievement("first-upload", "Picture Perfect", "Upload your first progress photo", "media", models.RequirementMediaUploads, 1, 15, models.RarityCommon),
		achievement("social-butterfly", "Social Butterfly", "Make three friends", "social", models.RequirementFriends, 3, 30, models.RarityUncommon),
		achievement("daily-dedication", "Daily Dedication", "Complete seven daily challenges", "challenges", models.RequirementDailyChallenges, 7, 50, models.RarityUncommon),
		achievement(ComboSpree, "Achievement Spree", "Unlock three achievements in one day", models.CategoryCombo, models.RequirementUnlockedToday, 3, 25, models.RarityRare),
		achievement(ComboRampage, "Achievement Rampage", "Unlock five achievements in one day", models.CategoryCombo, models.RequirementUnlockedToday, 5, 50, models.RarityEpic),
		achievement(ComboOverload, "Achievement Overload", "Unlock ten achievements in one day", models.CategoryCombo, models.RequirementUnlockedToday, 10, 100, models.RarityLegendary),
	}
}

// DailyChallenges is the seeded daily challenge reference data.
func DailyChallenges() []models.DailyChallenge {
	return []models.DailyChallenge{
		{ID: "hydrate", Title: "Hydrate", Description: "Drink two litres of water", Points: 10},
		{ID: "ten-k-steps", Title: "10k Steps", Description: "Walk ten thousand steps", Points: 20},
		{ID: "no-added-sugar", Title: "Sugar Free", Description: "Skip added sugar for the day", Points: 15},
		{ID: "stretch", Title: "Stretch It Out", Description: "Stretch for fifteen minutes", Points: 10},
		{ID: "early-night", Title: "Early Night", Description: "Be in bed before eleven", Points: 10},
	}
}

func achievement(id, name, description, category string, rt models.RequirementType, value, points int, rarity models.Rarity) models.Achievement {
	return models.Achievement{
		ID:               id,
		Name:             name,
		Description:      description,
		Category:         category,
		RequirementType:  rt,
		RequirementValue: value,
		Points:           points,
		Rarity:           rarity,
	}
}
