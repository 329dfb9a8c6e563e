// Package achievements holds the pure unlock rules: the seeded catalog, the
// derived per-user state of each achievement and the combo thresholds.
package achievements

import "github.com/strivetrack/strivetrack-api/internal/models"

type State string

const (
	StateLocked     State = "locked"
	StateUnlockable State = "unlockable"
	StateUnlocked   State = "unlocked"
)

// Stats is a snapshot of the counters achievements are measured against.
type Stats struct {
	HabitsCreated    int `json:"habits_created"`
	HabitCompletions int `json:"habit_completions"`
	CurrentStreak    int `json:"current_streak"`
	NutritionLogs    int `json:"nutrition_logs"`
	WeightLogs       int `json:"weight_logs"`
	MediaUploads     int `json:"media_uploads"`
	Friends          int `json:"friends"`
	DailyChallenges  int `json:"daily_challenges"`
	UnlockedToday    int `json:"unlocked_today"`
}

type Requirement struct {
	Type  models.RequirementType
	Value int
}

func RequirementOf(a models.Achievement) Requirement {
	return Requirement{Type: a.RequirementType, Value: a.RequirementValue}
}

// Value returns the stat a requirement type measures. Unknown types report false.
func (s Stats) Value(t models.RequirementType) (int, bool) {
	switch t {
	case models.RequirementHabitsCreated:
		return s.HabitsCreated, true
	case models.RequirementHabitCompletions:
		return s.HabitCompletions, true
	case models.RequirementStreakDays:
		return s.CurrentStreak, true
	case models.RequirementNutritionLogs:
		return s.NutritionLogs, true
	case models.RequirementWeightLogs:
		return s.WeightLogs, true
	case models.RequirementMediaUploads:
		return s.MediaUploads, true
	case models.RequirementFriends:
		return s.Friends, true
	case models.RequirementDailyChallenges:
		return s.DailyChallenges, true
	case models.RequirementUnlockedToday:
		return s.UnlockedToday, true
	}
	return 0, false
}

// Evaluate derives locked or unlockable from the stats alone. Whether the
// achievement is already held is layered on by StateFor.
func Evaluate(stats Stats, req Requirement) State {
	current, ok := stats.Value(req.Type)
	if !ok || current < req.Value {
		return StateLocked
	}
	return StateUnlockable
}

// StateFor folds the persisted unlock over the derived state. Unlocked is terminal.
func StateFor(stats Stats, a models.Achievement, held bool) State {
	if held {
		return StateUnlocked
	}
	return Evaluate(stats, RequirementOf(a))
}

// Progress returns the current value capped at the target, and the target.
func Progress(stats Stats, req Requirement) (int, int) {
	current, _ := stats.Value(req.Type)
	if current > req.Value {
		current = req.Value
	}
	return current, req.Value
}
