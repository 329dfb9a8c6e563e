package achievements

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/strivetrack/strivetrack-api/internal/models"
)

func TestEvaluate(t *testing.T) {
	req := Requirement{Type: models.RequirementStreakDays, Value: 7}

	assert.Equal(t, StateLocked, Evaluate(Stats{CurrentStreak: 6}, req))
	assert.Equal(t, StateUnlockable, Evaluate(Stats{CurrentStreak: 7}, req))
	assert.Equal(t, StateUnlockable, Evaluate(Stats{CurrentStreak: 40}, req))
}

func TestEvaluate_UnknownRequirementStaysLocked(t *testing.T) {
	req := Requirement{Type: "marathons_run", Value: 0}
	assert.Equal(t, StateLocked, Evaluate(Stats{}, req))
}

func TestStateFor_UnlockedIsTerminal(t *testing.T) {
	a := models.Achievement{RequirementType: models.RequirementHabitsCreated, RequirementValue: 5}

	assert.Equal(t, StateUnlocked, StateFor(Stats{}, a, true), "held achievements never fall back to locked")
	assert.Equal(t, StateLocked, StateFor(Stats{HabitsCreated: 1}, a, false))
}

func TestProgress(t *testing.T) {
	req := Requirement{Type: models.RequirementWeightLogs, Value: 10}

	cur, target := Progress(Stats{WeightLogs: 4}, req)
	assert.Equal(t, 4, cur)
	assert.Equal(t, 10, target)

	cur, _ = Progress(Stats{WeightLogs: 25}, req)
	assert.Equal(t, 10, cur)
}

func TestCombosReached(t *testing.T) {
	assert.Empty(t, CombosReached(2))
	assert.Equal(t, []string{ComboSpree}, CombosReached(3))
	assert.Equal(t, []string{ComboSpree, ComboRampage}, CombosReached(7))
	assert.Equal(t, []string{ComboSpree, ComboRampage, ComboOverload}, CombosReached(10))
}

func TestCatalog_CombosPresentAndUnique(t *testing.T) {
	ids := map[string]bool{}
	names := map[string]bool{}
	for _, a := range Catalog() {
		require.False(t, ids[a.ID], "duplicate id %s", a.ID)
		require.False(t, names[a.Name], "duplicate name %s", a.Name)
		ids[a.ID] = true
		names[a.Name] = true
		assert.Positive(t, a.Points)
	}

	for _, c := range Combos {
		assert.True(t, ids[c.AchievementID], "combo %s missing from catalog", c.AchievementID)
	}
}
