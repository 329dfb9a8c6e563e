package services

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/strivetrack/strivetrack-api/internal/achievements"
	"github.com/strivetrack/strivetrack-api/internal/models"
)

func TestAchievementService_UnlockAwardsPointsOnce(t *testing.T) {
	env := setupTestEnv(t)
	user := env.register(t, "fifty@example.com")

	require.NoError(t, env.db.Create(&models.Achievement{
		ID:               "fifty-points",
		Name:             "Fifty Points",
		Category:         "habits",
		RequirementType:  models.RequirementHabitsCreated,
		RequirementValue: 1,
		Points:           50,
		Rarity:           models.RarityUncommon,
	}).Error)

	_, err := env.habits.CreateHabit(env.ctx, CreateHabitInput{UserID: user.ID, Name: "Walk"})
	require.NoError(t, err)

	result, err := env.achievements.Unlock(env.ctx, user.ID, "fifty-points")
	require.NoError(t, err)
	assert.Equal(t, 50, result.PointsAwarded)
	assert.Empty(t, result.Combos)
	assert.Equal(t, 50, env.reloadUser(t, user.ID).Points)

	_, err = env.achievements.Unlock(env.ctx, user.ID, "fifty-points")
	assert.ErrorIs(t, err, ErrAlreadyUnlocked)
	assert.Equal(t, 50, env.reloadUser(t, user.ID).Points)
}

func TestAchievementService_UnlockRejections(t *testing.T) {
	env := setupTestEnv(t)
	user := env.register(t, "locked@example.com")

	_, err := env.achievements.Unlock(env.ctx, user.ID, "no-such-achievement")
	assert.ErrorIs(t, err, ErrAchievementNotFound)

	_, err = env.achievements.Unlock(env.ctx, user.ID, "first-habit")
	assert.ErrorIs(t, err, ErrAchievementLocked)

	_, err = env.achievements.Unlock(env.ctx, user.ID, achievements.ComboSpree)
	assert.ErrorIs(t, err, ErrAchievementLocked)

	assert.Zero(t, env.reloadUser(t, user.ID).Points)
}

func TestAchievementService_ComboGrantedOnce(t *testing.T) {
	env := setupTestEnv(t)
	user := env.register(t, "combo@example.com")

	habit, err := env.habits.CreateHabit(env.ctx, CreateHabitInput{UserID: user.ID, Name: "Plank"})
	require.NoError(t, err)
	_, err = env.habits.ToggleCompletion(env.ctx, user.ID, habit.ID, "")
	require.NoError(t, err)
	_, err = env.nutrition.CreateLog(env.ctx, CreateNutritionInput{UserID: user.ID, FoodName: "Oats", MealType: models.MealBreakfast})
	require.NoError(t, err)

	first, err := env.achievements.Unlock(env.ctx, user.ID, "first-habit")
	require.NoError(t, err)
	assert.Empty(t, first.Combos)

	second, err := env.achievements.Unlock(env.ctx, user.ID, "first-check-in")
	require.NoError(t, err)
	assert.Empty(t, second.Combos)

	third, err := env.achievements.Unlock(env.ctx, user.ID, "nutrition-novice")
	require.NoError(t, err)
	require.Len(t, third.Combos, 1)
	assert.Equal(t, achievements.ComboSpree, third.Combos[0].ID)

	assert.Empty(t, env.achievements.CheckCombos(env.ctx, user.ID), "combo is not granted twice")

	var held int64
	require.NoError(t, env.db.Model(&models.UserAchievement{}).
		Where("user_id = ? AND achievement_id = ?", user.ID, achievements.ComboSpree).
		Count(&held).Error)
	assert.EqualValues(t, 1, held)

	// 10 + 10 + 10 for the unlocks, 25 for the spree.
	assert.Equal(t, 55, env.reloadUser(t, user.ID).Points)
}

func TestAchievementService_ConcurrentUnlocksGrantOnce(t *testing.T) {
	env := setupTestEnv(t)
	user := env.register(t, "race@example.com")

	habit, err := env.habits.CreateHabit(env.ctx, CreateHabitInput{UserID: user.ID, Name: "Row"})
	require.NoError(t, err)
	_, err = env.habits.ToggleCompletion(env.ctx, user.ID, habit.ID, "")
	require.NoError(t, err)
	_, err = env.nutrition.CreateLog(env.ctx, CreateNutritionInput{UserID: user.ID, FoodName: "Eggs", MealType: models.MealBreakfast})
	require.NoError(t, err)

	ids := []string{"first-habit", "first-check-in", "nutrition-novice"}
	const workers = 12

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes = map[string]int{}
		failures  []error
	)
	for i := 0; i < workers; i++ {
		for _, id := range ids {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				_, err := env.achievements.Unlock(env.ctx, user.ID, id)
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					successes[id]++
				case !errors.Is(err, ErrAlreadyUnlocked):
					failures = append(failures, err)
				}
			}(id)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			env.achievements.CheckCombos(env.ctx, user.ID)
		}()
	}
	wg.Wait()

	require.Empty(t, failures)
	for _, id := range ids {
		assert.Equal(t, 1, successes[id], id)
	}

	var rows []models.UserAchievement
	require.NoError(t, env.db.Where("user_id = ?", user.ID).Find(&rows).Error)
	perAchievement := map[string]int{}
	for _, r := range rows {
		perAchievement[r.AchievementID]++
	}
	assert.Len(t, rows, len(ids)+1)
	for _, id := range append(ids, achievements.ComboSpree) {
		assert.Equal(t, 1, perAchievement[id], id)
	}

	// 10 + 10 + 10 for the unlocks, 25 for the spree.
	reloaded := env.reloadUser(t, user.ID)
	assert.Equal(t, 55, reloaded.Points)
	assert.Equal(t, 55, reloaded.WeeklyPoints)
}

func TestAchievementService_ListStates(t *testing.T) {
	env := setupTestEnv(t)
	user := env.register(t, "list@example.com")

	_, err := env.habits.CreateHabit(env.ctx, CreateHabitInput{UserID: user.ID, Name: "Yoga"})
	require.NoError(t, err)
	_, err = env.achievements.Unlock(env.ctx, user.ID, "first-habit")
	require.NoError(t, err)

	list, err := env.achievements.List(env.ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, len(achievements.Catalog()), list.Stats.TotalAchievements)
	assert.Equal(t, 1, list.Stats.UnlockedCount)
	assert.Equal(t, 10, list.Stats.TotalPoints)
	assert.Equal(t, 1, list.UserStats.HabitsCreated)

	states := map[string]achievements.State{}
	for _, a := range list.Achievements {
		states[a.ID] = a.State
	}
	assert.Equal(t, achievements.StateUnlocked, states["first-habit"])
	assert.Equal(t, achievements.StateLocked, states["habit-builder"])
}
