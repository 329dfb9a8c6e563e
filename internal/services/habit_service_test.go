package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/strivetrack/strivetrack-api/internal/constants"
	"github.com/strivetrack/strivetrack-api/internal/models"
)

func TestHabitService_CreateDefaultsAndValidation(t *testing.T) {
	env := setupTestEnv(t)
	user := env.register(t, "habits@example.com")

	habit, err := env.habits.CreateHabit(env.ctx, CreateHabitInput{UserID: user.ID, Name: "  Run  "})
	require.NoError(t, err)
	assert.Equal(t, "Run", habit.Name)
	assert.Equal(t, 7, habit.WeeklyTarget)
	assert.Equal(t, models.DifficultyMedium, habit.Difficulty)

	_, err = env.habits.CreateHabit(env.ctx, CreateHabitInput{UserID: user.ID, Name: " "})
	assert.ErrorIs(t, err, ErrHabitNameRequired)

	zero := 0
	_, err = env.habits.CreateHabit(env.ctx, CreateHabitInput{UserID: user.ID, Name: "Swim", WeeklyTarget: &zero})
	assert.ErrorIs(t, err, ErrInvalidWeeklyTarget)

	_, err = env.habits.CreateHabit(env.ctx, CreateHabitInput{UserID: user.ID, Name: "Swim", Difficulty: "extreme"})
	assert.ErrorIs(t, err, ErrInvalidDifficulty)
}

func TestHabitService_OtherUsersHabitIsNotFound(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.register(t, "owner@example.com")
	other := env.register(t, "other@example.com")

	habit, err := env.habits.CreateHabit(env.ctx, CreateHabitInput{UserID: owner.ID, Name: "Read"})
	require.NoError(t, err)

	name := "Hijacked"
	_, err = env.habits.UpdateHabit(env.ctx, other.ID, habit.ID, UpdateHabitInput{Name: &name})
	assert.ErrorIs(t, err, ErrHabitNotFound)

	_, err = env.habits.ToggleCompletion(env.ctx, other.ID, habit.ID, "")
	assert.ErrorIs(t, err, ErrHabitNotFound)

	assert.ErrorIs(t, env.habits.DeleteHabit(env.ctx, other.ID, habit.ID), ErrHabitNotFound)

	habits, err := env.habits.ListHabits(env.ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, habits, 1)
	assert.Equal(t, "Read", habits[0].Name)

	habits, err = env.habits.ListHabits(env.ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, habits)
}

func TestHabitService_ToggleCompletion(t *testing.T) {
	env := setupTestEnv(t)
	user := env.register(t, "toggle@example.com")

	habit, err := env.habits.CreateHabit(env.ctx, CreateHabitInput{UserID: user.ID, Name: "Stretch"})
	require.NoError(t, err)

	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format(constants.DateLayout)
	result, err := env.habits.ToggleCompletion(env.ctx, user.ID, habit.ID, yesterday)
	require.NoError(t, err)
	assert.True(t, result.Completed)
	assert.Equal(t, 1, result.CurrentStreak)

	result, err = env.habits.ToggleCompletion(env.ctx, user.ID, habit.ID, "")
	require.NoError(t, err)
	assert.True(t, result.Completed)
	assert.Equal(t, 2, result.CurrentStreak)

	result, err = env.habits.ToggleCompletion(env.ctx, user.ID, habit.ID, "")
	require.NoError(t, err)
	assert.False(t, result.Completed)
	assert.Equal(t, 1, result.CurrentStreak)

	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format(constants.DateLayout)
	_, err = env.habits.ToggleCompletion(env.ctx, user.ID, habit.ID, tomorrow)
	assert.ErrorIs(t, err, ErrFutureCompletion)

	_, err = env.habits.ToggleCompletion(env.ctx, user.ID, habit.ID, "18/10/2026")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestHabitService_DeleteRemovesCompletions(t *testing.T) {
	env := setupTestEnv(t)
	user := env.register(t, "cleanup@example.com")

	habit, err := env.habits.CreateHabit(env.ctx, CreateHabitInput{UserID: user.ID, Name: "Meditate"})
	require.NoError(t, err)
	_, err = env.habits.ToggleCompletion(env.ctx, user.ID, habit.ID, "")
	require.NoError(t, err)

	require.NoError(t, env.habits.DeleteHabit(env.ctx, user.ID, habit.ID))

	var count int64
	require.NoError(t, env.db.Model(&models.HabitCompletion{}).Where("habit_id = ?", habit.ID).Count(&count).Error)
	assert.Zero(t, count)
}
