package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/strivetrack/strivetrack-api/internal/models"
)

func TestToHabitDTO_WeekAndToday(t *testing.T) {
	// Thursday
	now := time.Date(2026, 10, 15, 18, 0, 0, 0, time.UTC)
	habit := models.Habit{
		ID:   "h1",
		Name: "Run",
		Completions: []models.HabitCompletion{
			{CompletedOn: "2026-10-15"},
			{CompletedOn: "2026-10-13"},
			{CompletedOn: "2026-10-12"},
			{CompletedOn: "2026-10-11"},
		},
	}

	got := ToHabitDTO(habit, now)
	assert.True(t, got.CompletedToday)
	assert.Equal(t, 3, got.CompletionsThisWeek, "Sunday belongs to the previous week")
	assert.Len(t, got.CompletedDates, 4)
}

func TestToHabitDTO_NoCompletions(t *testing.T) {
	got := ToHabitDTO(models.Habit{ID: "h2"}, time.Now())
	assert.False(t, got.CompletedToday)
	assert.Zero(t, got.CompletionsThisWeek)
	assert.NotNil(t, got.CompletedDates)
}
