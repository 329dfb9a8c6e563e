package dto

import (
	"time"

	"github.com/strivetrack/strivetrack-api/internal/constants"
	"github.com/strivetrack/strivetrack-api/internal/models"
	"github.com/strivetrack/strivetrack-api/internal/utils"
)

// HabitDTO represents a habit with its recent completion state
type HabitDTO struct {
	ID                  string                 `json:"id"`
	Name                string                 `json:"name"`
	Description         string                 `json:"description"`
	Category            string                 `json:"category"`
	WeeklyTarget        int                    `json:"weekly_target"`
	Difficulty          models.HabitDifficulty `json:"difficulty"`
	CompletedToday      bool                   `json:"completed_today"`
	CompletionsThisWeek int                    `json:"completions_this_week"`
	CompletedDates      []string               `json:"completed_dates"`
	CreatedAt           time.Time              `json:"created_at"`
	UpdatedAt           time.Time              `json:"updated_at"`
}

// HabitListResponse is the habit list with the user's streak
type HabitListResponse struct {
	Habits        []HabitDTO `json:"habits"`
	CurrentStreak int        `json:"current_streak"`
}

// ToHabitDTO converts a Habit model, counting completions against now. The
// week starts on Monday.
func ToHabitDTO(habit models.Habit, now time.Time) HabitDTO {
	today := utils.StartOfDay(now)
	weekday := (int(today.Weekday()) + 6) % 7
	weekStart := today.AddDate(0, 0, -weekday).Format(constants.DateLayout)
	todayStr := today.Format(constants.DateLayout)

	dto := HabitDTO{
		ID:             habit.ID,
		Name:           habit.Name,
		Description:    habit.Description,
		Category:       habit.Category,
		WeeklyTarget:   habit.WeeklyTarget,
		Difficulty:     habit.Difficulty,
		CompletedDates: make([]string, 0, len(habit.Completions)),
		CreatedAt:      habit.CreatedAt,
		UpdatedAt:      habit.UpdatedAt,
	}
	for _, c := range habit.Completions {
		dto.CompletedDates = append(dto.CompletedDates, c.CompletedOn)
		if c.CompletedOn == todayStr {
			dto.CompletedToday = true
		}
		if c.CompletedOn >= weekStart && c.CompletedOn <= todayStr {
			dto.CompletionsThisWeek++
		}
	}
	return dto
}

// ToHabitListResponse converts habits for the list response
func ToHabitListResponse(habits []models.Habit, streak int, now time.Time) HabitListResponse {
	dtos := make([]HabitDTO, 0, len(habits))
	for _, h := range habits {
		dtos = append(dtos, ToHabitDTO(h, now))
	}
	return HabitListResponse{Habits: dtos, CurrentStreak: streak}
}
