package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/strivetrack/strivetrack-api/internal/models"
	"github.com/strivetrack/strivetrack-api/internal/repository"
	"github.com/strivetrack/strivetrack-api/internal/utils"
)

var (
	ErrHabitNotFound       = errors.New("habit not found")
	ErrHabitNameRequired   = errors.New("habit name is required")
	ErrInvalidWeeklyTarget = errors.New("weekly_target must be between 1 and 7")
	ErrInvalidDifficulty   = errors.New("difficulty must be easy, medium or hard")
	ErrFutureCompletion    = errors.New("cannot complete a habit in the future")
)

// HabitService handles habit business logic
type HabitService struct {
	habitRepo repository.HabitRepository
}

// NewHabitService creates a new HabitService
func NewHabitService(habitRepo repository.HabitRepository) *HabitService {
	return &HabitService{habitRepo: habitRepo}
}

// CreateHabitInput represents input for creating a habit
type CreateHabitInput struct {
	UserID       string
	Name         string
	Description  string
	Category     string
	WeeklyTarget *int
	Difficulty   models.HabitDifficulty
}

// UpdateHabitInput represents input for updating a habit
type UpdateHabitInput struct {
	Name         *string
	Description  *string
	Category     *string
	WeeklyTarget *int
	Difficulty   *models.HabitDifficulty
}

// ListHabits returns the user's habits with their completions
func (s *HabitService) ListHabits(ctx context.Context, userID string) ([]models.Habit, error) {
	habits, err := s.habitRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}
	return habits, nil
}

// CreateHabit creates a new habit with validation and defaults
func (s *HabitService) CreateHabit(ctx context.Context, input CreateHabitInput) (*models.Habit, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrHabitNameRequired
	}

	target := 7
	if input.WeeklyTarget != nil {
		target = *input.WeeklyTarget
	}
	if err := validateWeeklyTarget(target); err != nil {
		return nil, err
	}

	difficulty := input.Difficulty
	if difficulty == "" {
		difficulty = models.DifficultyMedium
	}
	if err := validateDifficulty(difficulty); err != nil {
		return nil, err
	}

	habit := &models.Habit{
		UserID:       input.UserID,
		Name:         name,
		Description:  input.Description,
		Category:     input.Category,
		WeeklyTarget: target,
		Difficulty:   difficulty,
	}
	if err := s.habitRepo.Create(ctx, habit); err != nil {
		return nil, fmt.Errorf("failed to create habit: %w", err)
	}
	return habit, nil
}

// UpdateHabit updates a habit owned by userID
func (s *HabitService) UpdateHabit(ctx context.Context, userID, habitID string, input UpdateHabitInput) (*models.Habit, error) {
	habit, err := s.habitRepo.FindOwned(ctx, habitID, userID)
	if err != nil {
		return nil, lookupError(err, ErrHabitNotFound, "habit")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrHabitNameRequired
		}
		habit.Name = name
	}
	if input.Description != nil {
		habit.Description = *input.Description
	}
	if input.Category != nil {
		habit.Category = *input.Category
	}
	if input.WeeklyTarget != nil {
		if err := validateWeeklyTarget(*input.WeeklyTarget); err != nil {
			return nil, err
		}
		habit.WeeklyTarget = *input.WeeklyTarget
	}
	if input.Difficulty != nil {
		if err := validateDifficulty(*input.Difficulty); err != nil {
			return nil, err
		}
		habit.Difficulty = *input.Difficulty
	}

	if err := s.habitRepo.Update(ctx, habit); err != nil {
		return nil, fmt.Errorf("failed to update habit: %w", err)
	}
	return habit, nil
}

// DeleteHabit deletes a habit owned by userID together with its completions
func (s *HabitService) DeleteHabit(ctx context.Context, userID, habitID string) error {
	if _, err := s.habitRepo.FindOwned(ctx, habitID, userID); err != nil {
		return lookupError(err, ErrHabitNotFound, "habit")
	}

	if err := s.habitRepo.Delete(ctx, habitID); err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	return nil
}

// CompletionResult is the outcome of toggling a habit completion
type CompletionResult struct {
	HabitID       string `json:"habit_id"`
	Date          string `json:"date"`
	Completed     bool   `json:"completed"`
	CurrentStreak int    `json:"current_streak"`
}

// ToggleCompletion marks a habit done on day (today when empty), or undoes it
func (s *HabitService) ToggleCompletion(ctx context.Context, userID, habitID, day string) (*CompletionResult, error) {
	day, err := dayOrToday(day)
	if err != nil {
		return nil, err
	}
	if day > utils.Today() {
		return nil, ErrFutureCompletion
	}

	habit, err := s.habitRepo.FindOwned(ctx, habitID, userID)
	if err != nil {
		return nil, lookupError(err, ErrHabitNotFound, "habit")
	}

	completed, err := s.habitRepo.ToggleCompletion(ctx, habit, day)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle completion: %w", err)
	}

	streak, err := s.CurrentStreak(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &CompletionResult{
		HabitID:       habit.ID,
		Date:          day,
		Completed:     completed,
		CurrentStreak: streak,
	}, nil
}

// CurrentStreak counts consecutive days on which the user completed any habit
func (s *HabitService) CurrentStreak(ctx context.Context, userID string) (int, error) {
	days, err := s.habitRepo.CompletionDays(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to load completion days: %w", err)
	}
	return utils.CurrentStreak(days, time.Now().UTC()), nil
}

func validateWeeklyTarget(target int) error {
	if target < 1 || target > 7 {
		return ErrInvalidWeeklyTarget
	}
	return nil
}

func validateDifficulty(d models.HabitDifficulty) error {
	switch d {
	case models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard:
		return nil
	}
	return ErrInvalidDifficulty
}
