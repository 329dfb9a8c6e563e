package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/strivetrack/strivetrack-api/internal/constants"
	"github.com/strivetrack/strivetrack-api/internal/models"
	"github.com/strivetrack/strivetrack-api/internal/repository"
	"github.com/strivetrack/strivetrack-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrGoalNotFound        = errors.New("goal not found")
	ErrStartWeightRequired = errors.New("start_weight is required when no weight has been logged")
)

// GoalService handles weight goal business logic
type GoalService struct {
	goalRepo   repository.GoalRepository
	weightRepo repository.WeightRepository
}

// NewGoalService creates a new GoalService
func NewGoalService(goalRepo repository.GoalRepository, weightRepo repository.WeightRepository) *GoalService {
	return &GoalService{
		goalRepo:   goalRepo,
		weightRepo: weightRepo,
	}
}

// CreateGoalInput represents input for setting a weight goal. Weights are
// given in Unit.
type CreateGoalInput struct {
	UserID       string
	TargetWeight float64
	StartWeight  *float64
	Unit         string
	TargetDate   *string
}

// ListGoals returns the user's goals, newest first
func (s *GoalService) ListGoals(ctx context.Context, userID string) ([]models.WeightGoal, error) {
	goals, err := s.goalRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	return goals, nil
}

// CreateGoal stores a new active goal and deactivates the previous one
func (s *GoalService) CreateGoal(ctx context.Context, input CreateGoalInput) (*models.WeightGoal, error) {
	_, targetKg, err := normalizeWeight(input.TargetWeight, input.Unit)
	if err != nil {
		return nil, err
	}

	var targetDate *time.Time
	if input.TargetDate != nil && *input.TargetDate != "" {
		d, err := utils.ParseDay(*input.TargetDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		targetDate = &d
	}

	var latestKg *float64
	latest, err := s.weightRepo.Latest(ctx, input.UserID)
	switch {
	case err == nil:
		latestKg = &latest.WeightKg
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("failed to load latest weight: %w", err)
	}

	var startKg float64
	switch {
	case input.StartWeight != nil:
		_, startKg, err = normalizeWeight(*input.StartWeight, input.Unit)
		if err != nil {
			return nil, err
		}
	case latestKg != nil:
		startKg = *latestKg
	default:
		return nil, ErrStartWeightRequired
	}

	currentKg := startKg
	if latestKg != nil {
		currentKg = *latestKg
	}

	goal := &models.WeightGoal{
		UserID:         input.UserID,
		StartWeightKg:  startKg,
		TargetWeightKg: targetKg,
		WeeklyDeltaKg:  WeeklyDelta(currentKg, targetKg, targetDate, time.Now().UTC()),
	}
	if targetDate != nil {
		day := targetDate.Format(constants.DateLayout)
		goal.TargetDate = &day
	}

	if err := s.goalRepo.CreateActive(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}
	return goal, nil
}

// DeleteGoal deletes a goal owned by userID
func (s *GoalService) DeleteGoal(ctx context.Context, userID, goalID string) error {
	if _, err := s.goalRepo.FindOwned(ctx, goalID, userID); err != nil {
		return lookupError(err, ErrGoalNotFound, "goal")
	}

	if err := s.goalRepo.Delete(ctx, goalID); err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	return nil
}

// WeeklyDelta is the kilograms per week needed to reach target by the target
// date. It is nil without a target date or when the date is not in the future.
func WeeklyDelta(currentKg, targetKg float64, targetDate *time.Time, now time.Time) *float64 {
	if targetDate == nil {
		return nil
	}

	days := utils.StartOfDay(*targetDate).Sub(utils.StartOfDay(now)).Hours() / 24
	if days <= 0 {
		return nil
	}

	delta := utils.Round((targetKg-currentKg)/(days/7), 2)
	return &delta
}
