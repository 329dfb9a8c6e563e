package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/strivetrack/strivetrack-api/internal/constants"
	"github.com/strivetrack/strivetrack-api/internal/models"
	"github.com/strivetrack/strivetrack-api/internal/repository"
	"github.com/strivetrack/strivetrack-api/internal/utils"
)

var (
	ErrWeightNotFound    = errors.New("weight log not found")
	ErrInvalidWeight     = errors.New("weight must be greater than zero and at most 700 kg")
	ErrUnitRequired      = errors.New("unit is required and must be lbs or kg")
	ErrUnitWithoutWeight = errors.New("unit can only be changed together with weight")
)

// WeightService handles weight log business logic
type WeightService struct {
	weightRepo repository.WeightRepository
	userRepo   repository.UserRepository
}

// NewWeightService creates a new WeightService
func NewWeightService(weightRepo repository.WeightRepository, userRepo repository.UserRepository) *WeightService {
	return &WeightService{
		weightRepo: weightRepo,
		userRepo:   userRepo,
	}
}

// LogWeightInput represents input for recording a weight. Unit is mandatory.
type LogWeightInput struct {
	UserID   string
	Weight   float64
	Unit     string
	LoggedOn string
	Note     string
}

// UpdateWeightInput represents input for updating a weight log. Weight and
// Unit must be given together.
type UpdateWeightInput struct {
	Weight   *float64
	Unit     string
	LoggedOn *string
	Note     *string
}

// ListWeights returns the user's weight logs, newest first
func (s *WeightService) ListWeights(ctx context.Context, userID string) ([]models.WeightLog, error) {
	logs, err := s.weightRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list weight logs: %w", err)
	}
	return logs, nil
}

// LogWeight stores both unit representations and the BMI when the user's
// height is known
func (s *WeightService) LogWeight(ctx context.Context, input LogWeightInput) (*models.WeightLog, error) {
	lbs, kg, err := normalizeWeight(input.Weight, input.Unit)
	if err != nil {
		return nil, err
	}
	day, err := dayOrToday(input.LoggedOn)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, lookupError(err, ErrUserNotFound, "user")
	}

	log := &models.WeightLog{
		UserID:    input.UserID,
		WeightLbs: lbs,
		WeightKg:  kg,
		BMI:       utils.BMI(kg, user.HeightCM),
		LoggedOn:  day,
		Note:      input.Note,
	}
	if err := s.weightRepo.Create(ctx, log); err != nil {
		return nil, fmt.Errorf("failed to create weight log: %w", err)
	}
	return log, nil
}

// UpdateWeight updates a log owned by userID, recomputing derived values
func (s *WeightService) UpdateWeight(ctx context.Context, userID, logID string, input UpdateWeightInput) (*models.WeightLog, error) {
	log, err := s.weightRepo.FindOwned(ctx, logID, userID)
	if err != nil {
		return nil, lookupError(err, ErrWeightNotFound, "weight log")
	}

	if input.Weight == nil && input.Unit != "" {
		return nil, ErrUnitWithoutWeight
	}
	if input.Weight != nil {
		lbs, kg, err := normalizeWeight(*input.Weight, input.Unit)
		if err != nil {
			return nil, err
		}

		user, err := s.userRepo.FindByID(ctx, userID)
		if err != nil {
			return nil, lookupError(err, ErrUserNotFound, "user")
		}
		log.WeightLbs = lbs
		log.WeightKg = kg
		log.BMI = utils.BMI(kg, user.HeightCM)
	}
	if input.LoggedOn != nil {
		day, err := dayOrToday(*input.LoggedOn)
		if err != nil {
			return nil, err
		}
		log.LoggedOn = day
	}
	if input.Note != nil {
		log.Note = *input.Note
	}

	if err := s.weightRepo.Update(ctx, log); err != nil {
		return nil, fmt.Errorf("failed to update weight log: %w", err)
	}
	return log, nil
}

// DeleteWeight deletes a log owned by userID
func (s *WeightService) DeleteWeight(ctx context.Context, userID, logID string) error {
	if _, err := s.weightRepo.FindOwned(ctx, logID, userID); err != nil {
		return lookupError(err, ErrWeightNotFound, "weight log")
	}

	if err := s.weightRepo.Delete(ctx, logID); err != nil {
		return fmt.Errorf("failed to delete weight log: %w", err)
	}
	return nil
}

func normalizeWeight(value float64, unit string) (float64, float64, error) {
	u, ok := utils.ParseWeightUnit(strings.ToLower(strings.TrimSpace(unit)))
	if !ok {
		return 0, 0, ErrUnitRequired
	}
	if math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return 0, 0, ErrInvalidWeight
	}
	lbs, kg := utils.NormalizeWeight(value, u)
	if kg <= 0 || kg > constants.MaxWeightKg {
		return 0, 0, ErrInvalidWeight
	}
	return lbs, kg, nil
}
