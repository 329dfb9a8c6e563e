package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/strivetrack/strivetrack-api/internal/models"
	"github.com/strivetrack/strivetrack-api/internal/repository"
)

var (
	ErrNutritionNotFound = errors.New("nutrition log not found")
	ErrFoodNameRequired  = errors.New("food_name is required")
	ErrInvalidMealType   = errors.New("meal_type must be breakfast, lunch, dinner or snack")
	ErrNegativeNutrient  = errors.New("nutrient quantities cannot be negative")
)

// NutritionService handles nutrition log business logic
type NutritionService struct {
	nutritionRepo repository.NutritionRepository
}

// NewNutritionService creates a new NutritionService
func NewNutritionService(nutritionRepo repository.NutritionRepository) *NutritionService {
	return &NutritionService{nutritionRepo: nutritionRepo}
}

// Nutrients are the quantities recorded for one entry
type Nutrients struct {
	Calories float64
	ProteinG float64
	CarbsG   float64
	FatG     float64
	WaterML  float64
}

func (n Nutrients) valid() bool {
	return n.Calories >= 0 && n.ProteinG >= 0 && n.CarbsG >= 0 && n.FatG >= 0 && n.WaterML >= 0
}

// CreateNutritionInput represents input for logging a meal
type CreateNutritionInput struct {
	UserID   string
	FoodName string
	MealType models.MealType
	LoggedOn string
	Nutrients
}

// UpdateNutritionInput represents input for updating a log
type UpdateNutritionInput struct {
	FoodName *string
	MealType *models.MealType
	LoggedOn *string
	Calories *float64
	ProteinG *float64
	CarbsG   *float64
	FatG     *float64
	WaterML  *float64
}

// ListLogs returns the user's logs, optionally for one day
func (s *NutritionService) ListLogs(ctx context.Context, userID, day string) ([]models.NutritionLog, error) {
	if day != "" {
		if _, err := dayOrToday(day); err != nil {
			return nil, err
		}
	}

	logs, err := s.nutritionRepo.List(ctx, userID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to list nutrition logs: %w", err)
	}
	return logs, nil
}

// CreateLog validates and stores a nutrition log
func (s *NutritionService) CreateLog(ctx context.Context, input CreateNutritionInput) (*models.NutritionLog, error) {
	food := strings.TrimSpace(input.FoodName)
	if food == "" {
		return nil, ErrFoodNameRequired
	}
	if !input.MealType.Valid() {
		return nil, ErrInvalidMealType
	}
	if !input.Nutrients.valid() {
		return nil, ErrNegativeNutrient
	}
	day, err := dayOrToday(input.LoggedOn)
	if err != nil {
		return nil, err
	}

	log := &models.NutritionLog{
		UserID:   input.UserID,
		FoodName: food,
		MealType: input.MealType,
		Calories: input.Calories,
		ProteinG: input.ProteinG,
		CarbsG:   input.CarbsG,
		FatG:     input.FatG,
		WaterML:  input.WaterML,
		LoggedOn: day,
	}
	if err := s.nutritionRepo.Create(ctx, log); err != nil {
		return nil, fmt.Errorf("failed to create nutrition log: %w", err)
	}
	return log, nil
}

// UpdateLog updates a log owned by userID
func (s *NutritionService) UpdateLog(ctx context.Context, userID, logID string, input UpdateNutritionInput) (*models.NutritionLog, error) {
	log, err := s.nutritionRepo.FindOwned(ctx, logID, userID)
	if err != nil {
		return nil, lookupError(err, ErrNutritionNotFound, "nutrition log")
	}

	if input.FoodName != nil {
		food := strings.TrimSpace(*input.FoodName)
		if food == "" {
			return nil, ErrFoodNameRequired
		}
		log.FoodName = food
	}
	if input.MealType != nil {
		if !input.MealType.Valid() {
			return nil, ErrInvalidMealType
		}
		log.MealType = *input.MealType
	}
	if input.LoggedOn != nil {
		day, err := dayOrToday(*input.LoggedOn)
		if err != nil {
			return nil, err
		}
		log.LoggedOn = day
	}
	nutrients := Nutrients{
		Calories: pick(input.Calories, log.Calories),
		ProteinG: pick(input.ProteinG, log.ProteinG),
		CarbsG:   pick(input.CarbsG, log.CarbsG),
		FatG:     pick(input.FatG, log.FatG),
		WaterML:  pick(input.WaterML, log.WaterML),
	}
	if !nutrients.valid() {
		return nil, ErrNegativeNutrient
	}
	log.Calories = nutrients.Calories
	log.ProteinG = nutrients.ProteinG
	log.CarbsG = nutrients.CarbsG
	log.FatG = nutrients.FatG
	log.WaterML = nutrients.WaterML

	if err := s.nutritionRepo.Update(ctx, log); err != nil {
		return nil, fmt.Errorf("failed to update nutrition log: %w", err)
	}
	return log, nil
}

// DeleteLog deletes a log owned by userID
func (s *NutritionService) DeleteLog(ctx context.Context, userID, logID string) error {
	if _, err := s.nutritionRepo.FindOwned(ctx, logID, userID); err != nil {
		return lookupError(err, ErrNutritionNotFound, "nutrition log")
	}

	if err := s.nutritionRepo.Delete(ctx, logID); err != nil {
		return fmt.Errorf("failed to delete nutrition log: %w", err)
	}
	return nil
}

func pick(v *float64, current float64) float64 {
	if v == nil {
		return current
	}
	return *v
}
