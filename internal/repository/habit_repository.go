package repository

import (
	"context"

	"github.com/strivetrack/strivetrack-api/internal/database"
	"github.com/strivetrack/strivetrack-api/internal/models"
	"gorm.io/gorm"
)

// GormHabitRepository is a GORM implementation of HabitRepository
type GormHabitRepository struct {
	db *gorm.DB
}

// NewHabitRepository creates a new HabitRepository
func NewHabitRepository(db *gorm.DB) HabitRepository {
	return &GormHabitRepository{db: db}
}

// List returns a user's habits with their completions
func (r *GormHabitRepository) List(ctx context.Context, userID string) ([]models.Habit, error) {
	var habits []models.Habit
	err := r.db.WithContext(ctx).
		Scopes(database.OwnedBy(userID)).
		Preload("Completions", func(db *gorm.DB) *gorm.DB {
			return db.Order("completed_on DESC")
		}).
		Order("created_at ASC").
		Find(&habits).Error
	return habits, err
}

// Create creates a new habit
func (r *GormHabitRepository) Create(ctx context.Context, habit *models.Habit) error {
	return r.db.WithContext(ctx).Create(habit).Error
}

// FindOwned finds a habit owned by userID
func (r *GormHabitRepository) FindOwned(ctx context.Context, id, userID string) (*models.Habit, error) {
	var habit models.Habit
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&habit).Error; err != nil {
		return nil, err
	}
	return &habit, nil
}

// Update saves a habit
func (r *GormHabitRepository) Update(ctx context.Context, habit *models.Habit) error {
	return r.db.WithContext(ctx).Omit("Completions").Save(habit).Error
}

// Delete removes a habit and its completions
func (r *GormHabitRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("habit_id = ?", id).Delete(&models.HabitCompletion{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Habit{}).Error
	})
}

// ToggleCompletion marks the habit done on day, or removes an existing mark.
// It returns whether the habit is completed on day afterwards.
func (r *GormHabitRepository) ToggleCompletion(ctx context.Context, habit *models.Habit, day string) (bool, error) {
	completed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("habit_id = ? AND completed_on = ?", habit.ID, day).Delete(&models.HabitCompletion{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return nil
		}

		completed = true
		return tx.Create(&models.HabitCompletion{
			HabitID:     habit.ID,
			UserID:      habit.UserID,
			CompletedOn: day,
		}).Error
	})
	return completed, err
}

// CompletionDays returns the distinct days on which the user completed any habit
func (r *GormHabitRepository) CompletionDays(ctx context.Context, userID string) ([]string, error) {
	var days []string
	err := r.db.WithContext(ctx).
		Model(&models.HabitCompletion{}).
		Scopes(database.OwnedBy(userID)).
		Distinct("completed_on").
		Order("completed_on DESC").
		Pluck("completed_on", &days).Error
	return days, err
}
