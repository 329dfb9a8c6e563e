package repository

import (
	"context"

	"github.com/strivetrack/strivetrack-api/internal/database"
	"github.com/strivetrack/strivetrack-api/internal/models"
	"gorm.io/gorm"
)

// GormWeightRepository is a GORM implementation of WeightRepository
type GormWeightRepository struct {
	db *gorm.DB
}

// NewWeightRepository creates a new WeightRepository
func NewWeightRepository(db *gorm.DB) WeightRepository {
	return &GormWeightRepository{db: db}
}

// List returns a user's weight logs, newest first
func (r *GormWeightRepository) List(ctx context.Context, userID string) ([]models.WeightLog, error) {
	var logs []models.WeightLog
	err := r.db.WithContext(ctx).
		Scopes(database.OwnedBy(userID)).
		Order("logged_on DESC, created_at DESC").
		Find(&logs).Error
	return logs, err
}

// Latest returns the most recent weight log of a user
func (r *GormWeightRepository) Latest(ctx context.Context, userID string) (*models.WeightLog, error) {
	var log models.WeightLog
	err := r.db.WithContext(ctx).
		Scopes(database.OwnedBy(userID)).
		Order("logged_on DESC, created_at DESC").
		First(&log).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// Create creates a new log
func (r *GormWeightRepository) Create(ctx context.Context, log *models.WeightLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// FindOwned finds a log owned by userID
func (r *GormWeightRepository) FindOwned(ctx context.Context, id, userID string) (*models.WeightLog, error) {
	var log models.WeightLog
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&log).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

// Update saves a log
func (r *GormWeightRepository) Update(ctx context.Context, log *models.WeightLog) error {
	return r.db.WithContext(ctx).Save(log).Error
}

// Delete removes a log
func (r *GormWeightRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.WeightLog{}).Error
}

// GormGoalRepository is a GORM implementation of GoalRepository
type GormGoalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a new GoalRepository
func NewGoalRepository(db *gorm.DB) GoalRepository {
	return &GormGoalRepository{db: db}
}

// List returns a user's goals, newest first
func (r *GormGoalRepository) List(ctx context.Context, userID string) ([]models.WeightGoal, error) {
	var goals []models.WeightGoal
	err := r.db.WithContext(ctx).
		Scopes(database.OwnedBy(userID)).
		Order("created_at DESC").
		Find(&goals).Error
	return goals, err
}

// CreateActive deactivates the user's other goals and inserts goal as the
// active one in a single transaction.
func (r *GormGoalRepository) CreateActive(ctx context.Context, goal *models.WeightGoal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.WeightGoal{}).
			Where("user_id = ? AND is_active = ?", goal.UserID, true).
			Update("is_active", false).Error
		if err != nil {
			return err
		}

		goal.IsActive = true
		return tx.Create(goal).Error
	})
}

// FindOwned finds a goal owned by userID
func (r *GormGoalRepository) FindOwned(ctx context.Context, id, userID string) (*models.WeightGoal, error) {
	var goal models.WeightGoal
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&goal).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

// Delete removes a goal
func (r *GormGoalRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.WeightGoal{}).Error
}
