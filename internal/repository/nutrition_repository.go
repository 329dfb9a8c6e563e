package repository

import (
	"context"

	"github.com/strivetrack/strivetrack-api/internal/database"
	"github.com/strivetrack/strivetrack-api/internal/models"
	"gorm.io/gorm"
)

// GormNutritionRepository is a GORM implementation of NutritionRepository
type GormNutritionRepository struct {
	db *gorm.DB
}

// NewNutritionRepository creates a new NutritionRepository
func NewNutritionRepository(db *gorm.DB) NutritionRepository {
	return &GormNutritionRepository{db: db}
}

// List returns a user's logs, optionally restricted to one day
func (r *GormNutritionRepository) List(ctx context.Context, userID string, day string) ([]models.NutritionLog, error) {
	query := r.db.WithContext(ctx).Scopes(database.OwnedBy(userID))
	if day != "" {
		query = query.Where("logged_on = ?", day)
	}

	var logs []models.NutritionLog
	err := query.Order("logged_on DESC, created_at DESC").Find(&logs).Error
	return logs, err
}

// Create creates a new log
func (r *GormNutritionRepository) Create(ctx context.Context, log *models.NutritionLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// FindOwned finds a log owned by userID
func (r *GormNutritionRepository) FindOwned(ctx context.Context, id, userID string) (*models.NutritionLog, error) {
	var log models.NutritionLog
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&log).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

// Update saves a log
func (r *GormNutritionRepository) Update(ctx context.Context, log *models.NutritionLog) error {
	return r.db.WithContext(ctx).Save(log).Error
}

// Delete removes a log
func (r *GormNutritionRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.NutritionLog{}).Error
}
