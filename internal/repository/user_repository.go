package repository

import (
	"context"
	"time"

	"github.com/strivetrack/strivetrack-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies profile field updates
func (r *GormUserRepository) UpdateProfile(ctx context.Context, id string, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates).Error
}

// ResetWeeklyPoints zeroes weekly points for every user
func (r *GormUserRepository) ResetWeeklyPoints(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("weekly_points <> 0").
		Updates(map[string]interface{}{"weekly_points": 0, "updated_at": time.Now().UTC()})
	return result.RowsAffected, result.Error
}

// addPoints credits both point totals of a user. Callers pass a transaction.
func addPoints(tx *gorm.DB, userID string, points int) error {
	return tx.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"points":        gorm.Expr("points + ?", points),
		"weekly_points": gorm.Expr("weekly_points + ?", points),
	}).Error
}
