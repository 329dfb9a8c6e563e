package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/strivetrack/strivetrack-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAchievementRepository is a GORM implementation of AchievementRepository
type GormAchievementRepository struct {
	db *gorm.DB
}

// NewAchievementRepository creates a new AchievementRepository
func NewAchievementRepository(db *gorm.DB) AchievementRepository {
	return &GormAchievementRepository{db: db}
}

// ListCatalog returns every achievement
func (r *GormAchievementRepository) ListCatalog(ctx context.Context) ([]models.Achievement, error) {
	var catalog []models.Achievement
	err := r.db.WithContext(ctx).Order("category ASC, requirement_value ASC, id ASC").Find(&catalog).Error
	return catalog, err
}

// FindByID finds a catalog entry
func (r *GormAchievementRepository) FindByID(ctx context.Context, id string) (*models.Achievement, error) {
	var achievement models.Achievement
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&achievement).Error; err != nil {
		return nil, err
	}
	return &achievement, nil
}

// HeldIDs returns the achievement IDs the user holds
func (r *GormAchievementRepository) HeldIDs(ctx context.Context, userID string) (map[string]bool, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.UserAchievement{}).
		Where("user_id = ?", userID).
		Pluck("achievement_id", &ids).Error
	if err != nil {
		return nil, err
	}

	held := make(map[string]bool, len(ids))
	for _, id := range ids {
		held[id] = true
	}
	return held, nil
}

// Grant inserts the user achievement and awards its points in one
// transaction. The unique (user_id, achievement_id) index makes concurrent
// grants award points once: the losing insert affects no rows.
func (r *GormAchievementRepository) Grant(ctx context.Context, userID string, achievement *models.Achievement, earnedAt time.Time) (bool, error) {
	granted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.UserAchievement{
			UserID:        userID,
			AchievementID: achievement.ID,
			EarnedAt:      earnedAt,
		})
		if result.Error != nil {
			return fmt.Errorf("failed to insert user achievement: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil
		}

		if err := addPoints(tx, userID, achievement.Points); err != nil {
			return fmt.Errorf("failed to award points: %w", err)
		}
		granted = true
		return nil
	})
	return granted, err
}

// CountEarnedSince counts non-combo achievements earned at or after since
func (r *GormAchievementRepository) CountEarnedSince(ctx context.Context, userID string, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.UserAchievement{}).
		Joins("JOIN achievements ON achievements.id = user_achievements.achievement_id").
		Where("user_achievements.user_id = ? AND user_achievements.earned_at >= ?", userID, since).
		Where("achievements.category <> ?", models.CategoryCombo).
		Count(&count).Error
	return count, err
}

// LogActivity appends an activity log entry
func (r *GormAchievementRepository) LogActivity(ctx context.Context, entry *models.ActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}
