package repository

import (
	"context"

	"github.com/strivetrack/strivetrack-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDailyChallengeRepository is a GORM implementation of DailyChallengeRepository
type GormDailyChallengeRepository struct {
	db *gorm.DB
}

// NewDailyChallengeRepository creates a new DailyChallengeRepository
func NewDailyChallengeRepository(db *gorm.DB) DailyChallengeRepository {
	return &GormDailyChallengeRepository{db: db}
}

// List returns the daily challenge catalog
func (r *GormDailyChallengeRepository) List(ctx context.Context) ([]models.DailyChallenge, error) {
	var challenges []models.DailyChallenge
	err := r.db.WithContext(ctx).Order("id ASC").Find(&challenges).Error
	return challenges, err
}

// FindByID finds a catalog entry
func (r *GormDailyChallengeRepository) FindByID(ctx context.Context, id string) (*models.DailyChallenge, error) {
	var challenge models.DailyChallenge
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&challenge).Error; err != nil {
		return nil, err
	}
	return &challenge, nil
}

// CompletedIDs returns the challenge IDs the user completed on day
func (r *GormDailyChallengeRepository) CompletedIDs(ctx context.Context, userID, day string) (map[string]bool, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.DailyChallengeCompletion{}).
		Where("user_id = ? AND completed_on = ?", userID, day).
		Pluck("daily_challenge_id", &ids).Error
	if err != nil {
		return nil, err
	}

	done := make(map[string]bool, len(ids))
	for _, id := range ids {
		done[id] = true
	}
	return done, nil
}

// Complete records a completion and awards points in one transaction
func (r *GormDailyChallengeRepository) Complete(ctx context.Context, userID string, challenge *models.DailyChallenge, day string) (bool, error) {
	completed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.DailyChallengeCompletion{
			UserID:           userID,
			DailyChallengeID: challenge.ID,
			CompletedOn:      day,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		completed = true
		return addPoints(tx, userID, challenge.Points)
	})
	return completed, err
}
