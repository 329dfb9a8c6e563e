package repository

import (
	"context"
	"time"

	"github.com/strivetrack/strivetrack-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCompetitionRepository is a GORM implementation of CompetitionRepository
type GormCompetitionRepository struct {
	db *gorm.DB
}

// NewCompetitionRepository creates a new CompetitionRepository
func NewCompetitionRepository(db *gorm.DB) CompetitionRepository {
	return &GormCompetitionRepository{db: db}
}

// ListActive returns active competitions with participants
func (r *GormCompetitionRepository) ListActive(ctx context.Context) ([]models.Competition, error) {
	var competitions []models.Competition
	err := r.db.WithContext(ctx).
		Preload("Participants").
		Where("status = ?", models.CompetitionActive).
		Order("created_at DESC").
		Find(&competitions).Error
	return competitions, err
}

// Create creates a competition and joins its creator
func (r *GormCompetitionRepository) Create(ctx context.Context, competition *models.Competition) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Participants").Create(competition).Error; err != nil {
			return err
		}

		participant := models.CompetitionParticipant{
			CompetitionID: competition.ID,
			UserID:        competition.CreatorID,
			JoinedAt:      time.Now().UTC(),
		}
		if err := tx.Create(&participant).Error; err != nil {
			return err
		}
		competition.Participants = []models.CompetitionParticipant{participant}
		return nil
	})
}

// FindByID finds a competition with participants
func (r *GormCompetitionRepository) FindByID(ctx context.Context, id string) (*models.Competition, error) {
	var competition models.Competition
	if err := r.db.WithContext(ctx).Preload("Participants").Where("id = ?", id).First(&competition).Error; err != nil {
		return nil, err
	}
	return &competition, nil
}

// Join adds a participant and reports false when already joined
func (r *GormCompetitionRepository) Join(ctx context.Context, competitionID, userID string) (bool, error) {
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&models.CompetitionParticipant{
		CompetitionID: competitionID,
		UserID:        userID,
		JoinedAt:      time.Now().UTC(),
	})
	return result.RowsAffected > 0, result.Error
}

// UpdateStatus sets a competition's status
func (r *GormCompetitionRepository) UpdateStatus(ctx context.Context, id string, status models.CompetitionStatus) error {
	return r.db.WithContext(ctx).Model(&models.Competition{}).Where("id = ?", id).Update("status", status).Error
}
