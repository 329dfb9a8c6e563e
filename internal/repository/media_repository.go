package repository

import (
	"context"

	"github.com/strivetrack/strivetrack-api/internal/database"
	"github.com/strivetrack/strivetrack-api/internal/models"
	"github.com/strivetrack/strivetrack-api/internal/utils"
	"gorm.io/gorm"
)

// GormMediaRepository is a GORM implementation of MediaRepository
type GormMediaRepository struct {
	db *gorm.DB
}

// NewMediaRepository creates a new MediaRepository
func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &GormMediaRepository{db: db}
}

// ListByUser returns a user's uploads, newest first
func (r *GormMediaRepository) ListByUser(ctx context.Context, userID string) ([]models.MediaUpload, error) {
	var media []models.MediaUpload
	err := r.db.WithContext(ctx).
		Scopes(database.OwnedBy(userID)).
		Order("created_at DESC").
		Find(&media).Error
	return media, err
}

// ListAll returns every upload with its owner, newest first
func (r *GormMediaRepository) ListAll(ctx context.Context, params utils.PaginationParams) ([]MediaWithOwner, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.MediaUpload{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var media []MediaWithOwner
	err := r.db.WithContext(ctx).
		Table("media_uploads").
		Select("media_uploads.*, users.email AS owner_email").
		Joins("LEFT JOIN users ON users.id = media_uploads.user_id").
		Order("media_uploads.created_at DESC").
		Scopes(database.Paginate(params)).
		Scan(&media).Error
	if err != nil {
		return nil, 0, err
	}
	return media, total, nil
}

// Create stores upload metadata
func (r *GormMediaRepository) Create(ctx context.Context, media *models.MediaUpload) error {
	return r.db.WithContext(ctx).Create(media).Error
}

// FindByID finds an upload regardless of owner
func (r *GormMediaRepository) FindByID(ctx context.Context, id string) (*models.MediaUpload, error) {
	var media models.MediaUpload
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&media).Error; err != nil {
		return nil, err
	}
	return &media, nil
}

// FindOwned finds an upload owned by userID
func (r *GormMediaRepository) FindOwned(ctx context.Context, id, userID string) (*models.MediaUpload, error) {
	var media models.MediaUpload
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&media).Error; err != nil {
		return nil, err
	}
	return &media, nil
}

// ObjectKeysByUser lists the object keys of every upload of a user
func (r *GormMediaRepository) ObjectKeysByUser(ctx context.Context, userID string) ([]string, error) {
	var keys []string
	err := r.db.WithContext(ctx).
		Model(&models.MediaUpload{}).
		Scopes(database.OwnedBy(userID)).
		Pluck("object_key", &keys).Error
	return keys, err
}

// SetFlag flags or unflags an upload
func (r *GormMediaRepository) SetFlag(ctx context.Context, id string, flagged bool, reason string) error {
	if !flagged {
		reason = ""
	}
	return r.db.WithContext(ctx).Model(&models.MediaUpload{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_flagged":  flagged,
		"flag_reason": reason,
	}).Error
}

// Delete removes upload metadata
func (r *GormMediaRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.MediaUpload{}).Error
}
