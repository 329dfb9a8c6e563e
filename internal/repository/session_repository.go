package repository

import (
	"context"
	"time"

	"github.com/strivetrack/strivetrack-api/internal/models"
	"gorm.io/gorm"
)

// GormSessionRepository is a GORM implementation of SessionRepository
type GormSessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &GormSessionRepository{db: db}
}

// Create stores a new session
func (r *GormSessionRepository) Create(ctx context.Context, session *models.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// FindUser resolves a token to its user. Unknown and expired tokens both
// return gorm.ErrRecordNotFound.
func (r *GormSessionRepository) FindUser(ctx context.Context, token string, now time.Time) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Table("sessions").
		Select("users.*").
		Joins("JOIN users ON users.id = sessions.user_id").
		Where("sessions.token = ? AND sessions.expires_at > ?", token, now).
		Take(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete revokes a session
func (r *GormSessionRepository) Delete(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Where("token = ?", token).Delete(&models.Session{}).Error
}

// DeleteExpired removes sessions that expired before now
func (r *GormSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&models.Session{})
	return result.RowsAffected, result.Error
}
