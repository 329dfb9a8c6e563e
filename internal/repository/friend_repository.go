package repository

import (
	"context"

	"github.com/strivetrack/strivetrack-api/internal/models"
	"gorm.io/gorm"
)

// GormFriendRepository is a GORM implementation of FriendRepository
type GormFriendRepository struct {
	db *gorm.DB
}

// NewFriendRepository creates a new FriendRepository
func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &GormFriendRepository{db: db}
}

// ListEdges returns every edge touching userID
func (r *GormFriendRepository) ListEdges(ctx context.Context, userID string) ([]models.FriendEdge, error) {
	var edges []models.FriendEdge
	err := r.db.WithContext(ctx).
		Where("user_id = ? OR friend_id = ?", userID, userID).
		Order("created_at ASC").
		Find(&edges).Error
	return edges, err
}

// FindBetween finds the edge between two users in either direction
func (r *GormFriendRepository) FindBetween(ctx context.Context, a, b string) (*models.FriendEdge, error) {
	var edge models.FriendEdge
	err := r.db.WithContext(ctx).
		Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)", a, b, b, a).
		First(&edge).Error
	if err != nil {
		return nil, err
	}
	return &edge, nil
}

// FindByID finds an edge by ID
func (r *GormFriendRepository) FindByID(ctx context.Context, id string) (*models.FriendEdge, error) {
	var edge models.FriendEdge
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&edge).Error; err != nil {
		return nil, err
	}
	return &edge, nil
}

// Create creates a pending edge
func (r *GormFriendRepository) Create(ctx context.Context, edge *models.FriendEdge) error {
	edge.Status = models.FriendPending
	return r.db.WithContext(ctx).Create(edge).Error
}

// Accept marks an edge accepted
func (r *GormFriendRepository) Accept(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&models.FriendEdge{}).Where("id = ?", id).Update("status", models.FriendAccepted).Error
}

// Delete removes an edge
func (r *GormFriendRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.FriendEdge{}).Error
}

// AcceptedFriendIDs returns the IDs of the user's accepted friends
func (r *GormFriendRepository) AcceptedFriendIDs(ctx context.Context, userID string) ([]string, error) {
	var edges []models.FriendEdge
	err := r.db.WithContext(ctx).
		Where("status = ?", models.FriendAccepted).
		Where("user_id = ? OR friend_id = ?", userID, userID).
		Find(&edges).Error
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(edges))
	for _, edge := range edges {
		ids = append(ids, edge.OtherUser(userID))
	}
	return ids, nil
}
