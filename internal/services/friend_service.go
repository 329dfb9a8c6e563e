package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/strivetrack/strivetrack-api/internal/models"
	"github.com/strivetrack/strivetrack-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrFriendRequestNotFound = errors.New("friend request not found")
	ErrFriendNotFound        = errors.New("friend not found")
	ErrCannotFriendSelf      = errors.New("cannot send a friend request to yourself")
	ErrAlreadyFriends        = errors.New("friend request already exists")
)

// FriendService manages the friend graph
type FriendService struct {
	friendRepo repository.FriendRepository
	userRepo   repository.UserRepository
}

// NewFriendService creates a new FriendService
func NewFriendService(friendRepo repository.FriendRepository, userRepo repository.UserRepository) *FriendService {
	return &FriendService{
		friendRepo: friendRepo,
		userRepo:   userRepo,
	}
}

// FriendView is one edge as seen by the requesting user
type FriendView struct {
	EdgeID   string              `json:"id"`
	UserID   string              `json:"user_id"`
	Name     string              `json:"name"`
	Email    string              `json:"email"`
	Points   int                 `json:"points"`
	Status   models.FriendStatus `json:"status"`
	Incoming bool                `json:"incoming"`
}

// ListFriends returns accepted friends and pending requests in both directions
func (s *FriendService) ListFriends(ctx context.Context, userID string) ([]FriendView, error) {
	edges, err := s.friendRepo.ListEdges(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}

	views := make([]FriendView, 0, len(edges))
	for _, edge := range edges {
		other, err := s.userRepo.FindByID(ctx, edge.OtherUser(userID))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to load friend: %w", err)
		}
		views = append(views, FriendView{
			EdgeID:   edge.ID,
			UserID:   other.ID,
			Name:     other.Name,
			Email:    other.Email,
			Points:   other.Points,
			Status:   edge.Status,
			Incoming: edge.FriendID == userID,
		})
	}
	return views, nil
}

// SendRequest creates a pending request to the user with email
func (s *FriendService) SendRequest(ctx context.Context, userID, email string) (*models.FriendEdge, error) {
	target, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, lookupError(err, ErrUserNotFound, "user")
	}
	if target.ID == userID {
		return nil, ErrCannotFriendSelf
	}

	if _, err := s.friendRepo.FindBetween(ctx, userID, target.ID); err == nil {
		return nil, ErrAlreadyFriends
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check friendship: %w", err)
	}

	edge := &models.FriendEdge{UserID: userID, FriendID: target.ID}
	if err := s.friendRepo.Create(ctx, edge); err != nil {
		return nil, fmt.Errorf("failed to create friend request: %w", err)
	}
	return edge, nil
}

// AcceptRequest accepts a pending request addressed to userID
func (s *FriendService) AcceptRequest(ctx context.Context, userID, edgeID string) (*models.FriendEdge, error) {
	edge, err := s.friendRepo.FindByID(ctx, edgeID)
	if err != nil {
		return nil, lookupError(err, ErrFriendRequestNotFound, "friend request")
	}
	// Only the addressee may accept; anyone else sees no such request.
	if edge.FriendID != userID || edge.Status != models.FriendPending {
		return nil, ErrFriendRequestNotFound
	}

	if err := s.friendRepo.Accept(ctx, edge.ID); err != nil {
		return nil, fmt.Errorf("failed to accept friend request: %w", err)
	}
	edge.Status = models.FriendAccepted
	return edge, nil
}

// RemoveFriend deletes an edge touching userID, declining or unfriending
func (s *FriendService) RemoveFriend(ctx context.Context, userID, edgeID string) error {
	edge, err := s.friendRepo.FindByID(ctx, edgeID)
	if err != nil {
		return lookupError(err, ErrFriendNotFound, "friend")
	}
	if edge.UserID != userID && edge.FriendID != userID {
		return ErrFriendNotFound
	}

	if err := s.friendRepo.Delete(ctx, edge.ID); err != nil {
		return fmt.Errorf("failed to remove friend: %w", err)
	}
	return nil
}
