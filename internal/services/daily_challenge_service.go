package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/strivetrack/strivetrack-api/internal/models"
	"github.com/strivetrack/strivetrack-api/internal/repository"
	"github.com/strivetrack/strivetrack-api/internal/utils"
)

var (
	ErrDailyChallengeNotFound = errors.New("daily challenge not found")
	ErrDailyAlreadyCompleted  = errors.New("daily challenge already completed today")
)

// DailyChallengeService handles the once-per-day challenge catalog
type DailyChallengeService struct {
	dailyRepo repository.DailyChallengeRepository
}

// NewDailyChallengeService creates a new DailyChallengeService
func NewDailyChallengeService(dailyRepo repository.DailyChallengeRepository) *DailyChallengeService {
	return &DailyChallengeService{dailyRepo: dailyRepo}
}

// DailyChallengeView is a catalog entry with today's completion flag
type DailyChallengeView struct {
	models.DailyChallenge
	CompletedToday bool `json:"completed_today"`
}

// ListToday returns the catalog with the user's completions for today
func (s *DailyChallengeService) ListToday(ctx context.Context, userID string) ([]DailyChallengeView, error) {
	challenges, err := s.dailyRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily challenges: %w", err)
	}
	done, err := s.dailyRepo.CompletedIDs(ctx, userID, utils.Today())
	if err != nil {
		return nil, fmt.Errorf("failed to load completions: %w", err)
	}

	views := make([]DailyChallengeView, 0, len(challenges))
	for _, c := range challenges {
		views = append(views, DailyChallengeView{DailyChallenge: c, CompletedToday: done[c.ID]})
	}
	return views, nil
}

// Complete records today's completion and awards the challenge points once
func (s *DailyChallengeService) Complete(ctx context.Context, userID, challengeID string) (*models.DailyChallenge, error) {
	challenge, err := s.dailyRepo.FindByID(ctx, challengeID)
	if err != nil {
		return nil, lookupError(err, ErrDailyChallengeNotFound, "daily challenge")
	}

	completed, err := s.dailyRepo.Complete(ctx, userID, challenge, utils.Today())
	if err != nil {
		return nil, fmt.Errorf("failed to complete daily challenge: %w", err)
	}
	if !completed {
		return nil, ErrDailyAlreadyCompleted
	}
	return challenge, nil
}
