package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/strivetrack/strivetrack-api/internal/models"
	"github.com/strivetrack/strivetrack-api/internal/repository"
)

var (
	ErrCompetitionNotFound     = errors.New("competition not found")
	ErrCompetitionNameRequired = errors.New("competition name is required")
	ErrCompetitionNotActive    = errors.New("competition is not active")
	ErrAlreadyJoined           = errors.New("already joined this competition")
	ErrNotCompetitionCreator   = errors.New("only the creator can change the competition status")
	ErrInvalidStatusTransition = errors.New("status must move from active to completed or cancelled")
	ErrInvalidDateRange        = errors.New("ends_on must not be before starts_on")
)

// CompetitionService handles competition business logic
type CompetitionService struct {
	competitionRepo repository.CompetitionRepository
}

// NewCompetitionService creates a new CompetitionService
func NewCompetitionService(competitionRepo repository.CompetitionRepository) *CompetitionService {
	return &CompetitionService{competitionRepo: competitionRepo}
}

// CreateCompetitionInput represents input for creating a competition
type CreateCompetitionInput struct {
	CreatorID   string
	Name        string
	Description string
	Metric      string
	StartsOn    string
	EndsOn      *string
}

// ListActive returns every active competition
func (s *CompetitionService) ListActive(ctx context.Context) ([]models.Competition, error) {
	competitions, err := s.competitionRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list competitions: %w", err)
	}
	return competitions, nil
}

// CreateCompetition creates an active competition joined by its creator
func (s *CompetitionService) CreateCompetition(ctx context.Context, input CreateCompetitionInput) (*models.Competition, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrCompetitionNameRequired
	}

	startsOn, err := dayOrToday(input.StartsOn)
	if err != nil {
		return nil, err
	}
	var endsOn *string
	if input.EndsOn != nil && *input.EndsOn != "" {
		day, err := dayOrToday(*input.EndsOn)
		if err != nil {
			return nil, err
		}
		if day < startsOn {
			return nil, ErrInvalidDateRange
		}
		endsOn = &day
	}

	metric := input.Metric
	if metric == "" {
		metric = repository.MetricWeeklyPoints
	}

	competition := &models.Competition{
		CreatorID:   input.CreatorID,
		Name:        name,
		Description: input.Description,
		Metric:      metric,
		Status:      models.CompetitionActive,
		StartsOn:    startsOn,
		EndsOn:      endsOn,
	}
	if err := s.competitionRepo.Create(ctx, competition); err != nil {
		return nil, fmt.Errorf("failed to create competition: %w", err)
	}
	return competition, nil
}

// Join adds userID to an active competition
func (s *CompetitionService) Join(ctx context.Context, userID, competitionID string) (*models.Competition, error) {
	competition, err := s.competitionRepo.FindByID(ctx, competitionID)
	if err != nil {
		return nil, lookupError(err, ErrCompetitionNotFound, "competition")
	}
	if competition.Status != models.CompetitionActive {
		return nil, ErrCompetitionNotActive
	}

	joined, err := s.competitionRepo.Join(ctx, competitionID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to join competition: %w", err)
	}
	if !joined {
		return nil, ErrAlreadyJoined
	}

	return s.competitionRepo.FindByID(ctx, competitionID)
}

// UpdateStatus lets the creator complete or cancel an active competition
func (s *CompetitionService) UpdateStatus(ctx context.Context, userID, competitionID string, status models.CompetitionStatus) (*models.Competition, error) {
	competition, err := s.competitionRepo.FindByID(ctx, competitionID)
	if err != nil {
		return nil, lookupError(err, ErrCompetitionNotFound, "competition")
	}
	if competition.CreatorID != userID {
		return nil, ErrNotCompetitionCreator
	}
	if competition.Status != models.CompetitionActive ||
		(status != models.CompetitionCompleted && status != models.CompetitionCancelled) {
		return nil, ErrInvalidStatusTransition
	}

	if err := s.competitionRepo.UpdateStatus(ctx, competitionID, status); err != nil {
		return nil, fmt.Errorf("failed to update competition: %w", err)
	}
	competition.Status = status
	return competition, nil
}
