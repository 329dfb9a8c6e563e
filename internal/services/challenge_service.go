package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/strivetrack/strivetrack-api/internal/models"
	"github.com/strivetrack/strivetrack-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrChallengeNotFound      = errors.New("challenge not found")
	ErrChallengeTitleRequired = errors.New("challenge title is required")
	ErrInvalidPrivacy         = errors.New("privacy must be public, friends or private")
	ErrInvalidMaxParticipants = errors.New("max_participants cannot be negative")
	ErrChallengeFull          = errors.New("challenge is full")
	ErrAlreadyParticipant     = errors.New("user is already part of this challenge")
	ErrInviteNotAllowed       = errors.New("you cannot invite this user to this challenge")
	ErrNotInvited             = errors.New("no pending invitation for this challenge")
	ErrNotActiveParticipant   = errors.New("only accepted participants can complete a challenge")
)

// ChallengeService handles social challenge business logic
type ChallengeService struct {
	challengeRepo repository.ChallengeRepository
	friendRepo    repository.FriendRepository
	userRepo      repository.UserRepository
}

// NewChallengeService creates a new ChallengeService
func NewChallengeService(challengeRepo repository.ChallengeRepository, friendRepo repository.FriendRepository, userRepo repository.UserRepository) *ChallengeService {
	return &ChallengeService{
		challengeRepo: challengeRepo,
		friendRepo:    friendRepo,
		userRepo:      userRepo,
	}
}

// CreateChallengeInput represents input for creating a challenge
type CreateChallengeInput struct {
	CreatorID       string
	Title           string
	Description     string
	Privacy         models.ChallengePrivacy
	MaxParticipants int
	EndsOn          *string
}

// ListVisible returns the challenges userID may see
func (s *ChallengeService) ListVisible(ctx context.Context, userID string) ([]models.SocialChallenge, error) {
	friendIDs, err := s.friendRepo.AcceptedFriendIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load friends: %w", err)
	}

	challenges, err := s.challengeRepo.ListVisible(ctx, userID, friendIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list challenges: %w", err)
	}
	return challenges, nil
}

// CreateChallenge creates a challenge with its creator as first participant
func (s *ChallengeService) CreateChallenge(ctx context.Context, input CreateChallengeInput) (*models.SocialChallenge, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrChallengeTitleRequired
	}

	privacy := input.Privacy
	if privacy == "" {
		privacy = models.PrivacyPublic
	}
	switch privacy {
	case models.PrivacyPublic, models.PrivacyFriends, models.PrivacyPrivate:
	default:
		return nil, ErrInvalidPrivacy
	}
	if input.MaxParticipants < 0 {
		return nil, ErrInvalidMaxParticipants
	}

	var endsOn *string
	if input.EndsOn != nil && *input.EndsOn != "" {
		day, err := dayOrToday(*input.EndsOn)
		if err != nil {
			return nil, err
		}
		endsOn = &day
	}

	challenge := &models.SocialChallenge{
		CreatorID:       input.CreatorID,
		Title:           title,
		Description:     input.Description,
		Privacy:         privacy,
		MaxParticipants: input.MaxParticipants,
		EndsOn:          endsOn,
	}
	if err := s.challengeRepo.Create(ctx, challenge); err != nil {
		return nil, fmt.Errorf("failed to create challenge: %w", err)
	}
	return challenge, nil
}

// Invite invites inviteeID on behalf of inviterID. Private challenges accept
// invitations from their creator only; friends-only challenges accept
// invitees who are friends of the inviter.
func (s *ChallengeService) Invite(ctx context.Context, inviterID, challengeID, inviteeID string) (*models.ChallengeInvitation, error) {
	challenge, err := s.visibleChallenge(ctx, inviterID, challengeID)
	if err != nil {
		return nil, err
	}
	if !isMember(challenge, inviterID) {
		return nil, ErrInviteNotAllowed
	}
	if challenge.Privacy == models.PrivacyPrivate && challenge.CreatorID != inviterID {
		return nil, ErrInviteNotAllowed
	}

	if _, err := s.userRepo.FindByID(ctx, inviteeID); err != nil {
		return nil, lookupError(err, ErrUserNotFound, "user")
	}
	if challenge.Privacy == models.PrivacyFriends {
		friends, err := s.friendRepo.AcceptedFriendIDs(ctx, inviterID)
		if err != nil {
			return nil, fmt.Errorf("failed to load friends: %w", err)
		}
		if !slices.Contains(friends, inviteeID) {
			return nil, ErrInviteNotAllowed
		}
	}

	if _, err := s.challengeRepo.FindParticipant(ctx, challengeID, inviteeID); err == nil {
		return nil, ErrAlreadyParticipant
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check participant: %w", err)
	}

	invitation := &models.ChallengeInvitation{
		ChallengeID: challengeID,
		InviterID:   inviterID,
		InviteeID:   inviteeID,
	}
	if err := s.challengeRepo.Invite(ctx, invitation); err != nil {
		return nil, fmt.Errorf("failed to invite user: %w", err)
	}
	return invitation, nil
}

// Respond accepts or declines a pending invitation
func (s *ChallengeService) Respond(ctx context.Context, userID, challengeID string, accept bool) (*models.SocialChallenge, error) {
	challenge, err := s.challengeRepo.FindByID(ctx, challengeID)
	if err != nil {
		return nil, lookupError(err, ErrChallengeNotFound, "challenge")
	}

	status := models.ParticipantDeclined
	if accept {
		status = models.ParticipantAccepted
	}

	err = s.challengeRepo.Respond(ctx, challengeID, userID, status, challenge.MaxParticipants)
	switch {
	case err == nil:
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, repository.ErrParticipantState):
		return nil, ErrNotInvited
	case errors.Is(err, repository.ErrChallengeFull):
		return nil, ErrChallengeFull
	default:
		return nil, fmt.Errorf("failed to respond to challenge: %w", err)
	}

	return s.challengeRepo.FindByID(ctx, challengeID)
}

// Complete marks the user's participation completed
func (s *ChallengeService) Complete(ctx context.Context, userID, challengeID string) (*models.SocialChallenge, error) {
	if _, err := s.challengeRepo.FindByID(ctx, challengeID); err != nil {
		return nil, lookupError(err, ErrChallengeNotFound, "challenge")
	}

	err := s.challengeRepo.Complete(ctx, challengeID, userID)
	switch {
	case err == nil:
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, repository.ErrParticipantState):
		return nil, ErrNotActiveParticipant
	default:
		return nil, fmt.Errorf("failed to complete challenge: %w", err)
	}

	return s.challengeRepo.FindByID(ctx, challengeID)
}

// visibleChallenge loads a challenge and hides it unless userID may see it.
func (s *ChallengeService) visibleChallenge(ctx context.Context, userID, challengeID string) (*models.SocialChallenge, error) {
	challenge, err := s.challengeRepo.FindByID(ctx, challengeID)
	if err != nil {
		return nil, lookupError(err, ErrChallengeNotFound, "challenge")
	}

	switch {
	case challenge.Privacy == models.PrivacyPublic, challenge.CreatorID == userID:
		return challenge, nil
	case isParticipant(challenge, userID):
		return challenge, nil
	case challenge.Privacy == models.PrivacyFriends:
		friends, err := s.friendRepo.AcceptedFriendIDs(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to load friends: %w", err)
		}
		if slices.Contains(friends, challenge.CreatorID) {
			return challenge, nil
		}
	}
	return nil, ErrChallengeNotFound
}

func isParticipant(challenge *models.SocialChallenge, userID string) bool {
	for _, p := range challenge.Participants {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

// isMember reports whether userID accepted or completed the challenge.
func isMember(challenge *models.SocialChallenge, userID string) bool {
	for _, p := range challenge.Participants {
		if p.UserID == userID && (p.Status == models.ParticipantAccepted || p.Status == models.ParticipantCompleted) {
			return true
		}
	}
	return false
}
