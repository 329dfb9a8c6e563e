package repository

import (
	"context"
	"errors"
	"time"

	"github.com/strivetrack/strivetrack-api/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrChallengeFull is returned when accepting would exceed max participants.
	ErrChallengeFull = errors.New("challenge repository: challenge is full")
	// ErrParticipantState is returned when a participant is not in the state the transition needs.
	ErrParticipantState = errors.New("challenge repository: participant state does not allow this change")
)

// GormChallengeRepository is a GORM implementation of ChallengeRepository
type GormChallengeRepository struct {
	db *gorm.DB
}

// NewChallengeRepository creates a new ChallengeRepository
func NewChallengeRepository(db *gorm.DB) ChallengeRepository {
	return &GormChallengeRepository{db: db}
}

// ListVisible returns public challenges, challenges of accepted friends with
// friends privacy, and any challenge the user created or participates in.
func (r *GormChallengeRepository) ListVisible(ctx context.Context, userID string, friendIDs []string) ([]models.SocialChallenge, error) {
	db := r.db.WithContext(ctx)
	participating := db.Model(&models.ChallengeParticipant{}).Select("challenge_id").Where("user_id = ?", userID)

	query := db.Preload("Participants").
		Where("privacy = ?", models.PrivacyPublic).
		Or("creator_id = ?", userID).
		Or("id IN (?)", participating)
	if len(friendIDs) > 0 {
		query = query.Or("privacy = ? AND creator_id IN ?", models.PrivacyFriends, friendIDs)
	}

	var challenges []models.SocialChallenge
	err := query.Order("created_at DESC").Find(&challenges).Error
	return challenges, err
}

// Create creates a challenge with its creator as an accepted participant
func (r *GormChallengeRepository) Create(ctx context.Context, challenge *models.SocialChallenge) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Participants").Create(challenge).Error; err != nil {
			return err
		}

		creator := models.ChallengeParticipant{
			ChallengeID: challenge.ID,
			UserID:      challenge.CreatorID,
			Status:      models.ParticipantAccepted,
			UpdatedAt:   time.Now().UTC(),
		}
		if err := tx.Create(&creator).Error; err != nil {
			return err
		}
		challenge.Participants = []models.ChallengeParticipant{creator}
		return nil
	})
}

// FindByID finds a challenge with participants
func (r *GormChallengeRepository) FindByID(ctx context.Context, id string) (*models.SocialChallenge, error) {
	var challenge models.SocialChallenge
	if err := r.db.WithContext(ctx).Preload("Participants").Where("id = ?", id).First(&challenge).Error; err != nil {
		return nil, err
	}
	return &challenge, nil
}

// FindParticipant finds one participant row
func (r *GormChallengeRepository) FindParticipant(ctx context.Context, challengeID, userID string) (*models.ChallengeParticipant, error) {
	var participant models.ChallengeParticipant
	err := r.db.WithContext(ctx).
		Where("challenge_id = ? AND user_id = ?", challengeID, userID).
		First(&participant).Error
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

// Invite records the invitation and an invited participant row
func (r *GormChallengeRepository) Invite(ctx context.Context, invitation *models.ChallengeInvitation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(invitation).Error; err != nil {
			return err
		}
		return tx.Create(&models.ChallengeParticipant{
			ChallengeID: invitation.ChallengeID,
			UserID:      invitation.InviteeID,
			Status:      models.ParticipantInvited,
			UpdatedAt:   time.Now().UTC(),
		}).Error
	})
}

// Respond moves an invited participant to accepted or declined. The
// capacity check and the update share one transaction.
func (r *GormChallengeRepository) Respond(ctx context.Context, challengeID, userID string, status models.ParticipantStatus, maxParticipants int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var participant models.ChallengeParticipant
		err := tx.Where("challenge_id = ? AND user_id = ?", challengeID, userID).First(&participant).Error
		if err != nil {
			return err
		}
		if participant.Status != models.ParticipantInvited {
			return ErrParticipantState
		}

		if status == models.ParticipantAccepted && maxParticipants > 0 {
			var joined int64
			err := tx.Model(&models.ChallengeParticipant{}).
				Where("challenge_id = ? AND status IN ?", challengeID,
					[]models.ParticipantStatus{models.ParticipantAccepted, models.ParticipantCompleted}).
				Count(&joined).Error
			if err != nil {
				return err
			}
			if joined >= int64(maxParticipants) {
				return ErrChallengeFull
			}
		}

		return setParticipantStatus(tx, challengeID, userID, status)
	})
}

// Complete moves an accepted participant to completed
func (r *GormChallengeRepository) Complete(ctx context.Context, challengeID, userID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var participant models.ChallengeParticipant
		err := tx.Where("challenge_id = ? AND user_id = ?", challengeID, userID).First(&participant).Error
		if err != nil {
			return err
		}
		if participant.Status != models.ParticipantAccepted {
			return ErrParticipantState
		}
		return setParticipantStatus(tx, challengeID, userID, models.ParticipantCompleted)
	})
}

func setParticipantStatus(tx *gorm.DB, challengeID, userID string, status models.ParticipantStatus) error {
	return tx.Model(&models.ChallengeParticipant{}).
		Where("challenge_id = ? AND user_id = ?", challengeID, userID).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now().UTC()}).Error
}
