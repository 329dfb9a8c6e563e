package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FriendStatus string

const (
	FriendPending  FriendStatus = "pending"
	FriendAccepted FriendStatus = "accepted"
)

// FriendEdge is stored once per pair; UserID is the requester.
type FriendEdge struct {
	ID        string       `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID    string       `gorm:"type:varchar(36);not null;uniqueIndex:idx_friend_pair,priority:1" json:"user_id"`
	FriendID  string       `gorm:"type:varchar(36);not null;uniqueIndex:idx_friend_pair,priority:2;index" json:"friend_id"`
	Status    FriendStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (f *FriendEdge) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// OtherUser returns the user on the opposite end of the edge from userID.
func (f *FriendEdge) OtherUser(userID string) string {
	if f.UserID == userID {
		return f.FriendID
	}
	return f.UserID
}

type CompetitionStatus string

const (
	CompetitionActive    CompetitionStatus = "active"
	CompetitionCompleted CompetitionStatus = "completed"
	CompetitionCancelled CompetitionStatus = "cancelled"
)

type Competition struct {
	ID          string            `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatorID   string            `gorm:"type:varchar(36);index;not null" json:"creator_id"`
	Name        string            `gorm:"type:varchar(255);not null" json:"name"`
	Description string            `gorm:"type:text" json:"description"`
	Metric      string            `gorm:"type:varchar(50)" json:"metric"`
	Status      CompetitionStatus `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	StartsOn    string            `gorm:"type:varchar(10)" json:"starts_on"`
	EndsOn      *string           `gorm:"type:varchar(10)" json:"ends_on"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`

	// Relations
	Participants []CompetitionParticipant `gorm:"foreignKey:CompetitionID" json:"participants,omitempty"`
}

func (c *Competition) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

type CompetitionParticipant struct {
	CompetitionID string    `gorm:"type:varchar(36);primaryKey" json:"competition_id"`
	UserID        string    `gorm:"type:varchar(36);primaryKey" json:"user_id"`
	JoinedAt      time.Time `json:"joined_at"`
}

type ChallengePrivacy string

const (
	PrivacyPublic  ChallengePrivacy = "public"
	PrivacyFriends ChallengePrivacy = "friends"
	PrivacyPrivate ChallengePrivacy = "private"
)

type SocialChallenge struct {
	ID              string           `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatorID       string           `gorm:"type:varchar(36);index;not null" json:"creator_id"`
	Title           string           `gorm:"type:varchar(255);not null" json:"title"`
	Description     string           `gorm:"type:text" json:"description"`
	Privacy         ChallengePrivacy `gorm:"type:varchar(20);not null;default:'public'" json:"privacy"`
	MaxParticipants int              `gorm:"not null;default:0" json:"max_participants"`
	EndsOn          *string          `gorm:"type:varchar(10)" json:"ends_on"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`

	// Relations
	Participants []ChallengeParticipant `gorm:"foreignKey:ChallengeID" json:"participants,omitempty"`
}

func (s *SocialChallenge) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

type ParticipantStatus string

const (
	ParticipantInvited   ParticipantStatus = "invited"
	ParticipantAccepted  ParticipantStatus = "accepted"
	ParticipantDeclined  ParticipantStatus = "declined"
	ParticipantCompleted ParticipantStatus = "completed"
)

type ChallengeParticipant struct {
	ChallengeID string            `gorm:"type:varchar(36);primaryKey" json:"challenge_id"`
	UserID      string            `gorm:"type:varchar(36);primaryKey;index" json:"user_id"`
	Status      ParticipantStatus `gorm:"type:varchar(20);not null" json:"status"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type ChallengeInvitation struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	ChallengeID string    `gorm:"type:varchar(36);index;not null" json:"challenge_id"`
	InviterID   string    `gorm:"type:varchar(36);not null" json:"inviter_id"`
	InviteeID   string    `gorm:"type:varchar(36);index;not null" json:"invitee_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func (i *ChallengeInvitation) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// DailyChallenge is catalog reference data.
type DailyChallenge struct {
	ID          string `gorm:"type:varchar(64);primaryKey" json:"id"`
	Title       string `gorm:"type:varchar(255);not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Points      int    `gorm:"not null" json:"points"`
}

type DailyChallengeCompletion struct {
	ID               string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID           string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_daily_completion,priority:1" json:"user_id"`
	DailyChallengeID string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_daily_completion,priority:2" json:"daily_challenge_id"`
	CompletedOn      string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_daily_completion,priority:3" json:"completed_on"`
	CreatedAt        time.Time `json:"created_at"`
}

func (d *DailyChallengeCompletion) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
