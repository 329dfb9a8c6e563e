package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequirementType names the user statistic an achievement is measured against.
type RequirementType string

const (
	RequirementHabitsCreated    RequirementType = "habits_created"
	RequirementHabitCompletions RequirementType = "habit_completions"
	RequirementStreakDays       RequirementType = "streak_days"
	RequirementNutritionLogs    RequirementType = "nutrition_logs"
	RequirementWeightLogs       RequirementType = "weight_logs"
	RequirementMediaUploads     RequirementType = "media_uploads"
	RequirementFriends          RequirementType = "friends"
	RequirementDailyChallenges  RequirementType = "daily_challenges"
	RequirementUnlockedToday    RequirementType = "achievements_today"
)

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// CategoryCombo marks achievements granted by the combo cascade.
const CategoryCombo = "combo"

// Achievement is catalog reference data.
type Achievement struct {
	ID               string          `gorm:"type:varchar(64);primaryKey" json:"id"`
	Name             string          `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description      string          `gorm:"type:text" json:"description"`
	Category         string          `gorm:"type:varchar(50);not null" json:"category"`
	RequirementType  RequirementType `gorm:"type:varchar(50);not null" json:"requirement_type"`
	RequirementValue int             `gorm:"not null" json:"requirement_value"`
	Points           int             `gorm:"not null" json:"points"`
	Rarity           Rarity          `gorm:"type:varchar(20);not null" json:"rarity"`
}

func (a *Achievement) IsCombo() bool {
	return a.Category == CategoryCombo
}

type UserAchievement struct {
	ID            string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID        string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_achievement,priority:1" json:"user_id"`
	AchievementID string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_user_achievement,priority:2" json:"achievement_id"`
	EarnedAt      time.Time `gorm:"index;not null" json:"earned_at"`

	// Relations
	Achievement Achievement `gorm:"foreignKey:AchievementID" json:"achievement,omitempty"`
}

func (u *UserAchievement) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

type ActivityLog struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID       string    `gorm:"type:varchar(36);index;not null" json:"user_id"`
	ActivityType string    `gorm:"type:varchar(50);not null" json:"activity_type"`
	Description  string    `gorm:"type:text" json:"description"`
	Points       int       `gorm:"not null;default:0" json:"points"`
	CreatedAt    time.Time `json:"created_at"`
}

func (a *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
