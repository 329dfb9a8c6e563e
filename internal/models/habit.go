package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HabitDifficulty string

const (
	DifficultyEasy   HabitDifficulty = "easy"
	DifficultyMedium HabitDifficulty = "medium"
	DifficultyHard   HabitDifficulty = "hard"
)

type Habit struct {
	ID           string          `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID       string          `gorm:"type:varchar(36);index;not null" json:"user_id"`
	Name         string          `gorm:"type:varchar(255);not null" json:"name"`
	Description  string          `gorm:"type:text" json:"description"`
	Category     string          `gorm:"type:varchar(50)" json:"category"`
	WeeklyTarget int             `gorm:"not null;default:7" json:"weekly_target"`
	Difficulty   HabitDifficulty `gorm:"type:varchar(20);not null;default:'medium'" json:"difficulty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	// Relations
	Completions []HabitCompletion `gorm:"foreignKey:HabitID" json:"completions,omitempty"`
}

func (h *Habit) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}

// HabitCompletion marks a habit done on one calendar day.
type HabitCompletion struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	HabitID     string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_habit_completion_day,priority:1" json:"habit_id"`
	UserID      string    `gorm:"type:varchar(36);index;not null" json:"user_id"`
	CompletedOn string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_habit_completion_day,priority:2" json:"completed_on"`
	CreatedAt   time.Time `json:"created_at"`
}

func (c *HabitCompletion) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
