package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WeightLog struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID    string    `gorm:"type:varchar(36);index;not null" json:"user_id"`
	WeightLbs float64   `gorm:"not null" json:"weight_lbs"`
	WeightKg  float64   `gorm:"not null" json:"weight_kg"`
	BMI       *float64  `json:"bmi"`
	LoggedOn  string    `gorm:"type:varchar(10);index;not null" json:"logged_on"`
	Note      string    `gorm:"type:text" json:"note"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (w *WeightLog) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}

type WeightGoal struct {
	ID             string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID         string    `gorm:"type:varchar(36);index;not null" json:"user_id"`
	StartWeightKg  float64   `json:"start_weight_kg"`
	TargetWeightKg float64   `gorm:"not null" json:"target_weight_kg"`
	TargetDate     *string   `gorm:"type:varchar(10)" json:"target_date"`
	WeeklyDeltaKg  *float64  `json:"weekly_delta_kg"`
	IsActive       bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (g *WeightGoal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}
