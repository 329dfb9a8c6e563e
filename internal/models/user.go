package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)

type User struct {
	ID           string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"`
	Name         string     `gorm:"type:varchar(100)" json:"name"`
	Role         UserRole   `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	Points       int        `gorm:"not null;default:0" json:"points"`
	WeeklyPoints int        `gorm:"not null;default:0" json:"weekly_points"`
	HeightCM     *float64   `json:"height_cm"`
	Status       UserStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	AdminNotes   string     `gorm:"type:text" json:"admin_notes,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// IsAdmin reports the stored role only. Admin authorization additionally
// requires the configured admin email.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
