package models

import "time"

type Session struct {
	Token     string    `gorm:"type:varchar(64);primaryKey" json:"-"`
	UserID    string    `gorm:"type:varchar(36);index;not null" json:"user_id"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
