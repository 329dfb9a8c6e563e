package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

type MediaUpload struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID      string    `gorm:"type:varchar(36);index;not null" json:"user_id"`
	ObjectKey   string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"-"`
	FileName    string    `gorm:"type:varchar(255)" json:"file_name"`
	ContentType string    `gorm:"type:varchar(100)" json:"content_type"`
	MediaType   MediaType `gorm:"type:varchar(20);not null" json:"media_type"`
	SizeBytes   int64     `json:"size_bytes"`
	Description string    `gorm:"type:text" json:"description"`
	IsFlagged   bool      `gorm:"not null;default:false" json:"is_flagged"`
	FlagReason  string    `gorm:"type:text" json:"flag_reason,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (m *MediaUpload) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
