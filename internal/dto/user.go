package dto

import (
	"time"

	"github.com/strivetrack/strivetrack-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID           string            `json:"id"`
	Email        string            `json:"email"`
	Name         string            `json:"name"`
	Role         models.UserRole   `json:"role"`
	Points       int               `json:"points"`
	WeeklyPoints int               `json:"weekly_points"`
	HeightCM     *float64          `json:"height_cm"`
	Status       models.UserStatus `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
}

// SessionResponse is returned by login
type SessionResponse struct {
	SessionID string    `json:"session_id"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserDTO   `json:"user"`
}

// AdminUserDTO adds the moderation fields to UserDTO
type AdminUserDTO struct {
	UserDTO
	AdminNotes string `json:"admin_notes"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		Role:         user.Role,
		Points:       user.Points,
		WeeklyPoints: user.WeeklyPoints,
		HeightCM:     user.HeightCM,
		Status:       user.Status,
		CreatedAt:    user.CreatedAt,
	}
}

// ToAdminUserDTO converts a User model to AdminUserDTO
func ToAdminUserDTO(user models.User) AdminUserDTO {
	return AdminUserDTO{
		UserDTO:    ToUserDTO(user),
		AdminNotes: user.AdminNotes,
	}
}

// ToSessionResponse builds the login response
func ToSessionResponse(user models.User, session models.Session) SessionResponse {
	return SessionResponse{
		SessionID: session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      ToUserDTO(user),
	}
}
