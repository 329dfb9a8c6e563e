package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/strivetrack/strivetrack-api/internal/logger"
	"github.com/strivetrack/strivetrack-api/internal/models"
	"github.com/strivetrack/strivetrack-api/internal/repository"
	"github.com/strivetrack/strivetrack-api/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrNotAdmin            = errors.New("admin access required")
	ErrCannotModerateAdmin = errors.New("admin accounts cannot be deleted or suspended")
	ErrInvalidUserStatus   = errors.New("status must be active or suspended")
	ErrMigrationRequired   = errors.New("feature unavailable: database migration required")
)

// AdminService implements the moderation operations. Admin identity is the
// admin role combined with the configured admin email.
type AdminService struct {
	adminEmail   string
	userRepo     repository.UserRepository
	adminRepo    repository.AdminRepository
	mediaRepo    repository.MediaRepository
	mediaService *MediaService
	log          *zap.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(
	adminEmail string,
	userRepo repository.UserRepository,
	adminRepo repository.AdminRepository,
	mediaRepo repository.MediaRepository,
	mediaService *MediaService,
) *AdminService {
	return &AdminService{
		adminEmail:   normalizeEmail(adminEmail),
		userRepo:     userRepo,
		adminRepo:    adminRepo,
		mediaRepo:    mediaRepo,
		mediaService: mediaService,
		log:          logger.Component("admin"),
	}
}

// IsAdmin reports whether user holds the admin role and the configured admin
// email. Without a configured email nobody is admin.
func (s *AdminService) IsAdmin(user *models.User) bool {
	if user == nil || s.adminEmail == "" || !user.IsAdmin() {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(normalizeEmail(user.Email)), []byte(s.adminEmail)) == 1
}

// ListUsers returns users with their habit, media and achievement counts
func (s *AdminService) ListUsers(ctx context.Context, params utils.PaginationParams) ([]repository.UserSummary, int64, error) {
	users, total, err := s.adminRepo.ListUsers(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// DeleteUserResult reports every cascade step of a user delete
type DeleteUserResult struct {
	UserID      string                   `json:"user_id"`
	Steps       []repository.CascadeStep `json:"steps"`
	FailedSteps int                      `json:"failed_steps"`
}

// DeleteUser removes a non-admin user and everything they own. Failed
// dependent steps are reported but do not fail the delete.
func (s *AdminService) DeleteUser(ctx context.Context, targetID string) (*DeleteUserResult, error) {
	target, err := s.userRepo.FindByID(ctx, targetID)
	if err != nil {
		return nil, lookupError(err, ErrUserNotFound, "user")
	}
	if target.IsAdmin() {
		return nil, ErrCannotModerateAdmin
	}

	keys, err := s.mediaRepo.ObjectKeysByUser(ctx, targetID)
	if err != nil {
		bestEffort(s.log, "media_key_lookup", err, zap.String("user_id", targetID))
	}

	steps, err := s.adminRepo.DeleteUserCascade(ctx, targetID)
	result := &DeleteUserResult{UserID: targetID, Steps: steps}
	for _, step := range steps {
		if step.Error != "" {
			result.FailedSteps++
			bestEffort(s.log, "cascade_step", errors.New(step.Error),
				zap.String("user_id", targetID), zap.String("step", step.Step))
		}
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}

	s.mediaService.RemoveObjects(ctx, keys)

	s.log.Info("user_deleted",
		zap.String("user_id", targetID),
		zap.Int("failed_steps", result.FailedSteps),
	)
	return result, nil
}

// SetUserStatus suspends or reactivates a non-admin user
func (s *AdminService) SetUserStatus(ctx context.Context, targetID string, status models.UserStatus) (*models.User, error) {
	if status != models.UserStatusActive && status != models.UserStatusSuspended {
		return nil, ErrInvalidUserStatus
	}
	if !s.adminRepo.HasUserColumn("status") {
		return nil, ErrMigrationRequired
	}

	target, err := s.userRepo.FindByID(ctx, targetID)
	if err != nil {
		return nil, lookupError(err, ErrUserNotFound, "user")
	}
	if target.IsAdmin() && status == models.UserStatusSuspended {
		return nil, ErrCannotModerateAdmin
	}

	if err := s.adminRepo.SetUserColumn(ctx, targetID, "status", status); err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}
	s.log.Info("user_status_changed", zap.String("user_id", targetID), zap.String("status", string(status)))

	target.Status = status
	return target, nil
}

// SetUserNotes replaces the moderation notes of a user
func (s *AdminService) SetUserNotes(ctx context.Context, targetID, notes string) (*models.User, error) {
	if !s.adminRepo.HasUserColumn("admin_notes") {
		return nil, ErrMigrationRequired
	}

	target, err := s.userRepo.FindByID(ctx, targetID)
	if err != nil {
		return nil, lookupError(err, ErrUserNotFound, "user")
	}

	notes = strings.TrimSpace(notes)
	if err := s.adminRepo.SetUserColumn(ctx, targetID, "admin_notes", notes); err != nil {
		return nil, fmt.Errorf("failed to update notes: %w", err)
	}

	target.AdminNotes = notes
	return target, nil
}

// ResetWeeklyPoints zeroes every user's weekly points
func (s *AdminService) ResetWeeklyPoints(ctx context.Context) (int64, error) {
	n, err := s.userRepo.ResetWeeklyPoints(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to reset weekly points: %w", err)
	}
	s.log.Info("weekly_points_reset", zap.Int64("users", n))
	return n, nil
}
