package repository

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/strivetrack/strivetrack-api/internal/database"
	"github.com/strivetrack/strivetrack-api/internal/models"
	"github.com/strivetrack/strivetrack-api/internal/utils"
	"gorm.io/gorm"
)

// userCascade lists, in order, every statement that removes rows a user
// owns. Rows that reference other rows are removed before their parents.
// Each "?" is bound to the user ID.
var userCascade = []struct {
	name  string
	query string
}{
	{"habit_completions", "DELETE FROM habit_completions WHERE user_id = ? OR habit_id IN (SELECT id FROM habits WHERE user_id = ?)"},
	{"habits", "DELETE FROM habits WHERE user_id = ?"},
	{"nutrition_logs", "DELETE FROM nutrition_logs WHERE user_id = ?"},
	{"weight_logs", "DELETE FROM weight_logs WHERE user_id = ?"},
	{"weight_goals", "DELETE FROM weight_goals WHERE user_id = ?"},
	{"user_achievements", "DELETE FROM user_achievements WHERE user_id = ?"},
	{"activity_logs", "DELETE FROM activity_logs WHERE user_id = ?"},
	{"daily_challenge_completions", "DELETE FROM daily_challenge_completions WHERE user_id = ?"},
	{"friend_edges", "DELETE FROM friend_edges WHERE user_id = ? OR friend_id = ?"},
	{"competition_participants", "DELETE FROM competition_participants WHERE user_id = ? OR competition_id IN (SELECT id FROM competitions WHERE creator_id = ?)"},
	{"competitions", "DELETE FROM competitions WHERE creator_id = ?"},
	{"challenge_invitations", "DELETE FROM challenge_invitations WHERE inviter_id = ? OR invitee_id = ? OR challenge_id IN (SELECT id FROM social_challenges WHERE creator_id = ?)"},
	{"challenge_participants", "DELETE FROM challenge_participants WHERE user_id = ? OR challenge_id IN (SELECT id FROM social_challenges WHERE creator_id = ?)"},
	{"social_challenges", "DELETE FROM social_challenges WHERE creator_id = ?"},
	{"media_uploads", "DELETE FROM media_uploads WHERE user_id = ?"},
	{"sessions", "DELETE FROM sessions WHERE user_id = ?"},
}

// GormAdminRepository is a GORM implementation of AdminRepository
type GormAdminRepository struct {
	db *gorm.DB
}

// NewAdminRepository creates a new AdminRepository
func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &GormAdminRepository{db: db}
}

// ListUsers returns users with habit, media and achievement counts in a
// single query. Optional moderation columns are selected only when present.
func (r *GormAdminRepository) ListUsers(ctx context.Context, params utils.PaginationParams) ([]UserSummary, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	columns := []string{"u.id", "u.email", "u.name", "u.role", "u.points", "u.created_at"}
	for _, optional := range []string{"status", "admin_notes"} {
		if r.HasUserColumn(optional) {
			columns = append(columns, "u."+optional)
		}
	}

	query, args, err := sq.Select(columns...).
		Column("(SELECT COUNT(*) FROM habits h WHERE h.user_id = u.id) AS habit_count").
		Column("(SELECT COUNT(*) FROM media_uploads m WHERE m.user_id = u.id) AS media_count").
		Column("(SELECT COUNT(*) FROM user_achievements ua WHERE ua.user_id = u.id) AS achievement_count").
		From("users u").
		OrderBy("u.created_at DESC", "u.id ASC").
		Limit(uint64(params.Limit)).
		Offset(uint64(params.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build user listing query: %w", err)
	}

	var users []UserSummary
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// DeleteUserCascade runs every cascade step regardless of earlier failures,
// then deletes the user row. Steps run outside a transaction so that one
// failing statement cannot poison the rest.
func (r *GormAdminRepository) DeleteUserCascade(ctx context.Context, userID string) ([]CascadeStep, error) {
	db := r.db.WithContext(ctx)
	report := make([]CascadeStep, 0, len(userCascade)+1)

	for _, step := range userCascade {
		result := db.Exec(step.query, repeatArg(userID, strings.Count(step.query, "?"))...)
		entry := CascadeStep{Step: step.name, RowsAffected: result.RowsAffected}
		if result.Error != nil {
			entry.Error = result.Error.Error()
		}
		report = append(report, entry)
	}

	result := db.Exec("DELETE FROM users WHERE id = ?", userID)
	if result.Error != nil {
		return report, fmt.Errorf("failed to delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return report, gorm.ErrRecordNotFound
	}

	report = append(report, CascadeStep{Step: "users", RowsAffected: result.RowsAffected})
	return report, nil
}

// HasUserColumn reports whether the users table has column
func (r *GormAdminRepository) HasUserColumn(column string) bool {
	return database.HasColumn(r.db, &models.User{}, column)
}

// SetUserColumn updates one column of a user
func (r *GormAdminRepository) SetUserColumn(ctx context.Context, userID, column string, value interface{}) error {
	return r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Update(column, value).Error
}

func repeatArg(arg interface{}, n int) []interface{} {
	args := make([]interface{}, n)
	for i := range args {
		args[i] = arg
	}
	return args
}
