package repository

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/strivetrack/strivetrack-api/internal/models"
	"gorm.io/gorm"
)

// GormStatsRepository builds the per-user counters with squirrel and runs
// them through gorm, which rebinds placeholders for the active dialect.
type GormStatsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a new StatsRepository
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &GormStatsRepository{db: db}
}

// Counts returns every per-user count in one query. since bounds the
// achievements-unlocked-today counter, which excludes combo achievements.
func (r *GormStatsRepository) Counts(ctx context.Context, userID string, since time.Time) (*UserCounts, error) {
	query, args, err := sq.Select().
		Column("(SELECT COUNT(*) FROM habits WHERE user_id = ?) AS habits_created", userID).
		Column("(SELECT COUNT(*) FROM habit_completions WHERE user_id = ?) AS habit_completions", userID).
		Column("(SELECT COUNT(*) FROM nutrition_logs WHERE user_id = ?) AS nutrition_logs", userID).
		Column("(SELECT COUNT(*) FROM weight_logs WHERE user_id = ?) AS weight_logs", userID).
		Column("(SELECT COUNT(*) FROM media_uploads WHERE user_id = ?) AS media_uploads", userID).
		Column("(SELECT COUNT(*) FROM friend_edges WHERE status = ? AND (user_id = ? OR friend_id = ?)) AS friends",
			models.FriendAccepted, userID, userID).
		Column("(SELECT COUNT(*) FROM daily_challenge_completions WHERE user_id = ?) AS daily_challenges", userID).
		Column(`(SELECT COUNT(*) FROM user_achievements ua
			JOIN achievements a ON a.id = ua.achievement_id
			WHERE ua.user_id = ? AND ua.earned_at >= ? AND a.category <> ?) AS unlocked_today`,
			userID, since, models.CategoryCombo).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build stats query: %w", err)
	}

	var counts UserCounts
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&counts).Error; err != nil {
		return nil, err
	}
	return &counts, nil
}
