package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/strivetrack/strivetrack-api/internal/models"
	"gorm.io/gorm"
)

const (
	MetricWeeklyPoints    = "weekly_points"
	MetricAchievements    = "achievements"
	MetricStreak          = "streak"
	MetricDailyChallenges = "daily_challenges"
)

// GormLeaderboardRepository is a GORM implementation of LeaderboardRepository
type GormLeaderboardRepository struct {
	db *gorm.DB
}

// NewLeaderboardRepository creates a new LeaderboardRepository
func NewLeaderboardRepository(db *gorm.DB) LeaderboardRepository {
	return &GormLeaderboardRepository{db: db}
}

// Rows returns unordered rows for userIDs with the metric's value filled in.
// The streak metric is left at zero for the caller to compute.
func (r *GormLeaderboardRepository) Rows(ctx context.Context, metric string, userIDs []string, day string) ([]LeaderboardRow, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	query := sq.Select("users.id AS user_id", "users.name", "users.points", "users.created_at").
		From("users").
		Where(sq.Eq{"users.id": userIDs})

	switch metric {
	case MetricWeeklyPoints:
		query = query.Column("users.weekly_points AS value")
	case MetricAchievements:
		query = query.Column("(SELECT COUNT(*) FROM user_achievements ua WHERE ua.user_id = users.id) AS value")
	case MetricDailyChallenges:
		query = query.Column("(SELECT COUNT(*) FROM daily_challenge_completions dc WHERE dc.user_id = users.id AND dc.completed_on = ?) AS value", day)
	case MetricStreak:
		query = query.Column("0 AS value")
	default:
		return nil, fmt.Errorf("unknown leaderboard metric %q", metric)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build leaderboard query: %w", err)
	}

	var rows []LeaderboardRow
	if err := r.db.WithContext(ctx).Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CompletionDaysByUser returns each user's distinct habit completion days on or after since
func (r *GormLeaderboardRepository) CompletionDaysByUser(ctx context.Context, userIDs []string, since string) (map[string][]string, error) {
	days := make(map[string][]string, len(userIDs))
	if len(userIDs) == 0 {
		return days, nil
	}

	var rows []struct {
		UserID      string
		CompletedOn string
	}
	err := r.db.WithContext(ctx).
		Model(&models.HabitCompletion{}).
		Distinct("user_id", "completed_on").
		Where("user_id IN ? AND completed_on >= ?", userIDs, since).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		days[row.UserID] = append(days[row.UserID], row.CompletedOn)
	}
	return days, nil
}
