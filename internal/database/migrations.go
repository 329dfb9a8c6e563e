package database

import (
	"fmt"

	"github.com/strivetrack/strivetrack-api/internal/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AddIndexes adds the composite indexes used by per-user date queries.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		{"nutrition_logs", "idx_nutrition_logs_user_day", "user_id, logged_on"},
		{"weight_logs", "idx_weight_logs_user_day", "user_id, logged_on"},
		{"habit_completions", "idx_habit_completions_user_day", "user_id, completed_on"},
		{"user_achievements", "idx_user_achievements_user_earned", "user_id, earned_at"},
		{"weight_goals", "idx_weight_goals_user_active", "user_id, is_active"},
		{"daily_challenge_completions", "idx_daily_completions_day", "completed_on"},
		{"sessions", "idx_sessions_user_expiry", "user_id, expires_at"},
	}

	log := logger.Component("db")
	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info("index_created", zap.String("index", idx.name), zap.String("table", idx.table))
	}

	return nil
}

// HasColumn reports whether the live schema has the given column. It lets
// features that depend on newer columns degrade instead of failing queries.
func HasColumn(db *gorm.DB, model interface{}, column string) bool {
	return db.Migrator().HasColumn(model, column)
}
