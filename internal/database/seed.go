package database

import (
	"fmt"

	"github.com/strivetrack/strivetrack-api/internal/achievements"
	"github.com/strivetrack/strivetrack-api/internal/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Seed inserts the achievement and daily challenge catalogs. Existing rows
// are left untouched so the call is safe on every start.
func Seed(db *gorm.DB) error {
	catalog := achievements.Catalog()
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&catalog).Error; err != nil {
		return fmt.Errorf("failed to seed achievements: %w", err)
	}

	daily := achievements.DailyChallenges()
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&daily).Error; err != nil {
		return fmt.Errorf("failed to seed daily challenges: %w", err)
	}

	logger.Component("db").Info("catalog_seeded",
		zap.Int("achievements", len(catalog)),
		zap.Int("daily_challenges", len(daily)),
	)
	return nil
}
