package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/strivetrack/strivetrack-api/internal/database"
	"github.com/strivetrack/strivetrack-api/internal/logger"
	"github.com/strivetrack/strivetrack-api/internal/repository"
	"github.com/strivetrack/strivetrack-api/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: withDB(func(ctx context.Context, cmd *cobra.Command, db *gorm.DB) error {
		if err := database.Migrate(db); err != nil {
			return err
		}
		cmd.Println("Migrations applied")
		return nil
	}),
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert missing achievement and daily challenge catalog rows",
	RunE: withDB(func(ctx context.Context, cmd *cobra.Command, db *gorm.DB) error {
		if err := database.Seed(db); err != nil {
			return err
		}
		cmd.Println("Reference data seeded")
		return nil
	}),
}

var resetWeeklyCmd = &cobra.Command{
	Use:   "reset-weekly",
	Short: "Zero every user's weekly points",
	Long: `Zero every user's weekly points. Schedule this at the start of each week;
lifetime points are untouched.`,
	RunE: withDB(func(ctx context.Context, cmd *cobra.Command, db *gorm.DB) error {
		admin := services.NewAdminService(cfg.AdminEmail,
			repository.NewUserRepository(db),
			repository.NewAdminRepository(db),
			repository.NewMediaRepository(db),
			nil,
		)
		n, err := admin.ResetWeeklyPoints(ctx)
		if err != nil {
			return err
		}
		cmd.Printf("Weekly points reset for %d users\n", n)
		return nil
	}),
}

var pruneSessionsCmd = &cobra.Command{
	Use:   "prune-sessions",
	Short: "Delete expired sessions",
	RunE: withDB(func(ctx context.Context, cmd *cobra.Command, db *gorm.DB) error {
		auth := services.NewAuthService(
			repository.NewUserRepository(db),
			repository.NewSessionRepository(db),
			cfg.SessionTTL,
		)
		n, err := auth.PruneSessions(ctx)
		if err != nil {
			return err
		}
		cmd.Printf("Pruned %d expired sessions\n", n)
		return nil
	}),
}

// withDB connects before running fn and closes the pool afterwards.
func withDB(fn func(ctx context.Context, cmd *cobra.Command, db *gorm.DB) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		db, err := database.Connect(cfg)
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("failed to get database handle: %w", err)
		}
		defer sqlDB.Close()

		logger.Component("cli").Info("command_started", zap.String("command", cmd.Name()))
		return fn(ctx, cmd, db)
	}
}
