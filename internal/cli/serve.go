package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/strivetrack/strivetrack-api/internal/database"
	"github.com/strivetrack/strivetrack-api/internal/handlers"
	"github.com/strivetrack/strivetrack-api/internal/logger"
	"github.com/strivetrack/strivetrack-api/internal/middleware"
	"github.com/strivetrack/strivetrack-api/internal/services"
	"github.com/strivetrack/strivetrack-api/internal/storage"
	"go.uber.org/zap"
)

var skipMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Connect to the database, apply migrations and reference data, then serve
the API until interrupted.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "Do not migrate or seed on startup")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logger.Component("server")
	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	defer sqlDB.Close()

	if !skipMigrate {
		if err := database.Migrate(db); err != nil {
			return err
		}
		if err := database.Seed(db); err != nil {
			return err
		}
	}

	store, err := storage.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to init media storage: %w", err)
	}

	// The limiter stays off without Redis.
	var counter middleware.Counter
	if cfg.RedisAddr != "" {
		redisCounter, err := middleware.NewRedisCounter(ctx, cfg.RedisAddr)
		if err != nil {
			log.Warn("rate_limit_disabled", zap.Error(err))
		} else {
			defer redisCounter.Close()
			counter = redisCounter
		}
	}

	svc := services.NewServices(db, store, cfg.AdminEmail, cfg.SessionTTL)
	router := handlers.NewRouter(svc, handlers.RouterOptions{
		CORSOrigins: cfg.CORSOrigins,
		Counter:     counter,
		RateLimit:   cfg.RateLimit,
		HealthCheck: sqlDB.PingContext,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server_starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("server_stopping")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
