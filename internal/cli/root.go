package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/strivetrack/strivetrack-api/internal/config"
	"github.com/strivetrack/strivetrack-api/internal/logger"
	"github.com/strivetrack/strivetrack-api/internal/metrics"
	"go.uber.org/zap"
)

// Global configuration variables
var (
	configFile string
	envFile    string
	cfg        *config.Config
)

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "strivetrack",
		Short: "StriveTrack - fitness tracking API",
		Long: `StriveTrack serves the fitness tracking API: habits, nutrition, weight,
progress media, achievements, friends, competitions and challenges.

Besides the HTTP server it provides maintenance commands for the schema,
reference data, weekly points and expired sessions.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadEnvFile(envFile); err != nil {
				return err
			}

			var err error
			cfg, err = config.Load(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if _, err := logger.Init(cfg.LogFile, cfg.LogLevel); err != nil {
				return fmt.Errorf("failed to init logger: %w", err)
			}
			metrics.Register()
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Log.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: $STRIVETRACK_CONFIG or strivetrack.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the config when present")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(resetWeeklyCmd)
	rootCmd.AddCommand(pruneSessionsCmd)

	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		logger.Log.Error("command_failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadEnvFile loads path into the environment without overriding variables
// that are already set. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}
