package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/strivetrack/strivetrack-api/internal/constants"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPath     string

	Port        string
	GinMode     string
	CORSOrigins []string

	SessionTTL time.Duration
	AdminEmail string

	RedisAddr string
	RateLimit int

	StorageBackend string
	S3Endpoint     string
	S3AccessKey    string
	S3SecretKey    string
	S3Bucket       string
	S3UseSSL       bool

	LogFile  string
	LogLevel string
}

// FileConfig is the optional strivetrack.yaml layout. Values act as defaults
// and are overridden by environment variables.
type FileConfig struct {
	Database struct {
		Driver   string `yaml:"driver"`
		Host     string `yaml:"host"`
		Port     string `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		SSLMode  string `yaml:"sslmode"`
		Path     string `yaml:"path"`
	} `yaml:"database"`

	Server struct {
		Port        string   `yaml:"port"`
		Mode        string   `yaml:"mode"`
		CORSOrigins []string `yaml:"cors_origins"`
	} `yaml:"server"`

	Auth struct {
		SessionTTL string `yaml:"session_ttl"`
		AdminEmail string `yaml:"admin_email"`
	} `yaml:"auth"`

	Redis struct {
		Addr      string `yaml:"addr"`
		RateLimit int    `yaml:"rate_limit"`
	} `yaml:"redis"`

	Storage struct {
		Backend   string `yaml:"backend"`
		Endpoint  string `yaml:"endpoint"`
		AccessKey string `yaml:"access_key"`
		SecretKey string `yaml:"secret_key"`
		Bucket    string `yaml:"bucket"`
		UseSSL    bool   `yaml:"use_ssl"`
	} `yaml:"storage"`

	Log struct {
		File  string `yaml:"file"`
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Load builds the configuration from the optional YAML file and the environment.
func Load(path string) (*Config, error) {
	file, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if file == nil {
		file = &FileConfig{}
	}

	sessionTTL, err := parseDuration(getEnv("SESSION_TTL", file.Auth.SessionTTL), constants.DefaultSessionTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}

	rateLimit, err := strconv.Atoi(getEnv("RATE_LIMIT", strconv.Itoa(orInt(file.Redis.RateLimit, 120))))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT: %w", err)
	}

	useSSL, err := strconv.ParseBool(getEnv("S3_USE_SSL", strconv.FormatBool(file.Storage.UseSSL)))
	if err != nil {
		return nil, fmt.Errorf("invalid S3_USE_SSL: %w", err)
	}

	cfg := &Config{
		DBDriver:   getEnv("DB_DRIVER", or(file.Database.Driver, "postgres")),
		DBHost:     getEnv("DB_HOST", or(file.Database.Host, "localhost")),
		DBPort:     getEnv("DB_PORT", or(file.Database.Port, "5432")),
		DBUser:     getEnv("DB_USER", or(file.Database.User, "strivetrack")),
		DBPassword: getEnv("DB_PASSWORD", or(file.Database.Password, "strivetrack")),
		DBName:     getEnv("DB_NAME", or(file.Database.Name, "strivetrack")),
		DBSSLMode:  getEnv("DB_SSLMODE", or(file.Database.SSLMode, "disable")),
		DBPath:     getEnv("DB_PATH", or(file.Database.Path, "strivetrack.db")),

		Port:        getEnv("PORT", or(file.Server.Port, "8080")),
		GinMode:     getEnv("GIN_MODE", or(file.Server.Mode, "debug")),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", strings.Join(file.Server.CORSOrigins, ","))),

		SessionTTL: sessionTTL,
		AdminEmail: getEnv("ADMIN_EMAIL", file.Auth.AdminEmail),

		RedisAddr: getEnv("REDIS_ADDR", file.Redis.Addr),
		RateLimit: rateLimit,

		StorageBackend: getEnv("STORAGE_BACKEND", or(file.Storage.Backend, "memory")),
		S3Endpoint:     getEnv("S3_ENDPOINT", file.Storage.Endpoint),
		S3AccessKey:    getEnv("S3_ACCESS_KEY", file.Storage.AccessKey),
		S3SecretKey:    getEnv("S3_SECRET_KEY", file.Storage.SecretKey),
		S3Bucket:       getEnv("S3_BUCKET", or(file.Storage.Bucket, "strivetrack-media")),
		S3UseSSL:       useSSL,

		LogFile:  getEnv("LOG_FILE", file.Log.File),
		LogLevel: getEnv("LOG_LEVEL", or(file.Log.Level, "info")),
	}

	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"http://localhost:3000"}
	}

	return cfg, nil
}

// LoadFile reads the YAML config. An empty path searches the default
// locations and returns nil when none exists.
func LoadFile(path string) (*FileConfig, error) {
	if path == "" {
		path = os.Getenv("STRIVETRACK_CONFIG")
	}
	if path == "" {
		for _, loc := range []string{"strivetrack.yaml", "strivetrack.yml"} {
			if _, err := os.Stat(loc); err == nil {
				path = loc
				break
			}
		}
		if path == "" {
			return nil, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var file FileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &file, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func or(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func orInt(value, fallback int) int {
	if value == 0 {
		return fallback
	}
	return value
}

func parseDuration(value string, fallback time.Duration) (time.Duration, error) {
	if value == "" {
		return fallback, nil
	}
	return time.ParseDuration(value)
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
