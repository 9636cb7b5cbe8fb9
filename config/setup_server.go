package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultSessionTTL   = 7 * 24 * time.Hour
	defaultResetTTL     = time.Hour
	defaultMaxFileBytes = 10 << 20
)

// DefaultAllowedTypes is the upload MIME allow-list: PDF, Word, Excel and common images.
var DefaultAllowedTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.ms-excel",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"image/png",
	"image/jpeg",
	"image/gif",
}

type AppConfig struct {
	Server         ServerConfig        `yaml:"server"`
	DatabaseConfig DatabaseConfig      `yaml:"databaseConfig"`
	RedisConfig    RedisConfig         `yaml:"redisConfig"`
	S3Config       S3Config            `yaml:"s3Config"`
	Session        SessionConfig       `yaml:"session"`
	Upload         UploadConfig        `yaml:"upload"`
	PasswordReset  PasswordResetConfig `yaml:"passwordReset"`
}

// LoadConfig reads .env (if present), the yaml file at path (if present) and
// environment overrides, then fills every unset field with its default.
func LoadConfig(path string) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg AppConfig

	file, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(file, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, err
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	if cfg.Session.SecretKey == "" {
		return nil, errors.New("session secret key is not configured")
	}

	return &cfg, nil
}

func applyEnv(cfg *AppConfig) {
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.Server.Environment = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.DatabaseConfig.DSN = v
	}
	if v := os.Getenv("SESSION_SECRET"); v != "" {
		cfg.Session.SecretKey = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisConfig.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.RedisConfig.Password = v
	}
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.Environment == "" {
		cfg.Server.Environment = "development"
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 30 * time.Second
	}
	if cfg.DatabaseConfig.MaxOpenConns == 0 {
		cfg.DatabaseConfig.MaxOpenConns = 10
	}
	if cfg.DatabaseConfig.MaxIdleConns == 0 {
		cfg.DatabaseConfig.MaxIdleConns = 5
	}
	if cfg.DatabaseConfig.ConnMaxIdleTime == 0 {
		cfg.DatabaseConfig.ConnMaxIdleTime = 30 * time.Second
	}
	if cfg.RedisConfig.ListTTL == 0 {
		cfg.RedisConfig.ListTTL = 30 * time.Second
	}
	if cfg.Session.TTL == 0 {
		cfg.Session.TTL = defaultSessionTTL
	}
	if cfg.Session.CookieName == "" {
		cfg.Session.CookieName = "session"
	}
	if cfg.Upload.MaxSizeBytes == 0 {
		cfg.Upload.MaxSizeBytes = defaultMaxFileBytes
	}
	if len(cfg.Upload.AllowedTypes) == 0 {
		cfg.Upload.AllowedTypes = DefaultAllowedTypes
	}
	if cfg.S3Config.Local {
		if cfg.S3Config.AccessKey == "" {
			cfg.S3Config.AccessKey = "minioadmin"
		}
		if cfg.S3Config.SecretKey == "" {
			cfg.S3Config.SecretKey = "minioadmin"
		}
	}
	if cfg.S3Config.Region == "" {
		cfg.S3Config.Region = "us-east-1"
	}
	if cfg.PasswordReset.TTL == 0 {
		cfg.PasswordReset.TTL = defaultResetTTL
	}
}

func SetupServer(cfg ServerConfig) (*http.Server, *chi.Mux) {
	router := chi.NewRouter()
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return server, router
}

func SetupDatabase(cfg DatabaseConfig) (*Database, error) {
	return NewDatabaseConnection("postgres", cfg)
}

func SetupRedis(cfg *RedisConfig) (*RedisClient, error) {
	return NewRedisClient(cfg)
}
