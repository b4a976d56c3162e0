package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"bookstore-api/internal/core/domain"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode           string          `env:"APP_MODE" envDefault:"dev"`
	Port              string          `env:"PORT" envDefault:"3000"`
	AllowedOrigins    string          `env:"ALLOWED_ORIGINS"`
	PasswordMinLength int             `env:"PASSWORD_MIN_LENGTH" envDefault:"1"`
	Database          DatabaseConfig
	JWT               JWTConfig
	Storage           StorageConfig
	RateLimit         RateLimitConfig
	Seed              SeedConfig
	Jobs              JobsConfig
}

// DatabaseConfig holds database configuration. Every key is read with the
// DEV_ or PROD_ prefix selected by APP_MODE.
type DatabaseConfig struct {
	Driver   string `env:"DB_DRIVER" envDefault:"mysql"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"3306"`
	User     string `env:"DB_USER" envDefault:"root"`
	Password string `env:"DB_PASS"`
	DBName   string `env:"DB_NAME" envDefault:"bookstore"`
}

// JWTConfig holds access token configuration. Key and issuer have no
// defaults and must come from the environment.
type JWTConfig struct {
	Key    string `env:"JWT_KEY,required,notEmpty"`
	Issuer string `env:"JWT_ISSUER,required,notEmpty"`
	// AccessTokenMins is the token validity window. Defaults to 300 (5 hours).
	AccessTokenMins int `env:"ACCESS_TOKEN_MINUTES" envDefault:"300"`
}

// StorageConfig selects and configures the book image store
type StorageConfig struct {
	Backend    string `env:"ASSET_BACKEND" envDefault:"local"`
	UploadsDir string `env:"UPLOADS_DIR" envDefault:"uploads"`
	S3Bucket   string `env:"S3_BUCKET"`
	S3Region   string `env:"S3_REGION" envDefault:"us-east-1"`
	S3Endpoint string `env:"S3_ENDPOINT"`
	S3Prefix   string `env:"S3_PREFIX" envDefault:"uploads/"`
	S3User     string `env:"S3_ACCESS_KEY"`
	S3Password string `env:"S3_SECRET_KEY"`
}

// RateLimitConfig holds per-IP limits per minute. Zero disables a limiter.
type RateLimitConfig struct {
	General int `env:"RATE_LIMIT_GENERAL" envDefault:"100"`
	Auth    int `env:"RATE_LIMIT_AUTH" envDefault:"5"`
}

// SeedConfig controls the optional demo users
type SeedConfig struct {
	Users    bool   `env:"SEED_USERS" envDefault:"false"`
	Password string `env:"SEED_PASSWORD"`
}

// JobsConfig holds cron schedules. An empty schedule disables the job.
type JobsConfig struct {
	AssetAuditSchedule string `env:"ASSET_AUDIT_SCHEDULE"`
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return Parse()
}

// Parse builds the config from the process environment only
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConfiguration, err)
	}

	// Trim spaces for Windows compatibility
	cfg.AppMode = strings.TrimSpace(cfg.AppMode)
	if cfg.AppMode != "dev" && cfg.AppMode != "prod" {
		return nil, fmt.Errorf("%w: invalid APP_MODE: '%s' (must be 'dev' or 'prod')", domain.ErrConfiguration, cfg.AppMode)
	}

	prefix := "DEV_"
	if cfg.AppMode == "prod" {
		prefix = "PROD_"
	}
	if err := env.ParseWithOptions(&cfg.Database, env.Options{Prefix: prefix}); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConfiguration, err)
	}

	if cfg.JWT.AccessTokenMins <= 0 {
		return nil, fmt.Errorf("%w: ACCESS_TOKEN_MINUTES must be positive", domain.ErrConfiguration)
	}
	switch cfg.Storage.Backend {
	case "local":
	case "s3":
		if cfg.Storage.S3Bucket == "" {
			return nil, fmt.Errorf("%w: S3_BUCKET is required when ASSET_BACKEND=s3", domain.ErrConfiguration)
		}
	default:
		return nil, fmt.Errorf("%w: invalid ASSET_BACKEND: '%s' (must be 'local' or 's3')", domain.ErrConfiguration, cfg.Storage.Backend)
	}

	return &cfg, nil
}

// TokenValidity returns the access token lifetime
func (c *Config) TokenValidity() time.Duration {
	return time.Duration(c.JWT.AccessTokenMins) * time.Minute
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	if c.AllowedOrigins == "" {
		if c.IsDev() {
			return "*"
		}
		return "http://localhost:5000"
	}
	return c.AllowedOrigins
}
