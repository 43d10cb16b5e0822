package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	GoEnv string `env:"GO_ENV" default:"development"`

	// Service Ports
	HTTPPort int `env:"HTTP_PORT" default:"8080"`

	// Database: postgres:// or postgresql:// URLs go through pgx, anything else is a SQLite path
	DatabaseURL string `env:"DATABASE_URL" default:"yamdb.db"`

	// Authentication
	JWTSecret       string        `env:"JWT_SECRET" required:"true"`
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL" default:"24h"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL" default:"168h"`

	// Auth endpoint throttling (events per minute per client IP)
	AuthRateLimit int `env:"AUTH_RATE_LIMIT" default:"30"`
	AuthRateBurst int `env:"AUTH_RATE_BURST" default:"5"`

	// Redis Cache (empty URL disables the rating cache)
	RedisURL string        `env:"REDIS_URL"`
	CacheTTL time.Duration `env:"CACHE_TTL" default:"1h"`

	// Mail delivery
	MailBackend  string `env:"MAIL_BACKEND"` // defaults to log in development, smtp elsewhere
	SMTPHost     string `env:"SMTP_HOST" default:"localhost"`
	SMTPPort     int    `env:"SMTP_PORT" default:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	MailFrom     string `env:"MAIL_FROM" default:"noreply@yamdb.local"`

	// Pagination
	PageSize    int `env:"PAGE_SIZE" default:"100"`
	MaxPageSize int `env:"MAX_PAGE_SIZE" default:"1000"`

	// Development
	LogLevel    string   `env:"LOG_LEVEL" default:"debug"`
	LogFormat   string   `env:"LOG_FORMAT" default:"text"`
	CORSOrigins []string `env:"CORS_ORIGINS" default:"http://localhost:3000"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// .env is optional, system env vars still apply without it
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	config := &Config{}

	loadEnvString(&config.GoEnv, "GO_ENV", "development")
	if err := loadEnvInt(&config.HTTPPort, "HTTP_PORT", 8080); err != nil {
		return nil, err
	}
	loadEnvString(&config.DatabaseURL, "DATABASE_URL", "yamdb.db")

	// Authentication
	if err := loadEnvStringRequired(&config.JWTSecret, "JWT_SECRET"); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.AccessTokenTTL, "ACCESS_TOKEN_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.RefreshTokenTTL, "REFRESH_TOKEN_TTL", 7*24*time.Hour); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.AuthRateLimit, "AUTH_RATE_LIMIT", 30); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.AuthRateBurst, "AUTH_RATE_BURST", 5); err != nil {
		return nil, err
	}

	// Redis
	loadEnvString(&config.RedisURL, "REDIS_URL", "")
	if err := loadEnvDuration(&config.CacheTTL, "CACHE_TTL", time.Hour); err != nil {
		return nil, err
	}

	// Mail
	loadEnvString(&config.MailBackend, "MAIL_BACKEND", config.defaultMailBackend())
	loadEnvString(&config.SMTPHost, "SMTP_HOST", "localhost")
	if err := loadEnvInt(&config.SMTPPort, "SMTP_PORT", 587); err != nil {
		return nil, err
	}
	loadEnvString(&config.SMTPUsername, "SMTP_USERNAME", "")
	loadEnvString(&config.SMTPPassword, "SMTP_PASSWORD", "")
	loadEnvString(&config.MailFrom, "MAIL_FROM", "noreply@yamdb.local")

	// Pagination
	if err := loadEnvInt(&config.PageSize, "PAGE_SIZE", 100); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.MaxPageSize, "MAX_PAGE_SIZE", 1000); err != nil {
		return nil, err
	}

	// Development
	loadEnvString(&config.LogLevel, "LOG_LEVEL", "debug")
	loadEnvString(&config.LogFormat, "LOG_FORMAT", "text")
	loadEnvStringSlice(&config.CORSOrigins, "CORS_ORIGINS", []string{"http://localhost:3000"})

	return config, nil
}

// Helper functions for type conversion and validation
func loadEnvString(target *string, key, defaultValue string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	} else {
		*target = defaultValue
	}
}

func loadEnvStringRequired(target *string, key string) error {
	value := os.Getenv(key)
	if value == "" {
		return fmt.Errorf("required environment variable %s is not set", key)
	}
	*target = value
	return nil
}

func loadEnvInt(target *int, key string, defaultValue int) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvDuration(target *time.Duration, key string, defaultValue time.Duration) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvStringSlice(target *[]string, key string, defaultValue []string) {
	if value := os.Getenv(key); value != "" {
		*target = strings.Split(value, ",")
		for i, v := range *target {
			(*target)[i] = strings.TrimSpace(v)
		}
	} else {
		*target = defaultValue
	}
}

// Validate performs validation on the loaded configuration
func (c *Config) Validate() error {
	var errors []string

	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errors = append(errors, "HTTP_PORT must be between 1 and 65535")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: %s", strings.Join(validLogLevels, ", ")))
	}

	validLogFormats := []string{"text", "json"}
	if !contains(validLogFormats, c.LogFormat) {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: %s", strings.Join(validLogFormats, ", ")))
	}

	validMailBackends := []string{"smtp", "log"}
	if !contains(validMailBackends, c.MailBackend) {
		errors = append(errors, fmt.Sprintf("MAIL_BACKEND must be one of: %s", strings.Join(validMailBackends, ", ")))
	}

	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		errors = append(errors, "ACCESS_TOKEN_TTL and REFRESH_TOKEN_TTL must be positive")
	}

	if c.AuthRateLimit < 1 || c.AuthRateBurst < 1 {
		errors = append(errors, "AUTH_RATE_LIMIT and AUTH_RATE_BURST must be at least 1")
	}

	if c.PageSize < 1 || c.MaxPageSize < c.PageSize {
		errors = append(errors, "PAGE_SIZE must be at least 1 and not exceed MAX_PAGE_SIZE")
	}

	// HS256 secrets shorter than the hash output are brute-forceable
	if c.IsProduction() && len(c.JWTSecret) < 32 {
		errors = append(errors, "JWT_SECRET should be at least 32 characters long")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

func (c *Config) defaultMailBackend() string {
	if c.IsDevelopment() {
		return "log"
	}
	return "smtp"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// UsesPostgres reports whether DatabaseURL points at a PostgreSQL server.
func (c *Config) UsesPostgres() bool {
	return strings.HasPrefix(c.DatabaseURL, "postgres://") || strings.HasPrefix(c.DatabaseURL, "postgresql://")
}

// Helper function to check if slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
