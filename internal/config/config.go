// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor
// principles. A .env file, when present, fills variables that are not
// already set.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// DotEnvFile is read by Load when it exists.
const DotEnvFile = ".env"

// Config holds all application configuration.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"8080"`

	// Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`
	DBMaxConns  int32  `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMinConns  int32  `env:"DB_MIN_CONNS" envDefault:"0"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" envDefault:"false"`

	// Product cache (Redis). Empty disables caching.
	RedisURL        string        `env:"REDIS_URL"`
	ProductCacheTTL time.Duration `env:"PRODUCT_CACHE_TTL" envDefault:"10m"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Comma-separated list of allowed origins (e.g., "https://example.com,https://*.example.org")
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:""`

	// Request body size limit in bytes (default 1MB)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"1048576"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// CacheEnabled reports whether a Redis URL is configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisURL != ""
}

// GetCORSAllowedOrigins parses the comma-separated origins string into a slice.
func (c *Config) GetCORSAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}

	origins := strings.Split(c.CORSAllowedOrigins, ",")
	result := make([]string, 0, len(origins))

	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// Validate checks values that parse but make no sense together.
func (c *Config) Validate() error {
	var errs []error

	if c.AppPort < 1 || c.AppPort > 65535 {
		errs = append(errs, fmt.Errorf("APP_PORT %d out of range", c.AppPort))
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat))
	}
	if c.DBMaxConns < 0 || c.DBMinConns < 0 {
		errs = append(errs, errors.New("DB_MAX_CONNS and DB_MIN_CONNS must not be negative"))
	}
	if c.DBMaxConns > 0 && c.DBMinConns > c.DBMaxConns {
		errs = append(errs, fmt.Errorf("DB_MIN_CONNS %d exceeds DB_MAX_CONNS %d", c.DBMinConns, c.DBMaxConns))
	}
	if c.MaxRequestBodySize <= 0 {
		errs = append(errs, errors.New("MAX_REQUEST_BODY_SIZE must be positive"))
	}

	return errors.Join(errs...)
}

// Load reads .env if present, parses environment variables and validates
// the result. Returns an error if required variables are missing.
func Load() (*Config, error) {
	return LoadFile(DotEnvFile)
}

// LoadFile is Load with an explicit dotenv path.
func LoadFile(path string) (*Config, error) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
