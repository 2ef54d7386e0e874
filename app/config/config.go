package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Blacklist store backends selectable via BLACKLIST_STORE.
const (
	BlacklistStorePostgres = "postgres"
	BlacklistStoreRedis    = "redis"
	BlacklistStoreMemory   = "memory"
)

// Config holds all configuration for the catalog service.
type Config struct {
	// Server
	Port     string
	Host     string
	LogLevel string

	// Database
	DatabaseURL      string
	DatabaseHost     string
	DatabasePort     string
	DatabaseName     string
	DatabaseUser     string
	DatabasePassword string
	DatabaseSSLMode  string

	// Token signing
	JWTSecret string
	TokenTTL  time.Duration

	// Revocation
	BlacklistStore    string
	SweepInterval     time.Duration
	RevocationTimeout time.Duration

	// Redis (only used when BlacklistStore is "redis")
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Credentials
	BcryptCost        int
	SeedAdmin         bool
	SeedAdminPassword string

	// Rate limiting for the auth endpoints
	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.Port = getEnvOrDefault("PORT", "9500")
	cfg.Host = getEnvOrDefault("HOST", "0.0.0.0")
	cfg.LogLevel = getEnvOrDefault("LOG_LEVEL", "info")

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.DatabaseHost = getEnvOrDefault("DB_HOST", "localhost")
	cfg.DatabasePort = getEnvOrDefault("DB_PORT", "5432")
	cfg.DatabaseName = getEnvOrDefault("DB_NAME", "catalog_db")
	cfg.DatabaseUser = getEnvOrDefault("DB_USER", "catalog_user")
	cfg.DatabasePassword = os.Getenv("DB_PASSWORD")
	cfg.DatabaseSSLMode = getEnvOrDefault("DB_SSL_MODE", "require")
	if cfg.DatabaseURL == "" && cfg.DatabasePassword == "" {
		return nil, fmt.Errorf("DATABASE_URL or DB_PASSWORD is required")
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	var err error
	cfg.TokenTTL, err = getDurationEnv("TOKEN_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}

	cfg.BlacklistStore = getEnvOrDefault("BLACKLIST_STORE", BlacklistStorePostgres)

	cfg.SweepInterval, err = getDurationEnv("BLACKLIST_SWEEP_INTERVAL", 24*time.Hour)
	if err != nil {
		return nil, err
	}

	cfg.RevocationTimeout, err = getDurationEnv("REVOCATION_TIMEOUT", 2*time.Second)
	if err != nil {
		return nil, err
	}

	cfg.RedisAddr = getEnvOrDefault("REDIS_ADDR", "localhost:6379")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.RedisDB, err = getIntEnv("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	cfg.BcryptCost, err = getIntEnv("BCRYPT_COST", 12)
	if err != nil {
		return nil, err
	}

	cfg.SeedAdmin = getBoolEnv("SEED_ADMIN", true)
	cfg.SeedAdminPassword = getEnvOrDefault("SEED_ADMIN_PASSWORD", "admin")

	cfg.RateLimitRPS, err = getFloatEnv("RATE_LIMIT_RPS", 10)
	if err != nil {
		return nil, err
	}
	cfg.RateLimitBurst, err = getIntEnv("RATE_LIMIT_BURST", 20)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("invalid port: %s", c.Port)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535: %s", c.Port)
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	// The signing key must carry at least 256 bits of entropy.
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 bytes, got %d", len(c.JWTSecret))
	}

	switch c.BlacklistStore {
	case BlacklistStorePostgres, BlacklistStoreRedis, BlacklistStoreMemory:
	default:
		return fmt.Errorf("invalid blacklist store: %s (must be postgres, redis, or memory)", c.BlacklistStore)
	}

	if c.TokenTTL < time.Minute {
		return fmt.Errorf("token TTL must be at least 1 minute, got: %v", c.TokenTTL)
	}
	if c.SweepInterval < time.Minute {
		return fmt.Errorf("blacklist sweep interval must be at least 1 minute, got: %v", c.SweepInterval)
	}
	if c.RevocationTimeout <= 0 {
		return fmt.Errorf("revocation timeout must be positive, got: %v", c.RevocationTimeout)
	}

	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("bcrypt cost must be between 4 and 31, got: %d", c.BcryptCost)
	}

	return nil
}

// DSN returns the Postgres connection string. DATABASE_URL wins when set;
// otherwise the DSN is assembled from the DB_* parts.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DatabaseUser,
		c.DatabasePassword,
		c.DatabaseHost,
		c.DatabasePort,
		c.DatabaseName,
		c.DatabaseSSLMode,
	)
}

// Helper functions

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func getFloatEnv(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func getDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
