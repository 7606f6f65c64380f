package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Jobs     JobsConfig
	Lock     LockConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// JobsConfig holds the daily trigger times for the batch jobs (UTC, "HH:MM").
type JobsConfig struct {
	ReconcileAt string
	FinalizeAt  string
}

// LockConfig selects the distributed lock backend. "postgres" uses advisory
// locks on the main pool; "redis" uses a TTL lease; "memory" is for
// single-instance deployments.
type LockConfig struct {
	Backend   string
	RedisAddr string
	RedisDB   int
	LeaseTTL  time.Duration
}

func Load() (*Config, error) {
	// Missing .env is fine in containerized deployments; env vars win anyway.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hr-management"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Batch job triggers. Reconciliation runs before finalization on purpose:
	// finalization freezes whatever reconciliation enriched.
	config.Jobs = JobsConfig{
		ReconcileAt: getEnv("JOB_RECONCILE_AT", "00:05"),
		FinalizeAt:  getEnv("JOB_FINALIZE_AT", "00:10"),
	}

	redisDB, err := strconv.Atoi(getEnv("LOCK_REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOCK_REDIS_DB: %w", err)
	}
	leaseTTL, err := time.ParseDuration(getEnv("LOCK_LEASE_TTL", "35m"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOCK_LEASE_TTL: %w", err)
	}

	config.Lock = LockConfig{
		Backend:   getEnv("LOCK_BACKEND", "postgres"),
		RedisAddr: getEnv("LOCK_REDIS_ADDR", "localhost:6379"),
		RedisDB:   redisDB,
		LeaseTTL:  leaseTTL,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.Parse("15:04", c.Jobs.ReconcileAt); err != nil {
		return fmt.Errorf("invalid JOB_RECONCILE_AT: %w", err)
	}
	if _, err := time.Parse("15:04", c.Jobs.FinalizeAt); err != nil {
		return fmt.Errorf("invalid JOB_FINALIZE_AT: %w", err)
	}
	switch c.Lock.Backend {
	case "postgres", "redis", "memory":
	default:
		return fmt.Errorf("unsupported LOCK_BACKEND: %s", c.Lock.Backend)
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
