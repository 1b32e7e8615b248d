package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends
const (
	StoreBackendFile     = "file"
	StoreBackendPostgres = "postgres"
	StoreBackendRedis    = "redis"
	StoreBackendS3       = "s3"
)

// Config holds all configuration for the application
type Config struct {
	// Server
	Port        string
	CORSOrigins []string
	Env         string

	// Storage
	StoreBackend string
	StoreDir     string
	DatabaseURL  string
	RedisURL     string
	S3           S3Config

	// Remote sync
	Sync SyncConfig

	// ProfileSeedFile is an optional YAML file with the profiles created on first start
	ProfileSeedFile string

	TracingEnabled bool
}

// S3Config holds AWS S3 configuration
type S3Config struct {
	Region          string
	Bucket          string
	Prefix          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // Optional: for MinIO/LocalStack local dev
}

// SyncConfig holds the default remote endpoint and the sync schedule
type SyncConfig struct {
	SheetID            string
	ScriptURL          string
	Enabled            bool
	HTTPTimeout        time.Duration
	PullSchedule       string
	RateLimitPerMinute int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		CORSOrigins:  strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
		Env:          getEnv("ENV", "development"),
		StoreBackend: strings.ToLower(getEnv("STORE_BACKEND", StoreBackendFile)),
		StoreDir:     getEnv("STORE_DIR", "./data"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		RedisURL:     getEnv("REDIS_URL", ""),
		S3: S3Config{
			Region:          getEnv("S3_REGION", "us-east-1"),
			Bucket:          getEnv("S3_BUCKET", "risk-manager"),
			Prefix:          getEnv("S3_PREFIX", "state/"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			Endpoint:        getEnv("S3_ENDPOINT", ""), // Empty = use AWS, set for MinIO/LocalStack
		},
		ProfileSeedFile: getEnv("PROFILE_SEED_FILE", ""),
	}

	var err error
	if cfg.Sync, err = loadSync(); err != nil {
		return nil, err
	}
	if cfg.TracingEnabled, err = getEnvBool("TRACING_ENABLED", false); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadSync() (SyncConfig, error) {
	s := SyncConfig{
		SheetID:      getEnv("SYNC_SHEET_ID", ""),
		ScriptURL:    getEnv("SYNC_SCRIPT_URL", ""),
		PullSchedule: getEnv("SYNC_PULL_SCHEDULE", ""),
	}
	var err error
	if s.Enabled, err = getEnvBool("SYNC_ENABLED", false); err != nil {
		return s, err
	}
	if s.HTTPTimeout, err = getEnvDuration("SYNC_HTTP_TIMEOUT", 30*time.Second); err != nil {
		return s, err
	}
	if s.RateLimitPerMinute, err = getEnvInt("SYNC_RATE_LIMIT_PER_MINUTE", 6); err != nil {
		return s, err
	}
	return s, nil
}

func (c *Config) validate() error {
	switch c.StoreBackend {
	case StoreBackendFile:
		if c.StoreDir == "" {
			return fmt.Errorf("STORE_DIR is required for the file backend")
		}
	case StoreBackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
	case StoreBackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required for the redis backend")
		}
	case StoreBackendS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for the s3 backend")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if c.Sync.HTTPTimeout <= 0 {
		return fmt.Errorf("SYNC_HTTP_TIMEOUT must be positive")
	}
	if c.Sync.RateLimitPerMinute <= 0 {
		return fmt.Errorf("SYNC_RATE_LIMIT_PER_MINUTE must be positive")
	}
	return nil
}

// IsProduction reports whether the app runs with ENV=production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return b, nil
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}
