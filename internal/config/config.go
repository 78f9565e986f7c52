package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	Port        string
	Environment string

	StorageDriver  string
	DatabaseURL    string
	DBMaxOpenConns int
	DBMaxIdleConns int
	AutoMigrate    bool

	RedisURL      string
	StatsCacheTTL time.Duration

	JWTSecret string

	MinIOEndpoint  string
	MinIOPublicURL string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool

	CORSOrigins string

	ResendAPIKey   string
	FromEmail      string
	ReviewerEmails []string
	AppURL         string

	DefaultLocale string
	SeedData      bool

	OTelEnabled bool
	OTelStdout  bool
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		StorageDriver:  strings.ToLower(getEnv("STORAGE_DRIVER", StorageDriverPostgres)),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		DBMaxOpenConns: getIntEnv("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getIntEnv("DB_MAX_IDLE_CONNS", 5),
		AutoMigrate:    getBoolEnv("AUTO_MIGRATE", false),

		RedisURL:      getEnv("REDIS_URL", ""),
		StatsCacheTTL: getDurationEnv("STATS_CACHE_TTL", 5*time.Minute),

		JWTSecret: getEnv("JWT_SECRET", ""),

		MinIOEndpoint:  getEnv("MINIO_ENDPOINT", ""),
		MinIOPublicURL: getEnv("MINIO_PUBLIC_URL", ""),
		MinIOAccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinIOSecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinIOBucket:    getEnv("MINIO_BUCKET", "catalog-docs"),
		MinIOUseSSL:    getBoolEnv("MINIO_USE_SSL", false),

		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:5173"),

		ResendAPIKey:   getEnv("RESEND_API_KEY", ""),
		FromEmail:      getEnv("FROM_EMAIL", "noreply@example.com"),
		ReviewerEmails: getListEnv("REVIEWER_EMAILS"),
		AppURL:         getEnv("APP_URL", "http://localhost:5173"),

		DefaultLocale: getEnv("DEFAULT_LOCALE", "en"),
		SeedData:      getBoolEnv("SEED_DATA", false),

		OTelEnabled: getBoolEnv("OTEL_ENABLED", false),
		OTelStdout:  getBoolEnv("OTEL_STDOUT", false),
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// MinIOPublicBaseURL is the prefix used for documentation links handed to clients.
func (c *Config) MinIOPublicBaseURL() string {
	if c.MinIOPublicURL != "" {
		return strings.TrimRight(c.MinIOPublicURL, "/")
	}
	scheme := "http"
	if c.MinIOUseSSL {
		scheme = "https"
	}
	return scheme + "://" + c.MinIOEndpoint
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getListEnv(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
