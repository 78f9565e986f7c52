package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "STORAGE_DRIVER", "REDIS_URL", "STATS_CACHE_TTL", "REVIEWER_EMAILS", "MINIO_ENDPOINT", "SEED_DATA", "ENVIRONMENT"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StorageDriverPostgres, cfg.StorageDriver)
	assert.Equal(t, 5*time.Minute, cfg.StatsCacheTTL)
	assert.Equal(t, "catalog-docs", cfg.MinIOBucket)
	assert.Empty(t, cfg.RedisURL)
	assert.Empty(t, cfg.ReviewerEmails)
	assert.False(t, cfg.SeedData)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("STATS_CACHE_TTL", "30s")
	t.Setenv("REVIEWER_EMAILS", "a@example.com, b@example.com,,")
	t.Setenv("SEED_DATA", "true")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")
	t.Setenv("ENVIRONMENT", "production")

	cfg := Load()
	assert.Equal(t, StorageDriverMemory, cfg.StorageDriver)
	assert.Equal(t, 30*time.Second, cfg.StatsCacheTTL)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, cfg.ReviewerEmails)
	assert.True(t, cfg.SeedData)
	assert.Equal(t, 25, cfg.DBMaxOpenConns)
	assert.True(t, cfg.IsProduction())
}

func TestMinIOPublicBaseURL(t *testing.T) {
	cfg := &Config{MinIOEndpoint: "minio:9000"}
	assert.Equal(t, "http://minio:9000", cfg.MinIOPublicBaseURL())

	cfg.MinIOUseSSL = true
	assert.Equal(t, "https://minio:9000", cfg.MinIOPublicBaseURL())

	cfg.MinIOPublicURL = "https://files.example.com/"
	assert.Equal(t, "https://files.example.com", cfg.MinIOPublicBaseURL())
}
