package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeKVs_RedactsSecrets(t *testing.T) {
	out := sanitizeKVs([]interface{}{"jwt_token", "abc", "product_id", 7, "API_KEY", "re_123", "dangling"})

	assert.Equal(t, []interface{}{"jwt_token", "[REDACTED]", "product_id", 7, "API_KEY", "[REDACTED]", "dangling"}, out)
}

func TestNewNop(t *testing.T) {
	log := NewNop()
	assert.NotPanics(t, func() {
		log.With("request_id", 1).Info("hello", "k", "v")
		log.Sync()
	})
}
