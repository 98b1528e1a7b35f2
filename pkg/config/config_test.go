package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 500, cfg.ChatMaxMessageLength)
	assert.Equal(t, int64(72), cfg.CartTTLHours)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("CHAT_MAX_MESSAGE_LENGTH", "100")
	t.Setenv("CART_TTL_HOURS", "24")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.ServerPort)
	assert.Equal(t, 100, cfg.ChatMaxMessageLength)
	assert.Equal(t, int64(24), cfg.CartTTLHours)

	// Unparseable numbers fall back to the default.
	assert.Equal(t, 0, cfg.RedisDB)
}
