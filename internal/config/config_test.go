package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordling/internal/config"
)

var allKeys = []string{
	"PORT", "LOG_LEVEL", "MAX_ATTEMPTS", "WORD_LIST", "WORDS_FILE", "STORE",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "SQLITE_PATH", "SESSION_SECRET",
	"SESSION_TTL", "CLIENT_ORIGIN", "DAILY_SALT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := config.FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "5175", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 4, cfg.MaxAttempts)
	assert.Equal(t, "Golden Words", cfg.WordList)
	assert.Equal(t, "memory", cfg.Store)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("MAX_ATTEMPTS", "6")
	t.Setenv("WORD_LIST", "All Lists")
	t.Setenv("STORE", "redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SESSION_TTL", "90m")

	cfg, err := config.FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 6, cfg.MaxAttempts)
	assert.Equal(t, "All Lists", cfg.WordList)
	assert.Equal(t, "redis", cfg.Store)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 90*time.Minute, cfg.SessionTTL)
}

func TestFromEnv_Invalid(t *testing.T) {
	cases := map[string]string{
		"MAX_ATTEMPTS": "many",
		"REDIS_DB":     "x",
		"SESSION_TTL":  "forever",
		"STORE":        "postgres",
	}
	for k, v := range cases {
		t.Run(k, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(k, v)
			_, err := config.FromEnv()
			assert.Error(t, err)
		})
	}

	clearEnv(t)
	t.Setenv("MAX_ATTEMPTS", "0")
	_, err := config.FromEnv()
	assert.Error(t, err)
}
