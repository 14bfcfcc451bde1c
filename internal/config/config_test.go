package config

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(n int) string {
	return base64.StdEncoding.EncodeToString([]byte(strings.Repeat("k", n)))
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "http://localhost:8000", cfg.BackendURL)
	assert.Equal(t, 15*time.Second, cfg.BackendTimeout)
	assert.Equal(t, time.Minute, cfg.CatalogCacheTTL)
	assert.Equal(t, 30*time.Second, cfg.CatalogRefresh)
	assert.Equal(t, "reservations.booked", cfg.KafkaTopic)
	assert.Equal(t, "America/New_York", cfg.Location.String())
	assert.Empty(t, cfg.RedisAddr)
	assert.Error(t, cfg.RequireSessionKeys())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9090")
	t.Setenv("BACKEND_URL", "https://api.example.com/")
	t.Setenv("BACKEND_TIMEOUT_SECONDS", "5")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("KAFKA_BROKERS", "a:9092,b:9092")
	t.Setenv("COOKIE_HASH_KEY", key(32))
	t.Setenv("COOKIE_BLOCK_KEY", key(16))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "https://api.example.com", cfg.BackendURL)
	assert.Equal(t, 5*time.Second, cfg.BackendTimeout)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, "a:9092,b:9092", cfg.KafkaBrokers)
	assert.NoError(t, cfg.RequireSessionKeys())
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		env, value string
	}{
		{"BACKEND_TIMEOUT_SECONDS", "0"},
		{"CATALOG_REFRESH_SECONDS", "-1"},
		{"TIMEZONE", "Mars/Olympus"},
		{"COOKIE_HASH_KEY", "not base64!"},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv(tt.env, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestCookieKeyFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hash")
	require.NoError(t, os.WriteFile(path, []byte(key(64)+"\n"), 0o600))
	t.Setenv("COOKIE_HASH_KEY", path)
	t.Setenv("COOKIE_BLOCK_KEY", key(32))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Len(t, cfg.CookieHashKey, 64)
	assert.NoError(t, cfg.RequireSessionKeys())
}

func TestRequireSessionKeysLengths(t *testing.T) {
	assert.Error(t, Config{CookieHashKey: make([]byte, 16), CookieBlockKey: make([]byte, 16)}.RequireSessionKeys())
	assert.Error(t, Config{CookieHashKey: make([]byte, 32), CookieBlockKey: make([]byte, 20)}.RequireSessionKeys())
	assert.NoError(t, Config{CookieHashKey: make([]byte, 32), CookieBlockKey: make([]byte, 24)}.RequireSessionKeys())
}
