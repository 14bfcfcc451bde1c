package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ListenAddr     string
	DatabaseURL    string
	CookieHashKey  []byte
	CookieBlockKey []byte

	// backend
	BackendURL     string
	BackendToken   string
	BackendTimeout time.Duration
	Timezone       string
	Location       *time.Location

	// catalog cache
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	CatalogCacheTTL time.Duration
	CatalogRefresh  time.Duration

	KafkaBrokers string
	KafkaTopic   string

	LogLevel  string
	LogFormat string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("database_url", "")
	v.SetDefault("cookie_hash_key", "")
	v.SetDefault("cookie_block_key", "")
	v.SetDefault("backend_url", "http://localhost:8000")
	v.SetDefault("backend_token", "")
	v.SetDefault("backend_timeout_seconds", 15)
	v.SetDefault("timezone", "America/New_York")
	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("catalog_cache_ttl_seconds", 60)
	v.SetDefault("catalog_refresh_seconds", 30)
	v.SetDefault("kafka_brokers", "")
	v.SetDefault("kafka_topic", "reservations.booked")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
}

// Load reads tablefinder.yaml from . or ./config when present, then lets environment
// variables (LISTEN_ADDR, BACKEND_URL, ...) override it.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("tablefinder")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	setDefaults(v)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		ListenAddr:    v.GetString("listen_addr"),
		DatabaseURL:   v.GetString("database_url"),
		BackendURL:    strings.TrimSuffix(v.GetString("backend_url"), "/"),
		BackendToken:  v.GetString("backend_token"),
		Timezone:      v.GetString("timezone"),
		RedisAddr:     v.GetString("redis_addr"),
		RedisPassword: v.GetString("redis_password"),
		RedisDB:       v.GetInt("redis_db"),
		KafkaBrokers:  v.GetString("kafka_brokers"),
		KafkaTopic:    v.GetString("kafka_topic"),
		LogLevel:      v.GetString("log_level"),
		LogFormat:     v.GetString("log_format"),
	}

	var err error
	if cfg.BackendTimeout, err = seconds(v, "backend_timeout_seconds"); err != nil {
		return Config{}, err
	}
	if cfg.CatalogCacheTTL, err = seconds(v, "catalog_cache_ttl_seconds"); err != nil {
		return Config{}, err
	}
	if cfg.CatalogRefresh, err = seconds(v, "catalog_refresh_seconds"); err != nil {
		return Config{}, err
	}
	if cfg.Location, err = time.LoadLocation(cfg.Timezone); err != nil {
		return Config{}, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}
	if cfg.CookieHashKey, err = decodeB64(v.GetString("cookie_hash_key")); err != nil {
		return Config{}, fmt.Errorf("COOKIE_HASH_KEY: %w", err)
	}
	if cfg.CookieBlockKey, err = decodeB64(v.GetString("cookie_block_key")); err != nil {
		return Config{}, fmt.Errorf("COOKIE_BLOCK_KEY: %w", err)
	}
	return cfg, nil
}

// RequireSessionKeys is checked by commands that issue session cookies.
func (c Config) RequireSessionKeys() error {
	if len(c.CookieHashKey) == 0 || len(c.CookieBlockKey) == 0 {
		return errors.New("COOKIE_HASH_KEY and COOKIE_BLOCK_KEY are required (32 and 16/24/32 bytes base64)")
	}
	if len(c.CookieHashKey) < 32 {
		return fmt.Errorf("COOKIE_HASH_KEY must be at least 32 bytes, got %d", len(c.CookieHashKey))
	}
	switch len(c.CookieBlockKey) {
	case 16, 24, 32:
	default:
		return fmt.Errorf("COOKIE_BLOCK_KEY must be 16, 24 or 32 bytes, got %d", len(c.CookieBlockKey))
	}
	return nil
}

func seconds(v *viper.Viper, key string) (time.Duration, error) {
	n := v.GetInt(key)
	if n < 1 {
		return 0, fmt.Errorf("invalid %s: must be a positive number of seconds", strings.ToUpper(key))
	}
	return time.Duration(n) * time.Second, nil
}

// decodeB64 accepts the key itself or a path to a file holding it (k8s secret mounts).
func decodeB64(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	if b, err := os.ReadFile(s); err == nil {
		s = string(b)
	}
	return base64.StdEncoding.DecodeString(strings.TrimSpace(s))
}
