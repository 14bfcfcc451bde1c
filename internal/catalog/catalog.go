// Package catalog serves restaurant snapshots, optionally through a Redis read-through cache.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/example/tablefinder/internal/restaurant"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const Key = "tablefinder:catalog"

// Source produces a fresh catalog, normally the backend client.
type Source interface {
	FetchCatalog(ctx context.Context) ([]restaurant.Restaurant, error)
}

// Store is the part of *redis.Client the cache needs.
type Store interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// Cached keeps the last catalog in Redis for TTL. Cache failures never fail a read; they fall
// through to Source.
type Cached struct {
	Source Source
	Store  Store
	TTL    time.Duration
	Log    logrus.FieldLogger
}

func NewCached(src Source, store Store, ttl time.Duration, log logrus.FieldLogger) *Cached {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Cached{Source: src, Store: store, TTL: ttl, Log: log}
}

func (c *Cached) FetchCatalog(ctx context.Context) ([]restaurant.Restaurant, error) {
	if c.Store == nil {
		return c.Source.FetchCatalog(ctx)
	}
	raw, err := c.Store.Get(ctx, Key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
	case err != nil:
		c.Log.WithError(err).Warn("catalog cache read failed")
	default:
		var out []restaurant.Restaurant
		if err := json.Unmarshal(raw, &out); err == nil {
			return out, nil
		}
		c.Log.Warn("catalog cache entry is corrupt, reloading")
	}
	return c.Refresh(ctx)
}

// Refresh reloads from Source and rewrites the cache entry.
func (c *Cached) Refresh(ctx context.Context) ([]restaurant.Restaurant, error) {
	out, err := c.Source.FetchCatalog(ctx)
	if err != nil {
		return nil, err
	}
	if c.Store == nil {
		return out, nil
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	if err := c.Store.Set(ctx, Key, b, c.TTL).Err(); err != nil {
		c.Log.WithError(err).Warn("catalog cache write failed")
	}
	return out, nil
}

// OpenRedis connects and pings. An empty addr returns a nil client, which disables caching.
func OpenRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	if addr == "" {
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return rdb, nil
}
