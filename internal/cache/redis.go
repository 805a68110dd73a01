// Package cache stores rendered article views in Redis for a short TTL.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/maxviazov/egretwind/internal/config"
)

// NewClient connects to Redis and verifies the connection with a bounded ping.
func NewClient(ctx context.Context, cfg config.RedisConfig, logger zerolog.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	logger.Info().Str("addr", cfg.Addr).Int("db", cfg.DB).Msg("Connected to Redis")
	return client, nil
}

// Views is a JSON read-through store keyed under a common prefix.
type Views struct {
	rdb    redis.Cmdable
	ttl    time.Duration
	prefix string
}

func NewViews(rdb redis.Cmdable, ttl time.Duration, prefix string) *Views {
	return &Views{rdb: rdb, ttl: ttl, prefix: prefix}
}

// Key namespaces k under the configured prefix.
func (v *Views) Key(k string) string {
	if v.prefix == "" {
		return k
	}
	return v.prefix + ":" + k
}

// Get decodes the cached value for key into dst. A miss is (false, nil).
func (v *Views) Get(ctx context.Context, key string, dst any) (bool, error) {
	data, err := v.rdb.Get(ctx, v.Key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

// Set stores val for key with the configured TTL.
func (v *Views) Set(ctx context.Context, key string, val any) error {
	data, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := v.rdb.Set(ctx, v.Key(key), data, v.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
