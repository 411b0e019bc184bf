// Package cache implementa la caché del snapshot de estadísticas sobre Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Agromercados-api/internal/application/ports"
	"github.com/jhoicas/Agromercados-api/internal/domain/stats"
	"github.com/jhoicas/Agromercados-api/pkg/config"
)

var _ ports.SnapshotCache = (*RedisSnapshotCache)(nil)

// NewRedisClient abre el cliente y verifica la conexión con un PING.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// RedisSnapshotCache guarda el snapshot serializado en JSON con TTL.
type RedisSnapshotCache struct {
	client redis.Cmdable
}

// NewRedisSnapshotCache construye la caché sobre un cliente (o pipeline) de go-redis.
func NewRedisSnapshotCache(client redis.Cmdable) *RedisSnapshotCache {
	return &RedisSnapshotCache{client: client}
}

// Get devuelve (nil, nil) si la clave no existe o expiró.
func (c *RedisSnapshotCache) Get(ctx context.Context, key string) (*stats.Snapshot, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	var snap stats.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}

// Set guarda el snapshot con expiración ttl.
func (c *RedisSnapshotCache) Set(ctx context.Context, key string, snap stats.Snapshot, ttl time.Duration) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
