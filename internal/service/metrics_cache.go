package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/nutrilife/backend/internal/nutrition"
)

// RedisMetricsCache keeps one hash per user keyed by anchor date, so a
// single DEL drops every cached window of that user.
type RedisMetricsCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

var _ MetricsCache = (*RedisMetricsCache)(nil)

func NewRedisMetricsCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisMetricsCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisMetricsCache{client: client, ttl: ttl, logger: logger}
}

func metricsKey(userID uuid.UUID) string {
	return fmt.Sprintf("progress:metrics:%s", userID)
}

func (c *RedisMetricsCache) Get(ctx context.Context, userID uuid.UUID, anchorDate string) (*nutrition.Metrics, bool) {
	raw, err := c.client.HGet(ctx, metricsKey(userID), anchorDate).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("metrics cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var m nutrition.Metrics
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, false
	}
	return &m, true
}

func (c *RedisMetricsCache) Set(ctx context.Context, userID uuid.UUID, anchorDate string, m nutrition.Metrics) {
	raw, err := json.Marshal(m)
	if err != nil {
		return
	}
	key := metricsKey(userID)
	pipe := c.client.Pipeline()
	pipe.HSet(ctx, key, anchorDate, raw)
	pipe.Expire(ctx, key, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Warn("metrics cache write failed", zap.Error(err))
	}
}

func (c *RedisMetricsCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	if err := c.client.Del(ctx, metricsKey(userID)).Err(); err != nil {
		c.logger.Warn("metrics cache invalidation failed", zap.Error(err))
	}
}

// NoopMetricsCache is used when Redis is not configured.
type NoopMetricsCache struct{}

func (NoopMetricsCache) Get(context.Context, uuid.UUID, string) (*nutrition.Metrics, bool) {
	return nil, false
}

func (NoopMetricsCache) Set(context.Context, uuid.UUID, string, nutrition.Metrics) {}

func (NoopMetricsCache) Invalidate(context.Context, uuid.UUID) {}

// MemoryMetricsCache is an in-process cache for tests and single-node runs.
type MemoryMetricsCache struct {
	mu      sync.Mutex
	entries map[uuid.UUID]map[string]nutrition.Metrics
}

func NewMemoryMetricsCache() *MemoryMetricsCache {
	return &MemoryMetricsCache{entries: make(map[uuid.UUID]map[string]nutrition.Metrics)}
}

func (c *MemoryMetricsCache) Get(_ context.Context, userID uuid.UUID, anchorDate string) (*nutrition.Metrics, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	m, ok := c.entries[userID][anchorDate]
	if !ok {
		return nil, false
	}
	return &m, true
}

func (c *MemoryMetricsCache) Set(_ context.Context, userID uuid.UUID, anchorDate string, m nutrition.Metrics) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries[userID] == nil {
		c.entries[userID] = make(map[string]nutrition.Metrics)
	}
	c.entries[userID][anchorDate] = m
}

func (c *MemoryMetricsCache) Invalidate(_ context.Context, userID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, userID)
}
