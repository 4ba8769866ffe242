package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/guttosm/pack-pricing-service/internal/metrics"
)

// RedisCache is the shared catalog tier used by every service instance.
// Values are stored as JSON under "<prefix>:<id>".
type RedisCache[V any] struct {
	client  redis.UniversalClient
	prefix  string
	baseTTL time.Duration
	jitter  time.Duration
}

// NewRedisCache creates a Redis backed cache. Each write gets baseTTL plus up to a fifth of
// it as jitter so entries written together do not expire together.
func NewRedisCache[V any](client redis.UniversalClient, prefix string, baseTTL time.Duration) *RedisCache[V] {
	if baseTTL <= 0 {
		baseTTL = 15 * time.Minute
	}
	return &RedisCache[V]{
		client:  client,
		prefix:  prefix,
		baseTTL: baseTTL,
		jitter:  baseTTL / 5,
	}
}

// Get returns ErrCacheMiss when the key is absent.
func (r *RedisCache[V]) Get(ctx context.Context, id string) (V, error) {
	var value V
	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.RecordCacheOperation("redis_get", "miss")
		return value, ErrCacheMiss
	}
	if err != nil {
		metrics.RecordCacheOperation("redis_get", "error")
		return value, fmt.Errorf("redis get failed: %w", err)
	}

	if err := json.Unmarshal(data, &value); err != nil {
		metrics.RecordCacheOperation("redis_get", "corrupt")
		return value, fmt.Errorf("unmarshal %s failed: %w", r.key(id), err)
	}
	metrics.RecordCacheOperation("redis_get", "hit")
	return value, nil
}

// Set stores value with a jittered TTL.
func (r *RedisCache[V]) Set(ctx context.Context, id string, value V) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s failed: %w", r.key(id), err)
	}

	ttl := r.baseTTL
	if r.jitter > 0 {
		ttl += rand.N(r.jitter)
	}
	if err := r.client.Set(ctx, r.key(id), data, ttl).Err(); err != nil {
		metrics.RecordCacheOperation("redis_set", "error")
		return fmt.Errorf("redis set failed: %w", err)
	}
	metrics.RecordCacheOperation("redis_set", "success")
	return nil
}

// Delete removes the key. Deleting a missing key is not an error.
func (r *RedisCache[V]) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

// Ping checks connectivity; used by the readiness probe.
func (r *RedisCache[V]) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisCache[V]) key(id string) string {
	return r.prefix + ":" + id
}
