//go:build !integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/pack-pricing-service/internal/domain/model"
)

func setupTestRedis(t *testing.T) (*RedisCache[model.Product], *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisCache[model.Product](client, "product", 10*time.Minute), mr
}

func TestRedisCache_SetGet(t *testing.T) {
	c, mr := setupTestRedis(t)
	ctx := context.Background()

	in := model.Product{ID: "cpu", Name: "CPU", ListPrice: decimal.RequireFromString("100.00"), Published: true}
	require.NoError(t, c.Set(ctx, "cpu", in))

	assert.True(t, mr.Exists("product:cpu"))
	ttl := mr.TTL("product:cpu")
	assert.GreaterOrEqual(t, ttl, 10*time.Minute)
	assert.Less(t, ttl, 12*time.Minute)

	out, err := c.Get(ctx, "cpu")
	require.NoError(t, err)
	assert.Equal(t, "CPU", out.Name)
	assert.True(t, in.ListPrice.Equal(out.ListPrice))
}

func TestRedisCache_Miss(t *testing.T) {
	c, _ := setupTestRedis(t)

	_, err := c.Get(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_Expiry(t *testing.T) {
	c, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "fan", model.Product{ID: "fan"}))
	mr.FastForward(13 * time.Minute)

	_, err := c.Get(ctx, "fan")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_InvalidJSON(t *testing.T) {
	c, mr := setupTestRedis(t)
	require.NoError(t, mr.Set("product:bad", "{not json"))

	_, err := c.Get(context.Background(), "bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_Delete(t *testing.T) {
	c, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "cpu", model.Product{ID: "cpu"}))
	require.NoError(t, c.Delete(ctx, "cpu"))
	require.NoError(t, c.Delete(ctx, "cpu"))
	assert.False(t, mr.Exists("product:cpu"))
}

func TestRedisCache_ServerDown(t *testing.T) {
	c, mr := setupTestRedis(t)
	mr.Close()
	ctx := context.Background()

	_, err := c.Get(ctx, "cpu")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
	assert.Error(t, c.Set(ctx, "cpu", model.Product{ID: "cpu"}))
	assert.Error(t, c.Ping(ctx))
}
