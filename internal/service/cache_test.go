package service

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/pack-pricing-service/internal/domain/model"
	"github.com/guttosm/pack-pricing-service/internal/service/cache"
)

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newClockedCache(capacity int, ttl time.Duration) (*ttlCache[model.Product], *testClock) {
	clock := &testClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := newTTLCache[model.Product](capacity, ttl)
	c.now = clock.Now
	return c, clock
}

func product(id string, price int64) model.Product {
	return model.Product{ID: id, Name: id, ListPrice: decimal.NewFromInt(price), Published: true}
}

func TestTTLCache_Get(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(*ttlCache[model.Product], *testClock)
		key       string
		wantFound bool
	}{
		{
			name:      "returns value when present",
			setup:     func(c *ttlCache[model.Product], _ *testClock) { c.Set("cpu", product("cpu", 100)) },
			key:       "cpu",
			wantFound: true,
		},
		{
			name:  "miss for unknown key",
			setup: func(*ttlCache[model.Product], *testClock) {},
			key:   "gpu",
		},
		{
			name: "miss once expired",
			setup: func(c *ttlCache[model.Product], clock *testClock) {
				c.Set("cpu", product("cpu", 100))
				clock.Advance(2 * time.Minute)
			},
			key: "cpu",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, clock := newClockedCache(10, time.Minute)
			defer c.Stop()
			tt.setup(c, clock)

			v, found := c.Get(tt.key)
			assert.Equal(t, tt.wantFound, found)
			if found {
				assert.Equal(t, tt.key, v.ID)
			}
		})
	}
}

func TestTTLCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c, _ := newClockedCache(2, time.Minute)
	defer c.Stop()

	c.Set("cpu", product("cpu", 100))
	c.Set("fan", product("fan", 10))
	_, _ = c.Get("cpu")
	c.Set("memory", product("memory", 50))

	_, found := c.Get("fan")
	assert.False(t, found)
	_, found = c.Get("cpu")
	assert.True(t, found)
	assert.Equal(t, int64(1), c.Metrics().Evictions)
}

func TestTTLCache_SetReplacesEntry(t *testing.T) {
	c, _ := newClockedCache(10, time.Minute)
	defer c.Stop()

	c.Set("cpu", product("cpu", 100))
	first, _ := c.Get("cpu")
	c.Set("cpu", product("cpu", 120))
	second, _ := c.Get("cpu")

	assert.Equal(t, "100", first.ListPrice.String())
	assert.Equal(t, "120", second.ListPrice.String())
	assert.Equal(t, 1, c.Metrics().Size)
}

func TestTTLCache_CleanupDropsExpired(t *testing.T) {
	c, clock := newClockedCache(10, time.Minute)
	defer c.Stop()

	c.Set("cpu", product("cpu", 100))
	clock.Advance(30 * time.Second)
	c.Set("fan", product("fan", 10))
	clock.Advance(45 * time.Second)
	c.cleanup()

	assert.Equal(t, 1, c.Metrics().Size)
	_, found := c.Get("fan")
	assert.True(t, found)
}

func TestTTLCache_InvalidateAndClear(t *testing.T) {
	c, _ := newClockedCache(10, time.Minute)
	c.Stop()
	c.Stop()

	c.Set("cpu", product("cpu", 100))
	c.Set("fan", product("fan", 10))
	c.Invalidate("cpu")
	_, found := c.Get("cpu")
	assert.False(t, found)

	c.Clear()
	assert.Equal(t, cache.Metrics{Capacity: 10}, c.Metrics())
}

func TestTTLCache_Concurrency(t *testing.T) {
	c := newTTLCache[model.Product](50, time.Minute)
	defer c.Stop()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := range 100 {
				key := fmt.Sprintf("p%d", (i*j)%80)
				c.Set(key, product(key, int64(j)))
				_, _ = c.Get(key)
			}
		}(i)
	}
	wg.Wait()

	require.LessOrEqual(t, c.Metrics().Size, 50)
}

func TestTTLCache_ImplementsInterface(t *testing.T) {
	var _ cache.CacheWithMetrics[model.Product] = (*ttlCache[model.Product])(nil)
	var _ cache.CacheWithMetrics[model.Bundle] = (*ShardedCache[model.Bundle])(nil)
}
