package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("loads default values", func(t *testing.T) {
		os.Clearenv()

		cfg := Load()

		assert.Equal(t, "info", cfg.Log.Level)
		assert.False(t, cfg.Log.Pretty)
		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, 100, cfg.Server.RateLimit)
		assert.Equal(t, time.Minute, cfg.Server.RateWindow)
		assert.Equal(t, 1000, cfg.Cache.Size)
		assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
		assert.Equal(t, int32(2), cfg.Pricing.Precision)
		assert.Equal(t, 5*time.Minute, cfg.Cart.SessionIdleTimeout)
		assert.Equal(t, 5*time.Second, cfg.Cart.OperationTimeout)
		assert.Equal(t, 10000, cfg.Cart.MaxQuantity)
		assert.Equal(t, "pack_pricing", cfg.Database.DatabaseName)
		assert.Equal(t, "cart.updated", cfg.Events.Queue)
		assert.False(t, cfg.Auth.Enabled)
		assert.False(t, cfg.Redis.Enabled)
		assert.False(t, cfg.Events.Enabled)
		assert.True(t, cfg.SeedCatalog)
	})

	t.Run("loads values from environment", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("LOG_LEVEL", "debug")
		_ = os.Setenv("LOG_PRETTY", "true")
		_ = os.Setenv("PORT", "9090")
		_ = os.Setenv("RATE_LIMIT", "50")
		_ = os.Setenv("RATE_WINDOW", "30s")
		_ = os.Setenv("CATALOG_CACHE_SIZE", "500")
		_ = os.Setenv("CATALOG_CACHE_TTL", "10m")
		_ = os.Setenv("CURRENCY_PRECISION", "3")
		_ = os.Setenv("CART_SESSION_IDLE_TIMEOUT", "1m")
		_ = os.Setenv("CART_MAX_QUANTITY", "250")
		_ = os.Setenv("AUTH_ENABLED", "true")
		_ = os.Setenv("API_KEYS", "key1,key2")
		_ = os.Setenv("REDIS_ENABLED", "true")
		_ = os.Setenv("REDIS_ADDR", "redis:6379")
		_ = os.Setenv("RABBITMQ_ENABLED", "true")
		_ = os.Setenv("SEED_CATALOG", "false")
		defer os.Clearenv()

		cfg := Load()

		assert.Equal(t, "debug", cfg.Log.Level)
		assert.True(t, cfg.Log.Pretty)
		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, 50, cfg.Server.RateLimit)
		assert.Equal(t, 30*time.Second, cfg.Server.RateWindow)
		assert.Equal(t, 500, cfg.Cache.Size)
		assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
		assert.Equal(t, int32(3), cfg.Pricing.Precision)
		assert.Equal(t, time.Minute, cfg.Cart.SessionIdleTimeout)
		assert.Equal(t, 250, cfg.Cart.MaxQuantity)
		assert.True(t, cfg.Auth.Enabled)
		assert.True(t, cfg.Auth.APIKeys["key1"])
		assert.True(t, cfg.Auth.APIKeys["key2"])
		assert.True(t, cfg.Redis.Enabled)
		assert.Equal(t, "redis:6379", cfg.Redis.Addr)
		assert.True(t, cfg.Events.Enabled)
		assert.False(t, cfg.SeedCatalog)
	})

	t.Run("handles invalid values gracefully", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("RATE_LIMIT", "invalid")
		_ = os.Setenv("AUTH_ENABLED", "invalid")
		_ = os.Setenv("RATE_WINDOW", "invalid")
		_ = os.Setenv("CURRENCY_PRECISION", "two")
		defer os.Clearenv()

		cfg := Load()

		assert.Equal(t, 100, cfg.Server.RateLimit)
		assert.False(t, cfg.Auth.Enabled)
		assert.Equal(t, time.Minute, cfg.Server.RateWindow)
		assert.Equal(t, int32(2), cfg.Pricing.Precision)
	})

	t.Run("parses API keys with whitespace", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("API_KEYS", " key1 , key2 , key3 ")
		defer os.Clearenv()

		cfg := Load()

		assert.True(t, cfg.Auth.APIKeys["key1"])
		assert.True(t, cfg.Auth.APIKeys["key2"])
		assert.True(t, cfg.Auth.APIKeys["key3"])
	})

	t.Run("returns nil for empty API keys", func(t *testing.T) {
		os.Clearenv()

		cfg := Load()

		assert.Nil(t, cfg.Auth.APIKeys)
	})

	t.Run("appends custom CORS origins to defaults", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("CORS_ORIGINS", "https://shop.example.com, ")
		defer os.Clearenv()

		cfg := Load()

		assert.Equal(t, []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"https://shop.example.com",
		}, cfg.Server.CORSOrigins)
	})
}
