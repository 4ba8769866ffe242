// Package app provides router configuration.
package app

import (
	"context"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/guttosm/pack-pricing-service/config"
	"github.com/guttosm/pack-pricing-service/internal/http"
	"github.com/guttosm/pack-pricing-service/internal/middleware"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// InitializeRouter builds the health handler and the router configuration from the wired services.
func InitializeRouter(
	services *ServiceComponents,
	db *DatabaseComponents,
	redisClient *redis.Client,
	cfg config.Config,
) *RouterComponents {
	healthHandler := http.NewHealthHandler()

	if db != nil {
		healthHandler.RegisterChecker("mongodb", http.CheckerFunc(db.DB.HealthCheck))

		names := make([]string, 0, len(db.CircuitBreakers))
		for name := range db.CircuitBreakers {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			healthHandler.RegisterCircuitBreaker(name, db.CircuitBreakers[name])
		}
	}
	if redisClient != nil {
		healthHandler.RegisterChecker("redis", http.CheckerFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}))
	}

	routerCfg := http.RouterConfig{
		RateLimit:        cfg.Server.RateLimit,
		RateWindow:       cfg.Server.RateWindow,
		EnableAuth:       cfg.Auth.Enabled,
		APIKeys:          cfg.Auth.APIKeys,
		CORSOrigins:      cfg.Server.CORSOrigins,
		SwaggerUser:      cfg.Server.SwaggerUser,
		SwaggerPass:      cfg.Server.SwaggerPass,
		OperationTimeout: cfg.Cart.OperationTimeout,
		Idempotency:      middleware.DefaultIdempotencyConfig(),
		Catalog:          services.Catalog,
		Composer:         services.Composer,
		Carts:            services.Carts,
		Sessions:         services.Sessions,
	}
	if redisClient != nil {
		routerCfg.RateLimitRedis = redisClient
	}
	if db != nil && db.LoggingService != nil {
		routerCfg.Logs = db.LoggingService
	}
	if services.AuditLogger != nil {
		routerCfg.LogSink = services.AuditLogger
	}

	return &RouterComponents{
		HealthHandler: healthHandler,
		Config:        routerCfg,
	}
}
