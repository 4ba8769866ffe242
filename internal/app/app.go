// Package app provides application initialization and dependency injection.
package app

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/pack-pricing-service/config"
	"github.com/guttosm/pack-pricing-service/internal/events"
	"github.com/guttosm/pack-pricing-service/internal/http"
	"github.com/guttosm/pack-pricing-service/internal/middleware"
)

// App is the wired application. Close releases everything InitializeApp started.
type App struct {
	Router   *gin.Engine
	Services *ServiceComponents

	db          *DatabaseComponents
	redis       *redis.Client
	publisher   *events.Publisher
	idempotency middleware.IdempotencyConfig
}

// InitializeApp creates and wires all application dependencies.
// Optional backends (MongoDB, Redis, RabbitMQ) that are disabled or unreachable are skipped.
func InitializeApp(cfg config.Config) *App {
	InitializeLogger(cfg.Log)

	db := InitializeDatabase(cfg.Database)
	redisClient := InitializeRedis(cfg.Redis)
	publisher := InitializePublisher(cfg.Events)

	services := InitializeServices(cfg, db, redisClient, publisher)

	if cfg.SeedCatalog {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if _, err := SeedCatalog(ctx, services.Catalog, services.Products); err != nil {
			log.Error().Err(err).Msg("Failed to seed demo catalog")
		}
		cancel()
	}

	routerComponents := InitializeRouter(services, db, redisClient, cfg)

	return &App{
		Router:      http.NewRouter(routerComponents.HealthHandler, routerComponents.Config),
		Services:    services,
		db:          db,
		redis:       redisClient,
		publisher:   publisher,
		idempotency: routerComponents.Config.Idempotency,
	}
}

// Close stops the cart actors and background workers, then closes the backend connections.
// Cart actors stop first so their final audit entries still reach the async logger.
func (a *App) Close(ctx context.Context) {
	if a == nil {
		return
	}

	if a.Services != nil {
		a.Services.Carts.Stop()
		a.Services.Catalog.Stop()
		a.Services.AuditLogger.Stop()
	}
	if a.idempotency.Cache != nil {
		a.idempotency.Cache.Stop()
	}
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close event publisher")
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis client")
		}
	}
	if a.db != nil {
		if err := a.db.DB.Close(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to close MongoDB connection")
		}
	}
	log.Info().Msg("Application resources released")
}
