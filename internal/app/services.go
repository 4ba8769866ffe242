// Package app provides service initialization.
package app

import (
	"github.com/redis/go-redis/v9"

	"github.com/guttosm/pack-pricing-service/config"
	"github.com/guttosm/pack-pricing-service/internal/domain/model"
	"github.com/guttosm/pack-pricing-service/internal/events"
	"github.com/guttosm/pack-pricing-service/internal/middleware"
	"github.com/guttosm/pack-pricing-service/internal/repository"
	"github.com/guttosm/pack-pricing-service/internal/service"
	"github.com/guttosm/pack-pricing-service/internal/service/cache"
)

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	Catalog  service.CatalogService
	Composer service.Composer
	Carts    service.CartService
	Sessions service.SessionService
	// AuditLogger persists request and audit entries; nil without MongoDB.
	AuditLogger *middleware.AsyncLogger
	// Products backs the seed emptiness check.
	Products repository.ProductRepositoryInterface
}

// InitializeServices wires the catalog, composer, cart and session services. Without a database
// the in-memory store backs every repository.
func InitializeServices(
	cfg config.Config,
	db *DatabaseComponents,
	redisClient *redis.Client,
	publisher *events.Publisher,
) *ServiceComponents {
	var (
		products repository.ProductRepositoryInterface
		bundles  repository.BundleRepositoryInterface
		carts    repository.CartRepositoryInterface
		logs     service.LoggingService
	)
	if db != nil {
		products, bundles, carts, logs = db.Products, db.Bundles, db.Carts, db.LoggingService
	} else {
		store := repository.NewMemoryStore()
		products, bundles, carts = store.Products(), store.Bundles(), store.Carts()
	}

	var catalogOpts []service.CatalogOption
	if cfg.Cache.Size > 0 && cfg.Cache.TTL > 0 {
		catalogOpts = append(catalogOpts,
			service.WithProductCache(service.NewShardedCache[model.Product](cfg.Cache.Size, cfg.Cache.TTL, cfg.Cache.Shards)),
			service.WithBundleCache(service.NewShardedCache[model.Bundle](cfg.Cache.Size, cfg.Cache.TTL, cfg.Cache.Shards)),
		)
	}
	if redisClient != nil {
		catalogOpts = append(catalogOpts, service.WithSharedCache(
			cache.NewRedisCache[model.Product](redisClient, "catalog:product", cfg.Redis.TTL),
			cache.NewRedisCache[model.Bundle](redisClient, "catalog:bundle", cfg.Redis.TTL),
		))
	}
	catalog := service.NewCatalogService(products, bundles, catalogOpts...)
	composer := service.NewComposerService(catalog, service.WithPrecision(cfg.Pricing.Precision))

	var auditLogger *middleware.AsyncLogger
	if logs != nil {
		auditLogger = middleware.NewAsyncLogger(logs, middleware.DefaultAsyncLoggerConfig())
	}

	cartOpts := []service.CartOption{
		service.WithCartPrecision(cfg.Pricing.Precision),
		service.WithIdleTimeout(cfg.Cart.SessionIdleTimeout),
		service.WithOperationTimeout(cfg.Cart.OperationTimeout),
		service.WithMaxQuantity(cfg.Cart.MaxQuantity),
	}
	if publisher != nil {
		cartOpts = append(cartOpts, service.WithEventPublisher(publisher))
	}
	if auditLogger != nil {
		cartOpts = append(cartOpts, service.WithAuditSink(auditLogger))
	}
	cartService := service.NewCartService(catalog, composer, carts, cartOpts...)

	return &ServiceComponents{
		Catalog:     catalog,
		Composer:    composer,
		Carts:       cartService,
		Sessions:    service.NewSessionService(service.NewSessionConfigFromAuthConfig(cfg.Auth)),
		AuditLogger: auditLogger,
		Products:    products,
	}
}
