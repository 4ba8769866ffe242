// Package app provides database initialization and setup.
package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/pack-pricing-service/config"
	"github.com/guttosm/pack-pricing-service/internal/circuitbreaker"
	"github.com/guttosm/pack-pricing-service/internal/metrics"
	"github.com/guttosm/pack-pricing-service/internal/repository"
	"github.com/guttosm/pack-pricing-service/internal/service"
)

// DatabaseComponents holds database-related components.
type DatabaseComponents struct {
	DB              *repository.MongoDB
	Products        repository.ProductRepositoryInterface
	Bundles         repository.BundleRepositoryInterface
	Carts           repository.CartRepositoryInterface
	LoggingService  service.LoggingService
	CircuitBreakers map[string]*circuitbreaker.CircuitBreaker
}

// InitializeDatabase connects to MongoDB and wraps every repository in its own circuit breaker.
// Returns nil if the database is disabled or the connection fails; callers fall back to the
// in-memory store.
func InitializeDatabase(cfg config.DatabaseConfig) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing with in-memory store")
		return nil
	}

	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.SetLogsTTL(ctx, cfg.LogsTTL); err != nil {
		log.Warn().Err(err).Msg("Failed to set logs TTL index")
	}
	if err := db.SetCartsTTL(ctx, cfg.CartsTTL); err != nil {
		log.Warn().Err(err).Msg("Failed to set carts TTL index")
	}

	breakers := map[string]*circuitbreaker.CircuitBreaker{
		"mongodb_products": newBreaker(cfg, "mongodb-products"),
		"mongodb_bundles":  newBreaker(cfg, "mongodb-bundles"),
		"mongodb_carts":    newBreaker(cfg, "mongodb-carts"),
		"mongodb_logs":     newBreaker(cfg, "mongodb-logs"),
	}

	logsRepo := repository.NewLogsRepositoryWithCircuitBreaker(repository.NewLogsRepository(db), breakers["mongodb_logs"])

	return &DatabaseComponents{
		DB:              db,
		Products:        repository.NewProductRepositoryWithCircuitBreaker(repository.NewProductRepository(db), breakers["mongodb_products"]),
		Bundles:         repository.NewBundleRepositoryWithCircuitBreaker(repository.NewBundleRepository(db), breakers["mongodb_bundles"]),
		Carts:           repository.NewCartRepositoryWithCircuitBreaker(repository.NewCartRepository(db), breakers["mongodb_carts"]),
		LoggingService:  service.NewLoggingService(logsRepo),
		CircuitBreakers: breakers,
	}
}

// newBreaker builds a breaker that ignores domain answers and reports its state to Prometheus.
func newBreaker(cfg config.DatabaseConfig, name string) *circuitbreaker.CircuitBreaker {
	return circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             name,
		IsExpected:       repository.IsExpectedError,
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			metrics.SetCircuitBreakerState(name, int(to))
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("Circuit breaker state changed")
		},
	})
}
