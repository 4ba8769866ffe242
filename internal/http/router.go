package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/pack-pricing-service/internal/metrics"
	"github.com/guttosm/pack-pricing-service/internal/middleware"
	"github.com/guttosm/pack-pricing-service/internal/service"
)

// RouterConfig holds router configuration options.
type RouterConfig struct {
	RateLimit  int
	RateWindow time.Duration
	// RateLimitRedis shares rate limit counters across replicas; nil counts per process.
	RateLimitRedis   redis.UniversalClient
	APIKeys          map[string]bool
	EnableAuth       bool
	CORSOrigins      []string
	SwaggerUser      string
	SwaggerPass      string
	OperationTimeout time.Duration
	Idempotency      middleware.IdempotencyConfig
	LogSink          middleware.LogSink
	Catalog          service.CatalogService
	Composer         service.Composer
	Carts            service.CartService
	Sessions         service.SessionService
	Logs             service.LoggingService
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:        100,
		RateWindow:       time.Minute,
		OperationTimeout: 5 * time.Second,
	}
}

// NewRouter creates and configures the Gin router for the pack pricing service.
func NewRouter(healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	configureGlobalMiddleware(router, &cfg)
	registerInfrastructureRoutes(router, healthHandler, &cfg)

	api := router.Group("/api")
	for _, group := range routeGroups(&cfg) {
		if public, ok := group.(PublicRouteGroup); ok {
			public.RegisterPublicRoutes(api)
		}
		if protected, ok := group.(ProtectedRouteGroup); ok {
			protected.RegisterProtectedRoutes(api, &cfg)
		}
	}

	return router
}

// routeGroups builds the business route groups for the services present in cfg.
func routeGroups(cfg *RouterConfig) []interface{} {
	var groups []interface{}
	if cfg.Catalog != nil {
		groups = append(groups, NewCatalogRoutes(NewCatalogHandler(cfg.Catalog, cfg.Composer, cfg.LogSink)))
	}
	if cfg.Carts != nil {
		var sessions *SessionHandler
		if cfg.Sessions != nil {
			sessions = NewSessionHandler(cfg.Sessions)
		}
		groups = append(groups, NewCartRoutes(NewCartHandler(cfg.Carts), sessions))
	}
	if cfg.Logs != nil {
		groups = append(groups, NewAuditRoutes(NewAuditHandler(cfg.Logs)))
	}
	return groups
}

// configureGlobalMiddleware sets up middleware applied to all routes.
func configureGlobalMiddleware(router *gin.Engine, cfg *RouterConfig) {
	router.Use(
		middleware.CORS(cfg.CORSOrigins),
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(),
		middleware.RequestLogger(cfg.LogSink),
		middleware.ErrorHandler(),
	)

	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow, cfg.rateLimiterOptions()...)
		router.Use(limiter.RateLimit())
	}
}

func (cfg *RouterConfig) rateLimiterOptions() []middleware.RateLimiterOption {
	if cfg.RateLimitRedis == nil {
		return nil
	}
	return []middleware.RateLimiterOption{middleware.WithRedisCounter(cfg.RateLimitRedis, "ratelimit:")}
}

// registerInfrastructureRoutes registers health, metrics, and documentation routes.
func registerInfrastructureRoutes(router *gin.Engine, healthHandler *HealthHandler, cfg *RouterConfig) {
	if healthHandler == nil {
		healthHandler = NewHealthHandler()
	}
	healthHandler.Register(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.SwaggerUser != "" && cfg.SwaggerPass != "" {
		authorized := router.Group("/swagger", gin.BasicAuth(gin.Accounts{
			cfg.SwaggerUser: cfg.SwaggerPass,
		}))
		authorized.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	} else {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}
