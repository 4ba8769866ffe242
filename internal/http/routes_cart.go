package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/pack-pricing-service/internal/middleware"
)

// CartRoutes registers session issuance and the session cart.
type CartRoutes struct {
	carts    *CartHandler
	sessions *SessionHandler
}

// NewCartRoutes creates a new CartRoutes instance. sessions may be nil when auth is disabled.
func NewCartRoutes(carts *CartHandler, sessions *SessionHandler) *CartRoutes {
	return &CartRoutes{carts: carts, sessions: sessions}
}

// RegisterPublicRoutes registers POST /sessions.
func (r *CartRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	if r.sessions != nil {
		rg.POST("/sessions", r.sessions.CreateSession)
	}
}

// RegisterProtectedRoutes registers the cart routes behind the session middleware.
// With auth enabled the session comes from a signed token, otherwise from X-Session-ID.
func (r *CartRoutes) RegisterProtectedRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	var validator middleware.SessionValidator
	if cfg.EnableAuth && cfg.Sessions != nil {
		validator = cfg.Sessions
	}

	cart := rg.Group("/cart")
	cart.Use(middleware.Session(validator))
	if cfg.RateLimit > 0 {
		sessionLimiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow, cfg.rateLimiterOptions()...)
		cart.Use(sessionLimiter.SessionRateLimit())
	}
	cart.Use(middleware.Idempotency(cfg.Idempotency))
	if cfg.OperationTimeout > 0 {
		cart.Use(middleware.TimeoutWithDuration(cfg.OperationTimeout))
	}

	cart.GET("", r.carts.GetCart)
	cart.DELETE("", r.carts.ClearCart)
	cart.POST("/lines", r.carts.AddLine)
	cart.PATCH("/lines/:line_id", r.carts.UpdateLine)
	cart.DELETE("/lines/:line_id", r.carts.RemoveLine)
}

var (
	_ PublicRouteGroup    = (*CartRoutes)(nil)
	_ ProtectedRouteGroup = (*CartRoutes)(nil)
)
