package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/pack-pricing-service/internal/middleware"
)

// AuditRoutes registers the admin audit endpoints.
type AuditRoutes struct {
	handler *AuditHandler
}

// NewAuditRoutes creates a new AuditRoutes instance.
func NewAuditRoutes(handler *AuditHandler) *AuditRoutes {
	return &AuditRoutes{handler: handler}
}

// RegisterProtectedRoutes registers audit reads under /admin.
func (r *AuditRoutes) RegisterProtectedRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	admin := rg.Group("/admin")
	if cfg.EnableAuth && len(cfg.APIKeys) > 0 {
		admin.Use(middleware.APIKeyAuth(cfg.APIKeys))
	}
	admin.GET("/sessions/:session_id/history", r.handler.SessionHistory)
}

var _ ProtectedRouteGroup = (*AuditRoutes)(nil)
