package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/pack-pricing-service/internal/middleware"
)

// CatalogRoutes registers the storefront catalog and the admin catalog endpoints.
type CatalogRoutes struct {
	handler *CatalogHandler
}

// NewCatalogRoutes creates a new CatalogRoutes instance.
func NewCatalogRoutes(handler *CatalogHandler) *CatalogRoutes {
	return &CatalogRoutes{handler: handler}
}

// RegisterPublicRoutes registers read-only catalog routes.
func (r *CatalogRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/products", r.handler.SearchProducts)
	rg.GET("/products/:id", r.handler.GetProduct)
	rg.GET("/bundles/:id", r.handler.GetBundle)
	rg.POST("/bundles/:id/compose", r.handler.ComposeBundle)
}

// RegisterProtectedRoutes registers catalog writes. With auth enabled they require an API key.
func (r *CatalogRoutes) RegisterProtectedRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	admin := rg.Group("")
	if cfg.EnableAuth && len(cfg.APIKeys) > 0 {
		admin.Use(middleware.APIKeyAuth(cfg.APIKeys))
	}

	admin.PUT("/products/:id", r.handler.UpsertProduct)
	admin.PUT("/bundles/:id", r.handler.SaveBundle)
	admin.POST("/bundles/:id/publish", r.handler.PublishBundle)
	admin.POST("/bundles/:id/unpublish", r.handler.UnpublishBundle)
}

var (
	_ PublicRouteGroup    = (*CatalogRoutes)(nil)
	_ ProtectedRouteGroup = (*CatalogRoutes)(nil)
)
