package http

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/pack-pricing-service/internal/domain/dto"
	"github.com/guttosm/pack-pricing-service/internal/domain/model"
	"github.com/guttosm/pack-pricing-service/internal/middleware"
	"github.com/guttosm/pack-pricing-service/internal/service"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

// CatalogHandler serves products and packs to the storefront and to catalog administrators.
type CatalogHandler struct {
	catalog  service.CatalogService
	composer service.Composer
	audit    middleware.LogSink
}

// NewCatalogHandler creates a new CatalogHandler. audit may be nil.
func NewCatalogHandler(catalog service.CatalogService, composer service.Composer, audit middleware.LogSink) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, composer: composer, audit: audit}
}

// SearchProducts handles GET /api/products.
//
// @Summary      Search the storefront catalog
// @Description  Returns published products and packs whose name contains the search term. Packs carry their whole-pack price.
// @Tags         Catalog
// @Produce      json
// @Param        search query string false "Name fragment, case insensitive"
// @Param        limit  query int    false "Maximum hits per kind (default 20, max 100)"
// @Success      200 {object} dto.SuccessResponse{data=[]dto.ProductResponse} "Search hits"
// @Failure      400 {object} dto.ErrorResponse "Invalid limit"
// @Failure      503 {object} dto.ErrorResponse "Catalog unavailable"
// @Router       /api/products [get]
func (h *CatalogHandler) SearchProducts(c *gin.Context) {
	builder := NewResponseBuilder(c)

	limit := defaultSearchLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			builder.BindError(&dto.ValidationError{Field: "limit", Message: "must be a positive integer"})
			return
		}
		limit = min(n, maxSearchLimit)
	}

	ctx := c.Request.Context()
	result, err := h.catalog.Search(ctx, strings.TrimSpace(c.Query("search")), limit)
	if err != nil {
		builder.DomainError(err)
		return
	}

	hits := make([]dto.ProductResponse, 0, len(result.Products)+len(result.Bundles))
	for _, p := range result.Products {
		if !p.Published {
			continue
		}
		hits = append(hits, dto.ProductResponse{
			ID:        p.ID,
			Name:      p.Name,
			Price:     p.ListPrice,
			Published: true,
		})
	}
	for _, b := range result.Bundles {
		if !b.Published {
			continue
		}
		price, err := h.composer.UnitPrice(ctx, b)
		if err != nil {
			// a pack that cannot be priced cannot be sold either
			log := middleware.RequestLog(c)
			log.Warn().Err(err).Str("bundle_id", b.ID).Msg("Pack hidden from search")
			continue
		}
		hits = append(hits, dto.ProductResponse{
			ID:        b.ID,
			Name:      b.Name,
			Price:     price,
			IsPack:    true,
			Mode:      b.Mode,
			Published: true,
		})
	}

	builder.SuccessOK(hits)
}

// GetProduct handles GET /api/products/{id}.
//
// @Summary      Get a product
// @Tags         Catalog
// @Produce      json
// @Param        id path string true "Product id"
// @Success      200 {object} dto.SuccessResponse{data=model.Product} "Product"
// @Failure      404 {object} dto.ErrorResponse "Product not found"
// @Router       /api/products/{id} [get]
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	builder := NewResponseBuilder(c)

	product, err := h.catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		builder.DomainError(err)
		return
	}
	builder.SuccessOK(product)
}

// UpsertProduct handles PUT /api/products/{id}.
//
// @Summary      Create or replace a product
// @Description  Unpublishing a product that is part of a published pack is rejected.
// @Tags         Catalog Admin
// @Accept       json
// @Produce      json
// @Param        id      path   string                     true "Product id"
// @Param        request body   dto.UpsertProductRequest   true "Product"
// @Param        X-API-Key header string false "Admin API key (required if auth enabled)"
// @Success      200 {object} dto.SuccessResponse{data=model.Product} "Stored product"
// @Failure      400 {object} dto.ErrorResponse "Invalid product"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid API key"
// @Failure      409 {object} dto.ErrorResponse "Product is part of a published pack"
// @Security     ApiKeyAuth
// @Router       /api/products/{id} [put]
func (h *CatalogHandler) UpsertProduct(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.UpsertProductRequest](c)
	if err != nil {
		builder.BindError(err)
		return
	}

	id := c.Param("id")
	product, err := h.catalog.UpsertProduct(c.Request.Context(), req.ToModel(id))
	fields := map[string]any{"product_id": id, "published": req.Published}
	if err != nil {
		middleware.AuditLogError(h.audit, c, model.ActionCatalog, "product upsert rejected", err, fields)
		builder.DomainError(err)
		return
	}
	middleware.AuditLog(h.audit, c, model.ActionCatalog, "product upserted", fields)
	builder.SuccessOK(product)
}

// GetBundle handles GET /api/bundles/{id}.
//
// @Summary      Get a pack
// @Description  Returns the pack definition with its whole-pack price and pricing mode label.
// @Tags         Catalog
// @Produce      json
// @Param        id path string true "Pack id"
// @Success      200 {object} dto.SuccessResponse{data=dto.BundleResponse} "Pack"
// @Failure      404 {object} dto.ErrorResponse "Pack not found"
// @Router       /api/bundles/{id} [get]
func (h *CatalogHandler) GetBundle(c *gin.Context) {
	builder := NewResponseBuilder(c)

	bundle, err := h.catalog.GetBundle(c.Request.Context(), c.Param("id"))
	if err != nil {
		builder.DomainError(err)
		return
	}
	builder.SuccessOK(h.bundleResponse(c, bundle))
}

// SaveBundle handles PUT /api/bundles/{id}.
//
// @Summary      Create or replace a pack
// @Description  Drafts may leave the mode unset. The mode of a published pack cannot change.
// @Tags         Catalog Admin
// @Accept       json
// @Produce      json
// @Param        id      path string                  true "Pack id"
// @Param        request body dto.UpsertBundleRequest true "Pack definition"
// @Param        X-API-Key header string false "Admin API key (required if auth enabled)"
// @Success      200 {object} dto.SuccessResponse{data=dto.BundleResponse} "Stored pack"
// @Failure      400 {object} dto.ErrorResponse "Invalid pack"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid API key"
// @Failure      409 {object} dto.ErrorResponse "Mode locked or concurrent update"
// @Failure      422 {object} dto.ErrorResponse "Pack cannot be priced as configured"
// @Security     ApiKeyAuth
// @Router       /api/bundles/{id} [put]
func (h *CatalogHandler) SaveBundle(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.UpsertBundleRequest](c)
	if err != nil {
		builder.BindError(err)
		return
	}
	id := c.Param("id")
	bundle, err := req.ToModel(id)
	if err != nil {
		builder.BindError(err)
		return
	}

	saved, err := h.catalog.SaveBundle(c.Request.Context(), bundle)
	fields := map[string]any{"bundle_id": id, "mode": string(bundle.Mode)}
	if err != nil {
		middleware.AuditLogError(h.audit, c, model.ActionCatalog, "pack save rejected", err, fields)
		builder.DomainError(err)
		return
	}
	middleware.AuditLog(h.audit, c, model.ActionCatalog, "pack saved", fields)
	builder.SuccessOK(h.bundleResponse(c, saved))
}

// PublishBundle handles POST /api/bundles/{id}/publish.
//
// @Summary      Publish a pack
// @Description  Every component must be published and the pricing mode must be valid.
// @Tags         Catalog Admin
// @Produce      json
// @Param        id path string true "Pack id"
// @Param        X-API-Key header string false "Admin API key (required if auth enabled)"
// @Success      200 {object} dto.SuccessResponse{data=dto.BundleResponse} "Published pack"
// @Failure      404 {object} dto.ErrorResponse "Pack not found"
// @Failure      409 {object} dto.ErrorResponse "Unpublished components"
// @Failure      422 {object} dto.ErrorResponse "Pack cannot be priced as configured"
// @Security     ApiKeyAuth
// @Router       /api/bundles/{id}/publish [post]
func (h *CatalogHandler) PublishBundle(c *gin.Context) {
	h.setPublished(c, true)
}

// UnpublishBundle handles POST /api/bundles/{id}/unpublish.
//
// @Summary      Unpublish a pack
// @Tags         Catalog Admin
// @Produce      json
// @Param        id path string true "Pack id"
// @Param        X-API-Key header string false "Admin API key (required if auth enabled)"
// @Success      200 {object} dto.SuccessResponse{data=dto.BundleResponse} "Unpublished pack"
// @Failure      404 {object} dto.ErrorResponse "Pack not found"
// @Security     ApiKeyAuth
// @Router       /api/bundles/{id}/unpublish [post]
func (h *CatalogHandler) UnpublishBundle(c *gin.Context) {
	h.setPublished(c, false)
}

func (h *CatalogHandler) setPublished(c *gin.Context, published bool) {
	builder := NewResponseBuilder(c)
	id := c.Param("id")

	var (
		bundle *model.Bundle
		err    error
	)
	if published {
		bundle, err = h.catalog.PublishBundle(c.Request.Context(), id)
	} else {
		bundle, err = h.catalog.UnpublishBundle(c.Request.Context(), id)
	}

	fields := map[string]any{"bundle_id": id, "published": published}
	if err != nil {
		middleware.AuditLogError(h.audit, c, model.ActionCatalog, "pack publication rejected", err, fields)
		builder.DomainError(err)
		return
	}
	middleware.AuditLog(h.audit, c, model.ActionCatalog, "pack publication changed", fields)
	builder.SuccessOK(h.bundleResponse(c, bundle))
}

// ComposeBundle handles POST /api/bundles/{id}/compose.
//
// @Summary      Preview pack order lines
// @Description  Returns the order lines adding the pack to a cart would produce, without touching any cart.
// @Tags         Catalog
// @Accept       json
// @Produce      json
// @Param        id      path string              true  "Pack id"
// @Param        request body dto.ComposeRequest  false "Number of packs (default 1)"
// @Success      200 {object} dto.SuccessResponse{data=model.Composition} "Order lines"
// @Failure      400 {object} dto.ErrorResponse "Invalid quantity"
// @Failure      404 {object} dto.ErrorResponse "Pack not found"
// @Failure      422 {object} dto.ErrorResponse "Pack cannot be priced or a component is unavailable"
// @Router       /api/bundles/{id}/compose [post]
func (h *CatalogHandler) ComposeBundle(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.ComposeRequest](c)
	if err != nil {
		builder.BindError(err)
		return
	}

	ctx := c.Request.Context()
	bundle, err := h.catalog.GetBundle(ctx, c.Param("id"))
	if err != nil {
		builder.DomainError(err)
		return
	}
	composition, err := h.composer.Compose(ctx, *bundle, req.Quantity)
	if err != nil {
		builder.DomainError(err)
		return
	}
	builder.SuccessOK(composition)
}

// bundleResponse prices one pack. A pack that cannot be priced is returned without a price.
func (h *CatalogHandler) bundleResponse(c *gin.Context, bundle *model.Bundle) dto.BundleResponse {
	resp := dto.BundleResponse{Bundle: *bundle, ModeLabel: bundle.Mode.Label()}
	price, err := h.composer.UnitPrice(c.Request.Context(), *bundle)
	if err != nil {
		log := middleware.RequestLog(c)
		log.Debug().Err(err).Str("bundle_id", bundle.ID).Msg("Pack has no price")
		return resp
	}
	resp.Price = &price
	return resp
}
