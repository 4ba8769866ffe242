package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/pack-pricing-service/internal/domain/dto"
	"github.com/guttosm/pack-pricing-service/internal/middleware"
	"github.com/guttosm/pack-pricing-service/internal/service"
)

// CartHandler exposes the session cart. Every route runs behind middleware.Session.
type CartHandler struct {
	carts service.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(carts service.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

// GetCart handles GET /api/cart.
//
// @Summary      Get the session cart
// @Tags         Cart
// @Produce      json
// @Param        Authorization header string false "Bearer session token (required if auth enabled)"
// @Param        X-Session-ID  header string false "Session id (when auth is disabled)"
// @Success      200 {object} dto.SuccessResponse{data=model.Cart} "Cart"
// @Failure      401 {object} dto.ErrorResponse "Missing session"
// @Security     BearerAuth
// @Router       /api/cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	builder := NewResponseBuilder(c)

	cart, err := h.carts.GetCart(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		builder.DomainError(err)
		return
	}
	builder.SuccessOK(cart)
}

// ClearCart handles DELETE /api/cart.
//
// @Summary      Empty the session cart
// @Tags         Cart
// @Produce      json
// @Param        Authorization header string false "Bearer session token (required if auth enabled)"
// @Param        X-Session-ID  header string false "Session id (when auth is disabled)"
// @Success      200 {object} dto.SuccessResponse{data=model.Cart} "Empty cart"
// @Failure      401 {object} dto.ErrorResponse "Missing session"
// @Security     BearerAuth
// @Router       /api/cart [delete]
func (h *CartHandler) ClearCart(c *gin.Context) {
	builder := NewResponseBuilder(c)

	cart, err := h.carts.ClearCart(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		builder.DomainError(err)
		return
	}
	builder.SuccessOK(cart)
}

// AddLine handles POST /api/cart/lines.
//
// @Summary      Add a product or pack to the cart
// @Description  Packs expand into a parent line plus component lines according to the pack pricing mode. Adding a product already in the cart increases its quantity. Supports idempotency via Idempotency-Key header.
// @Tags         Cart
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        Authorization header string false "Bearer session token (required if auth enabled)"
// @Param        X-Session-ID  header string false "Session id (when auth is disabled)"
// @Param        request body dto.AddToCartRequest true "Product and quantity"
// @Success      200 {object} dto.SuccessResponse{data=model.Cart} "Updated cart"
// @Failure      400 {object} dto.ErrorResponse "Invalid quantity"
// @Failure      401 {object} dto.ErrorResponse "Missing session"
// @Failure      404 {object} dto.ErrorResponse "Product not found"
// @Failure      409 {object} dto.ErrorResponse "Concurrent cart update"
// @Failure      422 {object} dto.ErrorResponse "Pack misconfigured or component unavailable"
// @Failure      503 {object} dto.ErrorResponse "Cart storage unavailable"
// @Security     BearerAuth
// @Router       /api/cart/lines [post]
func (h *CartHandler) AddLine(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.AddToCartRequest](c)
	if err != nil {
		builder.BindError(err)
		return
	}

	cart, err := h.carts.AddToCart(c.Request.Context(), middleware.GetSessionID(c), req.ProductID, req.Quantity)
	if err != nil {
		builder.DomainError(err)
		return
	}
	builder.SuccessOK(cart)
}

// UpdateLine handles PATCH /api/cart/lines/{line_id}.
//
// @Summary      Change the quantity of a cart line
// @Description  Pack lines are recomposed; component lines cannot be changed on their own. Quantity 0 removes the line.
// @Tags         Cart
// @Accept       json
// @Produce      json
// @Param        line_id path string true "Line id"
// @Param        Authorization header string false "Bearer session token (required if auth enabled)"
// @Param        X-Session-ID  header string false "Session id (when auth is disabled)"
// @Param        request body dto.UpdateLineRequest true "New quantity"
// @Success      200 {object} dto.SuccessResponse{data=model.Cart} "Updated cart"
// @Failure      400 {object} dto.ErrorResponse "Invalid quantity"
// @Failure      404 {object} dto.ErrorResponse "Line not found"
// @Failure      409 {object} dto.ErrorResponse "Component line or concurrent update"
// @Security     BearerAuth
// @Router       /api/cart/lines/{line_id} [patch]
func (h *CartHandler) UpdateLine(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.UpdateLineRequest](c)
	if err != nil {
		builder.BindError(err)
		return
	}

	cart, err := h.carts.UpdateLineQuantity(c.Request.Context(), middleware.GetSessionID(c), c.Param("line_id"), *req.Quantity)
	if err != nil {
		builder.DomainError(err)
		return
	}
	builder.SuccessOK(cart)
}

// RemoveLine handles DELETE /api/cart/lines/{line_id}.
//
// @Summary      Remove a cart line
// @Description  Removing a pack line removes its component lines.
// @Tags         Cart
// @Produce      json
// @Param        line_id path string true "Line id"
// @Param        Authorization header string false "Bearer session token (required if auth enabled)"
// @Param        X-Session-ID  header string false "Session id (when auth is disabled)"
// @Success      200 {object} dto.SuccessResponse{data=model.Cart} "Updated cart"
// @Failure      404 {object} dto.ErrorResponse "Line not found"
// @Failure      409 {object} dto.ErrorResponse "Component line"
// @Security     BearerAuth
// @Router       /api/cart/lines/{line_id} [delete]
func (h *CartHandler) RemoveLine(c *gin.Context) {
	builder := NewResponseBuilder(c)

	cart, err := h.carts.RemoveLine(c.Request.Context(), middleware.GetSessionID(c), c.Param("line_id"))
	if err != nil {
		builder.DomainError(err)
		return
	}
	builder.SuccessOK(cart)
}

// compile time check that request DTOs validate themselves
var (
	_ Validator = (*dto.AddToCartRequest)(nil)
	_ Validator = (*dto.UpdateLineRequest)(nil)
)
