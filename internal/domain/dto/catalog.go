package dto

import (
	"github.com/shopspring/decimal"

	"github.com/guttosm/pack-pricing-service/internal/domain/model"
)

// ProductResponse is a storefront search hit. Packs appear with IsPack set and their
// whole-pack price.
//
// @Description Storefront product
type ProductResponse struct {
	ID        string            `json:"id" example:"pack-cpu-totalized"`
	Name      string            `json:"name" example:"Pack CPU (Detailed - Totalized Components Price)"`
	Price     decimal.Decimal   `json:"price" swaggertype:"string" example:"110.00"`
	IsPack    bool              `json:"is_pack"`
	Mode      model.PricingMode `json:"mode,omitempty"`
	Published bool              `json:"published"`
} // @name ProductResponse

// BundleResponse is a pack definition with its whole-pack price.
//
// @Description Pack with price
type BundleResponse struct {
	model.Bundle
	// Price is the price of one pack; absent when the pack cannot be priced.
	Price *decimal.Decimal `json:"price,omitempty" swaggertype:"string"`
	// ModeLabel is the storefront label of the pricing mode.
	ModeLabel string `json:"mode_label"`
} // @name BundleResponse

// SessionResponse is returned by POST /api/sessions.
//
// @Description Storefront session token
type SessionResponse struct {
	SessionID string `json:"session_id" example:"0b9c2f8e-7f57-4a59-9c55-5d1b6a0c7a10"`
	Token     string `json:"token,omitempty" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresIn int64  `json:"expires_in" example:"86400"`
} // @name SessionResponse
