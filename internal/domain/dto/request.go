// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs decouple the HTTP layer from the domain model and carry request validation.
package dto

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/guttosm/pack-pricing-service/internal/domain/model"
)

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

var (
	// ErrInvalidQuantity is returned when quantity is not a positive integer.
	ErrInvalidQuantity = &ValidationError{Field: "quantity", Message: "must be a positive integer"}
	// ErrNegativeQuantity is returned when a line quantity update is below zero.
	ErrNegativeQuantity = &ValidationError{Field: "quantity", Message: "must not be negative"}
	// ErrQuantityTooLarge is returned when quantity is above model.MaxQuantity.
	ErrQuantityTooLarge = &ValidationError{Field: "quantity", Message: fmt.Sprintf("must not exceed %d", model.MaxQuantity)}
	// ErrMissingProductID is returned when product_id is empty.
	ErrMissingProductID = &ValidationError{Field: "product_id", Message: "is required"}
)

// AddToCartRequest is the body of POST /api/cart/lines.
// ProductID may name a plain product or a pack.
//
// @Description Add a product or pack to the session cart
// @Example {"product_id": "pack-cpu-totalized", "quantity": 1}
type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required" example:"pack-cpu-totalized"`
	Quantity  int    `json:"quantity" example:"1" minimum:"1" maximum:"10000"`
} // @name AddToCartRequest

// Validate trims the product id and defaults quantity to one.
func (r *AddToCartRequest) Validate() error {
	r.ProductID = strings.TrimSpace(r.ProductID)
	if r.ProductID == "" {
		return ErrMissingProductID
	}
	if r.Quantity == 0 {
		r.Quantity = 1
	}
	if r.Quantity < 0 {
		return ErrInvalidQuantity
	}
	if r.Quantity > model.MaxQuantity {
		return ErrQuantityTooLarge
	}
	return nil
}

// UpdateLineRequest is the body of PATCH /api/cart/lines/{line_id}.
// A zero quantity removes the line.
//
// @Description Change the quantity of a cart line
type UpdateLineRequest struct {
	Quantity *int `json:"quantity" binding:"required" example:"2" minimum:"0" maximum:"10000"`
} // @name UpdateLineRequest

// Validate checks the requested quantity.
func (r *UpdateLineRequest) Validate() error {
	if r.Quantity == nil {
		return &ValidationError{Field: "quantity", Message: "is required"}
	}
	if *r.Quantity < 0 {
		return ErrNegativeQuantity
	}
	if *r.Quantity > model.MaxQuantity {
		return ErrQuantityTooLarge
	}
	return nil
}

// ComposeRequest is the body of POST /api/bundles/{id}/compose.
//
// @Description Preview the order lines of a pack
type ComposeRequest struct {
	Quantity int `json:"quantity" example:"1" minimum:"1" maximum:"10000"`
} // @name ComposeRequest

// Validate defaults quantity to one.
func (r *ComposeRequest) Validate() error {
	if r.Quantity == 0 {
		r.Quantity = 1
	}
	if r.Quantity < 0 {
		return ErrInvalidQuantity
	}
	if r.Quantity > model.MaxQuantity {
		return ErrQuantityTooLarge
	}
	return nil
}

// UpsertProductRequest is the body of PUT /api/products/{id}.
//
// @Description Create or replace a catalog product
type UpsertProductRequest struct {
	Name      string          `json:"name" binding:"required" example:"CPU"`
	ListPrice decimal.Decimal `json:"list_price" swaggertype:"string" example:"100.00"`
	TaxRate   decimal.Decimal `json:"tax_rate" swaggertype:"string" example:"0.21"`
	Published bool            `json:"published" example:"true"`
} // @name UpsertProductRequest

// Validate checks name and prices.
func (r *UpsertProductRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return &ValidationError{Field: "name", Message: "is required"}
	}
	if r.ListPrice.IsNegative() {
		return &ValidationError{Field: "list_price", Message: "must not be negative"}
	}
	if r.TaxRate.IsNegative() {
		return &ValidationError{Field: "tax_rate", Message: "must not be negative"}
	}
	return nil
}

// ToModel builds the product stored under id.
func (r *UpsertProductRequest) ToModel(id string) model.Product {
	return model.Product{
		ID:        id,
		Name:      strings.TrimSpace(r.Name),
		ListPrice: r.ListPrice,
		TaxRate:   r.TaxRate,
		Published: r.Published,
	}
}

// BundleComponentRequest is one component of an UpsertBundleRequest.
type BundleComponentRequest struct {
	ProductID string           `json:"product_id" example:"fan"`
	Quantity  int              `json:"quantity" example:"2"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty" swaggertype:"string"`
} // @name BundleComponentRequest

// UpsertBundleRequest is the body of PUT /api/bundles/{id}.
//
// @Description Create or replace a pack definition
type UpsertBundleRequest struct {
	Name       string                   `json:"name" binding:"required" example:"Pack CPU (Detailed - Totalized Components Price)"`
	Mode       string                   `json:"mode" example:"detailed_totalized"`
	Components []BundleComponentRequest `json:"components"`
	FixedPrice *decimal.Decimal         `json:"fixed_price,omitempty" swaggertype:"string" example:"110.00"`
	TaxRate    decimal.Decimal          `json:"tax_rate" swaggertype:"string" example:"0.21"`
} // @name UpsertBundleRequest

// Validate checks the fields owned by the request. Structural pack rules are enforced by
// model.Bundle.Validate once the request is converted.
func (r *UpsertBundleRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return &ValidationError{Field: "name", Message: "is required"}
	}
	if len(r.Components) == 0 {
		return &ValidationError{Field: "components", Message: "must not be empty"}
	}
	return nil
}

// ToModel builds the bundle stored under id. An empty mode stays unset so the resolver can
// reject it.
func (r *UpsertBundleRequest) ToModel(id string) (model.Bundle, error) {
	mode := model.ModeUnset
	if strings.TrimSpace(r.Mode) != "" {
		m, err := model.ParsePricingMode(r.Mode)
		if err != nil {
			return model.Bundle{}, &ValidationError{Field: "mode", Message: "unknown pricing mode"}
		}
		mode = m
	}
	components := make([]model.BundleComponent, len(r.Components))
	for i, c := range r.Components {
		components[i] = model.BundleComponent{
			ProductID: strings.TrimSpace(c.ProductID),
			Quantity:  c.Quantity,
			UnitPrice: c.UnitPrice,
		}
	}
	return model.Bundle{
		ID:         id,
		Name:       strings.TrimSpace(r.Name),
		Mode:       mode,
		Components: components,
		FixedPrice: r.FixedPrice,
		TaxRate:    r.TaxRate,
	}, nil
}
