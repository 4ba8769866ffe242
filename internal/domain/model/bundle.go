package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// BundleComponent is one product of a pack with its quantity per pack.
type BundleComponent struct {
	ProductID string `bson:"product_id" json:"product_id" example:"cpu"`
	Quantity  int    `bson:"quantity" json:"quantity" example:"1"`
	// UnitPrice overrides the catalog list price of the component when set.
	UnitPrice *decimal.Decimal `bson:"unit_price,omitempty" json:"unit_price,omitempty" swaggertype:"string"`
} // @name BundleComponent

// Bundle is a pack: a fixed set of component products sold together under one pricing mode.
//
// @Description Product pack definition
type Bundle struct {
	ID         string            `bson:"_id" json:"id" example:"pack-cpu-totalized"`
	Name       string            `bson:"name" json:"name"`
	Components []BundleComponent `bson:"components" json:"components"`
	Mode       PricingMode       `bson:"mode" json:"mode" example:"detailed_totalized"`
	// FixedPrice is the price of one pack; when nil the pack costs the sum of its components.
	FixedPrice *decimal.Decimal `bson:"fixed_price,omitempty" json:"fixed_price,omitempty" swaggertype:"string"`
	TaxRate    decimal.Decimal  `bson:"tax_rate" json:"tax_rate" swaggertype:"string"`
	Published  bool             `bson:"published" json:"published"`
	Version    int              `bson:"version" json:"version"`
	CreatedAt  time.Time        `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time        `bson:"updated_at" json:"updated_at"`
} // @name Bundle

// ComponentIDs returns the product ids of the components in bundle order.
func (b Bundle) ComponentIDs() []string {
	ids := make([]string, len(b.Components))
	for i, c := range b.Components {
		ids[i] = c.ProductID
	}
	return ids
}

// Clone returns a deep copy of the bundle.
func (b Bundle) Clone() Bundle {
	out := b
	out.Components = make([]BundleComponent, len(b.Components))
	for i, c := range b.Components {
		if c.UnitPrice != nil {
			price := *c.UnitPrice
			c.UnitPrice = &price
		}
		out.Components[i] = c
	}
	if b.FixedPrice != nil {
		price := *b.FixedPrice
		out.FixedPrice = &price
	}
	return out
}

// Validate checks the structural invariants of the bundle.
// Every failure wraps ErrInvalidConfiguration.
func (b Bundle) Validate() error {
	return b.validate(true)
}

// ValidateDraft is Validate for unpublished bundles, which may not have a pricing mode yet.
func (b Bundle) ValidateDraft() error {
	return b.validate(false)
}

func (b Bundle) validate(requireMode bool) error {
	if b.ID == "" {
		return fmt.Errorf("%w: bundle id is required", ErrInvalidConfiguration)
	}
	if b.Mode == ModeUnset {
		if requireMode {
			return fmt.Errorf("%w: bundle %s has no pricing mode", ErrInvalidConfiguration, b.ID)
		}
	} else if !b.Mode.Valid() {
		return fmt.Errorf("%w: bundle %s has unknown pricing mode %q", ErrInvalidConfiguration, b.ID, b.Mode)
	}
	if len(b.Components) == 0 {
		return fmt.Errorf("%w: bundle %s has no components", ErrInvalidConfiguration, b.ID)
	}
	seen := make(map[string]struct{}, len(b.Components))
	for _, c := range b.Components {
		if c.ProductID == "" {
			return fmt.Errorf("%w: bundle %s has a component without product", ErrInvalidConfiguration, b.ID)
		}
		if c.ProductID == b.ID {
			return fmt.Errorf("%w: bundle %s contains itself", ErrInvalidConfiguration, b.ID)
		}
		if _, dup := seen[c.ProductID]; dup {
			return fmt.Errorf("%w: bundle %s lists component %s twice", ErrInvalidConfiguration, b.ID, c.ProductID)
		}
		seen[c.ProductID] = struct{}{}
		if c.Quantity < 1 || c.Quantity > MaxQuantity {
			return fmt.Errorf("%w: component %s of bundle %s has quantity %d", ErrInvalidConfiguration, c.ProductID, b.ID, c.Quantity)
		}
		if c.UnitPrice != nil && c.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: component %s of bundle %s has a negative price", ErrInvalidConfiguration, c.ProductID, b.ID)
		}
	}
	if b.FixedPrice != nil {
		if b.FixedPrice.IsNegative() {
			return fmt.Errorf("%w: bundle %s has a negative price", ErrInvalidConfiguration, b.ID)
		}
		if b.Mode == ModeDetailedDisplayed {
			return fmt.Errorf("%w: bundle %s displays component prices and cannot have a fixed price", ErrInvalidConfiguration, b.ID)
		}
	}
	if b.TaxRate.IsNegative() {
		return fmt.Errorf("%w: bundle %s has a negative tax rate", ErrInvalidConfiguration, b.ID)
	}
	return nil
}
