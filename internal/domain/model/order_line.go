package model

import "github.com/shopspring/decimal"

// OrderLine is one line of a cart.
//
// Parent lines carry the pack itself (BundleID set, IsComponent false). Component lines point at
// their parent through ParentLineID; the reference is resolved through the cart, never followed
// as an owning pointer.
//
// @Description Cart order line
type OrderLine struct {
	ID           string          `bson:"id" json:"id"`
	ProductID    string          `bson:"product_id" json:"product_id"`
	Name         string          `bson:"name" json:"name"`
	Quantity     int             `bson:"quantity" json:"quantity"`
	UnitPrice    decimal.Decimal `bson:"unit_price" json:"unit_price" swaggertype:"string"`
	Subtotal     decimal.Decimal `bson:"subtotal" json:"subtotal" swaggertype:"string"`
	TaxRate      decimal.Decimal `bson:"tax_rate" json:"tax_rate" swaggertype:"string"`
	IsComponent  bool            `bson:"is_component" json:"is_component"`
	BundleID     string          `bson:"bundle_id,omitempty" json:"bundle_id,omitempty"`
	ParentLineID string          `bson:"parent_line_id,omitempty" json:"parent_line_id,omitempty"`
	Mode         PricingMode     `bson:"mode,omitempty" json:"mode,omitempty"`
} // @name OrderLine

// IsBundleParent reports whether the line is the parent line of a pack.
func (l OrderLine) IsBundleParent() bool {
	return l.BundleID != "" && !l.IsComponent
}

// Tax returns the line tax rounded to precision.
func (l OrderLine) Tax(precision int32) decimal.Decimal {
	return RoundMoney(l.Subtotal.Mul(l.TaxRate), precision)
}

// Composition is the result of expanding a bundle into order lines.
// Lines[0] is always the parent line; component lines follow in bundle order.
//
// @Description Pack composition
type Composition struct {
	BundleID string      `json:"bundle_id"`
	Mode     PricingMode `json:"mode"`
	Quantity int         `json:"quantity"`
	// UnitPrice is the price of one pack.
	UnitPrice decimal.Decimal `json:"unit_price" swaggertype:"string"`
	// Total is UnitPrice times Quantity; it equals the sum of line subtotals.
	Total decimal.Decimal `json:"total" swaggertype:"string"`
	Lines []OrderLine     `json:"lines"`
} // @name Composition

// Parent returns the parent line of the composition.
func (c Composition) Parent() OrderLine {
	return c.Lines[0]
}

// Components returns the component lines of the composition.
func (c Composition) Components() []OrderLine {
	return c.Lines[1:]
}

// LinesTotal sums the subtotals of all lines.
func (c Composition) LinesTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.Lines {
		sum = sum.Add(l.Subtotal)
	}
	return sum
}
