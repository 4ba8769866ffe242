package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart is the shopping cart of one storefront session.
//
// @Description Session cart
type Cart struct {
	SessionID string          `bson:"_id" json:"session_id"`
	Lines     []OrderLine     `bson:"lines" json:"lines"`
	Subtotal  decimal.Decimal `bson:"subtotal" json:"subtotal" swaggertype:"string"`
	Tax       decimal.Decimal `bson:"tax" json:"tax" swaggertype:"string"`
	Total     decimal.Decimal `bson:"total" json:"total" swaggertype:"string"`
	// Version is incremented on every save and guards concurrent writers.
	Version   int       `bson:"version" json:"version"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
} // @name Cart

// NewCart returns an empty cart for the session.
func NewCart(sessionID string, now time.Time) *Cart {
	return &Cart{
		SessionID: sessionID,
		Lines:     []OrderLine{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy of the cart.
func (c *Cart) Clone() *Cart {
	out := *c
	out.Lines = make([]OrderLine, len(c.Lines))
	copy(out.Lines, c.Lines)
	return &out
}

// FindLine returns the index of the line with the given id, or -1.
func (c *Cart) FindLine(lineID string) int {
	for i := range c.Lines {
		if c.Lines[i].ID == lineID {
			return i
		}
	}
	return -1
}

// FindTopLevelByProduct returns the index of the non component line selling productID, or -1.
func (c *Cart) FindTopLevelByProduct(productID string) int {
	for i := range c.Lines {
		if !c.Lines[i].IsComponent && c.Lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// RemoveLine removes a line together with any component lines that reference it.
// It reports whether anything was removed.
func (c *Cart) RemoveLine(lineID string) bool {
	kept := c.Lines[:0]
	removed := false
	for _, l := range c.Lines {
		if l.ID == lineID || l.ParentLineID == lineID {
			removed = true
			continue
		}
		kept = append(kept, l)
	}
	c.Lines = kept
	return removed
}

// ReplaceBundle swaps the parent line at index i and its components for lines.
// lines[0] must be the new parent line; the rest are inserted right after it.
func (c *Cart) ReplaceBundle(i int, lines []OrderLine) {
	parentID := c.Lines[i].ID
	out := make([]OrderLine, 0, len(c.Lines)+len(lines))
	for j, l := range c.Lines {
		if j == i {
			out = append(out, lines...)
			continue
		}
		if l.ParentLineID == parentID {
			continue
		}
		out = append(out, l)
	}
	c.Lines = out
}

// Recompute refreshes subtotal, tax and total from the lines.
// Tax is rounded per line before summing.
func (c *Cart) Recompute(precision int32) {
	subtotal := decimal.Zero
	tax := decimal.Zero
	for _, l := range c.Lines {
		subtotal = subtotal.Add(l.Subtotal)
		tax = tax.Add(l.Tax(precision))
	}
	c.Subtotal = RoundMoney(subtotal, precision)
	c.Tax = tax
	c.Total = c.Subtotal.Add(c.Tax)
}

// ItemCount returns the number of units in top level lines.
func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.Lines {
		if !l.IsComponent {
			n += l.Quantity
		}
	}
	return n
}
