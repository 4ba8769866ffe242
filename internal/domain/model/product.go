package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable catalog item. Packs are products too; their composition lives in Bundle.
//
// @Description Catalog product
type Product struct {
	ID        string          `bson:"_id" json:"id" example:"cpu"`
	Name      string          `bson:"name" json:"name" example:"CPU"`
	ListPrice decimal.Decimal `bson:"list_price" json:"list_price" swaggertype:"string" example:"100.00"`
	TaxRate   decimal.Decimal `bson:"tax_rate" json:"tax_rate" swaggertype:"string" example:"0.21"`
	Published bool            `bson:"published" json:"published"`
	UpdatedAt time.Time       `bson:"updated_at" json:"updated_at"`
} // @name Product
