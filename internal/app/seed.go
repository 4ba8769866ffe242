package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/guttosm/pack-pricing-service/internal/domain/model"
	"github.com/guttosm/pack-pricing-service/internal/repository"
	"github.com/guttosm/pack-pricing-service/internal/service"
)

var demoTaxRate = decimal.RequireFromString("0.21")

// DemoProducts are the components of the demo packs.
var DemoProducts = []model.Product{
	{ID: "cpu", Name: "CPU", ListPrice: decimal.NewFromInt(100), TaxRate: demoTaxRate, Published: true},
	{ID: "fan", Name: "Fan", ListPrice: decimal.NewFromInt(10), TaxRate: demoTaxRate, Published: true},
	{ID: "memory", Name: "Memory", ListPrice: decimal.NewFromInt(30), TaxRate: demoTaxRate, Published: true},
}

// DemoBundles holds one published pack per pricing mode.
var DemoBundles = []model.Bundle{
	{
		ID:         "pack-cpu-displayed",
		Name:       "Pack CPU (Detailed - Displayed Components Price)",
		Mode:       model.ModeDetailedDisplayed,
		Components: cpuAndFans(),
		TaxRate:    demoTaxRate,
	},
	{
		ID:         "pack-cpu-ignored",
		Name:       "Pack CPU (Detailed - Ignored Components Price)",
		Mode:       model.ModeDetailedIgnored,
		Components: cpuAndFans(),
		FixedPrice: decimalPtr("110"),
		TaxRate:    demoTaxRate,
	},
	{
		ID:         "pack-cpu-totalized",
		Name:       "Pack CPU (Detailed - Totalized Components Price)",
		Mode:       model.ModeDetailedTotalized,
		Components: cpuAndFans(),
		FixedPrice: decimalPtr("110"),
		TaxRate:    demoTaxRate,
	},
	{
		ID:   "pack-non-detailed",
		Name: "Non Detailed - Totalized Components Price",
		Mode: model.ModeNonDetailedTotalized,
		Components: []model.BundleComponent{
			{ProductID: "cpu", Quantity: 1},
			{ProductID: "memory", Quantity: 2},
		},
		TaxRate: demoTaxRate,
	},
}

func cpuAndFans() []model.BundleComponent {
	return []model.BundleComponent{
		{ProductID: "cpu", Quantity: 1},
		{ProductID: "fan", Quantity: 2},
	}
}

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// SeedCatalog loads the demo catalog through the catalog service when no product exists yet.
// It reports whether anything was written.
func SeedCatalog(ctx context.Context, catalog service.CatalogService, products repository.ProductRepositoryInterface) (bool, error) {
	count, err := products.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	for _, p := range DemoProducts {
		if _, err := catalog.UpsertProduct(ctx, p); err != nil {
			return false, fmt.Errorf("seed product %s: %w", p.ID, err)
		}
	}
	for _, b := range DemoBundles {
		b = b.Clone()
		if _, err := catalog.SaveBundle(ctx, b); err != nil {
			return false, fmt.Errorf("seed pack %s: %w", b.ID, err)
		}
		if _, err := catalog.PublishBundle(ctx, b.ID); err != nil {
			return false, fmt.Errorf("publish pack %s: %w", b.ID, err)
		}
	}

	log.Info().Int("products", len(DemoProducts)).Int("packs", len(DemoBundles)).Msg("Seeded demo catalog")
	return true, nil
}
