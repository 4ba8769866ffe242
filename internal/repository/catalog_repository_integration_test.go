//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/pack-pricing-service/internal/circuitbreaker"
	"github.com/guttosm/pack-pricing-service/internal/domain/model"
)

func TestProductRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBFromSharedContainer(t)
	repo := NewProductRepository(db)

	cpu := &model.Product{ID: "cpu", Name: "CPU", ListPrice: decimal.RequireFromString("100.00"),
		TaxRate: decimal.RequireFromString("0.21"), Published: true}
	fan := &model.Product{ID: "fan", Name: "Fan", ListPrice: decimal.RequireFromString("10.00"), Published: true}
	hidden := &model.Product{ID: "gpu", Name: "GPU", ListPrice: decimal.NewFromInt(500)}
	for _, p := range []*model.Product{cpu, fan, hidden} {
		require.NoError(t, repo.Upsert(ctx, p))
	}

	t.Run("get keeps exact decimals", func(t *testing.T) {
		got, err := repo.Get(ctx, "cpu")
		require.NoError(t, err)
		assert.True(t, got.ListPrice.Equal(decimal.NewFromInt(100)))
		assert.Equal(t, "0.21", got.TaxRate.String())
	})

	t.Run("missing product", func(t *testing.T) {
		_, err := repo.Get(ctx, "nope")
		assert.ErrorIs(t, err, model.ErrProductNotFound)
	})

	t.Run("get many", func(t *testing.T) {
		got, err := repo.GetMany(ctx, []string{"cpu", "fan", "nope"})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("search skips unpublished and escapes input", func(t *testing.T) {
		got, err := repo.Search(ctx, "u", 10)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "cpu", got[0].ID)

		got, err = repo.Search(ctx, "(", 10)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestBundleRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBFromSharedContainer(t)
	cb := circuitbreaker.New(circuitbreaker.Config{FailureThreshold: 2, SuccessThreshold: 1, IsExpected: IsExpectedError})
	repo := NewBundleRepositoryWithCircuitBreaker(NewBundleRepository(db), cb)

	fixed := decimal.RequireFromString("110")
	b := &model.Bundle{
		ID:         "pack-cpu",
		Name:       "Pack CPU (Detailed - Totalized Components Price)",
		Mode:       model.ModeDetailedTotalized,
		FixedPrice: &fixed,
		Components: []model.BundleComponent{{ProductID: "cpu", Quantity: 1}, {ProductID: "fan", Quantity: 2}},
	}

	t.Run("insert and reload", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, b))
		assert.Equal(t, 1, b.Version)

		got, err := repo.Get(ctx, "pack-cpu")
		require.NoError(t, err)
		assert.Equal(t, model.ModeDetailedTotalized, got.Mode)
		require.NotNil(t, got.FixedPrice)
		assert.True(t, fixed.Equal(*got.FixedPrice))
		assert.Len(t, got.Components, 2)
	})

	t.Run("stale save conflicts", func(t *testing.T) {
		stale := *b
		stale.Version = 0
		assert.ErrorIs(t, repo.Save(ctx, &stale), model.ErrBundleConflict)

		stale.Version = 7
		assert.ErrorIs(t, repo.Save(ctx, &stale), model.ErrBundleConflict)
	})

	t.Run("published lookups", func(t *testing.T) {
		using, err := repo.PublishedUsing(ctx, "fan")
		require.NoError(t, err)
		assert.Empty(t, using)

		b.Published = true
		require.NoError(t, repo.Save(ctx, b))

		using, err = repo.PublishedUsing(ctx, "fan")
		require.NoError(t, err)
		assert.Len(t, using, 1)

		found, err := repo.Search(ctx, "totalized", 5)
		require.NoError(t, err)
		assert.Len(t, found, 1)
	})

	assert.Equal(t, circuitbreaker.StateClosed, cb.State())
}

func TestCartRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBFromSharedContainer(t)
	repo := NewCartRepository(db)

	got, err := repo.Get(ctx, "session-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	cart := model.NewCart("session-1", time.Now().UTC())
	cart.Lines = append(cart.Lines, model.OrderLine{
		ID: "l1", ProductID: "cpu", Name: "CPU", Quantity: 1,
		UnitPrice: decimal.NewFromInt(100), Subtotal: decimal.NewFromInt(100), TaxRate: decimal.RequireFromString("0.21"),
	})
	cart.Recompute(2)

	t.Run("insert then update", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, cart))
		assert.Equal(t, 1, cart.Version)

		cart.Lines[0].Quantity = 2
		require.NoError(t, repo.Save(ctx, cart))
		assert.Equal(t, 2, cart.Version)

		stored, err := repo.Get(ctx, "session-1")
		require.NoError(t, err)
		assert.Equal(t, 2, stored.Lines[0].Quantity)
		assert.Equal(t, "121", stored.Total.String())
	})

	t.Run("stale writer conflicts", func(t *testing.T) {
		stale := cart.Clone()
		stale.Version = 1
		assert.ErrorIs(t, repo.Save(ctx, stale), model.ErrCartConflict)

		fresh := model.NewCart("session-1", time.Now())
		assert.ErrorIs(t, repo.Save(ctx, fresh), model.ErrCartConflict)
	})
}
