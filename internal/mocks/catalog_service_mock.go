// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/guttosm/pack-pricing-service/internal/domain/model"
	"github.com/guttosm/pack-pricing-service/internal/service"
	"github.com/guttosm/pack-pricing-service/internal/service/cache"
)

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) LookupProducts(ctx context.Context, ids []string) (map[string]model.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]model.Product), args.Error(1)
}

func (m *MockCatalogService) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockCatalogService) GetBundle(ctx context.Context, id string) (*model.Bundle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Bundle), args.Error(1)
}

func (m *MockCatalogService) Search(ctx context.Context, query string, limit int) (*service.SearchResult, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SearchResult), args.Error(1)
}

func (m *MockCatalogService) UpsertProduct(ctx context.Context, p model.Product) (*model.Product, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockCatalogService) SaveBundle(ctx context.Context, b model.Bundle) (*model.Bundle, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Bundle), args.Error(1)
}

func (m *MockCatalogService) PublishBundle(ctx context.Context, id string) (*model.Bundle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Bundle), args.Error(1)
}

func (m *MockCatalogService) UnpublishBundle(ctx context.Context, id string) (*model.Bundle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Bundle), args.Error(1)
}

func (m *MockCatalogService) CacheMetrics() cache.Metrics {
	args := m.Called()
	return args.Get(0).(cache.Metrics)
}

func (m *MockCatalogService) Stop() {
	m.Called()
}

type MockComposer struct {
	mock.Mock
}

func (m *MockComposer) Compose(ctx context.Context, bundle model.Bundle, quantity int) (model.Composition, error) {
	args := m.Called(ctx, bundle, quantity)
	return args.Get(0).(model.Composition), args.Error(1)
}

func (m *MockComposer) UnitPrice(ctx context.Context, bundle model.Bundle) (decimal.Decimal, error) {
	args := m.Called(ctx, bundle)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

var (
	_ service.CatalogService = (*MockCatalogService)(nil)
	_ service.Composer       = (*MockComposer)(nil)
)
