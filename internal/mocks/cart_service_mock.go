// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/pack-pricing-service/internal/domain/dto"
	"github.com/guttosm/pack-pricing-service/internal/domain/model"
	"github.com/guttosm/pack-pricing-service/internal/service"
)

type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) cart(args mock.Arguments) (*model.Cart, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}

func (m *MockCartService) AddToCart(ctx context.Context, sessionID, productID string, quantity int) (*model.Cart, error) {
	return m.cart(m.Called(ctx, sessionID, productID, quantity))
}

func (m *MockCartService) UpdateLineQuantity(ctx context.Context, sessionID, lineID string, quantity int) (*model.Cart, error) {
	return m.cart(m.Called(ctx, sessionID, lineID, quantity))
}

func (m *MockCartService) RemoveLine(ctx context.Context, sessionID, lineID string) (*model.Cart, error) {
	return m.cart(m.Called(ctx, sessionID, lineID))
}

func (m *MockCartService) GetCart(ctx context.Context, sessionID string) (*model.Cart, error) {
	return m.cart(m.Called(ctx, sessionID))
}

func (m *MockCartService) ClearCart(ctx context.Context, sessionID string) (*model.Cart, error) {
	return m.cart(m.Called(ctx, sessionID))
}

func (m *MockCartService) ActiveSessions() int {
	return m.Called().Int(0)
}

func (m *MockCartService) Stop() {
	m.Called()
}

type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Issue() (*dto.SessionResponse, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SessionResponse), args.Error(1)
}

func (m *MockSessionService) Validate(tokenString string) (string, error) {
	args := m.Called(tokenString)
	return args.String(0), args.Error(1)
}

var (
	_ service.CartService    = (*MockCartService)(nil)
	_ service.SessionService = (*MockSessionService)(nil)
)
