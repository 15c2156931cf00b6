package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/foodgram/backend/internal/models"
	"github.com/pageza/foodgram/backend/internal/service"
	"github.com/stretchr/testify/mock"
)

// MockCartService is a mock implementation of the cart service
type MockCartService struct {
	mock.Mock
}

var _ service.ICartService = (*MockCartService)(nil)

// AddToCart mocks the AddToCart method
func (m *MockCartService) AddToCart(ctx context.Context, userID, recipeID uuid.UUID) (*models.Recipe, error) {
	args := m.Called(ctx, userID, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

// RemoveFromCart mocks the RemoveFromCart method
func (m *MockCartService) RemoveFromCart(ctx context.Context, userID, recipeID uuid.UUID) error {
	args := m.Called(ctx, userID, recipeID)
	return args.Error(0)
}

// ListCart mocks the ListCart method
func (m *MockCartService) ListCart(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Recipe), args.Error(1)
}

// BuildShoppingList mocks the BuildShoppingList method
func (m *MockCartService) BuildShoppingList(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
