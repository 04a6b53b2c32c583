package mocks

import (
	"context"

	"github.com/you/storefront/domain"
)

// MockOrderRepository implements domain.OrderRepository for testing
type MockOrderRepository struct {
	CreateFunc       func(ctx context.Context, order *domain.Order) error
	FindByIDFunc     func(ctx context.Context, id uint) (*domain.Order, error)
	FindByUserFunc   func(ctx context.Context, userID uint) ([]domain.Order, error)
	ListAllFunc      func(ctx context.Context) ([]domain.Order, error)
	UpdateStatusFunc func(ctx context.Context, id uint, status string) error
}

// NewMockOrderRepository creates a new MockOrderRepository with default behaviors
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{}
}

// Create creates a new order
func (m *MockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, order)
	}
	return nil
}

// FindByID finds an order by ID
func (m *MockOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrOrderNotFound
}

// FindByUser finds a user's orders
func (m *MockOrderRepository) FindByUser(ctx context.Context, userID uint) ([]domain.Order, error) {
	if m.FindByUserFunc != nil {
		return m.FindByUserFunc(ctx, userID)
	}
	return nil, nil
}

// ListAll returns all orders
func (m *MockOrderRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return nil, nil
}

// UpdateStatus updates an order's status
func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil
}
