package mocks

import (
	"context"
	"time"

	"github.com/you/storefront/domain"
)

// MockOTPLedger implements domain.OTPLedger for testing
type MockOTPLedger struct {
	PutFunc    func(ctx context.Context, email string, entry *domain.PendingRegistration, ttl time.Duration) error
	GetFunc    func(ctx context.Context, email string) (*domain.PendingRegistration, error)
	DeleteFunc func(ctx context.Context, email string) error
}

// NewMockOTPLedger creates a new MockOTPLedger with default behaviors
func NewMockOTPLedger() *MockOTPLedger {
	return &MockOTPLedger{}
}

// Put stores a pending registration
func (m *MockOTPLedger) Put(ctx context.Context, email string, entry *domain.PendingRegistration, ttl time.Duration) error {
	if m.PutFunc != nil {
		return m.PutFunc(ctx, email, entry, ttl)
	}
	return nil
}

// Get looks up a pending registration
func (m *MockOTPLedger) Get(ctx context.Context, email string) (*domain.PendingRegistration, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, email)
	}
	// Default behavior: nothing pending
	return nil, domain.ErrOTPAbsent
}

// Delete removes a pending registration
func (m *MockOTPLedger) Delete(ctx context.Context, email string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, email)
	}
	return nil
}
