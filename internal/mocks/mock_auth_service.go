package mocks

import (
	"context"

	"github.com/you/storefront/domain"
)

// MockAuthService implements domain.AuthService for testing
type MockAuthService struct {
	RegisterFunc       func(ctx context.Context, reg *domain.PendingRegistration) error
	VerifyOTPFunc      func(ctx context.Context, email, code string) (*domain.User, error)
	LoginFunc          func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	ForgotPasswordFunc func(ctx context.Context, email string) error
	ResetPasswordFunc  func(ctx context.Context, token, newPassword string) error
	GetUserProfileFunc func(ctx context.Context, userID uint) (*domain.User, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// Register parks a pending registration
func (m *MockAuthService) Register(ctx context.Context, reg *domain.PendingRegistration) error {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, reg)
	}
	return nil
}

// VerifyOTP confirms a pending registration
func (m *MockAuthService) VerifyOTP(ctx context.Context, email, code string) (*domain.User, error) {
	if m.VerifyOTPFunc != nil {
		return m.VerifyOTPFunc(ctx, email, code)
	}
	return nil, domain.ErrOTPInvalid
}

// Login authenticates a user
func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return nil, domain.ErrInvalidCredentials
}

// ForgotPassword issues a reset grant
func (m *MockAuthService) ForgotPassword(ctx context.Context, email string) error {
	if m.ForgotPasswordFunc != nil {
		return m.ForgotPasswordFunc(ctx, email)
	}
	return nil
}

// ResetPassword consumes a reset grant
func (m *MockAuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, token, newPassword)
	}
	return nil
}

// GetUserProfile loads a user profile
func (m *MockAuthService) GetUserProfile(ctx context.Context, userID uint) (*domain.User, error) {
	if m.GetUserProfileFunc != nil {
		return m.GetUserProfileFunc(ctx, userID)
	}
	return nil, domain.ErrUserNotFound
}
