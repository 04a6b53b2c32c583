package mocks

import (
	"github.com/you/storefront/domain"
)

// MockPasswordService implements domain.PasswordService for testing
type MockPasswordService struct {
	HashFunc   func(password string) (string, error)
	VerifyFunc func(hashedPassword, password string) bool
}

// NewMockPasswordService creates a new MockPasswordService with default behaviors
func NewMockPasswordService() *MockPasswordService {
	return &MockPasswordService{}
}

// Hash hashes a password
func (m *MockPasswordService) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	// Default behavior: recognizable fake hash
	return "hashed_" + password, nil
}

// Verify checks a password against a hash
func (m *MockPasswordService) Verify(hashedPassword, password string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(hashedPassword, password)
	}
	// Default behavior: matches the fake hash scheme
	return hashedPassword == "hashed_"+password
}

// MockTokenService implements domain.TokenService for testing
type MockTokenService struct {
	GenerateFunc func(userID uint, role string) (string, error)
	ValidateFunc func(token string) (*domain.TokenClaims, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// Generate issues a token
func (m *MockTokenService) Generate(userID uint, role string) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(userID, role)
	}
	return "mock_token", nil
}

// Validate verifies a token
func (m *MockTokenService) Validate(token string) (*domain.TokenClaims, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(token)
	}
	return nil, domain.ErrTokenInvalid
}

// MockMailer implements domain.Mailer for testing
type MockMailer struct {
	SendEmailFunc func(to, subject, htmlBody string) error

	// Sent records every successful dispatch for assertions
	Sent []SentMail
}

// SentMail is one recorded outbound email
type SentMail struct {
	To      string
	Subject string
	Body    string
}

// NewMockMailer creates a new MockMailer with default behaviors
func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

// SendEmail dispatches an email
func (m *MockMailer) SendEmail(to, subject, htmlBody string) error {
	if m.SendEmailFunc != nil {
		if err := m.SendEmailFunc(to, subject, htmlBody); err != nil {
			return err
		}
	}
	m.Sent = append(m.Sent, SentMail{To: to, Subject: subject, Body: htmlBody})
	return nil
}
