package domain

import (
	"context"
	"time"
)

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	Update(ctx context.Context, user *User) error
	// FindByResetToken returns the user holding a matching, non-expired
	// password-reset grant.
	FindByResetToken(ctx context.Context, token string, now time.Time) (*User, error)
}

// OrderRepository defines order data access operations
type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id uint) (*Order, error)
	FindByUser(ctx context.Context, userID uint) ([]Order, error)
	ListAll(ctx context.Context) ([]Order, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
}

// OTPLedger is the ephemeral store of pending registrations, keyed by
// email. Put overwrites any prior entry for the same email. Get performs a
// pure lookup; expiry is the caller's responsibility. Delete is idempotent.
type OTPLedger interface {
	Put(ctx context.Context, email string, entry *PendingRegistration, ttl time.Duration) error
	Get(ctx context.Context, email string) (*PendingRegistration, error)
	Delete(ctx context.Context, email string) error
}

// AuthService defines authentication business logic
type AuthService interface {
	Register(ctx context.Context, reg *PendingRegistration) error
	VerifyOTP(ctx context.Context, email, code string) (*User, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	GetUserProfile(ctx context.Context, userID uint) (*User, error)
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines token operations
type TokenService interface {
	Generate(userID uint, role string) (string, error)
	Validate(token string) (*TokenClaims, error)
}

// Mailer defines outbound transactional email dispatch
type Mailer interface {
	SendEmail(to, subject, htmlBody string) error
}

// PolicyService defines authorization policy operations. Duplicate adds
// and removals of unknown rules fail with ErrPolicyExists and
// ErrPolicyNotFound.
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	ListPolicies() ([][]string, error)
	// SeedDefaults installs the default admin-surface policy when the
	// policy store is empty.
	SeedDefaults() error
}

// CasbinEnforcer defines the methods we need from the Casbin enforcer
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}
