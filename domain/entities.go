package domain

import "time"

// Roles assignable to an account.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a customer or admin account
type User struct {
	ID             uint
	Name           string
	Email          string
	Contact        string
	PasswordHash   string `json:"-"`
	Role           string
	Addresses      []Address
	ResetToken     string    `json:"-"`
	ResetExpiresAt time.Time `json:"-"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Address is a shipping address attached to a user profile
type Address struct {
	Line1   string `json:"line1"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

// PendingRegistration is a registration awaiting OTP confirmation.
// It holds the raw candidate profile, including the plaintext password,
// until the code is confirmed and the account is actually created.
type PendingRegistration struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Contact   string    `json:"contact"`
	Password  string    `json:"password"`
	Addresses []Address `json:"addresses,omitempty"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the entry's confirmation window has passed.
func (p *PendingRegistration) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}

// AuthResult represents a successful login outcome
type AuthResult struct {
	User      *User
	Token     string
	ExpiresIn int64
}

// Order status values.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Order represents a customer order. Items are snapshots taken at checkout
// time, not references into a catalog.
type Order struct {
	ID        uint
	Reference string
	UserID    uint
	Items     []OrderItem
	Total     int64
	Status    string
	Address   Address
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderItem is a line-item snapshot on an order
type OrderItem struct {
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

// TokenClaims represents JWT token claims
type TokenClaims struct {
	UserID    uint   `json:"user_id"`
	Role      string `json:"role"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}
