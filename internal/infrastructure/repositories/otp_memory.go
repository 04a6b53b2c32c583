package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/you/storefront/domain"
)

// MemoryOTPLedger implements domain.OTPLedger with a process-local map.
// Suitable for a single instance only: a restart drops all pending
// registrations, and two instances would each hold their own ledger.
type MemoryOTPLedger struct {
	mu      sync.Mutex
	entries map[string]*domain.PendingRegistration
}

// NewMemoryOTPLedger creates a new in-process OTP ledger
func NewMemoryOTPLedger() *MemoryOTPLedger {
	return &MemoryOTPLedger{
		entries: make(map[string]*domain.PendingRegistration),
	}
}

// Put implements domain.OTPLedger, overwriting any prior entry for the email.
func (m *MemoryOTPLedger) Put(_ context.Context, email string, entry *domain.PendingRegistration, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *entry
	m.entries[email] = &copied
	return nil
}

// Get implements domain.OTPLedger. Expired entries are still returned;
// the caller checks ExpiresAt.
func (m *MemoryOTPLedger) Get(_ context.Context, email string) (*domain.PendingRegistration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[email]
	if !ok {
		return nil, domain.ErrOTPAbsent
	}
	copied := *entry
	return &copied, nil
}

// Delete implements domain.OTPLedger; idempotent.
func (m *MemoryOTPLedger) Delete(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, email)
	return nil
}
