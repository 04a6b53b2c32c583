package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/you/storefront/domain"
)

// RedisOTPLedger implements domain.OTPLedger using Redis. Entries are
// stored as JSON under a prefixed key with the TTL applied by Redis, so
// they survive across instances of the service.
type RedisOTPLedger struct {
	client *redis.Client
	prefix string
}

// NewRedisOTPLedger creates a new Redis-backed OTP ledger
func NewRedisOTPLedger(client *redis.Client) domain.OTPLedger {
	return &RedisOTPLedger{
		client: client,
		prefix: "otp:pending:",
	}
}

// Put implements domain.OTPLedger. A plain SET overwrites any prior
// pending entry for the same email.
func (r *RedisOTPLedger) Put(ctx context.Context, email string, entry *domain.PendingRegistration, ttl time.Duration) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal pending registration: %w", err)
	}

	return r.client.Set(ctx, r.prefix+email, data, ttl).Err()
}

// Get implements domain.OTPLedger. It does not check expiry; the caller
// decides what an expired entry means.
func (r *RedisOTPLedger) Get(ctx context.Context, email string) (*domain.PendingRegistration, error) {
	data, err := r.client.Get(ctx, r.prefix+email).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrOTPAbsent
		}
		return nil, err
	}

	var entry domain.PendingRegistration
	if err := json.Unmarshal([]byte(data), &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pending registration: %w", err)
	}

	return &entry, nil
}

// Delete implements domain.OTPLedger; deleting an absent key is not an error.
func (r *RedisOTPLedger) Delete(ctx context.Context, email string) error {
	return r.client.Del(ctx, r.prefix+email).Err()
}
