package domain

import "errors"

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
)

// OTP errors. Absent, mismatched and expired entries all collapse to
// ErrOTPInvalid so callers cannot probe which emails have a pending
// registration.
var (
	ErrOTPInvalid = errors.New("invalid or expired otp")
	ErrOTPAbsent  = errors.New("no pending registration")
)

// Password reset errors
var (
	ErrResetTokenInvalid = errors.New("invalid or expired reset token")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Authorization errors
var (
	ErrForbidden        = errors.New("access denied")
	ErrOrderNotFound    = errors.New("order not found")
	ErrResourceNotFound = errors.New("resource not found")
	ErrPolicyExists     = errors.New("policy already exists")
	ErrPolicyNotFound   = errors.New("policy not found")
)

// Dependency errors
var (
	ErrEmailDispatch = errors.New("failed to dispatch email")
)
