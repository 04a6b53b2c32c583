package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/you/storefront/domain"
)

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	ledger      domain.OTPLedger
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	mailer      domain.Mailer
	config      AuthConfig
}

type AuthConfig struct {
	OTPTTL   time.Duration
	ResetTTL time.Duration
	TokenTTL time.Duration
	BaseURL  string
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	ledger domain.OTPLedger,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	mailer domain.Mailer,
	config AuthConfig,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		ledger:      ledger,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		mailer:      mailer,
		config:      config,
	}
}

// Register implements domain.AuthService. The account is not created here:
// the candidate profile is parked in the OTP ledger until the emailed code
// is confirmed. Only an existing user blocks registration; a pending entry
// for the same email is silently overwritten.
func (s *AuthServiceImpl) Register(ctx context.Context, reg *domain.PendingRegistration) error {
	existingUser, err := s.userRepo.FindByEmail(ctx, reg.Email)
	if err == nil && existingUser != nil {
		return domain.ErrEmailTaken
	}

	code, err := generateOTPCode()
	if err != nil {
		return fmt.Errorf("failed to generate OTP code: %w", err)
	}

	reg.Code = code
	reg.ExpiresAt = time.Now().Add(s.config.OTPTTL)

	if err := s.ledger.Put(ctx, reg.Email, reg, s.config.OTPTTL); err != nil {
		return fmt.Errorf("failed to store pending registration: %w", err)
	}

	subject := "Your verification code"
	body := otpMailBody(reg.Name, code, int(s.config.OTPTTL.Minutes()))
	if err := s.mailer.SendEmail(reg.Email, subject, body); err != nil {
		// The pending entry stays put; re-registering retries the send.
		return domain.ErrEmailDispatch
	}

	log.Printf("REGISTRATION_PENDING: email=%s timestamp=%s",
		reg.Email, time.Now().UTC().Format(time.RFC3339))
	return nil
}

// VerifyOTP implements domain.AuthService. Absent entry, wrong code and
// expired entry all return ErrOTPInvalid; nothing tells a caller which
// emails have a registration pending. A wrong code leaves the entry intact
// so a correct retry within the TTL still succeeds.
func (s *AuthServiceImpl) VerifyOTP(ctx context.Context, email, code string) (*domain.User, error) {
	entry, err := s.ledger.Get(ctx, email)
	if err != nil {
		return nil, domain.ErrOTPInvalid
	}

	if entry.Code != code || entry.Expired(time.Now()) {
		return nil, domain.ErrOTPInvalid
	}

	hashedPassword, err := s.passwordSvc.Hash(entry.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:         entry.Name,
		Email:        entry.Email,
		Contact:      entry.Contact,
		PasswordHash: hashedPassword,
		Role:         domain.RoleUser,
		Addresses:    entry.Addresses,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// The entry is logically consumed once the user exists; a failed
	// delete just leaves garbage behind the TTL.
	if err := s.ledger.Delete(ctx, email); err != nil {
		log.Printf("OTP_CLEANUP_FAILED: email=%s error=%v", email, err)
	}

	if err := s.mailer.SendEmail(user.Email, "Welcome!", welcomeMailBody(user.Name)); err != nil {
		log.Printf("WELCOME_MAIL_FAILED: email=%s error=%v", user.Email, err)
	}

	log.Printf("USER_REGISTERED: user_id=%d email=%s timestamp=%s",
		user.ID, user.Email, time.Now().UTC().Format(time.RFC3339))
	return user, nil
}

// Login implements domain.AuthService. Unknown email and wrong password
// return the identical error so nothing leaks about which field was wrong.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokenSvc.Generate(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &domain.AuthResult{
		User:      user,
		Token:     token,
		ExpiresIn: int64(s.config.TokenTTL.Seconds()),
	}, nil
}

// ForgotPassword implements domain.AuthService. Issuing a new grant
// overwrites any prior one; at most one is active per user.
func (s *AuthServiceImpl) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return domain.ErrUserNotFound
	}

	token, err := generateResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	user.ResetToken = token
	user.ResetExpiresAt = time.Now().Add(s.config.ResetTTL)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	link := fmt.Sprintf("%s/reset-password/%s", s.config.BaseURL, token)
	body := resetMailBody(user.Name, link, int(s.config.ResetTTL.Minutes()))
	if err := s.mailer.SendEmail(user.Email, "Reset your password", body); err != nil {
		return domain.ErrEmailDispatch
	}

	log.Printf("RESET_REQUESTED: user_id=%d email=%s timestamp=%s",
		user.ID, user.Email, time.Now().UTC().Format(time.RFC3339))
	return nil
}

// ResetPassword implements domain.AuthService. The grant is single-use:
// the token and its expiry are cleared along with the password change.
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.userRepo.FindByResetToken(ctx, token, time.Now())
	if err != nil {
		return domain.ErrResetTokenInvalid
	}

	hashedPassword, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = hashedPassword
	user.ResetToken = ""
	user.ResetExpiresAt = time.Time{}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	log.Printf("PASSWORD_RESET: user_id=%d email=%s timestamp=%s",
		user.ID, user.Email, time.Now().UTC().Format(time.RFC3339))
	return nil
}

// GetUserProfile implements domain.AuthService
func (s *AuthServiceImpl) GetUserProfile(ctx context.Context, userID uint) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// generateOTPCode draws a 6-digit code uniformly from 100000-999999.
func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// generateResetToken returns 32 random bytes, hex-encoded.
func generateResetToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

func otpMailBody(name, code string, minutes int) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
  <div style="max-width: 520px; margin: 0 auto; padding: 16px;">
    <h2>Confirm your email</h2>
    <p>Hi %s, your verification code is:</p>
    <div style="font-size: 28px; font-weight: bold; letter-spacing: 3px;">%s</div>
    <p>The code is valid for %d minutes.</p>
  </div>
</body>
</html>`, name, code, minutes)
}

func welcomeMailBody(name string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
  <div style="max-width: 520px; margin: 0 auto; padding: 16px;">
    <h2>Welcome, %s!</h2>
    <p>Your account has been created. You can now sign in and start shopping.</p>
  </div>
</body>
</html>`, name)
}

func resetMailBody(name, link string, minutes int) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
  <div style="max-width: 520px; margin: 0 auto; padding: 16px;">
    <h2>Password reset</h2>
    <p>Hi %s, click the link below to choose a new password:</p>
    <p><a href="%s">%s</a></p>
    <p>The link is valid for %d minutes. If you did not request this, ignore this email.</p>
  </div>
</body>
</html>`, name, link, link, minutes)
}
