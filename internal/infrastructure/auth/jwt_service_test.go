package auth

import (
	"testing"
	"time"

	"github.com/you/storefront/domain"
)

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := NewJWTService("test-secret", "storefront", 7*24*time.Hour)

	token, err := svc.Generate(42, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	if claims.UserID != 42 {
		t.Errorf("expected user_id 42, got %d", claims.UserID)
	}
	if claims.Role != domain.RoleAdmin {
		t.Errorf("expected role admin, got %s", claims.Role)
	}

	expiry := time.Unix(claims.ExpiresAt, 0)
	remaining := time.Until(expiry)
	if remaining < 7*24*time.Hour-time.Minute || remaining > 7*24*time.Hour {
		t.Errorf("expected ~7 days until expiry, got %v", remaining)
	}
}

func TestJWTService_Validate_Expired(t *testing.T) {
	svc := NewJWTService("test-secret", "storefront", -time.Minute)

	token, err := svc.Generate(1, domain.RoleUser)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := svc.Validate(token); err != domain.ErrTokenExpired {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestJWTService_Validate_WrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", "storefront", time.Hour)
	verifier := NewJWTService("secret-b", "storefront", time.Hour)

	token, err := issuer.Generate(1, domain.RoleUser)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := verifier.Validate(token); err != domain.ErrTokenInvalid {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestJWTService_Validate_Malformed(t *testing.T) {
	svc := NewJWTService("test-secret", "storefront", time.Hour)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := svc.Validate(token); err != domain.ErrTokenMalformed {
			t.Errorf("expected ErrTokenMalformed for %q, got %v", token, err)
		}
	}
}
