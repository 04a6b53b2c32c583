package services

import (
	"errors"
	"testing"

	"github.com/you/storefront/domain"
	"github.com/you/storefront/internal/mocks"
)

func TestPolicyServiceImpl_AddPolicy(t *testing.T) {
	tests := []struct {
		name          string
		setupMocks    func(*mocks.MockCasbinEnforcer)
		expectedError error
		expectSave    bool
	}{
		{
			name:       "added and persisted",
			setupMocks: func(e *mocks.MockCasbinEnforcer) {},
			expectSave: true,
		},
		{
			name: "duplicate rule",
			setupMocks: func(e *mocks.MockCasbinEnforcer) {
				e.AddPolicyFunc = func(params ...interface{}) (bool, error) {
					return false, nil
				}
			},
			expectedError: domain.ErrPolicyExists,
		},
		{
			name: "enforcer failure",
			setupMocks: func(e *mocks.MockCasbinEnforcer) {
				e.AddPolicyFunc = func(params ...interface{}) (bool, error) {
					return false, errors.New("adapter down")
				}
			},
			expectedError: errors.New("adapter down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enforcer := mocks.NewMockCasbinEnforcer()
			tt.setupMocks(enforcer)
			svc := NewPolicyServiceWithEnforcer(enforcer)

			err := svc.AddPolicy("role_support", "/admin/orders", "GET")

			if tt.expectedError != nil {
				if err == nil || err.Error() != tt.expectedError.Error() {
					t.Errorf("expected error %v, got %v", tt.expectedError, err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			if tt.expectSave && enforcer.SaveCalls != 1 {
				t.Errorf("expected one SavePolicy call, got %d", enforcer.SaveCalls)
			}
			if !tt.expectSave && enforcer.SaveCalls != 0 {
				t.Errorf("expected no SavePolicy call, got %d", enforcer.SaveCalls)
			}
		})
	}
}

func TestPolicyServiceImpl_RemovePolicy(t *testing.T) {
	t.Run("removed and persisted", func(t *testing.T) {
		enforcer := mocks.NewMockCasbinEnforcer()
		svc := NewPolicyServiceWithEnforcer(enforcer)

		if err := svc.RemovePolicy("role_support", "/admin/orders", "GET"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if enforcer.SaveCalls != 1 {
			t.Errorf("expected one SavePolicy call, got %d", enforcer.SaveCalls)
		}
	})

	t.Run("unknown rule", func(t *testing.T) {
		enforcer := mocks.NewMockCasbinEnforcer()
		enforcer.RemovePolicyFunc = func(params ...interface{}) (bool, error) {
			return false, nil
		}
		svc := NewPolicyServiceWithEnforcer(enforcer)

		if err := svc.RemovePolicy("role_support", "/admin/orders", "GET"); err != domain.ErrPolicyNotFound {
			t.Errorf("expected ErrPolicyNotFound, got %v", err)
		}
		if enforcer.SaveCalls != 0 {
			t.Errorf("expected no SavePolicy call, got %d", enforcer.SaveCalls)
		}
	})
}

func TestPolicyServiceImpl_ListPolicies(t *testing.T) {
	enforcer := mocks.NewMockCasbinEnforcer()
	enforcer.GetPolicyFunc = func() ([][]string, error) {
		return [][]string{{"role_admin", "/admin/*", "(GET|POST|PUT|PATCH|DELETE)"}}, nil
	}
	svc := NewPolicyServiceWithEnforcer(enforcer)

	policies, err := svc.ListPolicies()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(policies) != 1 || policies[0][0] != "role_admin" {
		t.Errorf("unexpected policies: %v", policies)
	}

	enforcer.GetPolicyFunc = func() ([][]string, error) {
		return nil, errors.New("adapter down")
	}
	if _, err := svc.ListPolicies(); err == nil {
		t.Error("expected load failure to surface")
	}
}

func TestPolicyServiceImpl_SeedDefaults(t *testing.T) {
	t.Run("empty store gets the admin grant", func(t *testing.T) {
		enforcer := mocks.NewMockCasbinEnforcer()
		var added [][]interface{}
		enforcer.AddPolicyFunc = func(params ...interface{}) (bool, error) {
			added = append(added, params)
			return true, nil
		}
		svc := NewPolicyServiceWithEnforcer(enforcer)

		if err := svc.SeedDefaults(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(added) != 1 {
			t.Fatalf("expected one policy added, got %d", len(added))
		}
		if added[0][0] != "role_admin" || added[0][1] != "/admin/*" {
			t.Errorf("unexpected seeded policy: %v", added[0])
		}
	})

	t.Run("populated store is untouched", func(t *testing.T) {
		enforcer := mocks.NewMockCasbinEnforcer()
		enforcer.GetPolicyFunc = func() ([][]string, error) {
			return [][]string{{"role_admin", "/admin/*", "GET"}}, nil
		}
		enforcer.AddPolicyFunc = func(params ...interface{}) (bool, error) {
			t.Error("must not add policies to a populated store")
			return false, nil
		}
		svc := NewPolicyServiceWithEnforcer(enforcer)

		if err := svc.SeedDefaults(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("load failure is not mistaken for an empty store", func(t *testing.T) {
		enforcer := mocks.NewMockCasbinEnforcer()
		enforcer.GetPolicyFunc = func() ([][]string, error) {
			return nil, errors.New("adapter down")
		}
		enforcer.AddPolicyFunc = func(params ...interface{}) (bool, error) {
			t.Error("must not seed when the policy load failed")
			return false, nil
		}
		svc := NewPolicyServiceWithEnforcer(enforcer)

		if err := svc.SeedDefaults(); err == nil {
			t.Error("expected load failure to surface")
		}
	})
}

func TestPolicyServiceImpl_CheckPermission(t *testing.T) {
	enforcer := mocks.NewMockCasbinEnforcer()
	enforcer.EnforceFunc = func(rvals ...interface{}) (bool, error) {
		return rvals[0] == "role_admin", nil
	}
	svc := NewPolicyServiceWithEnforcer(enforcer)

	allowed, err := svc.CheckPermission("role_admin", "/admin/orders", "GET")
	if err != nil || !allowed {
		t.Errorf("expected admin allowed, got %v %v", allowed, err)
	}

	allowed, err = svc.CheckPermission("role_user", "/admin/orders", "GET")
	if err != nil || allowed {
		t.Errorf("expected user denied, got %v %v", allowed, err)
	}
}
