package services

import (
	"log"

	"github.com/casbin/casbin/v2"

	"github.com/you/storefront/domain"
)

// Default grant for the admin surface, installed on first boot.
var defaultAdminPolicy = []string{"role_admin", "/admin/*", "(GET|POST|PUT|PATCH|DELETE)"}

// CasbinEnforcerWrapper adapts the real Casbin enforcer to domain.CasbinEnforcer
type CasbinEnforcerWrapper struct {
	enforcer *casbin.Enforcer
}

// NewCasbinEnforcerWrapper creates a wrapper for the real Casbin enforcer
func NewCasbinEnforcerWrapper(enforcer *casbin.Enforcer) domain.CasbinEnforcer {
	return &CasbinEnforcerWrapper{enforcer: enforcer}
}

func (w *CasbinEnforcerWrapper) AddPolicy(params ...interface{}) (bool, error) {
	return w.enforcer.AddPolicy(params...)
}

func (w *CasbinEnforcerWrapper) RemovePolicy(params ...interface{}) (bool, error) {
	return w.enforcer.RemovePolicy(params...)
}

func (w *CasbinEnforcerWrapper) Enforce(rvals ...interface{}) (bool, error) {
	return w.enforcer.Enforce(rvals...)
}

func (w *CasbinEnforcerWrapper) GetPolicy() ([][]string, error) {
	return w.enforcer.GetPolicy()
}

func (w *CasbinEnforcerWrapper) SavePolicy() error {
	return w.enforcer.SavePolicy()
}

// PolicyServiceImpl implements domain.PolicyService using Casbin
type PolicyServiceImpl struct {
	enforcer domain.CasbinEnforcer
}

// NewPolicyService creates a new policy service
func NewPolicyService(enforcer *casbin.Enforcer) domain.PolicyService {
	return &PolicyServiceImpl{
		enforcer: NewCasbinEnforcerWrapper(enforcer),
	}
}

// NewPolicyServiceWithEnforcer creates a policy service from the interface
func NewPolicyServiceWithEnforcer(enforcer domain.CasbinEnforcer) domain.PolicyService {
	return &PolicyServiceImpl{
		enforcer: enforcer,
	}
}

// AddPolicy implements domain.PolicyService
func (p *PolicyServiceImpl) AddPolicy(role, resource, action string) error {
	added, err := p.enforcer.AddPolicy(role, resource, action)
	if err != nil {
		return err
	}
	if !added {
		return domain.ErrPolicyExists
	}
	return p.enforcer.SavePolicy()
}

// RemovePolicy implements domain.PolicyService
func (p *PolicyServiceImpl) RemovePolicy(role, resource, action string) error {
	removed, err := p.enforcer.RemovePolicy(role, resource, action)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrPolicyNotFound
	}
	return p.enforcer.SavePolicy()
}

// CheckPermission implements domain.PolicyService
func (p *PolicyServiceImpl) CheckPermission(role, resource, action string) (bool, error) {
	return p.enforcer.Enforce(role, resource, action)
}

// ListPolicies implements domain.PolicyService
func (p *PolicyServiceImpl) ListPolicies() ([][]string, error) {
	return p.enforcer.GetPolicy()
}

// SeedDefaults implements domain.PolicyService. A failed policy load is an
// error, not an empty store.
func (p *PolicyServiceImpl) SeedDefaults() error {
	policies, err := p.enforcer.GetPolicy()
	if err != nil {
		return err
	}
	if len(policies) > 0 {
		return nil
	}

	if _, err := p.enforcer.AddPolicy(defaultAdminPolicy[0], defaultAdminPolicy[1], defaultAdminPolicy[2]); err != nil {
		return err
	}
	if err := p.enforcer.SavePolicy(); err != nil {
		return err
	}

	log.Println("casbin: seeded default policies")
	return nil
}
