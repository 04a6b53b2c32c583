package mocks

// MockPolicyService implements domain.PolicyService for testing
type MockPolicyService struct {
	AddPolicyFunc       func(role, resource, action string) error
	RemovePolicyFunc    func(role, resource, action string) error
	CheckPermissionFunc func(role, resource, action string) (bool, error)
	ListPoliciesFunc    func() ([][]string, error)
	SeedDefaultsFunc    func() error
}

// NewMockPolicyService creates a new MockPolicyService with default behaviors
func NewMockPolicyService() *MockPolicyService {
	return &MockPolicyService{}
}

// AddPolicy installs a policy rule
func (m *MockPolicyService) AddPolicy(role, resource, action string) error {
	if m.AddPolicyFunc != nil {
		return m.AddPolicyFunc(role, resource, action)
	}
	return nil
}

// RemovePolicy deletes a policy rule
func (m *MockPolicyService) RemovePolicy(role, resource, action string) error {
	if m.RemovePolicyFunc != nil {
		return m.RemovePolicyFunc(role, resource, action)
	}
	return nil
}

// CheckPermission evaluates a policy rule
func (m *MockPolicyService) CheckPermission(role, resource, action string) (bool, error) {
	if m.CheckPermissionFunc != nil {
		return m.CheckPermissionFunc(role, resource, action)
	}
	return false, nil
}

// ListPolicies returns every policy rule
func (m *MockPolicyService) ListPolicies() ([][]string, error) {
	if m.ListPoliciesFunc != nil {
		return m.ListPoliciesFunc()
	}
	return nil, nil
}

// SeedDefaults installs the default policies
func (m *MockPolicyService) SeedDefaults() error {
	if m.SeedDefaultsFunc != nil {
		return m.SeedDefaultsFunc()
	}
	return nil
}
