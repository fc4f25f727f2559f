package mocks

import "github.com/you/identitysvc/domain"

// MockPasswordService implements domain.PasswordService interface for testing
type MockPasswordService struct {
	HashFunc           func(password string) (string, error)
	VerifyFunc         func(hashedPassword, password string) bool
	ValidatePolicyFunc func(password string) error
}

func NewMockPasswordService() *MockPasswordService {
	return &MockPasswordService{}
}

func (m *MockPasswordService) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *MockPasswordService) Verify(hashedPassword, password string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(hashedPassword, password)
	}
	return hashedPassword == "hashed_"+password
}

func (m *MockPasswordService) ValidatePolicy(password string) error {
	if m.ValidatePolicyFunc != nil {
		return m.ValidatePolicyFunc(password)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.PasswordService = (*MockPasswordService)(nil)
