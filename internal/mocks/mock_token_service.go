package mocks

import "github.com/you/identitysvc/domain"

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	GeneratePairFunc         func(user *domain.User) (*domain.TokenPair, error)
	ValidateAccessTokenFunc  func(token string) (*domain.TokenClaims, error)
	ValidateRefreshTokenFunc func(token string) (*domain.TokenClaims, error)
}

func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

func (m *MockTokenService) GeneratePair(user *domain.User) (*domain.TokenPair, error) {
	if m.GeneratePairFunc != nil {
		return m.GeneratePairFunc(user)
	}
	return &domain.TokenPair{Access: "mock_access", Refresh: "mock_refresh"}, nil
}

func (m *MockTokenService) ValidateAccessToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateAccessTokenFunc != nil {
		return m.ValidateAccessTokenFunc(token)
	}
	return nil, domain.ErrTokenInvalid
}

func (m *MockTokenService) ValidateRefreshToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateRefreshTokenFunc != nil {
		return m.ValidateRefreshTokenFunc(token)
	}
	return nil, domain.ErrTokenInvalid
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
