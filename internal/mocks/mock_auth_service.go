package mocks

import (
	"context"

	"github.com/you/identitysvc/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	ContinueWithEmailFunc     func(ctx context.Context, email string) (bool, error)
	CheckSignupOTPFunc        func(ctx context.Context, email, code string) error
	RegisterFunc              func(ctx context.Context, input domain.RegisterInput) (*domain.TokenPair, error)
	ContinueWithGoogleFunc    func(ctx context.Context, credential, accessToken string) (*domain.GoogleContinueResult, error)
	RequestPasswordResetFunc  func(ctx context.Context, email string) error
	CheckPasswordResetOTPFunc func(ctx context.Context, email, code string) error
	ChangePasswordFunc        func(ctx context.Context, email, code, newPassword string) error
}

func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) ContinueWithEmail(ctx context.Context, email string) (bool, error) {
	if m.ContinueWithEmailFunc != nil {
		return m.ContinueWithEmailFunc(ctx, email)
	}
	return false, nil
}

func (m *MockAuthService) CheckSignupOTP(ctx context.Context, email, code string) error {
	if m.CheckSignupOTPFunc != nil {
		return m.CheckSignupOTPFunc(ctx, email, code)
	}
	return nil
}

func (m *MockAuthService) Register(ctx context.Context, input domain.RegisterInput) (*domain.TokenPair, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, input)
	}
	return &domain.TokenPair{Access: "mock_access", Refresh: "mock_refresh"}, nil
}

func (m *MockAuthService) ContinueWithGoogle(ctx context.Context, credential, accessToken string) (*domain.GoogleContinueResult, error) {
	if m.ContinueWithGoogleFunc != nil {
		return m.ContinueWithGoogleFunc(ctx, credential, accessToken)
	}
	return nil, domain.ErrGoogleAuthFailed
}

func (m *MockAuthService) RequestPasswordReset(ctx context.Context, email string) error {
	if m.RequestPasswordResetFunc != nil {
		return m.RequestPasswordResetFunc(ctx, email)
	}
	return nil
}

func (m *MockAuthService) CheckPasswordResetOTP(ctx context.Context, email, code string) error {
	if m.CheckPasswordResetOTPFunc != nil {
		return m.CheckPasswordResetOTPFunc(ctx, email, code)
	}
	return nil
}

func (m *MockAuthService) ChangePassword(ctx context.Context, email, code, newPassword string) error {
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(ctx, email, code, newPassword)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
