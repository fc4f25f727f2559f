package mocks

import (
	"context"

	"github.com/you/identitysvc/domain"
)

// MockPhoneVerificationService implements domain.PhoneVerificationService for testing
type MockPhoneVerificationService struct {
	SendCodeFunc  func(ctx context.Context, userID uint, num string) error
	CheckCodeFunc func(ctx context.Context, userID uint, num, code string) error
}

func NewMockPhoneVerificationService() *MockPhoneVerificationService {
	return &MockPhoneVerificationService{}
}

func (m *MockPhoneVerificationService) SendCode(ctx context.Context, userID uint, num string) error {
	if m.SendCodeFunc != nil {
		return m.SendCodeFunc(ctx, userID, num)
	}
	return nil
}

func (m *MockPhoneVerificationService) CheckCode(ctx context.Context, userID uint, num, code string) error {
	if m.CheckCodeFunc != nil {
		return m.CheckCodeFunc(ctx, userID, num, code)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.PhoneVerificationService = (*MockPhoneVerificationService)(nil)
