package mocks

import (
	"context"

	"github.com/you/identitysvc/domain"
)

// MockOtpService implements domain.OtpService interface for testing
type MockOtpService struct {
	GetOrCreateFunc              func(ctx context.Context, email string) (*domain.OtpCode, error)
	FindByEmailFunc              func(ctx context.Context, email string) (*domain.OtpCode, error)
	GenerateAndSendFunc          func(ctx context.Context, otp *domain.OtpCode, purpose domain.OtpPurpose) (bool, error)
	SetPurposeFunc               func(ctx context.Context, otp *domain.OtpCode, purpose domain.OtpPurpose) error
	ValidateFunc                 func(ctx context.Context, otp *domain.OtpCode, code string, purpose domain.OtpPurpose, consume bool) error
	ValidateGoogleCredentialFunc func(ctx context.Context, otp *domain.OtpCode, credential string, purpose domain.OtpPurpose) error
}

func NewMockOtpService() *MockOtpService {
	return &MockOtpService{}
}

func (m *MockOtpService) GetOrCreate(ctx context.Context, email string) (*domain.OtpCode, error) {
	if m.GetOrCreateFunc != nil {
		return m.GetOrCreateFunc(ctx, email)
	}
	return &domain.OtpCode{Email: email}, nil
}

func (m *MockOtpService) FindByEmail(ctx context.Context, email string) (*domain.OtpCode, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, domain.ErrOTPRecordNotFound
}

func (m *MockOtpService) GenerateAndSend(ctx context.Context, otp *domain.OtpCode, purpose domain.OtpPurpose) (bool, error) {
	if m.GenerateAndSendFunc != nil {
		return m.GenerateAndSendFunc(ctx, otp, purpose)
	}
	return true, nil
}

func (m *MockOtpService) SetPurpose(ctx context.Context, otp *domain.OtpCode, purpose domain.OtpPurpose) error {
	if m.SetPurposeFunc != nil {
		return m.SetPurposeFunc(ctx, otp, purpose)
	}
	otp.Purpose = purpose
	return nil
}

func (m *MockOtpService) Validate(ctx context.Context, otp *domain.OtpCode, code string, purpose domain.OtpPurpose, consume bool) error {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(ctx, otp, code, purpose, consume)
	}
	return nil
}

func (m *MockOtpService) ValidateGoogleCredential(ctx context.Context, otp *domain.OtpCode, credential string, purpose domain.OtpPurpose) error {
	if m.ValidateGoogleCredentialFunc != nil {
		return m.ValidateGoogleCredentialFunc(ctx, otp, credential, purpose)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.OtpService = (*MockOtpService)(nil)
