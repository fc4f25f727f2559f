package mocks

import (
	"context"

	"github.com/you/identitysvc/domain"
)

// MockOtpRepository implements domain.OtpRepository interface for testing
type MockOtpRepository struct {
	GetOrCreateFunc func(ctx context.Context, email string) (*domain.OtpCode, error)
	FindByEmailFunc func(ctx context.Context, email string) (*domain.OtpCode, error)
	SaveFunc        func(ctx context.Context, otp *domain.OtpCode) error
	DeleteFunc      func(ctx context.Context, id uint) error
}

func NewMockOtpRepository() *MockOtpRepository {
	return &MockOtpRepository{}
}

func (m *MockOtpRepository) GetOrCreate(ctx context.Context, email string) (*domain.OtpCode, error) {
	if m.GetOrCreateFunc != nil {
		return m.GetOrCreateFunc(ctx, email)
	}
	return &domain.OtpCode{Email: email}, nil
}

func (m *MockOtpRepository) FindByEmail(ctx context.Context, email string) (*domain.OtpCode, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, domain.ErrOTPRecordNotFound
}

func (m *MockOtpRepository) Save(ctx context.Context, otp *domain.OtpCode) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, otp)
	}
	return nil
}

func (m *MockOtpRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.OtpRepository = (*MockOtpRepository)(nil)
