package mocks

import (
	"context"

	"github.com/you/identitysvc/domain"
)

// MockUserRepository implements domain.UserRepository interface for testing
type MockUserRepository struct {
	CreateFunc         func(ctx context.Context, user *domain.User) error
	FindByEmailFunc    func(ctx context.Context, email string) (*domain.User, error)
	FindByNumFunc      func(ctx context.Context, num string) (*domain.User, error)
	FindByIDFunc       func(ctx context.Context, id uint) (*domain.User, error)
	ExistsByEmailFunc  func(ctx context.Context, email string) (bool, error)
	UpdateFunc         func(ctx context.Context, user *domain.User) error
	SetVerifiedNumFunc func(ctx context.Context, userID uint, num string) error
	UpdatePasswordFunc func(ctx context.Context, userID uint, passwordHash string) error
	AddTokensFunc      func(ctx context.Context, userID uint, tokens int) error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) FindByNum(ctx context.Context, num string) (*domain.User, error) {
	if m.FindByNumFunc != nil {
		return m.FindByNumFunc(ctx, num)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) SetVerifiedNum(ctx context.Context, userID uint, num string) error {
	if m.SetVerifiedNumFunc != nil {
		return m.SetVerifiedNumFunc(ctx, userID, num)
	}
	return nil
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, userID uint, passwordHash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, userID, passwordHash)
	}
	return nil
}

func (m *MockUserRepository) AddTokens(ctx context.Context, userID uint, tokens int) error {
	if m.AddTokensFunc != nil {
		return m.AddTokensFunc(ctx, userID, tokens)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.UserRepository = (*MockUserRepository)(nil)
