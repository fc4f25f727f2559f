package mocks

import (
	"context"

	"github.com/you/identitysvc/domain"
)

// MockProductRepository implements domain.ProductRepository interface for testing
type MockProductRepository struct {
	CreateFunc           func(ctx context.Context, product *domain.Product) error
	FindByExternalIDFunc func(ctx context.Context, externalID string) (*domain.Product, error)
	ListFunc             func(ctx context.Context) ([]*domain.Product, error)
}

func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{}
}

func (m *MockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, product)
	}
	return nil
}

func (m *MockProductRepository) FindByExternalID(ctx context.Context, externalID string) (*domain.Product, error) {
	if m.FindByExternalIDFunc != nil {
		return m.FindByExternalIDFunc(ctx, externalID)
	}
	return nil, domain.ErrProductNotFound
}

func (m *MockProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

// MockPurchaseRepository implements domain.PurchaseRepository interface for testing
type MockPurchaseRepository struct {
	CreateFunc     func(ctx context.Context, purchase *domain.Purchase) error
	ListByUserFunc func(ctx context.Context, userID uint) ([]*domain.Purchase, error)

	// Created records every Create call for assertion convenience.
	Created []*domain.Purchase
}

func NewMockPurchaseRepository() *MockPurchaseRepository {
	return &MockPurchaseRepository{}
}

func (m *MockPurchaseRepository) Create(ctx context.Context, purchase *domain.Purchase) error {
	m.Created = append(m.Created, purchase)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, purchase)
	}
	return nil
}

func (m *MockPurchaseRepository) ListByUser(ctx context.Context, userID uint) ([]*domain.Purchase, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

// MockPaymentProcessor implements domain.PaymentProcessor interface for testing
type MockPaymentProcessor struct {
	CreateOrderFunc  func(ctx context.Context, product *domain.Product, value float64) (map[string]any, error)
	CaptureOrderFunc func(ctx context.Context, orderID string) (*domain.PaymentCapture, error)
}

func NewMockPaymentProcessor() *MockPaymentProcessor {
	return &MockPaymentProcessor{}
}

func (m *MockPaymentProcessor) CreateOrder(ctx context.Context, product *domain.Product, value float64) (map[string]any, error) {
	if m.CreateOrderFunc != nil {
		return m.CreateOrderFunc(ctx, product, value)
	}
	return map[string]any{"id": "mock_order"}, nil
}

func (m *MockPaymentProcessor) CaptureOrder(ctx context.Context, orderID string) (*domain.PaymentCapture, error) {
	if m.CaptureOrderFunc != nil {
		return m.CaptureOrderFunc(ctx, orderID)
	}
	return &domain.PaymentCapture{OrderID: orderID, Status: domain.CaptureCompleted}, nil
}

// MockPreferencesRepository implements domain.PreferencesRepository interface for testing
type MockPreferencesRepository struct {
	CreateFunc       func(ctx context.Context, prefs *domain.UserPreferences) error
	FindByUserIDFunc func(ctx context.Context, userID uint) (*domain.UserPreferences, error)
}

func NewMockPreferencesRepository() *MockPreferencesRepository {
	return &MockPreferencesRepository{}
}

func (m *MockPreferencesRepository) Create(ctx context.Context, prefs *domain.UserPreferences) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, prefs)
	}
	return nil
}

func (m *MockPreferencesRepository) FindByUserID(ctx context.Context, userID uint) (*domain.UserPreferences, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

// Compile-time interface compliance verification
var (
	_ domain.ProductRepository     = (*MockProductRepository)(nil)
	_ domain.PurchaseRepository    = (*MockPurchaseRepository)(nil)
	_ domain.PaymentProcessor      = (*MockPaymentProcessor)(nil)
	_ domain.PreferencesRepository = (*MockPreferencesRepository)(nil)
)
