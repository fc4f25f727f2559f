package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/identitysvc/domain"
	"github.com/you/identitysvc/internal/mocks"
)

type billingDeps struct {
	userRepo     *mocks.MockUserRepository
	productRepo  *mocks.MockProductRepository
	purchaseRepo *mocks.MockPurchaseRepository
	processor    *mocks.MockPaymentProcessor
	mailer       *mocks.MockMailer
}

func newBillingServiceForTest() (domain.BillingService, *billingDeps) {
	deps := &billingDeps{
		userRepo:     mocks.NewMockUserRepository(),
		productRepo:  mocks.NewMockProductRepository(),
		purchaseRepo: mocks.NewMockPurchaseRepository(),
		processor:    mocks.NewMockPaymentProcessor(),
		mailer:       mocks.NewMockMailer(),
	}
	svc := NewBillingService(deps.userRepo, deps.productRepo, deps.purchaseRepo, deps.processor, deps.mailer)
	return svc, deps
}

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()
	user := &domain.User{ID: 1, Email: "a@b.com", Verified: true}

	t.Run("unknown product rejected", func(t *testing.T) {
		svc, _ := newBillingServiceForTest()
		_, err := svc.CreateOrder(ctx, user, "missing", 10)
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})

	t.Run("provider failure mapped", func(t *testing.T) {
		svc, deps := newBillingServiceForTest()
		deps.productRepo.FindByExternalIDFunc = func(ctx context.Context, externalID string) (*domain.Product, error) {
			return &domain.Product{ID: 1, ExternalID: externalID}, nil
		}
		deps.processor.CreateOrderFunc = func(ctx context.Context, product *domain.Product, value float64) (map[string]any, error) {
			return nil, errors.New("gateway timeout")
		}

		_, err := svc.CreateOrder(ctx, user, "prod-1", 10)
		assert.ErrorIs(t, err, domain.ErrPaymentProvider)
	})

	t.Run("provider response passed through", func(t *testing.T) {
		svc, deps := newBillingServiceForTest()
		deps.productRepo.FindByExternalIDFunc = func(ctx context.Context, externalID string) (*domain.Product, error) {
			return &domain.Product{ID: 1, ExternalID: externalID}, nil
		}
		deps.processor.CreateOrderFunc = func(ctx context.Context, product *domain.Product, value float64) (map[string]any, error) {
			return map[string]any{"id": "ORDER-123", "status": "CREATED"}, nil
		}

		order, err := svc.CreateOrder(ctx, user, "prod-1", 10)
		require.NoError(t, err)
		assert.Equal(t, "ORDER-123", order["id"])
	})
}

func TestCaptureOrder(t *testing.T) {
	ctx := context.Background()
	user := &domain.User{ID: 1, Email: "a@b.com", Verified: true}

	t.Run("completed token purchase credits floor of amount", func(t *testing.T) {
		svc, deps := newBillingServiceForTest()
		deps.processor.CaptureOrderFunc = func(ctx context.Context, orderID string) (*domain.PaymentCapture, error) {
			return &domain.PaymentCapture{
				OrderID:     orderID,
				Status:      domain.CaptureCompleted,
				ReferenceID: domain.ReferenceTokenPurchase,
				ProductID:   "prod-1",
				Amount:      "10.0",
			}, nil
		}
		deps.productRepo.FindByExternalIDFunc = func(ctx context.Context, externalID string) (*domain.Product, error) {
			return &domain.Product{ID: 2, ExternalID: externalID}, nil
		}
		var credited int
		deps.userRepo.AddTokensFunc = func(ctx context.Context, userID uint, tokens int) error {
			credited = tokens
			return nil
		}

		require.NoError(t, svc.CaptureOrder(ctx, user, "ORDER-123"))
		assert.Equal(t, 10, credited)

		// Exactly one purchase notification.
		var notifications int
		for _, m := range deps.mailer.Sent {
			if m.Template == "buy_custom" {
				notifications++
				assert.Equal(t, "10", m.Context["tokens"])
			}
		}
		assert.Equal(t, 1, notifications)

		// Purchase recorded against the catalogue product.
		require.Len(t, deps.purchaseRepo.Created, 1)
		assert.Equal(t, uint(2), deps.purchaseRepo.Created[0].ProductID)
		assert.Equal(t, "10.0", deps.purchaseRepo.Created[0].Price)
	})

	t.Run("fractional amounts truncate", func(t *testing.T) {
		svc, deps := newBillingServiceForTest()
		deps.processor.CaptureOrderFunc = func(ctx context.Context, orderID string) (*domain.PaymentCapture, error) {
			return &domain.PaymentCapture{
				Status:      domain.CaptureCompleted,
				ReferenceID: domain.ReferenceTokenPurchase,
				Amount:      "9.99",
			}, nil
		}
		var credited int
		deps.userRepo.AddTokensFunc = func(ctx context.Context, userID uint, tokens int) error {
			credited = tokens
			return nil
		}

		require.NoError(t, svc.CaptureOrder(ctx, user, "ORDER-123"))
		assert.Equal(t, 9, credited)
	})

	t.Run("non-completed capture settles nothing", func(t *testing.T) {
		svc, deps := newBillingServiceForTest()
		deps.processor.CaptureOrderFunc = func(ctx context.Context, orderID string) (*domain.PaymentCapture, error) {
			return &domain.PaymentCapture{Status: "PENDING", ReferenceID: domain.ReferenceTokenPurchase, Amount: "10.0"}, nil
		}
		deps.userRepo.AddTokensFunc = func(ctx context.Context, userID uint, tokens int) error {
			t.Fatal("no tokens may be credited for a pending capture")
			return nil
		}

		require.NoError(t, svc.CaptureOrder(ctx, user, "ORDER-123"))
		assert.Empty(t, deps.mailer.Sent)
	})

	t.Run("non token-purchase reference ignored", func(t *testing.T) {
		svc, deps := newBillingServiceForTest()
		deps.processor.CaptureOrderFunc = func(ctx context.Context, orderID string) (*domain.PaymentCapture, error) {
			return &domain.PaymentCapture{Status: domain.CaptureCompleted, ReferenceID: "OTHER", Amount: "10.0"}, nil
		}
		deps.userRepo.AddTokensFunc = func(ctx context.Context, userID uint, tokens int) error {
			t.Fatal("only CUSTOM references settle tokens")
			return nil
		}

		require.NoError(t, svc.CaptureOrder(ctx, user, "ORDER-123"))
	})

	t.Run("provider failure mapped", func(t *testing.T) {
		svc, deps := newBillingServiceForTest()
		deps.processor.CaptureOrderFunc = func(ctx context.Context, orderID string) (*domain.PaymentCapture, error) {
			return nil, errors.New("gateway timeout")
		}

		assert.ErrorIs(t, svc.CaptureOrder(ctx, user, "ORDER-123"), domain.ErrPaymentProvider)
	})

	t.Run("unknown product skips the record but keeps the credit", func(t *testing.T) {
		svc, deps := newBillingServiceForTest()
		deps.processor.CaptureOrderFunc = func(ctx context.Context, orderID string) (*domain.PaymentCapture, error) {
			return &domain.PaymentCapture{
				Status:      domain.CaptureCompleted,
				ReferenceID: domain.ReferenceTokenPurchase,
				ProductID:   "gone",
				Amount:      "5.0",
			}, nil
		}
		var credited int
		deps.userRepo.AddTokensFunc = func(ctx context.Context, userID uint, tokens int) error {
			credited = tokens
			return nil
		}

		require.NoError(t, svc.CaptureOrder(ctx, user, "ORDER-123"))
		assert.Equal(t, 5, credited)
		assert.Empty(t, deps.purchaseRepo.Created)
	})
}
