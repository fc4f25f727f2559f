package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/you/identitysvc/domain"
)

// BillingServiceImpl implements domain.BillingService
type BillingServiceImpl struct {
	userRepo     domain.UserRepository
	productRepo  domain.ProductRepository
	purchaseRepo domain.PurchaseRepository
	processor    domain.PaymentProcessor
	mailer       domain.Mailer
}

// NewBillingService creates a new billing service
func NewBillingService(
	userRepo domain.UserRepository,
	productRepo domain.ProductRepository,
	purchaseRepo domain.PurchaseRepository,
	processor domain.PaymentProcessor,
	mailer domain.Mailer,
) domain.BillingService {
	return &BillingServiceImpl{
		userRepo:     userRepo,
		productRepo:  productRepo,
		purchaseRepo: purchaseRepo,
		processor:    processor,
		mailer:       mailer,
	}
}

// CreateOrder implements domain.BillingService
func (s *BillingServiceImpl) CreateOrder(ctx context.Context, user *domain.User, productExternalID string, value float64) (map[string]any, error) {
	product, err := s.productRepo.FindByExternalID(ctx, productExternalID)
	if err != nil {
		return nil, err
	}

	order, err := s.processor.CreateOrder(ctx, product, value)
	if err != nil {
		log.Printf("ORDER_CREATE_FAILED: user_id=%d product=%s error=%v", user.ID, productExternalID, err)
		return nil, domain.ErrPaymentProvider
	}
	return order, nil
}

// CaptureOrder implements domain.BillingService. Settlement trusts the
// provider-validated amount and performs no idempotency check: capturing
// the same order twice settles twice.
func (s *BillingServiceImpl) CaptureOrder(ctx context.Context, user *domain.User, orderID string) error {
	capture, err := s.processor.CaptureOrder(ctx, orderID)
	if err != nil {
		log.Printf("ORDER_CAPTURE_FAILED: user_id=%d order=%s error=%v", user.ID, orderID, err)
		return domain.ErrPaymentProvider
	}

	if capture.Status != domain.CaptureCompleted {
		return nil
	}
	return s.settle(ctx, user, capture)
}

// settle applies a completed capture: token purchases credit the account
// with floor(amount) tokens, notify once, and record the purchase.
func (s *BillingServiceImpl) settle(ctx context.Context, user *domain.User, capture *domain.PaymentCapture) error {
	if capture.ReferenceID != domain.ReferenceTokenPurchase {
		return nil
	}

	amount, err := strconv.ParseFloat(capture.Amount, 64)
	if err != nil {
		return fmt.Errorf("invalid capture amount %q: %w", capture.Amount, err)
	}
	tokens := int(amount)

	if err := s.userRepo.AddTokens(ctx, user.ID, tokens); err != nil {
		return fmt.Errorf("failed to add tokens: %w", err)
	}

	if err := s.mailer.Send("buy_custom", user.Email, map[string]string{
		"email":  user.Email,
		"tokens": strconv.Itoa(tokens),
	}); err != nil {
		log.Printf("PURCHASE_EMAIL_FAILED: user_id=%d error=%v", user.ID, err)
	}

	product, err := s.productRepo.FindByExternalID(ctx, capture.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			log.Printf("PURCHASE_RECORD_SKIPPED: unknown product %s", capture.ProductID)
			return nil
		}
		return err
	}

	purchase := &domain.Purchase{
		UserID:    user.ID,
		ProductID: product.ID,
		Price:     capture.Amount,
	}
	if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
		return fmt.Errorf("failed to record purchase: %w", err)
	}

	log.Printf("PURCHASE_SETTLED: user_id=%d order=%s tokens=%d", user.ID, capture.OrderID, tokens)
	return nil
}

// ListPurchases implements domain.BillingService
func (s *BillingServiceImpl) ListPurchases(ctx context.Context, userID uint) ([]*domain.Purchase, error) {
	return s.purchaseRepo.ListByUser(ctx, userID)
}
