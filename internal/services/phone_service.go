package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/you/identitysvc/domain"
)

// PhoneVerificationImpl implements domain.PhoneVerificationService. Code
// generation and checking live provider-side; this service owns the
// prechecks and the verified-flag transition.
type PhoneVerificationImpl struct {
	userRepo domain.UserRepository
	verifier domain.SMSVerifier
}

// NewPhoneVerificationService creates a new phone verification service
func NewPhoneVerificationService(userRepo domain.UserRepository, verifier domain.SMSVerifier) domain.PhoneVerificationService {
	return &PhoneVerificationImpl{userRepo: userRepo, verifier: verifier}
}

// precheck rejects numbers already claimed by any account and accounts
// that are already verified, before the provider is contacted.
func (s *PhoneVerificationImpl) precheck(ctx context.Context, userID uint, num string) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByNum(ctx, num); err == nil {
		return nil, domain.ErrNumAlreadyVerified
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	if user.Verified {
		return nil, domain.ErrUserAlreadyVerified
	}
	return user, nil
}

// SendCode implements domain.PhoneVerificationService
func (s *PhoneVerificationImpl) SendCode(ctx context.Context, userID uint, num string) error {
	if _, err := s.precheck(ctx, userID, num); err != nil {
		return err
	}

	// Any non-error response from the provider counts as sent.
	if _, err := s.verifier.StartVerification(ctx, num); err != nil {
		return domain.ErrInvalidPhoneNumber
	}
	return nil
}

// CheckCode implements domain.PhoneVerificationService
func (s *PhoneVerificationImpl) CheckCode(ctx context.Context, userID uint, num, code string) error {
	user, err := s.precheck(ctx, userID, num)
	if err != nil {
		return err
	}

	status, err := s.verifier.CheckVerification(ctx, num, code)
	if err != nil || status != domain.StatusApproved {
		return domain.ErrInvalidSMSCode
	}

	if err := s.userRepo.SetVerifiedNum(ctx, user.ID, num); err != nil {
		return err
	}

	log.Printf("PHONE_VERIFIED: user_id=%d num=%s timestamp=%s",
		user.ID, num, time.Now().UTC().Format(time.RFC3339))
	return nil
}
