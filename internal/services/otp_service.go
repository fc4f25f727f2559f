package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/you/identitysvc/domain"
)

// OTPServiceImpl implements domain.OtpService. The store keeps one record
// per email: starting a new flow for an address overwrites the purpose of
// any record already in flight for it, so validation always checks against
// the record's current purpose.
type OTPServiceImpl struct {
	otpRepo domain.OtpRepository
	mailer  domain.Mailer
	google  domain.GoogleVerifier
	config  OTPConfig
	now     func() time.Time
}

type OTPConfig struct {
	Length int
	TTL    time.Duration
}

// NewOTPService creates a new OTP service
func NewOTPService(otpRepo domain.OtpRepository, mailer domain.Mailer, google domain.GoogleVerifier, config OTPConfig) domain.OtpService {
	return &OTPServiceImpl{
		otpRepo: otpRepo,
		mailer:  mailer,
		google:  google,
		config:  config,
		now:     time.Now,
	}
}

// GetOrCreate implements domain.OtpService
func (s *OTPServiceImpl) GetOrCreate(ctx context.Context, email string) (*domain.OtpCode, error) {
	return s.otpRepo.GetOrCreate(ctx, email)
}

// FindByEmail implements domain.OtpService
func (s *OTPServiceImpl) FindByEmail(ctx context.Context, email string) (*domain.OtpCode, error) {
	return s.otpRepo.FindByEmail(ctx, email)
}

// GenerateAndSend implements domain.OtpService. Generation and delivery
// are two separable steps: the record is persisted with its new code and
// expiry before delivery is attempted, and survives a failed send so a
// caller may retry delivery without rotating the code.
func (s *OTPServiceImpl) GenerateAndSend(ctx context.Context, otp *domain.OtpCode, purpose domain.OtpPurpose) (bool, error) {
	code, err := s.generateSecureCode()
	if err != nil {
		return false, fmt.Errorf("failed to generate OTP code: %w", err)
	}

	expiresAt := s.now().Add(s.config.TTL)
	otp.Code = code
	otp.Purpose = purpose
	otp.ExpiresAt = &expiresAt

	if err := s.otpRepo.Save(ctx, otp); err != nil {
		return false, fmt.Errorf("failed to persist OTP: %w", err)
	}

	if err := s.mailer.Send("OTP", otp.Email, map[string]string{
		"email": otp.Email,
		"otp":   otp.Code,
	}); err != nil {
		return false, nil
	}

	return true, nil
}

// SetPurpose implements domain.OtpService
func (s *OTPServiceImpl) SetPurpose(ctx context.Context, otp *domain.OtpCode, purpose domain.OtpPurpose) error {
	otp.Purpose = purpose
	return s.otpRepo.Save(ctx, otp)
}

// Validate implements domain.OtpService. Three-way outcome: a purpose
// mismatch means this purpose was never requested for the email; a wrong
// or expired code fails without rotating the stored code; on success a
// consuming validation deletes the record.
func (s *OTPServiceImpl) Validate(ctx context.Context, otp *domain.OtpCode, code string, purpose domain.OtpPurpose, consume bool) error {
	if otp.Purpose != purpose {
		return domain.ErrOTPNotGenerated
	}

	if otp.Code == "" || otp.Code != code || otp.IsExpired(s.now()) {
		return domain.ErrOTPInvalid
	}

	if consume {
		if err := s.otpRepo.Delete(ctx, otp.ID); err != nil {
			return fmt.Errorf("failed to consume OTP: %w", err)
		}
	}
	return nil
}

// ValidateGoogleCredential implements domain.OtpService. The google flow
// validates a provider credential instead of a numeric code, and never
// deletes its placeholder record afterward.
func (s *OTPServiceImpl) ValidateGoogleCredential(ctx context.Context, otp *domain.OtpCode, credential string, purpose domain.OtpPurpose) error {
	if otp.Purpose != purpose {
		return domain.ErrOTPNotGenerated
	}

	if _, err := s.google.VerifyCredential(ctx, credential); err == nil {
		return nil
	}
	if _, err := s.google.ResolveAccessToken(ctx, credential); err == nil {
		return nil
	}
	return domain.ErrGoogleCredential
}

// generateSecureCode draws each digit independently from a
// cryptographically secure source; leading zeros are preserved.
func (s *OTPServiceImpl) generateSecureCode() (string, error) {
	digits := make([]byte, s.config.Length)

	for i := 0; i < s.config.Length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}

	return string(digits), nil
}
