package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/you/identitysvc/domain"
)

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	prefsRepo   domain.PreferencesRepository
	otpSvc      domain.OtpService
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	mailer      domain.Mailer
	google      domain.GoogleVerifier
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	prefsRepo domain.PreferencesRepository,
	otpSvc domain.OtpService,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	mailer domain.Mailer,
	google domain.GoogleVerifier,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		prefsRepo:   prefsRepo,
		otpSvc:      otpSvc,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		mailer:      mailer,
		google:      google,
	}
}

// ContinueWithEmail implements domain.AuthService. For an unknown address
// it starts the signup flow by generating and mailing a signup code; for a
// known one it reports existence and touches nothing.
func (s *AuthServiceImpl) ContinueWithEmail(ctx context.Context, email string) (bool, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return true, nil
	}

	otp, err := s.otpSvc.GetOrCreate(ctx, email)
	if err != nil {
		return false, fmt.Errorf("failed to get OTP record: %w", err)
	}

	sent, err := s.otpSvc.GenerateAndSend(ctx, otp, domain.PurposeEmail)
	if err != nil {
		return false, err
	}
	if !sent {
		return false, domain.ErrOTPSendFailed
	}
	return false, nil
}

// CheckSignupOTP implements domain.AuthService. Validation only: the
// record is left intact so registration can re-validate and consume it.
func (s *AuthServiceImpl) CheckSignupOTP(ctx context.Context, email, code string) error {
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return domain.ErrEmailAlreadyRegistered
	}

	otp, err := s.otpSvc.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	return s.otpSvc.Validate(ctx, otp, code, domain.PurposeEmail, false)
}

// Register implements domain.AuthService. The email path consumes its OTP
// record; the google path validates the credential and leaves its
// placeholder record behind (kept for compatibility with the existing
// client contract — a stale google-purpose record lingers after signup).
func (s *AuthServiceImpl) Register(ctx context.Context, input domain.RegisterInput) (*domain.TokenPair, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, domain.ErrEmailAlreadyRegistered
	}

	otp, err := s.otpSvc.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}

	switch input.RegisterType {
	case "email":
		if err := s.otpSvc.Validate(ctx, otp, input.OTP, domain.PurposeEmail, true); err != nil {
			return nil, err
		}
	case "google":
		if err := s.otpSvc.ValidateGoogleCredential(ctx, otp, input.GoogleCredential, domain.PurposeGoogle); err != nil {
			return nil, err
		}
	default:
		return nil, domain.ErrOTPNotGenerated
	}

	if err := s.passwordSvc.ValidatePolicy(input.Password); err != nil {
		return nil, err
	}
	hash, err := s.passwordSvc.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:        input.Email,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.postCreate(ctx, user)

	tokens, err := s.tokenSvc.GeneratePair(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if err := s.mailer.Send("register", user.Email, map[string]string{"email": user.Email}); err != nil {
		log.Printf("WELCOME_EMAIL_FAILED: email=%s error=%v", user.Email, err)
	}

	log.Printf("USER_REGISTERED: user_id=%d email=%s type=%s timestamp=%s",
		user.ID, user.Email, input.RegisterType, time.Now().UTC().Format(time.RFC3339))

	return tokens, nil
}

// postCreate runs the account-creation side effects as an explicit step:
// an empty OTP shell for the address and default preferences.
func (s *AuthServiceImpl) postCreate(ctx context.Context, user *domain.User) {
	if _, err := s.otpSvc.GetOrCreate(ctx, user.Email); err != nil {
		log.Printf("OTP_SHELL_FAILED: email=%s error=%v", user.Email, err)
	}
	prefs := &domain.UserPreferences{UserID: user.ID, Language: domain.LanguageEN}
	if err := s.prefsRepo.Create(ctx, prefs); err != nil {
		log.Printf("PREFERENCES_FAILED: user_id=%d error=%v", user.ID, err)
	}
}

// ContinueWithGoogle implements domain.AuthService
func (s *AuthServiceImpl) ContinueWithGoogle(ctx context.Context, credential, accessToken string) (*domain.GoogleContinueResult, error) {
	var claims *domain.GoogleClaims
	var googleToken string
	var err error

	if credential != "" {
		claims, err = s.google.VerifyCredential(ctx, credential)
		googleToken = credential
	} else {
		claims, err = s.google.ResolveAccessToken(ctx, accessToken)
		googleToken = accessToken
	}
	if err != nil || claims.Subject == "" {
		return nil, domain.ErrGoogleAuthFailed
	}

	user, err := s.userRepo.FindByEmail(ctx, claims.Email)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}

		// New user: park a google-purpose record for the address. No code
		// is generated, registration validates the credential itself.
		otp, err := s.otpSvc.GetOrCreate(ctx, claims.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to get OTP record: %w", err)
		}
		if err := s.otpSvc.SetPurpose(ctx, otp, domain.PurposeGoogle); err != nil {
			return nil, fmt.Errorf("failed to set OTP purpose: %w", err)
		}

		return &domain.GoogleContinueResult{
			IsNewUser:   true,
			Email:       claims.Email,
			GoogleToken: googleToken,
		}, nil
	}

	tokens, err := s.tokenSvc.GeneratePair(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}
	return &domain.GoogleContinueResult{IsNewUser: false, Tokens: tokens}, nil
}

// RequestPasswordReset implements domain.AuthService. Idempotent: every
// call rotates the code and resends.
func (s *AuthServiceImpl) RequestPasswordReset(ctx context.Context, email string) error {
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if !exists {
		return domain.ErrEmailNotRegistered
	}

	otp, err := s.otpSvc.GetOrCreate(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to get OTP record: %w", err)
	}

	sent, err := s.otpSvc.GenerateAndSend(ctx, otp, domain.PurposeChangePassword)
	if err != nil {
		return err
	}
	if !sent {
		return domain.ErrOTPSendFailed
	}
	return nil
}

// CheckPasswordResetOTP implements domain.AuthService. Validation only, so
// a client can pre-confirm the code before asking for a new password.
func (s *AuthServiceImpl) CheckPasswordResetOTP(ctx context.Context, email, code string) error {
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if !exists {
		return domain.ErrEmailNotRegistered
	}

	otp, err := s.otpSvc.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	return s.otpSvc.Validate(ctx, otp, code, domain.PurposeChangePassword, false)
}

// ChangePassword implements domain.AuthService. Consumes the reset code,
// then applies the password policy and persists the new hash.
func (s *AuthServiceImpl) ChangePassword(ctx context.Context, email, code, newPassword string) error {
	otp, err := s.otpSvc.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if err := s.otpSvc.Validate(ctx, otp, code, domain.PurposeChangePassword, true); err != nil {
		return err
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	if err := s.passwordSvc.ValidatePolicy(newPassword); err != nil {
		return err
	}
	hash, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	log.Printf("PASSWORD_CHANGED: user_id=%d email=%s timestamp=%s",
		user.ID, user.Email, time.Now().UTC().Format(time.RFC3339))
	return nil
}
