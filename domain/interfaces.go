package domain

import "context"

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByNum(ctx context.Context, num string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *User) error
	// SetVerifiedNum stores the verified phone number and flips the
	// verified flag in one update.
	SetVerifiedNum(ctx context.Context, userID uint, num string) error
	UpdatePassword(ctx context.Context, userID uint, passwordHash string) error
	AddTokens(ctx context.Context, userID uint, tokens int) error
}

// OtpRepository defines OTP record persistence. Records are looked up by
// email only; the purpose column is mutated in place by the flows.
type OtpRepository interface {
	GetOrCreate(ctx context.Context, email string) (*OtpCode, error)
	FindByEmail(ctx context.Context, email string) (*OtpCode, error)
	Save(ctx context.Context, otp *OtpCode) error
	Delete(ctx context.Context, id uint) error
}

// PreferencesRepository persists per-account preferences.
type PreferencesRepository interface {
	Create(ctx context.Context, prefs *UserPreferences) error
	FindByUserID(ctx context.Context, userID uint) (*UserPreferences, error)
}

// ProductRepository defines product catalogue access.
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	FindByExternalID(ctx context.Context, externalID string) (*Product, error)
	List(ctx context.Context) ([]*Product, error)
}

// PurchaseRepository persists settled purchases.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *Purchase) error
	ListByUser(ctx context.Context, userID uint) ([]*Purchase, error)
}

// OtpService owns the OTP lifecycle shared by the signup, Google and
// password-reset flows.
type OtpService interface {
	GetOrCreate(ctx context.Context, email string) (*OtpCode, error)
	FindByEmail(ctx context.Context, email string) (*OtpCode, error)
	// GenerateAndSend populates the record with a fresh code and expiry,
	// persists it, then attempts delivery. The record stays generated even
	// when delivery fails; sent reports the delivery outcome.
	GenerateAndSend(ctx context.Context, otp *OtpCode, purpose OtpPurpose) (sent bool, err error)
	// SetPurpose retags the record for a new flow without generating a
	// code. Used by the google flow, which validates via credential.
	SetPurpose(ctx context.Context, otp *OtpCode, purpose OtpPurpose) error
	// Validate checks code against the record for the given purpose.
	// Consuming validations delete the record on success.
	Validate(ctx context.Context, otp *OtpCode, code string, purpose OtpPurpose, consume bool) error
	// ValidateGoogleCredential checks the record's purpose, then verifies
	// the presented credential with the identity provider. Never consumes.
	ValidateGoogleCredential(ctx context.Context, otp *OtpCode, credential string, purpose OtpPurpose) error
}

// AuthService coordinates the signup, Google and password-reset flows.
type AuthService interface {
	ContinueWithEmail(ctx context.Context, email string) (emailExists bool, err error)
	CheckSignupOTP(ctx context.Context, email, code string) error
	Register(ctx context.Context, input RegisterInput) (*TokenPair, error)
	ContinueWithGoogle(ctx context.Context, credential, accessToken string) (*GoogleContinueResult, error)
	RequestPasswordReset(ctx context.Context, email string) error
	CheckPasswordResetOTP(ctx context.Context, email, code string) error
	ChangePassword(ctx context.Context, email, code, newPassword string) error
}

// PhoneVerificationService handles the two-step SMS verification that flips
// the account's verified flag.
type PhoneVerificationService interface {
	SendCode(ctx context.Context, userID uint, num string) error
	CheckCode(ctx context.Context, userID uint, num, code string) error
}

// BillingService settles completed payments into token balances.
type BillingService interface {
	CreateOrder(ctx context.Context, user *User, productExternalID string, value float64) (map[string]any, error)
	CaptureOrder(ctx context.Context, user *User, orderID string) error
	ListPurchases(ctx context.Context, userID uint) ([]*Purchase, error)
}

// PasswordService defines password hashing and the shared password policy.
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
	ValidatePolicy(password string) error
}

// TokenService mints and validates session token pairs.
type TokenService interface {
	GeneratePair(user *User) (*TokenPair, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	ValidateRefreshToken(token string) (*TokenClaims, error)
}

// Mailer sends a templated email. Template ids are "register",
// "buy_custom" and "OTP"; context carries at least the target email and,
// for OTP, the code.
type Mailer interface {
	Send(template string, to string, context map[string]string) error
	// SendToOperator relays a contact message to the operator address.
	SendToOperator(fromEmail, subject, msg string) error
}

// SMSVerifier is the external SMS verification provider. Statuses are an
// open string set; only StatusApproved counts as a successful check.
type SMSVerifier interface {
	StartVerification(ctx context.Context, num string) (status string, err error)
	CheckVerification(ctx context.Context, num, code string) (status string, err error)
}

// StatusApproved is the SMSVerifier status accepted by the check step.
const StatusApproved = "approved"

// GoogleVerifier resolves identities from Google credentials.
type GoogleVerifier interface {
	VerifyCredential(ctx context.Context, token string) (*GoogleClaims, error)
	ResolveAccessToken(ctx context.Context, token string) (*GoogleClaims, error)
}

// PaymentProcessor is the payment provider boundary. Protocol details stay
// behind this interface.
type PaymentProcessor interface {
	CreateOrder(ctx context.Context, product *Product, value float64) (map[string]any, error)
	CaptureOrder(ctx context.Context, orderID string) (*PaymentCapture, error)
}
