package domain

import "time"

// OtpPurpose tags which flow an OTP record currently serves.
type OtpPurpose string

const (
	PurposeGoogle         OtpPurpose = "google"
	PurposeEmail          OtpPurpose = "email"
	PurposeChangePassword OtpPurpose = "change_password"
)

// OtpCode is the one-time-password record shared by the signup, Google and
// password-reset flows. There is at most one record per email: a new flow
// for the same email mutates Purpose in place, invalidating whatever flow
// was previously in progress for that address.
type OtpCode struct {
	ID        uint
	Email     string
	Code      string // empty until a flow calls GenerateAndSend
	Purpose   OtpPurpose
	ExpiresAt *time.Time
	CreatedAt time.Time
}

// IsExpired reports whether the code is past its expiry. The expiry instant
// itself counts as expired.
func (o *OtpCode) IsExpired(now time.Time) bool {
	return o.ExpiresAt != nil && !now.Before(*o.ExpiresAt)
}

// User represents an identity account.
type User struct {
	ID           uint
	Email        string
	PasswordHash string
	Num          string // phone number, unique once verified
	FirstName    string
	LastName     string
	Picture      string
	Verified     bool
	Premium      bool
	Tokens       int
	IsActive     bool
	IsStaff      bool
	IsSuperuser  bool
	DateJoined   time.Time
	UpdatedAt    time.Time
}

// UserPreferences holds per-account settings created alongside the account.
type UserPreferences struct {
	ID       uint
	UserID   uint
	Language string
}

// Supported preference languages.
const (
	LanguageEN = "EN"
	LanguageES = "ES"
)

// TokenPair is a freshly minted access/refresh token pair. Validity is
// self-contained (signature + expiry); nothing is stored server-side.
type TokenPair struct {
	Access  string
	Refresh string
}

// TokenClaims are the claims carried by both tokens of a pair.
type TokenClaims struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// GoogleClaims is the identity resolved from a Google credential or access
// token.
type GoogleClaims struct {
	Subject string
	Email   string
	Picture string
}

// RegisterInput is the registration request for both register types.
type RegisterInput struct {
	Email            string
	Password         string
	RegisterType     string // "email" or "google"
	OTP              string
	GoogleCredential string
}

// GoogleContinueResult is the outcome of the continue-with-google flow.
// Tokens is set for existing accounts; Email and GoogleToken are returned
// for new users so the client can complete registration.
type GoogleContinueResult struct {
	IsNewUser   bool
	Email       string
	GoogleToken string
	Tokens      *TokenPair
}

// Product is a purchasable item registered with the payment provider.
type Product struct {
	ID          uint
	Name        string
	Description string
	HomeURL     string
	ExternalID  string // provider-side product id
	CreatedAt   time.Time
}

// Purchase records a settled payment.
type Purchase struct {
	ID            uint
	UserID        uint
	ProductID     uint
	Product       *Product
	Price         string
	PurchasedDate time.Time
}

// PaymentCapture is the result of capturing an order with the payment
// provider. Amount is the decimal currency value as reported by the
// provider.
type PaymentCapture struct {
	OrderID     string
	Status      string
	ReferenceID string
	ProductID   string
	Amount      string
}

// CaptureCompleted is the provider status that triggers settlement.
const CaptureCompleted = "COMPLETED"

// ReferenceTokenPurchase marks a capture as a token top-up purchase.
const ReferenceTokenPurchase = "CUSTOM"
