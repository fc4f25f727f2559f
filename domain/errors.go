package domain

import "errors"

// OTP errors. The message text is part of the API contract: every flow
// surfaces the same fixed strings regardless of which endpoint hit them.
var (
	ErrOTPNotGenerated = errors.New("Code not generated yet.")
	// ErrOTPRecordNotFound carries the same client-facing text as
	// ErrOTPNotGenerated but marks record absence, which some endpoints
	// report with not-found semantics while a purpose mismatch stays a
	// plain validation failure.
	ErrOTPRecordNotFound = errors.New("Code not generated yet.")
	ErrOTPInvalid        = errors.New("Invalid or expired code.")
	ErrOTPSendFailed     = errors.New("Error sending code.")
	ErrGoogleCredential  = errors.New("Invalid Google credentials.")
)

// Account errors
var (
	ErrUserNotFound           = errors.New("user not found")
	ErrEmailAlreadyRegistered = errors.New("Email is already registered.")
	ErrEmailNotRegistered     = errors.New("Email not registered.")
	ErrUserInactive           = errors.New("user account is inactive")
)

// ErrUserNotVerified is the Verification Gate rejection. Handlers map it to
// a dedicated authorization response shape, distinct from generic
// permission failures.
var ErrUserNotVerified = errors.New("User account must be verified to make this action.")

// Phone verification errors
var (
	ErrNumAlreadyVerified  = errors.New("Num already verified.")
	ErrUserAlreadyVerified = errors.New("User already verified.")
	ErrInvalidPhoneNumber  = errors.New("Invalid phone number.")
	ErrInvalidSMSCode      = errors.New("Invalid code.")
)

// Password policy errors
var (
	ErrPasswordTooShort    = errors.New("Password must be at least 8 characters.")
	ErrPasswordComposition = errors.New("The password must contain at least one letter and one number.")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Google sign-in errors
var (
	ErrGoogleAuthFailed = errors.New("google authentication failed")
)

// Billing errors
var (
	ErrProductNotFound = errors.New("Product doesn't exist.")
	ErrPaymentProvider = errors.New("payment provider error")
)
