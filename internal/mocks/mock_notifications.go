package mocks

import (
	"context"

	"github.com/you/identitysvc/domain"
)

// MockMailer implements domain.Mailer interface for testing
type MockMailer struct {
	SendFunc           func(template string, to string, context map[string]string) error
	SendToOperatorFunc func(fromEmail, subject, msg string) error

	// Sent records every Send call for assertion convenience.
	Sent []SentMail
}

// SentMail is one recorded Mailer.Send invocation.
type SentMail struct {
	Template string
	To       string
	Context  map[string]string
}

func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) Send(template string, to string, context map[string]string) error {
	m.Sent = append(m.Sent, SentMail{Template: template, To: to, Context: context})
	if m.SendFunc != nil {
		return m.SendFunc(template, to, context)
	}
	return nil
}

func (m *MockMailer) SendToOperator(fromEmail, subject, msg string) error {
	if m.SendToOperatorFunc != nil {
		return m.SendToOperatorFunc(fromEmail, subject, msg)
	}
	return nil
}

// MockSMSVerifier implements domain.SMSVerifier interface for testing
type MockSMSVerifier struct {
	StartVerificationFunc func(ctx context.Context, num string) (string, error)
	CheckVerificationFunc func(ctx context.Context, num, code string) (string, error)
}

func NewMockSMSVerifier() *MockSMSVerifier {
	return &MockSMSVerifier{}
}

func (m *MockSMSVerifier) StartVerification(ctx context.Context, num string) (string, error) {
	if m.StartVerificationFunc != nil {
		return m.StartVerificationFunc(ctx, num)
	}
	return "pending", nil
}

func (m *MockSMSVerifier) CheckVerification(ctx context.Context, num, code string) (string, error) {
	if m.CheckVerificationFunc != nil {
		return m.CheckVerificationFunc(ctx, num, code)
	}
	return domain.StatusApproved, nil
}

// MockGoogleVerifier implements domain.GoogleVerifier interface for testing
type MockGoogleVerifier struct {
	VerifyCredentialFunc   func(ctx context.Context, token string) (*domain.GoogleClaims, error)
	ResolveAccessTokenFunc func(ctx context.Context, token string) (*domain.GoogleClaims, error)
}

func NewMockGoogleVerifier() *MockGoogleVerifier {
	return &MockGoogleVerifier{}
}

func (m *MockGoogleVerifier) VerifyCredential(ctx context.Context, token string) (*domain.GoogleClaims, error) {
	if m.VerifyCredentialFunc != nil {
		return m.VerifyCredentialFunc(ctx, token)
	}
	return nil, domain.ErrGoogleCredential
}

func (m *MockGoogleVerifier) ResolveAccessToken(ctx context.Context, token string) (*domain.GoogleClaims, error) {
	if m.ResolveAccessTokenFunc != nil {
		return m.ResolveAccessTokenFunc(ctx, token)
	}
	return nil, domain.ErrGoogleCredential
}

// Compile-time interface compliance verification
var (
	_ domain.Mailer         = (*MockMailer)(nil)
	_ domain.SMSVerifier    = (*MockSMSVerifier)(nil)
	_ domain.GoogleVerifier = (*MockGoogleVerifier)(nil)
)
