package notifications

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	verify "github.com/twilio/twilio-go/rest/verify/v2"

	"github.com/you/identitysvc/domain"
)

// TwilioVerifyImpl implements domain.SMSVerifier using the Twilio Verify
// v2 API. Code generation and checking happen provider-side.
type TwilioVerifyImpl struct {
	client    *twilio.RestClient
	verifySID string
}

// NewTwilioVerify creates a new Twilio Verify service
func NewTwilioVerify(accountSID, authToken, verifySID string) domain.SMSVerifier {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioVerifyImpl{
		client:    client,
		verifySID: verifySID,
	}
}

// StartVerification implements domain.SMSVerifier
func (t *TwilioVerifyImpl) StartVerification(ctx context.Context, num string) (string, error) {
	params := &verify.CreateVerificationParams{}
	params.SetTo(num)
	params.SetChannel("sms")

	verification, err := t.client.VerifyV2.CreateVerification(t.verifySID, params)
	if err != nil {
		return "", fmt.Errorf("failed to start verification: %w", err)
	}
	if verification.Status == nil {
		return "", nil
	}
	return *verification.Status, nil
}

// CheckVerification implements domain.SMSVerifier
func (t *TwilioVerifyImpl) CheckVerification(ctx context.Context, num, code string) (string, error) {
	params := &verify.CreateVerificationCheckParams{}
	params.SetTo(num)
	params.SetCode(code)

	check, err := t.client.VerifyV2.CreateVerificationCheck(t.verifySID, params)
	if err != nil {
		return "", fmt.Errorf("failed to check verification: %w", err)
	}
	if check.Status == nil {
		return "", nil
	}
	return *check.Status, nil
}
