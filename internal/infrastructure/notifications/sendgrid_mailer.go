package notifications

import (
	"fmt"
	"log"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/you/identitysvc/domain"
)

// Template ids accepted by Send.
const (
	TemplateRegister  = "register"
	TemplateBuyCustom = "buy_custom"
	TemplateOTP       = "OTP"
)

// SendGridMailerImpl implements domain.Mailer over the SendGrid API.
type SendGridMailerImpl struct {
	client        *sendgrid.Client
	from          *mail.Email
	operatorEmail string
	apiKey        string
}

// NewSendGridMailer creates a new SendGrid mailer
func NewSendGridMailer(apiKey, fromAddress, fromName, operatorEmail string) domain.Mailer {
	return &SendGridMailerImpl{
		client:        sendgrid.NewSendClient(apiKey),
		from:          mail.NewEmail(fromName, fromAddress),
		operatorEmail: operatorEmail,
		apiKey:        apiKey,
	}
}

// Send implements domain.Mailer. Template rendering is intentionally
// minimal: subject and body are selected by template id and filled from
// the context map.
func (s *SendGridMailerImpl) Send(template string, to string, context map[string]string) error {
	var subject, body string

	switch template {
	case TemplateRegister:
		subject = "Welcome!"
		body = fmt.Sprintf("Welcome aboard, %s. Your account is ready.", context["email"])
	case TemplateBuyCustom:
		subject = "Thank you for your purchase!"
		body = fmt.Sprintf("Your purchase is confirmed. %s tokens were added to your account.", context["tokens"])
	case TemplateOTP:
		subject = "Confirmation code"
		body = fmt.Sprintf("Your confirmation code is %s. It expires in 10 minutes.", context["otp"])
	default:
		return fmt.Errorf("unknown email template %q", template)
	}

	return s.deliver(to, subject, body)
}

// SendToOperator implements domain.Mailer for the contact flow.
func (s *SendGridMailerImpl) SendToOperator(fromEmail, subject, msg string) error {
	if subject == "" || msg == "" {
		return nil
	}
	body := fmt.Sprintf("Subject: %s | Msg: %s", subject, msg)
	return s.deliver(s.operatorEmail, fmt.Sprintf("MSG | %s", fromEmail), body)
}

func (s *SendGridMailerImpl) deliver(to, subject, body string) error {
	// Without credentials, log instead of sending.
	if s.apiKey == "" {
		log.Printf("[MOCK EMAIL] To: %s, Subject: %s, Body: %s", to, subject, body)
		return nil
	}

	message := mail.NewSingleEmail(s.from, subject, mail.NewEmail("", to), body, body)
	resp, err := s.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}
