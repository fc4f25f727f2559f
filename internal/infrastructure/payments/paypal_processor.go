package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/you/identitysvc/domain"
)

// PayPalProcessorImpl implements domain.PaymentProcessor against the
// PayPal Orders v2 API. Only the fields settlement needs are decoded.
type PayPalProcessorImpl struct {
	baseURL      string
	clientID     string
	clientSecret string
	brandName    string
	httpClient   *http.Client
}

// NewPayPalProcessor creates a new PayPal order processor
func NewPayPalProcessor(baseURL, clientID, clientSecret, brandName string) domain.PaymentProcessor {
	return &PayPalProcessorImpl{
		baseURL:      strings.TrimRight(baseURL, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
		brandName:    brandName,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *PayPalProcessorImpl) accessToken(ctx context.Context) (string, error) {
	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(p.clientID, p.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned %d", resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	return body.AccessToken, nil
}

// CreateOrder implements domain.PaymentProcessor
func (p *PayPalProcessorImpl) CreateOrder(ctx context.Context, product *domain.Product, value float64) (map[string]any, error) {
	token, err := p.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"intent": "CAPTURE",
		"purchase_units": []map[string]any{{
			"amount": map[string]any{
				"currency_code": "USD",
				"value":         fmt.Sprintf("%.2f", value),
			},
			"custom_id":    product.ExternalID,
			"reference_id": domain.ReferenceTokenPurchase,
		}},
		"payment_source": map[string]any{
			"paypal": map[string]any{
				"experience_context": map[string]any{
					"brand_name":          p.brandName,
					"shipping_preference": "NO_SHIPPING",
					"user_action":         "PAY_NOW",
					"cancel_url":          product.HomeURL,
				},
			},
		},
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+"/v2/checkout/orders", bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("order creation failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("order endpoint returned %d", resp.StatusCode)
	}

	var order map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, err
	}
	return order, nil
}

// CaptureOrder implements domain.PaymentProcessor
func (p *PayPalProcessorImpl) CaptureOrder(ctx context.Context, orderID string) (*domain.PaymentCapture, error) {
	token, err := p.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+"/v2/checkout/orders/"+url.PathEscape(orderID)+"/capture", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("capture failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("capture endpoint returned %d", resp.StatusCode)
	}

	var body struct {
		Status        string `json:"status"`
		PurchaseUnits []struct {
			ReferenceID string `json:"reference_id"`
			Payments    struct {
				Captures []struct {
					CustomID string `json:"custom_id"`
					Amount   struct {
						Value string `json:"value"`
					} `json:"amount"`
				} `json:"captures"`
			} `json:"payments"`
		} `json:"purchase_units"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	capture := &domain.PaymentCapture{OrderID: orderID, Status: body.Status}
	if len(body.PurchaseUnits) > 0 {
		unit := body.PurchaseUnits[0]
		capture.ReferenceID = unit.ReferenceID
		if len(unit.Payments.Captures) > 0 {
			capture.ProductID = unit.Payments.Captures[0].CustomID
			capture.Amount = unit.Payments.Captures[0].Amount.Value
		}
	}
	return capture, nil
}
