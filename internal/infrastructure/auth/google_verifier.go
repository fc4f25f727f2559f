package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"google.golang.org/api/idtoken"

	"github.com/you/identitysvc/domain"
)

const userinfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

// GoogleVerifierImpl implements domain.GoogleVerifier against Google's
// token endpoints.
type GoogleVerifierImpl struct {
	clientID   string
	httpClient *http.Client
}

// NewGoogleVerifier creates a new Google credential verifier
func NewGoogleVerifier(clientID string) domain.GoogleVerifier {
	return &GoogleVerifierImpl{
		clientID:   clientID,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// VerifyCredential implements domain.GoogleVerifier for signed ID tokens.
func (g *GoogleVerifierImpl) VerifyCredential(ctx context.Context, token string) (*domain.GoogleClaims, error) {
	payload, err := idtoken.Validate(ctx, token, g.clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGoogleCredential, err)
	}

	claims := &domain.GoogleClaims{Subject: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		claims.Email = email
	}
	if picture, ok := payload.Claims["picture"].(string); ok {
		claims.Picture = picture
	}
	return claims, nil
}

// ResolveAccessToken implements domain.GoogleVerifier as the fallback path
// when the client presents an access token instead of a signed credential.
func (g *GoogleVerifierImpl) ResolveAccessToken(ctx context.Context, token string) (*domain.GoogleClaims, error) {
	reqURL := userinfoURL + "?access_token=" + url.QueryEscape(token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: userinfo returned %d", domain.ErrGoogleCredential, resp.StatusCode)
	}

	var userinfo struct {
		Sub     string `json:"sub"`
		Email   string `json:"email"`
		Picture string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&userinfo); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo: %w", err)
	}

	return &domain.GoogleClaims{
		Subject: userinfo.Sub,
		Email:   userinfo.Email,
		Picture: userinfo.Picture,
	}, nil
}
