package auth

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/you/identitysvc/domain"
)

// JWTServiceImpl implements domain.TokenService
type JWTServiceImpl struct {
	secretKey       []byte
	issuer          string
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

// NewJWTService creates a new JWT service
func NewJWTService(secretKey string, issuer string, accessTTL, refreshTTL time.Duration) domain.TokenService {
	return &JWTServiceImpl{
		secretKey:       []byte(secretKey),
		issuer:          issuer,
		accessTokenTTL:  accessTTL,
		refreshTokenTTL: refreshTTL,
	}
}

// generateJTI creates a unique JWT ID
func (j *JWTServiceImpl) generateJTI() string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// GeneratePair implements domain.TokenService. Both tokens carry the
// account's email claim; validity is signature + expiry only, nothing is
// stored server-side.
func (j *JWTServiceImpl) GeneratePair(user *domain.User) (*domain.TokenPair, error) {
	access, err := j.sign(user, "access", j.accessTokenTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := j.sign(user, "refresh", j.refreshTokenTTL)
	if err != nil {
		return nil, err
	}
	return &domain.TokenPair{Access: access, Refresh: refresh}, nil
}

func (j *JWTServiceImpl) sign(user *domain.User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":    user.ID,
		"email":      user.Email,
		"token_type": tokenType,
		"iss":        j.issuer,
		"iat":        now.Unix(),
		"exp":        now.Add(ttl).Unix(),
		"jti":        j.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// ValidateAccessToken implements domain.TokenService
func (j *JWTServiceImpl) ValidateAccessToken(tokenString string) (*domain.TokenClaims, error) {
	return j.validateToken(tokenString, "access")
}

// ValidateRefreshToken implements domain.TokenService
func (j *JWTServiceImpl) ValidateRefreshToken(tokenString string) (*domain.TokenClaims, error) {
	return j.validateToken(tokenString, "refresh")
}

// validateToken validates a JWT token and returns claims
func (j *JWTServiceImpl) validateToken(tokenString, wantType string) (*domain.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenMalformed
		}
		return j.secretKey, nil
	})

	if err != nil || !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	email, ok := claims["email"].(string)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	tokenType, ok := claims["token_type"].(string)
	if !ok || tokenType != wantType {
		return nil, domain.ErrTokenInvalid
	}

	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	if time.Unix(int64(exp), 0).Before(time.Now()) {
		return nil, domain.ErrTokenExpired
	}

	return &domain.TokenClaims{
		UserID:    uint(userID),
		Email:     email,
		TokenType: tokenType,
		IssuedAt:  int64(iat),
		ExpiresAt: int64(exp),
	}, nil
}
