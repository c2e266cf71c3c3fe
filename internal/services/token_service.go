package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// DefaultTokenTTL is the lifetime of an admin token.
const DefaultTokenTTL = 24 * time.Hour

const adminRole = "dashboard-admin"

// ErrTokensDisabled is returned when no signing secret is configured.
var ErrTokensDisabled = errors.New("admin tokens are disabled: no secret configured")

// TokenService issues and validates the HS256 tokens that guard admin actions
// such as reloading the dashboard dataset.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates a TokenService. A non-positive ttl uses DefaultTokenTTL.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Enabled reports whether a secret is configured.
func (s *TokenService) Enabled() bool {
	return len(s.secret) > 0
}

// Issue returns a signed token for subject.
func (s *TokenService) Issue(subject string) (string, error) {
	if !s.Enabled() {
		return "", ErrTokensDisabled
	}
	if subject == "" {
		return "", fmt.Errorf("subject is required")
	}

	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  subject,
		"role": adminRole,
		"exp":  now.Add(s.ttl).Unix(),
		"iat":  now.Unix(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return signed, nil
}

// Validate parses tokenString and returns its claims when the signature,
// expiry and role are valid.
func (s *TokenService) Validate(tokenString string) (jwt.MapClaims, error) {
	if !s.Enabled() {
		return nil, ErrTokensDisabled
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if role, _ := claims["role"].(string); role != adminRole {
		return nil, fmt.Errorf("invalid token: missing %s role", adminRole)
	}
	return claims, nil
}
