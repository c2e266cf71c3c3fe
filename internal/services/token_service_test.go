package services_test

import (
	"testing"
	"time"

	"ecommerce-analytics/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_IssueAndValidate(t *testing.T) {
	service := services.NewTokenService("s3cret", time.Hour)
	require.True(t, service.Enabled())

	token, err := service.Issue("ops@example.com")
	require.NoError(t, err)

	claims, err := service.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", claims["sub"])
}

func TestTokenService_RejectsBadTokens(t *testing.T) {
	service := services.NewTokenService("s3cret", time.Hour)

	other, err := services.NewTokenService("different", time.Hour).Issue("ops")
	require.NoError(t, err)
	_, err = service.Validate(other)
	assert.Error(t, err, "wrong secret")

	_, err = service.Validate("not-a-token")
	assert.Error(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "ops",
		"role": "dashboard-admin",
		"exp":  time.Now().Add(-time.Minute).Unix(),
	})
	signed, err := expired.SignedString([]byte("s3cret"))
	require.NoError(t, err)
	_, err = service.Validate(signed)
	assert.Error(t, err, "expired")

	noRole := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "ops",
		"exp": time.Now().Add(time.Minute).Unix(),
	})
	signed, err = noRole.SignedString([]byte("s3cret"))
	require.NoError(t, err)
	_, err = service.Validate(signed)
	assert.Error(t, err, "role claim is required")
}

func TestTokenService_Disabled(t *testing.T) {
	service := services.NewTokenService("", 0)
	assert.False(t, service.Enabled())

	_, err := service.Issue("ops")
	assert.ErrorIs(t, err, services.ErrTokensDisabled)
	_, err = service.Validate("anything")
	assert.ErrorIs(t, err, services.ErrTokensDisabled)

	_, err = services.NewTokenService("s3cret", 0).Issue("")
	assert.Error(t, err)
}
