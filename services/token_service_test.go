package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yashrajoria/storefront-backend/services"
)

func TestTokenService_PairRoundTrip(t *testing.T) {
	svc := services.NewTokenService("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)

	pair, err := svc.GenerateTokenPair("user-1", "buyer@example.com", "customer")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "buyer@example.com", claims["email"])
	assert.Equal(t, "customer", claims["role"])

	claims, err = svc.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
}

func TestTokenService_SecretsAreNotInterchangeable(t *testing.T) {
	svc := services.NewTokenService("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)

	pair, err := svc.GenerateTokenPair("user-1", "buyer@example.com", "customer")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.RefreshToken)
	assert.Error(t, err)
	_, err = svc.ValidateRefreshToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestTokenService_ExpiredTokenRejected(t *testing.T) {
	svc := services.NewTokenService("access-secret", "refresh-secret", -time.Minute, -time.Minute)

	pair, err := svc.GenerateTokenPair("user-1", "buyer@example.com", "customer")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.Error(t, err)
}
