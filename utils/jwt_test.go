package utils

import (
	"testing"
	"time"

	"agrirent/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	token, err := GenerateToken("farmer-1", "FARMER", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, role, err := ExtractClaimsFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "farmer-1", userID)
	assert.Equal(t, "FARMER", role)
}

func TestExpiredTokenRejected(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	token, err := GenerateToken("farmer-1", "FARMER", -time.Minute)
	require.NoError(t, err)

	_, _, err = ExtractClaimsFromToken(token)
	assert.Error(t, err)
}

func TestTokenSignedWithOtherSecretRejected(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	token, err := GenerateToken("farmer-1", "FARMER", time.Hour)
	require.NoError(t, err)

	config.AppConfig.JWTSecret = "rotated-secret"
	_, _, err = ExtractClaimsFromToken(token)
	assert.Error(t, err)
}

func TestHashTokenStable(t *testing.T) {
	assert.Equal(t, HashToken("abc"), HashToken("abc"))
	assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
	assert.Len(t, HashToken("abc"), 64)
}
