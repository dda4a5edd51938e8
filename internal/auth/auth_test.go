package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() *JWTConfig {
	return &JWTConfig{
		Secret:   []byte("test-secret-change-me"),
		Issuer:   "test",
		Audience: "test",
		TTL:      time.Hour,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	cfg := testJWTConfig()

	token, err := GenerateToken(cfg, "ops")
	require.NoError(t, err)

	claims, err := ValidateToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.Subject)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestValidateTokenRejects(t *testing.T) {
	cfg := testJWTConfig()
	token, err := GenerateToken(cfg, "ops")
	require.NoError(t, err)

	other := testJWTConfig()
	other.Secret = []byte("another-secret")
	_, err = ValidateToken(other, token)
	assert.Error(t, err, "wrong secret")

	other = testJWTConfig()
	other.Audience = "elsewhere"
	_, err = ValidateToken(other, token)
	assert.Error(t, err, "wrong audience")

	expired := testJWTConfig()
	expired.TTL = -time.Minute
	stale, err := GenerateToken(expired, "ops")
	require.NoError(t, err)
	_, err = ValidateToken(cfg, stale)
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired), "expected expiry error, got %v", err)

	_, err = ValidateToken(&JWTConfig{}, token)
	assert.ErrorIs(t, err, ErrNoSecret)
}

func TestServerPassword(t *testing.T) {
	require.NoError(t, CheckServerPassword("", "anything"))

	hash, err := HashPassword("hunter2")
	require.NoError(t, err)

	assert.NoError(t, CheckServerPassword(hash, "hunter2"))
	assert.ErrorIs(t, CheckServerPassword(hash, "wrong"), ErrInvalidPassword)
}
