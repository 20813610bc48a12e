package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("user-1", "secret", "cst-backend", time.Now(), time.Hour)
	require.NoError(t, err)

	claims, err := ParseAndValidateJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "cst-backend", claims.Issuer)

	_, err = ParseAndValidateJWT(token, "other-secret")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestJWTExpired(t *testing.T) {
	token, err := GenerateJWT("user-1", "secret", "cst-backend", time.Now().Add(-2*time.Hour), time.Hour)
	require.NoError(t, err)
	_, err = ParseAndValidateJWT(token, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("correct horse", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestRefreshTokenHash(t *testing.T) {
	raw, err := GenerateSecureRandomString(32)
	require.NoError(t, err)
	assert.Len(t, raw, 64)
	assert.True(t, CompareRefreshTokenHash(raw, HashRefreshToken(raw)))
	assert.False(t, CompareRefreshTokenHash(raw+"x", HashRefreshToken(raw)))
}

func TestCurrencyHelpers(t *testing.T) {
	assert.True(t, IsCurrencyCode("USD"))
	assert.False(t, IsCurrencyCode("usd"))
	assert.False(t, IsCurrencyCode("US"))
	assert.Equal(t, "EUR", NormalizeCurrencyCode(" eur ", "TRY"))
	assert.Equal(t, "TRY", NormalizeCurrencyCode("", "TRY"))
	assert.Equal(t, "12.35", FormatAmount(decimal.RequireFromString("12.345")))
}
