package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmacia-cloud/compras-backend/pkg/config"
)

var testJWTConfig = config.JWTConfig{
	Secret:            "test-secret",
	Issuer:            "compras-backend",
	ExpirationMinutes: 60,
}

var testPayload = AccessTokenPayload{
	TenantID: "tenant1",
	Email:    "ana@example.com",
	Nombre:   "Ana Prueba",
}

func TestMintAndParseRoundTrip(t *testing.T) {
	token, err := MintAccessToken(testJWTConfig, time.Now(), testPayload)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseAccessToken(testJWTConfig, token)
	require.NoError(t, err)
	assert.Equal(t, "tenant1", claims.TenantID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "Ana Prueba", claims.Nombre)
	assert.Equal(t, "compras-backend", claims.Issuer)

	principal := claims.Principal()
	assert.Equal(t, "tenant1", principal.TenantID)
	assert.Equal(t, "ana@example.com", principal.Email)
}

func TestParseExpiredToken(t *testing.T) {
	issuedAt := time.Now().Add(-2 * time.Hour)
	token, err := MintAccessToken(testJWTConfig, issuedAt, testPayload)
	require.NoError(t, err)

	_, err = ParseAccessToken(testJWTConfig, token)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.NotErrorIs(t, err, ErrTokenInvalid)
}

func TestParseWrongSecret(t *testing.T) {
	token, err := MintAccessToken(testJWTConfig, time.Now(), testPayload)
	require.NoError(t, err)

	other := testJWTConfig
	other.Secret = "another-secret"
	_, err = ParseAccessToken(other, token)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseGarbageToken(t *testing.T) {
	_, err := ParseAccessToken(testJWTConfig, "not.a.jwt")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseRejectsUnsignedToken(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, AccessTokenClaims{
		TenantID: "tenant1",
		Email:    "ana@example.com",
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseAccessToken(testJWTConfig, signed)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseRejectsMissingIdentityClaims(t *testing.T) {
	claims := AccessTokenClaims{
		Email: "ana@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTConfig.Secret))
	require.NoError(t, err)

	_, err = ParseAccessToken(testJWTConfig, signed)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestMintRequiresIdentity(t *testing.T) {
	_, err := MintAccessToken(testJWTConfig, time.Now(), AccessTokenPayload{Email: "ana@example.com"})
	assert.Error(t, err)

	_, err = MintAccessToken(testJWTConfig, time.Now(), AccessTokenPayload{TenantID: "tenant1"})
	assert.Error(t, err)

	_, err = MintAccessToken(config.JWTConfig{}, time.Now(), testPayload)
	assert.Error(t, err)
}
