package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgAuth "github.com/farmacia-cloud/compras-backend/pkg/auth"
	"github.com/farmacia-cloud/compras-backend/pkg/config"
	"github.com/farmacia-cloud/compras-backend/pkg/logger"
)

var authTestJWT = config.JWTConfig{
	Secret:            "test-secret",
	Issuer:            "compras-backend",
	ExpirationMinutes: 60,
}

func discardLogger() *logger.Logger {
	return logger.New(logger.Options{
		ServiceName: "test",
		Level:       zerolog.Disabled,
		Output:      io.Discard,
	})
}

func mintTestToken(t *testing.T, issuedAt time.Time) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(authTestJWT, issuedAt, pkgAuth.AccessTokenPayload{
		TenantID: "tenant1",
		Email:    "ana@example.com",
		Nombre:   "Ana Prueba",
	})
	require.NoError(t, err)
	return token
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAuthSeedsPrincipal(t *testing.T) {
	var got pkgAuth.Principal
	handlerCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		principal, ok := PrincipalFromContext(r.Context())
		require.True(t, ok)
		got = principal
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/compras", nil)
	req.Header.Set("Authorization", "Bearer "+mintTestToken(t, time.Now()))
	rec := httptest.NewRecorder()

	Auth(authTestJWT, discardLogger())(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, handlerCalled)
	assert.Equal(t, "tenant1", got.TenantID)
	assert.Equal(t, "ana@example.com", got.Email)
	assert.Equal(t, "Ana Prueba", got.Nombre)
}

func TestAuthMissingHeader(t *testing.T) {
	handlerCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
	})

	cases := []struct {
		name   string
		header string
	}{
		{"absent", ""},
		{"not bearer", "Basic dXNlcjpwYXNz"},
		{"bearer without token", "Bearer   "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/compras", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()

			Auth(authTestJWT, discardLogger())(next).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "token requerido", decodeError(t, rec)["error"])
		})
	}
	assert.False(t, handlerCalled)
}

func TestAuthExpiredToken(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for an expired token")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/compras", nil)
	req.Header.Set("Authorization", "Bearer "+mintTestToken(t, time.Now().Add(-2*time.Hour)))
	rec := httptest.NewRecorder()

	Auth(authTestJWT, discardLogger())(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "token expirado", decodeError(t, rec)["error"])
}

func TestAuthInvalidToken(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for an invalid token")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/compras", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	rec := httptest.NewRecorder()

	Auth(authTestJWT, discardLogger())(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "token inválido", decodeError(t, rec)["error"])
}
