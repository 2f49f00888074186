package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	internalcompras "github.com/farmacia-cloud/compras-backend/internal/compras"
	"github.com/farmacia-cloud/compras-backend/pkg/auth"
	"github.com/farmacia-cloud/compras-backend/pkg/config"
	"github.com/farmacia-cloud/compras-backend/pkg/logger"
	"github.com/farmacia-cloud/compras-backend/pkg/metrics"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

func newTestRouter(t *testing.T) (http.Handler, *config.Config, *gorm.DB) {
	t.Helper()

	// named shared-cache DB so every pooled connection sees the same schema
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Exec(`
CREATE TABLE IF NOT EXISTS compras (
  tenant_id TEXT NOT NULL,
  codigo_compra TEXT NOT NULL,
  email_usuario TEXT NOT NULL,
  nombre_usuario TEXT NOT NULL,
  productos TEXT NOT NULL DEFAULT '[]',
  total_productos INTEGER NOT NULL,
  total_monto NUMERIC NOT NULL,
  moneda TEXT NOT NULL DEFAULT 'PEN',
  fecha_compra TEXT NOT NULL,
  estado TEXT NOT NULL DEFAULT 'completada',
  metodo_pago TEXT NOT NULL DEFAULT 'online',
  direccion_entrega TEXT NOT NULL DEFAULT '',
  observaciones TEXT NOT NULL DEFAULT '',
  created_at DATETIME,
  PRIMARY KEY (tenant_id, codigo_compra)
);`).Error)

	cfg := &config.Config{
		App: config.AppConfig{Env: config.AppEnvDev, Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "test-secret",
			Issuer:            "compras-backend",
			ExpirationMinutes: 60,
		},
	}

	logg := logger.New(logger.Options{
		ServiceName: "test",
		Level:       zerolog.Disabled,
		Output:      io.Discard,
	})

	svc, err := internalcompras.NewService(internalcompras.ServiceParams{
		Repo: internalcompras.NewRepository(db),
	})
	require.NoError(t, err)

	registry := prometheus.NewRegistry()
	handler := NewRouter(cfg, logg, stubPinger{}, svc, metrics.NewHTTPMetrics(registry), registry)
	return handler, cfg, db
}

func bearerToken(t *testing.T, cfg *config.Config, email string) string {
	t.Helper()
	token, err := auth.MintAccessToken(cfg.JWT, time.Now(), auth.AccessTokenPayload{
		TenantID: "tenant1",
		Email:    email,
		Nombre:   "Usuario Prueba",
	})
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(t *testing.T, handler http.Handler, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	decoded := map[string]any{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func registrarBody() map[string]any {
	return map[string]any{
		"productos": []map[string]any{
			{"codigo": "PROD001", "nombre": "Paracetamol 500mg", "precio": 10.00, "cantidad": 2},
			{"codigo": "PROD002", "nombre": "Ibuprofeno 400mg", "precio": 5.50, "cantidad": 1},
		},
		"metodo_pago":       "tarjeta",
		"direccion_entrega": "Av. Principal 123",
	}
}

func TestPurchaseLifecycle(t *testing.T) {
	handler, cfg, _ := newTestRouter(t)
	token := bearerToken(t, cfg, "ana@example.com")

	// register
	rec, body := doJSON(t, handler, http.MethodPost, "/api/v1/compras", token, registrarBody())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "compra registrada exitosamente", body["message"])

	compra, ok := body["compra"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 25.50, compra["total_monto"], 0.001)
	assert.EqualValues(t, 3, compra["total_productos"])
	assert.Equal(t, "PEN", compra["moneda"])
	assert.Equal(t, "completada", compra["estado"])
	assert.Equal(t, "tarjeta", compra["metodo_pago"])
	codigo, _ := compra["codigo_compra"].(string)
	require.NotEmpty(t, codigo)

	// fetch by code returns the same purchase
	rec, body = doJSON(t, handler, http.MethodGet, "/api/v1/compras/"+codigo, token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	fetched, ok := body["compra"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, codigo, fetched["codigo_compra"])
	assert.InDelta(t, 25.50, fetched["total_monto"], 0.001)
	productos, ok := fetched["productos"].([]any)
	require.True(t, ok)
	assert.Len(t, productos, 2)

	// list holds exactly the registered purchase
	rec, body = doJSON(t, handler, http.MethodGet, "/api/v1/compras", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.EqualValues(t, 1, body["count"])
	assert.Equal(t, false, body["hasMore"])
	assert.NotContains(t, body, "nextKey")

	// statistics reflect the single purchase
	rec, body = doJSON(t, handler, http.MethodGet, "/api/v1/compras/estadisticas", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.EqualValues(t, 1, body["total_compras"])
	assert.InDelta(t, 25.50, body["total_gastado"], 0.001)
	assert.EqualValues(t, 3, body["total_productos_comprados"])
	assert.InDelta(t, 25.50, body["promedio_por_compra"], 0.001)
}

func TestRegisterWithoutTokenHasNoSideEffect(t *testing.T) {
	handler, _, db := newTestRouter(t)

	rec, body := doJSON(t, handler, http.MethodPost, "/api/v1/compras", "", registrarBody())
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "token requerido", body["error"])

	var count int64
	require.NoError(t, db.Table("compras").Count(&count).Error)
	assert.Zero(t, count)
}

func TestRegisterValidationFailureReportsPosition(t *testing.T) {
	handler, cfg, db := newTestRouter(t)
	token := bearerToken(t, cfg, "ana@example.com")

	rec, body := doJSON(t, handler, http.MethodPost, "/api/v1/compras", token, map[string]any{
		"productos": []map[string]any{
			{"codigo": "PROD001", "nombre": "Paracetamol", "precio": 10.00, "cantidad": 2},
			{"codigo": "PROD002", "nombre": "Ibuprofeno", "cantidad": 1},
		},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "campo requerido en producto 2: precio", body["error"])

	var count int64
	require.NoError(t, db.Table("compras").Count(&count).Error)
	assert.Zero(t, count)
}

func TestGetUnknownPurchase(t *testing.T) {
	handler, cfg, _ := newTestRouter(t)
	token := bearerToken(t, cfg, "ana@example.com")

	rec, body := doJSON(t, handler, http.MethodGet, "/api/v1/compras/COM-0-FFFFFFFF", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "compra no encontrada", body["error"])
}

func TestGetPurchaseOfAnotherUser(t *testing.T) {
	handler, cfg, _ := newTestRouter(t)
	owner := bearerToken(t, cfg, "ana@example.com")
	other := bearerToken(t, cfg, "otro@example.com")

	rec, body := doJSON(t, handler, http.MethodPost, "/api/v1/compras", owner, registrarBody())
	require.Equal(t, http.StatusCreated, rec.Code)
	codigo := body["compra"].(map[string]any)["codigo_compra"].(string)

	rec, body = doJSON(t, handler, http.MethodGet, "/api/v1/compras/"+codigo, other, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "compra no encontrada", body["error"])
}

func TestListPaginatesWithNextKey(t *testing.T) {
	handler, cfg, _ := newTestRouter(t)
	token := bearerToken(t, cfg, "ana@example.com")

	for i := 0; i < 3; i++ {
		rec, _ := doJSON(t, handler, http.MethodPost, "/api/v1/compras", token, registrarBody())
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec, body := doJSON(t, handler, http.MethodGet, "/api/v1/compras?limit=2", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.EqualValues(t, 2, body["count"])
	assert.Equal(t, true, body["hasMore"])
	nextKey, _ := body["nextKey"].(string)
	require.NotEmpty(t, nextKey)

	rec, body = doJSON(t, handler, http.MethodGet, "/api/v1/compras?limit=2&lastKey="+url.QueryEscape(nextKey), token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.EqualValues(t, 1, body["count"])
	assert.Equal(t, false, body["hasMore"])
}

func TestListZeroOrNegativeLimitUsesDefaultPage(t *testing.T) {
	handler, cfg, _ := newTestRouter(t)
	token := bearerToken(t, cfg, "ana@example.com")

	for i := 0; i < 3; i++ {
		rec, _ := doJSON(t, handler, http.MethodPost, "/api/v1/compras", token, registrarBody())
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	for _, limit := range []string{"0", "-5"} {
		rec, body := doJSON(t, handler, http.MethodGet, "/api/v1/compras?limit="+limit, token, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.EqualValues(t, 3, body["count"], "limit=%s", limit)
		assert.Equal(t, false, body["hasMore"])
	}
}

func TestListRejectsBadQueryInputs(t *testing.T) {
	handler, cfg, _ := newTestRouter(t)
	token := bearerToken(t, cfg, "ana@example.com")

	rec, _ := doJSON(t, handler, http.MethodGet, "/api/v1/compras?limit=abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body := doJSON(t, handler, http.MethodGet, "/api/v1/compras?lastKey=!!not-a-cursor!!", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "lastKey inválido", body["error"])
}

func TestStatisticsWithoutPurchases(t *testing.T) {
	handler, cfg, _ := newTestRouter(t)
	token := bearerToken(t, cfg, "ana@example.com")

	rec, body := doJSON(t, handler, http.MethodGet, "/api/v1/compras/estadisticas", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 0, body["total_compras"])
	assert.EqualValues(t, 0, body["total_gastado"])
	assert.Nil(t, body["primera_compra"])
	assert.Nil(t, body["ultima_compra"])
}

func TestHealthEndpoints(t *testing.T) {
	handler, _, _ := newTestRouter(t)

	rec, _ := doJSON(t, handler, http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, handler, http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOpenAPIDocumentServed(t *testing.T) {
	handler, _, _ := newTestRouter(t)

	rec, body := doJSON(t, handler, http.MethodGet, "/docs/openapi.json", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "3.0.1", body["openapi"])

	paths, ok := body["paths"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, paths, "/api/v1/compras")
	assert.Contains(t, paths, "/api/v1/compras/{codigo}")
	assert.Contains(t, paths, "/api/v1/compras/estadisticas")
}

func TestMetricsEndpointExposesRequestCounters(t *testing.T) {
	handler, cfg, _ := newTestRouter(t)
	token := bearerToken(t, cfg, "ana@example.com")

	rec, _ := doJSON(t, handler, http.MethodGet, "/api/v1/compras", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	out := httptest.NewRecorder()
	handler.ServeHTTP(out, req)
	require.Equal(t, http.StatusOK, out.Code)
	assert.Contains(t, out.Body.String(), "http_requests_total")
}
