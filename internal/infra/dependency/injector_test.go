package dependency

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finplan/backend/config"
	"github.com/finplan/backend/internal/application/adapter"
	"github.com/finplan/backend/internal/domain/projection"
	"github.com/finplan/backend/internal/infra/db"
	"github.com/finplan/backend/internal/integration/persistence/model"
)

type recordingSender struct {
	sent []adapter.SendEmailInput
}

func (s *recordingSender) Send(_ context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	s.sent = append(s.sent, input)
	return &adapter.SendEmailResult{MessageID: "msg_1"}, nil
}

func testConfig() *config.Config {
	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.JWT.Secret = "injector-test-secret"
	cfg.JWT.AccessTokenExpiry = time.Hour
	return cfg
}

func do(t *testing.T, engine *gin.Engine, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}
	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	var decoded map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &decoded)
	return rec.Code, decoded
}

func TestNewInjector_CalculatorsOnly(t *testing.T) {
	injector, err := NewInjector(testConfig(), Options{DBHealth: func() bool { return false }})
	require.NoError(t, err)
	engine := injector.Router.Setup("test")

	status, body := do(t, engine, http.MethodPost, "/api/v1/calculators/lumpsum", "", map[string]any{
		"amount": 100000, "annual_rate": 10, "years": 2,
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "₹1.2 L", body["formatted"].(map[string]any)["maturity"])

	status, _ = do(t, engine, http.MethodGet, "/api/v1/goals", "", nil)
	assert.Equal(t, http.StatusNotFound, status, "goal routes need a database")

	status, body = do(t, engine, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "disconnected", body["database"])
	assert.Equal(t, "disabled", body["cache"])

	require.NotNil(t, injector.memoryCounter, "rate limits stay in process without redis")
	ctx, cancel := context.WithCancel(context.Background())
	injector.Start(ctx)
	cancel()
}

func TestNewInjector_FullStack(t *testing.T) {
	database, err := db.NewConnection(&config.DatabaseConfig{URL: "sqlite://" + filepath.Join(t.TempDir(), "finplan.db")})
	require.NoError(t, err)
	defer database.Close()
	require.NoError(t, database.AutoMigrate(model.AllModels()...))

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	sender := &recordingSender{}
	injector, err := NewInjector(testConfig(), Options{
		DB:          database.DB(),
		DBHealth:    database.HealthCheck,
		Redis:       client,
		EmailSender: sender,
	})
	require.NoError(t, err)
	assert.Nil(t, injector.memoryCounter, "rate limits are shared through redis")
	engine := injector.Router.Setup("test")

	status, body := do(t, engine, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"email": "meera@example.com", "name": "Meera", "password": "s3cretpass",
	})
	require.Equal(t, http.StatusCreated, status, body)
	token := body["access_token"].(string)

	status, body = do(t, engine, http.MethodPost, "/api/v1/goals", token, map[string]any{
		"name": "Sabbatical", "target_amount": 1200000, "target_date": "2032-06-01", "current_amount": 200000,
		"monthly_contribution": 10000, "expected_return": 8,
	})
	require.Equal(t, http.StatusCreated, status, body)

	status, body = do(t, engine, http.MethodGet, "/api/v1/dashboard/summary", token, nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, 1.0, body["goals"].(map[string]any)["total"])

	status, body = do(t, engine, http.MethodPost, "/api/v1/goals/digest", token, nil)
	require.Equal(t, http.StatusAccepted, status, body)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "meera@example.com", sender.sent[0].To)
	assert.Contains(t, sender.sent[0].Text, "Sabbatical")

	status, _ = do(t, engine, http.MethodPost, "/api/v1/calculators/cagr", "", map[string]any{
		"initial_value": 100, "final_value": 121, "years": 2,
	})
	assert.Equal(t, http.StatusOK, status)
	status, _ = do(t, engine, http.MethodPost, "/api/v1/calculators/sip", "", map[string]any{
		"amount": 1000, "annual_rate": 12, "years": 1,
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, mr.Keys(), 1, "only growth calculators are cached")

	status, body = do(t, engine, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "connected", body["database"])
	assert.Equal(t, "connected", body["cache"])
}

func TestCalculatorSettings(t *testing.T) {
	cfg := testConfig()
	cfg.Projection.ChartPoints = 24
	cfg.Projection.FDCompoundingUnit = "month"
	cfg.Projection.IRRTolerance = 1e-9
	cfg.Currency.Symbol = "Rs."

	settings := CalculatorSettings(cfg)

	assert.Equal(t, 24, settings.ChartPoints)
	assert.Equal(t, projection.UnitMonth, settings.FDUnit)
	assert.Equal(t, 1e-9, settings.IRR.Tolerance)
	assert.Equal(t, "Rs.", settings.Currency.Symbol)
	assert.Equal(t, "Cr", settings.Currency.CroreSuffix)
}
