package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/poolstat/internal/api/handlers"
	"github.com/wonny/poolstat/internal/catalog"
	"github.com/wonny/poolstat/internal/contracts"
	"github.com/wonny/poolstat/internal/report"
	"github.com/wonny/poolstat/pkg/config"
	"github.com/wonny/poolstat/pkg/database"
	"github.com/wonny/poolstat/pkg/logger"
)

const testCatalog = "../catalog/testdata/pools.yaml"

type stubSource struct {
	records []contracts.PoolRecord
	err     error
}

func (s stubSource) Load(ctx context.Context) ([]contracts.PoolRecord, error) {
	return s.records, s.err
}

func testConfig() *config.Config {
	return &config.Config{
		Port:           "0",
		Env:            "development",
		MetricsEnabled: true,
		API: config.APIConfig{
			RateLimitRPS:   1000,
			RateLimitBurst: 1000,
			RequestTimeout: 5 * time.Second,
		},
	}
}

func newTestRouter(t *testing.T, cfg *config.Config, source contracts.CatalogSource) http.Handler {
	t.Helper()
	cat, err := catalog.LoadFile(testCatalog)
	require.NoError(t, err)

	if source == nil {
		source = catalog.NewFileSource(testCatalog)
	}
	svc := report.NewService(cat, logger.Nop())
	return NewRouter(handlers.NewReportHandler(source, svc, logger.Nop()), nil, cfg, logger.Nop())
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	h := newTestRouter(t, testConfig(), nil)

	rec := get(t, h, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode(t, rec)["status"])
}

func TestEndpoints(t *testing.T) {
	h := newTestRouter(t, testConfig(), nil)

	tests := []struct {
		path string
		key  string
	}{
		{"/api/report", "ranking"},
		{"/api/ratios", "ratios"},
		{"/api/statistics", "statistics"},
		{"/api/estimates", "values"},
		{"/api/estimates?group_by=venue", "values"},
		{"/api/pick", "pair_label"},
		{"/api/ranking", "ranking"},
		{"/api/verify", "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := get(t, h, tt.path)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Contains(t, decode(t, rec), tt.key)
		})
	}
}

func TestRanking_Top(t *testing.T) {
	h := newTestRouter(t, testConfig(), nil)

	rec := get(t, h, "/api/ranking?top=2")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Count   int                      `json:"count"`
		Ranking []contracts.RankedRecord `json:"ranking"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
	assert.Equal(t, 86, body.Ranking[0].Score)
	assert.Equal(t, 2, body.Ranking[1].Rank)

	assert.Equal(t, http.StatusBadRequest, get(t, h, "/api/ranking?top=zero").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/api/estimates?group_by=chain").Code)
}

func TestEstimates_ByVenue(t *testing.T) {
	h := newTestRouter(t, testConfig(), nil)

	rec := get(t, h, "/api/estimates?group_by=venue")
	require.Equal(t, http.StatusOK, rec.Code)

	var body handlers.EstimatesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"Uniswap", "SushiSwap", "Curve"}, body.Order)
	assert.Len(t, body.Values, 3)
	assert.Empty(t, body.Failed)
}

type stubHealth struct {
	status *database.HealthStatus
	err    error
}

func (s stubHealth) HealthCheck(ctx context.Context) (*database.HealthStatus, error) {
	return s.status, s.err
}

func TestHealth_Database(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		h := healthCheckHandler(stubHealth{status: &database.HealthStatus{Healthy: true}}, logger.Nop())
		rec := get(t, h, "/health")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ok", decode(t, rec)["status"])
	})

	t.Run("ping failure is logged", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.NewWithWriter(&config.Config{Env: "development", LogLevel: "warn", LogFormat: "json"}, &buf)
		h := healthCheckHandler(stubHealth{
			status: &database.HealthStatus{Error: "connection refused"},
			err:    errors.New("connection refused"),
		}, log)

		rec := get(t, h, "/health")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "degraded", decode(t, rec)["status"])
		assert.Contains(t, buf.String(), "Database health check failed")
		assert.Contains(t, buf.String(), "connection refused")
	})

	t.Run("missing status", func(t *testing.T) {
		h := healthCheckHandler(stubHealth{err: context.DeadlineExceeded}, logger.Nop())
		rec := get(t, h, "/health")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "degraded", body["status"])
		assert.Equal(t, context.DeadlineExceeded.Error(), body["database"].(map[string]interface{})["error"])
	})
}

func TestDomainErrors(t *testing.T) {
	cat, err := catalog.LoadFile(testCatalog)
	require.NoError(t, err)
	bad := cat.Records()
	bad[2].ReserveB = -1

	t.Run("invalid reserve", func(t *testing.T) {
		h := newTestRouter(t, testConfig(), stubSource{records: bad})
		for _, path := range []string{"/api/report", "/api/ratios", "/api/statistics", "/api/estimates", "/api/pick"} {
			rec := get(t, h, path)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, path)
			assert.Contains(t, decode(t, rec)["error"], "invalid reserve", path)
		}
	})

	t.Run("reserve quotient overflows", func(t *testing.T) {
		extreme := cat.Records()
		extreme[0].ReserveA = 1e-300
		extreme[0].ReserveB = 1e300

		h := newTestRouter(t, testConfig(), stubSource{records: extreme})
		for _, path := range []string{"/api/report", "/api/ratios", "/api/statistics"} {
			rec := get(t, h, path)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, path)
			assert.Contains(t, decode(t, rec)["error"], "invalid reserve", path)
		}
	})

	t.Run("empty catalog", func(t *testing.T) {
		h := newTestRouter(t, testConfig(), stubSource{})
		assert.Equal(t, http.StatusUnprocessableEntity, get(t, h, "/api/statistics").Code)
		assert.Equal(t, http.StatusUnprocessableEntity, get(t, h, "/api/ranking").Code)
		assert.Equal(t, http.StatusUnprocessableEntity, get(t, h, "/api/pick").Code)
	})

	t.Run("source failure", func(t *testing.T) {
		h := newTestRouter(t, testConfig(), stubSource{err: errors.New("connection refused")})
		rec := get(t, h, "/api/report")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "connection refused")
	})
}

func TestStatistics_Partial(t *testing.T) {
	cat, err := catalog.LoadFile(testCatalog)
	require.NoError(t, err)
	records := cat.Records()
	for i := range records {
		records[i].Volume = 0
	}

	h := newTestRouter(t, testConfig(), stubSource{records: records})
	rec := get(t, h, "/api/statistics")
	require.Equal(t, http.StatusOK, rec.Code)

	var body handlers.StatisticsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Statistics, len(contracts.StatisticNames())-1)
	require.Len(t, body.Errors, 1)
	assert.Contains(t, body.Errors[0], contracts.StatWeightedMean)
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.API.RateLimitRPS = 0.001
	cfg.API.RateLimitBurst = 2
	h := newTestRouter(t, cfg, nil)

	assert.Equal(t, http.StatusOK, get(t, h, "/api/ratios").Code)
	assert.Equal(t, http.StatusOK, get(t, h, "/api/ratios").Code)

	rec := get(t, h, "/api/ratios")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	// health is outside the limited subrouter
	assert.Equal(t, http.StatusOK, get(t, h, "/health").Code)
}

func TestMetrics(t *testing.T) {
	h := newTestRouter(t, testConfig(), nil)

	get(t, h, "/api/verify")
	rec := get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `poolstat_http_requests_total{method="GET",route="/api/verify",status="200"} 1`), body)

	cfg := testConfig()
	cfg.MetricsEnabled = false
	assert.Equal(t, http.StatusNotFound, get(t, newTestRouter(t, cfg, nil), "/metrics").Code)
}

func TestRecoveryMiddleware(t *testing.T) {
	h := recoveryMiddleware(logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := get(t, h, "/")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", decode(t, rec)["error"])
}
