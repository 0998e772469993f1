package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"internship-workers/internal/common/config"
	"internship-workers/internal/common/database"
	"internship-workers/pkg/registry"
)

func get(t *testing.T, mux http.Handler, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	var body map[string]interface{}
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestHealthMux_Health(t *testing.T) {
	rec, body := get(t, healthMux(&backends{}), "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])
}

func TestHealthMux_Ready(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectPing()

	mr := miniredis.RunT(t)
	rdb := database.NewRedis(config.RedisConfig{Address: mr.Addr()})
	defer rdb.Close()

	rec, body := get(t, healthMux(&backends{pg: &database.PostgresClient{DB: db}, redis: rdb}), "/ready")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", body["status"])

	checks := body["checks"].(map[string]interface{})
	assert.Equal(t, "ok", checks["postgres"])
	assert.Equal(t, "ok", checks["redis"])
	assert.Equal(t, "disabled", checks["elasticsearch"])
}

func TestHealthMux_NotReadyWithoutPostgres(t *testing.T) {
	rec, body := get(t, healthMux(&backends{}), "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "not ready", body["status"])
}

func TestHealthMux_Metrics(t *testing.T) {
	rec, _ := get(t, healthMux(&backends{}), "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestApplyRegistryDefaults(t *testing.T) {
	cfg := &config.Config{Workers: map[string]config.WorkerConfig{
		"search-internships": {Enabled: false, MaxJobsActive: 3, Timeout: 2000, MaxRetries: 1},
	}}
	reg := &registry.ActivityRegistry{Activities: []registry.Activity{
		{TaskType: "search-internships", Timeout: "5s", Retries: 3},
		{TaskType: "send-reminder", Timeout: "15s", Retries: 4},
		{TaskType: "bulk-match-internships", Timeout: "bogus"},
	}}

	applyRegistryDefaults(cfg, reg)

	assert.Equal(t, config.WorkerConfig{Enabled: false, MaxJobsActive: 3, Timeout: 2000, MaxRetries: 1}, cfg.Workers["search-internships"])
	assert.Equal(t, 15000, cfg.Workers["send-reminder"].Timeout)
	assert.Equal(t, 4, cfg.Workers["send-reminder"].MaxRetries)
	assert.True(t, cfg.Workers["send-reminder"].Enabled)
	assert.Equal(t, 30000, cfg.Workers["bulk-match-internships"].Timeout)
}
