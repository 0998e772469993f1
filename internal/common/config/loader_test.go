// internal/common/config/loader_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
camunda:
  broker_address: localhost:26500
database:
  postgres:
    host: localhost
    database: internships
    user: tracker
    password: ${TEST_PG_PASSWORD}
  elasticsearch:
    addresses: ["http://localhost:9200"]
  redis:
    address: localhost:6379
workers:
  generate-recommendations:
    enabled: true
    max_jobs_active: 8
  send-reminder:
    enabled: false
matching:
  bulk_max_items: 25
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("TEST_PG_PASSWORD", "s3cret")

	cfg, err := LoadFromFile(writeConfig(t, testYAML))

	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Database.Postgres.Password)
	assert.Equal(t, 5432, cfg.Database.Postgres.Port)
	assert.Equal(t, 25, cfg.Matching.BulkMaxItems)
	assert.Equal(t, 10, cfg.Matching.DefaultLimit)
	assert.Equal(t, 10*time.Minute, cfg.Matching.CacheTTL())
	assert.Equal(t, "internships", cfg.Search.Index)

	wc := GetWorkerConfig(cfg, "generate-recommendations")
	assert.Equal(t, 8, wc.MaxJobsActive)
	assert.Equal(t, 30000, wc.Timeout)
	assert.False(t, IsWorkerEnabled(cfg, "send-reminder"))
	assert.True(t, IsWorkerEnabled(cfg, "search-internships"))
}

func TestLoadFromFile_EnvOverride(t *testing.T) {
	t.Setenv("DATABASE_REDIS_ADDRESS", "redis.internal:6380")

	cfg, err := LoadFromFile(writeConfig(t, testYAML))

	require.NoError(t, err)
	assert.Equal(t, "redis.internal:6380", cfg.Database.Redis.Address)
}

func TestLoadFromFile_MissingBroker(t *testing.T) {
	_, err := LoadFromFile(writeConfig(t, "database: {}"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "camunda.broker_address")
}

func TestValidateConfig_BulkCap(t *testing.T) {
	cfg := &Config{}
	cfg.Camunda.BrokerAddress = "x"
	cfg.Database.Postgres = PostgresConfig{Host: "h", Database: "d", User: "u"}
	cfg.Database.Elasticsearch.URL = "http://es:9200"
	cfg.Database.Redis.Address = "r:6379"
	applyDefaults(cfg)
	require.NoError(t, validateConfig(cfg))

	cfg.Matching.BulkMaxItems = 51
	assert.ErrorContains(t, validateConfig(cfg), "bulk_max_items")
}
