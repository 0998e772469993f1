// internal/workers/matching/bulk-match-internships/config.go
package bulkmatchinternships

import (
	"time"

	"internship-workers/internal/common/config"
	"internship-workers/internal/matching"
)

type Config struct {
	Timeout     time.Duration
	MaxItems    int
	Parallelism int
}

func LoadConfig(cfg *config.Config) *Config {
	maxItems := cfg.Matching.BulkMaxItems
	if maxItems <= 0 || maxItems > matching.MaxBulkItems {
		maxItems = matching.MaxBulkItems
	}
	return &Config{
		Timeout:     config.GetDuration(config.GetWorkerConfig(cfg, TaskType).Timeout),
		MaxItems:    maxItems,
		Parallelism: cfg.Matching.Parallelism,
	}
}
