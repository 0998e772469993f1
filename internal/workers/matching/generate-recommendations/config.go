// internal/workers/matching/generate-recommendations/config.go
package generaterecommendations

import (
	"time"

	"internship-workers/internal/common/config"
	"internship-workers/internal/matching"
)

type Config struct {
	Timeout          time.Duration
	DefaultLimit     int
	CatalogScanLimit int
	Parallelism      int
}

func LoadConfig(cfg *config.Config) *Config {
	limit := cfg.Matching.DefaultLimit
	if limit <= 0 {
		limit = matching.DefaultRecommendationLimit
	}
	return &Config{
		Timeout:          config.GetDuration(config.GetWorkerConfig(cfg, TaskType).Timeout),
		DefaultLimit:     limit,
		CatalogScanLimit: cfg.Matching.CatalogScanLimit,
		Parallelism:      cfg.Matching.Parallelism,
	}
}
