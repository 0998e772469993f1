// internal/workers/matching/analyze-skill-insights/config.go
package analyzeskillinsights

import (
	"time"

	"internship-workers/internal/common/config"
)

type Config struct {
	Timeout   time.Duration
	ScanLimit int
	MinDemand int
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		Timeout:   config.GetDuration(config.GetWorkerConfig(cfg, TaskType).Timeout),
		ScanLimit: cfg.Matching.InsightsScanLimit,
		MinDemand: cfg.Matching.InsightsMinDemand,
	}
}
