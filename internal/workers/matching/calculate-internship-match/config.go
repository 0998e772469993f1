// internal/workers/matching/calculate-internship-match/config.go
package calculateinternshipmatch

import (
	"time"

	"internship-workers/internal/common/config"
)

type Config struct {
	Timeout time.Duration
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		Timeout: config.GetDuration(config.GetWorkerConfig(cfg, TaskType).Timeout),
	}
}
