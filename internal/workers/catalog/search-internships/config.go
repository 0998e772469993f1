// internal/workers/catalog/search-internships/config.go
package searchinternships

import (
	"time"

	"internship-workers/internal/common/config"
)

type Config struct {
	Timeout time.Duration
	Index   string
	MaxSize int
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		Timeout: config.GetDuration(config.GetWorkerConfig(cfg, TaskType).Timeout),
		Index:   cfg.Search.Index,
		MaxSize: cfg.Search.MaxSize,
	}
}
