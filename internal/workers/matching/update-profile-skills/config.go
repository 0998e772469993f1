package updateprofileskills

import (
	"time"

	"internship-workers/internal/common/config"
)

const (
	defaultCatalogSize = 20
	defaultQuickLimit  = 5
)

type Config struct {
	Timeout     time.Duration
	CatalogSize int
	QuickLimit  int
	Parallelism int
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		Timeout:     config.GetDuration(config.GetWorkerConfig(cfg, TaskType).Timeout),
		CatalogSize: defaultCatalogSize,
		QuickLimit:  defaultQuickLimit,
		Parallelism: cfg.Matching.Parallelism,
	}
}
