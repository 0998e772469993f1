// internal/workers/tracker/send-reminder/config.go
package sendreminder

import (
	"time"

	"internship-workers/internal/common/config"
)

type Config struct {
	Timeout       time.Duration
	EmailEnabled  bool
	SMSEnabled    bool
	RatePerSecond float64
	Burst         int
}

func LoadConfig(cfg *config.Config) *Config {
	n := cfg.Notifications
	return &Config{
		Timeout:       config.GetDuration(config.GetWorkerConfig(cfg, TaskType).Timeout),
		EmailEnabled:  n.Email.Enabled,
		SMSEnabled:    n.SMS.Enabled,
		RatePerSecond: n.RatePerSecond,
		Burst:         n.Burst,
	}
}
