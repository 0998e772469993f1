package bulkmatchinternships

import "internship-workers/internal/common/config"

func testAppConfig(bulkMax int) *config.Config {
	return &config.Config{
		Matching: config.MatchingConfig{BulkMaxItems: bulkMax, Parallelism: 2},
		Workers: map[string]config.WorkerConfig{
			TaskType: {Enabled: true, Timeout: 15000},
		},
	}
}
