// pkg/registry/schema.go
package registry

import "time"

type ActivityRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Activities  []Activity `json:"activities"`
}

// Activity describes one job type the worker manager serves. InputSchema is
// a JSON Schema (draft-07) document checked against job variables before a
// handler sees them; OutputSchema documents the completed job variables.
type Activity struct {
	ID                   string `json:"id"`
	TaskType             string `json:"taskType"`
	DisplayName          string `json:"displayName"`
	Description          string `json:"description"`
	Category             string `json:"category"`
	Version              string `json:"version"`
	ImplementationStatus string `json:"implementationStatus"`

	InputSchema  map[string]interface{} `json:"inputSchema"`
	OutputSchema map[string]interface{} `json:"outputSchema"`
	ErrorCodes   []string               `json:"errorCodes"`

	Timeout string   `json:"timeout"`
	Retries int      `json:"retries"`
	Tags    []string `json:"tags"`
}

// TimeoutDuration parses Timeout. ok is false when it is empty or invalid.
func (a *Activity) TimeoutDuration() (d time.Duration, ok bool) {
	if a.Timeout == "" {
		return 0, false
	}
	d, err := time.ParseDuration(a.Timeout)
	if err != nil || d <= 0 {
		return 0, false
	}
	return d, true
}
