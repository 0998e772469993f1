// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"time"
)

var taskTypePattern = regexp.MustCompile(`^[a-z]+(-[a-z]+)+$`)

var implementationStatuses = map[string]bool{
	"planned":     true,
	"in-progress": true,
	"completed":   true,
	"verified":    true,
}

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", path, err)
	}
	return &reg, nil
}

func (r *ActivityRegistry) Save(path string) error {
	r.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// Find returns the activity registered for taskType.
func (r *ActivityRegistry) Find(taskType string) (*Activity, bool) {
	for i := range r.Activities {
		if r.Activities[i].TaskType == taskType {
			return &r.Activities[i], true
		}
	}
	return nil, false
}

// Validate reports every structural problem in the registry.
func (r *ActivityRegistry) Validate() []error {
	var problems []error
	ids := map[string]bool{}
	taskTypes := map[string]bool{}

	for _, a := range r.Activities {
		if a.ID == "" {
			problems = append(problems, fmt.Errorf("activity with empty id"))
			continue
		}
		if ids[a.ID] {
			problems = append(problems, fmt.Errorf("duplicate activity id %q", a.ID))
		}
		ids[a.ID] = true

		if !taskTypePattern.MatchString(a.TaskType) {
			problems = append(problems, fmt.Errorf("%s: task type %q must be kebab-case", a.ID, a.TaskType))
		}
		if taskTypes[a.TaskType] {
			problems = append(problems, fmt.Errorf("%s: task type %q registered twice", a.ID, a.TaskType))
		}
		taskTypes[a.TaskType] = true

		if !implementationStatuses[a.ImplementationStatus] {
			problems = append(problems, fmt.Errorf("%s: unknown implementation status %q", a.ID, a.ImplementationStatus))
		}
		if _, ok := a.TimeoutDuration(); a.Timeout != "" && !ok {
			problems = append(problems, fmt.Errorf("%s: invalid timeout %q", a.ID, a.Timeout))
		}
	}
	return problems
}
