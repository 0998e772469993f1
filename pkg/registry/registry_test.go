// pkg/registry/registry_test.go
package registry

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRegistry_ShippedFile(t *testing.T) {
	reg, err := LoadRegistry(filepath.Join("..", "..", "configs", "activity-registry.json"))
	require.NoError(t, err)

	assert.Empty(t, reg.Validate())

	for _, taskType := range []string{
		"calculate-internship-match",
		"bulk-match-internships",
		"generate-recommendations",
		"analyze-skill-insights",
		"search-internships",
		"create-application-record",
		"send-reminder",
	} {
		a, ok := reg.Find(taskType)
		require.True(t, ok, taskType)
		assert.NotEmpty(t, a.InputSchema, taskType)
	}
}

func TestActivityRegistry_Validate(t *testing.T) {
	reg := &ActivityRegistry{Activities: []Activity{
		{ID: "a", TaskType: "send-reminder", ImplementationStatus: "completed", Timeout: "10s"},
		{ID: "a", TaskType: "send-reminder", ImplementationStatus: "done", Timeout: "ten"},
		{ID: "b", TaskType: "Bad_Type", ImplementationStatus: "planned"},
		{ID: ""},
	}}

	problems := reg.Validate()

	assert.Len(t, problems, 6)
}

func TestActivityRegistry_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	reg := &ActivityRegistry{Version: "1.0.0", Activities: []Activity{{ID: "x", TaskType: "send-reminder"}}}

	require.NoError(t, reg.Save(path))
	loaded, err := LoadRegistry(path)

	require.NoError(t, err)
	assert.NotEmpty(t, loaded.LastUpdated)
	_, ok := loaded.Find("send-reminder")
	assert.True(t, ok)
}

func TestActivity_TimeoutDuration(t *testing.T) {
	tests := []struct {
		timeout string
		want    time.Duration
		ok      bool
	}{
		{"15s", 15 * time.Second, true},
		{"1m30s", 90 * time.Second, true},
		{"", 0, false},
		{"soon", 0, false},
		{"-5s", 0, false},
	}
	for _, tt := range tests {
		a := Activity{Timeout: tt.timeout}
		got, ok := a.TimeoutDuration()
		assert.Equal(t, tt.ok, ok, tt.timeout)
		assert.Equal(t, tt.want, got, tt.timeout)
	}
}
