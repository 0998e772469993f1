// internal/common/camunda/client_test.go
package camunda

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetry_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	var retried []int

	err := Retry(context.Background(), RetryConfig{MaxAttempts: 5, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond},
		"redis connection",
		func(context.Context) error {
			calls++
			if calls < 3 {
				return fmt.Errorf("connection refused")
			}
			return nil
		},
		func(attempt int, _ time.Duration, _ error) { retried = append(retried, attempt) },
	)

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []int{1, 2}, retried)
}

func TestRetry_GivesUp(t *testing.T) {
	err := Retry(context.Background(), RetryConfig{MaxAttempts: 2, BaseDelay: time.Millisecond},
		"postgres connection",
		func(context.Context) error { return fmt.Errorf("boom") },
		nil,
	)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres connection failed after 2 attempts")
}

func TestRetry_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, RetryConfig{MaxAttempts: 5, BaseDelay: time.Hour}, "zeebe",
		func(context.Context) error { return fmt.Errorf("unavailable") }, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(fmt.Errorf("rpc error: code = Unavailable desc = connection refused")))
	assert.True(t, IsTransient(context.DeadlineExceeded))
	assert.False(t, IsTransient(fmt.Errorf("NOT_FOUND: process not found")))
	assert.False(t, IsTransient(nil))
}
