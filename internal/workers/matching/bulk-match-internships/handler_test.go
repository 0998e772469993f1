package bulkmatchinternships

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	commonerrors "internship-workers/internal/common/errors"
	"internship-workers/internal/common/logger"
	"internship-workers/internal/matching"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProfiles struct {
	mock.Mock
}

func (m *MockProfiles) GetProfile(ctx context.Context, userID string) (*matching.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*matching.UserProfile), args.Error(1)
}

type MockInternships struct {
	mock.Mock
}

func (m *MockInternships) GetInternships(ctx context.Context, ids []string) ([]*matching.Internship, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*matching.Internship), args.Error(1)
}

func createTestHandler(t *testing.T, parallelism int) (*Handler, *MockProfiles, *MockInternships) {
	profiles := &MockProfiles{}
	internships := &MockInternships{}
	cfg := &Config{Timeout: 5 * time.Second, MaxItems: matching.MaxBulkItems, Parallelism: parallelism}
	return NewHandler(cfg, profiles, internships, logger.NewTestLogger(t)), profiles, internships
}

func goProfile() *matching.UserProfile {
	return &matching.UserProfile{
		Skills:      []string{"Go", "Docker", "PostgreSQL"},
		Preferences: matching.Preferences{Location: "Berlin", WorkType: matching.WorkTypeHybrid},
	}
}

func catalog() []*matching.Internship {
	return []*matching.Internship{
		{ID: "weak", Title: "iOS Intern", Company: "Apple Pie", Requirements: []string{"Swift", "Xcode"}, Location: "Paris", Type: matching.WorkTypeOnSite},
		nil,
		{ID: "strong", Title: "Platform Intern", Company: "Acme", Requirements: []string{"Go", "Docker"}, Location: "Berlin", Type: matching.WorkTypeHybrid},
	}
}

func TestHandler_Execute_SortsAndSkipsMissing(t *testing.T) {
	for _, parallelism := range []int{1, 4} {
		t.Run(fmt.Sprintf("parallelism=%d", parallelism), func(t *testing.T) {
			h, profiles, internships := createTestHandler(t, parallelism)
			ids := []string{"weak", "missing", "strong"}
			profiles.On("GetProfile", mock.Anything, "user-1").Return(goProfile(), nil)
			internships.On("GetInternships", mock.Anything, ids).Return(catalog(), nil)

			out, err := h.Execute(context.Background(), &Input{UserID: "user-1", InternshipIDs: ids})
			require.NoError(t, err)

			require.Len(t, out.Matches, 2)
			assert.Equal(t, "strong", out.Matches[0].InternshipID)
			assert.Equal(t, "weak", out.Matches[1].InternshipID)
			assert.GreaterOrEqual(t, out.Matches[0].OverallScore, out.Matches[1].OverallScore)
			assert.Equal(t, Metadata{Requested: 3, Processed: 2, AlgorithmVersion: "1.0"}, out.Metadata)
		})
	}
}

func TestHandler_Execute_Limits(t *testing.T) {
	h, profiles, _ := createTestHandler(t, 1)

	_, err := h.Execute(context.Background(), &Input{UserID: "user-1"})
	assert.Equal(t, commonerrors.ErrCodeInvalidInput, commonerrors.CodeOf(err))

	ids := make([]string, matching.MaxBulkItems+1)
	for i := range ids {
		ids[i] = fmt.Sprintf("i-%d", i)
	}
	_, err = h.Execute(context.Background(), &Input{UserID: "user-1", InternshipIDs: ids})
	assert.Equal(t, commonerrors.ErrCodeBulkLimitExceeded, commonerrors.CodeOf(err))

	profiles.AssertNotCalled(t, "GetProfile", mock.Anything, mock.Anything)
}

func TestHandler_Execute_ExactlyAtLimit(t *testing.T) {
	h, profiles, internships := createTestHandler(t, 1)
	ids := make([]string, matching.MaxBulkItems)
	for i := range ids {
		ids[i] = fmt.Sprintf("i-%d", i)
	}
	profiles.On("GetProfile", mock.Anything, "user-1").Return(goProfile(), nil)
	internships.On("GetInternships", mock.Anything, ids).Return(make([]*matching.Internship, len(ids)), nil)

	out, err := h.Execute(context.Background(), &Input{UserID: "user-1", InternshipIDs: ids})
	require.NoError(t, err)
	assert.Empty(t, out.Matches)
	assert.Equal(t, 50, out.Metadata.Requested)
	assert.Equal(t, 0, out.Metadata.Processed)
}

func TestHandler_Execute_StoreFailure(t *testing.T) {
	h, profiles, internships := createTestHandler(t, 1)
	profiles.On("GetProfile", mock.Anything, "user-1").Return(goProfile(), nil)
	internships.On("GetInternships", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset"))

	_, err := h.Execute(context.Background(), &Input{UserID: "user-1", InternshipIDs: []string{"i-1"}})
	assert.Equal(t, commonerrors.ErrCodeQueryExecutionFailed, commonerrors.CodeOf(err))
}

func TestLoadConfig_CapsBulkLimit(t *testing.T) {
	cfg := LoadConfig(testAppConfig(80))
	assert.Equal(t, matching.MaxBulkItems, cfg.MaxItems)

	cfg = LoadConfig(testAppConfig(20))
	assert.Equal(t, 20, cfg.MaxItems)
}
