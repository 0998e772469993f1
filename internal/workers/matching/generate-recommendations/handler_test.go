package generaterecommendations

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	commonerrors "internship-workers/internal/common/errors"
	"internship-workers/internal/common/logger"
	"internship-workers/internal/matching"
	"internship-workers/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mocks
// ==========================

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

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) ListActive(ctx context.Context, limit int, excludeIDs []string) ([]*matching.Internship, error) {
	args := m.Called(ctx, limit, excludeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*matching.Internship), args.Error(1)
}

type MockApplications struct {
	mock.Mock
}

func (m *MockApplications) AppliedInternshipIDs(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type fixture struct {
	handler      *Handler
	profiles     *MockProfiles
	catalog      *MockCatalog
	applications *MockApplications
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{
		profiles:     &MockProfiles{},
		catalog:      &MockCatalog{},
		applications: &MockApplications{},
	}
	cfg := &Config{Timeout: 5 * time.Second, DefaultLimit: 10, CatalogScanLimit: 500, Parallelism: 2}
	f.handler = NewHandler(cfg, f.profiles, f.catalog, f.applications, logger.NewTestLogger(t))
	f.handler.now = func() time.Time { return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC) }
	return f
}

func dataProfile() *matching.UserProfile {
	return &matching.UserProfile{
		Skills:      []string{"Python", "SQL", "Pandas"},
		Preferences: matching.Preferences{Location: "remote", WorkType: matching.WorkTypeRemote, Industry: "tech"},
		Interests:   []string{"data"},
	}
}

func activeCatalog() []*matching.Internship {
	return []*matching.Internship{
		{ID: "i-java", Title: "Java Intern", Company: "Corp", Requirements: []string{"Java", "Spring"}, Location: "Paris", Type: matching.WorkTypeOnSite},
		{ID: "i-data", Title: "Data Intern", Company: "Tech Labs", Requirements: []string{"Python", "SQL"}, Location: "Remote", Type: matching.WorkTypeRemote, Tags: []string{"data"}},
		{ID: "i-ml", Title: "ML Intern", Company: "AI Co", Requirements: []string{"Python", "TensorFlow"}, Location: "Remote", Type: matching.WorkTypeRemote},
	}
}

// ==========================
// Tests
// ==========================

func TestHandler_Execute_ExcludesApplied(t *testing.T) {
	f := newFixture(t)
	f.profiles.On("GetProfile", mock.Anything, "user-1").Return(dataProfile(), nil)
	f.applications.On("AppliedInternshipIDs", mock.Anything, "user-1").Return([]string{"i-old"}, nil)
	f.catalog.On("ListActive", mock.Anything, 500, []string{"i-old"}).Return(activeCatalog(), nil)

	out, err := f.handler.Execute(context.Background(), &Input{UserID: "user-1"})
	require.NoError(t, err)

	require.Len(t, out.Recommendations, 3)
	assert.Equal(t, "i-data", out.Recommendations[0].Internship.ID)
	assert.Equal(t, "i-java", out.Recommendations[2].Internship.ID)
	for i := 1; i < len(out.Recommendations); i++ {
		assert.GreaterOrEqual(t, out.Recommendations[i-1].Match.OverallScore, out.Recommendations[i].Match.OverallScore)
	}
	assert.NotEmpty(t, out.Recommendations[0].Reasons)
	assert.LessOrEqual(t, len(out.Recommendations[0].Reasons), matching.MaxReasons)

	assert.Equal(t, []string{"Python", "SQL", "Pandas"}, out.UserProfile.Skills)
	assert.Equal(t, Metadata{TotalInternships: 3, AlgorithmVersion: "1.0", GeneratedAt: "2026-10-19T12:00:00Z"}, out.Metadata)

	f.applications.AssertExpectations(t)
	f.catalog.AssertExpectations(t)
}

func TestHandler_Execute_IncludeAppliedAndLimit(t *testing.T) {
	f := newFixture(t)
	f.profiles.On("GetProfile", mock.Anything, "user-1").Return(dataProfile(), nil)
	f.catalog.On("ListActive", mock.Anything, 500, []string(nil)).Return(activeCatalog(), nil)

	limit := 1
	out, err := f.handler.Execute(context.Background(), &Input{UserID: "user-1", IncludeApplied: true, Limit: &limit})
	require.NoError(t, err)
	require.Len(t, out.Recommendations, 1)
	assert.Equal(t, 3, out.Metadata.TotalInternships)

	f.applications.AssertNotCalled(t, "AppliedInternshipIDs", mock.Anything, mock.Anything)
}

func TestHandler_Execute_NonPositiveLimit(t *testing.T) {
	f := newFixture(t)
	f.profiles.On("GetProfile", mock.Anything, "user-1").Return(dataProfile(), nil)
	f.applications.On("AppliedInternshipIDs", mock.Anything, "user-1").Return([]string{}, nil)
	f.catalog.On("ListActive", mock.Anything, 500, []string{}).Return(activeCatalog(), nil)

	limit := 0
	out, err := f.handler.Execute(context.Background(), &Input{UserID: "user-1", Limit: &limit})
	require.NoError(t, err)
	assert.NotNil(t, out.Recommendations)
	assert.Empty(t, out.Recommendations)
}

func TestHandler_Execute_EmptyCatalog(t *testing.T) {
	f := newFixture(t)
	f.profiles.On("GetProfile", mock.Anything, "user-1").Return(dataProfile(), nil)
	f.applications.On("AppliedInternshipIDs", mock.Anything, "user-1").Return([]string{}, nil)
	f.catalog.On("ListActive", mock.Anything, 500, []string{}).Return([]*matching.Internship{}, nil)

	out, err := f.handler.Execute(context.Background(), &Input{UserID: "user-1"})
	require.NoError(t, err)
	assert.Empty(t, out.Recommendations)
	assert.Equal(t, 0, out.Metadata.TotalInternships)
}

func TestHandler_Execute_SkillsRequired(t *testing.T) {
	f := newFixture(t)
	f.applications.On("AppliedInternshipIDs", mock.Anything, "user-1").Return([]string{}, nil)

	_, err := f.handler.Execute(context.Background(), &Input{
		UserID:      "user-1",
		UserProfile: json.RawMessage(`{"skills":[],"preferences":{"location":"Berlin"}}`),
	})
	assert.Equal(t, commonerrors.ErrCodeSkillsRequired, commonerrors.CodeOf(err))
	f.catalog.AssertNotCalled(t, "ListActive", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_Execute_Errors(t *testing.T) {
	t.Run("profile not found", func(t *testing.T) {
		f := newFixture(t)
		f.profiles.On("GetProfile", mock.Anything, "ghost").Return(nil, store.ErrProfileNotFound)
		f.applications.On("AppliedInternshipIDs", mock.Anything, "ghost").Return([]string{}, nil)

		_, err := f.handler.Execute(context.Background(), &Input{UserID: "ghost"})
		assert.Equal(t, commonerrors.ErrCodeProfileNotFound, commonerrors.CodeOf(err))
	})

	t.Run("applied lookup fails", func(t *testing.T) {
		f := newFixture(t)
		f.profiles.On("GetProfile", mock.Anything, "user-1").Return(dataProfile(), nil)
		f.applications.On("AppliedInternshipIDs", mock.Anything, "user-1").Return(nil, errors.New("connection reset"))

		_, err := f.handler.Execute(context.Background(), &Input{UserID: "user-1"})
		assert.Equal(t, commonerrors.ErrCodeQueryExecutionFailed, commonerrors.CodeOf(err))
	})

	t.Run("catalog query times out", func(t *testing.T) {
		f := newFixture(t)
		f.profiles.On("GetProfile", mock.Anything, "user-1").Return(dataProfile(), nil)
		f.applications.On("AppliedInternshipIDs", mock.Anything, "user-1").Return([]string{}, nil)
		f.catalog.On("ListActive", mock.Anything, 500, []string{}).Return(nil, context.DeadlineExceeded)

		_, err := f.handler.Execute(context.Background(), &Input{UserID: "user-1"})
		assert.Equal(t, commonerrors.ErrCodeQueryTimeout, commonerrors.CodeOf(err))
	})

	t.Run("missing user id", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.handler.Execute(context.Background(), &Input{})
		assert.Equal(t, commonerrors.ErrCodeInvalidInput, commonerrors.CodeOf(err))
	})
}
