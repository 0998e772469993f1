package analyzeskillinsights

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	commonerrors "internship-workers/internal/common/errors"
	"internship-workers/internal/common/logger"
	"internship-workers/internal/matching"
	"internship-workers/internal/models"
	"internship-workers/internal/store"

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

func (m *MockInternships) ListRequirements(ctx context.Context, limit int) ([]*matching.Internship, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*matching.Internship), args.Error(1)
}

type MockApplications struct {
	mock.Mock
}

func (m *MockApplications) ListByUser(ctx context.Context, userID string) ([]models.Application, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Application), args.Error(1)
}

func createTestHandler(t *testing.T) (*Handler, *MockProfiles, *MockInternships, *MockApplications) {
	p, i, a := &MockProfiles{}, &MockInternships{}, &MockApplications{}
	cfg := &Config{Timeout: 5 * time.Second, ScanLimit: 50, MinDemand: 3}
	return NewHandler(cfg, p, i, a, logger.NewTestLogger(t)), p, i, a
}

func webProfile() *matching.UserProfile {
	return &matching.UserProfile{Skills: []string{"React", "JavaScript", "HTML"}}
}

// demandSample lists Docker four times, TypeScript three times and Rust once.
func demandSample() []*matching.Internship {
	var out []*matching.Internship
	for i := 0; i < 4; i++ {
		reqs := []string{"Docker", "React"}
		if i < 3 {
			reqs = append(reqs, "TypeScript")
		}
		if i == 0 {
			reqs = append(reqs, "Rust")
		}
		out = append(out, &matching.Internship{ID: fmt.Sprintf("s-%d", i), Requirements: reqs})
	}
	return out
}

func TestHandler_Execute(t *testing.T) {
	h, profiles, internships, applications := createTestHandler(t)
	now := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	profiles.On("GetProfile", mock.Anything, "user-1").Return(webProfile(), nil)
	applications.On("ListByUser", mock.Anything, "user-1").Return([]models.Application{
		{ID: "a-2", InternshipID: "i-good", Status: models.ApplicationStatusInterviewing, AppliedAt: now},
		{ID: "a-1", InternshipID: "i-gone", Status: models.ApplicationStatusApplied, AppliedAt: now.Add(-48 * time.Hour)},
		{ID: "a-0", InternshipID: "i-poor", Status: models.ApplicationStatusRejected, AppliedAt: now.Add(-96 * time.Hour)},
	}, nil)
	internships.On("GetInternships", mock.Anything, []string{"i-good", "i-gone", "i-poor"}).Return([]*matching.Internship{
		{ID: "i-good", Title: "Frontend Intern", Company: "Acme", Requirements: []string{"React", "JavaScript"}},
		nil,
		{ID: "i-poor", Title: "Embedded Intern", Company: "Chips", Requirements: []string{"Verilog", "VHDL"}},
	}, nil)
	internships.On("ListRequirements", mock.Anything, 50).Return(demandSample(), nil)

	out, err := h.Execute(context.Background(), &Input{UserID: "user-1"})
	require.NoError(t, err)

	assert.Equal(t, ProfileInsights{Skills: []string{"React", "JavaScript", "HTML"}, SkillsCount: 3}, out.Profile)

	require.Len(t, out.Applications.History, 2)
	assert.Equal(t, "i-good", out.Applications.History[0].InternshipID)
	assert.Equal(t, "interviewing", out.Applications.History[0].Status)
	assert.Equal(t, 100, out.Applications.History[0].SkillsMatch)
	assert.Equal(t, "i-poor", out.Applications.History[1].InternshipID)
	assert.Equal(t, 2, out.Applications.Total)

	good := out.Applications.History[0].MatchScore
	poor := out.Applications.History[1].MatchScore
	assert.Greater(t, good, poor)
	wantAvg := matching.SummarizeApplications([]matching.ApplicationMatch{{MatchScore: good}, {MatchScore: poor}}).AverageMatchScore
	assert.Equal(t, wantAvg, out.Applications.AverageMatchScore)

	assert.Equal(t, []matching.SkillDemand{
		{Skill: "Docker", Demand: 4, Priority: "low"},
		{Skill: "Typescript", Demand: 3, Priority: "low"},
	}, out.Recommendations.SkillGaps)

	require.NotEmpty(t, out.Recommendations.SuggestedSkills)
	assert.Equal(t, "WEB DEVELOPMENT", out.Recommendations.SuggestedSkills[0].Cluster)
}

func TestHandler_Execute_NoApplications(t *testing.T) {
	h, profiles, internships, applications := createTestHandler(t)
	profiles.On("GetProfile", mock.Anything, "user-1").Return(&matching.UserProfile{}, nil)
	applications.On("ListByUser", mock.Anything, "user-1").Return([]models.Application{}, nil)
	internships.On("ListRequirements", mock.Anything, 50).Return([]*matching.Internship{}, nil)

	out, err := h.Execute(context.Background(), &Input{UserID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, []string{}, out.Profile.Skills)
	assert.Equal(t, 0, out.Applications.Total)
	assert.Equal(t, 0, out.Applications.AverageMatchScore)
	assert.Empty(t, out.Applications.History)
	assert.Empty(t, out.Recommendations.SkillGaps)
	assert.Empty(t, out.Recommendations.SuggestedSkills)

	internships.AssertNotCalled(t, "GetInternships", mock.Anything, mock.Anything)
}

func TestHandler_Execute_DemandSampleFailureDegrades(t *testing.T) {
	h, profiles, internships, applications := createTestHandler(t)
	profiles.On("GetProfile", mock.Anything, "user-1").Return(webProfile(), nil)
	applications.On("ListByUser", mock.Anything, "user-1").Return([]models.Application{}, nil)
	internships.On("ListRequirements", mock.Anything, 50).Return(nil, errors.New("connection reset"))

	out, err := h.Execute(context.Background(), &Input{UserID: "user-1"})
	require.NoError(t, err)
	assert.NotNil(t, out.Recommendations.SkillGaps)
	assert.Empty(t, out.Recommendations.SkillGaps)
}

func TestHandler_Execute_Errors(t *testing.T) {
	t.Run("profile not found", func(t *testing.T) {
		h, profiles, _, _ := createTestHandler(t)
		profiles.On("GetProfile", mock.Anything, "ghost").Return(nil, store.ErrProfileNotFound)

		_, err := h.Execute(context.Background(), &Input{UserID: "ghost"})
		assert.Equal(t, commonerrors.ErrCodeProfileNotFound, commonerrors.CodeOf(err))
	})

	t.Run("applications query fails", func(t *testing.T) {
		h, profiles, _, applications := createTestHandler(t)
		profiles.On("GetProfile", mock.Anything, "user-1").Return(webProfile(), nil)
		applications.On("ListByUser", mock.Anything, "user-1").Return(nil, errors.New("connection reset"))

		_, err := h.Execute(context.Background(), &Input{UserID: "user-1"})
		assert.Equal(t, commonerrors.ErrCodeQueryExecutionFailed, commonerrors.CodeOf(err))
	})

	t.Run("missing user id", func(t *testing.T) {
		h, _, _, _ := createTestHandler(t)
		_, err := h.Execute(context.Background(), &Input{})
		assert.Equal(t, commonerrors.ErrCodeInvalidInput, commonerrors.CodeOf(err))
	})
}
