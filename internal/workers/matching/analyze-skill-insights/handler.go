// internal/workers/matching/analyze-skill-insights/handler.go
package analyzeskillinsights

import (
	"context"

	"internship-workers/internal/common/camunda"
	"internship-workers/internal/common/errors"
	"internship-workers/internal/common/logger"
	"internship-workers/internal/matching"
	"internship-workers/internal/models"
	"internship-workers/internal/workers/matching/lookup"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "analyze-skill-insights"
)

type InternshipSource interface {
	GetInternships(ctx context.Context, ids []string) ([]*matching.Internship, error)
	ListRequirements(ctx context.Context, limit int) ([]*matching.Internship, error)
}

type ApplicationSource interface {
	ListByUser(ctx context.Context, userID string) ([]models.Application, error)
}

type Handler struct {
	config       *Config
	profiles     lookup.ProfileSource
	internships  InternshipSource
	applications ApplicationSource
	runner       *camunda.JobRunner
	logger       logger.Logger
}

func NewHandler(config *Config, profiles lookup.ProfileSource, internships InternshipSource, applications ApplicationSource, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		profiles:     profiles,
		internships:  internships,
		applications: applications,
		runner:       camunda.NewJobRunner(TaskType, config.Timeout, log),
		logger:       log,
	}
}

func (h *Handler) Runner() *camunda.JobRunner {
	return h.runner
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":             job.Key,
		"processInstanceKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := h.runner.Decode(job, &input); err != nil {
		h.runner.Fail(client, job, err)
		return
	}

	h.runner.Run(client, job, func(ctx context.Context) (interface{}, error) {
		return h.Execute(ctx, &input)
	})
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input.UserID == "" {
		return nil, errors.NewInvalidInputError("userId is required")
	}

	profile, err := lookup.Profile(ctx, h.profiles, input.UserID, nil)
	if err != nil {
		return nil, err
	}
	skills := profile.Skills
	if skills == nil {
		skills = []string{}
	}

	history, err := h.history(ctx, input.UserID, profile)
	if err != nil {
		return nil, err
	}

	scores := make([]matching.ApplicationMatch, len(history))
	for i, e := range history {
		scores[i] = matching.ApplicationMatch{InternshipID: e.InternshipID, MatchScore: e.MatchScore}
	}

	return &Output{
		Profile: ProfileInsights{
			Skills:      skills,
			SkillsCount: len(skills),
		},
		Applications: ApplicationInsights{
			ApplicationSummary: matching.SummarizeApplications(scores),
			History:            history,
		},
		Recommendations: SkillAdvice{
			SkillGaps:       h.skillGaps(ctx, input.UserID, skills),
			SuggestedSkills: matching.SuggestSkills(skills),
		},
	}, nil
}

// history rescores every application whose internship still exists. The
// order follows the store: most recent first.
func (h *Handler) history(ctx context.Context, userID string, profile *matching.UserProfile) ([]ApplicationEntry, error) {
	apps, err := h.applications.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.FromQueryError("user_applications", err)
	}
	if len(apps) == 0 {
		return []ApplicationEntry{}, nil
	}

	ids := make([]string, len(apps))
	for i, a := range apps {
		ids[i] = a.InternshipID
	}
	internships, err := h.internships.GetInternships(ctx, ids)
	if err != nil {
		return nil, errors.FromQueryError("application_internships", err)
	}

	entries := make([]ApplicationEntry, 0, len(apps))
	for i, a := range apps {
		in := internships[i]
		if in == nil {
			h.logger.Debug("skipping application without internship", map[string]interface{}{
				"applicationId": a.ID,
				"internshipId":  a.InternshipID,
			})
			continue
		}
		result := matching.MatchOne(profile, in)
		entries = append(entries, ApplicationEntry{
			InternshipID: a.InternshipID,
			Title:        in.Title,
			Company:      in.Company,
			AppliedAt:    a.AppliedAt,
			Status:       string(a.Status),
			MatchScore:   result.OverallScore,
			SkillsMatch:  result.Breakdown.SkillsScore,
		})
	}
	return entries, nil
}

// skillGaps degrades to an empty list when the catalog sample is unavailable.
func (h *Handler) skillGaps(ctx context.Context, userID string, skills []string) []matching.SkillDemand {
	sample, err := h.internships.ListRequirements(ctx, h.config.ScanLimit)
	if err != nil {
		h.logger.Warn("skill demand unavailable", map[string]interface{}{
			"userId": userID,
			"error":  err.Error(),
		})
		return []matching.SkillDemand{}
	}
	return matching.SkillDemandGaps(skills, sample, h.config.MinDemand, matching.DefaultMaxGaps)
}
