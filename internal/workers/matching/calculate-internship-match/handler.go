// internal/workers/matching/calculate-internship-match/handler.go
package calculateinternshipmatch

import (
	"context"

	"internship-workers/internal/common/camunda"
	"internship-workers/internal/common/logger"
	"internship-workers/internal/common/metrics"
	"internship-workers/internal/matching"
	"internship-workers/internal/workers/matching/lookup"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "calculate-internship-match"
)

type Handler struct {
	config      *Config
	profiles    lookup.ProfileSource
	internships lookup.InternshipSource
	runner      *camunda.JobRunner
	logger      logger.Logger
}

func NewHandler(config *Config, profiles lookup.ProfileSource, internships lookup.InternshipSource, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:      config,
		profiles:    profiles,
		internships: internships,
		runner:      camunda.NewJobRunner(TaskType, config.Timeout, log),
		logger:      log,
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
	profile, err := lookup.Profile(ctx, h.profiles, input.UserID, input.UserProfile)
	if err != nil {
		return nil, err
	}
	internship, err := lookup.Internship(ctx, h.internships, input.InternshipID, input.Internship)
	if err != nil {
		return nil, err
	}

	result := matching.MatchOne(profile, internship)
	metrics.ObserveMatchScore(TaskType, result.OverallScore)

	h.logger.Info("match calculated", map[string]interface{}{
		"userId":       input.UserID,
		"internshipId": internship.ID,
		"score":        result.OverallScore,
	})

	skills := profile.Skills
	if skills == nil {
		skills = []string{}
	}
	return &Output{
		Match: result,
		Internship: InternshipRef{
			ID:      internship.ID,
			Title:   internship.Title,
			Company: internship.Company,
		},
		User: UserRef{Skills: skills},
	}, nil
}
