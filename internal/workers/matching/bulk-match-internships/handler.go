// internal/workers/matching/bulk-match-internships/handler.go
package bulkmatchinternships

import (
	"context"

	"internship-workers/internal/common/camunda"
	"internship-workers/internal/common/errors"
	"internship-workers/internal/common/logger"
	"internship-workers/internal/common/metrics"
	"internship-workers/internal/matching"
	"internship-workers/internal/workers/matching/lookup"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "bulk-match-internships"
)

type InternshipBatchSource interface {
	GetInternships(ctx context.Context, ids []string) ([]*matching.Internship, error)
}

type Handler struct {
	config      *Config
	profiles    lookup.ProfileSource
	internships InternshipBatchSource
	ranker      *matching.Ranker
	runner      *camunda.JobRunner
	logger      logger.Logger
}

func NewHandler(config *Config, profiles lookup.ProfileSource, internships InternshipBatchSource, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:      config,
		profiles:    profiles,
		internships: internships,
		ranker:      matching.NewRanker(config.Parallelism),
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
	if len(input.InternshipIDs) == 0 {
		return nil, errors.NewInvalidInputError("internshipIds must be a non-empty array")
	}
	if len(input.InternshipIDs) > h.config.MaxItems {
		return nil, errors.NewBulkLimitExceededError(len(input.InternshipIDs), h.config.MaxItems)
	}

	profile, err := lookup.Profile(ctx, h.profiles, input.UserID, input.UserProfile)
	if err != nil {
		return nil, err
	}

	internships, err := h.internships.GetInternships(ctx, input.InternshipIDs)
	if err != nil {
		return nil, errors.FromQueryError("internships_bulk", err)
	}

	matches := h.ranker.MatchBulk(profile, internships)
	for _, m := range matches {
		metrics.ObserveMatchScore(TaskType, m.OverallScore)
	}

	if skipped := len(input.InternshipIDs) - len(matches); skipped > 0 {
		h.logger.Warn("some internships could not be loaded", map[string]interface{}{
			"userId":  input.UserID,
			"skipped": skipped,
		})
	}

	return &Output{
		Matches: matches,
		Metadata: Metadata{
			Requested:        len(input.InternshipIDs),
			Processed:        len(matches),
			AlgorithmVersion: matching.AlgorithmVersion,
		},
	}, nil
}
