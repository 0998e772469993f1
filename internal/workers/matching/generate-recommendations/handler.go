// internal/workers/matching/generate-recommendations/handler.go
package generaterecommendations

import (
	"context"
	"time"

	"internship-workers/internal/common/camunda"
	"internship-workers/internal/common/errors"
	"internship-workers/internal/common/logger"
	"internship-workers/internal/common/metrics"
	"internship-workers/internal/matching"
	"internship-workers/internal/workers/matching/lookup"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"golang.org/x/sync/errgroup"
)

const (
	TaskType = "generate-recommendations"
)

type CatalogSource interface {
	ListActive(ctx context.Context, limit int, excludeIDs []string) ([]*matching.Internship, error)
}

type AppliedSource interface {
	AppliedInternshipIDs(ctx context.Context, userID string) ([]string, error)
}

type Handler struct {
	config       *Config
	profiles     lookup.ProfileSource
	catalog      CatalogSource
	applications AppliedSource
	ranker       *matching.Ranker
	runner       *camunda.JobRunner
	logger       logger.Logger
	now          func() time.Time
}

func NewHandler(config *Config, profiles lookup.ProfileSource, catalog CatalogSource, applications AppliedSource, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		profiles:     profiles,
		catalog:      catalog,
		applications: applications,
		ranker:       matching.NewRanker(config.Parallelism),
		runner:       camunda.NewJobRunner(TaskType, config.Timeout, log),
		logger:       log,
		now:          time.Now,
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

	limit := h.config.DefaultLimit
	if input.Limit != nil {
		limit = *input.Limit
	}

	// profile and applied ids are independent lookups
	var (
		profile *matching.UserProfile
		applied []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profile, err = lookup.Profile(gctx, h.profiles, input.UserID, input.UserProfile)
		return err
	})
	if !input.IncludeApplied {
		g.Go(func() error {
			var err error
			applied, err = h.applications.AppliedInternshipIDs(gctx, input.UserID)
			if err != nil {
				return errors.FromQueryError("applied_internships", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(profile.Skills) == 0 {
		return nil, errors.NewSkillsRequiredError(input.UserID)
	}

	catalog, err := h.catalog.ListActive(ctx, h.config.CatalogScanLimit, applied)
	if err != nil {
		return nil, errors.FromQueryError("active_internships", err)
	}

	recs := h.ranker.Recommend(profile, catalog, limit)
	metrics.RecommendationsReturned.Observe(float64(len(recs)))
	for _, r := range recs {
		metrics.ObserveMatchScore(TaskType, r.Match.OverallScore)
	}

	h.logger.Info("recommendations generated", map[string]interface{}{
		"userId":     input.UserID,
		"candidates": len(catalog),
		"returned":   len(recs),
	})

	return &Output{
		Recommendations: recs,
		UserProfile: ProfileEcho{
			Skills:      profile.Skills,
			Preferences: profile.Preferences,
		},
		Metadata: Metadata{
			TotalInternships: len(catalog),
			AlgorithmVersion: matching.AlgorithmVersion,
			GeneratedAt:      h.now().UTC().Format(time.RFC3339),
		},
	}, nil
}
