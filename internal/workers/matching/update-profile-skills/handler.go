package updateprofileskills

import (
	"context"
	stderrors "errors"

	"internship-workers/internal/common/camunda"
	"internship-workers/internal/common/errors"
	"internship-workers/internal/common/logger"
	"internship-workers/internal/common/metrics"
	"internship-workers/internal/matching"
	"internship-workers/internal/store"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "update-profile-skills"
)

// ProfileWriter updates a stored profile and its cached copy.
type ProfileWriter interface {
	UpdateProfile(ctx context.Context, userID string, u store.ProfileUpdate) error
	InvalidateProfile(ctx context.Context, userID string) error
	GetProfile(ctx context.Context, userID string) (*matching.UserProfile, error)
}

type CatalogSource interface {
	ListActive(ctx context.Context, limit int, excludeIDs []string) ([]*matching.Internship, error)
}

type Handler struct {
	config   *Config
	profiles ProfileWriter
	catalog  CatalogSource
	ranker   *matching.Ranker
	runner   *camunda.JobRunner
	logger   logger.Logger
}

func NewHandler(config *Config, profiles ProfileWriter, catalog CatalogSource, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		profiles: profiles,
		catalog:  catalog,
		ranker:   matching.NewRanker(config.Parallelism),
		runner:   camunda.NewJobRunner(TaskType, config.Timeout, log),
		logger:   log,
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

// Execute stores the new profile, drops the cached copy and ranks a small
// sample of the active catalog against the stored result.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input.UserID == "" {
		return nil, errors.NewInvalidInputError("userId is required")
	}
	if input.Skills == nil {
		return nil, errors.NewInvalidInputError("skills must be an array")
	}

	err := h.profiles.UpdateProfile(ctx, input.UserID, store.ProfileUpdate{
		Skills:      input.Skills,
		Preferences: input.Preferences,
		Interests:   input.Interests,
	})
	if err != nil {
		if stderrors.Is(err, store.ErrProfileNotFound) {
			return nil, errors.NewProfileNotFoundError(input.UserID)
		}
		return nil, errors.FromQueryError("update_profile", err)
	}

	if err := h.profiles.InvalidateProfile(ctx, input.UserID); err != nil {
		return nil, errors.NewCacheUnavailableError(err)
	}

	profile, err := h.profiles.GetProfile(ctx, input.UserID)
	if err != nil {
		if stderrors.Is(err, store.ErrProfileNotFound) {
			return nil, errors.NewProfileNotFoundError(input.UserID)
		}
		return nil, errors.FromQueryError("user_profile", err)
	}

	catalog, err := h.catalog.ListActive(ctx, h.config.CatalogSize, nil)
	if err != nil {
		return nil, errors.FromQueryError("active_internships", err)
	}

	recs := h.ranker.Recommend(profile, catalog, h.config.QuickLimit)
	metrics.RecommendationsReturned.Observe(float64(len(recs)))

	h.logger.Info("profile updated", map[string]interface{}{
		"userId":   input.UserID,
		"skills":   len(profile.Skills),
		"returned": len(recs),
	})

	return &Output{
		Message: "Skills and preferences updated successfully",
		UpdatedProfile: UpdatedProfile{
			Skills:      profile.Skills,
			Preferences: profile.Preferences,
		},
		QuickRecommendations: recs,
	}, nil
}
