// internal/workers/tracker/create-application-record/handler.go
package createapplicationrecord

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"internship-workers/internal/common/camunda"
	"internship-workers/internal/common/errors"
	"internship-workers/internal/common/logger"
	"internship-workers/internal/common/metrics"
	"internship-workers/internal/matching"
	"internship-workers/internal/models"
	"internship-workers/internal/store"
	"internship-workers/internal/workers/matching/lookup"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "create-application-record"
)

type ApplicationWriter interface {
	Exists(ctx context.Context, userID, internshipID string) (bool, error)
	Create(ctx context.Context, app *models.Application) error
}

type Handler struct {
	config       *Config
	profiles     lookup.ProfileSource
	internships  lookup.InternshipSource
	applications ApplicationWriter
	runner       *camunda.JobRunner
	logger       logger.Logger
	now          func() time.Time
	newID        func() string
}

func NewHandler(config *Config, profiles lookup.ProfileSource, internships lookup.InternshipSource, applications ApplicationWriter, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		profiles:     profiles,
		internships:  internships,
		applications: applications,
		runner:       camunda.NewJobRunner(TaskType, config.Timeout, log),
		logger:       log,
		now:          time.Now,
		newID:        func() string { return uuid.New().String() },
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
	if input.UserID == "" || input.InternshipID == "" {
		return nil, errors.NewInvalidInputError("userId and internshipId are required")
	}
	status := models.ApplicationStatusApplied
	if input.Status != "" {
		status = models.ApplicationStatus(input.Status)
	}
	if !status.Valid() {
		return nil, errors.NewInvalidInputError(fmt.Sprintf("unknown application status %q", input.Status))
	}

	internship, err := lookup.Internship(ctx, h.internships, input.InternshipID, nil)
	if err != nil {
		return nil, err
	}
	if internship.Status != store.StatusActive {
		return nil, errors.NewInternshipNotActiveError(input.InternshipID, internship.Status)
	}

	exists, err := h.applications.Exists(ctx, input.UserID, input.InternshipID)
	if err != nil {
		return nil, errors.FromQueryError("application_exists", err)
	}
	if exists {
		return nil, errors.NewDuplicateApplicationError(input.UserID, input.InternshipID)
	}

	app := &models.Application{
		ID:           h.newID(),
		UserID:       input.UserID,
		InternshipID: input.InternshipID,
		Status:       status,
		Notes:        input.Notes,
		CoverLetter:  input.CoverLetter,
		MatchScore:   h.snapshotScore(ctx, input.UserID, internship),
		AppliedAt:    h.now().UTC(),
	}

	if err := h.applications.Create(ctx, app); err != nil {
		// the unique index catches a concurrent insert the Exists check missed
		if stderrors.Is(err, store.ErrDuplicateApplication) {
			return nil, errors.NewDuplicateApplicationError(input.UserID, input.InternshipID)
		}
		if stderrors.Is(err, context.DeadlineExceeded) {
			return nil, errors.NewQueryTimeoutError("application_insert")
		}
		return nil, errors.NewDatabaseInsertFailedError(err)
	}

	h.logger.Info("application record created", map[string]interface{}{
		"applicationId": app.ID,
		"userId":        app.UserID,
		"internshipId":  app.InternshipID,
		"status":        string(app.Status),
	})

	return &Output{
		ApplicationID: app.ID,
		Status:        string(app.Status),
		MatchScore:    app.MatchScore,
		CreatedAt:     app.AppliedAt.Format(time.RFC3339),
	}, nil
}

// snapshotScore is best effort: an application is still recorded when the
// profile cannot be read.
func (h *Handler) snapshotScore(ctx context.Context, userID string, in *matching.Internship) *int {
	profile, err := h.profiles.GetProfile(ctx, userID)
	if err != nil {
		h.logger.Warn("match score snapshot skipped", map[string]interface{}{
			"userId": userID,
			"error":  err.Error(),
		})
		return nil
	}
	score := matching.MatchOne(profile, in).OverallScore
	metrics.ObserveMatchScore(TaskType, score)
	return &score
}
