// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"internship-workers/internal/common/config"
	"internship-workers/internal/common/errors"
	"internship-workers/internal/common/logger"
	"internship-workers/internal/common/metrics"
	"internship-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "internship-workers/camunda"

// commandTimeout bounds complete/fail/throw commands. They never share the
// job's deadline, which may already have passed.
const commandTimeout = 10 * time.Second

// Recorder receives job outcomes; *observability.Observability implements it.
type Recorder interface {
	RecordJob(ctx context.Context, taskType, status string, d time.Duration)
}

// JobRunner runs a job body under a deadline and reports the result back to
// the broker: variables on success, ErrorHandler on failure.
type JobRunner struct {
	taskType   string
	timeout    time.Duration
	logger     logger.Logger
	errHandler *errors.ErrorHandler
	recorder   Recorder
	validator  *validation.Validator
}

func NewJobRunner(taskType string, timeout time.Duration, log logger.Logger) *JobRunner {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &JobRunner{
		taskType:   taskType,
		timeout:    timeout,
		logger:     log,
		errHandler: errors.NewErrorHandler(log),
	}
}

// WithRecorder attaches a recorder. A nil interface is skipped; a typed nil
// such as (*observability.Observability)(nil) is still called and must be
// safe on a nil receiver.
func (r *JobRunner) WithRecorder(rec Recorder) *JobRunner {
	r.recorder = rec
	return r
}

// WithValidator makes Decode check variables against the task's input schema.
func (r *JobRunner) WithValidator(v *validation.Validator) *JobRunner {
	r.validator = v
	return r
}

// Decode validates the job variables and unmarshals them into v.
func (r *JobRunner) Decode(job entities.Job, v interface{}) error {
	raw := []byte(job.Variables)
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	if err := r.validator.Validate(r.taskType, raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errors.NewInvalidInputError(fmt.Sprintf("parse variables: %v", err))
	}
	return nil
}

func (r *JobRunner) Run(client worker.JobClient, job entities.Job, body func(ctx context.Context) (interface{}, error)) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	output, err := r.Execute(ctx, func(ctx context.Context) (interface{}, error) {
		trace.SpanFromContext(ctx).SetAttributes(
			attribute.Int64("job.key", job.Key),
			attribute.Int64("process.instance.key", job.ProcessInstanceKey),
			attribute.Int("job.retries", int(job.Retries)),
		)
		return body(ctx)
	})
	cmdCtx, cmdCancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cmdCancel()
	if err != nil {
		r.errHandler.HandleJobError(cmdCtx, client, job, err)
		return
	}
	r.complete(cmdCtx, client, job, output)
}

// Execute runs body inside a span and records metrics without talking to
// the broker.
func (r *JobRunner) Execute(ctx context.Context, body func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, r.taskType,
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(attribute.String("task.type", r.taskType)),
	)
	defer span.End()

	start := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(r.taskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(r.taskType).Dec()

	output, err := body(ctx)
	elapsed := time.Since(start)
	metrics.WorkerJobDuration.WithLabelValues(r.taskType).Observe(elapsed.Seconds())

	status := "completed"
	if err != nil {
		status = "failed"
		code := string(errors.CodeOf(errors.FromInvalidInput(err)))
		metrics.WorkerJobsFailed.WithLabelValues(r.taskType, code).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, code)
	} else {
		metrics.WorkerJobsCompleted.WithLabelValues(r.taskType).Inc()
	}
	if r.recorder != nil {
		r.recorder.RecordJob(ctx, r.taskType, status, elapsed)
	}
	return output, err
}

// Fail routes an error that happened before the body could run, such as
// a parse or schema failure.
func (r *JobRunner) Fail(client worker.JobClient, job entities.Job, err error) {
	metrics.WorkerJobsFailed.WithLabelValues(r.taskType, string(errors.CodeOf(errors.FromInvalidInput(err)))).Inc()
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	r.errHandler.HandleJobError(ctx, client, job, err)
}

func (r *JobRunner) complete(ctx context.Context, client worker.JobClient, job entities.Job, output interface{}) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		r.logger.Error("failed to create complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		r.errHandler.HandleJobError(ctx, client, job, errors.NewInternalError(err))
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		r.logger.Error("failed to send complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
	}
}

// StartWorker opens a job worker for taskType unless it is disabled.
func StartWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handler worker.JobHandler, log logger.Logger) worker.JobWorker {
	if !wcfg.Enabled {
		log.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return nil
	}

	w := client.NewJobWorker().
		JobType(taskType).
		Handler(handler).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Open()

	log.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeoutMs":     wcfg.Timeout,
	})
	return w
}
