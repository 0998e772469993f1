// internal/workers/catalog/search-internships/handler.go
package searchinternships

import (
	"context"
	stderrors "errors"

	"internship-workers/internal/common/camunda"
	"internship-workers/internal/common/errors"
	"internship-workers/internal/common/logger"
	"internship-workers/internal/matching"
	"internship-workers/internal/workers/catalog/search-internships/queries"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/elastic/go-elasticsearch/v8"
)

const (
	TaskType = "search-internships"
)

type Handler struct {
	config *Config
	client *elasticsearch.Client
	runner *camunda.JobRunner
	logger logger.Logger
}

func NewHandler(config *Config, client *elasticsearch.Client, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		client: client,
		runner: camunda.NewJobRunner(TaskType, config.Timeout, log),
		logger: log,
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
	params := queries.SearchParams{
		Query:    input.Query,
		Company:  input.Company,
		Type:     input.Type,
		Location: input.Location,
		Tags:     input.Tags,
		From:     input.Pagination.From,
		Size:     input.Pagination.Size,
	}.Normalize(h.config.MaxSize)

	res, err := queries.Search(ctx, h.client, h.config.Index, params)
	if err != nil {
		return nil, h.mapError(ctx, err)
	}

	out := &Output{
		Internships: make([]Result, 0, len(res.Hits)),
		TotalHits:   res.TotalHits,
		MaxScore:    res.MaxScore,
		Took:        res.Took,
	}
	for _, hit := range res.Hits {
		if hit.Internship == nil {
			h.logger.Warn("skipping undecodable search hit", map[string]interface{}{"docId": hit.ID})
			continue
		}
		out.Internships = append(out.Internships, Result{
			InternshipSummary: matching.Summarize(hit.Internship),
			Score:             hit.Score,
		})
	}

	h.logger.Info("search completed", map[string]interface{}{
		"query":     input.Query,
		"totalHits": res.TotalHits,
		"returned":  len(out.Internships),
	})
	return out, nil
}

func (h *Handler) mapError(ctx context.Context, err error) error {
	switch {
	case stderrors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded:
		return errors.NewSearchTimeoutError(TaskType)
	case stderrors.Is(err, queries.ErrIndexNotFound), stderrors.Is(err, queries.ErrMissingIndex):
		return errors.NewIndexNotFoundError(h.config.Index)
	default:
		return errors.NewSearchQueryFailedError(TaskType, err)
	}
}
