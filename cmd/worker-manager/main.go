// cmd/worker-manager/main.go
package main

import (
	"context"
	stderrors "errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"internship-workers/internal/common/aws"
	"internship-workers/internal/common/camunda"
	"internship-workers/internal/common/config"
	"internship-workers/internal/common/database"
	"internship-workers/internal/common/logger"
	"internship-workers/internal/common/observability"
	"internship-workers/internal/common/validation"
	"internship-workers/internal/store"
	"internship-workers/pkg/registry"

	si "internship-workers/internal/workers/catalog/search-internships"
	ask "internship-workers/internal/workers/matching/analyze-skill-insights"
	bmi "internship-workers/internal/workers/matching/bulk-match-internships"
	cim "internship-workers/internal/workers/matching/calculate-internship-match"
	gr "internship-workers/internal/workers/matching/generate-recommendations"
	ups "internship-workers/internal/workers/matching/update-profile-skills"
	car "internship-workers/internal/workers/tracker/create-application-record"
	sr "internship-workers/internal/workers/tracker/send-reminder"
)

// jobHandler is what every worker package exposes to the manager.
type jobHandler interface {
	Handle(client worker.JobClient, job entities.Job)
	Runner() *camunda.JobRunner
}

type backends struct {
	pg    *database.PostgresClient
	redis *database.RedisClient
	es    *database.ElasticsearchClient
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", "console")
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("starting worker manager",
		zap.String("app", cfg.App.Name),
		zap.String("environment", cfg.App.Environment),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		zapLog.Fatal("observability init failed", zap.Error(err))
	}
	if cfg.Tracing.Enabled {
		if err := obs.EnableTracing(cfg.App.Name, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio); err != nil {
			zapLog.Fatal("tracing init failed", zap.Error(err))
		}
		zapLog.Info("tracing enabled", zap.String("endpoint", cfg.Tracing.Endpoint))
	}

	reg, err := registry.LoadRegistry(cfg.Registry.Path)
	if err != nil {
		zapLog.Fatal("activity registry load failed", zap.String("path", cfg.Registry.Path), zap.Error(err))
	}
	validator, err := validation.NewValidator(reg)
	if err != nil {
		zapLog.Fatal("input schemas failed to compile", zap.Error(err))
	}
	applyRegistryDefaults(cfg, reg)

	be, err := connectBackends(ctx, cfg, zapLog)
	if err != nil {
		zapLog.Fatal("backend connection failed", zap.Error(err))
	}
	defer be.close(zapLog)

	var zeebeClient zbc.Client
	err = camunda.Retry(ctx, camunda.DefaultRetryConfig, "zeebe client", func(ctx context.Context) error {
		var err error
		zeebeClient, err = camunda.NewClient(ctx, camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
		})
		return err
	}, retryLogger(zapLog, "zeebe client"))
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("zeebe client connected", zap.String("gateway", cfg.Camunda.BrokerAddress))

	handlers, err := buildHandlers(ctx, cfg, be, log)
	if err != nil {
		zapLog.Fatal("worker setup failed", zap.Error(err))
	}

	var workers []worker.JobWorker
	for taskType, h := range handlers {
		if !validator.Has(taskType) {
			log.Warn("no input schema registered, variables are not validated", map[string]interface{}{"taskType": taskType})
		}
		h.Runner().WithValidator(validator).WithRecorder(obs)
		if w := camunda.StartWorker(zeebeClient, taskType, config.GetWorkerConfig(cfg, taskType), h.Handle, log); w != nil {
			workers = append(workers, w)
		}
	}
	zapLog.Info("workers registered", zap.Int("count", len(workers)))

	srv := &http.Server{
		Addr:              cfg.Metrics.Address,
		Handler:           healthMux(be),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("health/metrics server listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			zapLog.Error("health/metrics server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLog.Info("shutdown signal received, stopping workers")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Close()
		w.AwaitClose()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("health/metrics server shutdown", zap.Error(err))
	}
	if err := zeebeClient.Close(); err != nil {
		zapLog.Error("error closing zeebe client", zap.Error(err))
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("observability shutdown", zap.Error(err))
	}
	zapLog.Info("worker manager stopped")
}

// applyRegistryDefaults gives activities missing from the workers section
// the timeout and retries declared in the registry.
func applyRegistryDefaults(cfg *config.Config, reg *registry.ActivityRegistry) {
	if cfg.Workers == nil {
		cfg.Workers = map[string]config.WorkerConfig{}
	}
	for _, a := range reg.Activities {
		if _, ok := cfg.Workers[a.TaskType]; ok {
			continue
		}
		wcfg := config.GetWorkerConfig(cfg, a.TaskType)
		if d, ok := a.TimeoutDuration(); ok {
			wcfg.Timeout = int(d.Milliseconds())
		}
		if a.Retries > 0 {
			wcfg.MaxRetries = a.Retries
		}
		cfg.Workers[a.TaskType] = wcfg
	}
}

func retryLogger(log *zap.Logger, name string) func(int, time.Duration, error) {
	return func(attempt int, delay time.Duration, err error) {
		log.Warn(name+" failed, retrying",
			zap.Error(err),
			zap.Int("attempt", attempt),
			zap.Duration("nextRetryIn", delay),
		)
	}
}

func connectBackends(ctx context.Context, cfg *config.Config, log *zap.Logger) (*backends, error) {
	be := &backends{}
	retry := camunda.RetryConfig{MaxAttempts: 15, BaseDelay: 2 * time.Second, MaxDelay: 30 * time.Second}

	err := camunda.Retry(ctx, retry, "postgres", func(ctx context.Context) error {
		pg, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		if err := pg.Ping(ctx); err != nil {
			pg.Close()
			return err
		}
		be.pg = pg
		return nil
	}, retryLogger(log, "postgres"))
	if err != nil {
		return nil, err
	}
	log.Info("postgres connected")

	be.redis = database.NewRedis(cfg.Database.Redis)
	if err := be.redis.Ping(ctx); err != nil {
		// the profile cache is optional; lookups fall through to postgres
		log.Warn("redis unavailable, profile cache disabled", zap.Error(err))
		be.redis.Close()
		be.redis = nil
	}

	es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
	if err != nil {
		be.close(log)
		return nil, err
	}
	if err := es.Ping(ctx); err != nil {
		log.Warn("elasticsearch ping failed, search jobs will fail until it recovers", zap.Error(err))
	}
	be.es = es

	return be, nil
}

func (b *backends) close(log *zap.Logger) {
	if b.pg != nil {
		if err := b.pg.Close(); err != nil {
			log.Error("closing postgres", zap.Error(err))
		}
	}
	if b.redis != nil {
		if err := b.redis.Close(); err != nil {
			log.Error("closing redis", zap.Error(err))
		}
	}
}

func buildHandlers(ctx context.Context, cfg *config.Config, be *backends, log logger.Logger) (map[string]jobHandler, error) {
	var rdb *redis.Client
	if be.redis != nil {
		rdb = be.redis.Client
	}
	profiles := store.NewProfileStore(be.pg.DB, rdb, config.GetDuration(cfg.Matching.ProfileCacheTTL), log)
	internships := store.NewInternshipStore(be.pg.DB, log)
	applications := store.NewApplicationStore(be.pg.DB)
	reminders := store.NewReminderStore(be.pg.DB)

	handlers := map[string]jobHandler{
		cim.TaskType: cim.NewHandler(cim.LoadConfig(cfg), profiles, internships, log),
		bmi.TaskType: bmi.NewHandler(bmi.LoadConfig(cfg), profiles, internships, log),
		gr.TaskType:  gr.NewHandler(gr.LoadConfig(cfg), profiles, internships, applications, log),
		ask.TaskType: ask.NewHandler(ask.LoadConfig(cfg), profiles, internships, applications, log),
		ups.TaskType: ups.NewHandler(ups.LoadConfig(cfg), profiles, internships, log),
		si.TaskType:  si.NewHandler(si.LoadConfig(cfg), be.es.Client, log),
		car.TaskType: car.NewHandler(car.LoadConfig(cfg), profiles, internships, applications, log),
	}

	switch {
	case !config.IsWorkerEnabled(cfg, sr.TaskType):
		// no AWS clients for a disabled worker
	case cfg.Notifications.AnyEnabled():
		awsCfg, err := aws.LoadConfig(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			return nil, err
		}
		var (
			mailer sr.EmailSender
			texter sr.SMSSender
		)
		if cfg.Notifications.Email.Enabled {
			mailer = aws.NewMailer(awsCfg, cfg.Notifications.Email.FromEmail)
		}
		if cfg.Notifications.SMS.Enabled {
			texter = aws.NewTexter(awsCfg)
		}
		handlers[sr.TaskType] = sr.NewHandler(sr.LoadConfig(cfg), reminders, profiles, mailer, texter, log)
	default:
		log.Warn("notifications disabled, send-reminder worker not registered", nil)
	}

	return handlers, nil
}
