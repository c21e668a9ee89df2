package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/getsentry/sentry-go"
	"github.com/jackc/pgx/v5"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"

	"github.com/promptdeck/promptdeck-backend/infra"
	"github.com/promptdeck/promptdeck-backend/jobs"
	"github.com/promptdeck/promptdeck-backend/repositories"
	"github.com/promptdeck/promptdeck-backend/usecases"
	"github.com/promptdeck/promptdeck-backend/usecases/worker_jobs"
	"github.com/promptdeck/promptdeck-backend/utils"
)

func RunTaskQueue() error {
	pgConfig := pgConfigFromEnv()
	common := commonConfigFromEnv()
	workerConfig := struct {
		evaluationWorkers  int
		maintenanceWorkers int
		healthPort          string
	}{
		evaluationWorkers:  utils.GetEnv("EVALUATION_QUEUE_WORKERS", 5),
		maintenanceWorkers: utils.GetEnv("MAINTENANCE_QUEUE_WORKERS", 1),
		healthPort:          utils.GetEnv("WORKER_HEALTH_PORT", ""),
	}

	logger := utils.NewLogger(common.loggingFormat, utils.ParseLogLevel(common.loggingLevel))
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	infra.SetupSentry(common.sentryDsn, common.env, apiVersion)
	defer sentry.Flush(3 * time.Second)

	telemetryRessources, err := infra.InitTelemetry(ctx, telemetryConfigFromEnv(), apiVersion)
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		telemetryRessources = infra.NoopTelemetry()
	}
	defer func() {
		if err := telemetryRessources.Shutdown(context.Background()); err != nil {
			logger.WarnContext(ctx, "error shutting down telemetry", "error", err.Error())
		}
	}()
	ctx = utils.StoreOpenTelemetryTracerInContext(ctx, telemetryRessources.Tracer)

	pool, err := infra.NewPostgresConnectionPool(ctx, pgConfig)
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}
	defer pool.Close()

	// The repositories need a river client to enqueue jobs, and the workers need the
	// repositories: an insert-only client is built first, the working client after.
	insertClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{})
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}

	evaluationConfig := evaluationConfigFromEnv()
	repos := newRepositories(pool, insertClient, stripeConfigFromEnv(), llmConfigFromEnv())
	uc := usecases.NewUsecases(repos,
		usecases.WithApiVersion(apiVersion),
		usecases.WithPlaygroundConfig(playgroundConfigFromEnv()),
		usecases.WithEvaluationConfig(evaluationConfig),
	)

	allowanceResetJob, err := worker_jobs.NewAllowanceResetPeriodicJob(uc.AllowanceResetSchedule())
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, uc.NewEvaluationWorker())
	river.AddWorker(workers, uc.NewAllowanceResetWorker())

	riverClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		FetchPollInterval: 100 * time.Millisecond,
		Queues: map[string]river.QueueConfig{
			repositories.QUEUE_EVALUATIONS: {MaxWorkers: workerConfig.evaluationWorkers},
			repositories.QUEUE_MAINTENANCE: {MaxWorkers: workerConfig.maintenanceWorkers},
		},
		PeriodicJobs: []*river.PeriodicJob{allowanceResetJob},
		RescueStuckJobsAfter: evaluationRescueAfter(evaluationConfig),
		Middleware:           jobs.Middlewares(logger, telemetryRessources.Tracer),
		Workers:              workers,
	})
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}

	if err := riverClient.Start(ctx); err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}
	logger.InfoContext(ctx, "task queue started", "version", apiVersion)

	// Answers the liveness checks of the hosting platform
	if workerConfig.healthPort != "" {
		go func() {
			mux := http.NewServeMux()
			mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte("OK"))
			})
			if err := http.ListenAndServe(":"+workerConfig.healthPort, mux); err != nil {
				utils.LogAndReportSentryError(ctx, err)
			}
		}()
	}

	sigintOrTerm := make(chan os.Signal, 1)
	signal.Notify(sigintOrTerm, syscall.SIGINT, syscall.SIGTERM)

	go cleanStop(ctx, sigintOrTerm, riverClient)

	<-riverClient.Stopped()
	logger.InfoContext(ctx, "River client stopped")

	return nil
}

// Waits for SIGINT/SIGTERM, then gives running jobs a chance to finish. A
// second signal, or the soft stop timeout, cancels the context of every
// running job.
func cleanStop(ctx context.Context, sigintOrTerm chan os.Signal, riverClient *river.Client[pgx.Tx]) {
	logger := utils.LoggerFromContext(ctx)
	<-sigintOrTerm
	logger.InfoContext(ctx, "Received SIGINT/SIGTERM; initiating soft stop (try to wait for jobs to finish)")

	softStopCtx, softStopCtxCancel := context.WithTimeout(ctx, 10*time.Second)
	defer softStopCtxCancel()

	go func() {
		select {
		case <-sigintOrTerm:
			logger.InfoContext(ctx, "Received SIGINT/SIGTERM again; initiating hard stop (cancel everything)")
			softStopCtxCancel()
		case <-softStopCtx.Done():
			logger.InfoContext(ctx, "Soft stop timeout; initiating hard stop (cancel everything)")
		}
	}()

	err := riverClient.Stop(softStopCtx)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
		logger.ErrorContext(ctx, "Soft stop failed", "error", err)
		panic(err)
	}
	if err == nil {
		logger.InfoContext(ctx, "Soft stop succeeded")
		return
	}

	hardStopCtx, hardStopCtxCancel := context.WithTimeout(ctx, 10*time.Second)
	defer hardStopCtxCancel()

	// A job that ignores the cancellation would block the hard stop, the
	// process then exits without waiting for it.
	err = riverClient.StopAndCancel(hardStopCtx)
	if err != nil && errors.Is(err, context.DeadlineExceeded) {
		logger.InfoContext(ctx, "Hard stop timeout; ignoring stop procedure and exiting unsafely")
	} else if err != nil {
		panic(err)
	}
}

// Jobs still running after this window are rescued and retried, so it must
// outlast the longest evaluation a worker accepts.
func evaluationRescueAfter(config infra.EvaluationConfig) time.Duration {
	return worker_jobs.EvaluationJobTimeout(config) + time.Minute
}
