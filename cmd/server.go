package cmd

import (
	"context"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/getsentry/sentry-go"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"

	"github.com/promptdeck/promptdeck-backend/api"
	"github.com/promptdeck/promptdeck-backend/infra"
	"github.com/promptdeck/promptdeck-backend/usecases"
	"github.com/promptdeck/promptdeck-backend/utils"
)

const DEFAULT_SHUTDOWN_GRACE_PERIOD = 5 * time.Second

func RunServer() error {
	apiConfig := api.Configuration{
		Env:                 utils.GetEnv("ENV", "development"),
		AppName:             appName,
		Port:                utils.GetRequiredEnv[string]("PORT"),
		AppUrl:              utils.GetEnv("APP_URL", ""),
		JwtSigningKey:       utils.GetRequiredEnv[string]("AUTHENTICATION_JWT_SIGNING_KEY"),
		SegmentWriteKey:     utils.GetEnv("SEGMENT_WRITE_KEY", ""),
		MaxBodySizeBytes:    int64(utils.GetEnv("MAX_BODY_SIZE_BYTES", api.DEFAULT_MAX_BODY_SIZE)),
		EnablePrometheus:    utils.GetEnv("ENABLE_PROMETHEUS", false),
		DefaultTimeout:      utils.GetEnv("DEFAULT_TIMEOUT", api.DEFAULT_TIMEOUT),
		PlaygroundTimeout:   utils.GetEnv("PLAYGROUND_TIMEOUT", api.DEFAULT_PLAYGROUND_TIMEOUT),
		ShutdownGracePeriod: utils.GetEnv("SHUTDOWN_GRACE_PERIOD", DEFAULT_SHUTDOWN_GRACE_PERIOD),
	}
	pgConfig := pgConfigFromEnv()
	common := commonConfigFromEnv()

	logger := utils.NewLogger(common.loggingFormat, utils.ParseLogLevel(common.loggingLevel))
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	infra.SetupSentry(common.sentryDsn, apiConfig.Env, apiVersion)
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

	pool, err := infra.NewPostgresConnectionPool(ctx, pgConfig)
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}
	defer pool.Close()

	// Insert-only client: the server enqueues evaluations, the worker process runs them
	riverClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{})
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}

	repositories := newRepositories(pool, riverClient, stripeConfigFromEnv(), llmConfigFromEnv())
	uc := usecases.NewUsecases(repositories,
		usecases.WithApiVersion(apiVersion),
		usecases.WithPlaygroundConfig(playgroundConfigFromEnv()),
		usecases.WithEvaluationConfig(evaluationConfigFromEnv()),
	)

	segmentClient := infra.NewSegmentClient(apiConfig.SegmentWriteKey, logger)
	router := api.InitRouterMiddlewares(ctx, apiConfig, segmentClient, telemetryRessources)
	server := api.NewServer(router, apiConfig, uc, api.NewAuthentication(apiConfig.JwtSigningKey))

	notify, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.InfoContext(ctx, "starting server", slog.String("port", apiConfig.Port), slog.String("version", apiVersion))
		err := server.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			utils.LogAndReportSentryError(ctx, errors.Wrap(err, "Error while serving the app"))
		}
		logger.InfoContext(ctx, "server returned")
	}()

	<-notify.Done()
	shutdownCtx, cancel := context.WithTimeout(ctx, apiConfig.ShutdownGracePeriod)
	defer cancel()
	if segmentClient != nil {
		_ = segmentClient.Close()
	}

	if err := server.Shutdown(shutdownCtx); err != nil {
		utils.LogAndReportSentryError(ctx, errors.Wrap(err, "Error while shutting down the server"))
		return err
	}
	return nil
}
