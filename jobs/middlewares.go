package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/getsentry/sentry-go"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/promptdeck/promptdeck-backend/utils"
)

const sdkIdentifier = "sentry.go.river.promptdeck"

// Logger middleware

type LoggerMiddleware struct {
	river.MiddlewareDefaults
	l *slog.Logger
}

func (m *LoggerMiddleware) Work(ctx context.Context, job *rivertype.JobRow, doInner func(context.Context) error) error {
	logger := m.l.With(
		"job_id", job.ID,
		"job_kind", job.Kind,
		"job_attempt", job.Attempt,
		"queue", job.Queue,
		"priority", job.Priority,
	)
	start := time.Now()
	logger.InfoContext(ctx, fmt.Sprintf("Starting %s job n°%d - attempt %d", job.Kind, job.ID, job.Attempt))

	ctx = utils.StoreLoggerInContext(ctx, logger)
	err := doInner(ctx)
	var snoozeErr *river.JobSnoozeError
	if err != nil && errors.As(err, &snoozeErr) {
		logger.InfoContext(ctx, fmt.Sprintf("%s job n°%d snoozed after %s", job.Kind, job.ID, time.Since(start)))
		return err
	} else if err != nil {
		logger.ErrorContext(ctx, fmt.Sprintf("%s job n°%d failed after %s", job.Kind, job.ID, time.Since(start)))
		utils.LogAndReportSentryError(ctx, err)
		return err
	}

	logger.InfoContext(ctx, fmt.Sprintf("%s job n°%d succeeded after %s", job.Kind, job.ID, time.Since(start)))
	return nil
}

func NewLoggerMiddleware(l *slog.Logger) *LoggerMiddleware {
	return &LoggerMiddleware{l: l}
}

// Recoverer middleware

type RecovererMiddleware struct {
	river.MiddlewareDefaults
}

func (m *RecovererMiddleware) Work(ctx context.Context, job *rivertype.JobRow, doInner func(context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("panic in %s job n°%d: %v", job.Kind, job.ID, r)
		}
	}()
	return doInner(ctx)
}

func NewRecovererMiddleware() *RecovererMiddleware {
	return &RecovererMiddleware{}
}

// Opentelemetry tracing middleware

type TracingMiddleware struct {
	river.MiddlewareDefaults
	tracer trace.Tracer
}

func (m *TracingMiddleware) Work(ctx context.Context, job *rivertype.JobRow, doInner func(context.Context) error) error {
	ctx, span := m.tracer.Start(
		ctx,
		job.Kind,
		trace.WithAttributes(
			attribute.Int64("job_id", job.ID),
			attribute.String("job_kind", job.Kind),
			attribute.Int("job_attempt", job.Attempt),
			attribute.String("created_at", job.CreatedAt.Format(time.RFC3339)),
			attribute.String("queue", job.Queue),
		),
	)
	defer span.End()

	ctx = utils.StoreOpenTelemetryTracerInContext(ctx, m.tracer)
	return doInner(ctx)
}

func NewTracingMiddleware(tracer trace.Tracer) *TracingMiddleware {
	return &TracingMiddleware{tracer: tracer}
}

// Sentry middleware

type SentryMiddleware struct {
	river.MiddlewareDefaults
}

func (m *SentryMiddleware) Work(ctx context.Context, job *rivertype.JobRow, doInner func(context.Context) error) error {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub().Clone()
		ctx = sentry.SetHubOnContext(ctx, hub)
	}
	if client := hub.Client(); client != nil {
		client.SetSDKIdentifier(sdkIdentifier)
	}

	scope := hub.PushScope()
	defer hub.PopScope()
	scope.SetTag("job_id", strconv.FormatInt(job.ID, 10))
	scope.SetTag("job_kind", job.Kind)
	scope.SetTag("job_attempt", strconv.Itoa(job.Attempt))
	scope.SetTag("queue", job.Queue)
	var args map[string]any
	if err := json.Unmarshal(job.EncodedArgs, &args); err != nil {
		scope.SetTag("payload", "error decoding payload")
	} else {
		scope.SetExtra("payload", args)
	}

	transaction := sentry.StartTransaction(ctx,
		job.Kind,
		sentry.WithOpName("river.task"),
		sentry.WithTransactionSource(sentry.SourceTask),
	)
	defer transaction.Finish()

	err := doInner(transaction.Context())
	if err != nil {
		transaction.Status = sentry.SpanStatusInternalError
	} else {
		transaction.Status = sentry.SpanStatusOK
	}
	return err
}

func NewSentryMiddleware() *SentryMiddleware {
	return &SentryMiddleware{}
}

// Middlewares returns the worker middlewares, outermost first
func Middlewares(logger *slog.Logger, tracer trace.Tracer) []rivertype.Middleware {
	return []rivertype.Middleware{
		NewTracingMiddleware(tracer),
		NewSentryMiddleware(),
		NewLoggerMiddleware(logger),
		NewRecovererMiddleware(),
	}
}
