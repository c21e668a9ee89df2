package utils

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/segmentio/analytics-go/v3"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/promptdeck/promptdeck-backend/models"
)

type ContextKey int

const (
	ContextKeyCredentials ContextKey = iota
	ContextKeyLogger
	ContextKeySegmentClient
	ContextKeyOpenTelemetryTracer
)

func LoggerFromContext(ctx context.Context) *slog.Logger {
	logger, found := ctx.Value(ContextKeyLogger).(*slog.Logger)
	if !found {
		return slog.Default()
	}
	return logger
}

func StoreLoggerInContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ContextKeyLogger, logger)
}

func StoreLoggerInContextMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctxWithLogger := StoreLoggerInContext(c.Request.Context(), logger)
		c.Request = c.Request.WithContext(ctxWithLogger)
		c.Next()
	}
}

func CredentialsFromCtx(ctx context.Context) (models.Credentials, bool) {
	creds, found := ctx.Value(ContextKeyCredentials).(models.Credentials)
	return creds, found
}

// StoreCredentialsInContext also enriches the logger with the caller identity
func StoreCredentialsInContext(ctx context.Context, creds models.Credentials) context.Context {
	ctx = context.WithValue(ctx, ContextKeyCredentials, creds)
	logger := LoggerFromContext(ctx).With(
		slog.String("user_id", creds.UserId.String()),
		slog.String("org_id", creds.OrganizationId.String()),
	)
	return StoreLoggerInContext(ctx, logger)
}

func SegmentClientFromContext(ctx context.Context) analytics.Client {
	client, found := ctx.Value(ContextKeySegmentClient).(analytics.Client)
	if !found {
		return nil
	}
	return client
}

func StoreSegmentClientInContext(ctx context.Context, client analytics.Client) context.Context {
	return context.WithValue(ctx, ContextKeySegmentClient, client)
}

func StoreSegmentClientInContextMiddleware(client analytics.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(StoreSegmentClientInContext(c.Request.Context(), client))
		c.Next()
	}
}

func OpenTelemetryTracerFromContext(ctx context.Context) trace.Tracer {
	tracer, found := ctx.Value(ContextKeyOpenTelemetryTracer).(trace.Tracer)
	if !found {
		return noop.NewTracerProvider().Tracer("noop")
	}
	return tracer
}

func StoreOpenTelemetryTracerInContext(ctx context.Context, tracer trace.Tracer) context.Context {
	return context.WithValue(ctx, ContextKeyOpenTelemetryTracer, tracer)
}

func StoreOpenTelemetryTracerInContextMiddleware(tracer trace.Tracer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(StoreOpenTelemetryTracerInContext(c.Request.Context(), tracer))
		c.Next()
	}
}

func ParseUuid(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, errors.Wrapf(models.BadParameterError, "'%s' is not a valid UUID", s)
	}
	return id, nil
}
