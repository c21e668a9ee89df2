package api

import (
	"context"
	"net/http"
	"net/url"
	"slices"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	limits "github.com/gin-contrib/size"
	"github.com/gin-gonic/gin"
	"github.com/segmentio/analytics-go/v3"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/promptdeck/promptdeck-backend/api/middleware"
	"github.com/promptdeck/promptdeck-backend/infra"
	"github.com/promptdeck/promptdeck-backend/utils"
)

const DEFAULT_MAX_BODY_SIZE = 2 * 1024 * 1024

func corsOption(ctx context.Context, conf Configuration) cors.Config {
	logger := utils.LoggerFromContext(ctx)
	allowedOrigins := []string{}
	if conf.AppUrl != "" {
		parsedUrl, err := url.Parse(conf.AppUrl)
		switch {
		case err != nil:
			logger.Error("Failed to parse the app url for CORS, requests from the browser will be rejected", "url", conf.AppUrl)
		case !slices.Contains([]string{"http", "https"}, parsedUrl.Scheme):
			logger.Error("The app url does not contain a scheme (http or https), so it cannot be used for CORS", "url", conf.AppUrl)
		default:
			allowedOrigins = append(allowedOrigins, (&url.URL{Scheme: parsedUrl.Scheme, Host: parsedUrl.Host}).String())
		}
	}

	if conf.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://localhost:5173")
	}

	config := cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{
			http.MethodOptions, http.MethodHead, http.MethodGet,
			http.MethodPost, http.MethodDelete, http.MethodPatch,
		},
		AllowHeaders:     []string{"Authorization", "Content-Type", "baggage", "sentry-trace"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	// cors refuses a configuration without any allowed origin
	if len(allowedOrigins) == 0 {
		config.AllowOrigins = nil
		config.AllowOriginFunc = func(origin string) bool { return false }
	}
	return config
}

func InitRouterMiddlewares(
	ctx context.Context,
	conf Configuration,
	segmentClient analytics.Client,
	telemetryRessources infra.TelemetryRessources,
) *gin.Engine {
	if !conf.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := utils.LoggerFromContext(ctx)
	maxBodySize := conf.MaxBodySizeBytes
	if maxBodySize <= 0 {
		maxBodySize = DEFAULT_MAX_BODY_SIZE
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	r.Use(cors.New(corsOption(ctx, conf)))
	r.Use(limits.RequestSizeLimiter(maxBodySize))
	r.Use(middleware.NewLogging(middleware.WithIgnorePath([]string{"/liveness", "/metrics"})))
	r.Use(utils.StoreLoggerInContextMiddleware(logger))
	r.Use(utils.StoreSegmentClientInContextMiddleware(segmentClient))
	if telemetryRessources.TextMapPropagator != nil {
		r.Use(otelgin.Middleware(
			conf.AppName,
			otelgin.WithTracerProvider(telemetryRessources.TracerProvider),
			otelgin.WithPropagators(telemetryRessources.TextMapPropagator),
		))
	}
	r.Use(utils.StoreOpenTelemetryTracerInContextMiddleware(telemetryRessources.Tracer))

	return r
}
