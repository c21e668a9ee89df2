package cmd

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/promptdeck/promptdeck-backend/infra"
	"github.com/promptdeck/promptdeck-backend/models"
	"github.com/promptdeck/promptdeck-backend/usecases/worker_jobs"
	"github.com/promptdeck/promptdeck-backend/utils"
)

const appName = "promptdeck-backend"

// Set at build time with -ldflags "-X github.com/promptdeck/promptdeck-backend/cmd.apiVersion=..."
var apiVersion = "dev"

// LoadDotEnv reads the local .env file when running in development. Variables
// already present in the environment take precedence.
func LoadDotEnv() {
	env := os.Getenv("ENV")
	if env != "" && env != "development" {
		return
	}
	if _, err := os.Stat(".env"); err != nil {
		return
	}
	if err := godotenv.Load(".env"); err != nil {
		panic(err)
	}
}

func pgConfigFromEnv() infra.PgConfig {
	return infra.PgConfig{
		ConnectionString:   utils.GetEnv("PG_CONNECTION_STRING", ""),
		Database:           utils.GetEnv("PG_DATABASE", "promptdeck"),
		Hostname:           utils.GetEnv("PG_HOSTNAME", ""),
		Password:           utils.GetEnv("PG_PASSWORD", ""),
		Port:               utils.GetEnv("PG_PORT", "5432"),
		User:               utils.GetEnv("PG_USER", ""),
		MaxPoolConnections: utils.GetEnv("PG_MAX_POOL_SIZE", infra.DEFAULT_MAX_CONNECTIONS),
		SslMode:            utils.GetEnv("PG_SSL_MODE", "prefer"),
	}
}

func telemetryConfigFromEnv() infra.TelemetryConfiguration {
	return infra.TelemetryConfiguration{
		Enabled:         utils.GetEnv("ENABLE_TRACING", false),
		ApplicationName: appName,
		SamplingRatio:   utils.GetEnv("TRACING_SAMPLING_RATIO", infra.DEFAULT_SAMPLING_RATIO),
	}
}

func llmConfigFromEnv() infra.LLMConfig {
	return infra.LLMConfig{
		OpenAIApiKey:       utils.GetEnv("OPENAI_API_KEY", ""),
		OpenAIBaseUrl:      utils.GetEnv("OPENAI_BASE_URL", ""),
		AnthropicApiKey:    utils.GetEnv("ANTHROPIC_API_KEY", ""),
		OpenRouterApiKey:   utils.GetEnv("OPENROUTER_API_KEY", ""),
		OpenRouterBaseUrl:  utils.GetEnv("OPENROUTER_BASE_URL", ""),
		OpenRouterSiteUrl:  utils.GetEnv("APP_URL", ""),
		OpenRouterAppTitle: utils.GetEnv("OPENROUTER_APP_TITLE", "PromptDeck"),
	}
}

func evaluationConfigFromEnv() infra.EvaluationConfig {
	return infra.EvaluationConfig{
		RateLimit:   utils.GetEnv("EVALUATION_RATE_LIMIT", worker_jobs.DEFAULT_EVALUATION_RATE_LIMIT),
		Concurrency: utils.GetEnv("EVALUATION_CONCURRENCY", worker_jobs.DEFAULT_EVALUATION_CONCURRENCY),
		JobTimeout:  utils.GetEnv("EVALUATION_JOB_TIMEOUT", worker_jobs.DEFAULT_EVALUATION_TIMEOUT),
	}
}

func playgroundConfigFromEnv() infra.PlaygroundConfig {
	allowances := models.DefaultPlaygroundAllowances()
	allowances[models.PlanFree] = utils.GetEnv("PLAYGROUND_FREE_ALLOWANCE", allowances[models.PlanFree])
	allowances[models.PlanPro] = utils.GetEnv("PLAYGROUND_PRO_ALLOWANCE", allowances[models.PlanPro])
	return infra.PlaygroundConfig{
		AllowanceResetSchedule: utils.GetEnv("PLAYGROUND_ALLOWANCE_RESET_SCHEDULE", ""),
		Allowances:             allowances,
	}
}

type commonConfig struct {
	env           string
	loggingFormat string
	loggingLevel  string
	sentryDsn     string
}

func commonConfigFromEnv() commonConfig {
	return commonConfig{
		env:           utils.GetEnv("ENV", "development"),
		loggingFormat: utils.GetEnv("LOGGING_FORMAT", utils.LoggingFormatText),
		loggingLevel:  utils.GetEnv("LOGGING_LEVEL", "info"),
		sentryDsn:     utils.GetEnv("SENTRY_DSN", ""),
	}
}
