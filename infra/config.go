package infra

import (
	"fmt"
	"time"

	"github.com/promptdeck/promptdeck-backend/models"
)

type PgConfig struct {
	ConnectionString   string
	Database           string
	Hostname           string
	Password           string
	Port               string
	User               string
	MaxPoolConnections int
	SslMode            string
}

func (config PgConfig) GetConnectionString() string {
	if config.ConnectionString != "" {
		return config.ConnectionString
	}

	if config.SslMode == "" {
		config.SslMode = "prefer"
	}

	return fmt.Sprintf("host=%s user=%s password=%s database=%s sslmode=%s port=%s",
		config.Hostname, config.User, config.Password, config.Database, config.SslMode, config.Port)
}

type TelemetryConfiguration struct {
	Enabled         bool
	ApplicationName string
	// Sampling ratio of the root spans, between 0 and 1
	SamplingRatio float64
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	// Lifetime of the cached price lookups
	PriceCacheTTL time.Duration
}

func (c StripeConfig) Enabled() bool {
	return c.SecretKey != ""
}

type LLMConfig struct {
	OpenAIApiKey      string
	OpenAIBaseUrl     string
	AnthropicApiKey   string
	OpenRouterApiKey  string
	OpenRouterBaseUrl string
	// Sent to OpenRouter as HTTP-Referer and X-Title
	OpenRouterSiteUrl  string
	OpenRouterAppTitle string
}

type EvaluationConfig struct {
	// Maximum LLM calls per second across all evaluations of a worker
	RateLimit float64
	// Concurrent LLM calls per evaluation
	Concurrency int
	JobTimeout  time.Duration
}

type PlaygroundConfig struct {
	AllowanceResetSchedule string
	Allowances             models.PlaygroundAllowances
}
