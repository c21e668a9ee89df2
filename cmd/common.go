package cmd

import (
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"

	"github.com/promptdeck/promptdeck-backend/infra"
	"github.com/promptdeck/promptdeck-backend/repositories"
	"github.com/promptdeck/promptdeck-backend/utils"
)

func stripeConfigFromEnv() infra.StripeConfig {
	return infra.StripeConfig{
		SecretKey:     utils.GetEnv("STRIPE_SECRET_KEY", ""),
		WebhookSecret: utils.GetEnv("STRIPE_WEBHOOK_SECRET", ""),
		PriceCacheTTL: utils.GetEnv("STRIPE_PRICE_CACHE_TTL", repositories.DEFAULT_PRICE_CACHE_TTL),
	}
}

// Repositories shared by the server and the worker. Billing is left out when no
// Stripe key is configured, the billing usecases then answer that it is disabled.
func newRepositories(
	pool *pgxpool.Pool,
	riverClient *river.Client[pgx.Tx],
	stripeConfig infra.StripeConfig,
	llmConfig infra.LLMConfig,
) repositories.Repositories {
	opts := []repositories.Option{
		repositories.WithRiverClient(riverClient),
		repositories.WithLLMRepository(repositories.NewLLMGateway(
			repositories.WithOpenAI(llmConfig.OpenAIApiKey, llmConfig.OpenAIBaseUrl),
			repositories.WithOpenRouter(
				llmConfig.OpenRouterApiKey,
				llmConfig.OpenRouterBaseUrl,
				llmConfig.OpenRouterSiteUrl,
				llmConfig.OpenRouterAppTitle,
			),
			repositories.WithAnthropic(llmConfig.AnthropicApiKey, ""),
		)),
	}
	if stripeConfig.Enabled() {
		opts = append(opts, repositories.WithBillingRepository(repositories.NewStripeRepository(
			stripeConfig.SecretKey,
			stripeConfig.WebhookSecret,
			stripeConfig.PriceCacheTTL,
			nil,
		)))
	}
	return repositories.NewRepositories(pool, opts...)
}
