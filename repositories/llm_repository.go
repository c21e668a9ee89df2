package repositories

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/promptdeck/promptdeck-backend/models"
	"github.com/promptdeck/promptdeck-backend/utils"
)

const DEFAULT_MAX_TOKENS = 1024

// Called with every piece of text produced by the model, in order
type DeltaHandler func(delta string) error

type LLMRepository interface {
	// Supports tells whether the provider serving the model is configured
	Supports(model string) bool
	StreamCompletion(ctx context.Context, req models.CompletionRequest, onDelta DeltaHandler) (models.Completion, error)
	Complete(ctx context.Context, req models.CompletionRequest) (models.Completion, error)
}

type llmProvider interface {
	stream(ctx context.Context, req models.CompletionRequest, onDelta DeltaHandler) (models.Completion, error)
}

// LLMGateway routes completions to the provider serving the requested model
type LLMGateway struct {
	providers map[models.LLMProvider]llmProvider
}

type LLMGatewayOption func(*LLMGateway)

func WithOpenAI(apiKey, baseUrl string) LLMGatewayOption {
	return func(g *LLMGateway) {
		if apiKey != "" {
			g.providers[models.LLMProviderOpenAI] = newOpenAIProvider(apiKey, baseUrl)
		}
	}
}

func WithOpenRouter(apiKey, baseUrl, siteUrl, appTitle string) LLMGatewayOption {
	return func(g *LLMGateway) {
		if apiKey != "" {
			g.providers[models.LLMProviderOpenRouter] = newOpenRouterProvider(apiKey, baseUrl, siteUrl, appTitle)
		}
	}
}

func WithAnthropic(apiKey, baseUrl string) LLMGatewayOption {
	return func(g *LLMGateway) {
		if apiKey != "" {
			g.providers[models.LLMProviderAnthropic] = newAnthropicProvider(apiKey, baseUrl)
		}
	}
}

func NewLLMGateway(opts ...LLMGatewayOption) *LLMGateway {
	gateway := &LLMGateway{providers: make(map[models.LLMProvider]llmProvider)}
	for _, opt := range opts {
		opt(gateway)
	}
	return gateway
}

func (g *LLMGateway) Supports(model string) bool {
	_, ok := g.providers[models.ProviderForModel(model)]
	return ok
}

func (g *LLMGateway) StreamCompletion(ctx context.Context, req models.CompletionRequest, onDelta DeltaHandler) (models.Completion, error) {
	providerName := models.ProviderForModel(req.Params.Model)
	provider, ok := g.providers[providerName]
	if !ok {
		return models.Completion{}, errors.WithDetailf(models.ErrLLMProviderNotConfigured, "no api key for provider %s", providerName)
	}

	logger := utils.LoggerFromContext(ctx).With("provider", string(providerName), "model", req.Params.Model)
	start := time.Now()
	completion, err := provider.stream(ctx, req, onDelta)
	duration := time.Since(start)
	utils.MetricCompletionLatency.WithLabelValues(string(providerName)).Observe(duration.Seconds())
	if err != nil {
		return completion, errors.Wrapf(err, "%s completion", providerName)
	}

	logger.DebugContext(ctx, "llm completion done",
		"duration_ms", duration.Milliseconds(),
		"prompt_tokens", completion.PromptTokens,
		"completion_tokens", completion.CompletionTokens)
	return completion, nil
}

func (g *LLMGateway) Complete(ctx context.Context, req models.CompletionRequest) (models.Completion, error) {
	return g.StreamCompletion(ctx, req, nil)
}

// Rate limits and server side failures are worth retrying, anything else is final
func markTransient(err error, statusCode int) error {
	if statusCode == 429 || statusCode >= 500 {
		return errors.Mark(err, models.ErrTransientLLMError)
	}
	return err
}
