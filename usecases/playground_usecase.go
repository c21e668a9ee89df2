package usecases

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/promptdeck/promptdeck-backend/models"
	"github.com/promptdeck/promptdeck-backend/pure_utils"
	"github.com/promptdeck/promptdeck-backend/repositories"
	"github.com/promptdeck/promptdeck-backend/usecases/analytics"
	"github.com/promptdeck/promptdeck-backend/usecases/executor_factory"
	"github.com/promptdeck/promptdeck-backend/usecases/security"
	"github.com/promptdeck/promptdeck-backend/utils"
)

type playgroundOrganizationRepository interface {
	DecrementPlayAllowance(ctx context.Context, exec repositories.Executor, organizationId uuid.UUID) (int, error)
}

type PlaygroundUsecase struct {
	enforceSecurity        security.EnforceSecurity
	executorFactory        executor_factory.ExecutorFactory
	organizationRepository playgroundOrganizationRepository
	llmRepository          repositories.LLMRepository
}

// RunCompletion consumes one unit of the organization's daily allowance, then
// streams the completion of the rendered prompt through onDelta. The provider
// is called once, without retry.
func (usecase *PlaygroundUsecase) RunCompletion(
	ctx context.Context,
	input models.PlaygroundInput,
	onDelta repositories.DeltaHandler,
) (models.Completion, error) {
	if err := usecase.enforceSecurity.ReadOrganization(input.OrgId); err != nil {
		return models.Completion{}, err
	}
	if len(input.Messages) == 0 {
		return models.Completion{}, errors.Wrap(models.BadParameterError, "the prompt has no message")
	}
	if input.Params.Model == "" {
		return models.Completion{}, errors.Wrap(models.BadParameterError, "a model is required")
	}

	if !usecase.llmRepository.Supports(input.Params.Model) {
		return models.Completion{}, errors.Wrapf(models.ErrLLMProviderNotConfigured, "model %s", input.Params.Model)
	}

	logger := utils.LoggerFromContext(ctx)

	remaining, err := usecase.organizationRepository.DecrementPlayAllowance(
		ctx, usecase.executorFactory.NewExecutor(), input.OrgId)
	if err != nil {
		return models.Completion{}, err
	}
	logger.DebugContext(ctx, "playground allowance consumed", "remaining", remaining)

	request := models.CompletionRequest{
		Messages: pure_utils.RenderMessages(input.Messages, input.TestValues),
		Params:   input.Params,
	}
	provider := models.ProviderForModel(input.Params.Model)

	start := time.Now()
	completion, err := usecase.llmRepository.StreamCompletion(ctx, request, onDelta)
	if err != nil {
		utils.MetricPlaygroundCompletions.With(prometheus.Labels{
			"provider": string(provider),
			"outcome":  "error",
		}).Inc()
		return models.Completion{}, err
	}
	utils.MetricPlaygroundCompletions.With(prometheus.Labels{
		"provider": string(provider),
		"outcome":  "success",
	}).Inc()

	logger.InfoContext(ctx, "playground completion done",
		"model", input.Params.Model,
		"provider", provider,
		"duration_ms", time.Since(start).Milliseconds(),
		"prompt_tokens", completion.PromptTokens,
		"completion_tokens", completion.CompletionTokens,
	)
	analytics.TrackEvent(ctx, models.AnalyticsPlaygroundRun, map[string]interface{}{"model": input.Params.Model})

	return completion, nil
}
