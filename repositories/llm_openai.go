package repositories

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/promptdeck/promptdeck-backend/models"
)

const DEFAULT_OPENROUTER_BASE_URL = "https://openrouter.ai/api/v1"

// openaiProvider also serves OpenRouter, which exposes an OpenAI compatible api
type openaiProvider struct {
	client openai.Client
}

func newOpenAIProvider(apiKey, baseUrl string, extraOpts ...option.RequestOption) *openaiProvider {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseUrl != "" {
		opts = append(opts, option.WithBaseURL(baseUrl))
	}
	return &openaiProvider{client: openai.NewClient(append(opts, extraOpts...)...)}
}

func newOpenRouterProvider(apiKey, baseUrl, siteUrl, appTitle string) *openaiProvider {
	if baseUrl == "" {
		baseUrl = DEFAULT_OPENROUTER_BASE_URL
	}
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseUrl),
	}
	if siteUrl != "" {
		opts = append(opts, option.WithHeader("HTTP-Referer", siteUrl))
	}
	if appTitle != "" {
		opts = append(opts, option.WithHeader("X-Title", appTitle))
	}
	return &openaiProvider{client: openai.NewClient(opts...)}
}

func (p *openaiProvider) stream(ctx context.Context, req models.CompletionRequest, onDelta DeltaHandler) (models.Completion, error) {
	params := openai.ChatCompletionNewParams{
		Model:    req.Params.Model,
		Messages: openaiMessages(req.Messages),
		StreamOptions: openai.ChatCompletionStreamOptionsParam{
			IncludeUsage: openai.Bool(true),
		},
	}
	if req.Params.Temperature != nil {
		params.Temperature = openai.Float(*req.Params.Temperature)
	}
	if req.Params.MaxTokens != nil {
		params.MaxTokens = openai.Int(*req.Params.MaxTokens)
	}
	if req.Params.TopP != nil {
		params.TopP = openai.Float(*req.Params.TopP)
	}
	if req.Params.PresencePenalty != nil {
		params.PresencePenalty = openai.Float(*req.Params.PresencePenalty)
	}
	if req.Params.FrequencyPenalty != nil {
		params.FrequencyPenalty = openai.Float(*req.Params.FrequencyPenalty)
	}

	stream := p.client.Chat.Completions.NewStreaming(ctx, params)
	defer stream.Close()

	acc := openai.ChatCompletionAccumulator{}
	for stream.Next() {
		chunk := stream.Current()
		acc.AddChunk(chunk)

		if onDelta == nil || len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
			continue
		}
		if err := onDelta(chunk.Choices[0].Delta.Content); err != nil {
			return models.Completion{}, err
		}
	}
	if err := stream.Err(); err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return models.Completion{}, markTransient(err, apiErr.StatusCode)
		}
		return models.Completion{}, err
	}

	completion := models.Completion{
		PromptTokens:     int(acc.Usage.PromptTokens),
		CompletionTokens: int(acc.Usage.CompletionTokens),
	}
	if len(acc.Choices) > 0 {
		completion.Content = acc.Choices[0].Message.Content
	}
	return completion, nil
}

func openaiMessages(messages []models.ChatMessage) []openai.ChatCompletionMessageParamUnion {
	result := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case models.ChatRoleSystem:
			result = append(result, openai.SystemMessage(msg.Content))
		case models.ChatRoleAssistant:
			result = append(result, openai.AssistantMessage(msg.Content))
		default:
			result = append(result, openai.UserMessage(msg.Content))
		}
	}
	return result
}
