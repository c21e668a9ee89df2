package repositories

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/cockroachdb/errors"

	"github.com/promptdeck/promptdeck-backend/models"
)

type anthropicProvider struct {
	client anthropic.Client
}

func newAnthropicProvider(apiKey, baseUrl string) *anthropicProvider {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseUrl != "" {
		opts = append(opts, option.WithBaseURL(baseUrl))
	}
	return &anthropicProvider{client: anthropic.NewClient(opts...)}
}

func (p *anthropicProvider) stream(ctx context.Context, req models.CompletionRequest, onDelta DeltaHandler) (models.Completion, error) {
	maxTokens := int64(DEFAULT_MAX_TOKENS)
	if req.Params.MaxTokens != nil {
		maxTokens = *req.Params.MaxTokens
	}

	system, messages := anthropicMessages(req.Messages)
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Params.Model),
		MaxTokens: maxTokens,
		Messages:  messages,
	}
	if len(system) > 0 {
		params.System = system
	}
	if req.Params.Temperature != nil {
		params.Temperature = anthropic.Float(*req.Params.Temperature)
	}
	if req.Params.TopP != nil {
		params.TopP = anthropic.Float(*req.Params.TopP)
	}

	stream := p.client.Messages.NewStreaming(ctx, params)
	defer stream.Close()

	message := anthropic.Message{}
	for stream.Next() {
		event := stream.Current()
		if err := message.Accumulate(event); err != nil {
			return models.Completion{}, errors.Wrap(err, "could not accumulate anthropic stream event")
		}

		if onDelta == nil {
			continue
		}
		if blockDelta, ok := event.AsAny().(anthropic.ContentBlockDeltaEvent); ok {
			if text, ok := blockDelta.Delta.AsAny().(anthropic.TextDelta); ok && text.Text != "" {
				if err := onDelta(text.Text); err != nil {
					return models.Completion{}, err
				}
			}
		}
	}
	if err := stream.Err(); err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return models.Completion{}, markTransient(err, apiErr.StatusCode)
		}
		return models.Completion{}, err
	}

	completion := models.Completion{
		PromptTokens:     int(message.Usage.InputTokens),
		CompletionTokens: int(message.Usage.OutputTokens),
	}
	for _, block := range message.Content {
		if block.Type == "text" {
			completion.Content += block.Text
		}
	}
	return completion, nil
}

// System messages are passed separately to Anthropic, they are not part of the conversation
func anthropicMessages(messages []models.ChatMessage) ([]anthropic.TextBlockParam, []anthropic.MessageParam) {
	var system []anthropic.TextBlockParam
	result := make([]anthropic.MessageParam, 0, len(messages))

	for _, msg := range messages {
		switch msg.Role {
		case models.ChatRoleSystem:
			system = append(system, anthropic.TextBlockParam{Text: msg.Content})
		case models.ChatRoleAssistant:
			result = append(result, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		default:
			result = append(result, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		}
	}
	return system, result
}
