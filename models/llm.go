package models

import "slices"

type LLMProvider string

const (
	LLMProviderOpenAI     LLMProvider = "openai"
	LLMProviderAnthropic  LLMProvider = "anthropic"
	LLMProviderOpenRouter LLMProvider = "openrouter"
)

type LLMModel struct {
	Name     string
	Provider LLMProvider
}

var anthropicModels = []string{
	"claude-3-5-sonnet-20240620",
	"claude-3-opus-20240229",
	"claude-3-sonnet-20240229",
	"claude-3-haiku-20240307",
	"claude-2.1",
	"claude-2.0",
	"claude-instant-1.2",
}

var openRouterModels = []string{
	"mistralai/mistral-7b-instruct",
	"mistralai/mixtral-8x7b-instruct",
	"openai/gpt-4-32k",
	"google/gemini-pro",
	"meta-llama/llama-3-70b-instruct",
	"meta-llama/llama-3-8b-instruct",
	"cohere/command-r-plus",
}

var openAIModels = []string{
	"gpt-4o",
	"gpt-4o-mini",
	"gpt-4-turbo",
	"gpt-4",
	"gpt-3.5-turbo",
}

// ProviderForModel routes a model name to the provider serving it.
// Names outside of the Anthropic and OpenRouter lists go to OpenAI.
func ProviderForModel(model string) LLMProvider {
	switch {
	case slices.Contains(anthropicModels, model):
		return LLMProviderAnthropic
	case slices.Contains(openRouterModels, model):
		return LLMProviderOpenRouter
	default:
		return LLMProviderOpenAI
	}
}

func IsKnownModel(model string) bool {
	return slices.Contains(openAIModels, model) ||
		slices.Contains(anthropicModels, model) ||
		slices.Contains(openRouterModels, model)
}

func ModelCatalog() []LLMModel {
	catalog := make([]LLMModel, 0, len(openAIModels)+len(anthropicModels)+len(openRouterModels))
	for _, m := range openAIModels {
		catalog = append(catalog, LLMModel{Name: m, Provider: LLMProviderOpenAI})
	}
	for _, m := range anthropicModels {
		catalog = append(catalog, LLMModel{Name: m, Provider: LLMProviderAnthropic})
	}
	for _, m := range openRouterModels {
		catalog = append(catalog, LLMModel{Name: m, Provider: LLMProviderOpenRouter})
	}
	return catalog
}

type ChatRole string

const (
	ChatRoleSystem    ChatRole = "system"
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

type CompletionParams struct {
	Model            string
	Temperature      *float64
	MaxTokens        *int64
	TopP             *float64
	PresencePenalty  *float64
	FrequencyPenalty *float64
}

type CompletionRequest struct {
	Messages []ChatMessage
	Params   CompletionParams
}

type Completion struct {
	Content          string
	PromptTokens     int
	CompletionTokens int
}
