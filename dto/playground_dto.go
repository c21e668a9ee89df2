package dto

import (
	"bytes"
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/guregu/null/v5"

	"github.com/promptdeck/promptdeck-backend/models"
)

// PromptContent is either a plain string, sent as one user message, or a list of messages
type PromptContent []models.ChatMessage

func (c *PromptContent) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*c = PromptContent{{Role: models.ChatRoleUser, Content: s}}
		return nil
	}
	var messages []models.ChatMessage
	if err := json.Unmarshal(trimmed, &messages); err != nil {
		return errors.Wrap(err, "content must be a string or a list of messages")
	}
	*c = messages
	return nil
}

type PlaygroundExtraDto struct {
	Model            string     `json:"model"`
	Temperature      null.Float `json:"temperature"`
	MaxTokens        null.Int   `json:"max_tokens"`
	TopP             null.Float `json:"top_p"`
	PresencePenalty  null.Float `json:"presence_penalty"`
	FrequencyPenalty null.Float `json:"frequency_penalty"`
}

type PlaygroundBodyDto struct {
	Content    PromptContent      `json:"content"`
	Extra      PlaygroundExtraDto `json:"extra"`
	TestValues map[string]string  `json:"testValues"`
}

func AdaptPlaygroundInput(orgId uuid.UUID, body PlaygroundBodyDto) models.PlaygroundInput {
	return models.PlaygroundInput{
		OrgId:    orgId,
		Messages: body.Content,
		Params: models.CompletionParams{
			Model:            body.Extra.Model,
			Temperature:      body.Extra.Temperature.Ptr(),
			MaxTokens:        body.Extra.MaxTokens.Ptr(),
			TopP:             body.Extra.TopP.Ptr(),
			PresencePenalty:  body.Extra.PresencePenalty.Ptr(),
			FrequencyPenalty: body.Extra.FrequencyPenalty.Ptr(),
		},
		TestValues: body.TestValues,
	}
}

type APIPlaygroundChunk struct {
	Content string `json:"content"`
}

type APIUsage struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
}

type APIPlaygroundDone struct {
	Content string   `json:"content"`
	Usage   APIUsage `json:"usage"`
}

func AdaptPlaygroundDoneDto(completion models.Completion) APIPlaygroundDone {
	return APIPlaygroundDone{
		Content: completion.Content,
		Usage: APIUsage{
			PromptTokens:     completion.PromptTokens,
			CompletionTokens: completion.CompletionTokens,
		},
	}
}

type APIModel struct {
	Name     string `json:"name"`
	Provider string `json:"provider"`
}

func AdaptModelDto(model models.LLMModel) APIModel {
	return APIModel{Name: model.Name, Provider: string(model.Provider)}
}
