package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/promptdeck/promptdeck-backend/models"
	"github.com/promptdeck/promptdeck-backend/utils"
)

type APIDatasetVariation struct {
	Id          string            `json:"id"`
	Variables   map[string]string `json:"variables"`
	IdealOutput string            `json:"idealOutput"`
}

type APIDatasetPrompt struct {
	Id         string                `json:"id"`
	Messages   []models.ChatMessage  `json:"messages"`
	Variations []APIDatasetVariation `json:"variations"`
}

type APIDataset struct {
	Id           string             `json:"id"`
	ProjectId    string             `json:"projectId"`
	Slug         string             `json:"slug"`
	NbVariations int                `json:"nbVariations"`
	CreatedAt    time.Time          `json:"createdAt"`
	Prompts      []APIDatasetPrompt `json:"prompts,omitempty"`
}

func adaptVariationDto(variation models.DatasetPromptVariation) APIDatasetVariation {
	variables := variation.Variables
	if variables == nil {
		variables = map[string]string{}
	}
	return APIDatasetVariation{
		Id:          variation.Id.String(),
		Variables:   variables,
		IdealOutput: variation.IdealOutput,
	}
}

func adaptPromptDto(prompt models.DatasetPrompt) APIDatasetPrompt {
	return APIDatasetPrompt{
		Id:         prompt.Id.String(),
		Messages:   prompt.Messages,
		Variations: append([]APIDatasetVariation{}, utils.Map(prompt.Variations, adaptVariationDto)...),
	}
}

func AdaptDatasetDto(dataset models.Dataset) APIDataset {
	return APIDataset{
		Id:           dataset.Id.String(),
		ProjectId:    dataset.ProjectId.String(),
		Slug:         dataset.Slug,
		NbVariations: dataset.NbVariations(),
		CreatedAt:    dataset.CreatedAt,
		Prompts:      utils.Map(dataset.Prompts, adaptPromptDto),
	}
}

type CreateDatasetVariationDto struct {
	Variables   map[string]string `json:"variables"`
	IdealOutput string            `json:"idealOutput"`
}

type CreateDatasetPromptDto struct {
	Messages   []models.ChatMessage        `json:"messages"`
	Variations []CreateDatasetVariationDto `json:"variations"`
}

type CreateDatasetBodyDto struct {
	Slug    string                   `json:"slug" binding:"required"`
	Prompts []CreateDatasetPromptDto `json:"prompts"`
}

func AdaptCreateDatasetInput(projectId uuid.UUID, body CreateDatasetBodyDto) models.CreateDatasetInput {
	return models.CreateDatasetInput{
		ProjectId: projectId,
		Slug:      body.Slug,
		Prompts: utils.Map(body.Prompts, func(p CreateDatasetPromptDto) models.CreateDatasetPromptInput {
			return models.CreateDatasetPromptInput{
				Messages: p.Messages,
				Variations: utils.Map(p.Variations, func(v CreateDatasetVariationDto) models.DatasetPromptVariation {
					return models.DatasetPromptVariation{Variables: v.Variables, IdealOutput: v.IdealOutput}
				}),
			}
		}),
	}
}
