package models

import (
	"time"

	"github.com/google/uuid"
)

type Dataset struct {
	Id        uuid.UUID
	ProjectId uuid.UUID
	Slug      string
	CreatedAt time.Time
	Prompts   []DatasetPrompt
}

type DatasetPrompt struct {
	Id         uuid.UUID
	DatasetId  uuid.UUID
	Messages   []ChatMessage
	Variations []DatasetPromptVariation
}

type DatasetPromptVariation struct {
	Id          uuid.UUID
	PromptId    uuid.UUID
	Variables   map[string]string
	IdealOutput string
}

func (d Dataset) NbVariations() int {
	nb := 0
	for _, p := range d.Prompts {
		// a prompt without variation is run once, with no variables
		nb += max(1, len(p.Variations))
	}
	return nb
}

type CreateDatasetInput struct {
	ProjectId uuid.UUID
	Slug      string
	Prompts   []CreateDatasetPromptInput
}

type CreateDatasetPromptInput struct {
	Messages   []ChatMessage
	Variations []DatasetPromptVariation
}
