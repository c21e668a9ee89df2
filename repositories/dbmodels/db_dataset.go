package dbmodels

import (
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/promptdeck/promptdeck-backend/models"
	"github.com/promptdeck/promptdeck-backend/utils"
)

type DBDataset struct {
	Id        uuid.UUID `db:"id"`
	ProjectId uuid.UUID `db:"project_id"`
	Slug      string    `db:"slug"`
	CreatedAt time.Time `db:"created_at"`
}

type DBDatasetPrompt struct {
	Id        uuid.UUID `db:"id"`
	DatasetId uuid.UUID `db:"dataset_id"`
	Messages  []byte    `db:"messages"`
	CreatedAt time.Time `db:"created_at"`
}

type DBDatasetPromptVariation struct {
	Id          uuid.UUID `db:"id"`
	PromptId    uuid.UUID `db:"prompt_id"`
	Variables   []byte    `db:"variables"`
	IdealOutput string    `db:"ideal_output"`
	CreatedAt   time.Time `db:"created_at"`
}

const (
	TABLE_DATASET                  = "dataset"
	TABLE_DATASET_PROMPT           = "dataset_prompt"
	TABLE_DATASET_PROMPT_VARIATION = "dataset_prompt_variation"
)

var (
	ColumnsSelectDataset                = utils.ColumnList[DBDataset]()
	ColumnsSelectDatasetPrompt          = utils.ColumnList[DBDatasetPrompt]()
	ColumnsSelectDatasetPromptVariation = utils.ColumnList[DBDatasetPromptVariation]()
)

func AdaptDataset(db DBDataset) (models.Dataset, error) {
	return models.Dataset{
		Id:        db.Id,
		ProjectId: db.ProjectId,
		Slug:      db.Slug,
		CreatedAt: db.CreatedAt,
	}, nil
}

func AdaptDatasetPrompt(db DBDatasetPrompt) (models.DatasetPrompt, error) {
	var messages []models.ChatMessage
	if err := json.Unmarshal(db.Messages, &messages); err != nil {
		return models.DatasetPrompt{}, errors.Wrapf(err, "invalid messages on dataset prompt %s", db.Id)
	}
	return models.DatasetPrompt{
		Id:        db.Id,
		DatasetId: db.DatasetId,
		Messages:  messages,
	}, nil
}

func AdaptDatasetPromptVariation(db DBDatasetPromptVariation) (models.DatasetPromptVariation, error) {
	variables := map[string]string{}
	if len(db.Variables) > 0 {
		if err := json.Unmarshal(db.Variables, &variables); err != nil {
			return models.DatasetPromptVariation{}, errors.Wrapf(err, "invalid variables on variation %s", db.Id)
		}
	}
	return models.DatasetPromptVariation{
		Id:          db.Id,
		PromptId:    db.PromptId,
		Variables:   variables,
		IdealOutput: db.IdealOutput,
	}, nil
}
