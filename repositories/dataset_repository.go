package repositories

import (
	"context"
	"encoding/json"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/promptdeck/promptdeck-backend/models"
	"github.com/promptdeck/promptdeck-backend/repositories/dbmodels"
)

func (repo *DbRepository) ListDatasets(ctx context.Context, exec Executor, projectId uuid.UUID) ([]models.Dataset, error) {
	return SqlToListOfModels(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.ColumnsSelectDataset...).
			From(dbmodels.TABLE_DATASET).
			Where(squirrel.Eq{"project_id": projectId}).
			OrderBy("created_at DESC"),
		dbmodels.AdaptDataset,
	)
}

// GetDataset returns the dataset with its prompts and their variations
func (repo *DbRepository) GetDataset(ctx context.Context, exec Executor, datasetId uuid.UUID) (models.Dataset, error) {
	dataset, err := SqlToModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.ColumnsSelectDataset...).
			From(dbmodels.TABLE_DATASET).
			Where(squirrel.Eq{"id": datasetId}),
		dbmodels.AdaptDataset,
	)
	if err != nil {
		return models.Dataset{}, err
	}

	prompts, err := SqlToListOfModels(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.ColumnsSelectDatasetPrompt...).
			From(dbmodels.TABLE_DATASET_PROMPT).
			Where(squirrel.Eq{"dataset_id": datasetId}).
			OrderBy("created_at", "id"),
		dbmodels.AdaptDatasetPrompt,
	)
	if err != nil {
		return models.Dataset{}, err
	}
	if len(prompts) == 0 {
		return dataset, nil
	}

	promptIds := make([]uuid.UUID, len(prompts))
	for i, p := range prompts {
		promptIds[i] = p.Id
	}
	variations, err := SqlToListOfModels(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.ColumnsSelectDatasetPromptVariation...).
			From(dbmodels.TABLE_DATASET_PROMPT_VARIATION).
			Where(squirrel.Eq{"prompt_id": promptIds}).
			OrderBy("created_at", "id"),
		dbmodels.AdaptDatasetPromptVariation,
	)
	if err != nil {
		return models.Dataset{}, err
	}

	byPrompt := make(map[uuid.UUID][]models.DatasetPromptVariation, len(prompts))
	for _, v := range variations {
		byPrompt[v.PromptId] = append(byPrompt[v.PromptId], v)
	}
	for i := range prompts {
		prompts[i].Variations = byPrompt[prompts[i].Id]
	}
	dataset.Prompts = prompts
	return dataset, nil
}

// CreateDataset must run in a transaction, the dataset and its prompts are inserted together
func (repo *DbRepository) CreateDataset(ctx context.Context, tx Transaction, datasetId uuid.UUID, input models.CreateDatasetInput) error {
	err := ExecBuilder(
		ctx,
		tx,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_DATASET).
			Columns("id", "project_id", "slug").
			Values(datasetId, input.ProjectId, input.Slug),
	)
	if err != nil {
		return wrapUniqueViolation(err, "a dataset with this slug already exists in the project")
	}

	for _, prompt := range input.Prompts {
		messages, err := json.Marshal(prompt.Messages)
		if err != nil {
			return errors.Wrap(err, "could not marshal prompt messages")
		}
		promptId := uuid.New()
		err = ExecBuilder(
			ctx,
			tx,
			NewQueryBuilder().
				Insert(dbmodels.TABLE_DATASET_PROMPT).
				Columns("id", "dataset_id", "messages").
				Values(promptId, datasetId, messages),
		)
		if err != nil {
			return err
		}

		if len(prompt.Variations) == 0 {
			continue
		}
		insertVariations := NewQueryBuilder().
			Insert(dbmodels.TABLE_DATASET_PROMPT_VARIATION).
			Columns("id", "prompt_id", "variables", "ideal_output")
		for _, variation := range prompt.Variations {
			variables, err := json.Marshal(variation.Variables)
			if err != nil {
				return errors.Wrap(err, "could not marshal variation variables")
			}
			insertVariations = insertVariations.Values(uuid.New(), promptId, variables, variation.IdealOutput)
		}
		if err := ExecBuilder(ctx, tx, insertVariations); err != nil {
			return err
		}
	}
	return nil
}
