package usecases

import (
	"context"
	"regexp"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/promptdeck/promptdeck-backend/models"
	"github.com/promptdeck/promptdeck-backend/repositories"
	"github.com/promptdeck/promptdeck-backend/usecases/analytics"
	"github.com/promptdeck/promptdeck-backend/usecases/executor_factory"
	"github.com/promptdeck/promptdeck-backend/usecases/security"
)

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:[-_][a-z0-9]+)*$`)

const maxSlugLength = 64

type DatasetRepository interface {
	ListDatasets(ctx context.Context, exec repositories.Executor, projectId uuid.UUID) ([]models.Dataset, error)
	GetDataset(ctx context.Context, exec repositories.Executor, datasetId uuid.UUID) (models.Dataset, error)
	CreateDataset(ctx context.Context, tx repositories.Transaction, datasetId uuid.UUID, input models.CreateDatasetInput) error
}

type DatasetUsecase struct {
	enforceSecurity    security.EnforceSecurityProject
	executorFactory    executor_factory.ExecutorFactory
	transactionFactory executor_factory.TransactionFactory
	projectRepository  ProjectRepository
	datasetRepository  DatasetRepository
}

func (usecase *DatasetUsecase) ListDatasets(ctx context.Context, projectId uuid.UUID) ([]models.Dataset, error) {
	exec := usecase.executorFactory.NewExecutor()
	project, err := usecase.projectRepository.GetProjectById(ctx, exec, projectId)
	if err != nil {
		return nil, err
	}
	if err := usecase.enforceSecurity.ReadProject(project); err != nil {
		return nil, err
	}
	return usecase.datasetRepository.ListDatasets(ctx, exec, projectId)
}

func (usecase *DatasetUsecase) GetDataset(ctx context.Context, datasetId uuid.UUID) (models.Dataset, error) {
	exec := usecase.executorFactory.NewExecutor()
	dataset, err := usecase.datasetRepository.GetDataset(ctx, exec, datasetId)
	if err != nil {
		return models.Dataset{}, err
	}
	project, err := usecase.projectRepository.GetProjectById(ctx, exec, dataset.ProjectId)
	if err != nil {
		return models.Dataset{}, err
	}
	if err := usecase.enforceSecurity.ReadProject(project); err != nil {
		return models.Dataset{}, err
	}
	return dataset, nil
}

func (usecase *DatasetUsecase) CreateDataset(ctx context.Context, input models.CreateDatasetInput) (models.Dataset, error) {
	if err := validateDataset(input); err != nil {
		return models.Dataset{}, err
	}

	exec := usecase.executorFactory.NewExecutor()
	project, err := usecase.projectRepository.GetProjectById(ctx, exec, input.ProjectId)
	if err != nil {
		return models.Dataset{}, err
	}
	if err := usecase.enforceSecurity.WriteProject(project); err != nil {
		return models.Dataset{}, err
	}

	datasetId := uuid.New()
	dataset, err := executor_factory.TransactionReturnValue(ctx, usecase.transactionFactory,
		func(tx repositories.Transaction) (models.Dataset, error) {
			if err := usecase.datasetRepository.CreateDataset(ctx, tx, datasetId, input); err != nil {
				return models.Dataset{}, err
			}
			return usecase.datasetRepository.GetDataset(ctx, tx, datasetId)
		})
	if err != nil {
		return models.Dataset{}, err
	}

	analytics.TrackEvent(ctx, models.AnalyticsDatasetCreated, map[string]interface{}{"dataset_id": dataset.Id})
	return dataset, nil
}

func validateSlug(slug string) error {
	if slug == "" {
		return errors.Wrap(models.BadParameterError, "slug is required")
	}
	if len(slug) > maxSlugLength || !slugRegex.MatchString(slug) {
		return errors.Wrapf(models.BadParameterError,
			"invalid slug %q: lowercase letters, digits, dashes and underscores only", slug)
	}
	return nil
}

func validateDataset(input models.CreateDatasetInput) error {
	if err := validateSlug(input.Slug); err != nil {
		return err
	}
	if len(input.Prompts) == 0 {
		return errors.Wrap(models.BadParameterError, "a dataset needs at least one prompt")
	}
	for i, prompt := range input.Prompts {
		if len(prompt.Messages) == 0 {
			return errors.Wrapf(models.BadParameterError, "prompt %d has no message", i)
		}
		for _, message := range prompt.Messages {
			switch message.Role {
			case models.ChatRoleSystem, models.ChatRoleUser, models.ChatRoleAssistant:
			default:
				return errors.Wrapf(models.BadParameterError, "prompt %d: unknown role %q", i, message.Role)
			}
		}
	}
	return nil
}
