package usecases

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/promptdeck/promptdeck-backend/models"
	"github.com/promptdeck/promptdeck-backend/pure_utils"
	"github.com/promptdeck/promptdeck-backend/repositories"
	"github.com/promptdeck/promptdeck-backend/usecases/analytics"
	"github.com/promptdeck/promptdeck-backend/usecases/executor_factory"
	"github.com/promptdeck/promptdeck-backend/usecases/security"
	"github.com/promptdeck/promptdeck-backend/utils"
)

type EvaluationRepository interface {
	CreateEvaluation(ctx context.Context, exec repositories.Executor, evaluation models.EvaluationToCreate) error
	GetEvaluation(ctx context.Context, exec repositories.Executor, evaluationId uuid.UUID) (models.Evaluation, error)
	ListEvaluations(ctx context.Context, exec repositories.Executor, projectId uuid.UUID) ([]models.Evaluation, error)
	ListEvaluationResults(ctx context.Context, exec repositories.Executor, evaluationId uuid.UUID) ([]models.EvaluationResult, error)
}

type EvaluationUsecase struct {
	enforceSecurity      security.EnforceSecurityProject
	executorFactory      executor_factory.ExecutorFactory
	transactionFactory   executor_factory.TransactionFactory
	projectRepository    ProjectRepository
	datasetRepository    DatasetRepository
	checklistRepository  ChecklistRepository
	evaluationRepository EvaluationRepository
	taskQueueRepository  repositories.TaskQueueRepository
}

func validateEvaluationInput(input models.CreateEvaluationInput) error {
	if input.DatasetId == uuid.Nil {
		return errors.Wrap(models.BadParameterError, "a dataset is required")
	}
	if input.ChecklistId == uuid.Nil {
		return errors.Wrap(models.BadParameterError, "a checklist is required")
	}
	if len(input.Models) == 0 {
		return models.ErrNoModelSelected
	}
	if len(input.Models) > models.MaxModelsPerEvaluation {
		return models.ErrTooManyModels
	}
	if pure_utils.HasDuplicates(input.Models) {
		return errors.Wrap(models.BadParameterError, "a model can only be selected once")
	}
	for _, model := range input.Models {
		if !models.IsKnownModel(model) {
			return errors.Wrapf(models.ErrUnknownModel, "model %q", model)
		}
	}
	return nil
}

// CreateEvaluation records a pending evaluation and enqueues its execution in
// the same transaction. The evaluation itself runs in the background worker.
func (usecase *EvaluationUsecase) CreateEvaluation(ctx context.Context, input models.CreateEvaluationInput) (models.Evaluation, error) {
	if err := validateEvaluationInput(input); err != nil {
		return models.Evaluation{}, err
	}

	exec := usecase.executorFactory.NewExecutor()
	project, err := usecase.projectRepository.GetProjectById(ctx, exec, input.ProjectId)
	if err != nil {
		return models.Evaluation{}, err
	}
	if err := usecase.enforceSecurity.WriteProject(project); err != nil {
		return models.Evaluation{}, err
	}

	dataset, err := usecase.datasetRepository.GetDataset(ctx, exec, input.DatasetId)
	if err != nil {
		return models.Evaluation{}, err
	}
	if err := usecase.enforceSecurity.ProjectResource(project, dataset.ProjectId); err != nil {
		return models.Evaluation{}, err
	}
	checklist, err := usecase.checklistRepository.GetChecklist(ctx, exec, input.ChecklistId)
	if err != nil {
		return models.Evaluation{}, err
	}
	if err := usecase.enforceSecurity.ProjectResource(project, checklist.ProjectId); err != nil {
		return models.Evaluation{}, err
	}

	if len(dataset.Prompts) == 0 {
		return models.Evaluation{}, errors.Wrapf(models.BadParameterError, "dataset %s has no prompt", dataset.Slug)
	}

	toCreate := models.EvaluationToCreate{
		Id:          uuid.New(),
		ProjectId:   project.Id,
		DatasetId:   dataset.Id,
		ChecklistId: checklist.Id,
		Models:      input.Models,
		TotalRuns:   dataset.NbVariations() * len(input.Models),
	}

	evaluation, err := executor_factory.TransactionReturnValue(ctx, usecase.transactionFactory,
		func(tx repositories.Transaction) (models.Evaluation, error) {
			if err := usecase.evaluationRepository.CreateEvaluation(ctx, tx, toCreate); err != nil {
				return models.Evaluation{}, err
			}
			if err := usecase.taskQueueRepository.EnqueueEvaluationTask(ctx, tx, toCreate.Id); err != nil {
				return models.Evaluation{}, err
			}
			return usecase.evaluationRepository.GetEvaluation(ctx, tx, toCreate.Id)
		})
	if err != nil {
		return models.Evaluation{}, err
	}

	utils.LoggerFromContext(ctx).InfoContext(ctx, "evaluation created",
		"evaluation_id", evaluation.Id,
		"models", evaluation.Models,
		"total_runs", evaluation.TotalRuns,
	)
	analytics.TrackEvent(ctx, models.AnalyticsEvaluationCreated, map[string]interface{}{
		"evaluation_id": evaluation.Id,
		"models":        evaluation.Models,
	})
	return evaluation, nil
}

func (usecase *EvaluationUsecase) ListEvaluations(ctx context.Context, projectId uuid.UUID) ([]models.Evaluation, error) {
	exec := usecase.executorFactory.NewExecutor()
	project, err := usecase.projectRepository.GetProjectById(ctx, exec, projectId)
	if err != nil {
		return nil, err
	}
	if err := usecase.enforceSecurity.ReadProject(project); err != nil {
		return nil, err
	}
	return usecase.evaluationRepository.ListEvaluations(ctx, exec, projectId)
}

func (usecase *EvaluationUsecase) GetEvaluation(ctx context.Context, evaluationId uuid.UUID) (models.EvaluationWithResults, error) {
	exec := usecase.executorFactory.NewExecutor()
	evaluation, err := usecase.evaluationRepository.GetEvaluation(ctx, exec, evaluationId)
	if err != nil {
		return models.EvaluationWithResults{}, err
	}
	project, err := usecase.projectRepository.GetProjectById(ctx, exec, evaluation.ProjectId)
	if err != nil {
		return models.EvaluationWithResults{}, err
	}
	if err := usecase.enforceSecurity.ReadProject(project); err != nil {
		return models.EvaluationWithResults{}, err
	}

	results, err := usecase.evaluationRepository.ListEvaluationResults(ctx, exec, evaluationId)
	if err != nil {
		return models.EvaluationWithResults{}, err
	}

	return models.EvaluationWithResults{
		Evaluation: evaluation,
		Results:    results,
		Summaries:  models.SummarizeResults(evaluation.Models, results),
	}, nil
}
