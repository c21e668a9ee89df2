package usecases

import (
	"context"

	"github.com/google/uuid"

	"github.com/promptdeck/promptdeck-backend/models"
	"github.com/promptdeck/promptdeck-backend/repositories"
	"github.com/promptdeck/promptdeck-backend/usecases/analytics"
	"github.com/promptdeck/promptdeck-backend/usecases/checklist_eval"
	"github.com/promptdeck/promptdeck-backend/usecases/executor_factory"
	"github.com/promptdeck/promptdeck-backend/usecases/security"
)

type ChecklistRepository interface {
	ListChecklists(ctx context.Context, exec repositories.Executor, projectId uuid.UUID) ([]models.Checklist, error)
	GetChecklist(ctx context.Context, exec repositories.Executor, checklistId uuid.UUID) (models.Checklist, error)
	CreateChecklist(ctx context.Context, exec repositories.Executor, checklistId uuid.UUID, input models.CreateChecklistInput) error
}

type ChecklistUsecase struct {
	enforceSecurity     security.EnforceSecurityProject
	executorFactory     executor_factory.ExecutorFactory
	projectRepository   ProjectRepository
	checklistRepository ChecklistRepository
}

func (usecase *ChecklistUsecase) ListChecklists(ctx context.Context, projectId uuid.UUID) ([]models.Checklist, error) {
	exec := usecase.executorFactory.NewExecutor()
	project, err := usecase.projectRepository.GetProjectById(ctx, exec, projectId)
	if err != nil {
		return nil, err
	}
	if err := usecase.enforceSecurity.ReadProject(project); err != nil {
		return nil, err
	}
	return usecase.checklistRepository.ListChecklists(ctx, exec, projectId)
}

func (usecase *ChecklistUsecase) GetChecklist(ctx context.Context, checklistId uuid.UUID) (models.Checklist, error) {
	exec := usecase.executorFactory.NewExecutor()
	checklist, err := usecase.checklistRepository.GetChecklist(ctx, exec, checklistId)
	if err != nil {
		return models.Checklist{}, err
	}
	project, err := usecase.projectRepository.GetProjectById(ctx, exec, checklist.ProjectId)
	if err != nil {
		return models.Checklist{}, err
	}
	if err := usecase.enforceSecurity.ReadProject(project); err != nil {
		return models.Checklist{}, err
	}
	return checklist, nil
}

func (usecase *ChecklistUsecase) CreateChecklist(ctx context.Context, input models.CreateChecklistInput) (models.Checklist, error) {
	if input.Logic == "" {
		input.Logic = models.ChecklistLogicAnd
	}
	if err := validateSlug(input.Slug); err != nil {
		return models.Checklist{}, err
	}
	if err := checklist_eval.ValidateChecklist(input.Logic, input.Checks); err != nil {
		return models.Checklist{}, err
	}

	exec := usecase.executorFactory.NewExecutor()
	project, err := usecase.projectRepository.GetProjectById(ctx, exec, input.ProjectId)
	if err != nil {
		return models.Checklist{}, err
	}
	if err := usecase.enforceSecurity.WriteProject(project); err != nil {
		return models.Checklist{}, err
	}

	checklistId := uuid.New()
	if err := usecase.checklistRepository.CreateChecklist(ctx, exec, checklistId, input); err != nil {
		return models.Checklist{}, err
	}
	checklist, err := usecase.checklistRepository.GetChecklist(ctx, exec, checklistId)
	if err != nil {
		return models.Checklist{}, err
	}

	analytics.TrackEvent(ctx, models.AnalyticsChecklistCreated, map[string]interface{}{"checklist_id": checklist.Id})
	return checklist, nil
}
