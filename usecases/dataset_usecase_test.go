package usecases

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/promptdeck/promptdeck-backend/mocks"
	"github.com/promptdeck/promptdeck-backend/models"
	"github.com/promptdeck/promptdeck-backend/repositories"
)

func TestCreateDataset(t *testing.T) {
	ctx := context.Background()
	project := models.Project{Id: uuid.New(), OrgId: uuid.New()}
	input := models.CreateDatasetInput{
		ProjectId: project.Id,
		Slug:      "support-questions",
		Prompts: []models.CreateDatasetPromptInput{
			{
				Messages: []models.ChatMessage{{Role: models.ChatRoleUser, Content: "Where is my order {{ order_id }}?"}},
				Variations: []models.DatasetPromptVariation{
					{Variables: map[string]string{"order_id": "42"}, IdealOutput: "In transit"},
				},
			},
		},
	}

	setup := func() (*DatasetUsecase, *mocks.EnforceSecurity, *mocks.ProjectRepository, *mocks.DatasetRepository, *mocks.Transaction) {
		enforceSecurity := new(mocks.EnforceSecurity)
		executorFactory := new(mocks.ExecutorFactory)
		executor := new(mocks.Executor)
		tx := new(mocks.Transaction)
		transactionFactory := &mocks.TransactionFactory{TxMock: tx}
		projectRepository := new(mocks.ProjectRepository)
		datasetRepository := new(mocks.DatasetRepository)

		executorFactory.On("NewExecutor").Return(executor)
		transactionFactory.On("Transaction", ctx, mock.Anything).Return(nil)
		projectRepository.On("GetProjectById", ctx, executor, project.Id).Return(project, nil)

		return &DatasetUsecase{
			enforceSecurity:    enforceSecurity,
			executorFactory:    executorFactory,
			transactionFactory: transactionFactory,
			projectRepository:  projectRepository,
			datasetRepository:  datasetRepository,
		}, enforceSecurity, projectRepository, datasetRepository, tx
	}

	t.Run("creates the dataset with its prompts", func(t *testing.T) {
		usecase, enforceSecurity, _, datasetRepository, tx := setup()
		enforceSecurity.On("WriteProject", project).Return(nil)
		datasetRepository.On("CreateDataset", ctx, tx, mock.Anything, input).Return(nil)
		datasetRepository.On("GetDataset", ctx, tx, mock.Anything).
			Return(models.Dataset{Id: uuid.New(), ProjectId: project.Id, Slug: input.Slug}, nil)

		dataset, err := usecase.CreateDataset(ctx, input)

		require.NoError(t, err)
		assert.Equal(t, input.Slug, dataset.Slug)
		datasetRepository.AssertExpectations(t)
	})

	t.Run("duplicate slug", func(t *testing.T) {
		usecase, enforceSecurity, _, datasetRepository, tx := setup()
		enforceSecurity.On("WriteProject", project).Return(nil)
		datasetRepository.On("CreateDataset", ctx, tx, mock.Anything, input).Return(models.ConflictError)

		_, err := usecase.CreateDataset(ctx, input)

		assert.ErrorIs(t, err, models.ConflictError)
	})

	invalidInputs := map[string]func(in models.CreateDatasetInput) models.CreateDatasetInput{
		"empty slug": func(in models.CreateDatasetInput) models.CreateDatasetInput {
			in.Slug = ""
			return in
		},
		"slug with spaces": func(in models.CreateDatasetInput) models.CreateDatasetInput {
			in.Slug = "Support Questions"
			return in
		},
		"no prompt": func(in models.CreateDatasetInput) models.CreateDatasetInput {
			in.Prompts = nil
			return in
		},
		"unknown role": func(in models.CreateDatasetInput) models.CreateDatasetInput {
			in.Prompts = []models.CreateDatasetPromptInput{
				{Messages: []models.ChatMessage{{Role: "robot", Content: "beep"}}},
			}
			return in
		},
	}
	for name, modify := range invalidInputs {
		t.Run(name, func(t *testing.T) {
			usecase, _, projectRepository, _, _ := setup()

			_, err := usecase.CreateDataset(ctx, modify(input))

			assert.ErrorIs(t, err, models.BadParameterError)
			projectRepository.AssertNotCalled(t, "GetProjectById", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestCreateChecklist(t *testing.T) {
	ctx := context.Background()
	project := models.Project{Id: uuid.New(), OrgId: uuid.New()}

	setup := func() (*ChecklistUsecase, *mocks.EnforceSecurity, *mocks.ChecklistRepository, repositories.Executor) {
		enforceSecurity := new(mocks.EnforceSecurity)
		executorFactory := new(mocks.ExecutorFactory)
		executor := new(mocks.Executor)
		projectRepository := new(mocks.ProjectRepository)
		checklistRepository := new(mocks.ChecklistRepository)

		executorFactory.On("NewExecutor").Return(executor)
		projectRepository.On("GetProjectById", ctx, executor, project.Id).Return(project, nil)

		return &ChecklistUsecase{
			enforceSecurity:     enforceSecurity,
			executorFactory:     executorFactory,
			projectRepository:   projectRepository,
			checklistRepository: checklistRepository,
		}, enforceSecurity, checklistRepository, executor
	}

	t.Run("defaults to AND logic", func(t *testing.T) {
		usecase, enforceSecurity, checklistRepository, executor := setup()
		input := models.CreateChecklistInput{
			ProjectId: project.Id,
			Slug:      "polite",
			Checks:    []models.Check{{Type: models.CheckNotContains, Params: map[string]any{"value": "stupid"}}},
		}
		expected := input
		expected.Logic = models.ChecklistLogicAnd

		enforceSecurity.On("WriteProject", project).Return(nil)
		checklistRepository.On("CreateChecklist", ctx, executor, mock.Anything, expected).Return(nil)
		checklistRepository.On("GetChecklist", ctx, executor, mock.Anything).
			Return(models.Checklist{Id: uuid.New(), ProjectId: project.Id, Slug: "polite", Logic: models.ChecklistLogicAnd}, nil)

		checklist, err := usecase.CreateChecklist(ctx, input)

		require.NoError(t, err)
		assert.Equal(t, models.ChecklistLogicAnd, checklist.Logic)
		checklistRepository.AssertExpectations(t)
	})

	t.Run("unknown check type is rejected", func(t *testing.T) {
		usecase, _, checklistRepository, _ := setup()

		_, err := usecase.CreateChecklist(ctx, models.CreateChecklistInput{
			ProjectId: project.Id,
			Slug:      "mood",
			Logic:     models.ChecklistLogicOr,
			Checks:    []models.Check{{Type: "sentiment"}},
		})

		assert.ErrorIs(t, err, models.BadParameterError)
		checklistRepository.AssertNotCalled(t, "CreateChecklist", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
