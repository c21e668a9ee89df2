package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/promptdeck/promptdeck-backend/models"
	"github.com/promptdeck/promptdeck-backend/repositories"
)

type ChecklistRepository struct {
	mock.Mock
}

func (m *ChecklistRepository) ListChecklists(ctx context.Context, exec repositories.Executor, projectId uuid.UUID) ([]models.Checklist, error) {
	args := m.Called(ctx, exec, projectId)
	return args.Get(0).([]models.Checklist), args.Error(1)
}

func (m *ChecklistRepository) GetChecklist(ctx context.Context, exec repositories.Executor, checklistId uuid.UUID) (models.Checklist, error) {
	args := m.Called(ctx, exec, checklistId)
	return args.Get(0).(models.Checklist), args.Error(1)
}

func (m *ChecklistRepository) CreateChecklist(
	ctx context.Context,
	exec repositories.Executor,
	checklistId uuid.UUID,
	input models.CreateChecklistInput,
) error {
	args := m.Called(ctx, exec, checklistId, input)
	return args.Error(0)
}
