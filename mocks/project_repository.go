package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/promptdeck/promptdeck-backend/models"
	"github.com/promptdeck/promptdeck-backend/repositories"
)

type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) ListProjects(ctx context.Context, exec repositories.Executor, organizationId uuid.UUID) ([]models.Project, error) {
	args := m.Called(ctx, exec, organizationId)
	return args.Get(0).([]models.Project), args.Error(1)
}

func (m *ProjectRepository) GetProjectById(ctx context.Context, exec repositories.Executor, projectId uuid.UUID) (models.Project, error) {
	args := m.Called(ctx, exec, projectId)
	return args.Get(0).(models.Project), args.Error(1)
}

func (m *ProjectRepository) GetDailyUsage(ctx context.Context, exec repositories.Executor, filter models.UsageFilter) ([]models.DailyUsage, error) {
	args := m.Called(ctx, exec, filter)
	return args.Get(0).([]models.DailyUsage), args.Error(1)
}
