package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/promptdeck/promptdeck-backend/models"
	"github.com/promptdeck/promptdeck-backend/repositories"
)

type DatasetRepository struct {
	mock.Mock
}

func (m *DatasetRepository) ListDatasets(ctx context.Context, exec repositories.Executor, projectId uuid.UUID) ([]models.Dataset, error) {
	args := m.Called(ctx, exec, projectId)
	return args.Get(0).([]models.Dataset), args.Error(1)
}

func (m *DatasetRepository) GetDataset(ctx context.Context, exec repositories.Executor, datasetId uuid.UUID) (models.Dataset, error) {
	args := m.Called(ctx, exec, datasetId)
	return args.Get(0).(models.Dataset), args.Error(1)
}

func (m *DatasetRepository) CreateDataset(
	ctx context.Context,
	tx repositories.Transaction,
	datasetId uuid.UUID,
	input models.CreateDatasetInput,
) error {
	args := m.Called(ctx, tx, datasetId, input)
	return args.Error(0)
}
