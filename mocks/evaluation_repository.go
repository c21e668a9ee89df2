package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/promptdeck/promptdeck-backend/models"
	"github.com/promptdeck/promptdeck-backend/repositories"
)

type EvaluationRepository struct {
	mock.Mock
}

func (m *EvaluationRepository) CreateEvaluation(ctx context.Context, exec repositories.Executor, evaluation models.EvaluationToCreate) error {
	args := m.Called(ctx, exec, evaluation)
	return args.Error(0)
}

func (m *EvaluationRepository) GetEvaluation(ctx context.Context, exec repositories.Executor, evaluationId uuid.UUID) (models.Evaluation, error) {
	args := m.Called(ctx, exec, evaluationId)
	return args.Get(0).(models.Evaluation), args.Error(1)
}

func (m *EvaluationRepository) ListEvaluations(ctx context.Context, exec repositories.Executor, projectId uuid.UUID) ([]models.Evaluation, error) {
	args := m.Called(ctx, exec, projectId)
	return args.Get(0).([]models.Evaluation), args.Error(1)
}

func (m *EvaluationRepository) StartEvaluation(ctx context.Context, exec repositories.Executor, evaluationId uuid.UUID, startedAt time.Time) error {
	args := m.Called(ctx, exec, evaluationId, startedAt)
	return args.Error(0)
}

func (m *EvaluationRepository) IncrementCompletedRuns(ctx context.Context, exec repositories.Executor, evaluationId uuid.UUID) error {
	args := m.Called(ctx, exec, evaluationId)
	return args.Error(0)
}

func (m *EvaluationRepository) FinishEvaluation(
	ctx context.Context,
	exec repositories.Executor,
	evaluationId uuid.UUID,
	status models.EvaluationStatus,
	completedAt time.Time,
) error {
	args := m.Called(ctx, exec, evaluationId, status, completedAt)
	return args.Error(0)
}

func (m *EvaluationRepository) DeleteEvaluationResults(ctx context.Context, exec repositories.Executor, evaluationId uuid.UUID) error {
	args := m.Called(ctx, exec, evaluationId)
	return args.Error(0)
}

func (m *EvaluationRepository) InsertEvaluationResult(ctx context.Context, exec repositories.Executor, result models.EvaluationResult) error {
	args := m.Called(ctx, exec, result)
	return args.Error(0)
}

func (m *EvaluationRepository) ListEvaluationResults(
	ctx context.Context,
	exec repositories.Executor,
	evaluationId uuid.UUID,
) ([]models.EvaluationResult, error) {
	args := m.Called(ctx, exec, evaluationId)
	return args.Get(0).([]models.EvaluationResult), args.Error(1)
}
