package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/promptdeck/promptdeck-backend/repositories"
)

type TaskQueueRepository struct {
	mock.Mock
}

func (r *TaskQueueRepository) EnqueueEvaluationTask(ctx context.Context, tx repositories.Transaction, evaluationId uuid.UUID) error {
	args := r.Called(ctx, tx, evaluationId)
	return args.Error(0)
}
