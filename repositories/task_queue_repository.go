package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/riverqueue/river"

	"github.com/promptdeck/promptdeck-backend/models"
	"github.com/promptdeck/promptdeck-backend/utils"
)

const (
	QUEUE_EVALUATIONS = "evaluations"
	QUEUE_MAINTENANCE = "maintenance"

	nbRetriesEvaluation = 3
	priorityEvaluation  = 2 // nb: higher number is lower priority (between 1 and 4)
)

type TaskQueueRepository interface {
	EnqueueEvaluationTask(ctx context.Context, tx Transaction, evaluationId uuid.UUID) error
}

type riverRepository struct {
	client *river.Client[pgx.Tx]
}

func NewTaskQueueRepository(client *river.Client[pgx.Tx]) TaskQueueRepository {
	return riverRepository{client: client}
}

// The job is inserted in the transaction creating the evaluation, it is only visible to workers once committed
func (r riverRepository) EnqueueEvaluationTask(ctx context.Context, tx Transaction, evaluationId uuid.UUID) error {
	res, err := r.client.InsertTx(ctx, tx.RawTx(), models.EvaluationJobArgs{
		EvaluationId: evaluationId,
	}, &river.InsertOpts{
		MaxAttempts: nbRetriesEvaluation,
		Priority:    priorityEvaluation,
		Queue:       QUEUE_EVALUATIONS,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
		},
	})
	if err != nil {
		return err
	}
	utils.LoggerFromContext(ctx).DebugContext(ctx, "Enqueued evaluation task",
		"evaluation_id", evaluationId.String(), "job_id", res.Job.ID)
	return nil
}
