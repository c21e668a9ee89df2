package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/promptdeck/promptdeck-backend/models"
	"github.com/promptdeck/promptdeck-backend/repositories/dbmodels"
)

func (repo *DbRepository) CreateEvaluation(ctx context.Context, exec Executor, evaluation models.EvaluationToCreate) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_EVALUATION).
			Columns("id", "project_id", "dataset_id", "checklist_id", "models", "status", "total_runs").
			Values(
				evaluation.Id,
				evaluation.ProjectId,
				evaluation.DatasetId,
				evaluation.ChecklistId,
				evaluation.Models,
				string(models.EvaluationPending),
				evaluation.TotalRuns,
			),
	)
}

func (repo *DbRepository) GetEvaluation(ctx context.Context, exec Executor, evaluationId uuid.UUID) (models.Evaluation, error) {
	return SqlToModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.ColumnsSelectEvaluation...).
			From(dbmodels.TABLE_EVALUATION).
			Where(squirrel.Eq{"id": evaluationId}),
		dbmodels.AdaptEvaluation,
	)
}

func (repo *DbRepository) ListEvaluations(ctx context.Context, exec Executor, projectId uuid.UUID) ([]models.Evaluation, error) {
	return SqlToListOfModels(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.ColumnsSelectEvaluation...).
			From(dbmodels.TABLE_EVALUATION).
			Where(squirrel.Eq{"project_id": projectId}).
			OrderBy("created_at DESC"),
		dbmodels.AdaptEvaluation,
	)
}

// StartEvaluation moves a pending evaluation to running. A retried job finds it
// already running and restarts its counter.
func (repo *DbRepository) StartEvaluation(ctx context.Context, exec Executor, evaluationId uuid.UUID, startedAt time.Time) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Update(dbmodels.TABLE_EVALUATION).
			Set("status", string(models.EvaluationRunning)).
			Set("started_at", startedAt).
			Set("completed_runs", 0).
			Where(squirrel.Eq{"id": evaluationId}),
	)
}

func (repo *DbRepository) IncrementCompletedRuns(ctx context.Context, exec Executor, evaluationId uuid.UUID) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Update(dbmodels.TABLE_EVALUATION).
			Set("completed_runs", squirrel.Expr("completed_runs + 1")).
			Where(squirrel.Eq{"id": evaluationId}),
	)
}

func (repo *DbRepository) FinishEvaluation(
	ctx context.Context,
	exec Executor,
	evaluationId uuid.UUID,
	status models.EvaluationStatus,
	completedAt time.Time,
) error {
	if !status.IsFinished() {
		return errors.Newf("cannot finish evaluation with status %s", status)
	}
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Update(dbmodels.TABLE_EVALUATION).
			Set("status", string(status)).
			Set("completed_at", completedAt).
			Where(squirrel.Eq{"id": evaluationId}),
	)
}

// Removes the results of a previous attempt of the evaluation job
func (repo *DbRepository) DeleteEvaluationResults(ctx context.Context, exec Executor, evaluationId uuid.UUID) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Delete(dbmodels.TABLE_EVALUATION_RESULT).
			Where(squirrel.Eq{"evaluation_id": evaluationId}),
	)
}

func (repo *DbRepository) InsertEvaluationResult(ctx context.Context, exec Executor, result models.EvaluationResult) error {
	checks, err := json.Marshal(result.Checks)
	if err != nil {
		return errors.Wrap(err, "could not marshal check results")
	}

	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_EVALUATION_RESULT).
			Columns(
				"id",
				"evaluation_id",
				"prompt_id",
				"variation_id",
				"model",
				"output",
				"passed",
				"checks",
				"status",
				"error",
				"duration_ms",
				"prompt_tokens",
				"completion_tokens",
			).
			Values(
				result.Id,
				result.EvaluationId,
				result.PromptId,
				result.VariationId,
				result.Model,
				result.Output,
				result.Passed,
				checks,
				string(result.Status),
				result.Error,
				result.DurationMs,
				result.PromptTokens,
				result.CompletionTokens,
			),
	)
}

func (repo *DbRepository) ListEvaluationResults(ctx context.Context, exec Executor, evaluationId uuid.UUID) ([]models.EvaluationResult, error) {
	return SqlToListOfModels(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.ColumnsSelectEvaluationResult...).
			From(dbmodels.TABLE_EVALUATION_RESULT).
			Where(squirrel.Eq{"evaluation_id": evaluationId}).
			OrderBy("created_at", "model"),
		dbmodels.AdaptEvaluationResult,
	)
}
