package dbmodels

import (
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/promptdeck/promptdeck-backend/models"
	"github.com/promptdeck/promptdeck-backend/utils"
)

type DBEvaluation struct {
	Id            uuid.UUID  `db:"id"`
	ProjectId     uuid.UUID  `db:"project_id"`
	DatasetId     uuid.UUID  `db:"dataset_id"`
	ChecklistId   uuid.UUID  `db:"checklist_id"`
	Models        []string   `db:"models"`
	Status        string     `db:"status"`
	TotalRuns     int        `db:"total_runs"`
	CompletedRuns int        `db:"completed_runs"`
	CreatedAt     time.Time  `db:"created_at"`
	StartedAt     *time.Time `db:"started_at"`
	CompletedAt   *time.Time `db:"completed_at"`
}

type DBEvaluationResult struct {
	Id               uuid.UUID  `db:"id"`
	EvaluationId     uuid.UUID  `db:"evaluation_id"`
	PromptId         uuid.UUID  `db:"prompt_id"`
	VariationId      *uuid.UUID `db:"variation_id"`
	Model            string     `db:"model"`
	Output           string     `db:"output"`
	Passed           bool       `db:"passed"`
	Checks           []byte     `db:"checks"`
	Status           string     `db:"status"`
	Error            *string    `db:"error"`
	DurationMs       int64      `db:"duration_ms"`
	PromptTokens     int        `db:"prompt_tokens"`
	CompletionTokens int        `db:"completion_tokens"`
	CreatedAt        time.Time  `db:"created_at"`
}

const (
	TABLE_EVALUATION        = "evaluation"
	TABLE_EVALUATION_RESULT = "evaluation_result"
)

var (
	ColumnsSelectEvaluation       = utils.ColumnList[DBEvaluation]()
	ColumnsSelectEvaluationResult = utils.ColumnList[DBEvaluationResult]()
)

func AdaptEvaluation(db DBEvaluation) (models.Evaluation, error) {
	return models.Evaluation{
		Id:            db.Id,
		ProjectId:     db.ProjectId,
		DatasetId:     db.DatasetId,
		ChecklistId:   db.ChecklistId,
		Models:        db.Models,
		Status:        models.EvaluationStatus(db.Status),
		TotalRuns:     db.TotalRuns,
		CompletedRuns: db.CompletedRuns,
		CreatedAt:     db.CreatedAt,
		StartedAt:     db.StartedAt,
		CompletedAt:   db.CompletedAt,
	}, nil
}

func AdaptEvaluationResult(db DBEvaluationResult) (models.EvaluationResult, error) {
	var checks []models.CheckResult
	if len(db.Checks) > 0 {
		if err := json.Unmarshal(db.Checks, &checks); err != nil {
			return models.EvaluationResult{}, errors.Wrapf(err, "invalid checks on evaluation result %s", db.Id)
		}
	}
	return models.EvaluationResult{
		Id:               db.Id,
		EvaluationId:     db.EvaluationId,
		PromptId:         db.PromptId,
		VariationId:      db.VariationId,
		Model:            db.Model,
		Output:           db.Output,
		Passed:           db.Passed,
		Checks:           checks,
		Status:           models.EvaluationResultStatus(db.Status),
		Error:            db.Error,
		DurationMs:       db.DurationMs,
		PromptTokens:     db.PromptTokens,
		CompletionTokens: db.CompletionTokens,
		CreatedAt:        db.CreatedAt,
	}, nil
}
