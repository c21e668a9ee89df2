package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/guregu/null/v5"

	"github.com/promptdeck/promptdeck-backend/models"
	"github.com/promptdeck/promptdeck-backend/utils"
)

type CreateEvaluationBodyDto struct {
	DatasetId   string   `json:"datasetId"`
	ChecklistId string   `json:"checklistId"`
	Models      []string `json:"models"`
}

// Missing identifiers are reported by the usecase validation
func AdaptCreateEvaluationInput(projectId uuid.UUID, body CreateEvaluationBodyDto) (models.CreateEvaluationInput, error) {
	input := models.CreateEvaluationInput{ProjectId: projectId, Models: body.Models}
	if body.DatasetId != "" {
		id, err := utils.ParseUuid(body.DatasetId)
		if err != nil {
			return input, err
		}
		input.DatasetId = id
	}
	if body.ChecklistId != "" {
		id, err := utils.ParseUuid(body.ChecklistId)
		if err != nil {
			return input, err
		}
		input.ChecklistId = id
	}
	return input, nil
}

type APIEvaluationCreated struct {
	EvaluationId             string `json:"evaluationId"`
	EstimatedDurationSeconds int    `json:"estimatedDurationSeconds"`
}

func AdaptEvaluationCreatedDto(evaluation models.Evaluation) APIEvaluationCreated {
	return APIEvaluationCreated{
		EvaluationId:             evaluation.Id.String(),
		EstimatedDurationSeconds: int(models.EstimatedEvaluationDuration(len(evaluation.Models)).Seconds()),
	}
}

type APIEvaluation struct {
	Id                string    `json:"id"`
	ProjectId         string    `json:"projectId"`
	DatasetId         string    `json:"datasetId"`
	ChecklistId       string    `json:"checklistId"`
	Models            []string  `json:"models"`
	Status            string    `json:"status"`
	TotalRuns         int       `json:"totalRuns"`
	CompletedRuns     int       `json:"completedRuns"`
	Progress          int       `json:"progress"`
	EstimatedProgress int       `json:"estimatedProgress"`
	CreatedAt         time.Time `json:"createdAt"`
	StartedAt         null.Time `json:"startedAt"`
	CompletedAt       null.Time `json:"completedAt"`
}

func AdaptEvaluationDto(evaluation models.Evaluation, now time.Time) APIEvaluation {
	estimated := 0
	if evaluation.StartedAt != nil || evaluation.Status.IsFinished() {
		startedAt := evaluation.CreatedAt
		if evaluation.StartedAt != nil {
			startedAt = *evaluation.StartedAt
		}
		estimated = models.EstimatedProgress(startedAt, now, len(evaluation.Models), evaluation.Status.IsFinished())
	}
	return APIEvaluation{
		Id:                evaluation.Id.String(),
		ProjectId:         evaluation.ProjectId.String(),
		DatasetId:         evaluation.DatasetId.String(),
		ChecklistId:       evaluation.ChecklistId.String(),
		Models:            evaluation.Models,
		Status:            string(evaluation.Status),
		TotalRuns:         evaluation.TotalRuns,
		CompletedRuns:     evaluation.CompletedRuns,
		Progress:          evaluation.Progress(),
		EstimatedProgress: estimated,
		CreatedAt:         evaluation.CreatedAt,
		StartedAt:         null.TimeFromPtr(evaluation.StartedAt),
		CompletedAt:       null.TimeFromPtr(evaluation.CompletedAt),
	}
}

type APIEvaluationResult struct {
	Id               string               `json:"id"`
	PromptId         string               `json:"promptId"`
	VariationId      null.String          `json:"variationId"`
	Model            string               `json:"model"`
	Output           string               `json:"output"`
	Passed           bool                 `json:"passed"`
	Checks           []models.CheckResult `json:"checks"`
	Status           string               `json:"status"`
	Error            null.String          `json:"error"`
	DurationMs       int64                `json:"durationMs"`
	PromptTokens     int                  `json:"promptTokens"`
	CompletionTokens int                  `json:"completionTokens"`
}

func AdaptEvaluationResultDto(result models.EvaluationResult) APIEvaluationResult {
	var variationId null.String
	if result.VariationId != nil {
		variationId = null.StringFrom(result.VariationId.String())
	}
	checks := result.Checks
	if checks == nil {
		checks = []models.CheckResult{}
	}
	return APIEvaluationResult{
		Id:               result.Id.String(),
		PromptId:         result.PromptId.String(),
		VariationId:      variationId,
		Model:            result.Model,
		Output:           result.Output,
		Passed:           result.Passed,
		Checks:           checks,
		Status:           string(result.Status),
		Error:            null.StringFromPtr(result.Error),
		DurationMs:       result.DurationMs,
		PromptTokens:     result.PromptTokens,
		CompletionTokens: result.CompletionTokens,
	}
}

type APIModelSummary struct {
	Model         string  `json:"model"`
	Runs          int     `json:"runs"`
	Passed        int     `json:"passed"`
	Errors        int     `json:"errors"`
	PassRate      float64 `json:"passRate"`
	AvgDurationMs int64   `json:"avgDurationMs"`
}

func AdaptModelSummaryDto(summary models.EvaluationModelSummary) APIModelSummary {
	return APIModelSummary{
		Model:         summary.Model,
		Runs:          summary.Runs,
		Passed:        summary.Passed,
		Errors:        summary.Errors,
		PassRate:      summary.PassRate(),
		AvgDurationMs: summary.AvgDurationMs,
	}
}

type APIEvaluationWithResults struct {
	APIEvaluation
	Results   []APIEvaluationResult `json:"results"`
	Summaries []APIModelSummary     `json:"summaries"`
}

func AdaptEvaluationWithResultsDto(evaluation models.EvaluationWithResults, now time.Time) APIEvaluationWithResults {
	return APIEvaluationWithResults{
		APIEvaluation: AdaptEvaluationDto(evaluation.Evaluation, now),
		Results:       append([]APIEvaluationResult{}, utils.Map(evaluation.Results, AdaptEvaluationResultDto)...),
		Summaries:     append([]APIModelSummary{}, utils.Map(evaluation.Summaries, AdaptModelSummaryDto)...),
	}
}
