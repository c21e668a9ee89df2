package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	MaxModelsPerEvaluation = 3
	// Heuristic duration of one model run over a dataset, used for the progress estimate
	EstimatedSecondsPerModel = 15
)

type EvaluationStatus string

const (
	EvaluationPending   EvaluationStatus = "pending"
	EvaluationRunning   EvaluationStatus = "running"
	EvaluationCompleted EvaluationStatus = "completed"
	EvaluationFailed    EvaluationStatus = "failed"
)

func (s EvaluationStatus) IsFinished() bool {
	return s == EvaluationCompleted || s == EvaluationFailed
}

type Evaluation struct {
	Id            uuid.UUID
	ProjectId     uuid.UUID
	DatasetId     uuid.UUID
	ChecklistId   uuid.UUID
	Models        []string
	Status        EvaluationStatus
	TotalRuns     int
	CompletedRuns int
	CreatedAt     time.Time
	StartedAt     *time.Time
	CompletedAt   *time.Time
}

type CreateEvaluationInput struct {
	ProjectId   uuid.UUID
	DatasetId   uuid.UUID
	ChecklistId uuid.UUID
	Models      []string
}

type EvaluationToCreate struct {
	Id          uuid.UUID
	ProjectId   uuid.UUID
	DatasetId   uuid.UUID
	ChecklistId uuid.UUID
	Models      []string
	TotalRuns   int
}

type EvaluationResultStatus string

const (
	EvaluationResultSuccess EvaluationResultStatus = "success"
	EvaluationResultError   EvaluationResultStatus = "error"
)

type EvaluationResult struct {
	Id               uuid.UUID
	EvaluationId     uuid.UUID
	PromptId         uuid.UUID
	VariationId      *uuid.UUID
	Model            string
	Output           string
	Passed           bool
	Checks           []CheckResult
	Status           EvaluationResultStatus
	Error            *string
	DurationMs       int64
	PromptTokens     int
	CompletionTokens int
	CreatedAt        time.Time
}

type EvaluationModelSummary struct {
	Model         string
	Runs          int
	Passed        int
	Errors        int
	AvgDurationMs int64
}

func (s EvaluationModelSummary) PassRate() float64 {
	if s.Runs == 0 {
		return 0
	}
	return float64(s.Passed) / float64(s.Runs)
}

type EvaluationWithResults struct {
	Evaluation
	Results   []EvaluationResult
	Summaries []EvaluationModelSummary
}

// Estimated duration of an evaluation, the same figure the frontend uses to drive its progress bar
func EstimatedEvaluationDuration(nbModels int) time.Duration {
	return time.Duration(nbModels*EstimatedSecondsPerModel) * time.Second
}

// EstimatedProgress is the cosmetic progress counter: the elapsed share of the
// estimated duration, capped at 99 until the evaluation is finished.
func EstimatedProgress(startedAt time.Time, now time.Time, nbModels int, finished bool) int {
	if finished {
		return 100
	}
	estimate := EstimatedEvaluationDuration(nbModels)
	if estimate <= 0 || now.Before(startedAt) {
		return 0
	}
	progress := int(now.Sub(startedAt) * 100 / estimate)
	return min(progress, 99)
}

// Share of the runs already recorded, in percent
func (e Evaluation) Progress() int {
	if e.Status.IsFinished() {
		return 100
	}
	if e.TotalRuns == 0 {
		return 0
	}
	return min(e.CompletedRuns*100/e.TotalRuns, 99)
}

// SummarizeResults aggregates the results per model, in the order of the evaluated models
func SummarizeResults(evaluatedModels []string, results []EvaluationResult) []EvaluationModelSummary {
	summaries := make([]EvaluationModelSummary, len(evaluatedModels))
	index := make(map[string]int, len(evaluatedModels))
	for i, model := range evaluatedModels {
		summaries[i] = EvaluationModelSummary{Model: model}
		index[model] = i
	}

	totalDurations := make([]int64, len(evaluatedModels))
	for _, result := range results {
		i, found := index[result.Model]
		if !found {
			continue
		}
		summaries[i].Runs++
		totalDurations[i] += result.DurationMs
		if result.Status == EvaluationResultError {
			summaries[i].Errors++
		} else if result.Passed {
			summaries[i].Passed++
		}
	}

	for i := range summaries {
		if summaries[i].Runs > 0 {
			summaries[i].AvgDurationMs = totalDurations[i] / int64(summaries[i].Runs)
		}
	}
	return summaries
}
