package dto

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/promptdeck/promptdeck-backend/models"
)

func TestAdaptEvaluationDto_progress(t *testing.T) {
	startedAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	evaluation := models.Evaluation{
		Id:            uuid.New(),
		Models:        []string{"gpt-4o", "gpt-4"},
		Status:        models.EvaluationRunning,
		TotalRuns:     8,
		CompletedRuns: 2,
		CreatedAt:     startedAt.Add(-time.Second),
		StartedAt:     &startedAt,
	}

	// 2 models are estimated at 30 seconds
	dto := AdaptEvaluationDto(evaluation, startedAt.Add(15*time.Second))
	assert.Equal(t, 25, dto.Progress)
	assert.Equal(t, 50, dto.EstimatedProgress)
	assert.True(t, dto.StartedAt.Valid)
	assert.False(t, dto.CompletedAt.Valid)

	dto = AdaptEvaluationDto(evaluation, startedAt.Add(time.Hour))
	assert.Equal(t, 99, dto.EstimatedProgress)

	evaluation.Status = models.EvaluationCompleted
	dto = AdaptEvaluationDto(evaluation, startedAt.Add(10*time.Second))
	assert.Equal(t, 100, dto.Progress)
	assert.Equal(t, 100, dto.EstimatedProgress)

	pending := models.Evaluation{Models: []string{"gpt-4o"}, Status: models.EvaluationPending}
	assert.Zero(t, AdaptEvaluationDto(pending, time.Now()).EstimatedProgress)
}

func TestAdaptEvaluationCreatedDto(t *testing.T) {
	created := AdaptEvaluationCreatedDto(models.Evaluation{Id: uuid.New(), Models: []string{"a", "b", "c"}})
	assert.Equal(t, 45, created.EstimatedDurationSeconds)
}
