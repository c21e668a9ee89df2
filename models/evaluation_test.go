package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEstimatedProgress(t *testing.T) {
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("scales with the number of models", func(t *testing.T) {
		assert.Equal(t, 50, EstimatedProgress(start, start.Add(15*time.Second), 2, false))
		assert.Equal(t, 100/3, EstimatedProgress(start, start.Add(15*time.Second), 3, false))
	})

	t.Run("capped before completion", func(t *testing.T) {
		assert.Equal(t, 99, EstimatedProgress(start, start.Add(time.Hour), 1, false))
	})

	t.Run("finished", func(t *testing.T) {
		assert.Equal(t, 100, EstimatedProgress(start, start, 1, true))
	})

	t.Run("clock skew", func(t *testing.T) {
		assert.Equal(t, 0, EstimatedProgress(start, start.Add(-time.Second), 1, false))
	})

	t.Run("no models", func(t *testing.T) {
		assert.Equal(t, 0, EstimatedProgress(start, start.Add(time.Second), 0, false))
	})
}

func TestEvaluationProgress(t *testing.T) {
	assert.Equal(t, 0, Evaluation{Status: EvaluationPending}.Progress())
	assert.Equal(t, 25, Evaluation{Status: EvaluationRunning, TotalRuns: 8, CompletedRuns: 2}.Progress())
	assert.Equal(t, 99, Evaluation{Status: EvaluationRunning, TotalRuns: 2, CompletedRuns: 2}.Progress())
	assert.Equal(t, 100, Evaluation{Status: EvaluationFailed, TotalRuns: 2}.Progress())
}

func TestEstimatedEvaluationDuration(t *testing.T) {
	assert.Equal(t, 45*time.Second, EstimatedEvaluationDuration(3))
}

func TestDatasetNbVariations(t *testing.T) {
	dataset := Dataset{Prompts: []DatasetPrompt{
		{Variations: []DatasetPromptVariation{{}, {}}},
		{},
	}}
	assert.Equal(t, 3, dataset.NbVariations())
}

func TestSummarizeResults(t *testing.T) {
	results := []EvaluationResult{
		{Model: "gpt-4o", Passed: true, Status: EvaluationResultSuccess, DurationMs: 100},
		{Model: "gpt-4o", Passed: false, Status: EvaluationResultSuccess, DurationMs: 300},
		{Model: "claude-2.1", Passed: false, Status: EvaluationResultError, DurationMs: 50},
		{Model: "not-evaluated", Passed: true, Status: EvaluationResultSuccess},
	}

	summaries := SummarizeResults([]string{"gpt-4o", "claude-2.1", "gpt-4"}, results)

	assert.Equal(t, []EvaluationModelSummary{
		{Model: "gpt-4o", Runs: 2, Passed: 1, Errors: 0, AvgDurationMs: 200},
		{Model: "claude-2.1", Runs: 1, Passed: 0, Errors: 1, AvgDurationMs: 50},
		{Model: "gpt-4", Runs: 0},
	}, summaries)
	assert.Equal(t, 0.5, summaries[0].PassRate())
	assert.Equal(t, float64(0), summaries[2].PassRate())
}
