package worker_jobs

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/promptdeck/promptdeck-backend/infra"
	"github.com/promptdeck/promptdeck-backend/mocks"
	"github.com/promptdeck/promptdeck-backend/models"
	"github.com/promptdeck/promptdeck-backend/repositories"
)

// In memory evaluation store, safe for the concurrent runs of the worker
type fakeEvaluationStore struct {
	mu         sync.Mutex
	evaluation models.Evaluation
	dataset    models.Dataset
	checklist  models.Checklist
	results    []models.EvaluationResult
	deletes    int
	finishedAs []models.EvaluationStatus
}

func (s *fakeEvaluationStore) GetEvaluation(ctx context.Context, exec repositories.Executor, evaluationId uuid.UUID) (models.Evaluation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if evaluationId != s.evaluation.Id {
		return models.Evaluation{}, models.NotFoundError
	}
	return s.evaluation, nil
}

func (s *fakeEvaluationStore) GetDataset(ctx context.Context, exec repositories.Executor, datasetId uuid.UUID) (models.Dataset, error) {
	return s.dataset, nil
}

func (s *fakeEvaluationStore) GetChecklist(ctx context.Context, exec repositories.Executor, checklistId uuid.UUID) (models.Checklist, error) {
	return s.checklist, nil
}

func (s *fakeEvaluationStore) DeleteEvaluationResults(ctx context.Context, exec repositories.Executor, evaluationId uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes++
	s.results = nil
	s.evaluation.CompletedRuns = 0
	return nil
}

func (s *fakeEvaluationStore) StartEvaluation(ctx context.Context, exec repositories.Executor, evaluationId uuid.UUID, startedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evaluation.Status = models.EvaluationRunning
	s.evaluation.StartedAt = &startedAt
	return nil
}

func (s *fakeEvaluationStore) InsertEvaluationResult(ctx context.Context, exec repositories.Executor, result models.EvaluationResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, result)
	return nil
}

func (s *fakeEvaluationStore) IncrementCompletedRuns(ctx context.Context, exec repositories.Executor, evaluationId uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evaluation.CompletedRuns++
	return nil
}

func (s *fakeEvaluationStore) FinishEvaluation(ctx context.Context, exec repositories.Executor, evaluationId uuid.UUID,
	status models.EvaluationStatus, completedAt time.Time,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evaluation.Status = status
	s.evaluation.CompletedAt = &completedAt
	s.finishedAs = append(s.finishedAs, status)
	return nil
}

func (s *fakeEvaluationStore) resultsOf(model string) []models.EvaluationResult {
	var out []models.EvaluationResult
	for _, r := range s.results {
		if r.Model == model {
			out = append(out, r)
		}
	}
	return out
}

func newFakeEvaluationStore() *fakeEvaluationStore {
	evaluationId := uuid.New()
	promptId := uuid.New()
	return &fakeEvaluationStore{
		evaluation: models.Evaluation{
			Id:        evaluationId,
			Models:    []string{"gpt-4o", "claude-3-haiku-20240307"},
			Status:    models.EvaluationPending,
			TotalRuns: 4,
		},
		dataset: models.Dataset{
			Id: uuid.New(),
			Prompts: []models.DatasetPrompt{{
				Id: promptId,
				Messages: []models.ChatMessage{
					{Role: models.ChatRoleUser, Content: "What is the capital of {{country}}?"},
				},
				Variations: []models.DatasetPromptVariation{
					{Id: uuid.New(), PromptId: promptId, Variables: map[string]string{"country": "France"}, IdealOutput: "Paris"},
					{Id: uuid.New(), PromptId: promptId, Variables: map[string]string{"country": "Italy"}, IdealOutput: "Rome"},
				},
			}},
		},
		checklist: models.Checklist{
			Logic: models.ChecklistLogicAnd,
			Checks: []models.Check{
				{Type: models.CheckNotContains, Params: map[string]any{"value": "sorry"}},
			},
		},
	}
}

func asksFor(model, country string) any {
	return mock.MatchedBy(func(req models.CompletionRequest) bool {
		return req.Params.Model == model &&
			len(req.Messages) == 1 &&
			req.Messages[0].Content == "What is the capital of "+country+"?"
	})
}

func newTestEvaluationWorker(store *fakeEvaluationStore, llm *mocks.LLMRepository) *EvaluationWorker {
	executorFactory := new(mocks.ExecutorFactory)
	executorFactory.On("NewExecutor").Return(new(mocks.Executor))
	return &EvaluationWorker{
		executorFactory: executorFactory,
		repository:      store,
		llmRepository:   llm,
		limiter:         rate.NewLimiter(rate.Inf, 1),
		concurrency:     2,
		timeout:         time.Minute,
		retryDelay:      0,
	}
}

func evaluationJob(evaluationId uuid.UUID, attempt, maxAttempts int) *river.Job[models.EvaluationJobArgs] {
	return &river.Job[models.EvaluationJobArgs]{
		JobRow: &rivertype.JobRow{Attempt: attempt, MaxAttempts: maxAttempts},
		Args:   models.EvaluationJobArgs{EvaluationId: evaluationId},
	}
}

func TestEvaluationWorker_runs_every_model_on_every_variation(t *testing.T) {
	store := newFakeEvaluationStore()
	llm := new(mocks.LLMRepository)
	llm.On("Complete", mock.Anything, asksFor("gpt-4o", "France")).Return(models.Completion{Content: "Paris"}, nil)
	llm.On("Complete", mock.Anything, asksFor("gpt-4o", "Italy")).Return(models.Completion{Content: "Rome"}, nil)
	llm.On("Complete", mock.Anything, asksFor("claude-3-haiku-20240307", "France")).
		Return(models.Completion{Content: "Paris", PromptTokens: 12, CompletionTokens: 1}, nil)
	llm.On("Complete", mock.Anything, asksFor("claude-3-haiku-20240307", "Italy")).
		Return(models.Completion{Content: "Sorry, I cannot answer"}, nil)

	err := newTestEvaluationWorker(store, llm).Work(context.Background(), evaluationJob(store.evaluation.Id, 1, 3))

	require.NoError(t, err)
	llm.AssertExpectations(t)
	assert.Len(t, store.results, 4)
	assert.Equal(t, 4, store.evaluation.CompletedRuns)
	assert.Equal(t, []models.EvaluationStatus{models.EvaluationCompleted}, store.finishedAs)
	assert.NotNil(t, store.evaluation.StartedAt)

	for _, r := range store.resultsOf("gpt-4o") {
		assert.Equal(t, models.EvaluationResultSuccess, r.Status)
		assert.True(t, r.Passed)
		assert.NotNil(t, r.VariationId)
		assert.Len(t, r.Checks, 1)
	}
	passed := 0
	for _, r := range store.resultsOf("claude-3-haiku-20240307") {
		if r.Passed {
			passed++
		}
	}
	assert.Equal(t, 1, passed)
}

func TestEvaluationWorker_retries_transient_errors(t *testing.T) {
	store := newFakeEvaluationStore()
	store.evaluation.Models = []string{"gpt-4o"}
	store.evaluation.TotalRuns = 2
	rateLimited := errors.Mark(errors.New("429 too many requests"), models.ErrTransientLLMError)

	llm := new(mocks.LLMRepository)
	llm.On("Complete", mock.Anything, asksFor("gpt-4o", "France")).Return(models.Completion{}, rateLimited).Once()
	llm.On("Complete", mock.Anything, asksFor("gpt-4o", "France")).Return(models.Completion{Content: "Paris"}, nil).Once()
	llm.On("Complete", mock.Anything, asksFor("gpt-4o", "Italy")).Return(models.Completion{Content: "Rome"}, nil).Once()

	err := newTestEvaluationWorker(store, llm).Work(context.Background(), evaluationJob(store.evaluation.Id, 1, 3))

	require.NoError(t, err)
	llm.AssertNumberOfCalls(t, "Complete", 3)
	for _, r := range store.results {
		assert.Equal(t, models.EvaluationResultSuccess, r.Status)
	}
}

func TestEvaluationWorker_records_final_errors(t *testing.T) {
	store := newFakeEvaluationStore()
	store.evaluation.Models = []string{"gpt-4o"}
	store.evaluation.TotalRuns = 2

	llm := new(mocks.LLMRepository)
	llm.On("Complete", mock.Anything, mock.Anything).Return(models.Completion{}, errors.New("invalid api key"))

	err := newTestEvaluationWorker(store, llm).Work(context.Background(), evaluationJob(store.evaluation.Id, 1, 3))

	require.NoError(t, err)
	// non transient errors are not retried
	llm.AssertNumberOfCalls(t, "Complete", 2)
	require.Len(t, store.results, 2)
	for _, r := range store.results {
		assert.Equal(t, models.EvaluationResultError, r.Status)
		require.NotNil(t, r.Error)
		assert.Contains(t, *r.Error, "invalid api key")
		assert.Empty(t, r.Checks)
	}
	assert.Equal(t, []models.EvaluationStatus{models.EvaluationFailed}, store.finishedAs)
}

func TestEvaluationWorker_skips_finished_evaluations(t *testing.T) {
	store := newFakeEvaluationStore()
	store.evaluation.Status = models.EvaluationCompleted
	llm := new(mocks.LLMRepository)

	err := newTestEvaluationWorker(store, llm).Work(context.Background(), evaluationJob(store.evaluation.Id, 2, 3))

	require.NoError(t, err)
	llm.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
	assert.Zero(t, store.deletes)
	assert.Empty(t, store.finishedAs)
}

func TestEvaluationWorker_marks_failed_on_last_attempt(t *testing.T) {
	store := newFakeEvaluationStore()
	llm := new(mocks.LLMRepository)
	job := evaluationJob(uuid.New(), 3, 3)

	err := newTestEvaluationWorker(store, llm).Work(context.Background(), job)

	assert.ErrorIs(t, err, models.NotFoundError)
	assert.Equal(t, []models.EvaluationStatus{models.EvaluationFailed}, store.finishedAs)
}

func TestPlanRuns(t *testing.T) {
	promptWithVariations := models.DatasetPrompt{
		Id:         uuid.New(),
		Variations: []models.DatasetPromptVariation{{Id: uuid.New()}, {Id: uuid.New()}},
	}
	promptWithout := models.DatasetPrompt{Id: uuid.New()}
	dataset := models.Dataset{Prompts: []models.DatasetPrompt{promptWithVariations, promptWithout}}

	runs := planRuns(dataset, []string{"gpt-4o", "gpt-4"})

	require.Len(t, runs, 6)
	assert.Equal(t, dataset.NbVariations()*2, len(runs))
	assert.Equal(t, promptWithVariations.Variations[0].Id, runs[0].variation.Id)
	assert.Equal(t, "gpt-4o", runs[0].model)
	assert.Equal(t, "gpt-4", runs[1].model)
	assert.Nil(t, runs[4].variation)
	assert.Equal(t, promptWithout.Id, runs[5].prompt.Id)
}

func TestEvaluationJobTimeout(t *testing.T) {
	assert.Equal(t, DEFAULT_EVALUATION_TIMEOUT, EvaluationJobTimeout(infra.EvaluationConfig{}))
	assert.Equal(t, 2*time.Hour, EvaluationJobTimeout(infra.EvaluationConfig{JobTimeout: 2 * time.Hour}))

	worker := NewEvaluationWorker(nil, nil, nil, infra.EvaluationConfig{JobTimeout: 2 * time.Hour})
	assert.Equal(t, 2*time.Hour, worker.Timeout(nil))
}
