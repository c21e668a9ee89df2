package worker_jobs

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/riverqueue/river"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/promptdeck/promptdeck-backend/infra"
	"github.com/promptdeck/promptdeck-backend/models"
	"github.com/promptdeck/promptdeck-backend/pure_utils"
	"github.com/promptdeck/promptdeck-backend/repositories"
	"github.com/promptdeck/promptdeck-backend/usecases/checklist_eval"
	"github.com/promptdeck/promptdeck-backend/usecases/executor_factory"
	"github.com/promptdeck/promptdeck-backend/utils"
)

const (
	DEFAULT_EVALUATION_TIMEOUT     = 30 * time.Minute
	DEFAULT_EVALUATION_CONCURRENCY = 4
	DEFAULT_EVALUATION_RATE_LIMIT  = 5.0
	LLM_CALL_ATTEMPTS              = 3
	LLM_RETRY_DELAY                = 2 * time.Second
)

type evaluationWorkerRepository interface {
	GetEvaluation(ctx context.Context, exec repositories.Executor, evaluationId uuid.UUID) (models.Evaluation, error)
	GetDataset(ctx context.Context, exec repositories.Executor, datasetId uuid.UUID) (models.Dataset, error)
	GetChecklist(ctx context.Context, exec repositories.Executor, checklistId uuid.UUID) (models.Checklist, error)
	DeleteEvaluationResults(ctx context.Context, exec repositories.Executor, evaluationId uuid.UUID) error
	StartEvaluation(ctx context.Context, exec repositories.Executor, evaluationId uuid.UUID, startedAt time.Time) error
	InsertEvaluationResult(ctx context.Context, exec repositories.Executor, result models.EvaluationResult) error
	IncrementCompletedRuns(ctx context.Context, exec repositories.Executor, evaluationId uuid.UUID) error
	FinishEvaluation(ctx context.Context, exec repositories.Executor, evaluationId uuid.UUID,
		status models.EvaluationStatus, completedAt time.Time) error
}

type completionRepository interface {
	Complete(ctx context.Context, req models.CompletionRequest) (models.Completion, error)
}

// One completion of one model on one prompt variation
type evaluationRun struct {
	prompt    models.DatasetPrompt
	variation *models.DatasetPromptVariation
	model     string
}

// EvaluationWorker runs every model of an evaluation on every prompt variation
// of its dataset, and scores the outputs with the checklist.
type EvaluationWorker struct {
	river.WorkerDefaults[models.EvaluationJobArgs]

	executorFactory executor_factory.ExecutorFactory
	repository      evaluationWorkerRepository
	llmRepository   completionRepository
	limiter         *rate.Limiter
	concurrency     int
	timeout         time.Duration
	retryDelay      time.Duration
}

func NewEvaluationWorker(
	executorFactory executor_factory.ExecutorFactory,
	repository evaluationWorkerRepository,
	llmRepository completionRepository,
	config infra.EvaluationConfig,
) *EvaluationWorker {
	rateLimit := config.RateLimit
	if rateLimit == 0 {
		rateLimit = DEFAULT_EVALUATION_RATE_LIMIT
	}
	limit := rate.Limit(rateLimit)
	if rateLimit < 0 {
		limit = rate.Inf
	}

	concurrency := config.Concurrency
	if concurrency <= 0 {
		concurrency = DEFAULT_EVALUATION_CONCURRENCY
	}
	return &EvaluationWorker{
		executorFactory: executorFactory,
		repository:      repository,
		llmRepository:   llmRepository,
		limiter:         rate.NewLimiter(limit, max(1, int(rateLimit))),
		concurrency:     concurrency,
		timeout:         EvaluationJobTimeout(config),
		retryDelay:      LLM_RETRY_DELAY,
	}
}

// EvaluationJobTimeout is the time an evaluation job may run before river cancels it
func EvaluationJobTimeout(config infra.EvaluationConfig) time.Duration {
	if config.JobTimeout <= 0 {
		return DEFAULT_EVALUATION_TIMEOUT
	}
	return config.JobTimeout
}

func (w *EvaluationWorker) Timeout(job *river.Job[models.EvaluationJobArgs]) time.Duration {
	return w.timeout
}

func (w *EvaluationWorker) Work(ctx context.Context, job *river.Job[models.EvaluationJobArgs]) error {
	err := w.runEvaluation(ctx, job.Args.EvaluationId)
	if err != nil && job.Attempt >= job.MaxAttempts {
		// last attempt, the evaluation would otherwise stay running forever
		finishErr := w.repository.FinishEvaluation(context.WithoutCancel(ctx), w.executorFactory.NewExecutor(),
			job.Args.EvaluationId, models.EvaluationFailed, time.Now())
		return errors.Join(err, finishErr)
	}
	return err
}

func (w *EvaluationWorker) runEvaluation(ctx context.Context, evaluationId uuid.UUID) error {
	logger := utils.LoggerFromContext(ctx).With("evaluation_id", evaluationId)
	exec := w.executorFactory.NewExecutor()

	evaluation, err := w.repository.GetEvaluation(ctx, exec, evaluationId)
	if err != nil {
		return err
	}
	if evaluation.Status.IsFinished() {
		logger.InfoContext(ctx, "evaluation already finished", "status", evaluation.Status)
		return nil
	}

	dataset, err := w.repository.GetDataset(ctx, exec, evaluation.DatasetId)
	if err != nil {
		return err
	}
	checklist, err := w.repository.GetChecklist(ctx, exec, evaluation.ChecklistId)
	if err != nil {
		return err
	}

	// a previous attempt may have recorded some results
	if err := w.repository.DeleteEvaluationResults(ctx, exec, evaluationId); err != nil {
		return err
	}
	if err := w.repository.StartEvaluation(ctx, exec, evaluationId, time.Now()); err != nil {
		return err
	}

	runs := planRuns(dataset, evaluation.Models)
	logger.InfoContext(ctx, "running evaluation", "runs", len(runs), "models", evaluation.Models)

	var errored atomic.Int64
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(w.concurrency)
	for _, run := range runs {
		group.Go(func() error {
			result := w.executeRun(groupCtx, evaluationId, checklist, run)
			if result.Status == models.EvaluationResultError {
				errored.Add(1)
			}
			if err := w.repository.InsertEvaluationResult(groupCtx, exec, result); err != nil {
				return err
			}
			return w.repository.IncrementCompletedRuns(groupCtx, exec, evaluationId)
		})
	}
	if err := group.Wait(); err != nil {
		return errors.Wrap(err, "could not record evaluation results")
	}

	status := models.EvaluationCompleted
	if len(runs) > 0 && errored.Load() == int64(len(runs)) {
		status = models.EvaluationFailed
	}
	if err := w.repository.FinishEvaluation(ctx, exec, evaluationId, status, time.Now()); err != nil {
		return err
	}
	logger.InfoContext(ctx, "evaluation finished", "status", status, "errored_runs", errored.Load())
	return nil
}

// A prompt without variation is run once, without variables
func planRuns(dataset models.Dataset, evaluatedModels []string) []evaluationRun {
	runs := make([]evaluationRun, 0, dataset.NbVariations()*len(evaluatedModels))
	for _, prompt := range dataset.Prompts {
		variations := make([]*models.DatasetPromptVariation, 0, len(prompt.Variations))
		for i := range prompt.Variations {
			variations = append(variations, &prompt.Variations[i])
		}
		if len(variations) == 0 {
			variations = append(variations, nil)
		}
		for _, variation := range variations {
			for _, model := range evaluatedModels {
				runs = append(runs, evaluationRun{prompt: prompt, variation: variation, model: model})
			}
		}
	}
	return runs
}

func (w *EvaluationWorker) executeRun(
	ctx context.Context,
	evaluationId uuid.UUID,
	checklist models.Checklist,
	run evaluationRun,
) models.EvaluationResult {
	var variables map[string]string
	var idealOutput string
	var variationId *uuid.UUID
	if run.variation != nil {
		variables = run.variation.Variables
		idealOutput = run.variation.IdealOutput
		variationId = &run.variation.Id
	}

	request := models.CompletionRequest{
		Messages: pure_utils.RenderMessages(run.prompt.Messages, variables),
		Params:   models.CompletionParams{Model: run.model},
	}

	var completion models.Completion
	var duration time.Duration
	err := retry.Do(
		func() error {
			if err := w.limiter.Wait(ctx); err != nil {
				return err
			}
			start := time.Now()
			var err error
			completion, err = w.llmRepository.Complete(ctx, request)
			duration = time.Since(start)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(LLM_CALL_ATTEMPTS),
		retry.Delay(w.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, models.ErrTransientLLMError)
		}),
	)

	result := models.EvaluationResult{
		Id:           uuid.New(),
		EvaluationId: evaluationId,
		PromptId:     run.prompt.Id,
		VariationId:  variationId,
		Model:        run.model,
		DurationMs:   duration.Milliseconds(),
	}

	if err != nil {
		utils.LoggerFromContext(ctx).WarnContext(ctx, "evaluation run failed",
			"model", run.model, "prompt_id", run.prompt.Id, "error", err.Error())
		utils.MetricEvaluationRuns.With(prometheus.Labels{"model": run.model, "status": "error"}).Inc()
		result.Status = models.EvaluationResultError
		result.Error = utils.Ptr(err.Error())
		result.Checks = []models.CheckResult{}
		return result
	}

	passed, checks := checklist_eval.EvaluateChecklist(checklist, models.CheckInput{
		Output:      completion.Content,
		IdealOutput: idealOutput,
		DurationMs:  result.DurationMs,
	})
	utils.MetricEvaluationRuns.With(prometheus.Labels{"model": run.model, "status": "success"}).Inc()

	result.Status = models.EvaluationResultSuccess
	result.Output = completion.Content
	result.Passed = passed
	result.Checks = checks
	result.PromptTokens = completion.PromptTokens
	result.CompletionTokens = completion.CompletionTokens
	return result
}
