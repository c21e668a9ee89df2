package worker_jobs

import (
	"context"
	"time"

	"github.com/adhocore/gronx"
	"github.com/cockroachdb/errors"
	"github.com/riverqueue/river"

	"github.com/promptdeck/promptdeck-backend/models"
	"github.com/promptdeck/promptdeck-backend/repositories"
	"github.com/promptdeck/promptdeck-backend/usecases/executor_factory"
	"github.com/promptdeck/promptdeck-backend/utils"
)

const ALLOWANCE_RESET_TIMEOUT = 1 * time.Minute

// CronSchedule implements river.PeriodicSchedule from a cron expression, evaluated in UTC
type CronSchedule struct {
	expression string
}

func NewCronSchedule(expression string) (CronSchedule, error) {
	if !gronx.New().IsValid(expression) {
		return CronSchedule{}, errors.Newf("invalid cron expression %q", expression)
	}
	return CronSchedule{expression: expression}, nil
}

func (s CronSchedule) Next(current time.Time) time.Time {
	next, err := gronx.NextTickAfter(s.expression, current.UTC(), false)
	if err != nil {
		// unreachable for an expression validated by NewCronSchedule
		return current.Add(24 * time.Hour)
	}
	return next
}

func NewAllowanceResetPeriodicJob(schedule string) (*river.PeriodicJob, error) {
	cron, err := NewCronSchedule(schedule)
	if err != nil {
		return nil, err
	}
	return river.NewPeriodicJob(
		cron,
		func() (river.JobArgs, *river.InsertOpts) {
			return models.PlaygroundAllowanceResetArgs{},
				&river.InsertOpts{
					Queue: repositories.QUEUE_MAINTENANCE,
					UniqueOpts: river.UniqueOpts{
						ByQueue:  true,
						ByPeriod: time.Hour,
					},
				}
		},
		&river.PeriodicJobOpts{RunOnStart: false},
	), nil
}

type allowanceRepository interface {
	ResetPlayAllowances(ctx context.Context, exec repositories.Executor, allowances models.PlaygroundAllowances) (int64, error)
}

type AllowanceResetWorker struct {
	river.WorkerDefaults[models.PlaygroundAllowanceResetArgs]

	executorFactory executor_factory.ExecutorFactory
	repository      allowanceRepository
	allowances      models.PlaygroundAllowances
}

func NewAllowanceResetWorker(
	executorFactory executor_factory.ExecutorFactory,
	repository allowanceRepository,
	allowances models.PlaygroundAllowances,
) *AllowanceResetWorker {
	return &AllowanceResetWorker{
		executorFactory: executorFactory,
		repository:      repository,
		allowances:      allowances,
	}
}

func (w *AllowanceResetWorker) Timeout(job *river.Job[models.PlaygroundAllowanceResetArgs]) time.Duration {
	return ALLOWANCE_RESET_TIMEOUT
}

func (w *AllowanceResetWorker) Work(ctx context.Context, job *river.Job[models.PlaygroundAllowanceResetArgs]) error {
	updated, err := w.repository.ResetPlayAllowances(ctx, w.executorFactory.NewExecutor(), w.allowances)
	if err != nil {
		return errors.Wrap(err, "could not reset playground allowances")
	}
	utils.LoggerFromContext(ctx).InfoContext(ctx, "playground allowances reset", "organizations", updated)
	return nil
}
