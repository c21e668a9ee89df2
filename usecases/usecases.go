package usecases

import (
	"github.com/promptdeck/promptdeck-backend/infra"
	"github.com/promptdeck/promptdeck-backend/models"
	"github.com/promptdeck/promptdeck-backend/repositories"
	"github.com/promptdeck/promptdeck-backend/usecases/billing"
	"github.com/promptdeck/promptdeck-backend/usecases/executor_factory"
	"github.com/promptdeck/promptdeck-backend/usecases/worker_jobs"
)

const DefaultAllowanceResetSchedule = "0 0 * * *"

type Usecases struct {
	Repositories           repositories.Repositories
	apiVersion             string
	playgroundAllowances   models.PlaygroundAllowances
	allowanceResetSchedule string
	evaluationConfig       infra.EvaluationConfig
}

type Option func(*options)

func WithApiVersion(apiVersion string) Option {
	return func(o *options) {
		o.apiVersion = apiVersion
	}
}

func WithPlaygroundConfig(config infra.PlaygroundConfig) Option {
	return func(o *options) {
		if config.Allowances != nil {
			o.playgroundAllowances = config.Allowances
		}
		if config.AllowanceResetSchedule != "" {
			o.allowanceResetSchedule = config.AllowanceResetSchedule
		}
	}
}

func WithEvaluationConfig(config infra.EvaluationConfig) Option {
	return func(o *options) {
		o.evaluationConfig = config
	}
}

type options struct {
	apiVersion             string
	playgroundAllowances   models.PlaygroundAllowances
	allowanceResetSchedule string
	evaluationConfig       infra.EvaluationConfig
}

func NewUsecases(repositories repositories.Repositories, opts ...Option) Usecases {
	o := &options{
		playgroundAllowances:   models.DefaultPlaygroundAllowances(),
		allowanceResetSchedule: DefaultAllowanceResetSchedule,
	}
	for _, opt := range opts {
		opt(o)
	}
	return Usecases{
		Repositories:           repositories,
		apiVersion:             o.apiVersion,
		playgroundAllowances:   o.playgroundAllowances,
		allowanceResetSchedule: o.allowanceResetSchedule,
		evaluationConfig:       o.evaluationConfig,
	}
}

func (usecases *Usecases) NewExecutorFactory() executor_factory.ExecutorFactory {
	return executor_factory.NewDbExecutorFactory(usecases.Repositories.ExecutorGetter)
}

func (usecases *Usecases) NewTransactionFactory() executor_factory.TransactionFactory {
	return executor_factory.NewDbExecutorFactory(usecases.Repositories.ExecutorGetter)
}

func (usecases *Usecases) NewLivenessUsecase() LivenessUsecase {
	return LivenessUsecase{
		livenessRepository: usecases.Repositories.ExecutorGetter,
	}
}

func (usecases *Usecases) ApiVersion() string {
	return usecases.apiVersion
}

func (usecases *Usecases) AllowanceResetSchedule() string {
	return usecases.allowanceResetSchedule
}

// The webhook is called by the billing provider, without user credentials
func (usecases *Usecases) NewBillingWebhookUsecase() billing.WebhookUsecaseInterface {
	return billing.NewWebhookUsecase(
		usecases.Repositories.BillingRepository,
		usecases.NewExecutorFactory(),
		usecases.Repositories.DbRepository,
	)
}

func (usecases *Usecases) NewEvaluationWorker() *worker_jobs.EvaluationWorker {
	return worker_jobs.NewEvaluationWorker(
		usecases.NewExecutorFactory(),
		usecases.Repositories.DbRepository,
		usecases.Repositories.LLMRepository,
		usecases.evaluationConfig,
	)
}

func (usecases *Usecases) NewAllowanceResetWorker() *worker_jobs.AllowanceResetWorker {
	return worker_jobs.NewAllowanceResetWorker(
		usecases.NewExecutorFactory(),
		usecases.Repositories.DbRepository,
		usecases.playgroundAllowances,
	)
}
