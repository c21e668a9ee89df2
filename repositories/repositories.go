package repositories

import (
	"github.com/jackc/pgx/v5"
	"github.com/riverqueue/river"
)

type Repositories struct {
	ExecutorGetter      ExecutorGetter
	DbRepository        *DbRepository
	TaskQueueRepository TaskQueueRepository
	BillingRepository   BillingRepository
	LLMRepository       LLMRepository
}

type Option func(*Repositories)

func WithRiverClient(client *river.Client[pgx.Tx]) Option {
	return func(r *Repositories) {
		r.TaskQueueRepository = NewTaskQueueRepository(client)
	}
}

func WithBillingRepository(billing BillingRepository) Option {
	return func(r *Repositories) {
		r.BillingRepository = billing
	}
}

func WithLLMRepository(llm LLMRepository) Option {
	return func(r *Repositories) {
		r.LLMRepository = llm
	}
}

func NewRepositories(pool connectionPool, opts ...Option) Repositories {
	repositories := Repositories{
		ExecutorGetter: NewExecutorGetter(pool),
		DbRepository:   &DbRepository{},
	}
	for _, opt := range opts {
		opt(&repositories)
	}
	return repositories
}

// DbRepository holds the SQL queries on the application database. It is
// stateless: every method receives the executor, pool or transaction, to run on.
type DbRepository struct{}
