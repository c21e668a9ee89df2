package executor_factory

import (
	"context"

	"github.com/promptdeck/promptdeck-backend/repositories"
)

type ExecutorFactory interface {
	NewExecutor() repositories.Executor
}

type TransactionFactory interface {
	Transaction(ctx context.Context, fn func(tx repositories.Transaction) error) error
}

type executorGetter interface {
	Executor() repositories.Executor
	Transaction(ctx context.Context, fn func(tx repositories.Transaction) error) error
}

type DbExecutorFactory struct {
	executorGetter executorGetter
}

func NewDbExecutorFactory(executorGetter executorGetter) DbExecutorFactory {
	return DbExecutorFactory{executorGetter: executorGetter}
}

func (factory DbExecutorFactory) NewExecutor() repositories.Executor {
	return factory.executorGetter.Executor()
}

func (factory DbExecutorFactory) Transaction(ctx context.Context, fn func(tx repositories.Transaction) error) error {
	return factory.executorGetter.Transaction(ctx, fn)
}
