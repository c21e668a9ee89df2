package executor_factory

import (
	"context"

	"github.com/pashagolub/pgxmock/v4"

	"github.com/promptdeck/promptdeck-backend/repositories"
)

// ExecutorFactoryStub runs the real repositories against a pgxmock pool
type ExecutorFactoryStub struct {
	Mock pgxmock.PgxPoolIface
}

func NewExecutorFactoryStub() ExecutorFactoryStub {
	pool, _ := pgxmock.NewPool()

	return ExecutorFactoryStub{
		Mock: pool,
	}
}

func (stub ExecutorFactoryStub) NewExecutor() repositories.Executor {
	return stub.Mock
}

func (stub ExecutorFactoryStub) Transaction(ctx context.Context, fn func(tx repositories.Transaction) error) error {
	return repositories.NewExecutorGetter(stub.Mock).Transaction(ctx, fn)
}
