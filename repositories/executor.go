package repositories

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/promptdeck/promptdeck-backend/models"
)

type Executor interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Transaction interface {
	Executor
	RawTx() pgx.Tx
}

// pgxpool.Pool in production, a pgxmock pool in tests
type connectionPool interface {
	Executor
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
}

type PgTx struct {
	tx pgx.Tx
}

func (t *PgTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return t.tx.Exec(ctx, sql, args...)
}

func (t *PgTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return t.tx.Query(ctx, sql, args...)
}

func (t *PgTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return t.tx.QueryRow(ctx, sql, args...)
}

func (t *PgTx) RawTx() pgx.Tx {
	return t.tx
}

type ExecutorGetter struct {
	pool connectionPool
}

func NewExecutorGetter(pool connectionPool) ExecutorGetter {
	return ExecutorGetter{pool: pool}
}

func (g ExecutorGetter) Executor() Executor {
	return g.pool
}

func (g ExecutorGetter) Transaction(ctx context.Context, fn func(tx Transaction) error) error {
	err := pgx.BeginFunc(ctx, g.pool, func(tx pgx.Tx) error {
		return fn(&PgTx{tx: tx})
	})

	// The callback can return ErrIgnoreRollBackError to roll back without reporting an error
	if errors.Is(err, models.ErrIgnoreRollBackError) {
		return nil
	}
	return errors.Wrap(err, "error executing transaction")
}

func (g ExecutorGetter) Liveness(ctx context.Context) error {
	return errors.Wrap(g.pool.Ping(ctx), "database is not reachable")
}
