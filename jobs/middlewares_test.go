package jobs

import (
	"context"
	"log/slog"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/riverqueue/river/rivertype"
	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/promptdeck/promptdeck-backend/utils"
)

func testJob() *rivertype.JobRow {
	return &rivertype.JobRow{ID: 42, Kind: "evaluation", Attempt: 1, Queue: "evaluations", EncodedArgs: []byte(`{"evaluation_id":"x"}`)}
}

func TestRecovererMiddleware(t *testing.T) {
	err := NewRecovererMiddleware().Work(context.Background(), testJob(), func(ctx context.Context) error {
		panic("boom")
	})
	assert.ErrorContains(t, err, "boom")
	assert.ErrorContains(t, err, "evaluation job n°42")
}

func TestLoggerMiddleware_stores_logger(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	var inner *slog.Logger
	err := NewLoggerMiddleware(logger).Work(context.Background(), testJob(), func(ctx context.Context) error {
		inner = utils.LoggerFromContext(ctx)
		return nil
	})
	assert.NoError(t, err)
	assert.NotNil(t, inner)
	assert.NotSame(t, slog.Default(), inner)
}

// The river client only accepts values implementing both interfaces
var (
	_ rivertype.WorkerMiddleware = NewLoggerMiddleware(nil)
	_ rivertype.WorkerMiddleware = NewRecovererMiddleware()
	_ rivertype.WorkerMiddleware = NewTracingMiddleware(nil)
	_ rivertype.WorkerMiddleware = NewSentryMiddleware()
)

func TestMiddlewares_chain_returns_inner_error(t *testing.T) {
	jobErr := errors.New("provider unavailable")
	logger := slog.New(slog.DiscardHandler)
	doInner := func(ctx context.Context) error { return jobErr }

	middlewares := Middlewares(logger, noop.NewTracerProvider().Tracer("test"))
	assert.Len(t, middlewares, 4)
	for _, m := range middlewares {
		worker, ok := m.(rivertype.WorkerMiddleware)
		if !assert.True(t, ok) {
			continue
		}
		assert.ErrorIs(t, worker.Work(context.Background(), testJob(), doInner), jobErr)
	}
}
