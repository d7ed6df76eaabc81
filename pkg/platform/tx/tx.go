// Package tx carries a SQL transaction through context so stores can join the
// caller's unit of work without a process-wide session.
package tx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"mealcare/pkg/platform/sentinel"
)

type ctxKey struct{}

var txKey = ctxKey{}

// WithTx stores a SQL transaction in context for downstream store usage.
func WithTx(ctx context.Context, tx *sql.Tx) context.Context {
	if tx == nil {
		return ctx
	}
	return context.WithValue(ctx, txKey, tx)
}

// From extracts a SQL transaction from context if present.
func From(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(txKey).(*sql.Tx)
	return tx, ok
}

// DBTX is the subset of *sql.DB and *sql.Tx the stores use.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Conn returns the transaction bound to ctx, or db when there is none.
func Conn(ctx context.Context, db *sql.DB) DBTX {
	if tx, ok := From(ctx); ok {
		return tx
	}
	return db
}

// Runner provides a transactional boundary. fn receives a context that carries
// the transaction; every store call made with it joins the same unit of work.
type Runner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

const defaultTimeout = 5 * time.Second

var tracer trace.Tracer = otel.Tracer("mealcare/pkg/platform/tx")

// SQLRunner runs fn inside a database/sql transaction.
type SQLRunner struct {
	db       *sql.DB
	timeout  time.Duration
	opts     *sql.TxOptions
	observer Observer
}

// Observer is told how long each top-level transaction took.
type Observer interface {
	ObserveTx(start time.Time, committed bool)
}

// Option configures a SQLRunner.
type Option func(*SQLRunner)

// WithTimeout bounds transactions whose caller supplied no deadline.
func WithTimeout(d time.Duration) Option {
	return func(r *SQLRunner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithTxOptions sets the isolation level and read-only flag.
func WithTxOptions(opts *sql.TxOptions) Option {
	return func(r *SQLRunner) {
		r.opts = opts
	}
}

// WithObserver reports transaction durations to o.
func WithObserver(o Observer) Option {
	return func(r *SQLRunner) {
		r.observer = o
	}
}

func NewSQLRunner(db *sql.DB, opts ...Option) *SQLRunner {
	r := &SQLRunner{db: db, timeout: defaultTimeout}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunInTx commits when fn returns nil and rolls back otherwise. A context that
// already carries a transaction is reused, so nested calls share one commit.
func (r *SQLRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := From(ctx); ok {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("transaction aborted: %w: %w", sentinel.ErrUnavailable, err)
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	ctx, span := tracer.Start(ctx, "tx.RunInTx")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "rolled back")
		}
		span.End()
		if r.observer != nil {
			r.observer.ObserveTx(start, err == nil)
		}
	}()

	sqlTx, err := r.db.BeginTx(ctx, r.opts)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", classifyCtx(ctx, err))
	}
	defer func() {
		_ = sqlTx.Rollback()
	}()

	if err := fn(WithTx(ctx, sqlTx)); err != nil {
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", classifyCtx(ctx, err))
	}
	span.SetAttributes(attribute.Bool("tx.committed", true))
	return nil
}

func classifyCtx(ctx context.Context, err error) error {
	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %w", sentinel.ErrUnavailable, err)
	}
	return err
}

// NoopRunner calls fn directly. Services default to it when no database is
// wired, which keeps unit tests with mocked stores transaction-free.
type NoopRunner struct{}

func (NoopRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
