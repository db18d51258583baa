// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package txn runs functions inside database transactions, retrying them
// when the database reports a transient failure.
package txn

import (
	"context"
	"database/sql"
	"sync/atomic"
	"time"

	"github.com/canonical/sqlair"
	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/loggo/v2"
	"github.com/juju/retry"
)

const (
	// defaultAttempts is the number of times a retryable transaction is
	// attempted before giving up.
	defaultAttempts = 250

	defaultDelay    = time.Millisecond
	defaultMaxDelay = 100 * time.Millisecond
)

// Logger is the logging used by the runner. A loggo.Logger satisfies it.
type Logger interface {
	Tracef(message string, args ...any)
	Debugf(message string, args ...any)
	Warningf(message string, args ...any)
}

// RetryStrategy runs fn until it succeeds, fails permanently, or ctx is
// done.
type RetryStrategy func(ctx context.Context, fn func() error) error

// Option configures a RetryingTxnRunner.
type Option func(*option)

type option struct {
	logger        Logger
	clock         clock.Clock
	retryStrategy RetryStrategy
	metrics       *Collector
}

// WithLogger sets the logger used by the runner.
func WithLogger(logger Logger) Option {
	return func(o *option) {
		o.logger = logger
	}
}

// WithClock sets the clock used to time transactions.
func WithClock(clock clock.Clock) Option {
	return func(o *option) {
		o.clock = clock
	}
}

// WithRetryStrategy replaces the default retry strategy.
func WithRetryStrategy(strategy RetryStrategy) Option {
	return func(o *option) {
		o.retryStrategy = strategy
	}
}

// WithMetrics records transaction metrics to the collector.
func WithMetrics(metrics *Collector) Option {
	return func(o *option) {
		o.metrics = metrics
	}
}

func newOption() *option {
	return &option{
		logger: loggo.GetLogger("juju.sqlduration.database.txn"),
		clock:  clock.WallClock,
	}
}

// RetryingTxnRunner runs transactions against std and sqlair databases.
type RetryingTxnRunner struct {
	logger        Logger
	clock         clock.Clock
	retryStrategy RetryStrategy
	metrics       *Collector

	lastID atomic.Uint64
}

// NewRetryingTxnRunner returns a new RetryingTxnRunner.
func NewRetryingTxnRunner(opts ...Option) *RetryingTxnRunner {
	o := newOption()
	for _, opt := range opts {
		opt(o)
	}
	if o.retryStrategy == nil {
		o.retryStrategy = DefaultRetryStrategy(o.clock, o.logger)
	}

	return &RetryingTxnRunner{
		logger:        o.logger,
		clock:         o.clock,
		retryStrategy: o.retryStrategy,
		metrics:       o.metrics,
	}
}

// Txn runs fn inside a sqlair transaction. The transaction is committed
// if fn succeeds and rolled back otherwise. There is no retry; wrap the
// call with Retry for that.
func (t *RetryingTxnRunner) Txn(ctx context.Context, db *sqlair.DB, fn func(context.Context, *sqlair.TX) error) error {
	if err := ctx.Err(); err != nil {
		return errors.Trace(err)
	}

	start := t.clock.Now()
	tx, err := db.Begin(ctx, nil)
	if err != nil {
		t.metrics.observe(resultError, t.clock.Now().Sub(start))
		return errors.Trace(err)
	}
	return t.finish(start, fn(ctx, tx), tx)
}

// StdTxn runs fn inside a database/sql transaction. The transaction is
// committed if fn succeeds and rolled back otherwise. There is no retry;
// wrap the call with Retry for that.
func (t *RetryingTxnRunner) StdTxn(ctx context.Context, db *sql.DB, fn func(context.Context, *sql.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return errors.Trace(err)
	}

	start := t.clock.Now()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.metrics.observe(resultError, t.clock.Now().Sub(start))
		return errors.Trace(err)
	}
	return t.finish(start, fn(ctx, tx), tx)
}

// Retry runs fn using the runner's retry strategy.
func (t *RetryingTxnRunner) Retry(ctx context.Context, fn func() error) error {
	var attempt int
	return t.retryStrategy(ctx, func() error {
		if attempt++; attempt > 1 {
			t.metrics.retried()
		}
		return fn()
	})
}

type committer interface {
	Commit() error
	Rollback() error
}

func (t *RetryingTxnRunner) finish(start time.Time, fnErr error, tx committer) error {
	id := t.lastID.Add(1)
	if fnErr != nil {
		t.logger.Tracef("rolling back txn (id: %d): %v", id, fnErr)
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.logger.Warningf("failed to roll back txn (id: %d): %v", id, err)
		}
		t.metrics.observe(resultRollback, t.clock.Now().Sub(start))
		return errors.Trace(fnErr)
	}

	if err := tx.Commit(); err != nil {
		t.metrics.observe(resultError, t.clock.Now().Sub(start))
		return errors.Trace(err)
	}
	t.logger.Tracef("committed txn (id: %d)", id)
	t.metrics.observe(resultCommit, t.clock.Now().Sub(start))
	return nil
}

// DefaultRetryStrategy retries transient errors with a doubling delay,
// giving up after 250 attempts.
func DefaultRetryStrategy(clock clock.Clock, logger Logger) RetryStrategy {
	return func(ctx context.Context, fn func() error) error {
		err := retry.Call(retry.CallArgs{
			Func: fn,
			IsFatalError: func(err error) bool {
				return !IsErrRetryable(err)
			},
			NotifyFunc: func(lastError error, attempt int) {
				logger.Debugf("retrying txn (attempt %d): %v", attempt, lastError)
			},
			Attempts:    defaultAttempts,
			Delay:       defaultDelay,
			MaxDelay:    defaultMaxDelay,
			BackoffFunc: retry.DoubleDelay,
			Clock:       clock,
			Stop:        ctx.Done(),
		})
		if retry.IsRetryStopped(err) && ctx.Err() != nil {
			return errors.Trace(ctx.Err())
		}
		return err
	}
}
