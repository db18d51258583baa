// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package database provides transaction runners over database/sql
// connections.
package database

import (
	"context"
	"database/sql"

	"github.com/canonical/sqlair"
	"github.com/juju/errors"

	coredatabase "github.com/juju/sqlduration/core/database"
	"github.com/juju/sqlduration/internal/database/txn"
)

type txnRunner struct {
	db     *sqlair.DB
	runner *txn.RetryingTxnRunner
}

// NewTxnRunner returns a TxnRunner for db. Both transaction flavours are
// retried on transient errors.
func NewTxnRunner(db *sql.DB, opts ...txn.Option) coredatabase.TxnRunner {
	return &txnRunner{
		db:     sqlair.NewDB(db),
		runner: txn.NewRetryingTxnRunner(opts...),
	}
}

// Txn is part of the coredatabase.TxnRunner interface.
func (t *txnRunner) Txn(ctx context.Context, fn func(context.Context, *sqlair.TX) error) error {
	return t.runner.Retry(ctx, func() error {
		return errors.Trace(t.runner.Txn(ctx, t.db, fn))
	})
}

// StdTxn is part of the coredatabase.TxnRunner interface.
func (t *txnRunner) StdTxn(ctx context.Context, fn func(context.Context, *sql.Tx) error) error {
	return t.runner.Retry(ctx, func() error {
		return errors.Trace(t.runner.StdTxn(ctx, t.db.PlainDB(), fn))
	})
}

// TxnRunnerFactory returns a factory that returns the given runner.
func TxnRunnerFactory(runner coredatabase.TxnRunner) coredatabase.TxnRunnerFactory {
	return func() (coredatabase.TxnRunner, error) {
		if runner == nil {
			return nil, errors.New("nil txn runner")
		}
		return runner, nil
	}
}
