// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package database

import (
	"context"
	"database/sql"

	"github.com/canonical/sqlair"
)

// TxnRunner defines an interface for running transactions against a
// database.
type TxnRunner interface {
	// Txn executes the input function against the database, using the
	// sqlair package. The sqlair package provides a mapping library for
	// SQL queries and statements.
	// Retry semantics are applied automatically based on transient failures.
	Txn(context.Context, func(context.Context, *sqlair.TX) error) error

	// StdTxn executes the input function against the database, within a
	// transaction that depends on the input context.
	// Retry semantics are applied automatically based on transient failures.
	StdTxn(context.Context, func(context.Context, *sql.Tx) error) error
}

// TxnRunnerFactory returns a TxnRunner.
type TxnRunnerFactory func() (TxnRunner, error)
