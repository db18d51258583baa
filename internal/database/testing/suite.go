// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package testing

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/juju/errors"
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	_ "github.com/mattn/go-sqlite3"
	gc "gopkg.in/check.v1"

	coredatabase "github.com/juju/sqlduration/core/database"
	"github.com/juju/sqlduration/internal/database"
)

// SQLiteSuite is used to provide a SQLite backed sql.DB reference to
// tests. Every test gets a new, empty database.
type SQLiteSuite struct {
	testing.IsolationSuite

	db     *sql.DB
	runner coredatabase.TxnRunner
}

// SetUpTest opens a new database in a temporary directory.
func (s *SQLiteSuite) SetUpTest(c *gc.C) {
	s.IsolationSuite.SetUpTest(c)

	path := filepath.Join(c.MkDir(), "test.db")
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_foreign_keys=1&_txlock=immediate", path))
	c.Assert(err, jc.ErrorIsNil)
	err = db.Ping()
	c.Assert(err, jc.ErrorIsNil)

	s.db = db
	s.runner = database.NewTxnRunner(db)
	s.AddCleanup(func(c *gc.C) {
		c.Check(db.Close(), jc.ErrorIsNil)
	})
}

// DB returns the database under test.
func (s *SQLiteSuite) DB() *sql.DB {
	return s.db
}

// TxnRunner returns a retrying transaction runner for the database.
func (s *SQLiteSuite) TxnRunner() coredatabase.TxnRunner {
	return s.runner
}

// TxnRunnerFactory returns a factory for the suite's transaction runner.
func (s *SQLiteSuite) TxnRunnerFactory() coredatabase.TxnRunnerFactory {
	return database.TxnRunnerFactory(s.runner)
}

// ApplyDDL runs each statement in a single transaction.
func (s *SQLiteSuite) ApplyDDL(c *gc.C, stmts ...string) {
	err := s.runner.StdTxn(context.Background(), func(ctx context.Context, tx *sql.Tx) error {
		for i, stmt := range stmts {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return errors.Annotatef(err, "applying statement %d", i)
			}
		}
		return nil
	})
	c.Assert(err, jc.ErrorIsNil)
}
