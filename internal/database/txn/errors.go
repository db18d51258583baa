// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package txn

import (
	"strings"

	dqlitedriver "github.com/canonical/go-dqlite/v2/driver"
	"github.com/juju/errors"
	"github.com/mattn/go-sqlite3"
)

// transientMessages are error texts seen from SQLite and dqlite for
// conditions that clear up on their own.
var transientMessages = []string{
	"database is locked",
	"cannot start a transaction within a transaction",
	"bad connection",
	"checkpoint in progress",
}

// IsErrRetryable reports whether err is a transient database error, for
// which the transaction can be attempted again.
func IsErrRetryable(err error) bool {
	if err == nil {
		return false
	}

	var dqliteErr dqlitedriver.Error
	if errors.As(err, &dqliteErr) && isDqliteBusy(dqliteErr.Code) {
		return true
	}
	var dqliteErrPtr *dqlitedriver.Error
	if errors.As(err, &dqliteErrPtr) && dqliteErrPtr != nil && isDqliteBusy(dqliteErrPtr.Code) {
		return true
	}

	if errors.Is(err, sqlite3.ErrBusy) || errors.Is(err, sqlite3.ErrLocked) {
		return true
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked) {
		return true
	}

	msg := err.Error()
	for _, m := range transientMessages {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}

func isDqliteBusy(code int) bool {
	switch code {
	case dqlitedriver.ErrBusy, dqlitedriver.ErrBusyRecovery, dqlitedriver.ErrBusySnapshot:
		return true
	}
	return false
}
