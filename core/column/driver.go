// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package column

import (
	"database/sql/driver"

	dqlitedriver "github.com/canonical/go-dqlite/v2/driver"
	"github.com/go-sql-driver/mysql"
	"github.com/juju/loggo/v2"
	"github.com/mattn/go-sqlite3"
)

var logger = loggo.GetLogger("juju.sqlduration.column")

// ForDriver returns the Int64Codec matching the backend behind d. Unknown
// drivers get the Default codec.
func ForDriver(d driver.Driver) Int64Codec {
	switch d.(type) {
	case *sqlite3.SQLiteDriver, *dqlitedriver.Driver:
		return SQLite
	case *mysql.MySQLDriver:
		return MySQL
	default:
		logger.Debugf("no BIGINT codec for driver %T, using database/sql conversions", d)
		return Default
	}
}
