// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package column_test

import (
	"database/sql/driver"
	"math"
	"time"

	dqlitedriver "github.com/canonical/go-dqlite/v2/driver"
	"github.com/go-sql-driver/mysql"
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	"github.com/mattn/go-sqlite3"
	gc "gopkg.in/check.v1"

	"github.com/juju/sqlduration/core/column"
)

type codecSuite struct {
	testing.IsolationSuite
}

var _ = gc.Suite(&codecSuite{})

type decodeTest struct {
	about    string
	raw      driver.Value
	expected int64
	err      error
}

func (s *codecSuite) TestEncodeWritesInt64(c *gc.C) {
	for name, codec := range map[string]column.Int64Codec{
		"default": column.Default,
		"sqlite":  column.SQLite,
		"mysql":   column.MySQL,
	} {
		c.Logf("codec %s", name)
		var cell column.Cell
		err := codec.EncodeInt64(-42, &cell)
		c.Assert(err, jc.ErrorIsNil)
		c.Check(cell.Written(), jc.IsTrue)
		c.Check(cell.Value(), gc.Equals, driver.Value(int64(-42)))
	}
}

func (s *codecSuite) TestCellEmpty(c *gc.C) {
	var cell column.Cell
	c.Check(cell.Written(), jc.IsFalse)
	c.Check(cell.Value(), gc.IsNil)
}

func (s *codecSuite) TestDefaultDecode(c *gc.C) {
	s.checkDecode(c, column.Default, []decodeTest{
		{about: "int64", raw: int64(math.MinInt64), expected: math.MinInt64},
		{about: "int", raw: 7, expected: 7},
		{about: "int32", raw: int32(-7), expected: -7},
		{about: "uint8", raw: uint8(255), expected: 255},
		{about: "uint64 in range", raw: uint64(math.MaxInt64), expected: math.MaxInt64},
		{about: "uint64 out of range", raw: uint64(math.MaxInt64) + 1, err: column.ErrOutOfRange},
		{about: "bytes", raw: []byte("-5000000000"), expected: -5000000000},
		{about: "string", raw: "9223372036854775807", expected: math.MaxInt64},
		{about: "string out of range", raw: "9223372036854775808", err: column.ErrOutOfRange},
		{about: "malformed bytes", raw: []byte("12ab"), err: column.ErrTypeMismatch},
		{about: "float", raw: float64(1.5), err: column.ErrTypeMismatch},
		{about: "time", raw: time.Unix(0, 0), err: column.ErrTypeMismatch},
		{about: "null", raw: nil, err: column.ErrNull},
	})
}

func (s *codecSuite) TestSQLiteDecode(c *gc.C) {
	s.checkDecode(c, column.SQLite, []decodeTest{
		{about: "int64", raw: int64(math.MaxInt64), expected: math.MaxInt64},
		{about: "zero", raw: int64(0), expected: 0},
		{about: "text", raw: "12", err: column.ErrTypeMismatch},
		{about: "blob", raw: []byte("12"), err: column.ErrTypeMismatch},
		{about: "real", raw: float64(12), err: column.ErrTypeMismatch},
		{about: "null", raw: nil, err: column.ErrNull},
	})
}

func (s *codecSuite) TestMySQLDecode(c *gc.C) {
	s.checkDecode(c, column.MySQL, []decodeTest{
		{about: "binary protocol", raw: int64(-1), expected: -1},
		{about: "text protocol", raw: []byte("1234567890123"), expected: 1234567890123},
		{about: "unsigned", raw: uint64(10), expected: 10},
		{about: "unsigned out of range", raw: uint64(math.MaxUint64), err: column.ErrOutOfRange},
		{about: "text out of range", raw: []byte("-9223372036854775809"), err: column.ErrOutOfRange},
		{about: "text not a number", raw: []byte("1.5"), err: column.ErrTypeMismatch},
		{about: "string", raw: "12", err: column.ErrTypeMismatch},
		{about: "null", raw: nil, err: column.ErrNull},
	})
}

func (s *codecSuite) TestDecodeErrorNamesType(c *gc.C) {
	_, err := column.SQLite.DecodeInt64(float64(1))
	c.Assert(err, gc.ErrorMatches, `decoding float64 as BIGINT: column type mismatch`)
}

func (s *codecSuite) checkDecode(c *gc.C, codec column.Int64Codec, tests []decodeTest) {
	for i, test := range tests {
		c.Logf("test %d: %s", i, test.about)
		v, err := codec.DecodeInt64(test.raw)
		if test.err != nil {
			c.Check(err, jc.ErrorIs, test.err)
			continue
		}
		c.Check(err, jc.ErrorIsNil)
		c.Check(v, gc.Equals, test.expected)
	}
}

type driverSuite struct {
	testing.IsolationSuite
}

var _ = gc.Suite(&driverSuite{})

type unknownDriver struct {
	driver.Driver
}

func (s *driverSuite) TestForDriver(c *gc.C) {
	c.Check(column.ForDriver(&sqlite3.SQLiteDriver{}), gc.Equals, column.SQLite)
	c.Check(column.ForDriver((*dqlitedriver.Driver)(nil)), gc.Equals, column.SQLite)
	c.Check(column.ForDriver(&mysql.MySQLDriver{}), gc.Equals, column.MySQL)
	c.Check(column.ForDriver(unknownDriver{}), gc.Equals, column.Default)
}
