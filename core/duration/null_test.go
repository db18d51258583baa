// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package duration_test

import (
	"database/sql/driver"
	"time"

	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"
	"google.golang.org/protobuf/types/known/durationpb"

	"github.com/juju/sqlduration/core/column"
	"github.com/juju/sqlduration/core/duration"
)

type nullSuite struct {
	testing.IsolationSuite
}

var _ = gc.Suite(&nullSuite{})

func (s *nullSuite) TestValueIsDriverValue(c *gc.C) {
	v, err := duration.NullProxy{}.Value()
	c.Assert(err, jc.ErrorIsNil)
	c.Check(v, gc.IsNil)

	v, err = duration.NullProxy{Proxy: duration.FromNanoseconds(1), Valid: true}.Value()
	c.Assert(err, jc.ErrorIsNil)
	c.Check(driver.IsValue(v), jc.IsTrue)
	c.Check(v, gc.Equals, int64(1))
}

func (s *nullSuite) TestValueOverflow(c *gc.C) {
	_, err := duration.NullProxy{
		Proxy: duration.New(&durationpb.Duration{Seconds: 300 * 365 * 24 * 60 * 60}),
		Valid: true,
	}.Value()
	c.Check(err, jc.ErrorIs, duration.ErrOverflow)
}

func (s *nullSuite) TestScan(c *gc.C) {
	n := duration.NullProxy{Proxy: duration.FromStd(time.Hour), Valid: true}
	err := n.Scan(nil)
	c.Assert(err, jc.ErrorIsNil)
	c.Check(n, gc.Equals, duration.NullProxy{})

	err = n.Scan(int64(-5_000_000_000))
	c.Assert(err, jc.ErrorIsNil)
	c.Check(n, gc.Equals, duration.NullProxy{Proxy: duration.FromStd(-5 * time.Second), Valid: true})
}

func (s *nullSuite) TestScanErrorLeavesValueUnchanged(c *gc.C) {
	n := duration.NullProxy{Proxy: duration.FromStd(time.Hour), Valid: true}
	err := n.Scan(3.5)
	c.Check(err, jc.ErrorIs, column.ErrTypeMismatch)
	c.Check(n, gc.Equals, duration.NullProxy{Proxy: duration.FromStd(time.Hour), Valid: true})
}
