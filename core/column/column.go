// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package column describes how a single signed 64-bit integer (BIGINT)
// column value is written to and read from a database backend.
//
// Types that persist themselves as an integer column delegate the
// backend specific framing to an Int64Codec, which keeps them independent
// of the database engine in use.
package column

import (
	"database/sql/driver"

	"github.com/juju/errors"
)

const (
	// ErrNull is returned when a NULL is decoded into a non-nullable
	// integer column.
	ErrNull = errors.ConstError("unexpected NULL for BIGINT column")

	// ErrTypeMismatch is returned when the backend hands back a value that
	// is not a representation of a signed 64-bit integer.
	ErrTypeMismatch = errors.ConstError("column type mismatch")

	// ErrOutOfRange is returned when the backend value is an integer that
	// does not fit in an int64.
	ErrOutOfRange = errors.ConstError("integer out of range for BIGINT column")
)

// Output is the sink a column value is written to when it is bound as a
// statement parameter.
type Output interface {
	// SetValue records v as the value of the column.
	SetValue(v driver.Value) error
}

// Int64Codec encodes and decodes BIGINT column values for one database
// backend.
type Int64Codec interface {
	// EncodeInt64 writes v to out in the backend's representation.
	EncodeInt64(v int64, out Output) error

	// DecodeInt64 converts a raw value read from the backend into an int64.
	DecodeInt64(raw driver.Value) (int64, error)
}

// Cell is an in-memory Output holding at most one value.
type Cell struct {
	value   driver.Value
	written bool
}

// SetValue is part of the Output interface.
func (c *Cell) SetValue(v driver.Value) error {
	c.value = v
	c.written = true
	return nil
}

// Value returns the value written to the cell, or nil if nothing has
// been written.
func (c *Cell) Value() driver.Value {
	return c.value
}

// Written reports whether SetValue has been called.
func (c *Cell) Written() bool {
	return c.written
}

func typeMismatch(raw driver.Value) error {
	return errors.Annotatef(ErrTypeMismatch, "decoding %T as BIGINT", raw)
}
