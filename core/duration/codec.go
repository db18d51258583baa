// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package duration

import (
	"database/sql"
	"database/sql/driver"

	"github.com/juju/sqlduration/core/column"
)

// defaultCodec backs the database/sql interfaces implemented by Proxy.
var defaultCodec = NewCodec(column.Default)

// Codec converts between a Proxy and a BIGINT nanosecond count, leaving
// the backend representation of the integer to an Int64Codec.
type Codec struct {
	ints column.Int64Codec
}

// NewCodec returns a Codec that frames integers with ints.
func NewCodec(ints column.Int64Codec) Codec {
	return Codec{ints: ints}
}

// Encode writes p to out. A duration that does not fit in an int64 count
// of nanoseconds fails with an *OverflowError and nothing is written.
func (c Codec) Encode(p Proxy, out column.Output) error {
	n, ok := p.Nanoseconds()
	if !ok {
		return &OverflowError{Duration: p}
	}
	return c.ints.EncodeInt64(n, out)
}

// Decode reads a Proxy from a raw BIGINT column value. Errors from the
// integer codec are returned as is.
func (c Codec) Decode(raw driver.Value) (Proxy, error) {
	n, err := c.ints.DecodeInt64(raw)
	if err != nil {
		return Proxy{}, err
	}
	return FromNanoseconds(n), nil
}

// Valuer returns a driver.Valuer binding p through the codec.
func (c Codec) Valuer(p Proxy) driver.Valuer {
	return valuer{codec: c, p: p}
}

// Scanner returns a sql.Scanner decoding into p through the codec.
func (c Codec) Scanner(p *Proxy) sql.Scanner {
	return scanner{codec: c, p: p}
}

type valuer struct {
	codec Codec
	p     Proxy
}

func (v valuer) Value() (driver.Value, error) {
	var cell column.Cell
	if err := v.codec.Encode(v.p, &cell); err != nil {
		return nil, err
	}
	return cell.Value(), nil
}

type scanner struct {
	codec Codec
	p     *Proxy
}

func (s scanner) Scan(src any) error {
	p, err := s.codec.Decode(src)
	if err != nil {
		return err
	}
	*s.p = p
	return nil
}

// Value implements driver.Valuer.
func (p Proxy) Value() (driver.Value, error) {
	return defaultCodec.Valuer(p).Value()
}

// Scan implements sql.Scanner. NULL is rejected; use NullProxy for
// nullable columns.
func (p *Proxy) Scan(src any) error {
	return defaultCodec.Scanner(p).Scan(src)
}
