// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package column

import (
	"database/sql/driver"
	"math"
	"strconv"

	"github.com/juju/errors"
)

// Default follows the conversions database/sql applies when scanning into
// an int64. It is used when nothing more specific is known about the
// backend.
var Default Int64Codec = defaultCodec{}

type defaultCodec struct{}

// EncodeInt64 is part of the Int64Codec interface.
func (defaultCodec) EncodeInt64(v int64, out Output) error {
	return out.SetValue(v)
}

// DecodeInt64 is part of the Int64Codec interface.
func (defaultCodec) DecodeInt64(raw driver.Value) (int64, error) {
	switch v := raw.(type) {
	case nil:
		return 0, ErrNull
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case uint64:
		return fromUint64(v)
	case uint:
		return fromUint64(uint64(v))
	case []byte:
		return parseInt(raw, string(v))
	case string:
		return parseInt(raw, v)
	default:
		return 0, typeMismatch(raw)
	}
}

func fromUint64(v uint64) (int64, error) {
	if v > math.MaxInt64 {
		return 0, errors.Annotatef(ErrOutOfRange, "decoding %d", v)
	}
	return int64(v), nil
}

// parseInt reads the base-10 text representation used by backends that
// transfer integers as strings.
func parseInt(raw driver.Value, s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if errors.Is(err, strconv.ErrRange) {
		return 0, errors.Annotatef(ErrOutOfRange, "decoding %q", s)
	} else if err != nil {
		return 0, errors.Annotatef(ErrTypeMismatch, "decoding %T %q as BIGINT", raw, s)
	}
	return n, nil
}
