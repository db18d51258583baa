// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package column

import (
	"database/sql/driver"
)

// SQLite is the codec for SQLite and dqlite. Both drivers report INTEGER
// storage class values as int64 and anything else (REAL, TEXT, BLOB)
// means the column does not hold an integer.
var SQLite Int64Codec = sqliteCodec{}

type sqliteCodec struct{}

// EncodeInt64 is part of the Int64Codec interface.
func (sqliteCodec) EncodeInt64(v int64, out Output) error {
	return out.SetValue(v)
}

// DecodeInt64 is part of the Int64Codec interface.
func (sqliteCodec) DecodeInt64(raw driver.Value) (int64, error) {
	switch v := raw.(type) {
	case nil:
		return 0, ErrNull
	case int64:
		return v, nil
	default:
		return 0, typeMismatch(raw)
	}
}
