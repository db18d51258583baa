// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package column

import (
	"database/sql/driver"
)

// MySQL is the codec for MySQL and MariaDB. The text protocol returns
// BIGINT values as their decimal text, the binary protocol used by
// prepared statements returns int64, and BIGINT UNSIGNED columns come back
// as uint64.
var MySQL Int64Codec = mysqlCodec{}

type mysqlCodec struct{}

// EncodeInt64 is part of the Int64Codec interface.
func (mysqlCodec) EncodeInt64(v int64, out Output) error {
	return out.SetValue(v)
}

// DecodeInt64 is part of the Int64Codec interface.
func (mysqlCodec) DecodeInt64(raw driver.Value) (int64, error) {
	switch v := raw.(type) {
	case nil:
		return 0, ErrNull
	case int64:
		return v, nil
	case uint64:
		return fromUint64(v)
	case []byte:
		return parseInt(raw, string(v))
	default:
		return 0, typeMismatch(raw)
	}
}
