// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package duration

import (
	"database/sql/driver"
)

// NullProxy represents a duration that may be NULL. It implements
// sql.Scanner and driver.Valuer in the same way as sql.NullInt64.
type NullProxy struct {
	Proxy Proxy
	Valid bool // Valid is true if Proxy is not NULL
}

// Scan implements sql.Scanner. On error n is left unchanged.
func (n *NullProxy) Scan(src any) error {
	if src == nil {
		n.Proxy, n.Valid = Proxy{}, false
		return nil
	}
	if err := n.Proxy.Scan(src); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// Value implements driver.Valuer.
func (n NullProxy) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Proxy.Value()
}
