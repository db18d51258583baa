// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package duration

import (
	"fmt"

	"github.com/juju/errors"
)

// ErrOverflow matches, via errors.Is, every error returned for a duration
// whose nanosecond count does not fit in an int64.
const ErrOverflow = errors.ConstError("duration overflows int64 nanoseconds")

// OverflowError is returned when encoding a duration longer than the
// ~292 years an int64 count of nanoseconds can hold.
type OverflowError struct {
	Duration Proxy
}

// Error implements error.
func (e *OverflowError) Error() string {
	return fmt.Sprintf("%s as nanoseconds is too large to fit in an int64", e.Duration)
}

// Is reports whether target is ErrOverflow.
func (e *OverflowError) Is(target error) bool {
	return target == ErrOverflow
}
