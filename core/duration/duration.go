// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package duration stores protobuf durations in a single BIGINT column as
// a signed count of nanoseconds.
//
// The protobuf Duration type lives in another module, so the storage
// behaviour is attached to Proxy, which holds the seconds and nanos of one
// protobuf Duration by value.
package duration

import (
	"fmt"
	"math"
	"time"

	"google.golang.org/protobuf/types/known/durationpb"
)

const (
	nanosPerSecond = int64(time.Second)

	// maxSeconds and minSeconds bound the whole seconds of a duration whose
	// nanosecond count can fit in an int64.
	maxSeconds = math.MaxInt64 / nanosPerSecond
	minSeconds = math.MinInt64 / nanosPerSecond
)

// Proxy holds the seconds and nanos of one protobuf Duration so that it
// can be bound to a BIGINT column. Unlike the message it is safe to copy
// and compare. The zero value is a zero length duration.
type Proxy struct {
	seconds int64
	nanos   int32
}

// New returns a Proxy holding a copy of d. A nil duration is treated as
// zero. Seconds and nanos are normalised to share a sign.
func New(d *durationpb.Duration) Proxy {
	seconds, nanos := normalise(d.GetSeconds(), int64(d.GetNanos()))
	return Proxy{seconds: seconds, nanos: nanos}
}

// FromStd returns a Proxy for a time.Duration.
func FromStd(d time.Duration) Proxy {
	return FromNanoseconds(int64(d))
}

// FromNanoseconds returns a Proxy for a count of nanoseconds. Every int64
// is a valid duration.
func FromNanoseconds(n int64) Proxy {
	return Proxy{
		seconds: n / nanosPerSecond,
		nanos:   int32(n % nanosPerSecond),
	}
}

// Duration returns the wrapped duration as a new message.
func (p Proxy) Duration() *durationpb.Duration {
	return &durationpb.Duration{
		Seconds: p.seconds,
		Nanos:   p.nanos,
	}
}

// Nanoseconds returns the total number of nanoseconds in the duration. The
// boolean is false when the count does not fit in an int64.
func (p Proxy) Nanoseconds() (int64, bool) {
	if p.seconds > maxSeconds || p.seconds < minSeconds {
		return 0, false
	}
	n, nanos := p.seconds*nanosPerSecond, int64(p.nanos)
	if (nanos > 0 && n > math.MaxInt64-nanos) || (nanos < 0 && n < math.MinInt64-nanos) {
		return 0, false
	}
	return n + nanos, true
}

// Std returns the duration as a time.Duration, which shares the int64
// nanosecond range.
func (p Proxy) Std() (time.Duration, bool) {
	n, ok := p.Nanoseconds()
	return time.Duration(n), ok
}

// Equal reports whether p and other are the same length of time.
func (p Proxy) Equal(other Proxy) bool {
	return p == other
}

// Compare returns -1, 0 or +1 depending on whether p is shorter than,
// equal to or longer than other.
func (p Proxy) Compare(other Proxy) int {
	switch {
	case p.seconds < other.seconds:
		return -1
	case p.seconds > other.seconds:
		return 1
	case p.nanos < other.nanos:
		return -1
	case p.nanos > other.nanos:
		return 1
	}
	return 0
}

// String formats durations that fit in a time.Duration the way
// time.Duration does, and larger ones as decimal seconds.
func (p Proxy) String() string {
	if d, ok := p.Std(); ok {
		return d.String()
	}
	sign, seconds, nanos := "", uint64(p.seconds), p.nanos
	if p.seconds < 0 {
		sign, seconds, nanos = "-", -seconds, -nanos
	}
	if nanos == 0 {
		return fmt.Sprintf("%s%ds", sign, seconds)
	}
	return fmt.Sprintf("%s%d.%09ds", sign, seconds, nanos)
}

// normalise folds whole seconds out of nanos and gives both parts the
// same sign.
func normalise(seconds, nanos int64) (int64, int32) {
	carry := nanos / nanosPerSecond
	if (carry > 0 && seconds > math.MaxInt64-carry) || (carry < 0 && seconds < math.MinInt64-carry) {
		// Saturate rather than wrap; the result cannot be stored either way.
		if carry > 0 {
			return math.MaxInt64, int32(nanosPerSecond - 1)
		}
		return math.MinInt64, -int32(nanosPerSecond - 1)
	}
	seconds += carry
	nanos -= carry * nanosPerSecond
	switch {
	case seconds > 0 && nanos < 0:
		seconds--
		nanos += nanosPerSecond
	case seconds < 0 && nanos > 0:
		seconds++
		nanos -= nanosPerSecond
	}
	return seconds, int32(nanos)
}
