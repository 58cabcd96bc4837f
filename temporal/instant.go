// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package temporal defines the immutable timestamp representations
// exchanged by the coercion graph, the duration engine and the
// formatters.
//
// Every representation carries an epoch-millisecond value, and that
// value alone defines equality and ordering. Instant is the canonical
// pivot through which conversions are routed.
package temporal // import "go.chrono.dev/temporal"

import (
	"fmt"
	"time"

	"go.chrono.dev/internal/overflow"
)

// ISOLayout renders a UTC time as ISO-8601 extended with exactly
// millisecond precision. It covers the years 0000 through 9999; other
// years are printed with more digits or a minus sign and are not valid
// ISO-8601 extended text.
const ISOLayout = "2006-01-02T15:04:05.000Z"

const nanosPerMilli = int64(time.Millisecond)

// Instant is the number of milliseconds since the Unix epoch
// (1970-01-01 00:00 UTC) excluding leap seconds.
type Instant int64

var _ Value = Instant(0)

// FromEpochMillis returns the Instant ms milliseconds after the epoch.
func FromEpochMillis(ms int64) Instant { return Instant(ms) }

// FromUnixNano returns the Instant containing the Unix time ns given in
// nanoseconds. Sub-millisecond digits are truncated toward the past.
func FromUnixNano(ns int64) Instant {
	ms := ns / nanosPerMilli
	if ns%nanosPerMilli < 0 {
		ms--
	}
	return Instant(ms)
}

// FromTime returns the Instant of t, truncated to the millisecond.
func FromTime(t time.Time) Instant {
	return Instant(t.UnixMilli())
}

// InstantOf returns the pivot of any representation.
func InstantOf(v Value) Instant { return Instant(v.EpochMillis()) }

func (i Instant) EpochMillis() int64 { return int64(i) }
func (i Instant) Kind() Kind         { return KindInstant }
func (Instant) sealed()              {}

// Time returns i as a time.Time in UTC.
func (i Instant) Time() time.Time { return time.UnixMilli(int64(i)).UTC() }

// Compare returns -1, 0 or +1 as i is before, equal to or after o.
func (i Instant) Compare(o Instant) int {
	switch {
	case i < o:
		return -1
	case i > o:
		return 1
	}
	return 0
}

func (i Instant) Equal(o Instant) bool  { return i == o }
func (i Instant) Before(o Instant) bool { return i < o }
func (i Instant) After(o Instant) bool  { return i > o }

// AddMillis returns i+ms. It panics with a PreconditionViolation if the
// result leaves the int64 millisecond range.
func (i Instant) AddMillis(ms int64) Instant {
	sum, ok := overflow.Add(int64(i), ms)
	if !ok {
		panic(PreconditionViolation{Op: "add", Msg: fmt.Sprintf("%d + %d ms overflows the instant range", i, ms)})
	}
	return Instant(sum)
}

// String formats i with ISOLayout. Only instants in the years 0000
// through 9999 read back with UnmarshalText or coerce.Parse.
func (i Instant) String() string { return i.Time().Format(ISOLayout) }

// MarshalText implements encoding.TextMarshaler using the ISO layout.
func (i Instant) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts RFC 3339
// text with any fractional precision; the coerce package handles the
// full grammar.
func (i *Instant) UnmarshalText(text []byte) error {
	t, err := time.Parse(time.RFC3339Nano, string(text))
	if err != nil {
		return err
	}
	*i = FromTime(t)
	return nil
}
