// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package duration adds duration specs to timestamps.
//
// A spec is an ordered list of (unit, quantity) steps, folded into the
// value left to right. Exact units (nanoseconds through weeks) shift the
// instant by a fixed length. Calendar units (months and longer) depend
// on the value's representation:
//
//   - OffsetTimestamp and ZonedTimestamp values step their wall-clock
//     calendar fields. When the target month is shorter than the day of
//     month, the day is clamped to the month's last day, so
//     2001-01-31 plus one month is 2001-02-28.
//   - Instant, SQLTimestamp and Date values carry no calendar and step
//     by an estimated length: a month is 365.2425/12 days and a year is
//     365.2425 days. Eras and forever do not fit in the millisecond
//     range and always overflow.
//
// Every result keeps the representation of its input and is truncated
// to millisecond precision after each step. Arithmetic that leaves the
// int64 millisecond range panics with a temporal.PreconditionViolation.
package duration // import "go.chrono.dev/duration"

import (
	"fmt"
	"math"
	"time"

	"go.chrono.dev/internal/overflow"
	"go.chrono.dev/temporal"
)

// A Stepper applies a single step to a value. The result has the same
// kind as v.
type Stepper interface {
	Step(v temporal.Value, s Step) temporal.Value
}

var (
	// Calendar steps wall-clock fields with end-of-month clamping.
	Calendar Stepper = calendarStepper{}
	// Approximate steps calendar units by their estimated length.
	Approximate Stepper = approxStepper{}
)

// StepperFor returns the strategy used for values of kind k.
func StepperFor(k temporal.Kind) Stepper {
	if k.HasCalendar() {
		return Calendar
	}
	return Approximate
}

// Add returns v advanced by spec, which may have any shape accepted by
// Normalize. A nil v yields nil.
func Add(v temporal.Value, spec interface{}) (temporal.Value, error) {
	s, err := Normalize(spec)
	if err != nil {
		return nil, err
	}
	return Apply(v, s)
}

// Sub returns v moved back by spec: each step is negated and the steps
// are applied in the order given.
func Sub(v temporal.Value, spec interface{}) (temporal.Value, error) {
	s, err := Normalize(spec)
	if err != nil {
		return nil, err
	}
	return Apply(v, s.Negate())
}

// Apply folds the steps of s into v.
func Apply(v temporal.Value, s Spec) (temporal.Value, error) {
	if err := validate(s); err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	st := StepperFor(v.Kind())
	for _, step := range s {
		if step.N != 0 {
			v = st.Step(v, step)
		}
	}
	return v, nil
}

type calendarStepper struct{}

func (calendarStepper) Step(v temporal.Value, s Step) temporal.Value {
	if !s.Unit.IsCalendar() {
		return shiftExact(v, s)
	}
	per := calendarMonths[s.Unit]
	months, ok := overflow.Mul(s.N, per)
	if per == 0 || !ok {
		overflowed(v, s)
	}
	t, ok := addMonths(v.Time(), months)
	if !ok {
		overflowed(v, s)
	}
	return withMillis(v, t.UnixMilli())
}

type approxStepper struct{}

func (approxStepper) Step(v temporal.Value, s Step) temporal.Value {
	if !s.Unit.IsCalendar() {
		return shiftExact(v, s)
	}
	est, ok := s.Unit.EstimatedMillis()
	if !ok {
		overflowed(v, s)
	}
	delta, ok := overflow.Mul(s.N, est)
	if !ok {
		overflowed(v, s)
	}
	ms, ok := overflow.Add(v.EpochMillis(), delta)
	if !ok {
		overflowed(v, s)
	}
	return withMillis(v, ms)
}

const nanosPerMilli = int64(time.Millisecond)

// shiftExact adds a fixed-length step. Sub-millisecond quantities are
// truncated toward the past.
func shiftExact(v temporal.Value, s Step) temporal.Value {
	unit := s.Unit.Nanos()
	var delta, rem int64
	if unit >= nanosPerMilli {
		var ok bool
		if delta, ok = overflow.Mul(s.N, unit/nanosPerMilli); !ok {
			overflowed(v, s)
		}
	} else {
		perMilli := nanosPerMilli / unit
		delta, rem = s.N/perMilli, s.N%perMilli
	}
	if rem < 0 {
		delta-- // cannot overflow: |delta| <= MaxInt64/1000
	}
	ms, ok := overflow.Add(v.EpochMillis(), delta)
	if !ok {
		overflowed(v, s)
	}
	return withMillis(v, ms)
}

// withMillis returns the value of v's kind, offset and zone at ms.
func withMillis(v temporal.Value, ms int64) temporal.Value {
	switch x := v.(type) {
	case temporal.Instant:
		return temporal.Instant(ms)
	case temporal.OffsetTimestamp:
		return temporal.NewOffsetTimestamp(ms, x.OffsetMinutes())
	case temporal.ZonedTimestamp:
		return temporal.NewZonedTimestamp(ms, x.Location())
	case temporal.SQLTimestamp:
		return temporal.SQLTimestamp(ms)
	case temporal.Date:
		return temporal.Date(ms)
	}
	panic(temporal.PreconditionViolation{Op: "add", Msg: fmt.Sprintf("unexpected value type %T", v)})
}

func overflowed(v temporal.Value, s Step) {
	panic(temporal.PreconditionViolation{Op: "add", Msg: fmt.Sprintf("%v plus %s overflows", v, s)})
}

// Years outside this range cannot be represented in milliseconds.
const (
	minYear = -292275055
	maxYear = 292278994
)

var (
	minTime = time.UnixMilli(math.MinInt64)
	maxTime = time.UnixMilli(math.MaxInt64)
)

// addMonths moves t by months in its own location, clamping the day of
// month. ok is false if the result is out of range.
func addMonths(t time.Time, months int64) (r time.Time, ok bool) {
	y, m, d := t.Date()
	total, ok := overflow.Add(int64(y)*12+int64(m-1), months)
	if !ok {
		return time.Time{}, false
	}
	year, month := floorDiv(total, 12), time.Month(floorMod(total, 12)+1)
	if year < minYear || year > maxYear {
		return time.Time{}, false
	}
	if last := daysIn(month, int(year)); d > last {
		d = last
	}
	hh, mm, ss := t.Clock()
	r = time.Date(int(year), month, d, hh, mm, ss, t.Nanosecond(), t.Location())
	if r.Before(minTime) || r.After(maxTime) {
		return time.Time{}, false
	}
	return r, true
}

func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func floorDiv(x, y int64) int64 {
	q := x / y
	if (x%y != 0) && ((x < 0) != (y < 0)) {
		q--
	}
	return q
}

func floorMod(x, y int64) int64 {
	return x - floorDiv(x, y)*y
}

func mulNanos(n, unit int64) (time.Duration, bool) {
	d, ok := overflow.Mul(n, unit)
	return time.Duration(d), ok
}

func addNanos(a, b time.Duration) (time.Duration, bool) {
	d, ok := overflow.Add(int64(a), int64(b))
	return time.Duration(d), ok
}
