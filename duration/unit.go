// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package duration

import (
	"fmt"
	"strings"
	"time"
)

// A Unit is a duration unit. Units up to Weeks are exact: each has a
// fixed length. Months and longer are calendar-relative: their length
// depends on the date they are applied to.
type Unit uint8

const (
	Nanoseconds Unit = iota
	Microseconds
	Milliseconds
	Seconds
	Minutes
	Hours
	HalfDays
	Days
	Weeks
	Months
	Years
	Decades
	Centuries
	Millennia
	Eras
	Forever

	numUnits = int(Forever) + 1
)

var unitNames = [numUnits]string{
	Nanoseconds:  "nanoseconds",
	Microseconds: "microseconds",
	Milliseconds: "milliseconds",
	Seconds:      "seconds",
	Minutes:      "minutes",
	Hours:        "hours",
	HalfDays:     "half-days",
	Days:         "days",
	Weeks:        "weeks",
	Months:       "months",
	Years:        "years",
	Decades:      "decades",
	Centuries:    "centuries",
	Millennia:    "millennia",
	Eras:         "eras",
	Forever:      "forever",
}

// exactNanos holds the length of each exact unit.
var exactNanos = [Months]int64{
	Nanoseconds:  int64(time.Nanosecond),
	Microseconds: int64(time.Microsecond),
	Milliseconds: int64(time.Millisecond),
	Seconds:      int64(time.Second),
	Minutes:      int64(time.Minute),
	Hours:        int64(time.Hour),
	HalfDays:     int64(12 * time.Hour),
	Days:         int64(24 * time.Hour),
	Weeks:        int64(7 * 24 * time.Hour),
}

// calendarMonths holds the length of each calendar unit in months.
// Zero marks a unit longer than any representable span.
var calendarMonths = [numUnits]int64{
	Months:    1,
	Years:     12,
	Decades:   120,
	Centuries: 1200,
	Millennia: 12000,
	Eras:      12 * 1000000000,
}

// estimatedMonthMillis is the average Gregorian month, 365.2425/12 days.
const estimatedMonthMillis = 31556952000 / 12

var aliases = map[string]Unit{
	"ns": Nanoseconds, "nanos": Nanoseconds,
	"us": Microseconds, "micros": Microseconds,
	"ms": Milliseconds, "millis": Milliseconds,
	"s": Seconds, "sec": Seconds, "secs": Seconds,
	"min": Minutes, "mins": Minutes,
	"h": Hours, "hr": Hours, "hrs": Hours,
	"halfday": HalfDays, "halfdays": HalfDays,
	"d": Days,
	"w": Weeks,
	"mo": Months,
	"y": Years, "yr": Years, "yrs": Years,
}

var singular = [numUnits]string{
	Nanoseconds:  "nanosecond",
	Microseconds: "microsecond",
	Milliseconds: "millisecond",
	Seconds:      "second",
	Minutes:      "minute",
	Hours:        "hour",
	HalfDays:     "half-day",
	Days:         "day",
	Weeks:        "week",
	Months:       "month",
	Years:        "year",
	Decades:      "decade",
	Centuries:    "century",
	Millennia:    "millennium",
	Eras:         "era",
	Forever:      "forever",
}

func init() {
	for u := range unitNames {
		aliases[unitNames[u]] = Unit(u)
		aliases[singular[u]] = Unit(u)
	}
}

// ParseUnit returns the unit named by key. Keys are case-insensitive;
// plural names ("days"), singular names ("day") and short forms
// ("d", "ms") are accepted, and "_" may stand for "-".
func ParseUnit(key string) (Unit, error) {
	k := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "_", "-")
	if u, ok := aliases[k]; ok {
		return u, nil
	}
	return 0, &UnsupportedUnitError{Key: key}
}

// Names returns the canonical unit names in order of increasing length.
func Names() []string {
	return append([]string(nil), unitNames[:]...)
}

func (u Unit) String() string {
	if u.valid() {
		return unitNames[u]
	}
	return fmt.Sprintf("Unit(%d)", u)
}

func (u Unit) valid() bool { return int(u) < numUnits }

// IsCalendar reports whether u is calendar-relative.
func (u Unit) IsCalendar() bool { return u >= Months && u.valid() }

// Nanos returns the fixed length of an exact unit, or 0 for a
// calendar-relative one.
func (u Unit) Nanos() int64 {
	if u < Months {
		return exactNanos[u]
	}
	return 0
}

// EstimatedMillis returns the fixed length used for a calendar unit
// when the value being stepped carries no calendar. ok is false for
// exact units and for lengths that do not fit in an int64 (eras and
// forever).
func (u Unit) EstimatedMillis() (ms int64, ok bool) {
	if u < Months || u > Millennia {
		return 0, false
	}
	return calendarMonths[u] * estimatedMonthMillis, true
}
