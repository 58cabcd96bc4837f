// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chrono is the entry point of the timestamp toolkit.
//
// A Toolkit bundles the collaborators the conversions depend on: a
// clock for Now, a zone provider for conversions that need a zone their
// input lacks, and a language for locale rendering. The package-level
// functions use a default Toolkit built from the host clock (through
// NowFunc), the host zone and English.
//
// Every function that takes an input of type any accepts the five
// temporal representations (or pointers to them), a time.Time or a
// string. Absent input (nil or a nil pointer) yields a nil result and a
// nil error.
package chrono // import "go.chrono.dev/chrono"

import (
	"time"

	"golang.org/x/text/language"

	"go.chrono.dev/clock"
	"go.chrono.dev/coerce"
	"go.chrono.dev/duration"
	"go.chrono.dev/temporal"
	"go.chrono.dev/timefmt"
	"go.chrono.dev/zone"
)

// A Toolkit converts, adds to and formats timestamps.
// A Toolkit is immutable and safe for concurrent use.
type Toolkit struct {
	clock clock.Clock
	graph *coerce.Graph
	lang  language.Tag
}

// An Option configures a Toolkit.
type Option func(*Toolkit)

// WithClock sets the clock read by Now.
func WithClock(c clock.Clock) Option {
	return func(t *Toolkit) { t.clock = c }
}

// WithZones sets the provider of the default zone.
func WithZones(p zone.Provider) Option {
	return func(t *Toolkit) { t.graph = coerce.New(p) }
}

// WithLanguage sets the language of locale renderings.
func WithLanguage(tag language.Tag) Option {
	return func(t *Toolkit) { t.lang = tag }
}

// New returns a Toolkit using the host clock, the host zone and
// English unless overridden by opts.
func New(opts ...Option) *Toolkit {
	t := &Toolkit{
		clock: clock.Host,
		graph: coerce.New(zone.Host),
		lang:  language.English,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.clock == nil {
		t.clock = clock.Host
	}
	return t
}

// Clock returns the clock t reads.
func (t *Toolkit) Clock() clock.Clock { return t.clock }

// Zones returns the zone provider of t.
func (t *Toolkit) Zones() zone.Provider { return t.graph.Zones() }

// Language returns the language of t's locale renderings.
func (t *Toolkit) Language() language.Tag { return t.lang }

// Now returns the current time as an offset timestamp in the default
// zone's current offset, truncated to the millisecond.
func (t *Toolkit) Now() temporal.OffsetTimestamp {
	now := t.clock.Now().In(t.graph.Zones().Default())
	return temporal.OffsetTimestampOf(now)
}

// Value normalizes v to its temporal representation.
func (t *Toolkit) Value(v any) (temporal.Value, error) { return t.graph.Value(v) }

func (t *Toolkit) ToInstant(v any) (*temporal.Instant, error) { return t.graph.ToInstant(v) }

func (t *Toolkit) ToOffsetTimestamp(v any) (*temporal.OffsetTimestamp, error) {
	return t.graph.ToOffsetTimestamp(v)
}

func (t *Toolkit) ToZonedTimestamp(v any) (*temporal.ZonedTimestamp, error) {
	return t.graph.ToZonedTimestamp(v)
}

func (t *Toolkit) ToSQLTimestamp(v any) (*temporal.SQLTimestamp, error) {
	return t.graph.ToSQLTimestamp(v)
}

func (t *Toolkit) ToDate(v any) (*temporal.Date, error) { return t.graph.ToDate(v) }

// To converts v to the representation named by kind.
func (t *Toolkit) To(kind temporal.Kind, v any) (temporal.Value, error) { return t.graph.To(kind, v) }

// InZone returns v as a zoned timestamp in the named zone.
func (t *Toolkit) InZone(v any, name string) (*temporal.ZonedTimestamp, error) {
	return t.graph.InZone(v, name)
}

// InstantsEqual reports whether all values denote the same instant.
// Absent values are equal only to each other; fewer than two values are
// trivially equal.
func (t *Toolkit) InstantsEqual(values ...any) (bool, error) { return t.graph.Equal(values...) }

// Add returns v advanced by spec in v's own representation. A string v
// is parsed to an offset timestamp first. See duration.Normalize for the
// accepted spec shapes.
func (t *Toolkit) Add(v any, spec any) (temporal.Value, error) {
	x, err := t.graph.Value(v)
	if err != nil {
		return nil, err
	}
	return duration.Add(x, spec)
}

// Sub returns v moved back by spec.
func (t *Toolkit) Sub(v any, spec any) (temporal.Value, error) {
	x, err := t.graph.Value(v)
	if err != nil {
		return nil, err
	}
	return duration.Sub(x, spec)
}

// ToISOString returns v in UTC as "2006-01-02T15:04:05.000Z".
func (t *Toolkit) ToISOString(v any) (*string, error) {
	x, err := t.graph.Value(v)
	if x == nil || err != nil {
		return nil, err
	}
	s := timefmt.ISO(x)
	return &s, nil
}

// ToLocaleString renders v for people in t's language. Offset and zoned
// values are shown in their own zone; the others in the default zone.
// It panics if style is not a declared timefmt.Style.
func (t *Toolkit) ToLocaleString(v any, style timefmt.Style) (*string, error) {
	x, err := t.graph.Value(v)
	if x == nil || err != nil {
		return nil, err
	}
	s := timefmt.Locale(t.wallClock(x), style, t.lang)
	return &s, nil
}

// Format renders v with a CLDR-style pattern; see timefmt.Pattern.
func (t *Toolkit) Format(v any, pattern string) (*string, error) {
	x, err := t.graph.Value(v)
	if x == nil || err != nil {
		return nil, err
	}
	s := timefmt.Pattern(t.wallClock(x), pattern, t.lang)
	return &s, nil
}

func (t *Toolkit) wallClock(x temporal.Value) time.Time {
	if x.Kind().HasCalendar() {
		return x.Time()
	}
	return time.UnixMilli(x.EpochMillis()).In(t.graph.Zones().Default())
}
