// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coerce converts between timestamp representations.
//
// Every conversion accepts any of the five temporal representations
// (as a value or a pointer), a time.Time, a string, or an absent
// value (nil, or a nil pointer). Absent input yields a nil result and
// a nil error. Conversions route through the Instant pivot except
// where a more direct lossless path exists: a ZonedTimestamp becomes
// an OffsetTimestamp by copying the zone's offset at that instant.
//
// Targets that need a zone the input does not carry (Instant, legacy
// values or offsets converted to a ZonedTimestamp; zone-less values
// converted to an OffsetTimestamp) use the Graph's default zone.
package coerce // import "go.chrono.dev/coerce"

import (
	"fmt"
	"time"

	"go.chrono.dev/temporal"
	"go.chrono.dev/zone"
)

// A Graph performs conversions relative to a zone provider.
// A Graph is safe for concurrent use.
type Graph struct {
	zones zone.Provider
}

// New returns a Graph that resolves missing zones through zones.
// A nil provider means zone.Host.
func New(zones zone.Provider) *Graph {
	if zones == nil {
		zones = zone.Host
	}
	return &Graph{zones: zones}
}

// Zones returns the provider g was constructed with.
func (g *Graph) Zones() zone.Provider { return g.zones }

// An UnsupportedTypeError reports a Go value that is not a timestamp
// representation.
type UnsupportedTypeError struct {
	Value interface{}
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("cannot convert %T to a timestamp", e.Value)
}

// Value normalizes v to one of the five representations without
// changing its kind. Strings become OffsetTimestamps carrying the
// parsed offset. A time.Time becomes a ZonedTimestamp in its own
// location, or an OffsetTimestamp when the location is unnamed, as for
// time.Parse results with a numeric offset. It returns nil, nil for
// absent input.
func (g *Graph) Value(v interface{}) (temporal.Value, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case temporal.Instant, temporal.OffsetTimestamp, temporal.ZonedTimestamp, temporal.SQLTimestamp, temporal.Date:
		return x.(temporal.Value), nil
	case *temporal.Instant:
		if x == nil {
			return nil, nil
		}
		return *x, nil
	case *temporal.OffsetTimestamp:
		if x == nil {
			return nil, nil
		}
		return *x, nil
	case *temporal.ZonedTimestamp:
		if x == nil {
			return nil, nil
		}
		return *x, nil
	case *temporal.SQLTimestamp:
		if x == nil {
			return nil, nil
		}
		return *x, nil
	case *temporal.Date:
		if x == nil {
			return nil, nil
		}
		return *x, nil
	case time.Time:
		return timeValue(x), nil
	case *time.Time:
		if x == nil {
			return nil, nil
		}
		return timeValue(*x), nil
	case string:
		return parseValue(x)
	case *string:
		if x == nil {
			return nil, nil
		}
		return parseValue(*x)
	}
	return nil, &UnsupportedTypeError{v}
}

func timeValue(t time.Time) temporal.Value {
	if t.Location().String() == "" {
		return temporal.OffsetTimestampOf(t)
	}
	return temporal.ZonedTimestampOf(t)
}

func parseValue(s string) (temporal.Value, error) {
	o, err := Parse(s)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// ToInstant converts v to the pivot representation.
func (g *Graph) ToInstant(v interface{}) (*temporal.Instant, error) {
	x, err := g.Value(v)
	if x == nil || err != nil {
		return nil, err
	}
	i := temporal.InstantOf(x)
	return &i, nil
}

// ToOffsetTimestamp converts v to an OffsetTimestamp. Offsets and zoned
// values keep their offset; zone-less values take the default zone's
// offset at their instant.
func (g *Graph) ToOffsetTimestamp(v interface{}) (*temporal.OffsetTimestamp, error) {
	x, err := g.Value(v)
	if x == nil || err != nil {
		return nil, err
	}
	o := g.offset(x)
	return &o, nil
}

func (g *Graph) offset(x temporal.Value) temporal.OffsetTimestamp {
	switch x := x.(type) {
	case temporal.OffsetTimestamp:
		return x
	case temporal.ZonedTimestamp:
		return x.Offset()
	}
	return temporal.OffsetTimestampOf(time.UnixMilli(x.EpochMillis()).In(g.zones.Default()))
}

// ToZonedTimestamp converts v to a ZonedTimestamp. Only zoned input
// keeps its zone; everything else is placed in the default zone.
func (g *Graph) ToZonedTimestamp(v interface{}) (*temporal.ZonedTimestamp, error) {
	x, err := g.Value(v)
	if x == nil || err != nil {
		return nil, err
	}
	z, ok := x.(temporal.ZonedTimestamp)
	if !ok {
		z = temporal.NewZonedTimestamp(x.EpochMillis(), g.zones.Default())
	}
	return &z, nil
}

// ToSQLTimestamp converts v to a SQLTimestamp.
func (g *Graph) ToSQLTimestamp(v interface{}) (*temporal.SQLTimestamp, error) {
	x, err := g.Value(v)
	if x == nil || err != nil {
		return nil, err
	}
	s := temporal.SQLTimestamp(x.EpochMillis())
	return &s, nil
}

// ToDate converts v to a Date.
func (g *Graph) ToDate(v interface{}) (*temporal.Date, error) {
	x, err := g.Value(v)
	if x == nil || err != nil {
		return nil, err
	}
	d := temporal.Date(x.EpochMillis())
	return &d, nil
}

// To converts v to the representation named by kind and returns it as
// a Value, or nil for absent input.
func (g *Graph) To(kind temporal.Kind, v interface{}) (temporal.Value, error) {
	x, err := g.Value(v)
	if x == nil || err != nil {
		return nil, err
	}
	switch kind {
	case temporal.KindInstant:
		return temporal.InstantOf(x), nil
	case temporal.KindOffset:
		return g.offset(x), nil
	case temporal.KindZoned:
		if z, ok := x.(temporal.ZonedTimestamp); ok {
			return z, nil
		}
		return temporal.NewZonedTimestamp(x.EpochMillis(), g.zones.Default()), nil
	case temporal.KindSQLTimestamp:
		return temporal.SQLTimestamp(x.EpochMillis()), nil
	case temporal.KindDate:
		return temporal.Date(x.EpochMillis()), nil
	}
	panic(temporal.PreconditionViolation{Op: "coerce", Msg: fmt.Sprintf("unknown kind %v", kind)})
}

// InZone returns v as a ZonedTimestamp in the named zone.
func (g *Graph) InZone(v interface{}, name string) (*temporal.ZonedTimestamp, error) {
	x, err := g.Value(v)
	if x == nil || err != nil {
		return nil, err
	}
	loc, err := g.zones.Load(name)
	if err != nil {
		return nil, err
	}
	z := temporal.NewZonedTimestamp(x.EpochMillis(), loc)
	return &z, nil
}

// Equal reports whether all values denote the same instant. Absent
// values are equal only to each other; with fewer than two values
// Equal reports true.
func (g *Graph) Equal(values ...interface{}) (bool, error) {
	var (
		first  *temporal.Instant
		absent int
	)
	for _, v := range values {
		i, err := g.ToInstant(v)
		if err != nil {
			return false, err
		}
		if i == nil {
			absent++
			continue
		}
		if first == nil {
			first = i
		} else if *i != *first {
			return false, nil
		}
	}
	return absent == 0 || absent == len(values), nil
}
