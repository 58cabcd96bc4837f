// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package temporal

import (
	"fmt"
	"time"
)

// Value is implemented by the five timestamp representations of this
// package and by nothing else.
type Value interface {
	// EpochMillis returns the pivot value in milliseconds since the epoch.
	EpochMillis() int64
	Kind() Kind
	// Time returns the wall clock of the value in its own zone,
	// or in UTC if the representation carries none.
	Time() time.Time
	sealed()
}

// Kind identifies a representation.
type Kind uint8

const (
	KindInstant Kind = iota
	KindOffset
	KindZoned
	KindSQLTimestamp
	KindDate
)

var kindNames = [...]string{
	KindInstant:      "instant",
	KindOffset:       "offset",
	KindZoned:        "zoned",
	KindSQLTimestamp: "sql_timestamp",
	KindDate:         "date",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// ParseKind returns the kind with the given name, as printed by String.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}

// HasCalendar reports whether values of kind k carry enough zone
// information to step by calendar units in local wall-clock time.
func (k Kind) HasCalendar() bool { return k == KindOffset || k == KindZoned }

// MaxOffsetMinutes bounds the magnitude of a UTC offset (18 hours).
const MaxOffsetMinutes = 18 * 60

// An OffsetTimestamp is an instant plus a fixed UTC offset.
//
// The zero value is 0001-01-01T00:00:00Z. OffsetTimestamps should be
// compared with Equal or through their Instant, not with ==.
type OffsetTimestamp struct {
	t time.Time // millisecond precision, fixed zone
}

var _ Value = OffsetTimestamp{}

// NewOffsetTimestamp returns the instant ms with a fixed offset of
// offsetMinutes east of UTC. It panics if the offset exceeds ±18h.
func NewOffsetTimestamp(ms int64, offsetMinutes int) OffsetTimestamp {
	return OffsetTimestamp{t: time.UnixMilli(ms).In(fixedZone(offsetMinutes))}
}

// OffsetTimestampOf captures t and the offset in effect for t in its
// location. Offsets are kept in whole minutes; the seconds of a
// historical offset such as +01:19:32 are dropped, which moves the wall
// clock but not the instant.
func OffsetTimestampOf(t time.Time) OffsetTimestamp {
	_, sec := t.Zone()
	return NewOffsetTimestamp(t.UnixMilli(), sec/60)
}

func (o OffsetTimestamp) EpochMillis() int64 { return o.t.UnixMilli() }
func (o OffsetTimestamp) Kind() Kind         { return KindOffset }
func (o OffsetTimestamp) Time() time.Time    { return o.t }
func (OffsetTimestamp) sealed()              {}

// Instant returns the pivot of o.
func (o OffsetTimestamp) Instant() Instant { return FromTime(o.t) }

// OffsetMinutes returns the offset of o in minutes east of UTC.
func (o OffsetTimestamp) OffsetMinutes() int {
	_, sec := o.t.Zone()
	return sec / 60
}

// Equal reports whether o and x denote the same instant.
func (o OffsetTimestamp) Equal(x OffsetTimestamp) bool { return o.t.Equal(x.t) }

func (o OffsetTimestamp) String() string {
	return o.t.Format("2006-01-02T15:04:05.000Z07:00")
}

// A ZonedTimestamp is an instant plus a named zone whose rules give the
// offset at that instant.
type ZonedTimestamp struct {
	t time.Time // millisecond precision, t.Location() is the zone
}

var _ Value = ZonedTimestamp{}

// NewZonedTimestamp returns the instant ms in loc. It panics if loc is nil.
func NewZonedTimestamp(ms int64, loc *time.Location) ZonedTimestamp {
	if loc == nil {
		panic(PreconditionViolation{Op: "zoned", Msg: "nil location"})
	}
	return ZonedTimestamp{t: time.UnixMilli(ms).In(loc)}
}

// ZonedTimestampOf captures t in its own location.
func ZonedTimestampOf(t time.Time) ZonedTimestamp {
	return NewZonedTimestamp(t.UnixMilli(), t.Location())
}

func (z ZonedTimestamp) EpochMillis() int64 { return z.t.UnixMilli() }
func (z ZonedTimestamp) Kind() Kind         { return KindZoned }
func (z ZonedTimestamp) Time() time.Time    { return z.t }
func (ZonedTimestamp) sealed()              {}

// Instant returns the pivot of z.
func (z ZonedTimestamp) Instant() Instant { return FromTime(z.t) }

// Zone returns the zone identifier, e.g. "Europe/Berlin".
func (z ZonedTimestamp) Zone() string { return z.t.Location().String() }

// Location returns the zone rules of z.
func (z ZonedTimestamp) Location() *time.Location { return z.t.Location() }

// Offset returns the offset-only view of z. The instant is kept exactly.
// The offset is kept to the whole minute (see OffsetTimestampOf) and the
// zone identity is dropped.
func (z ZonedTimestamp) Offset() OffsetTimestamp {
	return OffsetTimestampOf(z.t)
}

// Equal reports whether z and x denote the same instant.
func (z ZonedTimestamp) Equal(x ZonedTimestamp) bool { return z.t.Equal(x.t) }

func (z ZonedTimestamp) String() string {
	return z.t.Format("2006-01-02T15:04:05.000Z07:00") + "[" + z.Zone() + "]"
}

// SQLTimestamp is an epoch-millisecond value with the identity of a
// database timestamp column.
type SQLTimestamp int64

var _ Value = SQLTimestamp(0)

func (s SQLTimestamp) EpochMillis() int64 { return int64(s) }
func (s SQLTimestamp) Kind() Kind         { return KindSQLTimestamp }
func (s SQLTimestamp) Time() time.Time    { return Instant(s).Time() }
func (SQLTimestamp) sealed()              {}
func (s SQLTimestamp) String() string     { return Instant(s).Time().Format("2006-01-02 15:04:05.000") }

// Date is an epoch-millisecond value with the identity of a generic
// host date object.
type Date int64

var _ Value = Date(0)

func (d Date) EpochMillis() int64 { return int64(d) }
func (d Date) Kind() Kind         { return KindDate }
func (d Date) Time() time.Time    { return Instant(d).Time() }
func (Date) sealed()              {}
func (d Date) String() string     { return Instant(d).Time().Format(time.UnixDate) }

func fixedZone(offsetMinutes int) *time.Location {
	if offsetMinutes < -MaxOffsetMinutes || offsetMinutes > MaxOffsetMinutes {
		panic(PreconditionViolation{Op: "offset", Msg: fmt.Sprintf("offset %d minutes out of range", offsetMinutes)})
	}
	if offsetMinutes == 0 {
		return time.UTC
	}
	return time.FixedZone("", offsetMinutes*60)
}
