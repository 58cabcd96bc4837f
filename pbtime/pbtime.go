// Package pbtime converts timestamps and duration specs to and from the
// protocol buffer well-known types google.protobuf.Timestamp and
// google.protobuf.Duration.
package pbtime // import "go.chrono.dev/pbtime"

import (
	"fmt"

	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/timestamppb"

	"go.chrono.dev/duration"
	"go.chrono.dev/internal/overflow"
	"go.chrono.dev/temporal"
)

const (
	millisPerSecond = 1000
	nanosPerMilli   = 1000000
	nanosPerSecond  = 1000000000
)

// ToProto returns the instant of v as a Timestamp, or nil if v is nil.
// Zone and representation are not preserved.
func ToProto(v temporal.Value) *timestamppb.Timestamp {
	if v == nil {
		return nil
	}
	ms := v.EpochMillis()
	sec, rem := ms/millisPerSecond, ms%millisPerSecond
	if rem < 0 {
		sec, rem = sec-1, rem+millisPerSecond
	}
	return &timestamppb.Timestamp{Seconds: sec, Nanos: int32(rem * nanosPerMilli)}
}

// FromProto returns the instant of ts, truncated to the millisecond.
// A nil ts yields nil; a ts outside the range the Timestamp type
// permits is an error.
func FromProto(ts *timestamppb.Timestamp) (*temporal.Instant, error) {
	if ts == nil {
		return nil, nil
	}
	if err := ts.CheckValid(); err != nil {
		return nil, fmt.Errorf("pbtime: %w", err)
	}
	// In range: |Seconds| < 2.6e11, so the product fits.
	i := temporal.Instant(ts.Seconds*millisPerSecond + int64(ts.Nanos)/nanosPerMilli)
	return &i, nil
}

// A CalendarUnitError reports a calendar-relative step in a spec that
// must have a fixed length.
type CalendarUnitError struct {
	Unit duration.Unit
}

func (e *CalendarUnitError) Error() string {
	return fmt.Sprintf("pbtime: %s have no fixed length", e.Unit)
}

// SpecFromProto returns d as a spec of seconds and nanoseconds.
// A nil d yields a nil spec.
func SpecFromProto(d *durationpb.Duration) (duration.Spec, error) {
	if d == nil {
		return nil, nil
	}
	if err := d.CheckValid(); err != nil {
		return nil, fmt.Errorf("pbtime: %w", err)
	}
	spec := duration.SecondsOf(d.Seconds)
	if d.Nanos != 0 {
		spec = append(spec, duration.Step{Unit: duration.Nanoseconds, N: int64(d.Nanos)})
	}
	return spec, nil
}

// SpecToProto returns the total length of s as a Duration. Specs with
// calendar units, or whose length exceeds the Duration range, are
// rejected.
func SpecToProto(s duration.Spec) (*durationpb.Duration, error) {
	var sec, nanos int64
	for _, step := range s {
		if step.Unit.IsCalendar() {
			return nil, &CalendarUnitError{step.Unit}
		}
		unit := step.Unit.Nanos()
		if unit == 0 {
			return nil, &duration.UnsupportedUnitError{Key: step.Unit.String()}
		}
		var ds, dn int64
		if unit >= nanosPerSecond {
			var ok bool
			if ds, ok = overflow.Mul(step.N, unit/nanosPerSecond); !ok {
				return nil, rangeError(s)
			}
		} else {
			per := nanosPerSecond / unit
			ds, dn = step.N/per, step.N%per*unit
		}
		var ok bool
		if sec, ok = overflow.Add(sec, ds); !ok {
			return nil, rangeError(s)
		}
		nanos += dn
		if sec, ok = overflow.Add(sec, nanos/nanosPerSecond); !ok {
			return nil, rangeError(s)
		}
		nanos %= nanosPerSecond
	}
	// Seconds and nanos must agree in sign.
	switch {
	case sec > 0 && nanos < 0:
		sec, nanos = sec-1, nanos+nanosPerSecond
	case sec < 0 && nanos > 0:
		sec, nanos = sec+1, nanos-nanosPerSecond
	}
	d := &durationpb.Duration{Seconds: sec, Nanos: int32(nanos)}
	if err := d.CheckValid(); err != nil {
		return nil, fmt.Errorf("pbtime: %w", err)
	}
	return d, nil
}

func rangeError(s duration.Spec) error {
	return fmt.Errorf("pbtime: spec %v exceeds the duration range", s)
}
