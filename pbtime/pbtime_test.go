package pbtime

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/testing/protocmp"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/timestamppb"

	"go.chrono.dev/duration"
	"go.chrono.dev/temporal"
)

func TestToProto(t *testing.T) {
	for _, test := range []struct {
		v    temporal.Value
		want *timestamppb.Timestamp
	}{
		{temporal.Instant(981173106007), &timestamppb.Timestamp{Seconds: 981173106, Nanos: 7000000}},
		{temporal.NewOffsetTimestamp(981173106007, 60), &timestamppb.Timestamp{Seconds: 981173106, Nanos: 7000000}},
		{temporal.Date(-1), &timestamppb.Timestamp{Seconds: -1, Nanos: 999000000}},
		{temporal.SQLTimestamp(-1000), &timestamppb.Timestamp{Seconds: -1}},
		{nil, nil},
	} {
		got := ToProto(test.v)
		if diff := cmp.Diff(test.want, got, protocmp.Transform()); diff != "" {
			t.Errorf("ToProto(%v) mismatch (-want +got):\n%s", test.v, diff)
		}
	}
}

func TestFromProto(t *testing.T) {
	for _, ms := range []int64{0, 981173106007, -1, -62135596800000} {
		got, err := FromProto(ToProto(temporal.Instant(ms)))
		require.NoError(t, err)
		assert.Equal(t, temporal.Instant(ms), *got)
	}

	// Sub-millisecond digits are truncated.
	got, err := FromProto(timestamppb.New(time.Unix(0, 1999999)))
	require.NoError(t, err)
	assert.Equal(t, temporal.Instant(1), *got)

	got, err = FromProto(nil)
	assert.NoError(t, err)
	assert.Nil(t, got)

	_, err = FromProto(&timestamppb.Timestamp{Seconds: math.MaxInt64})
	assert.Error(t, err)
	_, err = FromProto(&timestamppb.Timestamp{Nanos: -1})
	assert.Error(t, err)
}

func TestSpecFromProto(t *testing.T) {
	spec, err := SpecFromProto(durationpb.New(1500 * time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, duration.Spec{{Unit: duration.Seconds, N: 1}, {Unit: duration.Nanoseconds, N: 500000000}}, spec)

	spec, err = SpecFromProto(durationpb.New(-90 * time.Second))
	require.NoError(t, err)
	assert.Equal(t, duration.SecondsOf(-90), spec)

	spec, err = SpecFromProto(nil)
	assert.NoError(t, err)
	assert.Nil(t, spec)

	_, err = SpecFromProto(&durationpb.Duration{Seconds: 1, Nanos: -1})
	assert.Error(t, err)
}

func TestSpecToProto(t *testing.T) {
	for _, test := range []struct {
		spec duration.Spec
		want *durationpb.Duration
	}{
		{nil, &durationpb.Duration{}},
		{duration.SecondsOf(5), &durationpb.Duration{Seconds: 5}},
		{duration.Spec{{Unit: duration.Weeks, N: 1}, {Unit: duration.Hours, N: -1}}, &durationpb.Duration{Seconds: 601200}},
		{duration.Spec{{Unit: duration.Milliseconds, N: 1500}}, &durationpb.Duration{Seconds: 1, Nanos: 500000000}},
		{duration.Spec{{Unit: duration.Milliseconds, N: -1500}}, &durationpb.Duration{Seconds: -1, Nanos: -500000000}},
		{duration.Spec{{Unit: duration.Seconds, N: 1}, {Unit: duration.Microseconds, N: -1}}, &durationpb.Duration{Nanos: 999999000}},
		{duration.Spec{{Unit: duration.Seconds, N: -1}, {Unit: duration.Nanoseconds, N: 1}}, &durationpb.Duration{Nanos: -999999999}},
	} {
		got, err := SpecToProto(test.spec)
		require.NoError(t, err, "SpecToProto(%v)", test.spec)
		if diff := cmp.Diff(test.want, got, protocmp.Transform()); diff != "" {
			t.Errorf("SpecToProto(%v) mismatch (-want +got):\n%s", test.spec, diff)
		}
	}
}

func TestSpecToProtoErrors(t *testing.T) {
	_, err := SpecToProto(duration.Spec{{Unit: duration.Days, N: 1}, {Unit: duration.Months, N: 1}})
	var cerr *CalendarUnitError
	require.True(t, errors.As(err, &cerr), "error = %v", err)
	assert.Equal(t, duration.Months, cerr.Unit)

	_, err = SpecToProto(duration.Spec{{Unit: duration.Weeks, N: math.MaxInt64}})
	assert.Error(t, err)

	// Representable in int64 seconds but beyond the 10000-year Duration range.
	_, err = SpecToProto(duration.SecondsOf(400000000000))
	assert.Error(t, err)

	_, err = SpecToProto(duration.Spec{{Unit: duration.Unit(77), N: 1}})
	var uerr *duration.UnsupportedUnitError
	assert.True(t, errors.As(err, &uerr), "error = %v", err)
}

func TestRoundTripThroughEngine(t *testing.T) {
	d, err := SpecToProto(duration.Spec{{Unit: duration.Days, N: 2}, {Unit: duration.Milliseconds, N: 250}})
	require.NoError(t, err)
	spec, err := SpecFromProto(d)
	require.NoError(t, err)
	got, err := duration.Add(temporal.Instant(0), spec)
	require.NoError(t, err)
	assert.Equal(t, temporal.Instant(2*24*3600*1000+250), got)
}
