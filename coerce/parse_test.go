// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coerce

import (
	"errors"
	"strings"
	"testing"

	"go.chrono.dev/temporal"
)

// 2001-02-03T04:05:06.007Z
const feb3 = 981173106007

func TestParse(t *testing.T) {
	for _, test := range []struct {
		in         string
		wantMillis int64
		wantOffset int
	}{
		{"2001-02-03T04:05:06.007Z", feb3, 0},
		{"2001-02-03T04:05:06.007008009Z", feb3, 0},
		{"2001-02-03T04:05:06.007999999Z", feb3, 0},
		{"2001-02-03T04:05:06,007Z", feb3, 0},
		{"2001-02-03T04:05:06.007-00:00", feb3, 0},
		{"2001-02-03T04:05:06.007+00:00", feb3, 0},
		{"2001-02-02T22:05:06.007-06:00", feb3, -360},
		{"2001-02-02T22:05:06.007-0600", feb3, -360},
		{"2001-02-02T22:05:06.007-06", feb3, -360},
		{"2001-02-03T09:35:06.007+05:30", feb3, 330},
		{"2001-02-03 05:05:06.007+01:00", feb3, 60},
		{"2001-02-03T05:05:06.007+01:00[Europe/Paris]", feb3, 60},
		// The bracketed zone does not override the numeric offset.
		{"2001-02-03T05:05:06.007+01:00[America/New_York]", feb3, 60},
		{"2001-02-03T04:05Z", feb3 - 6007, 0},
		{"  2001-02-03T04:05:06.007Z  ", feb3, 0},
		// General date strings.
		{"2001-02-03T04:05:06.007", feb3, 0},
		{"2001-02-03", feb3 - (4*3600+5*60+6)*1000 - 7, 0},
		{"Sat, 03 Feb 2001 04:05:06 GMT", feb3 - 7, 0},
		{"Sat, 03 Feb 2001 05:05:06 +0100", feb3 - 7, 60},
		{"Sat Feb  3 04:05:06 UTC 2001", feb3 - 7, 0},
		{"Sat Feb 03 2001 04:05:06 GMT+0000 (Coordinated Universal Time)", feb3 - 7, 0},
		{"Sat Feb 03 2001 22:05:06 GMT-0600", feb3 - 7 + 24*3600*1000, -360},
		{"February 3, 2001", feb3 - (4*3600+5*60+6)*1000 - 7, 0},
		// Pre-epoch fractions truncate toward the past.
		{"1969-12-31T23:59:59.9999Z", -1, 0},
	} {
		got, err := Parse(test.in)
		if err != nil {
			t.Errorf("Parse(%q): %v", test.in, err)
			continue
		}
		if got.EpochMillis() != test.wantMillis || got.OffsetMinutes() != test.wantOffset {
			t.Errorf("Parse(%q) = %d%+dmin, want %d%+dmin", test.in,
				got.EpochMillis(), got.OffsetMinutes(), test.wantMillis, test.wantOffset)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, test := range []struct {
		in            string
		wantOffending string
	}{
		{"", ""},
		{"   ", "   "},
		{"not a date", "not a date"},
		{"2001-02-03T04:05:06+19:00", "+19:00"},
		{"2001-02-03T04:05:06+05:75", "+05:75"},
		{"2001-02-03T04:05:06Z[]", "[]"},
		{"2001-02-03T04:05:06Z[Europe/Paris", "2001-02-03T04:05:06Z[Europe/Paris"},
		{"[UTC]", "[UTC]"},
	} {
		_, err := Parse(test.in)
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("Parse(%q) error = %v, want ParseError", test.in, err)
			continue
		}
		if perr.Input != test.in {
			t.Errorf("Parse(%q): Input = %q", test.in, perr.Input)
		}
		if perr.Offending != test.wantOffending {
			t.Errorf("Parse(%q): Offending = %q, want %q", test.in, perr.Offending, test.wantOffending)
		}
	}
}

func TestParseErrorLocatesBadField(t *testing.T) {
	for _, in := range []string{
		"2001-02-03T25:05:06Z",
		"2001-02-03T04:05:61+01:00",
		"2001-13-03T04:05:06Z",
	} {
		_, err := Parse(in)
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("Parse(%q) error = %v, want ParseError", in, err)
			continue
		}
		if perr.Offending == "" || !strings.Contains(in, perr.Offending) {
			t.Errorf("Parse(%q): Offending = %q, want a substring of the input", in, perr.Offending)
		}
		if perr.Unwrap() == nil {
			t.Errorf("Parse(%q): no underlying error", in)
		}
	}
}

func TestParseDateIsNotAnOffset(t *testing.T) {
	// "-03" at the end of a bare date is the day, not UTC-3.
	got, err := Parse("2001-02-03")
	if err != nil {
		t.Fatal(err)
	}
	if got.OffsetMinutes() != 0 || got.Time().Day() != 3 {
		t.Errorf("Parse(2001-02-03) = %v", got)
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, ms := range []int64{0, feb3, -1, -62135596800000, 253402300799999} {
		s := temporal.Instant(ms).String()
		got, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q): %v", s, err)
		}
		if got.EpochMillis() != ms {
			t.Errorf("Parse(%q) = %d, want %d", s, got.EpochMillis(), ms)
		}
	}
}
