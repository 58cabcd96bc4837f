// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coerce

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.chrono.dev/temporal"
)

// A ParseError reports a string that is not a timestamp in any
// accepted grammar.
type ParseError struct {
	Input     string // the complete input
	Offending string // the part of Input that could not be parsed
	Err       error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("cannot parse %q as a timestamp", e.Input)
	if e.Offending != "" && e.Offending != e.Input {
		msg += fmt.Sprintf(": bad text %q", e.Offending)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Err }

var (
	errEmpty        = errors.New("empty string")
	errUnrecognized = errors.New("unrecognized date format")
	errZoneSuffix   = errors.New("malformed zone suffix")
	errOffsetRange  = errors.New("offset out of range")
)

// Textual grammars.
//
// The ISO layouts are tried against text ending in "Z" or a numeric
// offset. time.Parse accepts a fractional second after the seconds
// field even though the layouts do not spell one out.
var isoLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04Z07:00",
}

// hostLayouts is the general date-string grammar. Layouts without a
// zone are read as UTC.
var hostLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	time.RFC822Z,
	time.RFC822,
	time.RubyDate,
	time.UnixDate,
	time.ANSIC,
	"Mon Jan 02 2006 15:04:05 GMT-0700",
	"Mon Jan 02 2006 15:04:05 MST",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"01/02/2006 15:04:05",
	"01/02/2006",
	"January 2, 2006 15:04:05",
	"January 2, 2006",
	"Jan 2, 2006 15:04:05",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
}

var (
	// A trailing ±HH, ±HHMM or ±HH:MM directly after a digit.
	offsetSuffix = regexp.MustCompile(`^(.*\d)([+-])(\d{2})(?::?(\d{2}))?$`)
	// The text before an offset must contain a time of day, otherwise
	// the day of "2001-02-03" would read as an offset of -03.
	timeOfDay = regexp.MustCompile(`(?i)[t ]\d{1,2}:\d{2}`)
	// Date.toString appends the zone's display name in parentheses.
	displayZone = regexp.MustCompile(`\s+\([^()]*\)$`)
	isoDate     = regexp.MustCompile(`^[+-]?\d{4}-\d{2}-\d{2}[T ]`)
)

// Parse reads s as a timestamp and returns it with the offset it was
// written in (UTC for a "Z" suffix or for text without any zone).
//
// A trailing bracketed zone identifier, as in
// "2001-02-03T04:05:06+01:00[Europe/Paris]", is accepted but ignored:
// the numeric offset alone determines the instant. Digits beyond the
// millisecond are truncated.
func Parse(s string) (temporal.OffsetTimestamp, error) {
	text := strings.TrimSpace(s)
	if text == "" {
		return temporal.OffsetTimestamp{}, &ParseError{Input: s, Offending: s, Err: errEmpty}
	}

	body, err := stripZoneID(s, text)
	if err != nil {
		return temporal.OffsetTimestamp{}, err
	}

	if m := offsetSuffix.FindStringSubmatch(body); m != nil && timeOfDay.MatchString(m[1]) {
		minutes, err := offsetMinutes(m[2], m[3], m[4])
		if err != nil {
			return temporal.OffsetTimestamp{}, &ParseError{Input: s, Offending: body[len(m[1]):], Err: err}
		}
		t, err := parseISO(m[1] + "Z")
		if err != nil {
			return temporal.OffsetTimestamp{}, isoError(s, err)
		}
		ms := temporal.FromTime(t).AddMillis(-int64(minutes) * 60 * 1000)
		return temporal.NewOffsetTimestamp(int64(ms), minutes), nil
	}

	if t, err := parseISO(body); err == nil {
		return temporal.OffsetTimestampOf(t), nil
	} else if isoDate.MatchString(body) && strings.HasSuffix(strings.ToUpper(body), "Z") {
		return temporal.OffsetTimestamp{}, isoError(s, err)
	}

	host := displayZone.ReplaceAllString(body, "")
	for _, layout := range hostLayouts {
		if t, err := time.Parse(layout, host); err == nil {
			return temporal.OffsetTimestampOf(t), nil
		}
	}
	return temporal.OffsetTimestamp{}, &ParseError{Input: s, Offending: body, Err: errUnrecognized}
}

// stripZoneID removes a trailing "[Zone/Id]" from text. The identifier
// is validated for shape only.
func stripZoneID(input, text string) (string, error) {
	if !strings.HasSuffix(text, "]") {
		return text, nil
	}
	open := strings.LastIndexByte(text, '[')
	if open <= 0 || open == len(text)-2 || strings.ContainsAny(text[open+1:len(text)-1], "[] ") {
		return "", &ParseError{Input: input, Offending: text[max(open, 0):], Err: errZoneSuffix}
	}
	return strings.TrimSpace(text[:open]), nil
}

// offsetMinutes converts the parts of a ±HH[:MM] suffix to signed
// minutes east of UTC.
func offsetMinutes(sign, hh, mm string) (int, error) {
	h, _ := strconv.Atoi(hh)
	m := 0
	if mm != "" {
		m, _ = strconv.Atoi(mm)
	}
	if m > 59 {
		return 0, errOffsetRange
	}
	total := h*60 + m
	if total > temporal.MaxOffsetMinutes {
		return 0, errOffsetRange
	}
	if sign == "-" {
		total = -total
	}
	return total, nil
}

func parseISO(text string) (time.Time, error) {
	var first error
	for _, layout := range isoLayouts {
		t, err := time.Parse(layout, text)
		if err == nil {
			return t, nil
		}
		if first == nil {
			first = err
		}
	}
	return time.Time{}, first
}

// isoError reports the element time.Parse stopped at.
func isoError(input string, err error) error {
	offending := input
	var pe *time.ParseError
	if errors.As(err, &pe) {
		elem := pe.ValueElem
		if !strings.Contains(input, elem) {
			// Drop the "Z" appended after a stripped offset.
			elem = strings.TrimSuffix(elem, "Z")
		}
		if elem != "" && strings.Contains(input, elem) {
			offending = elem
		}
	}
	return &ParseError{Input: input, Offending: offending, Err: err}
}
