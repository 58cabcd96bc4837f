// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package duration

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.chrono.dev/temporal"
)

// A Step is a signed quantity of one unit.
type Step struct {
	Unit Unit
	N    int64
}

func (s Step) String() string { return fmt.Sprintf("%s:%d", s.Unit, s.N) }

// A Spec is an ordered sequence of steps. Steps are applied in order;
// because calendar arithmetic clamps, the order can change the result.
type Spec []Step

// SecondsOf returns the spec for n seconds.
func SecondsOf(n int64) Spec { return Spec{{Seconds, n}} }

func (s Spec) String() string {
	var buf strings.Builder
	buf.WriteByte('[')
	for i, step := range s {
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(step.String())
	}
	buf.WriteByte(']')
	return buf.String()
}

// Negate returns the spec with every quantity negated, in the same order.
func (s Spec) Negate() Spec {
	neg := make(Spec, len(s))
	for i, step := range s {
		if step.N == math.MinInt64 {
			panic(temporal.PreconditionViolation{Op: "negate", Msg: fmt.Sprintf("%s overflows", step)})
		}
		neg[i] = Step{step.Unit, -step.N}
	}
	return neg
}

// Of builds a spec from alternating unit keys and integer quantities:
//
//	Of("day", 1, "month", 1)
func Of(pairs ...interface{}) (Spec, error) {
	if len(pairs)%2 != 0 {
		return nil, &SpecError{Value: pairs, Msg: "odd number of arguments"}
	}
	spec := make(Spec, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, &SpecError{Value: pairs[i], Msg: fmt.Sprintf("unit key must be a string, got %T", pairs[i])}
		}
		u, err := ParseUnit(key)
		if err != nil {
			return nil, err
		}
		n, ok := toInt64(pairs[i+1])
		if !ok {
			return nil, &SpecError{Value: pairs[i+1], Msg: fmt.Sprintf("quantity for %s must be an integer, got %T", key, pairs[i+1])}
		}
		spec = append(spec, Step{u, n})
	}
	return spec, nil
}

// Normalize converts the accepted spec shapes to a Spec:
//
//   - an integer or float, meaning that many seconds (fractions are
//     truncated toward zero);
//   - a Spec, a []Step or a single Step;
//   - a time.Duration, applied as nanoseconds;
//   - an ISO-8601 duration string such as "P1M1DT2H" (see ParseISO);
//   - nil, meaning the empty spec.
func Normalize(v interface{}) (Spec, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case Spec:
		return x, validate(x)
	case []Step:
		return Spec(x), validate(x)
	case Step:
		return Spec{x}, validate(Spec{x})
	case time.Duration:
		return Spec{{Nanoseconds, int64(x)}}, nil
	case string:
		return ParseISO(x)
	case float32:
		return secondsFromFloat(float64(x))
	case float64:
		return secondsFromFloat(x)
	}
	if n, ok := toInt64(v); ok {
		return SecondsOf(n), nil
	}
	return nil, &SpecError{Value: v, Msg: fmt.Sprintf("unsupported duration spec type %T", v)}
}

func validate(s Spec) error {
	for _, step := range s {
		if !step.Unit.valid() {
			return &UnsupportedUnitError{Key: step.Unit.String()}
		}
	}
	return nil
}

func secondsFromFloat(f float64) (Spec, error) {
	if math.IsNaN(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return nil, &SpecError{Value: f, Msg: "number of seconds out of range"}
	}
	return SecondsOf(int64(f)), nil
}

func toInt64(v interface{}) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint:
		return int64(x), uint64(x) <= math.MaxInt64
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint64:
		return int64(x), x <= math.MaxInt64
	}
	return 0, false
}

var (
	isoPeriod = regexp.MustCompile(`^([+-])?P((?:\d+[YMWD])*)(?:T((?:\d+(?:[.,]\d+)?[HMS])+))?$`)
	isoField  = regexp.MustCompile(`(\d+(?:[.,]\d+)?)([YMWDHS])`)
)

// ParseISO parses an ISO-8601 duration such as "P1Y2M3W4DT5H6M7.5S".
// Fields become steps in the order written; a leading '-' negates all
// of them. Only the seconds field may have a fraction, which becomes a
// nanoseconds step.
func ParseISO(s string) (Spec, error) {
	m := isoPeriod.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(s)))
	if m == nil || (m[2] == "" && m[3] == "") {
		return nil, &SpecError{Value: s, Msg: "not an ISO-8601 duration"}
	}
	var spec Spec
	for _, part := range []struct {
		fields string
		units  map[byte]Unit
	}{
		{m[2], map[byte]Unit{'Y': Years, 'M': Months, 'W': Weeks, 'D': Days}},
		{m[3], map[byte]Unit{'H': Hours, 'M': Minutes, 'S': Seconds}},
	} {
		for _, f := range isoField.FindAllStringSubmatch(part.fields, -1) {
			u := part.units[f[2][0]]
			whole, frac, _ := strings.Cut(strings.Replace(f[1], ",", ".", 1), ".")
			n, err := strconv.ParseInt(whole, 10, 64)
			if err != nil {
				return nil, &SpecError{Value: s, Msg: fmt.Sprintf("%s field out of range", u)}
			}
			spec = append(spec, Step{u, n})
			if frac == "" {
				continue
			}
			if u != Seconds {
				return nil, &SpecError{Value: s, Msg: fmt.Sprintf("fractional %s", u)}
			}
			frac = (frac + "000000000")[:9]
			if ns, _ := strconv.ParseInt(frac, 10, 64); ns != 0 {
				spec = append(spec, Step{Nanoseconds, ns})
			}
		}
	}
	if m[1] == "-" {
		spec = spec.Negate()
	}
	return spec, nil
}

// ISO renders an exact-unit spec as an ISO-8601 duration in hours,
// minutes and seconds. It reports false if s has calendar units.
func (s Spec) ISO() (string, bool) {
	var total time.Duration
	for _, step := range s {
		if !step.Unit.valid() || step.Unit.IsCalendar() {
			return "", false
		}
		d, ok := mulNanos(step.N, step.Unit.Nanos())
		if !ok {
			return "", false
		}
		if total, ok = addNanos(total, d); !ok {
			return "", false
		}
	}
	return isoDuration(total), true
}

func isoDuration(d time.Duration) string {
	if d == 0 {
		return "PT0S"
	}
	var buf strings.Builder
	if d < 0 {
		buf.WriteByte('-')
		if d == math.MinInt64 {
			// -d overflows; 9223372036.854775808s
			return "-PT2562047H47M16.854775808S"
		}
		d = -d
	}
	buf.WriteString("PT")
	h, rem := d/time.Hour, d%time.Hour
	mins, rem := rem/time.Minute, rem%time.Minute
	sec, ns := rem/time.Second, rem%time.Second
	if h != 0 {
		fmt.Fprintf(&buf, "%dH", h)
	}
	if mins != 0 {
		fmt.Fprintf(&buf, "%dM", mins)
	}
	if sec != 0 || ns != 0 {
		fmt.Fprintf(&buf, "%d", sec)
		if ns != 0 {
			buf.WriteString(strings.TrimRight(fmt.Sprintf(".%09d", ns), "0"))
		}
		buf.WriteByte('S')
	}
	return buf.String()
}
