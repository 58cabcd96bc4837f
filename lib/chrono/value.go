package chrono

import (
	"fmt"
	"math"
	"sort"
	"time"

	libtime "go.starlark.net/lib/time"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"go.chrono.dev/duration"
	"go.chrono.dev/internal/overflow"
	"go.chrono.dev/temporal"
	"go.chrono.dev/timefmt"
)

// Timestamp is the Starlark representation of a temporal value.
// Its kind is one of the five representations; comparison and
// hashing use the instant only.
type Timestamp struct {
	v temporal.Value
	m *module
}

var (
	_ starlark.HasAttrs   = Timestamp{}
	_ starlark.HasBinary  = Timestamp{}
	_ starlark.Comparable = Timestamp{}
)

// Value returns the temporal value of t.
func (t Timestamp) Value() temporal.Value { return t.v }

func (t Timestamp) String() string       { return fmt.Sprint(t.v) }
func (t Timestamp) Type() string         { return "chrono.timestamp" }
func (t Timestamp) Freeze()              {}
func (t Timestamp) Truth() starlark.Bool { return starlark.True }

func (t Timestamp) Hash() (uint32, error) {
	ms := t.v.EpochMillis()
	return uint32(ms) ^ uint32(ms>>32), nil
}

// Attr returns a field or method of t. Calendar fields are read in the
// value's own zone, or in UTC for kinds without one.
func (t Timestamp) Attr(name string) (starlark.Value, error) {
	wall := t.v.Time()
	switch name {
	case "kind":
		return starlark.String(t.v.Kind().String()), nil
	case "epoch_millis":
		return starlark.MakeInt64(t.v.EpochMillis()), nil
	case "year":
		return starlark.MakeInt(wall.Year()), nil
	case "month":
		return starlark.MakeInt(int(wall.Month())), nil
	case "day":
		return starlark.MakeInt(wall.Day()), nil
	case "hour":
		return starlark.MakeInt(wall.Hour()), nil
	case "minute":
		return starlark.MakeInt(wall.Minute()), nil
	case "second":
		return starlark.MakeInt(wall.Second()), nil
	case "millisecond":
		return starlark.MakeInt(wall.Nanosecond() / int(time.Millisecond)), nil
	case "weekday":
		return starlark.MakeInt(int(wall.Weekday())), nil
	case "offset":
		if !t.v.Kind().HasCalendar() {
			return starlark.None, nil
		}
		_, sec := wall.Zone()
		return starlark.MakeInt(sec / 60), nil
	case "zone":
		if z, ok := t.v.(temporal.ZonedTimestamp); ok {
			return starlark.String(z.Zone()), nil
		}
		return starlark.None, nil
	}
	return builtinAttr(t, name, timestampMethods)
}

var timestampFields = []string{
	"day",
	"epoch_millis",
	"hour",
	"kind",
	"millisecond",
	"minute",
	"month",
	"offset",
	"second",
	"weekday",
	"year",
	"zone",
}

func (t Timestamp) AttrNames() []string {
	names := append(builtinAttrNames(timestampMethods), timestampFields...)
	sort.Strings(names)
	return names
}

// CompareSameType orders timestamps by instant, whatever their kinds.
func (t Timestamp) CompareSameType(op syntax.Token, y starlark.Value, depth int) (bool, error) {
	a, b := t.v.EpochMillis(), y.(Timestamp).v.EpochMillis()
	cmp := 0
	if a < b {
		cmp = -1
	} else if a > b {
		cmp = 1
	}
	return threeway(op, cmp), nil
}

// Binary implements the operators
//
//	timestamp + int (seconds)        = timestamp
//	timestamp + float (seconds)      = timestamp
//	timestamp + time.duration        = timestamp
//	timestamp - (any of the above)   = timestamp
//	timestamp - timestamp            = time.duration
//
// Addition is commutative.
func (t Timestamp) Binary(op syntax.Token, y starlark.Value, side starlark.Side) (res starlark.Value, err error) {
	defer recoverViolation(op.String(), &err)

	switch op {
	case syntax.PLUS:
		if spec, ok := operandSpec(y); ok {
			return t.m.add(t.v, spec)
		}
	case syntax.MINUS:
		if u, ok := y.(Timestamp); ok {
			a, b := t.v.EpochMillis(), u.v.EpochMillis()
			if side == starlark.Right {
				a, b = b, a
			}
			return millisBetween(a, b)
		}
		if side == starlark.Left {
			if spec, ok := operandSpec(y); ok {
				return t.m.sub(t.v, spec)
			}
		}
	}
	return nil, nil // unhandled
}

// operandSpec converts the right operand of timestamp arithmetic.
func operandSpec(y starlark.Value) (interface{}, bool) {
	switch y := y.(type) {
	case starlark.Int, starlark.Float, libtime.Duration:
		spec, err := toSpec(y)
		return spec, err == nil
	}
	return nil, false
}

func millisBetween(a, b int64) (starlark.Value, error) {
	var ns int64
	diff, ok := overflow.Add(a, -b)
	if ok && b != math.MinInt64 {
		ns, ok = overflow.Mul(diff, int64(time.Millisecond))
	}
	if !ok || b == math.MinInt64 {
		return nil, fmt.Errorf("timestamp difference overflows time.duration")
	}
	return libtime.Duration(ns), nil
}

var timestampMethods = map[string]builtinMethod{
	"add":     timestampAdd,
	"format":  timestampFormat,
	"in_zone": timestampInZone,
	"iso":     timestampISO,
	"locale":  timestampLocale,
	"sub":     timestampSub,
	"time":    timestampTime,
	"to":      timestampTo,
}

func timestampAdd(fnname string, recv Timestamp, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var spec starlark.Value
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &spec); err != nil {
		return nil, err
	}
	s, err := toSpec(spec)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", fnname, err)
	}
	return recv.m.add(recv.v, s)
}

func timestampSub(fnname string, recv Timestamp, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var spec starlark.Value
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &spec); err != nil {
		return nil, err
	}
	s, err := toSpec(spec)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", fnname, err)
	}
	return recv.m.sub(recv.v, s)
}

func timestampISO(fnname string, recv Timestamp, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 0); err != nil {
		return nil, err
	}
	return starlark.String(timefmt.ISO(recv.v)), nil
}

func timestampLocale(fnname string, recv Timestamp, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var style, lang string
	if err := starlark.UnpackArgs(fnname, args, kwargs, "style?", &style, "lang?", &lang); err != nil {
		return nil, err
	}
	return recv.m.locale(recv.v, style, lang)
}

func timestampFormat(fnname string, recv Timestamp, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var pattern, lang string
	if err := starlark.UnpackArgs(fnname, args, kwargs, "pattern", &pattern, "lang?", &lang); err != nil {
		return nil, err
	}
	return recv.m.format(recv.v, pattern, lang)
}

func timestampInZone(fnname string, recv Timestamp, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &name); err != nil {
		return nil, err
	}
	z, err := recv.m.tk.InZone(recv.v, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", fnname, err)
	}
	return recv.m.wrap(*z), nil
}

func timestampTo(fnname string, recv Timestamp, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &name); err != nil {
		return nil, err
	}
	kind, ok := temporal.ParseKind(name)
	if !ok {
		return nil, fmt.Errorf("%s: unknown kind %q", fnname, name)
	}
	v, err := recv.m.tk.To(kind, recv.v)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", fnname, err)
	}
	return recv.m.wrap(v), nil
}

// timestampTime returns the wall clock of the receiver as a time.time
// of the standard time module.
func timestampTime(fnname string, recv Timestamp, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 0); err != nil {
		return nil, err
	}
	return libtime.Time(recv.v.Time()), nil
}

type builtinMethod func(fnname string, recv Timestamp, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error)

func builtinAttr(recv Timestamp, name string, methods map[string]builtinMethod) (starlark.Value, error) {
	method := methods[name]
	if method == nil {
		return nil, nil // no such method
	}
	impl := func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (res starlark.Value, err error) {
		defer recoverViolation(b.Name(), &err)
		return method(b.Name(), b.Receiver().(Timestamp), args, kwargs)
	}
	return starlark.NewBuiltin(name, impl).BindReceiver(recv), nil
}

func builtinAttrNames(methods map[string]builtinMethod) []string {
	names := make([]string, 0, len(methods))
	for name := range methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// threeway interprets a three-way comparison value cmp (-1, 0, +1)
// as a boolean comparison (e.g. x < y).
func threeway(op syntax.Token, cmp int) bool {
	switch op {
	case syntax.EQL:
		return cmp == 0
	case syntax.NEQ:
		return cmp != 0
	case syntax.LE:
		return cmp <= 0
	case syntax.LT:
		return cmp < 0
	case syntax.GE:
		return cmp >= 0
	case syntax.GT:
		return cmp > 0
	}
	panic(op)
}

// recoverViolation turns a temporal.PreconditionViolation panic into an
// error so that a script cannot crash its host. Other panics propagate.
func recoverViolation(name string, err *error) {
	if r := recover(); r != nil {
		p, ok := temporal.AsViolation(r)
		if !ok {
			panic(r)
		}
		*err = fmt.Errorf("%s: %v", name, p)
	}
}

// unitNames is the tuple of canonical unit names.
var unitNames = func() starlark.Tuple {
	names := duration.Names()
	t := make(starlark.Tuple, len(names))
	for i, n := range names {
		t[i] = starlark.String(n)
	}
	return t
}()
