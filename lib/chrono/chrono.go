// Package chrono provides a Starlark module of timestamp functions.
//
// Timestamps are values of type chrono.timestamp, tagged with one of
// the kinds "instant", "offset", "zoned", "sql_timestamp" or "date".
// Wherever a timestamp is expected, a function also accepts a string
// (parsed as an offset timestamp), an int (epoch milliseconds), a
// time.time from the standard time module, or None, which yields None.
//
// Duration specs may be an int or float number of seconds, a
// time.duration, an ISO 8601 duration string such as "P1M1DT2H", a
// list of (unit, n) pairs, or a dict from unit to n; steps are applied
// in order.
package chrono // import "go.chrono.dev/lib/chrono"

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
	"golang.org/x/text/language"

	toolkit "go.chrono.dev/chrono"
	"go.chrono.dev/temporal"
	"go.chrono.dev/timefmt"
)

// ModuleName defines the expected name for this Module when used in the
// starlark runtime.
const ModuleName = "chrono"

// Module is the chrono module backed by the default toolkit, whose
// clock may be replaced through the NowFunc of package
// go.chrono.dev/chrono.
var Module = NewModule(toolkit.Default())

// LoadModule loads the chrono module.
// It is concurrency-safe and idempotent.
func LoadModule() (starlark.StringDict, error) {
	return starlark.StringDict{
		ModuleName: Module,
	}, nil
}

// NewModule returns a chrono module whose clock, default zone and
// language are those of tk.
func NewModule(tk *toolkit.Toolkit) *starlarkstruct.Module {
	m := &module{tk: tk}
	return &starlarkstruct.Module{
		Name: ModuleName,
		Members: starlark.StringDict{
			"now":           m.builtin("now", m.now),
			"instant":       m.builtin("instant", m.converter(temporal.KindInstant)),
			"offset":        m.builtin("offset", m.converter(temporal.KindOffset)),
			"zoned":         m.builtin("zoned", m.zoned),
			"sql_timestamp": m.builtin("sql_timestamp", m.converter(temporal.KindSQLTimestamp)),
			"date":          m.builtin("date", m.converter(temporal.KindDate)),
			"parse":         m.builtin("parse", m.parse),
			"add":           m.builtin("add", m.addFn),
			"sub":           m.builtin("sub", m.subFn),
			"iso":           m.builtin("iso", m.iso),
			"locale":        m.builtin("locale", m.localeFn),
			"format":        m.builtin("format", m.formatFn),
			"equal":         m.builtin("equal", m.equal),
			"unit_names":    unitNames,
		},
	}
}

type module struct {
	tk *toolkit.Toolkit
}

type builtinFunc func(fnname string, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error)

// builtin wraps fn so that precondition violations become errors.
func (m *module) builtin(name string, fn builtinFunc) *starlark.Builtin {
	return starlark.NewBuiltin(name, func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (res starlark.Value, err error) {
		defer recoverViolation(b.Name(), &err)
		return fn(b.Name(), args, kwargs)
	})
}

// wrap returns v as a Starlark value, None for nil.
func (m *module) wrap(v temporal.Value) starlark.Value {
	if v == nil {
		return starlark.None
	}
	return Timestamp{v: v, m: m}
}

func (m *module) now(fnname string, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 0); err != nil {
		return nil, err
	}
	return m.wrap(m.tk.Now()), nil
}

func (m *module) converter(kind temporal.Kind) builtinFunc {
	return func(fnname string, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var x starlark.Value
		if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &x); err != nil {
			return nil, err
		}
		in, err := toGo(x)
		if err != nil {
			return nil, fmt.Errorf("%s: %v", fnname, err)
		}
		v, err := m.tk.To(kind, in)
		if err != nil {
			return nil, fmt.Errorf("%s: %v", fnname, err)
		}
		return m.wrap(v), nil
	}
}

// zoned(x, zone=None) places x in the named zone, or in x's own zone
// or the default zone when none is named.
func (m *module) zoned(fnname string, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		x    starlark.Value
		name string
	)
	if err := starlark.UnpackArgs(fnname, args, kwargs, "x", &x, "zone?", &name); err != nil {
		return nil, err
	}
	in, err := toGo(x)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", fnname, err)
	}
	if name == "" {
		z, err := m.tk.ToZonedTimestamp(in)
		if err != nil || z == nil {
			return starlark.None, wrapErr(fnname, err)
		}
		return m.wrap(*z), nil
	}
	z, err := m.tk.InZone(in, name)
	if err != nil || z == nil {
		return starlark.None, wrapErr(fnname, err)
	}
	return m.wrap(*z), nil
}

func (m *module) parse(fnname string, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var s string
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &s); err != nil {
		return nil, err
	}
	o, err := m.tk.ToOffsetTimestamp(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", fnname, err)
	}
	return m.wrap(*o), nil
}

func (m *module) addFn(fnname string, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	x, spec, err := unpackArithmetic(fnname, args, kwargs)
	if err != nil {
		return nil, err
	}
	return m.add(x, spec)
}

func (m *module) subFn(fnname string, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	x, spec, err := unpackArithmetic(fnname, args, kwargs)
	if err != nil {
		return nil, err
	}
	return m.sub(x, spec)
}

func unpackArithmetic(fnname string, args starlark.Tuple, kwargs []starlark.Tuple) (x, spec interface{}, err error) {
	var xv, sv starlark.Value
	if err := starlark.UnpackArgs(fnname, args, kwargs, "x", &xv, "spec", &sv); err != nil {
		return nil, nil, err
	}
	if x, err = toGo(xv); err != nil {
		return nil, nil, fmt.Errorf("%s: %v", fnname, err)
	}
	if spec, err = toSpec(sv); err != nil {
		return nil, nil, fmt.Errorf("%s: %v", fnname, err)
	}
	return x, spec, nil
}

func (m *module) add(x, spec interface{}) (starlark.Value, error) {
	v, err := m.tk.Add(x, spec)
	if err != nil {
		return nil, wrapErr("add", err)
	}
	return m.wrap(v), nil
}

func (m *module) sub(x, spec interface{}) (starlark.Value, error) {
	v, err := m.tk.Sub(x, spec)
	if err != nil {
		return nil, wrapErr("sub", err)
	}
	return m.wrap(v), nil
}

func (m *module) iso(fnname string, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var x starlark.Value
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &x); err != nil {
		return nil, err
	}
	in, err := toGo(x)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", fnname, err)
	}
	s, err := m.tk.ToISOString(in)
	return optString(s), wrapErr(fnname, err)
}

// locale(x, style="medium", lang=None)
func (m *module) localeFn(fnname string, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		x           starlark.Value
		style, lang string
	)
	if err := starlark.UnpackArgs(fnname, args, kwargs, "x", &x, "style?", &style, "lang?", &lang); err != nil {
		return nil, err
	}
	in, err := toGo(x)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", fnname, err)
	}
	return m.locale(in, style, lang)
}

func (m *module) locale(x interface{}, style, lang string) (starlark.Value, error) {
	st, err := timefmt.ParseStyle(style)
	if err != nil {
		return nil, wrapErr("locale", err)
	}
	tk, err := m.withLanguage(lang)
	if err != nil {
		return nil, wrapErr("locale", err)
	}
	s, err := tk.ToLocaleString(x, st)
	return optString(s), wrapErr("locale", err)
}

// format(x, pattern, lang=None)
func (m *module) formatFn(fnname string, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		x             starlark.Value
		pattern, lang string
	)
	if err := starlark.UnpackArgs(fnname, args, kwargs, "x", &x, "pattern", &pattern, "lang?", &lang); err != nil {
		return nil, err
	}
	in, err := toGo(x)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", fnname, err)
	}
	return m.format(in, pattern, lang)
}

func (m *module) format(x interface{}, pattern, lang string) (starlark.Value, error) {
	tk, err := m.withLanguage(lang)
	if err != nil {
		return nil, wrapErr("format", err)
	}
	s, err := tk.Format(x, pattern)
	return optString(s), wrapErr("format", err)
}

// withLanguage returns the module's toolkit, or a copy of it speaking
// the named language.
func (m *module) withLanguage(lang string) (*toolkit.Toolkit, error) {
	if lang == "" {
		return m.tk, nil
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, err
	}
	return toolkit.New(
		toolkit.WithClock(m.tk.Clock()),
		toolkit.WithZones(m.tk.Zones()),
		toolkit.WithLanguage(tag),
	), nil
}

// equal(*values) reports whether all values denote the same instant.
func (m *module) equal(fnname string, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(kwargs) > 0 {
		return nil, fmt.Errorf("%s: unexpected keyword arguments", fnname)
	}
	values := make([]interface{}, len(args))
	for i, arg := range args {
		v, err := toGo(arg)
		if err != nil {
			return nil, fmt.Errorf("%s: argument %d: %v", fnname, i+1, err)
		}
		values[i] = v
	}
	eq, err := m.tk.InstantsEqual(values...)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", fnname, err)
	}
	return starlark.Bool(eq), nil
}

func optString(s *string) starlark.Value {
	if s == nil {
		return starlark.None
	}
	return starlark.String(*s)
}

func wrapErr(fnname string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %v", fnname, err)
}
